package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cabax/cabax-backend/models"
	"github.com/cabax/cabax-backend/utils"
)

// AttendanceController handles cast time cards.
type AttendanceController struct {
	DB *gorm.DB
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db}
}

// GetAttendances -> time cards for a date (default today), cast names joined.
func (ac *AttendanceController) GetAttendances(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	var attendances []models.Attendance
	if err := scoped(c, ac.DB).Where("date = ?", date).Find(&attendances).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var casts []models.Cast
	scoped(c, ac.DB).Find(&casts)
	names := map[uint]string{}
	for _, cast := range casts {
		names[cast.ID] = cast.StageName
	}

	type entry struct {
		models.Attendance
		CastName string `json:"cast_name"`
	}
	out := make([]entry, 0, len(attendances))
	for _, att := range attendances {
		out = append(out, entry{Attendance: att, CastName: names[att.CastID]})
	}

	utils.RespondJSON(c, http.StatusOK, "Attendances", out)
}

// ClockIn opens a cast time card for today.
func (ac *AttendanceController) ClockIn(c *gin.Context) {
	var req struct {
		CastID  uint   `json:"cast_id" binding:"required"`
		ClockIn string `json:"clock_in"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var cast models.Cast
	if err := scoped(c, ac.DB).First(&cast, req.CastID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	now := time.Now()
	date := now.Format("2006-01-02")

	var open int64
	ac.DB.Model(&models.Attendance{}).
		Where("cast_id = ? AND date = ? AND status = ?", req.CastID, date, "working").
		Count(&open)
	if open > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("cast is already clocked in today"))
		return
	}

	clockIn := req.ClockIn
	if clockIn == "" {
		clockIn = now.Format("15:04")
	}

	attendance := models.Attendance{
		StoreID: storeID(c),
		CastID:  req.CastID,
		Date:    date,
		ClockIn: clockIn,
		Status:  "working",
	}
	if err := ac.DB.Create(&attendance).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("cast %s clocked in at %s", cast.StageName, clockIn)
	utils.RespondJSON(c, http.StatusCreated, "Clocked in", attendance)
}

// ClockOut closes the cast's open time card.
func (ac *AttendanceController) ClockOut(c *gin.Context) {
	attendanceID := c.Param("attendance_id")

	var attendance models.Attendance
	if err := scoped(c, ac.DB).First(&attendance, attendanceID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		ClockOut string `json:"clock_out"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	clockOut := req.ClockOut
	if clockOut == "" {
		clockOut = time.Now().Format("15:04")
	}

	attendance.ClockOut = clockOut
	attendance.Status = "finished"
	if err := ac.DB.Save(&attendance).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Clocked out", attendance)
}
