package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cabax/cabax-backend/models"
	"github.com/cabax/cabax-backend/services"
	"github.com/cabax/cabax-backend/utils"
)

// StaffAttendanceController handles support-staff working days. Wages are
// computed once at clock-out from the staff's compensation model at that
// moment and stored on the record.
type StaffAttendanceController struct {
	DB *gorm.DB
}

func NewStaffAttendanceController(db *gorm.DB) *StaffAttendanceController {
	return &StaffAttendanceController{DB: db}
}

// GetStaffAttendances -> one date's records with staff info joined, plus the
// day's wage total.
func (sac *StaffAttendanceController) GetStaffAttendances(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	var attendances []models.StaffAttendance
	if err := scoped(c, sac.DB).Where("date = ?", date).Find(&attendances).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var staffList []models.Staff
	scoped(c, sac.DB).Find(&staffList)
	staffByID := map[uint]models.Staff{}
	for _, st := range staffList {
		staffByID[st.ID] = st
	}

	type entry struct {
		models.StaffAttendance
		StaffName string `json:"staff_name"`
		Role      string `json:"role"`
	}
	out := make([]entry, 0, len(attendances))
	total := 0
	for _, att := range attendances {
		st := staffByID[att.StaffID]
		out = append(out, entry{StaffAttendance: att, StaffName: st.Name, Role: st.Role})
		total += att.DailyWage
	}

	utils.RespondJSON(c, http.StatusOK, "Staff attendances", gin.H{
		"attendances": out,
		"total_wage":  total,
	})
}

// StaffClockIn opens a staff working day. A second clock-in on an open day is
// rejected.
func (sac *StaffAttendanceController) StaffClockIn(c *gin.Context) {
	var req struct {
		StaffID uint   `json:"staff_id" binding:"required"`
		ClockIn string `json:"clock_in"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var staff models.Staff
	if err := scoped(c, sac.DB).First(&staff, req.StaffID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	now := time.Now()
	date := now.Format("2006-01-02")

	// One working day per staff per date, even after clock-out.
	var existing int64
	sac.DB.Model(&models.StaffAttendance{}).
		Where("staff_id = ? AND date = ?", req.StaffID, date).
		Count(&existing)
	if existing > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("staff already has an attendance record today"))
		return
	}

	clockIn := req.ClockIn
	if clockIn == "" {
		clockIn = now.Format("15:04")
	}

	attendance := models.StaffAttendance{
		StoreID: storeID(c),
		StaffID: req.StaffID,
		Date:    date,
		ClockIn: clockIn,
	}
	if err := sac.DB.Create(&attendance).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("staff %s clocked in at %s", staff.Name, clockIn)
	utils.RespondJSON(c, http.StatusCreated, "Clocked in", attendance)
}

// StaffClockOut closes a working day and freezes hours and wage.
func (sac *StaffAttendanceController) StaffClockOut(c *gin.Context) {
	attendanceID := c.Param("attendance_id")

	var attendance models.StaffAttendance
	if err := scoped(c, sac.DB).First(&attendance, attendanceID).Error; err != nil {
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

	var staff models.Staff
	if err := sac.DB.First(&staff, attendance.StaffID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	hours, ok := services.WorkedHours(attendance.ClockIn, clockOut)
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid clock time"))
		return
	}

	attendance.ClockOut = clockOut
	attendance.HoursWorked = hours
	attendance.DailyWage = services.DailyWage(staff.SalaryType, staff.SalaryAmount, hours)
	if err := sac.DB.Save(&attendance).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("staff %s clocked out: %.1fh, wage %s", staff.Name, hours, utils.FormatYen(attendance.DailyWage))
	utils.RespondJSON(c, http.StatusOK, "Clocked out", attendance)
}
