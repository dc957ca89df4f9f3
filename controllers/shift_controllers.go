package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cabax/cabax-backend/models"
	"github.com/cabax/cabax-backend/utils"
)

type ShiftController struct {
	DB *gorm.DB
}

func NewShiftController(db *gorm.DB) *ShiftController {
	return &ShiftController{DB: db}
}

// GetShifts -> planned shifts for a date (default today).
func (sc *ShiftController) GetShifts(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	var shifts []models.Shift
	if err := scoped(c, sc.DB).Where("date = ?", date).Find(&shifts).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var casts []models.Cast
	scoped(c, sc.DB).Find(&casts)
	names := map[uint]string{}
	for _, cast := range casts {
		names[cast.ID] = cast.StageName
	}

	type entry struct {
		models.Shift
		CastName string `json:"cast_name"`
	}
	out := make([]entry, 0, len(shifts))
	for _, shift := range shifts {
		out = append(out, entry{Shift: shift, CastName: names[shift.CastID]})
	}

	utils.RespondJSON(c, http.StatusOK, "Shifts", out)
}

// CreateShift plans a cast shift.
func (sc *ShiftController) CreateShift(c *gin.Context) {
	var req struct {
		CastID    uint   `json:"cast_id" binding:"required"`
		Date      string `json:"date" binding:"required"`
		StartTime string `json:"start_time" binding:"required"`
		EndTime   string `json:"end_time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var cast models.Cast
	if err := scoped(c, sc.DB).First(&cast, req.CastID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	shift := models.Shift{
		StoreID:   storeID(c),
		CastID:    req.CastID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := sc.DB.Create(&shift).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Shift created", shift)
}

// DeleteShift removes a planned shift.
func (sc *ShiftController) DeleteShift(c *gin.Context) {
	shiftID := c.Param("shift_id")

	var shift models.Shift
	if err := scoped(c, sc.DB).First(&shift, shiftID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := sc.DB.Delete(&shift).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Shift deleted", gin.H{"id": shift.ID})
}
