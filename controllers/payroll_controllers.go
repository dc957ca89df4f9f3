package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cabax/cabax-backend/services"
	"github.com/cabax/cabax-backend/utils"
)

type PayrollController struct {
	Payroll *services.PayrollService
}

func NewPayrollController(db *gorm.DB) *PayrollController {
	return &PayrollController{Payroll: services.NewPayrollService(db)}
}

// GetCastPayroll -> monthly pay statements, all casts or one via cast_id.
func (pc *PayrollController) GetCastPayroll(c *gin.Context) {
	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("month must be 1-12"))
		return
	}

	var castID *uint
	if raw := c.Query("cast_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		id := uint(parsed)
		castID = &id
	}

	statements, err := pc.Payroll.MonthlyStatements(storeID(c), year, month, castID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cast payroll", statements)
}
