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

type ReportController struct {
	Reports *services.ReportService
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{Reports: services.NewReportService(db)}
}

// GetDailyReport -> the day's profit report (default today).
func (rc *ReportController) GetDailyReport(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	report, err := rc.Reports.Daily(storeID(c), date)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Daily report", report)
}

// GetMonthlyReport -> the calendar-month report (default current month).
func (rc *ReportController) GetMonthlyReport(c *gin.Context) {
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

	report, err := rc.Reports.Monthly(storeID(c), year, month)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Monthly report", report)
}

// GetDrinkRanking -> the day's drink-back ranking (default today).
func (rc *ReportController) GetDrinkRanking(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	ranking, err := rc.Reports.DrinkRanking(storeID(c), date)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Drink ranking", ranking)
}
