package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cabax/cabax-backend/models"
	"github.com/cabax/cabax-backend/utils"
)

type CastController struct {
	DB *gorm.DB
}

func NewCastController(db *gorm.DB) *CastController {
	return &CastController{DB: db}
}

type castRequest struct {
	StageName      string `json:"stage_name" binding:"required"`
	Rank           string `json:"rank"`
	SalaryType     string `json:"salary_type"`
	HourlyRate     int    `json:"hourly_rate"`
	MonthlySalary  int    `json:"monthly_salary"`
	DrinkBackRate  *int   `json:"drink_back_rate"`
	CompanionBack  *int   `json:"companion_back"`
	NominationBack *int   `json:"nomination_back"`
	SalesBackRate  int    `json:"sales_back_rate"`
}

// GetAllCasts -> cast roster
func (cc *CastController) GetAllCasts(c *gin.Context) {
	var casts []models.Cast
	if err := scoped(c, cc.DB).Find(&casts).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of casts", casts)
}

// CreateCast -> register a cast; stage names must stay unique per store
// because all commission attribution joins on them
func (cc *CastController) CreateCast(c *gin.Context) {
	var req castRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var clash int64
	scoped(c, cc.DB.Model(&models.Cast{})).Where("stage_name = ?", req.StageName).Count(&clash)
	if clash > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("a cast with this stage name already exists"))
		return
	}

	cast := models.Cast{
		StoreID:       storeID(c),
		StageName:     req.StageName,
		Rank:          req.Rank,
		SalaryType:    req.SalaryType,
		HourlyRate:    req.HourlyRate,
		MonthlySalary: req.MonthlySalary,
		DrinkBackRate: 10,
		CompanionBack: 3000,
		NominationBack: 1000,
		SalesBackRate: req.SalesBackRate,
	}
	if cast.Rank == "" {
		cast.Rank = "regular"
	}
	if cast.SalaryType == "" {
		cast.SalaryType = "hourly"
	}
	if req.DrinkBackRate != nil {
		cast.DrinkBackRate = *req.DrinkBackRate
	}
	if req.CompanionBack != nil {
		cast.CompanionBack = *req.CompanionBack
	}
	if req.NominationBack != nil {
		cast.NominationBack = *req.NominationBack
	}

	if err := cc.DB.Create(&cast).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("cast registered: %s (rank=%s)", cast.StageName, cast.Rank)
	utils.RespondJSON(c, http.StatusCreated, "Cast created", cast)
}

// UpdateCast -> partial update of compensation and rank
func (cc *CastController) UpdateCast(c *gin.Context) {
	castID := c.Param("cast_id")

	var cast models.Cast
	if err := scoped(c, cc.DB).First(&cast, castID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		StageName      *string `json:"stage_name"`
		Rank           *string `json:"rank"`
		SalaryType     *string `json:"salary_type"`
		HourlyRate     *int    `json:"hourly_rate"`
		MonthlySalary  *int    `json:"monthly_salary"`
		DrinkBackRate  *int    `json:"drink_back_rate"`
		CompanionBack  *int    `json:"companion_back"`
		NominationBack *int    `json:"nomination_back"`
		SalesBackRate  *int    `json:"sales_back_rate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.StageName != nil {
		cast.StageName = *req.StageName
	}
	if req.Rank != nil {
		cast.Rank = *req.Rank
	}
	if req.SalaryType != nil {
		cast.SalaryType = *req.SalaryType
	}
	if req.HourlyRate != nil {
		cast.HourlyRate = *req.HourlyRate
	}
	if req.MonthlySalary != nil {
		cast.MonthlySalary = *req.MonthlySalary
	}
	if req.DrinkBackRate != nil {
		cast.DrinkBackRate = *req.DrinkBackRate
	}
	if req.CompanionBack != nil {
		cast.CompanionBack = *req.CompanionBack
	}
	if req.NominationBack != nil {
		cast.NominationBack = *req.NominationBack
	}
	if req.SalesBackRate != nil {
		cast.SalesBackRate = *req.SalesBackRate
	}

	if err := cc.DB.Save(&cast).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cast updated", cast)
}

// DeleteCast -> blocked while sessions still reference the cast
func (cc *CastController) DeleteCast(c *gin.Context) {
	castID := c.Param("cast_id")

	var cast models.Cast
	if err := scoped(c, cc.DB).First(&cast, castID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var referenced int64
	cc.DB.Model(&models.Session{}).Where("cast_id = ?", cast.ID).Count(&referenced)
	if referenced > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("cast is referenced by sessions and cannot be deleted"))
		return
	}

	if err := cc.DB.Delete(&cast).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cast deleted", gin.H{"id": cast.ID})
}
