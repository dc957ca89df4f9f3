package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cabax/cabax-backend/models"
	"github.com/cabax/cabax-backend/utils"
)

type StaffController struct {
	DB *gorm.DB
}

func NewStaffController(db *gorm.DB) *StaffController {
	return &StaffController{DB: db}
}

// GetAllStaff -> active staff only
func (sc *StaffController) GetAllStaff(c *gin.Context) {
	var staff []models.Staff
	if err := scoped(c, sc.DB).Where("is_active = ?", true).Find(&staff).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of staff", staff)
}

// CreateStaff -> register a staff member
func (sc *StaffController) CreateStaff(c *gin.Context) {
	var req struct {
		Name         string `json:"name" binding:"required"`
		Role         string `json:"role" binding:"required"`
		SalaryType   string `json:"salary_type"`
		SalaryAmount int    `json:"salary_amount"`
		Phone        string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	staff := models.Staff{
		StoreID:      storeID(c),
		Name:         req.Name,
		Role:         req.Role,
		SalaryType:   req.SalaryType,
		SalaryAmount: req.SalaryAmount,
		Phone:        req.Phone,
		IsActive:     true,
	}
	if staff.SalaryType == "" {
		staff.SalaryType = "hourly"
	}
	if staff.SalaryAmount == 0 {
		staff.SalaryAmount = 1000
	}

	if err := sc.DB.Create(&staff).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("staff registered: %s (role=%s)", staff.Name, staff.Role)
	utils.RespondJSON(c, http.StatusCreated, "Staff created", staff)
}

// UpdateStaff -> partial update
func (sc *StaffController) UpdateStaff(c *gin.Context) {
	staffID := c.Param("staff_id")

	var staff models.Staff
	if err := scoped(c, sc.DB).First(&staff, staffID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name         *string `json:"name"`
		Role         *string `json:"role"`
		SalaryType   *string `json:"salary_type"`
		SalaryAmount *int    `json:"salary_amount"`
		Phone        *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		staff.Name = *req.Name
	}
	if req.Role != nil {
		staff.Role = *req.Role
	}
	if req.SalaryType != nil {
		staff.SalaryType = *req.SalaryType
	}
	if req.SalaryAmount != nil {
		staff.SalaryAmount = *req.SalaryAmount
	}
	if req.Phone != nil {
		staff.Phone = *req.Phone
	}

	if err := sc.DB.Save(&staff).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Staff updated", staff)
}

// DeleteStaff -> soft delete, attendance history stays intact
func (sc *StaffController) DeleteStaff(c *gin.Context) {
	staffID := c.Param("staff_id")

	var staff models.Staff
	if err := scoped(c, sc.DB).First(&staff, staffID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	staff.IsActive = false
	if err := sc.DB.Save(&staff).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Staff deactivated", gin.H{"id": staff.ID})
}
