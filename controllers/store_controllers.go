package controllers

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cabax/cabax-backend/config"
	"github.com/cabax/cabax-backend/database"
	"github.com/cabax/cabax-backend/models"
	"github.com/cabax/cabax-backend/utils"
)

// StoreController serves both tenant-facing store settings and the
// admin-key-protected store/license administration surface.
type StoreController struct {
	DB *gorm.DB
}

func NewStoreController(db *gorm.DB) *StoreController {
	return &StoreController{DB: db}
}

const licenseKeyAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// generateLicenseKey builds a key like CABAX-7KQ2-M4XN-P9R3. The alphabet
// skips lookalike characters since keys are read over the phone.
func generateLicenseKey() string {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic(err)
	}
	for i := range buf {
		buf[i] = licenseKeyAlphabet[int(buf[i])%len(licenseKeyAlphabet)]
	}
	return fmt.Sprintf("CABAX-%s-%s-%s", buf[0:4], buf[4:8], buf[8:12])
}

func (stc *StoreController) requireAdminKey(c *gin.Context) bool {
	if c.GetHeader("X-Admin-Key") != config.AdminKey() {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return false
	}
	return true
}

// GetSettings -> the current store's profile and business hours.
func (stc *StoreController) GetSettings(c *gin.Context) {
	id := storeID(c)
	if id == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("no store in scope"))
		return
	}

	var store models.Store
	if err := stc.DB.First(&store, *id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Store settings", store)
}

// UpdateSettings -> tenant-editable fields only; licensing fields stay
// admin-only.
func (stc *StoreController) UpdateSettings(c *gin.Context) {
	id := storeID(c)
	if id == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("no store in scope"))
		return
	}

	var store models.Store
	if err := stc.DB.First(&store, *id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name                 *string `json:"name"`
		OwnerName            *string `json:"owner_name"`
		Phone                *string `json:"phone"`
		Email                *string `json:"email"`
		Address              *string `json:"address"`
		ManagerPIN           *string `json:"manager_pin"`
		StaffPIN             *string `json:"staff_pin"`
		Password             *string `json:"password"`
		BusinessStartMinutes *int    `json:"business_start_minutes"`
		BusinessEndMinutes   *int    `json:"business_end_minutes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		store.Name = *req.Name
	}
	if req.OwnerName != nil {
		store.OwnerName = *req.OwnerName
	}
	if req.Phone != nil {
		store.Phone = *req.Phone
	}
	if req.Email != nil {
		store.Email = *req.Email
	}
	if req.Address != nil {
		store.Address = *req.Address
	}
	if req.ManagerPIN != nil {
		store.ManagerPIN = *req.ManagerPIN
	}
	if req.StaffPIN != nil {
		store.StaffPIN = *req.StaffPIN
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		store.HashedPassword = string(hashed)
	}
	if req.BusinessStartMinutes != nil {
		store.BusinessStartMinutes = *req.BusinessStartMinutes
		store.BusinessStartHour = *req.BusinessStartMinutes / 60
	}
	if req.BusinessEndMinutes != nil {
		store.BusinessEndMinutes = *req.BusinessEndMinutes
		store.BusinessEndHour = *req.BusinessEndMinutes / 60
	}

	if err := stc.DB.Save(&store).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Store settings updated", store)
}

// VerifyLicense -> public status check used by the client before login.
func (stc *StoreController) VerifyLicense(c *gin.Context) {
	var req struct {
		LicenseKey string `json:"license_key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var store models.Store
	if err := stc.DB.Where("license_key = ?", req.LicenseKey).First(&store).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("license key not found"))
		return
	}

	status := store.Status
	if status == models.StoreActive && time.Now().After(store.ExpiresAt) {
		status = models.StoreExpired
	}

	utils.RespondJSON(c, http.StatusOK, "License status", gin.H{
		"store_id":   store.ID,
		"store_name": store.Name,
		"status":     status,
		"expires_at": store.ExpiresAt,
		"plan":       store.Plan,
	})
}

// AdminListStores -> every licensed store.
func (stc *StoreController) AdminListStores(c *gin.Context) {
	if !stc.requireAdminKey(c) {
		return
	}

	var stores []models.Store
	if err := stc.DB.Order("id").Find(&stores).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of stores", stores)
}

// AdminCreateStore provisions a store: generates the license key, hashes the
// password and seeds the default floor plan and menu.
func (stc *StoreController) AdminCreateStore(c *gin.Context) {
	if !stc.requireAdminKey(c) {
		return
	}

	var req struct {
		Name       string `json:"name" binding:"required"`
		Username   string `json:"username"`
		Password   string `json:"password"`
		ManagerPIN string `json:"manager_pin"`
		StaffPIN   string `json:"staff_pin"`
		Plan       string `json:"plan"`
		MonthlyFee int    `json:"monthly_fee"`
		Months     int    `json:"months"`
		OwnerName  string `json:"owner_name"`
		Phone      string `json:"phone"`
		Email      string `json:"email"`
		Address    string `json:"address"`
		Notes      string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Months <= 0 {
		req.Months = 1
	}

	store := models.Store{
		Name:       req.Name,
		LicenseKey: generateLicenseKey(),
		ManagerPIN: req.ManagerPIN,
		StaffPIN:   req.StaffPIN,
		ExpiresAt:  time.Now().AddDate(0, req.Months, 0),
		Status:     models.StoreActive,
		Plan:       req.Plan,
		MonthlyFee: req.MonthlyFee,
		OwnerName:  req.OwnerName,
		Phone:      req.Phone,
		Email:      req.Email,
		Address:    req.Address,
		Notes:      req.Notes,

		BusinessStartHour:    18,
		BusinessEndHour:      6,
		BusinessStartMinutes: 18 * 60,
		BusinessEndMinutes:   6 * 60,
	}
	if store.Plan == "" {
		store.Plan = "standard"
	}
	if store.MonthlyFee == 0 {
		store.MonthlyFee = 30000
	}
	if req.Username != "" {
		var clash int64
		stc.DB.Model(&models.Store{}).Where("username = ?", req.Username).Count(&clash)
		if clash > 0 {
			utils.RespondError(c, http.StatusConflict, errors.New("username already in use"))
			return
		}
		store.Username = &req.Username
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		store.HashedPassword = string(hashed)
	}

	if err := stc.DB.Create(&store).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := database.SeedStoreDefaults(stc.DB, store.ID); err != nil {
		utils.ErrorLogger.Printf("seeding defaults for store %d failed: %v", store.ID, err)
	}

	utils.InfoLogger.Printf("store provisioned: %s (%s)", store.Name, store.LicenseKey)
	utils.RespondJSON(c, http.StatusCreated, "Store created", store)
}

// AdminUpdateStore -> licensing and contact fields.
func (stc *StoreController) AdminUpdateStore(c *gin.Context) {
	if !stc.requireAdminKey(c) {
		return
	}

	var store models.Store
	if err := stc.DB.First(&store, c.Param("store_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name       *string `json:"name"`
		Plan       *string `json:"plan"`
		MonthlyFee *int    `json:"monthly_fee"`
		OwnerName  *string `json:"owner_name"`
		Phone      *string `json:"phone"`
		Email      *string `json:"email"`
		Address    *string `json:"address"`
		Notes      *string `json:"notes"`
		ManagerPIN *string `json:"manager_pin"`
		StaffPIN   *string `json:"staff_pin"`
		Password   *string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		store.Name = *req.Name
	}
	if req.Plan != nil {
		store.Plan = *req.Plan
	}
	if req.MonthlyFee != nil {
		store.MonthlyFee = *req.MonthlyFee
	}
	if req.OwnerName != nil {
		store.OwnerName = *req.OwnerName
	}
	if req.Phone != nil {
		store.Phone = *req.Phone
	}
	if req.Email != nil {
		store.Email = *req.Email
	}
	if req.Address != nil {
		store.Address = *req.Address
	}
	if req.Notes != nil {
		store.Notes = *req.Notes
	}
	if req.ManagerPIN != nil {
		store.ManagerPIN = *req.ManagerPIN
	}
	if req.StaffPIN != nil {
		store.StaffPIN = *req.StaffPIN
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		store.HashedPassword = string(hashed)
	}

	if err := stc.DB.Save(&store).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Store updated", store)
}

// AdminExtendStore pushes the expiry forward and reactivates an expired
// license. Extension counts from the current expiry when it is still in the
// future, from today when already lapsed.
func (stc *StoreController) AdminExtendStore(c *gin.Context) {
	if !stc.requireAdminKey(c) {
		return
	}

	var store models.Store
	if err := stc.DB.First(&store, c.Param("store_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Months int `json:"months"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Months <= 0 {
		req.Months = 1
	}

	base := store.ExpiresAt
	if base.Before(time.Now()) {
		base = time.Now()
	}
	store.ExpiresAt = base.AddDate(0, req.Months, 0)
	if store.Status == models.StoreExpired {
		store.Status = models.StoreActive
	}

	if err := stc.DB.Save(&store).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("store %d extended %d month(s), expires %s", store.ID, req.Months, store.ExpiresAt.Format("2006-01-02"))
	utils.RespondJSON(c, http.StatusOK, "License extended", store)
}

// AdminSuspendStore blocks logins immediately.
func (stc *StoreController) AdminSuspendStore(c *gin.Context) {
	stc.adminSetStatus(c, models.StoreSuspended, "Store suspended")
}

// AdminActivateStore lifts a suspension.
func (stc *StoreController) AdminActivateStore(c *gin.Context) {
	stc.adminSetStatus(c, models.StoreActive, "Store activated")
}

func (stc *StoreController) adminSetStatus(c *gin.Context, status, message string) {
	if !stc.requireAdminKey(c) {
		return
	}

	var store models.Store
	if err := stc.DB.First(&store, c.Param("store_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	store.Status = status
	if err := stc.DB.Save(&store).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, store)
}

// AdminDeleteStore removes a store and every row it owns.
func (stc *StoreController) AdminDeleteStore(c *gin.Context) {
	if !stc.requireAdminKey(c) {
		return
	}

	var store models.Store
	if err := stc.DB.First(&store, c.Param("store_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	err := stc.DB.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Order{}, &models.Session{}, &models.Attendance{},
			&models.StaffAttendance{}, &models.Shift{}, &models.Table{},
			&models.Cast{}, &models.Staff{}, &models.MenuItem{},
		} {
			if err := tx.Where("store_id = ?", store.ID).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&store).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("store %d (%s) deleted with all data", store.ID, store.Name)
	utils.RespondJSON(c, http.StatusOK, "Store deleted", gin.H{"id": store.ID})
}
