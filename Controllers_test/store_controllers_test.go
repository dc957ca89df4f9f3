package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cabax/cabax-backend/config"
	"github.com/cabax/cabax-backend/controllers"
	"github.com/cabax/cabax-backend/models"
	"github.com/cabax/cabax-backend/utils"
)

func setupTestDBForStores() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(&models.Store{}, &models.Table{}, &models.Cast{}, &models.Staff{},
		&models.MenuItem{}, &models.Session{}, &models.Order{},
		&models.Attendance{}, &models.StaffAttendance{}, &models.Shift{})
	if err != nil {
		panic(err)
	}
	return db
}

func setupStoreRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	storeCtrl := controllers.NewStoreController(db)
	router.POST("/license/verify", storeCtrl.VerifyLicense)
	router.GET("/admin/stores", storeCtrl.AdminListStores)
	router.POST("/admin/stores", storeCtrl.AdminCreateStore)
	router.POST("/admin/stores/:store_id/suspend", storeCtrl.AdminSuspendStore)
	router.POST("/admin/stores/:store_id/extend", storeCtrl.AdminExtendStore)
	router.DELETE("/admin/stores/:store_id", storeCtrl.AdminDeleteStore)
	return router
}

func adminPost(router *gin.Engine, path string, payload interface{}, adminKey string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	if adminKey != "" {
		req.Header.Set("X-Admin-Key", adminKey)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdminKeyRequired(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForStores()
	router := setupStoreRouter(db)

	w := adminPost(router, "/admin/stores", map[string]interface{}{"name": "Club Eden"}, "wrong-key")
	assert.Equal(t, http.StatusForbidden, w.Code)

	req, _ := http.NewRequest("GET", "/admin/stores", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminCreateStoreSeedsDefaults(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForStores()
	router := setupStoreRouter(db)

	w := adminPost(router, "/admin/stores", map[string]interface{}{
		"name":        "Club Eden",
		"manager_pin": "1234",
		"months":      3,
	}, config.AdminKey())
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp utils.JSONResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	created := resp.Data.(map[string]interface{})
	licenseKey := created["license_key"].(string)
	assert.Regexp(t, regexp.MustCompile(`^CABAX-[A-Z2-9]{4}-[A-Z2-9]{4}-[A-Z2-9]{4}$`), licenseKey)

	// A fresh store gets a floor plan and a menu.
	var tables, menu int64
	db.Model(&models.Table{}).Where("store_id = ?", 1).Count(&tables)
	db.Model(&models.MenuItem{}).Where("store_id = ?", 1).Count(&menu)
	assert.Greater(t, tables, int64(0))
	assert.Greater(t, menu, int64(0))

	// License verification is public.
	w = adminPost(router, "/license/verify", map[string]interface{}{"license_key": licenseKey}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	status := resp.Data.(map[string]interface{})
	assert.Equal(t, "active", status["status"])
	assert.Equal(t, "Club Eden", status["store_name"])
}

func TestAdminSuspendAndDeleteStore(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForStores()
	router := setupStoreRouter(db)

	w := adminPost(router, "/admin/stores", map[string]interface{}{"name": "Club Eden"}, config.AdminKey())
	assert.Equal(t, http.StatusCreated, w.Code)

	w = adminPost(router, "/admin/stores/1/suspend", nil, config.AdminKey())
	assert.Equal(t, http.StatusOK, w.Code)
	var store models.Store
	db.First(&store, 1)
	assert.Equal(t, models.StoreSuspended, store.Status)

	req, _ := http.NewRequest("DELETE", "/admin/stores/1", nil)
	req.Header.Set("X-Admin-Key", config.AdminKey())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Owned rows go with the store.
	var tables int64
	db.Model(&models.Table{}).Where("store_id = ?", 1).Count(&tables)
	assert.EqualValues(t, 0, tables)
}

func TestVerifyUnknownLicense(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForStores()
	router := setupStoreRouter(db)

	w := adminPost(router, "/license/verify", map[string]interface{}{"license_key": "CABAX-0000-0000-0000"}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
