package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cabax/cabax-backend/controllers"
	"github.com/cabax/cabax-backend/models"
	"github.com/cabax/cabax-backend/utils"
)

func setupTestDBForSessions() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(&models.Table{}, &models.Cast{}, &models.MenuItem{},
		&models.Session{}, &models.Order{}, &models.Attendance{}, &models.StaffAttendance{})
	if err != nil {
		panic(err)
	}
	db.Create(&models.Table{Name: "A1", Status: models.TableAvailable})
	db.Create(&models.MenuItem{Name: "ビール", Category: "drink", Price: 800, Cost: 200})
	return db
}

func setupSessionRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	sessionCtrl := controllers.NewSessionController(db)
	orderCtrl := controllers.NewOrderController(db)
	router.POST("/sessions", sessionCtrl.CreateSession)
	router.GET("/sessions", sessionCtrl.GetActiveSessions)
	router.GET("/sessions/:session_id/orders", sessionCtrl.GetSessionOrders)
	router.POST("/sessions/:session_id/charges", sessionCtrl.AddCharge)
	router.POST("/sessions/:session_id/extend", sessionCtrl.ExtendSession)
	router.POST("/sessions/:session_id/settle/start", sessionCtrl.StartSettling)
	router.POST("/sessions/:session_id/settle/cancel", sessionCtrl.CancelSettling)
	router.POST("/sessions/:session_id/checkout", sessionCtrl.Checkout)
	router.POST("/orders", orderCtrl.CreateOrder)
	return router
}

func postJSON(router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSessionLifecycle(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSessions()
	router := setupSessionRouter(db)

	// Open
	w := postJSON(router, "/sessions", map[string]interface{}{
		"table_id": 1,
		"guests":   2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var table models.Table
	db.First(&table, 1)
	assert.Equal(t, models.TableOccupied, table.Status)

	// Order a beer and add a set fee.
	w = postJSON(router, "/orders", map[string]interface{}{
		"session_id":   1,
		"menu_item_id": 1,
		"quantity":     2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/sessions/1/charges", map[string]interface{}{
		"label": "セット料金",
		"price": 5000,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var session models.Session
	db.First(&session, 1)
	assert.Equal(t, 800*2+5000, session.CurrentTotal)

	// The bill endpoint resolves display names and echoes the running total.
	req, _ := http.NewRequest("GET", "/sessions/1/orders", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	var resp utils.JSONResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.EqualValues(t, 6600, data["current_total"])
	assert.Len(t, data["orders"].([]interface{}), 2)

	// Checkout frees the table.
	w = postJSON(router, "/sessions/1/checkout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	db.First(&table, 1)
	assert.Equal(t, models.TableAvailable, table.Status)
	db.First(&session, 1)
	assert.Equal(t, models.SessionCompleted, session.Status)
}

func TestSessionExtensionReappliesNominationFee(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSessions()
	router := setupSessionRouter(db)

	w := postJSON(router, "/sessions", map[string]interface{}{"table_id": 1, "guests": 1})
	assert.Equal(t, http.StatusCreated, w.Code)

	label := models.InHouseNominationPrefix + ":れな"
	w = postJSON(router, fmt.Sprintf("/sessions/%d/charges", 1), map[string]interface{}{
		"label": label,
		"price": 3000,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/sessions/1/extend", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp utils.JSONResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Len(t, data["added_charges"].([]interface{}), 1)

	var session models.Session
	db.First(&session, 1)
	assert.Equal(t, 1, session.ExtensionCount)
	assert.Equal(t, 6000, session.CurrentTotal)
}

func TestSettlementLockOverHTTP(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSessions()
	router := setupSessionRouter(db)

	w := postJSON(router, "/sessions", map[string]interface{}{"table_id": 1, "guests": 1})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/sessions/1/settle/start", map[string]interface{}{"staff_name": "田中"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Second device is refused with the holder and the time left.
	w = postJSON(router, "/sessions/1/settle/start", map[string]interface{}{"staff_name": "山田"})
	assert.Equal(t, http.StatusConflict, w.Code)
	var resp utils.JSONResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "田中 is settling this session")

	// Cancel releases the lock for anyone.
	w = postJSON(router, "/sessions/1/settle/cancel", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = postJSON(router, "/sessions/1/settle/start", map[string]interface{}{"staff_name": "山田"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStaleSettlementLockTakenOver(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSessions()
	router := setupSessionRouter(db)

	w := postJSON(router, "/sessions", map[string]interface{}{"table_id": 1, "guests": 1})
	assert.Equal(t, http.StatusCreated, w.Code)

	stale := time.Now().Add(-200 * time.Second)
	db.Model(&models.Session{}).Where("id = ?", 1).Updates(map[string]interface{}{
		"is_settling": true,
		"settling_by": "田中",
		"settling_at": stale,
	})

	w = postJSON(router, "/sessions/1/settle/start", map[string]interface{}{"staff_name": "山田"})
	assert.Equal(t, http.StatusOK, w.Code)

	var session models.Session
	db.First(&session, 1)
	assert.Equal(t, "山田", session.SettlingBy)
}

func TestOrderOnUnknownSession(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSessions()
	router := setupSessionRouter(db)

	w := postJSON(router, "/orders", map[string]interface{}{
		"session_id":   42,
		"menu_item_id": 1,
		"quantity":     1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
