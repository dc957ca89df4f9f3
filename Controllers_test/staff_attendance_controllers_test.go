package Controllers_test

import (
	"bytes"
	"encoding/json"
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

func setupTestDBForStaffAttendance() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database")
	}
	if err := db.AutoMigrate(&models.Staff{}, &models.StaffAttendance{}); err != nil {
		panic(err)
	}
	db.Create(&models.Staff{Name: "山田", Role: "waiter", SalaryType: "hourly", SalaryAmount: 1200, IsActive: true})
	db.Create(&models.Staff{Name: "鈴木", Role: "kitchen", SalaryType: "daily", SalaryAmount: 10000, IsActive: true})
	return db
}

func setupStaffAttendanceRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	ctrl := controllers.NewStaffAttendanceController(db)
	router.GET("/staff-attendances", ctrl.GetStaffAttendances)
	router.POST("/staff-attendances/clock-in", ctrl.StaffClockIn)
	router.POST("/staff-attendances/:attendance_id/clock-out", ctrl.StaffClockOut)
	return router
}

func staffPost(router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestStaffClockInAndOut(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForStaffAttendance()
	router := setupStaffAttendanceRouter(db)

	w := staffPost(router, "/staff-attendances/clock-in", map[string]interface{}{
		"staff_id": 1,
		"clock_in": "19:00",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Crosses midnight: 19:00 -> 01:30 is 6.5 hours at 1200/h.
	w = staffPost(router, "/staff-attendances/1/clock-out", map[string]interface{}{
		"clock_out": "01:30",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var att models.StaffAttendance
	db.First(&att, 1)
	assert.InDelta(t, 6.5, att.HoursWorked, 0.001)
	assert.Equal(t, 7800, att.DailyWage)
}

func TestStaffDuplicateClockInRejected(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForStaffAttendance()
	router := setupStaffAttendanceRouter(db)

	w := staffPost(router, "/staff-attendances/clock-in", map[string]interface{}{"staff_id": 1})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = staffPost(router, "/staff-attendances/clock-in", map[string]interface{}{"staff_id": 1})
	assert.Equal(t, http.StatusConflict, w.Code)

	// A different staff member may still clock in.
	w = staffPost(router, "/staff-attendances/clock-in", map[string]interface{}{"staff_id": 2})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestStaffClockInAfterClockOutStillRejected(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForStaffAttendance()
	router := setupStaffAttendanceRouter(db)

	w := staffPost(router, "/staff-attendances/clock-in", map[string]interface{}{
		"staff_id": 1,
		"clock_in": "19:00",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = staffPost(router, "/staff-attendances/1/clock-out", map[string]interface{}{
		"clock_out": "23:00",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// One working day per staff per date: a closed record still blocks a
	// second clock-in.
	w = staffPost(router, "/staff-attendances/clock-in", map[string]interface{}{"staff_id": 1})
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	db.Model(&models.StaffAttendance{}).Where("staff_id = ?", 1).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestStaffAttendanceDailyTotal(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForStaffAttendance()
	router := setupStaffAttendanceRouter(db)

	date := time.Now().Format("2006-01-02")
	db.Create(&models.StaffAttendance{StaffID: 1, Date: date, ClockIn: "19:00", ClockOut: "01:00", HoursWorked: 6, DailyWage: 7200})
	db.Create(&models.StaffAttendance{StaffID: 2, Date: date, ClockIn: "18:00", ClockOut: "02:00", HoursWorked: 8, DailyWage: 10000})

	req, _ := http.NewRequest("GET", "/staff-attendances?date="+date, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp utils.JSONResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.EqualValues(t, 17200, data["total_wage"])

	entries := data["attendances"].([]interface{})
	assert.Len(t, entries, 2)
	first := entries[0].(map[string]interface{})
	assert.Equal(t, "山田", first["staff_name"])
	assert.Equal(t, "waiter", first["role"])
}
