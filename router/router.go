package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cabax/cabax-backend/controllers"
	"github.com/cabax/cabax-backend/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.CORSMiddlewares())

	authController := controllers.NewAuthController(db)
	tableController := controllers.NewTableController(db)
	castController := controllers.NewCastController(db)
	staffController := controllers.NewStaffController(db)
	menuController := controllers.NewMenuController(db)
	sessionController := controllers.NewSessionController(db)
	orderController := controllers.NewOrderController(db)
	attendanceController := controllers.NewAttendanceController(db)
	staffAttendanceController := controllers.NewStaffAttendanceController(db)
	shiftController := controllers.NewShiftController(db)
	reportController := controllers.NewReportController(db)
	payrollController := controllers.NewPayrollController(db)
	storeController := controllers.NewStoreController(db)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/login", authController.Login)
	r.POST("/license/verify", storeController.VerifyLicense)
	r.GET("/ws/floor", controllers.FloorSocket)

	// Store/license administration is guarded by the admin key, not a JWT.
	admin := r.Group("/admin/stores")
	{
		admin.GET("", storeController.AdminListStores)
		admin.POST("", storeController.AdminCreateStore)
		admin.PUT("/:store_id", storeController.AdminUpdateStore)
		admin.POST("/:store_id/extend", storeController.AdminExtendStore)
		admin.POST("/:store_id/suspend", storeController.AdminSuspendStore)
		admin.POST("/:store_id/activate", storeController.AdminActivateStore)
		admin.DELETE("/:store_id", storeController.AdminDeleteStore)
	}

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	api.Use(middlewares.StoreScope())
	{
		api.GET("/tables", tableController.GetAllTables)
		api.POST("/tables", tableController.CreateTable)
		api.PUT("/tables/:table_id", tableController.UpdateTable)
		api.DELETE("/tables/:table_id", tableController.DeleteTable)

		api.GET("/casts", castController.GetAllCasts)
		api.POST("/casts", castController.CreateCast)
		api.PUT("/casts/:cast_id", castController.UpdateCast)
		api.DELETE("/casts/:cast_id", castController.DeleteCast)

		api.GET("/staff", staffController.GetAllStaff)
		api.POST("/staff", staffController.CreateStaff)
		api.PUT("/staff/:staff_id", staffController.UpdateStaff)
		api.DELETE("/staff/:staff_id", staffController.DeleteStaff)

		api.GET("/menu", menuController.GetAllMenuItems)
		api.POST("/menu", menuController.CreateMenuItem)
		api.PUT("/menu/:item_id", menuController.UpdateMenuItem)
		api.DELETE("/menu/:item_id", menuController.DeleteMenuItem)

		api.GET("/sessions", sessionController.GetActiveSessions)
		api.POST("/sessions", sessionController.CreateSession)
		api.GET("/sessions/:session_id", sessionController.GetSession)
		api.GET("/sessions/:session_id/orders", sessionController.GetSessionOrders)
		api.POST("/sessions/:session_id/charges", sessionController.AddCharge)
		api.POST("/sessions/:session_id/extend", sessionController.ExtendSession)
		api.POST("/sessions/:session_id/settle/start", sessionController.StartSettling)
		api.POST("/sessions/:session_id/settle/cancel", sessionController.CancelSettling)
		api.POST("/sessions/:session_id/checkout", sessionController.Checkout)
		api.POST("/sessions/:session_id/call-staff", sessionController.CallStaff)

		api.GET("/orders", orderController.GetAllOrders)
		api.POST("/orders", orderController.CreateOrder)
		api.POST("/orders/:order_id/serve", orderController.ServeOrder)

		api.GET("/attendances", attendanceController.GetAttendances)
		api.POST("/attendances/clock-in", attendanceController.ClockIn)
		api.POST("/attendances/:attendance_id/clock-out", attendanceController.ClockOut)

		api.GET("/staff-attendances", staffAttendanceController.GetStaffAttendances)
		api.POST("/staff-attendances/clock-in", staffAttendanceController.StaffClockIn)
		api.POST("/staff-attendances/:attendance_id/clock-out", staffAttendanceController.StaffClockOut)

		api.GET("/shifts", shiftController.GetShifts)
		api.POST("/shifts", shiftController.CreateShift)
		api.DELETE("/shifts/:shift_id", shiftController.DeleteShift)

		api.GET("/reports/daily", reportController.GetDailyReport)
		api.GET("/reports/monthly", reportController.GetMonthlyReport)
		api.GET("/reports/drink-ranking", reportController.GetDrinkRanking)

		api.GET("/payroll/casts", payrollController.GetCastPayroll)

		api.GET("/store/settings", storeController.GetSettings)
		api.PUT("/store/settings", storeController.UpdateSettings)
	}

	return r
}
