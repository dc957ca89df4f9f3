package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/cabax/cabax-backend/config"
	"github.com/cabax/cabax-backend/database"
	"github.com/cabax/cabax-backend/models"
	"github.com/cabax/cabax-backend/router"
	"github.com/cabax/cabax-backend/utils"
)

func main() {
	// Running without a .env file is fine in production.
	_ = godotenv.Load()

	utils.InitLogger()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("database connection failed: %v", err)
	}
	utils.InitDB(db)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Store{},
		&models.Table{},
		&models.Cast{},
		&models.Staff{},
		&models.MenuItem{},
		&models.Session{},
		&models.Order{},
		&models.Attendance{},
		&models.StaffAttendance{},
		&models.Shift{},
	); err != nil {
		utils.ErrorLogger.Fatalf("migration failed: %v", err)
	}

	if err := database.Seed(db); err != nil {
		utils.ErrorLogger.Fatalf("seeding failed: %v", err)
	}

	r := router.SetupRouter(db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	utils.InfoLogger.Printf("listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatalf("server stopped: %v", err)
	}
}
