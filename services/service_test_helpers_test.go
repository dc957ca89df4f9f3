package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cabax/cabax-backend/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
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
	)
	require.NoError(t, err)

	return db
}

func seedTable(t *testing.T, db *gorm.DB, name string) models.Table {
	t.Helper()
	table := models.Table{Name: name, Status: models.TableAvailable}
	require.NoError(t, db.Create(&table).Error)
	return table
}

func seedMenuItem(t *testing.T, db *gorm.DB, name string, price, cost int) models.MenuItem {
	t.Helper()
	item := models.MenuItem{Name: name, Category: "drink", Price: price, Cost: cost}
	require.NoError(t, db.Create(&item).Error)
	return item
}
