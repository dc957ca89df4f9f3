package config

import (
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the database selected by DB_DRIVER. MySQL in production
// (DB_DSN required), sqlite otherwise with a local file default so the app
// runs with no configuration at all.
func InitDB() (*gorm.DB, error) {
	driver := os.Getenv("DB_DRIVER")
	dsn := os.Getenv("DB_DSN")

	switch driver {
	case "mysql":
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	default:
		if dsn == "" {
			dsn = "cabax.db"
		}
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}

// StrictTableGuard reports whether opening a session on an occupied table is
// rejected. Defaults to on; set STRICT_TABLE_GUARD=false for the legacy
// behavior that allowed a second active session per table.
func StrictTableGuard() bool {
	return os.Getenv("STRICT_TABLE_GUARD") != "false"
}

// AdminKey is the shared secret for store/license administration.
func AdminKey() string {
	key := os.Getenv("ADMIN_KEY")
	if key == "" {
		key = "cabax-super-admin-2025"
	}
	return key
}
