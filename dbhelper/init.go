package dbhelper

import (
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"stylistweb/models"
	"stylistweb/services"
)

// SetupDB opens the local state store: one SQLite file holding the sessions
// this service keeps on behalf of browsers, so logins survive restarts.
func SetupDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(
		services.GetEnv("STATE_DB_PATH", "stylistweb.db"),
	), &gorm.Config{})
	if err != nil {
		panic(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Minute * 5)
	db.Logger.LogMode(logger.LogLevel(logger.Info))

	Migrate(db, &models.Session{})
	Migrate(db, &models.AdminSession{})

	return db
}

func SetupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic(err)
	}
	Migrate(db, &models.Session{})
	Migrate(db, &models.AdminSession{})
	return db
}
