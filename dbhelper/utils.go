package dbhelper

import (
	"log"

	"gorm.io/gorm"

	"stylistweb/models"
)

func SetupCleaner(db *gorm.DB) func() {

	return func() {

		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Session{})
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.AdminSession{})

	}
}

func Migrate(db *gorm.DB, model interface{}) {
	err := db.AutoMigrate(model)
	if err != nil {
		log.Printf("Error while migrating %s", model)
		log.Fatal(err)
	}
}
