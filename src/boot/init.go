package boot

import (
	"lingua/src/db"
	"lingua/src/models"
	"log"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.School{},
		&models.Course{},
		&models.Tutor{},
		&models.VisaService{},
		&models.Booking{},
		&models.Payment{},
		&models.Review{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}
