package database

import (
	"fmt"
	"log"

	"api/config"
	"api/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection and migrates the models
func InitDB() {
	dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=disable TimeZone=Europe/Rome",
		config.PostgresHost, config.PostgresPort, config.PostgresUser, config.PostgresDB, config.PostgresPassword)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database: ", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("failed to migrate database: ", err)
	}
}

// Migrate runs the schema migration for all models
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Competition{},
		&models.Participant{},
		&models.Dish{},
		&models.Photo{},
		&models.Vote{},
		&models.LoginAttempt{},
	)
}
