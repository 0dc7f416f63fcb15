package database

import (
	"log"

	"github.com/jadralna-sola/sailing-school-web/internal/config"
	"github.com/jadralna-sola/sailing-school-web/internal/content"
	"github.com/jadralna-sola/sailing-school-web/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto Migrate
	err = db.AutoMigrate(&models.Signup{}, &content.Document{})
	if err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	return db
}
