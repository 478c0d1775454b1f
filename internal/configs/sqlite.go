package config

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	model "taskmarket.com/taskmarket/internal/models"
)

func NewDatabaseClient(dsn string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Task{},
		&model.Offer{},
		&model.Conversation{},
		&model.Message{},
		&model.Review{},
		&model.Report{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	return db
}
