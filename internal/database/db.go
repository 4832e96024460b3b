package database

import (
	"freightdesk-backend/internal/config"
	"freightdesk-backend/internal/logger"
	"freightdesk-backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		logger.Get().Fatal("Could not connect to database", zap.Error(err))
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Shipment{},
		&models.ResourceEntry{},
		&models.AuditLog{},
	)
	if err != nil {
		logger.Get().Fatal("AutoMigrate failed", zap.Error(err))
	}

	logger.Get().Info("Database connected, migration complete")
}
