package db

import (
	"github.com/ikkim/cafe-backend/internal/app/model"
	"github.com/ikkim/cafe-backend/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.City{},
		&model.User{},
		&model.Cafe{},
		&model.Like{},
	}
}

// DefaultCities are inserted when the cities table is empty.
var DefaultCities = []model.City{
	{Code: "sf", Name: "San Francisco", State: "CA"},
	{Code: "berk", Name: "Berkeley", State: "CA"},
	{Code: "oak", Name: "Oakland", State: "CA"},
}

// Migrate runs database migrations
func Migrate() error {
	return MigrateDB(DB)
}

func MigrateDB(conn *gorm.DB) error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := conn.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds reference data to the database
func Seed() error {
	return SeedCities(DB)
}

func SeedCities(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&model.City{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Cities already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	cities := make([]model.City, len(DefaultCities))
	copy(cities, DefaultCities)
	if err := conn.Create(&cities).Error; err != nil {
		logger.Error("Failed to seed cities", err)
		return err
	}

	logger.Info("Cities seeded successfully", map[string]interface{}{
		"count": len(cities),
	})
	return nil
}
