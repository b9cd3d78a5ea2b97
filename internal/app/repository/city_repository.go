package repository

import (
	"github.com/ikkim/cafe-backend/internal/app/model"
	"github.com/ikkim/cafe-backend/pkg/logger"
	"gorm.io/gorm"
)

type CityRepository interface {
	FindAll() ([]model.City, error)
	FindByCode(code string) (*model.City, error)
}

type cityRepository struct {
	db *gorm.DB
}

func NewCityRepository(db *gorm.DB) CityRepository {
	return &cityRepository{db: db}
}

// FindAll returns every city ordered by name
func (r *cityRepository) FindAll() ([]model.City, error) {
	logger.Debug("Finding all cities in database")

	var cities []model.City
	if err := r.db.Order("name ASC").Find(&cities).Error; err != nil {
		logger.Error("Failed to find cities in database", err)
		return nil, err
	}

	logger.Debug("Cities found in database", map[string]interface{}{
		"count": len(cities),
	})
	return cities, nil
}

func (r *cityRepository) FindByCode(code string) (*model.City, error) {
	logger.Debug("Finding city by code in database", map[string]interface{}{
		"city_code": code,
	})

	var city model.City
	if err := r.db.Where("code = ?", code).First(&city).Error; err != nil {
		logger.Error("Failed to find city by code in database", err, map[string]interface{}{
			"city_code": code,
		})
		return nil, err
	}

	return &city, nil
}
