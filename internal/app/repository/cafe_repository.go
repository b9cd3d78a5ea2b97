package repository

import (
	"github.com/ikkim/cafe-backend/internal/app/model"
	"github.com/ikkim/cafe-backend/pkg/logger"
	"gorm.io/gorm"
)

type CafeRepository interface {
	WithTx(tx *gorm.DB) CafeRepository
	FindAll() ([]model.Cafe, error)
	FindByID(id uint) (*model.Cafe, error)
	Create(cafe *model.Cafe) error
	Update(cafe *model.Cafe) error
}

type cafeRepository struct {
	db *gorm.DB
}

func NewCafeRepository(db *gorm.DB) CafeRepository {
	return &cafeRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *cafeRepository) WithTx(tx *gorm.DB) CafeRepository {
	return &cafeRepository{db: tx}
}

// FindAll returns every cafe ordered by name, with its city loaded
func (r *cafeRepository) FindAll() ([]model.Cafe, error) {
	logger.Debug("Finding all cafes in database")

	var cafes []model.Cafe
	if err := r.db.Preload("City").Order("name ASC").Find(&cafes).Error; err != nil {
		logger.Error("Failed to find cafes in database", err)
		return nil, err
	}

	logger.Debug("Cafes found in database", map[string]interface{}{
		"count": len(cafes),
	})
	return cafes, nil
}

func (r *cafeRepository) FindByID(id uint) (*model.Cafe, error) {
	logger.Debug("Finding cafe by ID in database", map[string]interface{}{
		"cafe_id": id,
	})

	var cafe model.Cafe
	if err := r.db.Preload("City").First(&cafe, id).Error; err != nil {
		logger.Error("Failed to find cafe by ID in database", err, map[string]interface{}{
			"cafe_id": id,
		})
		return nil, err
	}

	logger.Debug("Cafe found by ID in database", map[string]interface{}{
		"cafe_id": cafe.ID,
		"name":    cafe.Name,
	})
	return &cafe, nil
}

func (r *cafeRepository) Create(cafe *model.Cafe) error {
	logger.Debug("Creating cafe in database", map[string]interface{}{
		"name":      cafe.Name,
		"city_code": cafe.CityCode,
	})

	if err := r.db.Omit("City").Create(cafe).Error; err != nil {
		logger.Error("Failed to create cafe in database", err, map[string]interface{}{
			"name":      cafe.Name,
			"city_code": cafe.CityCode,
		})
		return err
	}

	logger.Debug("Cafe created in database", map[string]interface{}{
		"cafe_id": cafe.ID,
		"name":    cafe.Name,
	})
	return nil
}

func (r *cafeRepository) Update(cafe *model.Cafe) error {
	logger.Debug("Updating cafe in database", map[string]interface{}{
		"cafe_id": cafe.ID,
	})

	if err := r.db.Omit("City").Save(cafe).Error; err != nil {
		logger.Error("Failed to update cafe in database", err, map[string]interface{}{
			"cafe_id": cafe.ID,
		})
		return err
	}

	logger.Debug("Cafe updated in database", map[string]interface{}{
		"cafe_id": cafe.ID,
		"name":    cafe.Name,
	})
	return nil
}
