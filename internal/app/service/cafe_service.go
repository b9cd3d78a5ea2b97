package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ikkim/cafe-backend/internal/app/model"
	"github.com/ikkim/cafe-backend/internal/app/repository"
	apperrors "github.com/ikkim/cafe-backend/internal/errors"
	"github.com/ikkim/cafe-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrCafeNotFound = errors.New("cafe not found")

// CafeInput carries the editable cafe fields
type CafeInput struct {
	Name        string
	Description string
	URL         string
	Address     string
	CityCode    string
	ImageURL    string
}

type CafeService interface {
	ListCafes() ([]model.Cafe, error)
	GetCafe(id uint) (*model.Cafe, error)
	ListCityChoices() ([]model.City, error)
	CreateCafe(ctx context.Context, input CafeInput) (*model.Cafe, error)
	UpdateCafe(ctx context.Context, id uint, input CafeInput) (*model.Cafe, bool, error)
}

type cafeService struct {
	db       *gorm.DB
	cafeRepo repository.CafeRepository
	cityRepo repository.CityRepository
	maps     MapService
}

func NewCafeService(
	db *gorm.DB,
	cafeRepo repository.CafeRepository,
	cityRepo repository.CityRepository,
	maps MapService,
) CafeService {
	return &cafeService{
		db:       db,
		cafeRepo: cafeRepo,
		cityRepo: cityRepo,
		maps:     maps,
	}
}

func (s *cafeService) ListCafes() ([]model.Cafe, error) {
	return s.cafeRepo.FindAll()
}

func (s *cafeService) GetCafe(id uint) (*model.Cafe, error) {
	cafe, err := s.cafeRepo.FindByID(id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			logger.Warn("Cafe not found", map[string]interface{}{
				"cafe_id": id,
			})
			return nil, ErrCafeNotFound
		}
		return nil, err
	}
	return cafe, nil
}

func (s *cafeService) ListCityChoices() ([]model.City, error) {
	return s.cityRepo.FindAll()
}

// CreateCafe inserts the cafe and saves its map in one transaction. A map
// failure rolls the insert back.
func (s *cafeService) CreateCafe(ctx context.Context, input CafeInput) (*model.Cafe, error) {
	logger.Info("Creating cafe", map[string]interface{}{
		"name":      input.Name,
		"city_code": input.CityCode,
	})

	cafe := &model.Cafe{}
	applyCafeInput(cafe, input)

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during cafe creation, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"name": input.Name,
			})
			panic(r)
		}
	}()

	repo := s.cafeRepo.WithTx(tx)
	if err := repo.Create(cafe); err != nil {
		tx.Rollback()
		return nil, err
	}

	// reload inside the transaction to pick up the city
	created, err := repo.FindByID(cafe.ID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := s.maps.SaveMap(ctx, created); err != nil {
		tx.Rollback()
		logger.Error("Cafe creation rolled back", err, map[string]interface{}{
			"name": input.Name,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit cafe creation", err, map[string]interface{}{
			"name": input.Name,
		})
		return nil, err
	}

	logger.Info("Cafe created successfully", map[string]interface{}{
		"cafe_id": created.ID,
		"name":    created.Name,
	})
	return created, nil
}

// UpdateCafe saves the new fields and re-fetches the map only when the
// address or city changed. The bool reports whether the map was refreshed.
func (s *cafeService) UpdateCafe(ctx context.Context, id uint, input CafeInput) (*model.Cafe, bool, error) {
	cafe, err := s.GetCafe(id)
	if err != nil {
		return nil, false, err
	}

	locationChanged := cafe.Address != input.Address || cafe.CityCode != input.CityCode

	logger.Info("Updating cafe", map[string]interface{}{
		"cafe_id":          id,
		"location_changed": locationChanged,
	})

	applyCafeInput(cafe, input)
	cafe.City = nil

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during cafe update, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"cafe_id": id,
			})
			panic(r)
		}
	}()

	repo := s.cafeRepo.WithTx(tx)
	if err := repo.Update(cafe); err != nil {
		tx.Rollback()
		return nil, false, err
	}

	updated, err := repo.FindByID(id)
	if err != nil {
		tx.Rollback()
		return nil, false, err
	}

	if locationChanged {
		if err := s.maps.SaveMap(ctx, updated); err != nil {
			tx.Rollback()
			logger.Error("Cafe update rolled back", err, map[string]interface{}{
				"cafe_id": id,
			})
			return nil, false, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit cafe update", err, map[string]interface{}{
			"cafe_id": id,
		})
		return nil, false, err
	}

	logger.Info("Cafe updated successfully", map[string]interface{}{
		"cafe_id":     id,
		"map_fetched": locationChanged,
	})
	return updated, locationChanged, nil
}

func applyCafeInput(cafe *model.Cafe, input CafeInput) {
	cafe.Name = input.Name
	cafe.Description = input.Description
	cafe.URL = input.URL
	cafe.Address = input.Address
	cafe.CityCode = input.CityCode
	cafe.ImageURL = orDefault(input.ImageURL, model.DefaultCafeImage)
}
