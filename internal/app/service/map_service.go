package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ikkim/cafe-backend/internal/app/model"
	"github.com/ikkim/cafe-backend/internal/storage"
	"github.com/ikkim/cafe-backend/pkg/logger"
)

var ErrCityNotLoaded = errors.New("cafe city not loaded")

// MapFetcher retrieves static map image bytes for an address
type MapFetcher interface {
	FetchStaticMap(ctx context.Context, address, city, state string) ([]byte, error)
}

type MapService interface {
	SaveMap(ctx context.Context, cafe *model.Cafe) error
	MapURL(cafeID uint) string
}

type mapService struct {
	fetcher MapFetcher
	store   storage.MapStorage
}

func NewMapService(fetcher MapFetcher, store storage.MapStorage) MapService {
	return &mapService{
		fetcher: fetcher,
		store:   store,
	}
}

// SaveMap fetches the map for the cafe's address and stores it under the
// cafe id, replacing any earlier image. cafe.City must be loaded.
func (s *mapService) SaveMap(ctx context.Context, cafe *model.Cafe) error {
	if cafe.City == nil {
		return ErrCityNotLoaded
	}

	logger.Info("Fetching cafe map", map[string]interface{}{
		"cafe_id": cafe.ID,
		"address": cafe.Address,
		"city":    cafe.City.Name,
	})

	data, err := s.fetcher.FetchStaticMap(ctx, cafe.Address, cafe.City.Name, cafe.City.State)
	if err != nil {
		logger.Error("Failed to fetch cafe map", err, map[string]interface{}{
			"cafe_id": cafe.ID,
		})
		return fmt.Errorf("fetch map for cafe %d: %w", cafe.ID, err)
	}

	if err := s.store.Save(ctx, cafe.ID, data); err != nil {
		logger.Error("Failed to save cafe map", err, map[string]interface{}{
			"cafe_id": cafe.ID,
		})
		return fmt.Errorf("save map for cafe %d: %w", cafe.ID, err)
	}

	logger.Info("Cafe map saved", map[string]interface{}{
		"cafe_id": cafe.ID,
		"bytes":   len(data),
	})
	return nil
}

func (s *mapService) MapURL(cafeID uint) string {
	return s.store.URL(cafeID)
}
