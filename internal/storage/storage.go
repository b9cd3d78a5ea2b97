package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ikkim/cafe-backend/internal/app/model"
	"github.com/ikkim/cafe-backend/pkg/logger"
)

// MapStorage persists map images keyed by cafe id. Save overwrites any
// previous image for the same cafe.
type MapStorage interface {
	Save(ctx context.Context, cafeID uint, data []byte) error
	URL(cafeID uint) string
}

// LocalStorage writes images into a directory served under urlPrefix
type LocalStorage struct {
	dir       string
	urlPrefix string
}

func NewLocalStorage(dir, urlPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create map directory: %w", err)
	}
	return &LocalStorage{dir: dir, urlPrefix: urlPrefix}, nil
}

// Path returns the file path for a cafe's map image
func (s *LocalStorage) Path(cafeID uint) string {
	return filepath.Join(s.dir, model.MapKey(cafeID))
}

func (s *LocalStorage) Save(_ context.Context, cafeID uint, data []byte) error {
	path := s.Path(cafeID)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write map image: %w", err)
	}

	logger.Debug("Map image written", map[string]interface{}{
		"cafe_id": cafeID,
		"path":    path,
		"bytes":   len(data),
	})
	return nil
}

func (s *LocalStorage) URL(cafeID uint) string {
	return fmt.Sprintf("%s/%s", s.urlPrefix, model.MapKey(cafeID))
}
