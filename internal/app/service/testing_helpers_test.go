package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ikkim/cafe-backend/internal/db"
	"github.com/ikkim/cafe-backend/pkg/util"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var errMapUnavailable = errors.New("map provider unavailable")

func init() {
	util.BcryptCost = bcrypt.MinCost
}

func setupTestDB(t *testing.T) *gorm.DB {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	require.NoError(t, db.SeedCities(testDB))
	return testDB
}

type fetchCall struct {
	Address string
	City    string
	State   string
}

type fakeFetcher struct {
	mu    sync.Mutex
	calls []fetchCall
	err   error
}

func (f *fakeFetcher) FetchStaticMap(ctx context.Context, address, city, state string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fetchCall{Address: address, City: city, State: state})
	if f.err != nil {
		return nil, f.err
	}
	return []byte(fmt.Sprintf("map:%s,%s,%s", address, city, state)), nil
}

func (f *fakeFetcher) Calls() []fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fetchCall(nil), f.calls...)
}

type fakeStorage struct {
	mu    sync.Mutex
	files map[uint][]byte
	err   error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: map[uint][]byte{}}
}

func (s *fakeStorage) Save(ctx context.Context, cafeID uint, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.files[cafeID] = data
	return nil
}

func (s *fakeStorage) URL(cafeID uint) string {
	return fmt.Sprintf("/static/maps/%d.jpg", cafeID)
}

func (s *fakeStorage) File(cafeID uint) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[cafeID]
	return data, ok
}
