package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ikkim/cafe-backend/internal/app/model"
	"github.com/ikkim/cafe-backend/internal/app/service"
	"github.com/ikkim/cafe-backend/internal/db"
	"github.com/ikkim/cafe-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
)

type countingMaps struct {
	saved []uint
}

func (m *countingMaps) SaveMap(ctx context.Context, cafe *model.Cafe) error {
	m.saved = append(m.saved, cafe.ID)
	return nil
}

func (m *countingMaps) MapURL(cafeID uint) string {
	return ""
}

func writeWorkbook(t *testing.T, sheets map[string][][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for name, rows := range sheets {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	require.NoError(t, f.DeleteSheet("Sheet1"))

	path := filepath.Join(t.TempDir(), "seed.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadWorkbook(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		sheetCities: {
			{"code", "name", "state"},
			{"sf", "San Francisco", "ca"},
			{"", "", ""},
			{"la", "Los Angeles", "CA"},
		},
		sheetCafes: {
			{"name", "address", "city_code", "url"},
			{"Test Cafe", "500 Sansome St", "sf", "https://test.example.com"},
		},
		sheetUsers: {
			{"username", "password", "email", "first_name", "last_name", "admin"},
			{"admin", "secret", "admin@test.com", "Ada", "Min", "TRUE"},
		},
	})

	wb, err := ReadWorkbook(path)
	require.NoError(t, err)

	require.Len(t, wb.Cities, 2)
	assert.Equal(t, model.City{Code: "sf", Name: "San Francisco", State: "CA"}, wb.Cities[0])

	require.Len(t, wb.Cafes, 1)
	assert.Equal(t, "https://test.example.com", wb.Cafes[0].URL)
	assert.Empty(t, wb.Cafes[0].Description)

	require.Len(t, wb.Users, 1)
	assert.True(t, wb.Users[0].Admin)
	assert.Equal(t, "Ada", wb.Users[0].Input.FirstName)
}

func TestReadWorkbook_InvalidRows(t *testing.T) {
	tests := []struct {
		name   string
		sheets map[string][][]interface{}
	}{
		{
			name:   "City without state",
			sheets: map[string][][]interface{}{sheetCities: {{"code", "name"}, {"sf", "San Francisco"}}},
		},
		{
			name:   "Cafe without address",
			sheets: map[string][][]interface{}{sheetCafes: {{"name", "city_code"}, {"Test Cafe", "sf"}}},
		},
		{
			name:   "User with short password",
			sheets: map[string][][]interface{}{sheetUsers: {{"username", "password"}, {"test", "abc"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadWorkbook(writeWorkbook(t, tt.sheets))
			assert.Error(t, err)
		})
	}
}

func TestImport(t *testing.T) {
	util.BcryptCost = bcrypt.MinCost

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)
	require.NoError(t, db.SeedCities(testDB))

	maps := &countingMaps{}
	wb := &Workbook{
		Cities: []model.City{
			{Code: "sf", Name: "San Francisco", State: "CA"},
			{Code: "la", Name: "Los Angeles", State: "CA"},
		},
		Cafes: []service.CafeInput{
			{Name: "Test Cafe", Address: "500 Sansome St", CityCode: "la"},
		},
		Users: []SeedUser{
			{Input: registerInput("admin"), Admin: true},
			{Input: registerInput("test")},
		},
	}

	require.NoError(t, Import(context.Background(), testDB, maps, wb))

	var cityCount int64
	testDB.Model(&model.City{}).Count(&cityCount)
	assert.Equal(t, int64(4), cityCount)

	var cafe model.Cafe
	require.NoError(t, testDB.Where("name = ?", "Test Cafe").First(&cafe).Error)
	assert.Equal(t, []uint{cafe.ID}, maps.saved)

	var admin model.User
	require.NoError(t, testDB.Where("username = ?", "admin").First(&admin).Error)
	assert.True(t, admin.Admin)

	// a second run skips existing users
	wb.Cafes = nil
	require.NoError(t, Import(context.Background(), testDB, maps, wb))
	var userCount int64
	testDB.Model(&model.User{}).Count(&userCount)
	assert.Equal(t, int64(2), userCount)
}

func registerInput(username string) service.RegisterInput {
	return service.RegisterInput{
		Username:  username,
		Password:  "secret",
		Email:     username + "@test.com",
		FirstName: "Test",
		LastName:  "User",
	}
}
