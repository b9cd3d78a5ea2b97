package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ikkim/cafe-backend/internal/app/model"
	"github.com/ikkim/cafe-backend/internal/app/service"
	"github.com/xuri/excelize/v2"
)

const (
	sheetCities = "cities"
	sheetCafes  = "cafes"
	sheetUsers  = "users"
)

// SeedUser is one row of the users sheet
type SeedUser struct {
	Input service.RegisterInput
	Admin bool
}

// Workbook holds every row read from a seed file
type Workbook struct {
	Cities []model.City
	Cafes  []service.CafeInput
	Users  []SeedUser
}

// ReadWorkbook reads the cities, cafes and users sheets. Each sheet is
// optional; its first row names the columns, in any order.
func ReadWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	wb := &Workbook{}

	cityRows, err := readSheet(f, sheetCities)
	if err != nil {
		return nil, err
	}
	for i, row := range cityRows {
		city := model.City{
			Code:  row.get("code"),
			Name:  row.get("name"),
			State: strings.ToUpper(row.get("state")),
		}
		if city.Code == "" || city.Name == "" || len(city.State) != 2 {
			return nil, fmt.Errorf("%s row %d: code, name and a 2-letter state are required", sheetCities, i+2)
		}
		wb.Cities = append(wb.Cities, city)
	}

	cafeRows, err := readSheet(f, sheetCafes)
	if err != nil {
		return nil, err
	}
	for i, row := range cafeRows {
		cafe := service.CafeInput{
			Name:        row.get("name"),
			Description: row.get("description"),
			URL:         row.get("url"),
			Address:     row.get("address"),
			CityCode:    row.get("city_code"),
			ImageURL:    row.get("image_url"),
		}
		if cafe.Name == "" || cafe.Address == "" || cafe.CityCode == "" {
			return nil, fmt.Errorf("%s row %d: name, address and city_code are required", sheetCafes, i+2)
		}
		wb.Cafes = append(wb.Cafes, cafe)
	}

	userRows, err := readSheet(f, sheetUsers)
	if err != nil {
		return nil, err
	}
	for i, row := range userRows {
		admin, _ := strconv.ParseBool(row.get("admin"))
		user := SeedUser{
			Input: service.RegisterInput{
				Username:    row.get("username"),
				Password:    row.get("password"),
				Email:       row.get("email"),
				FirstName:   row.get("first_name"),
				LastName:    row.get("last_name"),
				Description: row.get("description"),
				ImageURL:    row.get("image_url"),
			},
			Admin: admin,
		}
		if user.Input.Username == "" || len(user.Input.Password) < 6 {
			return nil, fmt.Errorf("%s row %d: username and a password of at least 6 characters are required", sheetUsers, i+2)
		}
		wb.Users = append(wb.Users, user)
	}

	return wb, nil
}

type sheetRow struct {
	columns map[string]int
	cells   []string
}

func (r sheetRow) get(column string) string {
	i, ok := r.columns[column]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

// readSheet returns the data rows of a sheet, or nil when it is absent.
// Blank rows are skipped.
func readSheet(f *excelize.File, name string) ([]sheetRow, error) {
	if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
		return nil, nil
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	columns := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(header))] = i
	}

	var out []sheetRow
	for _, cells := range rows[1:] {
		if isBlank(cells) {
			continue
		}
		out = append(out, sheetRow{columns: columns, cells: cells})
	}
	return out, nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
