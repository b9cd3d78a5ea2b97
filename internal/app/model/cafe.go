package model

import (
	"fmt"
)

const DefaultCafeImage = "/static/images/default-cafe.jpg"

type Cafe struct {
	ID          uint   `gorm:"primarykey" json:"id"`                      // cafe ID
	Name        string `gorm:"type:text;not null;index" json:"name"`      // cafe name
	Description string `gorm:"type:text;not null" json:"description"`     // free text
	URL         string `gorm:"column:url;type:text;not null" json:"url"`  // homepage
	Address     string `gorm:"type:text;not null" json:"address"`         // street address
	CityCode    string `gorm:"type:text;not null;index" json:"city_code"` // FK -> cities.code
	ImageURL    string `gorm:"type:text;not null;default:'/static/images/default-cafe.jpg'" json:"image_url"`

	City *City `gorm:"foreignKey:CityCode;references:Code;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"city,omitempty"`
}

func (Cafe) TableName() string {
	return "cafes"
}

// CityState returns "City, ST" for display. City must be preloaded.
func (c *Cafe) CityState() string {
	if c.City == nil {
		return ""
	}
	return fmt.Sprintf("%s, %s", c.City.Name, c.City.State)
}

// MapKey is the file name of the cafe's static map image.
func (c *Cafe) MapKey() string {
	return MapKey(c.ID)
}

func MapKey(cafeID uint) string {
	return fmt.Sprintf("%d.jpg", cafeID)
}
