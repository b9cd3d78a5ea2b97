package model

// City is reference data; the app never mutates it.
type City struct {
	Code  string `gorm:"primaryKey;type:text" json:"code"`      // short code, e.g. "sf"
	Name  string `gorm:"type:text;not null" json:"name"`        // display name
	State string `gorm:"type:varchar(2);not null" json:"state"` // 2-letter state
}

func (City) TableName() string {
	return "cities"
}
