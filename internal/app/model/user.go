package model

import (
	"fmt"
)

const DefaultUserImage = "https://cdn.pixabay.com/photo/2012/04/26/19/43/profile-42914_640.png"

type User struct {
	ID             uint   `gorm:"primarykey" json:"id"`                           // user ID
	Username       string `gorm:"type:text;uniqueIndex;not null" json:"username"` // login name, immutable
	Admin          bool   `gorm:"not null;default:false" json:"admin"`            // may add/edit cafes
	Email          string `gorm:"type:text;not null" json:"email"`
	FirstName      string `gorm:"type:text;not null" json:"first_name"`
	LastName       string `gorm:"type:text;not null" json:"last_name"`
	Description    string `gorm:"type:text;not null" json:"description"`
	ImageURL       string `gorm:"type:text;not null" json:"image_url"`
	HashedPassword string `gorm:"type:text;not null" json:"-"` // bcrypt hash
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}
