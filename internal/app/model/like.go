package model

// Like joins a user and a cafe. The composite key keeps each pair unique.
type Like struct {
	UserID uint `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	CafeID uint `gorm:"primaryKey;autoIncrement:false" json:"cafe_id"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Cafe *Cafe `gorm:"foreignKey:CafeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Like) TableName() string {
	return "likes"
}
