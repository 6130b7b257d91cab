package models

import "time"

type BarberProfile struct {
	UserID uint `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	User   User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Bio      string `gorm:"size:500" json:"bio"`
	ImageURL string `gorm:"size:255" json:"image_url"`

	UpdatedAt time.Time `json:"updated_at"`
}

type ClientProfile struct {
	UserID uint `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	User   User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Phone string `gorm:"size:20" json:"phone"`

	UpdatedAt time.Time `json:"updated_at"`
}
