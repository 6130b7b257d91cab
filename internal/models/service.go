package models

import "time"

type Service struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"not null;uniqueIndex:ux_services_barber_name" json:"barber_id"`
	Barber   User `gorm:"foreignKey:BarberID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name string `gorm:"size:100;not null" json:"name"`
	// NameKey is the lowercased name backing the per-barber uniqueness rule.
	NameKey string  `gorm:"size:100;not null;uniqueIndex:ux_services_barber_name" json:"-"`
	Price   float64 `gorm:"type:numeric(10,2);not null" json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
