package models

import "time"

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleBarber Role = "BARBER"
	RoleClient Role = "CLIENT"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleBarber, RoleClient:
		return true
	}
	return false
}

// User is the single account record for every role. Role specific data
// lives in BarberProfile / ClientProfile keyed by the same ID.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         Role   `gorm:"size:10;index;not null" json:"role"`

	FirstName string `gorm:"size:50" json:"first_name"`
	LastName  string `gorm:"size:50" json:"last_name"`

	IsActive      bool `gorm:"not null;default:false" json:"is_active"`
	EmailVerified bool `gorm:"not null;default:false" json:"email_verified"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
