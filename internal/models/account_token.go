package models

import "time"

type TokenPurpose string

const (
	PurposeBarberInvite  TokenPurpose = "barber_invite"
	PurposeVerifyEmail   TokenPurpose = "verify_email"
	PurposePasswordReset TokenPurpose = "password_reset"
)

// AccountToken is a one-time token sent by email. Invitations carry only an
// email; verification and reset tokens also point at the user.
type AccountToken struct {
	ID      uint         `gorm:"primaryKey" json:"id"`
	Token   string       `gorm:"size:64;uniqueIndex;not null" json:"-"`
	Purpose TokenPurpose `gorm:"size:20;not null;index" json:"purpose"`
	Email   string       `gorm:"size:100;not null;index" json:"email"`
	UserID  *uint        `gorm:"index" json:"user_id"`

	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time  `json:"created_at"`
}

func (t AccountToken) Usable(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}
