package account

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

var (
	ErrEmailTaken = httperr.NewBusiness(
		"email_taken",
		"An account with this email already exists.",
	)
	ErrInvalidCredentials = httperr.NewBusiness(
		"invalid_credentials",
		"Invalid email or password.",
	)
	ErrEmailNotVerified = httperr.NewBusiness(
		"email_not_verified",
		"Email address has not been verified.",
	)
	ErrInvalidToken = httperr.NewBusiness(
		"invalid_token",
		"Token is invalid or expired.",
	)
	ErrWeakPassword = httperr.NewBusiness(
		"weak_password",
		"Password must have at least 8 characters.",
	)
	ErrTooManyAttempts = httperr.NewBusiness(
		"too_many_attempts",
		"Too many failed login attempts. Try again later.",
	)
	ErrBarberNotFound = httperr.NewBusiness(
		"barber_not_found",
		"Barber does not exist.",
	)
	ErrUserNotFound = httperr.NewBusiness(
		"user_not_found",
		"User does not exist.",
	)
)

const (
	MinPasswordLength = 8

	InviteTTL = 72 * time.Hour
	VerifyTTL = 24 * time.Hour
	ResetTTL  = time.Hour
)

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidatePassword(pw string) error {
	if len(pw) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// BarberView is the public projection of a barber account.
type BarberView struct {
	ID        uint    `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Bio       string  `json:"bio"`
	ImageURL  string  `json:"image_url"`
	Rating    float64 `json:"rating"`
	Reviews   int64   `json:"reviews"`
}

type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	BarberExists(ctx context.Context, id uint) (bool, error)

	// Create inserts the user together with the profile matching its role.
	Create(ctx context.Context, u *models.User, phone string) error

	SetPassword(ctx context.Context, userID uint, hash string) error
	MarkVerified(ctx context.Context, userID uint) error

	GetBarberProfile(ctx context.Context, userID uint) (*models.BarberProfile, error)
	SetBarberImage(ctx context.Context, userID uint, url string) error
	ListActiveBarbers(ctx context.Context) ([]models.User, map[uint]models.BarberProfile, error)
}

type TokenRepository interface {
	Create(ctx context.Context, t *models.AccountToken) error

	// Consume marks a usable token of purpose as used and returns it.
	Consume(ctx context.Context, token string, purpose models.TokenPurpose, now time.Time) (*models.AccountToken, error)
}
