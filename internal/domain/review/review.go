package review

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

var (
	ErrReviewNotAllowed = httperr.NewBusiness(
		"review_not_allowed",
		"Only your COMPLETED appointments can be reviewed.",
	)
	ErrDuplicateReview = httperr.NewBusiness(
		"duplicate_review",
		"You have already reviewed this barber.",
	)
	ErrReviewNotFound = httperr.NewBusiness(
		"review_not_found",
		"Review does not exist.",
	)
	ErrInvalidRating = httperr.NewBusiness(
		"invalid_rating",
		"Rating must be between 1 and 5.",
	)
	ErrNoFields = httperr.NewBusiness(
		"no_fields",
		"No fields provided for update.",
	)
)

const (
	MinRating = 1
	MaxRating = 5
)

func ValidateRating(r int) error {
	if r < MinRating || r > MaxRating {
		return ErrInvalidRating
	}
	return nil
}

// CanReview is the gate between the appointment lifecycle and reviews: the
// appointment must exist, belong to the client and be COMPLETED.
func CanReview(ap *models.Appointment, clientID uint) error {
	if ap == nil || ap.ClientID != clientID || ap.Status != models.StatusCompleted {
		return ErrReviewNotAllowed
	}
	return nil
}

type Summary struct {
	Count   int64   `json:"count"`
	Average float64 `json:"average"`
}

type Repository interface {
	Create(ctx context.Context, r *models.Review) error
	Get(ctx context.Context, id uint) (*models.Review, error)
	Update(ctx context.Context, r *models.Review) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, clientID, barberID uint) (bool, error)
	ListForBarber(ctx context.Context, barberID uint) ([]models.Review, error)
	Summaries(ctx context.Context, barberIDs []uint) (map[uint]Summary, error)
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
}
