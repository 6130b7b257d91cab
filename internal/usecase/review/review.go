package review

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/review"
	"github.com/BruksfildServices01/barbershop-booking/internal/dto"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	"github.com/BruksfildServices01/barbershop-booking/internal/usecase/availability"
)

const maxCommentLength = 1000

type Reviews struct {
	repo    domain.Repository
	barbers availability.Barbers
	audit   *audit.Dispatcher
	clock   timezone.Clock
}

func NewReviews(
	repo domain.Repository,
	barbers availability.Barbers,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *Reviews {
	return &Reviews{
		repo:    repo,
		barbers: barbers,
		audit:   audit,
		clock:   clock,
	}
}

type CreateInput struct {
	ClientID      uint
	AppointmentID uint
	Rating        int
	Comment       string
}

// ======================================================
// CREATE
// ======================================================

func (uc *Reviews) Create(ctx context.Context, in CreateInput) (*models.Review, error) {
	if err := domain.ValidateRating(in.Rating); err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if err := domain.CanReview(ap, in.ClientID); err != nil {
		return nil, err
	}

	exists, err := uc.repo.Exists(ctx, in.ClientID, ap.BarberID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateReview
	}

	rv := &models.Review{
		AppointmentID: ap.ID,
		ClientID:      in.ClientID,
		BarberID:      ap.BarberID,
		Rating:        in.Rating,
		Comment:       clip(in.Comment),
		CreatedAt:     uc.clock.Now(),
	}
	if err := uc.repo.Create(ctx, rv); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ClientID,
		Action:   audit.ActionReviewCreated,
		Entity:   "review",
		EntityID: &rv.ID,
		Metadata: map[string]any{"barber_id": rv.BarberID, "rating": rv.Rating},
	})

	return rv, nil
}

// ======================================================
// PATCH / DELETE (owner only)
// ======================================================

type UpdateInput struct {
	Rating  *int
	Comment *string
}

func (uc *Reviews) owned(ctx context.Context, clientID, reviewID uint) (*models.Review, error) {
	rv, err := uc.repo.Get(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if rv.ClientID != clientID {
		return nil, domain.ErrReviewNotFound
	}
	return rv, nil
}

func (uc *Reviews) Update(ctx context.Context, clientID, reviewID uint, in UpdateInput) (*models.Review, error) {
	if in.Rating == nil && in.Comment == nil {
		return nil, domain.ErrNoFields
	}

	rv, err := uc.owned(ctx, clientID, reviewID)
	if err != nil {
		return nil, err
	}

	if in.Rating != nil {
		if err := domain.ValidateRating(*in.Rating); err != nil {
			return nil, err
		}
		rv.Rating = *in.Rating
	}
	if in.Comment != nil {
		rv.Comment = clip(*in.Comment)
	}

	now := uc.clock.Now()
	rv.EditedAt = &now

	if err := uc.repo.Update(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (uc *Reviews) Delete(ctx context.Context, clientID, reviewID uint) error {
	if _, err := uc.owned(ctx, clientID, reviewID); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, reviewID)
}

// ======================================================
// PUBLIC LISTING
// ======================================================

func (uc *Reviews) ListForBarber(ctx context.Context, barberID uint) (*dto.BarberReviewsDTO, error) {
	if err := availability.RequireBarber(ctx, uc.barbers, barberID); err != nil {
		return nil, err
	}

	rows, err := uc.repo.ListForBarber(ctx, barberID)
	if err != nil {
		return nil, err
	}
	sums, err := uc.repo.Summaries(ctx, []uint{barberID})
	if err != nil {
		return nil, err
	}

	sum := sums[barberID]
	out := &dto.BarberReviewsDTO{
		BarberID: barberID,
		Average:  sum.Average,
		Count:    sum.Count,
		Reviews:  make([]dto.ReviewDTO, 0, len(rows)),
	}
	for _, rv := range rows {
		item := dto.ReviewDTO{
			ID:         rv.ID,
			ClientName: rv.Client.FullName(),
			Rating:     rv.Rating,
			Comment:    rv.Comment,
			CreatedAt:  rv.CreatedAt.Format(time.RFC3339),
		}
		if rv.EditedAt != nil {
			edited := rv.EditedAt.Format(time.RFC3339)
			item.EditedAt = &edited
		}
		out.Reviews = append(out.Reviews, item)
	}
	return out, nil
}

func clip(comment string) string {
	comment = strings.TrimSpace(comment)
	if len(comment) <= maxCommentLength {
		return comment
	}

	cut := maxCommentLength
	for cut > 0 && !utf8.RuneStart(comment[cut]) {
		cut--
	}
	return comment[:cut]
}
