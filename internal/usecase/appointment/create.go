package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/account"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID   uint
	BarberID   uint
	Date       string
	Slot       string
	ServiceIDs []uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.execute(ctx, in)

	outcome := "created"
	if err != nil {
		outcome = "error"
		if be, ok := httperr.AsBusiness(err); ok {
			outcome = be.Code
		}
	}
	metrics.IncBooking(outcome)

	return ap, err
}

func (uc *CreateAppointment) execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Request shape
	// --------------------------------------------------
	if len(in.ServiceIDs) == 0 {
		return nil, domain.ErrNoServices
	}
	if !availability.ValidDate(in.Date) || !availability.ValidSlot(in.Slot) {
		return nil, domain.ErrSlotUnavailable
	}

	// --------------------------------------------------
	// Barber
	// --------------------------------------------------
	ok, err := uc.repo.BarberExists(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, account.ErrBarberNotFound
	}

	// --------------------------------------------------
	// Check + insert, one transaction
	// --------------------------------------------------
	req := domain.BookingRequest{
		ClientID:   in.ClientID,
		BarberID:   in.BarberID,
		Date:       in.Date,
		Slot:       in.Slot,
		ServiceIDs: in.ServiceIDs,
	}

	var ap *models.Appointment
	for attempt := 0; attempt < 2; attempt++ {
		now := uc.clock.Now()
		ap, err = uc.repo.Book(ctx, req, func(snap domain.Snapshot) error {
			return domain.CheckBooking(req, snap, now)
		})
		if !errors.Is(err, domain.ErrConcurrentBooking) {
			break
		}
	}
	if errors.Is(err, domain.ErrConcurrentBooking) {
		return nil, domain.ErrSlotTaken
	}
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ClientID,
		Action:   audit.ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"barber_id": ap.BarberID,
			"date":      ap.Date,
			"slot":      ap.Slot,
		},
	})

	return ap, nil
}
