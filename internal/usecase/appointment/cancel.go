package appointment

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

// Execute cancels an ONGOING appointment of the client. Someone else's
// appointment is reported exactly like a missing one.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	clientID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if ap.ClientID != clientID {
		return nil, domain.ErrAppointmentNotFound
	}

	now := uc.clock.Now()
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	// the sweep may have completed it since the read
	ok, err := uc.repo.TransitionStatus(ctx, ap.ID, domain.StatusOngoing, domain.StatusCancelled, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotCancellable
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &clientID,
		Action:   audit.ActionAppointmentCancelled,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
