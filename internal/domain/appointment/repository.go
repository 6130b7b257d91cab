package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type Repository interface {
	// -------- Barber --------
	BarberExists(ctx context.Context, barberID uint) (bool, error)

	// -------- Booking --------

	// Book loads a Snapshot under lock, hands it to decide and inserts the
	// appointment with its service snapshots only when decide returns nil.
	Book(
		ctx context.Context,
		req BookingRequest,
		decide func(Snapshot) error,
	) (*models.Appointment, error)

	// -------- State change --------
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)

	// TransitionStatus moves one row from -> to and reports whether it did.
	TransitionStatus(
		ctx context.Context,
		id uint,
		from Status,
		to Status,
		at time.Time,
	) (bool, error)

	// -------- Read models --------
	ListForClient(ctx context.Context, clientID uint) ([]models.Appointment, error)
	ListForBarber(ctx context.Context, barberID uint, date string) ([]models.Appointment, error)
	ListBetween(ctx context.Context, from, to string) ([]models.Appointment, error)
}

// SweepRepository backs the periodic jobs.
type SweepRepository interface {
	// CompleteDue moves every ONGOING appointment at or before (today, nowSlot)
	// to COMPLETED in one transaction and returns the affected IDs.
	CompleteDue(ctx context.Context, today, nowSlot string, at time.Time) ([]uint, error)

	// ReminderCandidates lists unreminded ONGOING/COMPLETED appointments on
	// date with fromSlot < slot <= toSlot, preloading client and barber.
	ReminderCandidates(ctx context.Context, date, fromSlot, toSlot string) ([]models.Appointment, error)

	// ClaimReminder flips reminder_email_sent on a still ONGOING/COMPLETED
	// row and reports whether this caller won it.
	ClaimReminder(ctx context.Context, id uint) (bool, error)
}
