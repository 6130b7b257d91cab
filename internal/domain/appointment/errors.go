package appointment

import (
	"errors"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
)

var (
	ErrActiveAppointmentExists = httperr.NewBusiness(
		"active_appointment_exists",
		"Client already has an ONGOING appointment.",
	)
	ErrDailyBookingConflict = httperr.NewBusiness(
		"daily_booking_conflict",
		"Client already has an appointment on this date.",
	)
	ErrSlotTaken = httperr.NewBusiness(
		"slot_taken",
		"This time slot is already booked.",
	)
	ErrForeignService = httperr.NewBusiness(
		"foreign_service",
		"One or more services do not belong to this barber.",
	)
	ErrSlotUnavailable = httperr.NewBusiness(
		"slot_unavailable",
		"The selected time slot is not available.",
	)

	// Both cancel failures share one code; the message tells them apart.
	ErrAppointmentNotFound = httperr.NewBusiness(
		"not_cancellable",
		"Appointment does not exist.",
	)
	ErrNotCancellable = httperr.NewBusiness(
		"not_cancellable",
		"Only ONGOING appointments can be cancelled.",
	)

	ErrInvalidTransition = httperr.NewBusiness(
		"invalid_transition",
		"Appointment is no longer ONGOING.",
	)
	ErrNoServices = httperr.NewBusiness(
		"no_services",
		"At least one service must be selected.",
	)
)

// ErrConcurrentBooking reports a booking transaction that lost a race at
// the store level. It is retried once before surfacing as ErrSlotTaken.
var ErrConcurrentBooking = errors.New("concurrent booking conflict")
