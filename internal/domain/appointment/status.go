package appointment

import (
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// ===============================
// Appointment Status
// ===============================

type Status = models.AppointmentStatus

const (
	StatusOngoing   = models.StatusOngoing
	StatusCompleted = models.StatusCompleted
	StatusCancelled = models.StatusCancelled
)

// ===============================
// Transitions
// ===============================

// ONGOING is the only non-terminal state.
func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled
}

func CanCancel(current Status) error {
	if current != StatusOngoing {
		return ErrNotCancellable
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusOngoing {
		return ErrInvalidTransition
	}
	return nil
}

func InitialStatus() Status {
	return StatusOngoing
}
