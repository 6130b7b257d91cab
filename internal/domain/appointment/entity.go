package appointment

import (
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(ap.Status); err != nil {
		return err
	}

	ap.Status = StatusCancelled
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(ap.Status); err != nil {
		return err
	}

	ap.Status = StatusCompleted
	ap.CompletedAt = &now
	return nil
}

// TotalPrice sums the snapshot prices, not the live catalog.
func TotalPrice(services []models.AppointmentService) float64 {
	var total float64
	for _, s := range services {
		total += s.Price
	}
	return total
}
