package appointment

import (
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type BookingRequest struct {
	ClientID   uint
	BarberID   uint
	Date       string
	Slot       string
	ServiceIDs []uint
}

// Snapshot is the state the checker reads, loaded inside the booking
// transaction after the client and slot locks are held.
type Snapshot struct {
	ClientHasOngoing   bool
	ClientBookedOnDate bool
	SlotBooked         bool

	// Services holds every catalog row matching the requested IDs,
	// regardless of owner.
	Services     []models.Service
	Availability *models.Availability
}

// CheckBooking runs the booking rules in fixed order and returns the first
// violation. The availability rule also rejects a listed slot whose start
// is not after now, so past slots fail with ErrSlotUnavailable. now must be
// in the scheduling timezone.
func CheckBooking(req BookingRequest, snap Snapshot, now time.Time) error {
	if snap.ClientHasOngoing {
		return ErrActiveAppointmentExists
	}
	if snap.ClientBookedOnDate {
		return ErrDailyBookingConflict
	}
	if snap.SlotBooked {
		return ErrSlotTaken
	}
	if !servicesOwnedBy(req.BarberID, req.ServiceIDs, snap.Services) {
		return ErrForeignService
	}
	if snap.Availability == nil ||
		!snap.Availability.Slots.Contains(req.Slot) ||
		!availability.IsBookable(req.Date, req.Slot, now) {
		return ErrSlotUnavailable
	}
	return nil
}

func servicesOwnedBy(barberID uint, ids []uint, found []models.Service) bool {
	byID := make(map[uint]models.Service, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	for _, id := range ids {
		s, ok := byID[id]
		if !ok || s.BarberID != barberID {
			return false
		}
	}
	return true
}

// OrderedServices returns the owned services in request order, skipping
// repeated IDs.
func OrderedServices(ids []uint, found []models.Service) []models.Service {
	byID := make(map[uint]models.Service, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	seen := make(map[uint]bool, len(ids))
	out := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if s, ok := byID[id]; ok {
			out = append(out, s)
		}
	}
	return out
}
