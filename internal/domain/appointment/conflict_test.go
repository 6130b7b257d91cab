package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

var checkNow = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func validSnapshot() Snapshot {
	return Snapshot{
		Services: []models.Service{{ID: 10, BarberID: 1, Name: "Cut", Price: 30}},
		Availability: &models.Availability{
			BarberID: 1,
			Date:     "2024-06-01",
			Slots:    models.SlotList{"09:00", "10:00"},
		},
	}
}

func validRequest() BookingRequest {
	return BookingRequest{ClientID: 7, BarberID: 1, Date: "2024-06-01", Slot: "09:00", ServiceIDs: []uint{10}}
}

func TestCheckBookingPasses(t *testing.T) {
	assert.NoError(t, CheckBooking(validRequest(), validSnapshot(), checkNow))
}

func TestCheckBookingRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *BookingRequest, s *Snapshot)
		wantErr error
	}{
		{
			name:    "ongoing elsewhere",
			mutate:  func(_ *BookingRequest, s *Snapshot) { s.ClientHasOngoing = true },
			wantErr: ErrActiveAppointmentExists,
		},
		{
			name:    "booked same date",
			mutate:  func(_ *BookingRequest, s *Snapshot) { s.ClientBookedOnDate = true },
			wantErr: ErrDailyBookingConflict,
		},
		{
			name:    "slot booked",
			mutate:  func(_ *BookingRequest, s *Snapshot) { s.SlotBooked = true },
			wantErr: ErrSlotTaken,
		},
		{
			name: "service of another barber",
			mutate: func(_ *BookingRequest, s *Snapshot) {
				s.Services[0].BarberID = 2
			},
			wantErr: ErrForeignService,
		},
		{
			name:    "unknown service",
			mutate:  func(r *BookingRequest, _ *Snapshot) { r.ServiceIDs = []uint{10, 99} },
			wantErr: ErrForeignService,
		},
		{
			name:    "no availability",
			mutate:  func(_ *BookingRequest, s *Snapshot) { s.Availability = nil },
			wantErr: ErrSlotUnavailable,
		},
		{
			name:    "slot not offered",
			mutate:  func(r *BookingRequest, _ *Snapshot) { r.Slot = "11:00" },
			wantErr: ErrSlotUnavailable,
		},
		{
			name: "past slots in the set are ignored",
			mutate: func(_ *BookingRequest, s *Snapshot) {
				s.Availability.Slots = models.SlotList{"07:00", "09:00"}
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, snap := validRequest(), validSnapshot()
			tt.mutate(&req, &snap)

			err := CheckBooking(req, snap, checkNow)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantErr, err)
		})
	}
}

func TestCheckBookingPastSlotUnavailable(t *testing.T) {
	req, snap := validRequest(), validSnapshot()
	late := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, ErrSlotUnavailable, CheckBooking(req, snap, late))
}

func TestCheckBookingPrecedence(t *testing.T) {
	req, snap := validRequest(), validSnapshot()
	snap.ClientHasOngoing = true
	snap.ClientBookedOnDate = true
	snap.SlotBooked = true
	snap.Availability = nil

	assert.Equal(t, ErrActiveAppointmentExists, CheckBooking(req, snap, checkNow))

	snap.ClientHasOngoing = false
	assert.Equal(t, ErrDailyBookingConflict, CheckBooking(req, snap, checkNow))

	snap.ClientBookedOnDate = false
	assert.Equal(t, ErrSlotTaken, CheckBooking(req, snap, checkNow))
}

func TestOrderedServices(t *testing.T) {
	found := []models.Service{{ID: 2, Name: "Beard"}, {ID: 1, Name: "Cut"}}
	out := OrderedServices([]uint{1, 2, 1}, found)

	assert.Len(t, out, 2)
	assert.Equal(t, "Cut", out[0].Name)
	assert.Equal(t, "Beard", out[1].Name)
}

func TestCancelTransitions(t *testing.T) {
	now := checkNow
	ap := &models.Appointment{Status: StatusOngoing}

	assert.NoError(t, Cancel(ap, now))
	assert.Equal(t, StatusCancelled, ap.Status)
	assert.NotNil(t, ap.CancelledAt)

	err := Cancel(ap, now)
	assert.Equal(t, ErrNotCancellable, err)
	assert.ErrorIs(t, Complete(ap, now), ErrInvalidTransition)
}

func TestCompleteTransitions(t *testing.T) {
	ap := &models.Appointment{Status: StatusOngoing}

	assert.NoError(t, Complete(ap, checkNow))
	assert.Equal(t, StatusCompleted, ap.Status)
	assert.True(t, IsTerminal(ap.Status))
	assert.ErrorIs(t, Cancel(ap, checkNow), ErrNotCancellable)
}

func TestTotalPrice(t *testing.T) {
	assert.InDelta(t, 45.5, TotalPrice([]models.AppointmentService{{Price: 30}, {Price: 15.5}}), 0.001)
}
