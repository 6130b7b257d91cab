package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

var bookingNow = time.Date(2024, 5, 30, 12, 0, 0, 0, time.UTC)

func checkAt(req domain.BookingRequest, now time.Time) func(domain.Snapshot) error {
	return func(s domain.Snapshot) error {
		return domain.CheckBooking(req, s, now)
	}
}

func TestBookCreatesAppointmentWithSnapshots(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewAppointmentGormRepository(gdb)
	ctx := context.Background()

	barber := seedUser(t, gdb, models.RoleBarber, "barber@test.io")
	client := seedClients(t, gdb, 1)[0]
	cut := seedService(t, gdb, barber.ID, "cut", 30)
	beard := seedService(t, gdb, barber.ID, "beard", 15)
	seedAvailability(t, gdb, barber.ID, "2024-06-01", "09:00", "10:00")

	req := domain.BookingRequest{
		ClientID:   client.ID,
		BarberID:   barber.ID,
		Date:       "2024-06-01",
		Slot:       "09:00",
		ServiceIDs: []uint{beard.ID, cut.ID},
	}

	ap, err := repo.Book(ctx, req, checkAt(req, bookingNow))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOngoing, ap.Status)
	assert.False(t, ap.ReminderEmailSent)

	list, err := repo.ListForClient(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Services, 2)
	assert.Equal(t, "beard", list[0].Services[0].Name)
	assert.Equal(t, "cut", list[0].Services[1].Name)
	assert.Equal(t, barber.ID, list[0].Barber.ID)
}

func TestBookSecondClientSameSlotIsTaken(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewAppointmentGormRepository(gdb)
	ctx := context.Background()

	barber := seedUser(t, gdb, models.RoleBarber, "barber@test.io")
	clients := seedClients(t, gdb, 2)
	cut := seedService(t, gdb, barber.ID, "cut", 30)
	seedAvailability(t, gdb, barber.ID, "2024-06-01", "09:00", "10:00")

	for i, c := range clients {
		req := domain.BookingRequest{ClientID: c.ID, BarberID: barber.ID, Date: "2024-06-01", Slot: "09:00", ServiceIDs: []uint{cut.ID}}
		_, err := repo.Book(ctx, req, checkAt(req, bookingNow))
		if i == 0 {
			require.NoError(t, err)
		} else {
			assert.Equal(t, domain.ErrSlotTaken, err)
		}
	}
}

func TestBookConcurrentSameSlot(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewAppointmentGormRepository(gdb)
	ctx := context.Background()

	barber := seedUser(t, gdb, models.RoleBarber, "barber@test.io")
	clients := seedClients(t, gdb, 10)
	cut := seedService(t, gdb, barber.ID, "cut", 30)
	seedAvailability(t, gdb, barber.ID, "2024-06-01", "09:00")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		taken     int
	)

	for _, c := range clients {
		wg.Add(1)
		go func(clientID uint) {
			defer wg.Done()
			req := domain.BookingRequest{ClientID: clientID, BarberID: barber.ID, Date: "2024-06-01", Slot: "09:00", ServiceIDs: []uint{cut.ID}}
			_, err := repo.Book(ctx, req, checkAt(req, bookingNow))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case err == domain.ErrSlotTaken:
				taken++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(c.ID)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 9, taken)

	var count int64
	require.NoError(t, gdb.Model(&models.Appointment{}).
		Where("barber_id = ? AND date = ? AND slot = ? AND status <> ?", barber.ID, "2024-06-01", "09:00", models.StatusCancelled).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestBookMapsIndexViolations(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewAppointmentGormRepository(gdb)
	ctx := context.Background()

	barber := seedUser(t, gdb, models.RoleBarber, "barber@test.io")
	clients := seedClients(t, gdb, 2)

	seedAppointment(t, gdb, clients[0].ID, barber.ID, "2024-06-01", "09:00", models.StatusOngoing)
	seedAppointment(t, gdb, clients[1].ID, barber.ID, "2024-06-02", "09:00", models.StatusCompleted)

	skip := func(domain.Snapshot) error { return nil }

	_, err := repo.Book(ctx, domain.BookingRequest{ClientID: clients[0].ID, BarberID: barber.ID, Date: "2024-06-03", Slot: "10:00"}, skip)
	assert.Equal(t, domain.ErrActiveAppointmentExists, err)

	_, err = repo.Book(ctx, domain.BookingRequest{ClientID: clients[1].ID, BarberID: barber.ID, Date: "2024-06-02", Slot: "10:00"}, skip)
	assert.Equal(t, domain.ErrDailyBookingConflict, err)

	_, err = repo.Book(ctx, domain.BookingRequest{ClientID: clients[1].ID, BarberID: barber.ID, Date: "2024-06-01", Slot: "09:00"}, skip)
	assert.Equal(t, domain.ErrSlotTaken, err)
}

func TestBookCancelledDoesNotBlock(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewAppointmentGormRepository(gdb)
	ctx := context.Background()

	barber := seedUser(t, gdb, models.RoleBarber, "barber@test.io")
	client := seedClients(t, gdb, 1)[0]
	cut := seedService(t, gdb, barber.ID, "cut", 30)
	seedAvailability(t, gdb, barber.ID, "2024-06-01", "09:00")
	seedAppointment(t, gdb, client.ID, barber.ID, "2024-06-01", "09:00", models.StatusCancelled)

	req := domain.BookingRequest{ClientID: client.ID, BarberID: barber.ID, Date: "2024-06-01", Slot: "09:00", ServiceIDs: []uint{cut.ID}}
	_, err := repo.Book(ctx, req, checkAt(req, bookingNow))
	assert.NoError(t, err)
}

func TestTransitionStatusIsOneWay(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewAppointmentGormRepository(gdb)
	ctx := context.Background()

	barber := seedUser(t, gdb, models.RoleBarber, "barber@test.io")
	client := seedClients(t, gdb, 1)[0]
	ap := seedAppointment(t, gdb, client.ID, barber.ID, "2024-06-01", "09:00", models.StatusOngoing)

	ok, err := repo.TransitionStatus(ctx, ap.ID, domain.StatusOngoing, domain.StatusCancelled, bookingNow)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.TransitionStatus(ctx, ap.ID, domain.StatusOngoing, domain.StatusCancelled, bookingNow)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetAppointment(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
	assert.NotNil(t, got.CancelledAt)

	_, err = repo.GetAppointment(ctx, 9999)
	assert.Equal(t, domain.ErrAppointmentNotFound, err)
}

func TestCompleteDue(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewAppointmentGormRepository(gdb)
	ctx := context.Background()

	barber := seedUser(t, gdb, models.RoleBarber, "barber@test.io")
	clients := seedClients(t, gdb, 4)

	due := seedAppointment(t, gdb, clients[0].ID, barber.ID, "2024-06-01", "10:00", models.StatusOngoing)
	later := seedAppointment(t, gdb, clients[1].ID, barber.ID, "2024-06-01", "11:00", models.StatusOngoing)
	yesterday := seedAppointment(t, gdb, clients[2].ID, barber.ID, "2024-05-31", "23:30", models.StatusOngoing)
	cancelled := seedAppointment(t, gdb, clients[3].ID, barber.ID, "2024-05-30", "09:00", models.StatusCancelled)

	ids, err := repo.CompleteDue(ctx, "2024-06-01", "10:30", bookingNow)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{due.ID, yesterday.ID}, ids)

	status := func(id uint) models.AppointmentStatus {
		ap, err := repo.GetAppointment(ctx, id)
		require.NoError(t, err)
		return ap.Status
	}
	assert.Equal(t, models.StatusCompleted, status(due.ID))
	assert.Equal(t, models.StatusCompleted, status(yesterday.ID))
	assert.Equal(t, models.StatusOngoing, status(later.ID))
	assert.Equal(t, models.StatusCancelled, status(cancelled.ID))

	again, err := repo.CompleteDue(ctx, "2024-06-01", "10:30", bookingNow)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestReminderCandidatesAndClaim(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewAppointmentGormRepository(gdb)
	ctx := context.Background()

	barber := seedUser(t, gdb, models.RoleBarber, "barber@test.io")
	clients := seedClients(t, gdb, 5)

	inWindow := seedAppointment(t, gdb, clients[0].ID, barber.ID, "2024-06-01", "14:30", models.StatusOngoing)
	seedAppointment(t, gdb, clients[1].ID, barber.ID, "2024-06-01", "16:00", models.StatusOngoing)
	seedAppointment(t, gdb, clients[2].ID, barber.ID, "2024-06-01", "14:00", models.StatusOngoing)
	seedAppointment(t, gdb, clients[3].ID, barber.ID, "2024-06-01", "14:45", models.StatusCancelled)
	completed := seedAppointment(t, gdb, clients[4].ID, barber.ID, "2024-06-01", "15:00", models.StatusCompleted)

	got, err := repo.ReminderCandidates(ctx, "2024-06-01", "14:00", "15:00")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, inWindow.ID, got[0].ID)
	assert.Equal(t, completed.ID, got[1].ID)
	assert.Equal(t, clients[0].Email, got[0].Client.Email)
	assert.Equal(t, barber.Email, got[0].Barber.Email)

	ok, err := repo.ClaimReminder(ctx, inWindow.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ClaimReminder(ctx, inWindow.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err = repo.ReminderCandidates(ctx, "2024-06-01", "14:00", "15:00")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, completed.ID, got[0].ID)
}

func TestListForBarberAndBetween(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewAppointmentGormRepository(gdb)
	ctx := context.Background()

	barber := seedUser(t, gdb, models.RoleBarber, "barber@test.io")
	other := seedUser(t, gdb, models.RoleBarber, "other@test.io")
	clients := seedClients(t, gdb, 3)

	seedAppointment(t, gdb, clients[0].ID, barber.ID, "2024-06-01", "10:00", models.StatusOngoing)
	seedAppointment(t, gdb, clients[1].ID, barber.ID, "2024-06-02", "09:00", models.StatusOngoing)
	seedAppointment(t, gdb, clients[2].ID, other.ID, "2024-06-01", "09:00", models.StatusOngoing)

	day, err := repo.ListForBarber(ctx, barber.ID, "2024-06-01")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, clients[0].Email, day[0].Client.Email)

	all, err := repo.ListForBarber(ctx, barber.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	between, err := repo.ListBetween(ctx, "2024-06-01", "2024-06-01")
	require.NoError(t, err)
	require.Len(t, between, 2)
	assert.Equal(t, "09:00", between[0].Slot)

	exists, err := repo.BarberExists(ctx, barber.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.BarberExists(ctx, clients[0].ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
