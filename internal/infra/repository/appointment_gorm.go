package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *AppointmentGormRepository) BarberExists(
	ctx context.Context,
	barberID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND role = ? AND is_active = ?", barberID, models.RoleBarber, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func clientLockKey(clientID uint) string {
	return fmt.Sprintf("appointment:client:%d", clientID)
}

func slotLockKey(barberID uint, date, slot string) string {
	return fmt.Sprintf("appointment:slot:%d:%s:%s", barberID, date, slot)
}

func (r *AppointmentGormRepository) Book(
	ctx context.Context,
	req domain.BookingRequest,
	decide func(domain.Snapshot) error,
) (*models.Appointment, error) {

	var created models.Appointment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// client first, slot second: every booking takes them in this order
		if err := advisoryLock(
			tx,
			clientLockKey(req.ClientID),
			slotLockKey(req.BarberID, req.Date, req.Slot),
		); err != nil {
			return err
		}

		snap, err := loadSnapshot(tx, req)
		if err != nil {
			return err
		}

		if err := decide(snap); err != nil {
			return err
		}

		ap := models.Appointment{
			ClientID: req.ClientID,
			BarberID: req.BarberID,
			Date:     req.Date,
			Slot:     req.Slot,
			Status:   domain.InitialStatus(),
		}
		for i, s := range domain.OrderedServices(req.ServiceIDs, snap.Services) {
			serviceID := s.ID
			ap.Services = append(ap.Services, models.AppointmentService{
				ServiceID: &serviceID,
				Name:      s.Name,
				Price:     s.Price,
				Position:  i,
			})
		}

		if err := tx.Create(&ap).Error; err != nil {
			return err
		}

		created = ap
		return nil
	})

	if err != nil {
		return nil, classifyBookingError(err)
	}
	return &created, nil
}

func loadSnapshot(tx *gorm.DB, req domain.BookingRequest) (domain.Snapshot, error) {
	var snap domain.Snapshot

	count := func(query string, args ...any) (bool, error) {
		var n int64
		err := tx.Model(&models.Appointment{}).Where(query, args...).Count(&n).Error
		return n > 0, err
	}

	var err error
	if snap.ClientHasOngoing, err = count(
		"client_id = ? AND status = ?",
		req.ClientID, domain.StatusOngoing,
	); err != nil {
		return snap, err
	}

	if snap.ClientBookedOnDate, err = count(
		"client_id = ? AND date = ? AND status <> ?",
		req.ClientID, req.Date, domain.StatusCancelled,
	); err != nil {
		return snap, err
	}

	if snap.SlotBooked, err = count(
		"barber_id = ? AND date = ? AND slot = ? AND status <> ?",
		req.BarberID, req.Date, req.Slot, domain.StatusCancelled,
	); err != nil {
		return snap, err
	}

	if len(req.ServiceIDs) > 0 {
		if err := tx.Where("id IN ?", req.ServiceIDs).Find(&snap.Services).Error; err != nil {
			return snap, err
		}
	}

	var av models.Availability
	err = forUpdate(tx).
		Where("barber_id = ? AND date = ?", req.BarberID, req.Date).
		First(&av).Error
	switch {
	case err == nil:
		snap.Availability = &av
	case !notFound(err):
		return snap, err
	}

	return snap, nil
}

// classifyBookingError maps a store-level loss to the error the checker
// would have produced had it run second.
func classifyBookingError(err error) error {
	if _, ok := httperr.AsBusiness(err); ok {
		return err
	}

	switch {
	case violates(err, "ux_appointments_client_ongoing", "appointments.client_id"):
		return domain.ErrActiveAppointmentExists
	case violates(err, "ux_appointments_client_date", "appointments.client_id, appointments.date"):
		return domain.ErrDailyBookingConflict
	case violates(err, "ux_appointments_barber_slot", "appointments.barber_id, appointments.date, appointments.slot"):
		return domain.ErrSlotTaken
	case isRetryable(err):
		return domain.ErrConcurrentBooking
	}
	return fmt.Errorf("book appointment: %w", err)
}

// --------------------------------------------------
// State change
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		if notFound(err) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) TransitionStatus(
	ctx context.Context,
	id uint,
	from domain.Status,
	to domain.Status,
	at time.Time,
) (bool, error) {

	updates := map[string]any{
		"status":     to,
		"updated_at": at,
	}
	switch to {
	case domain.StatusCancelled:
		updates["cancelled_at"] = at
	case domain.StatusCompleted:
		updates["completed_at"] = at
	}

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// --------------------------------------------------
// Read models
// --------------------------------------------------

func orderedServices(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *AppointmentGormRepository) ListForClient(
	ctx context.Context,
	clientID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Services", orderedServices).
		Where("client_id = ?", clientID).
		Order("date DESC, slot DESC").
		Find(&apps).Error
	return apps, err
}

func (r *AppointmentGormRepository) ListForBarber(
	ctx context.Context,
	barberID uint,
	date string,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Services", orderedServices).
		Where("barber_id = ?", barberID)
	if date != "" {
		q = q.Where("date = ?", date)
	}

	var apps []models.Appointment
	err := q.Order("date ASC, slot ASC").Find(&apps).Error
	return apps, err
}

func (r *AppointmentGormRepository) ListBetween(
	ctx context.Context,
	from string,
	to string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Barber").
		Preload("Services", orderedServices).
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC, slot ASC, barber_id ASC").
		Find(&apps).Error
	return apps, err
}

// --------------------------------------------------
// Sweeps
// --------------------------------------------------

func (r *AppointmentGormRepository) CompleteDue(
	ctx context.Context,
	today string,
	nowSlot string,
	at time.Time,
) ([]uint, error) {

	var ids []uint

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).
			Model(&models.Appointment{}).
			Where(
				"status = ? AND (date < ? OR (date = ? AND slot <= ?))",
				domain.StatusOngoing, today, today, nowSlot,
			).
			Order("id ASC").
			Pluck("id", &ids).Error; err != nil {
			return err
		}

		if len(ids) == 0 {
			return nil
		}

		return tx.Model(&models.Appointment{}).
			Where("id IN ? AND status = ?", ids, domain.StatusOngoing).
			Updates(map[string]any{
				"status":       domain.StatusCompleted,
				"completed_at": at,
				"updated_at":   at,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *AppointmentGormRepository) ReminderCandidates(
	ctx context.Context,
	date string,
	fromSlot string,
	toSlot string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Barber").
		Where(
			"status IN ? AND date = ? AND reminder_email_sent = ? AND slot > ? AND slot <= ?",
			[]domain.Status{domain.StatusOngoing, domain.StatusCompleted},
			date, false, fromSlot, toSlot,
		).
		Order("slot ASC, id ASC").
		Find(&apps).Error
	return apps, err
}

func (r *AppointmentGormRepository) ClaimReminder(
	ctx context.Context,
	id uint,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"id = ? AND reminder_email_sent = ? AND status IN ?",
			id, false, []domain.Status{domain.StatusOngoing, domain.StatusCompleted},
		).
		Update("reminder_email_sent", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Compile-time checks
var (
	_ domain.Repository      = (*AppointmentGormRepository)(nil)
	_ domain.SweepRepository = (*AppointmentGormRepository)(nil)
)
