package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

const availabilityUniqueColumns = "availabilities.barber_id, availabilities.date"

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

func (r *AvailabilityGormRepository) Create(ctx context.Context, av *models.Availability) error {
	err := r.db.WithContext(ctx).Create(av).Error
	if violates(err, "ux_availability_barber_date", availabilityUniqueColumns) {
		return domain.ErrDuplicateAvailability
	}
	return err
}

func (r *AvailabilityGormRepository) Get(ctx context.Context, barberID, id uint) (*models.Availability, error) {
	var av models.Availability
	err := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", id, barberID).
		First(&av).Error
	if notFound(err) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &av, nil
}

func (r *AvailabilityGormRepository) GetByDate(ctx context.Context, barberID uint, date string) (*models.Availability, error) {
	var av models.Availability
	err := r.db.WithContext(ctx).
		Where("barber_id = ? AND date = ?", barberID, date).
		First(&av).Error
	if notFound(err) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &av, nil
}

func (r *AvailabilityGormRepository) Update(ctx context.Context, av *models.Availability) error {
	err := r.db.WithContext(ctx).
		Model(av).
		Select("date", "slots", "updated_at").
		Updates(av).Error
	if violates(err, "ux_availability_barber_date", availabilityUniqueColumns) {
		return domain.ErrDuplicateAvailability
	}
	return err
}

// Delete leaves appointments untouched.
func (r *AvailabilityGormRepository) Delete(ctx context.Context, barberID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", id, barberID).
		Delete(&models.Availability{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AvailabilityGormRepository) List(
	ctx context.Context,
	barberID uint,
	date string,
	fromDate string,
) ([]models.Availability, error) {

	q := r.db.WithContext(ctx).Where("barber_id = ?", barberID)
	switch {
	case date != "":
		q = q.Where("date = ?", date)
	case fromDate != "":
		q = q.Where("date >= ?", fromDate)
	}

	var out []models.Availability
	err := q.Order("date ASC").Find(&out).Error
	return out, err
}

func (r *AvailabilityGormRepository) DateTaken(
	ctx context.Context,
	barberID uint,
	date string,
	excludeID uint,
) (bool, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Availability{}).
		Where("barber_id = ? AND date = ? AND id <> ?", barberID, date, excludeID).
		Count(&count).Error
	return count > 0, err
}

var _ domain.Repository = (*AvailabilityGormRepository)(nil)
