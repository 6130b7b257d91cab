package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

const serviceUniqueColumns = "services.barber_id, services.name_key"

type ServiceGormRepository struct {
	db *gorm.DB
}

func NewServiceGormRepository(db *gorm.DB) *ServiceGormRepository {
	return &ServiceGormRepository{db: db}
}

func (r *ServiceGormRepository) Create(ctx context.Context, s *models.Service) error {
	err := r.db.WithContext(ctx).Create(s).Error
	if violates(err, "ux_services_barber_name", serviceUniqueColumns) {
		return domain.ErrDuplicateService
	}
	return err
}

func (r *ServiceGormRepository) Get(ctx context.Context, barberID, id uint) (*models.Service, error) {
	var s models.Service
	err := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", id, barberID).
		First(&s).Error
	if notFound(err) {
		return nil, domain.ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceGormRepository) Update(ctx context.Context, s *models.Service) error {
	err := r.db.WithContext(ctx).
		Model(s).
		Select("name", "name_key", "price", "updated_at").
		Updates(s).Error
	if violates(err, "ux_services_barber_name", serviceUniqueColumns) {
		return domain.ErrDuplicateService
	}
	return err
}

// Delete nulls the link on appointment snapshots; name and price stay.
func (r *ServiceGormRepository) Delete(ctx context.Context, barberID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND barber_id = ?", id, barberID).Delete(&models.Service{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrServiceNotFound
		}

		return tx.Model(&models.AppointmentService{}).
			Where("service_id = ?", id).
			Update("service_id", nil).Error
	})
}

func (r *ServiceGormRepository) List(ctx context.Context, barberID uint) ([]models.Service, error) {
	var out []models.Service
	err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("name ASC").
		Find(&out).Error
	return out, err
}

func (r *ServiceGormRepository) NameTaken(
	ctx context.Context,
	barberID uint,
	nameKey string,
	excludeID uint,
) (bool, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("barber_id = ? AND name_key = ? AND id <> ?", barberID, nameKey, excludeID).
		Count(&count).Error
	return count > 0, err
}

var _ domain.Repository = (*ServiceGormRepository)(nil)
