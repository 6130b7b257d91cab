package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/review"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) Create(ctx context.Context, rv *models.Review) error {
	err := r.db.WithContext(ctx).Create(rv).Error
	if isUniqueViolation(err) {
		return domain.ErrDuplicateReview
	}
	return err
}

func (r *ReviewGormRepository) Get(ctx context.Context, id uint) (*models.Review, error) {
	var rv models.Review
	err := r.db.WithContext(ctx).First(&rv, id).Error
	if notFound(err) {
		return nil, domain.ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewGormRepository) Update(ctx context.Context, rv *models.Review) error {
	return r.db.WithContext(ctx).
		Model(rv).
		Select("rating", "comment", "edited_at").
		Updates(rv).Error
}

func (r *ReviewGormRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Review{}, id).Error
}

func (r *ReviewGormRepository) Exists(ctx context.Context, clientID, barberID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("client_id = ? AND barber_id = ?", clientID, barberID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReviewGormRepository) ListForBarber(ctx context.Context, barberID uint) ([]models.Review, error) {
	var out []models.Review
	err := r.db.WithContext(ctx).
		Preload("Client").
		Where("barber_id = ?", barberID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

type summaryRow struct {
	BarberID uint
	Count    int64
	Average  float64
}

func (r *ReviewGormRepository) Summaries(ctx context.Context, barberIDs []uint) (map[uint]domain.Summary, error) {
	out := make(map[uint]domain.Summary, len(barberIDs))
	if len(barberIDs) == 0 {
		return out, nil
	}

	var rows []summaryRow
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("barber_id, COUNT(*) AS count, AVG(rating) AS average").
		Where("barber_id IN ?", barberIDs).
		Group("barber_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.BarberID] = domain.Summary{Count: row.Count, Average: row.Average}
	}
	return out, nil
}

func (r *ReviewGormRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	var ap models.Appointment
	err := r.db.WithContext(ctx).First(&ap, id).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

var _ domain.Repository = (*ReviewGormRepository)(nil)
