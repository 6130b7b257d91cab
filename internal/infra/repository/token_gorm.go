package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type TokenGormRepository struct {
	db *gorm.DB
}

func NewTokenGormRepository(db *gorm.DB) *TokenGormRepository {
	return &TokenGormRepository{db: db}
}

func (r *TokenGormRepository) Create(ctx context.Context, t *models.AccountToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TokenGormRepository) Consume(
	ctx context.Context,
	token string,
	purpose models.TokenPurpose,
	now time.Time,
) (*models.AccountToken, error) {

	var t models.AccountToken

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).
			Where("token = ? AND purpose = ?", token, purpose).
			First(&t).Error; err != nil {
			if notFound(err) {
				return domain.ErrInvalidToken
			}
			return err
		}

		if !t.Usable(now) {
			return domain.ErrInvalidToken
		}

		res := tx.Model(&models.AccountToken{}).
			Where("id = ? AND used_at IS NULL", t.ID).
			Update("used_at", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return domain.ErrInvalidToken
		}

		t.UsedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &t, nil
}

var _ domain.TokenRepository = (*TokenGormRepository)(nil)
