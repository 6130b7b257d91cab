package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	if notFound(err) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", domain.NormalizeEmail(email)).
		First(&u).Error
	if notFound(err) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) BarberExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND role = ? AND is_active = ?", id, models.RoleBarber, true).
		Count(&count).Error
	return count > 0, err
}

func (r *UserGormRepository) Create(ctx context.Context, u *models.User, phone string) error {
	u.Email = domain.NormalizeEmail(u.Email)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}

		switch u.Role {
		case models.RoleBarber:
			return tx.Create(&models.BarberProfile{UserID: u.ID}).Error
		case models.RoleClient:
			return tx.Create(&models.ClientProfile{UserID: u.ID, Phone: phone}).Error
		}
		return nil
	})

	if isUniqueViolation(err) {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *UserGormRepository) SetPassword(ctx context.Context, userID uint, hash string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", hash).Error
}

func (r *UserGormRepository) MarkVerified(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{"email_verified": true, "is_active": true}).Error
}

func (r *UserGormRepository) GetBarberProfile(ctx context.Context, userID uint) (*models.BarberProfile, error) {
	var p models.BarberProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if notFound(err) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *UserGormRepository) SetBarberImage(ctx context.Context, userID uint, url string) error {
	res := r.db.WithContext(ctx).
		Model(&models.BarberProfile{}).
		Where("user_id = ?", userID).
		Update("image_url", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserGormRepository) ListActiveBarbers(ctx context.Context) ([]models.User, map[uint]models.BarberProfile, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("role = ? AND is_active = ?", models.RoleBarber, true).
		Order("first_name ASC, id ASC").
		Find(&users).Error; err != nil {
		return nil, nil, err
	}

	profiles := make(map[uint]models.BarberProfile, len(users))
	if len(users) == 0 {
		return users, profiles, nil
	}

	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	var rows []models.BarberProfile
	if err := r.db.WithContext(ctx).Where("user_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, nil, err
	}
	for _, p := range rows {
		profiles[p.UserID] = p
	}

	return users, profiles, nil
}

var _ domain.UserRepository = (*UserGormRepository)(nil)
