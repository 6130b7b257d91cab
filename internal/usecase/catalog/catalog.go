package catalog

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/usecase/availability"
)

// Services manages the per-barber catalog. Appointments keep their own copy
// of name and price, so edits and deletes here never reach them.
type Services struct {
	repo    domain.Repository
	barbers availability.Barbers
}

func NewServices(repo domain.Repository, barbers availability.Barbers) *Services {
	return &Services{repo: repo, barbers: barbers}
}

type ServiceInput struct {
	Name  *string
	Price *float64
}

func (uc *Services) requireBarber(ctx context.Context, barberID uint) error {
	return availability.RequireBarber(ctx, uc.barbers, barberID)
}

func (uc *Services) Create(ctx context.Context, barberID uint, name string, price float64) (*models.Service, error) {
	if err := uc.requireBarber(ctx, barberID); err != nil {
		return nil, err
	}
	if err := domain.ValidateService(name, price); err != nil {
		return nil, err
	}

	key := domain.NameKey(name)
	taken, err := uc.repo.NameTaken(ctx, barberID, key, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateService
	}

	s := &models.Service{
		BarberID: barberID,
		Name:     strings.TrimSpace(name),
		NameKey:  key,
		Price:    price,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *Services) Update(ctx context.Context, barberID, serviceID uint, in ServiceInput) (*models.Service, error) {
	if in.Name == nil && in.Price == nil {
		return nil, domain.ErrNoFields
	}

	s, err := uc.repo.Get(ctx, barberID, serviceID)
	if err != nil {
		return nil, err
	}

	name, price := s.Name, s.Price
	if in.Name != nil {
		name = *in.Name
	}
	if in.Price != nil {
		price = *in.Price
	}
	if err := domain.ValidateService(name, price); err != nil {
		return nil, err
	}

	key := domain.NameKey(name)
	if key != s.NameKey {
		taken, err := uc.repo.NameTaken(ctx, barberID, key, s.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrDuplicateService
		}
	}

	s.Name = strings.TrimSpace(name)
	s.NameKey = key
	s.Price = price
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *Services) Delete(ctx context.Context, barberID, serviceID uint) error {
	return uc.repo.Delete(ctx, barberID, serviceID)
}

// List serves both the admin and the public catalog.
func (uc *Services) List(ctx context.Context, barberID uint) ([]models.Service, error) {
	if err := uc.requireBarber(ctx, barberID); err != nil {
		return nil, err
	}

	out, err := uc.repo.List(ctx, barberID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Service{}
	}
	return out, nil
}
