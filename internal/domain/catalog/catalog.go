package catalog

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

var (
	ErrDuplicateService = httperr.NewBusiness(
		"duplicate_service",
		"A service with this name already exists for this barber.",
	)
	ErrServiceNotFound = httperr.NewBusiness(
		"service_not_found",
		"Service does not exist.",
	)
	ErrInvalidPrice = httperr.NewBusiness(
		"invalid_price",
		"Price must be greater than zero.",
	)
	ErrInvalidName = httperr.NewBusiness(
		"invalid_name",
		"Service name is required.",
	)
	ErrNoFields = httperr.NewBusiness(
		"no_fields",
		"No fields provided for update.",
	)
)

// NameKey is the case-insensitive identity of a service name.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func ValidateService(name string, price float64) error {
	if NameKey(name) == "" {
		return ErrInvalidName
	}
	if price <= 0 {
		return ErrInvalidPrice
	}
	return nil
}

type Repository interface {
	Create(ctx context.Context, s *models.Service) error
	Get(ctx context.Context, barberID, id uint) (*models.Service, error)
	Update(ctx context.Context, s *models.Service) error
	Delete(ctx context.Context, barberID, id uint) error
	List(ctx context.Context, barberID uint) ([]models.Service, error)
	NameTaken(ctx context.Context, barberID uint, nameKey string, excludeID uint) (bool, error)
}
