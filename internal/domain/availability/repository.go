package availability

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type Repository interface {
	Create(ctx context.Context, av *models.Availability) error
	Get(ctx context.Context, barberID, id uint) (*models.Availability, error)
	GetByDate(ctx context.Context, barberID uint, date string) (*models.Availability, error)
	Update(ctx context.Context, av *models.Availability) error
	Delete(ctx context.Context, barberID, id uint) error

	// List returns the barber's entries ordered by date, restricted to one
	// date when date is non-empty and to dates >= fromDate otherwise.
	List(ctx context.Context, barberID uint, date, fromDate string) ([]models.Availability, error)

	// DateTaken reports whether another entry of the barber (excluding
	// excludeID) already covers date.
	DateTaken(ctx context.Context, barberID uint, date string, excludeID uint) (bool, error)
}
