package availability

import (
	"context"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-booking/internal/dto"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// ListForAdmin returns every stored slot, past or not, for editing.
type ListForAdmin struct {
	repo    domain.Repository
	barbers Barbers
}

func NewListForAdmin(repo domain.Repository, barbers Barbers) *ListForAdmin {
	return &ListForAdmin{repo: repo, barbers: barbers}
}

func (uc *ListForAdmin) Execute(ctx context.Context, barberID uint, date string) ([]dto.AvailabilityDTO, error) {
	if err := RequireBarber(ctx, uc.barbers, barberID); err != nil {
		return nil, err
	}
	if date != "" && !domain.ValidDate(date) {
		return nil, domain.ErrInvalidDate
	}

	rows, err := uc.repo.List(ctx, barberID, date, "")
	if err != nil {
		return nil, err
	}

	out := make([]dto.AvailabilityDTO, 0, len(rows))
	for _, av := range rows {
		out = append(out, toDTO(av, av.Slots))
	}
	return out, nil
}

// ListPublic hides past dates and, for today, slots that already started.
type ListPublic struct {
	repo    domain.Repository
	barbers Barbers
	clock   timezone.Clock
}

func NewListPublic(repo domain.Repository, barbers Barbers, clock timezone.Clock) *ListPublic {
	return &ListPublic{repo: repo, barbers: barbers, clock: clock}
}

func (uc *ListPublic) Execute(ctx context.Context, barberID uint, date string) ([]dto.AvailabilityDTO, error) {
	if err := RequireBarber(ctx, uc.barbers, barberID); err != nil {
		return nil, err
	}
	if date != "" && !domain.ValidDate(date) {
		return nil, domain.ErrInvalidDate
	}

	now := uc.clock.Now()
	rows, err := uc.repo.List(ctx, barberID, date, timezone.DateOf(now))
	if err != nil {
		return nil, err
	}

	out := make([]dto.AvailabilityDTO, 0, len(rows))
	for _, av := range rows {
		if av.Date < timezone.DateOf(now) {
			continue
		}
		out = append(out, toDTO(av, domain.FilterBookable(av.Date, av.Slots, now)))
	}
	return out, nil
}

func toDTO(av models.Availability, slots []string) dto.AvailabilityDTO {
	if slots == nil {
		slots = []string{}
	}
	return dto.AvailabilityDTO{
		ID:       av.ID,
		BarberID: av.BarberID,
		Date:     av.Date,
		Slots:    slots,
	}
}
