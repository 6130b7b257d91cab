package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-booking/internal/dto"
)

type ListBarberSchedule struct {
	repo domain.Repository
}

func NewListBarberSchedule(
	repo domain.Repository,
) *ListBarberSchedule {
	return &ListBarberSchedule{
		repo: repo,
	}
}

// Execute lists the barber's appointments, on one date when date is set.
func (uc *ListBarberSchedule) Execute(
	ctx context.Context,
	barberID uint,
	date string,
) ([]dto.BarberAppointmentDTO, error) {

	if date != "" && !availability.ValidDate(date) {
		return nil, availability.ErrInvalidDate
	}

	appointments, err := uc.repo.ListForBarber(ctx, barberID, date)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BarberAppointmentDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.BarberAppointmentDTO{
			ID:          ap.ID,
			ClientID:    ap.ClientID,
			ClientName:  ap.Client.FullName(),
			ClientEmail: ap.Client.Email,
			Date:        ap.Date,
			Slot:        ap.Slot,
			Status:      string(ap.Status),
			Services:    serviceDTOs(ap.Services),
			TotalPrice:  domain.TotalPrice(ap.Services),
		})
	}

	return out, nil
}
