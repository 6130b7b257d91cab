package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/dto"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// ReviewLookup answers whether the client already reviewed the barber.
type ReviewLookup interface {
	Exists(ctx context.Context, clientID, barberID uint) (bool, error)
}

type ListClientAppointments struct {
	repo    domain.Repository
	reviews ReviewLookup
}

func NewListClientAppointments(repo domain.Repository, reviews ReviewLookup) *ListClientAppointments {
	return &ListClientAppointments{repo: repo, reviews: reviews}
}

func (uc *ListClientAppointments) Execute(
	ctx context.Context,
	clientID uint,
) ([]dto.ClientAppointmentDTO, error) {

	apps, err := uc.repo.ListForClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	reviewed := map[uint]bool{}
	out := make([]dto.ClientAppointmentDTO, 0, len(apps))
	for _, ap := range apps {
		reviewable := false
		if ap.Status == domain.StatusCompleted {
			done, seen := reviewed[ap.BarberID]
			if !seen {
				if done, err = uc.reviews.Exists(ctx, clientID, ap.BarberID); err != nil {
					return nil, err
				}
				reviewed[ap.BarberID] = done
			}
			reviewable = !done
		}

		out = append(out, dto.ClientAppointmentDTO{
			ID:         ap.ID,
			BarberID:   ap.BarberID,
			BarberName: ap.Barber.FullName(),
			Date:       ap.Date,
			Slot:       ap.Slot,
			Status:     string(ap.Status),
			Services:   serviceDTOs(ap.Services),
			TotalPrice: domain.TotalPrice(ap.Services),
			CreatedAt:  ap.CreatedAt,
			Reviewable: reviewable,
		})
	}

	return out, nil
}

func serviceDTOs(in []models.AppointmentService) []dto.AppointmentServiceDTO {
	out := make([]dto.AppointmentServiceDTO, 0, len(in))
	for _, s := range in {
		out = append(out, dto.AppointmentServiceDTO{
			ServiceID: s.ServiceID,
			Name:      s.Name,
			Price:     s.Price,
		})
	}
	return out
}
