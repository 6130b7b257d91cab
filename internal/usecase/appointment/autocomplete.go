package appointment

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// AutoCompleteAppointments is the sweep moving every ONGOING appointment
// whose slot has started to COMPLETED. The date comparison dominates, so a
// 23:30 slot seen at 00:15 the next day is due.
type AutoCompleteAppointments struct {
	repo  domain.SweepRepository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewAutoCompleteAppointments(
	repo domain.SweepRepository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *AutoCompleteAppointments {
	return &AutoCompleteAppointments{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

func (uc *AutoCompleteAppointments) Name() string {
	return "autocomplete"
}

// Execute returns the number of appointments completed by this run.
func (uc *AutoCompleteAppointments) Execute(ctx context.Context) (int, error) {
	now := uc.clock.Now()

	ids, err := uc.repo.CompleteDue(ctx, timezone.DateOf(now), timezone.SlotOf(now), now)
	if err != nil {
		return 0, fmt.Errorf("complete due appointments: %w", err)
	}

	for _, id := range ids {
		id := id
		uc.audit.Dispatch(audit.Event{
			Action:   audit.ActionAppointmentCompleted,
			Entity:   "appointment",
			EntityID: &id,
			At:       now,
		})
	}

	return len(ids), nil
}
