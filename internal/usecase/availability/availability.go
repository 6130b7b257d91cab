package availability

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/account"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// Barbers resolves the barber addressed by an admin route.
type Barbers interface {
	BarberExists(ctx context.Context, id uint) (bool, error)
}

// RequireBarber fails with ErrBarberNotFound unless id is an active barber.
func RequireBarber(ctx context.Context, barbers Barbers, id uint) error {
	ok, err := barbers.BarberExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return account.ErrBarberNotFound
	}
	return nil
}

func dispatchChange(d *audit.Dispatcher, av *models.Availability, op string, at time.Time) {
	if d == nil {
		return
	}
	id := av.ID
	d.Dispatch(audit.Event{
		Action:   audit.ActionAvailabilityChanged,
		Entity:   "availability",
		EntityID: &id,
		Metadata: map[string]any{"op": op, "barber_id": av.BarberID, "date": av.Date},
		At:       at,
	})
}

// ======================================================
// CREATE
// ======================================================

type CreateInput struct {
	BarberID uint
	Date     string
	Slots    []string
}

type Create struct {
	repo    domain.Repository
	barbers Barbers
	audit   *audit.Dispatcher
	clock   timezone.Clock
}

func NewCreate(repo domain.Repository, barbers Barbers, audit *audit.Dispatcher, clock timezone.Clock) *Create {
	return &Create{repo: repo, barbers: barbers, audit: audit, clock: clock}
}

func (uc *Create) Execute(ctx context.Context, in CreateInput) (*models.Availability, error) {
	if err := RequireBarber(ctx, uc.barbers, in.BarberID); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	if err := domain.ValidateDate(in.Date, now); err != nil {
		return nil, err
	}

	slots, err := domain.NormalizeSlots(in.Slots)
	if err != nil {
		return nil, err
	}

	taken, err := uc.repo.DateTaken(ctx, in.BarberID, in.Date, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateAvailability
	}

	av := &models.Availability{
		BarberID: in.BarberID,
		Date:     in.Date,
		Slots:    slots,
	}
	if err := uc.repo.Create(ctx, av); err != nil {
		return nil, err
	}

	dispatchChange(uc.audit, av, "create", now)
	return av, nil
}

// ======================================================
// UPDATE
// ======================================================

// UpdateInput carries optional fields; nil means unchanged. Slots replace
// the stored set wholesale.
type UpdateInput struct {
	BarberID       uint
	AvailabilityID uint
	Date           *string
	Slots          []string
	SlotsSet       bool
}

type Update struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewUpdate(repo domain.Repository, audit *audit.Dispatcher, clock timezone.Clock) *Update {
	return &Update{repo: repo, audit: audit, clock: clock}
}

func (uc *Update) Execute(ctx context.Context, in UpdateInput) (*models.Availability, error) {
	if in.Date == nil && !in.SlotsSet {
		return nil, domain.ErrNoFields
	}

	av, err := uc.repo.Get(ctx, in.BarberID, in.AvailabilityID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()

	if in.Date != nil && *in.Date != av.Date {
		if err := domain.ValidateDate(*in.Date, now); err != nil {
			return nil, err
		}

		taken, err := uc.repo.DateTaken(ctx, in.BarberID, *in.Date, av.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrDuplicateAvailability
		}
		av.Date = *in.Date
	}

	if in.SlotsSet {
		slots, err := domain.NormalizeSlots(in.Slots)
		if err != nil {
			return nil, err
		}
		av.Slots = slots
	}

	if err := uc.repo.Update(ctx, av); err != nil {
		return nil, err
	}

	dispatchChange(uc.audit, av, "update", now)
	return av, nil
}

// ======================================================
// DELETE
// ======================================================

type Delete struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewDelete(repo domain.Repository, audit *audit.Dispatcher, clock timezone.Clock) *Delete {
	return &Delete{repo: repo, audit: audit, clock: clock}
}

// Execute removes the entry only; booked appointments keep their status.
func (uc *Delete) Execute(ctx context.Context, barberID, availabilityID uint) error {
	av, err := uc.repo.Get(ctx, barberID, availabilityID)
	if err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, barberID, availabilityID); err != nil {
		return err
	}

	dispatchChange(uc.audit, av, "delete", uc.clock.Now())
	return nil
}
