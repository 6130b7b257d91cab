package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/mailer"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

const lastSlotOfDay = "23:59"

// SendReminders emails the client and the barber of every appointment
// starting within the lookahead window. Each row is claimed before mailing,
// so a reminder goes out at most once even when sends fail.
type SendReminders struct {
	repo      domain.SweepRepository
	sender    mailer.Sender
	audit     *audit.Dispatcher
	clock     timezone.Clock
	lookahead time.Duration
	log       *zerolog.Logger
}

func NewSendReminders(
	repo domain.SweepRepository,
	sender mailer.Sender,
	audit *audit.Dispatcher,
	clock timezone.Clock,
	lookahead time.Duration,
	log *zerolog.Logger,
) *SendReminders {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &SendReminders{
		repo:      repo,
		sender:    sender,
		audit:     audit,
		clock:     clock,
		lookahead: lookahead,
		log:       log,
	}
}

func (uc *SendReminders) Name() string {
	return "reminders"
}

// Window returns the slot bounds (from, to] for today at now. A window that
// crosses midnight is cut at the end of the day.
func Window(now time.Time, lookahead time.Duration) (date, from, to string) {
	date = timezone.DateOf(now)
	from = timezone.SlotOf(now)

	end := now.Add(lookahead)
	to = timezone.SlotOf(end)
	if timezone.DateOf(end) != date {
		to = lastSlotOfDay
	}
	return date, from, to
}

// Execute returns the number of appointments reminded by this run.
func (uc *SendReminders) Execute(ctx context.Context) (int, error) {
	now := uc.clock.Now()
	date, from, to := Window(now, uc.lookahead)

	candidates, err := uc.repo.ReminderCandidates(ctx, date, from, to)
	if err != nil {
		return 0, fmt.Errorf("load reminder candidates: %w", err)
	}

	sent := 0
	for i := range candidates {
		ap := &candidates[i]

		claimed, err := uc.repo.ClaimReminder(ctx, ap.ID)
		if err != nil {
			uc.log.Error().Err(err).Uint("appointment_id", ap.ID).Msg("claim reminder failed")
			continue
		}
		if !claimed {
			continue
		}

		uc.notify(ctx, ap)
		sent++

		id := ap.ID
		uc.audit.Dispatch(audit.Event{
			Action:   audit.ActionReminderSent,
			Entity:   "appointment",
			EntityID: &id,
			At:       now,
		})
	}

	return sent, nil
}

func (uc *SendReminders) notify(ctx context.Context, ap *models.Appointment) {
	msgs := []mailer.Message{
		mailer.Reminder(ap.Client.Email, ap.Client.FirstName, ap.Barber.FullName(), ap.Date, ap.Slot),
		mailer.Reminder(ap.Barber.Email, ap.Barber.FirstName, ap.Client.FullName(), ap.Date, ap.Slot),
	}

	for _, m := range msgs {
		if err := uc.sender.Send(ctx, m); err != nil {
			metrics.IncReminder("failed")
			uc.log.Error().
				Err(err).
				Uint("appointment_id", ap.ID).
				Str("to", m.To).
				Msg("reminder email failed")
			continue
		}
		metrics.IncReminder("sent")
	}
}
