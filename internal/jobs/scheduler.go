package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
)

// Job is one periodic sweep. Execute returns how many rows it touched.
type Job interface {
	Name() string
	Execute(ctx context.Context) (int, error)
}

// Scheduler runs its jobs in order on every tick. A failing or panicking
// job is logged and counted; later jobs and later ticks still run.
type Scheduler struct {
	jobs     []Job
	interval time.Duration
	timeout  time.Duration
	log      *zerolog.Logger
}

func NewScheduler(interval time.Duration, log *zerolog.Logger, jobs ...Job) *Scheduler {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Scheduler{
		jobs:     jobs,
		interval: interval,
		timeout:  interval,
		log:      log,
	}
}

// Run blocks until ctx is done. The first tick fires immediately.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info().Dur("interval", s.interval).Int("jobs", len(s.jobs)).Msg("scheduler started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Tick(ctx)

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("scheduler stopped")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs every job once.
func (s *Scheduler) Tick(ctx context.Context) {
	for _, job := range s.jobs {
		if ctx.Err() != nil {
			return
		}

		n, err := s.runJob(ctx, job)
		if err != nil {
			metrics.IncSweepFailure(job.Name())
			s.log.Error().Err(err).Str("job", job.Name()).Msg("sweep failed")
			continue
		}

		metrics.AddSweepTransitions(job.Name(), n)
		if n > 0 {
			s.log.Info().Str("job", job.Name()).Int("count", n).Msg("sweep done")
		}
	}
}

func (s *Scheduler) runJob(ctx context.Context, job Job) (n int, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", job.Name(), r)
		}
	}()

	return job.Execute(ctx)
}
