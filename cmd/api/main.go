package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/auth"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barbershop-booking/internal/db"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/events"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/mailer"
	infraRepo "github.com/BruksfildServices01/barbershop-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/storage"
	"github.com/BruksfildServices01/barbershop-booking/internal/jobs"
	"github.com/BruksfildServices01/barbershop-booking/internal/logging"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/routes"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	ucAccount "github.com/BruksfildServices01/barbershop-booking/internal/usecase/account"
	ucAppointment "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	metrics.Register()

	// ======================================================
	// INFRA
	// ======================================================
	db, err := dbpkg.NewDB(cfg.Database)
	if err != nil {
		return err
	}

	rdb := cache.NewClient(cfg.Redis)
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Warn().Err(err).Str("addr", cfg.Redis.Address).Msg("redis not reachable")
	}

	sender, err := mailer.New(cfg.Mail, baseLogger)
	if err != nil {
		return fmt.Errorf("init mailer: %w", err)
	}

	images := storage.New(cfg.Storage, cfg.HTTP.MediaDir, cfg.App.PublicURL+routes.MediaPrefix)

	sinks := []audit.Sink{audit.New(db)}
	if cfg.Kafka.Enabled() {
		kafkaSink := events.NewKafkaSink(cfg.Kafka)
		defer kafkaSink.Close()
		sinks = append(sinks, kafkaSink)
	}
	dispatcher := audit.NewDispatcher(baseLogger, sinks...)

	clock := timezone.NewSystemClock(cfg.Timezone)

	var emails *validators.EmailDomainChecker
	if cfg.Mail.Enabled() {
		emails = validators.NewEmailDomainChecker(net.DefaultResolver)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// ADMIN BOOTSTRAP
	// ======================================================
	onboarding := ucAccount.NewOnboarding(
		infraRepo.NewUserGormRepository(db),
		infraRepo.NewTokenGormRepository(db),
		sender,
		dispatcher,
		clock,
		cfg.App.PublicURL,
	)
	created, err := onboarding.BootstrapAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if created {
		logger.Info().Str("email", cfg.Admin.Email).Msg("admin account created")
	}

	// ======================================================
	// SWEEPS
	// ======================================================
	if !cfg.Scheduler.Disabled {
		startScheduler(ctx, cfg, db, sender, dispatcher, clock, baseLogger)
	}

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	routes.RegisterRoutes(r, routes.Deps{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Log:    baseLogger,
		Clock:  clock,
		Audit:  dispatcher,
		Mailer: sender,
		Images: images,
		Issuer: auth.NewIssuer(cfg.JWT),
		Emails: emails,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("audit flush")
	}

	return nil
}

func startScheduler(
	ctx context.Context,
	cfg *config.Config,
	db *gorm.DB,
	sender mailer.Sender,
	dispatcher *audit.Dispatcher,
	clock timezone.Clock,
	log *zerolog.Logger,
) {
	repo := infraRepo.NewAppointmentGormRepository(db)

	scheduler := jobs.NewScheduler(
		cfg.Scheduler.Interval,
		log,
		ucAppointment.NewAutoCompleteAppointments(repo, dispatcher, clock),
		ucAppointment.NewSendReminders(repo, sender, dispatcher, clock, cfg.Scheduler.ReminderLookahead, log),
	)

	go scheduler.Run(ctx)
}
