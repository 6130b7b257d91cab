package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

const sqlitePrefix = "sqlite://"

// NewDB opens the configured store and migrates it. A "sqlite://<path>" URL
// selects the embedded driver used for local runs and tests; anything else
// is handed to the Postgres driver.
func NewDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	if strings.HasPrefix(cfg.URL, sqlitePrefix) {
		db, err = OpenSQLite(strings.TrimPrefix(cfg.URL, sqlitePrefix))
		if err != nil {
			return nil, err
		}
	} else {
		db, err = gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
			PrepareStmt: true,
			Logger:      logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("get sql.DB: %w", err)
		}

		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// OpenSQLite opens a SQLite database limited to one connection, which
// serializes transactions the way row locks do on Postgres.
func OpenSQLite(path string) (*gorm.DB, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_foreign_keys=on&_busy_timeout=5000"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Partial unique indexes backing the appointment invariants. Both Postgres
// and SQLite accept this syntax.
var appointmentIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_appointments_barber_slot
		ON appointments (barber_id, date, slot) WHERE status <> 'CANCELLED'`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_appointments_client_ongoing
		ON appointments (client_id) WHERE status = 'ONGOING'`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_appointments_client_date
		ON appointments (client_id, date) WHERE status <> 'CANCELLED'`,
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.BarberProfile{},
		&models.ClientProfile{},
		&models.Service{},
		&models.Availability{},
		&models.Appointment{},
		&models.AppointmentService{},
		&models.Review{},
		&models.AccountToken{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	for _, stmt := range appointmentIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	return nil
}
