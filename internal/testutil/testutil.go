// Package testutil builds SQLite-backed fixtures for package tests.
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/db"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/mailer"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return gdb
}

func User(t *testing.T, gdb *gorm.DB, role models.Role, email string) models.User {
	t.Helper()

	u := models.User{
		Email:         email,
		PasswordHash:  "hash",
		Role:          role,
		FirstName:     email,
		IsActive:      true,
		EmailVerified: true,
	}
	require.NoError(t, gdb.Create(&u).Error)

	switch role {
	case models.RoleBarber:
		require.NoError(t, gdb.Create(&models.BarberProfile{UserID: u.ID}).Error)
	case models.RoleClient:
		require.NoError(t, gdb.Create(&models.ClientProfile{UserID: u.ID}).Error)
	}
	return u
}

func Clients(t *testing.T, gdb *gorm.DB, n int) []models.User {
	t.Helper()

	out := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, User(t, gdb, models.RoleClient, fmt.Sprintf("client%d@test.io", i)))
	}
	return out
}

func Service(t *testing.T, gdb *gorm.DB, barberID uint, name string, price float64) models.Service {
	t.Helper()

	s := models.Service{BarberID: barberID, Name: name, NameKey: name, Price: price}
	require.NoError(t, gdb.Create(&s).Error)
	return s
}

func Availability(t *testing.T, gdb *gorm.DB, barberID uint, date string, slots ...string) models.Availability {
	t.Helper()

	av := models.Availability{BarberID: barberID, Date: date, Slots: slots}
	require.NoError(t, gdb.Create(&av).Error)
	return av
}

func Appointment(t *testing.T, gdb *gorm.DB, clientID, barberID uint, date, slot string, status models.AppointmentStatus) models.Appointment {
	t.Helper()

	ap := models.Appointment{ClientID: clientID, BarberID: barberID, Date: date, Slot: slot, Status: status}
	require.NoError(t, gdb.Create(&ap).Error)
	return ap
}

func Reload(t *testing.T, gdb *gorm.DB, id uint) models.Appointment {
	t.Helper()

	var ap models.Appointment
	require.NoError(t, gdb.First(&ap, id).Error)
	return ap
}

// At builds a wall-clock instant in UTC from "YYYY-MM-DD HH:MM".
func At(t *testing.T, value string) time.Time {
	t.Helper()

	ts, err := time.ParseInLocation("2006-01-02 15:04", value, time.UTC)
	require.NoError(t, err)
	return ts
}

// Outbox records sent mail and can be told to fail for chosen recipients.
type Outbox struct {
	mu     sync.Mutex
	sent   []mailer.Message
	FailTo map[string]bool
}

func (o *Outbox) Send(_ context.Context, msg mailer.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.FailTo[msg.To] {
		return fmt.Errorf("smtp refused %s", msg.To)
	}
	o.sent = append(o.sent, msg)
	return nil
}

func (o *Outbox) Sent() []mailer.Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]mailer.Message(nil), o.sent...)
}

func (o *Outbox) Recipients() []string {
	var out []string
	for _, m := range o.Sent() {
		out = append(out, m.To)
	}
	return out
}
