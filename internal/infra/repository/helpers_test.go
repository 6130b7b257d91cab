package repository

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/db"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "repo.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, role models.Role, email string) models.User {
	t.Helper()

	u := models.User{
		Email:        email,
		PasswordHash: "hash",
		Role:         role,
		FirstName:    email,
		IsActive:     true,
	}
	require.NoError(t, gdb.Create(&u).Error)
	if role == models.RoleBarber {
		require.NoError(t, gdb.Create(&models.BarberProfile{UserID: u.ID}).Error)
	}
	return u
}

func seedClients(t *testing.T, gdb *gorm.DB, n int) []models.User {
	t.Helper()

	out := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, seedUser(t, gdb, models.RoleClient, fmt.Sprintf("client%d@test.io", i)))
	}
	return out
}

func seedService(t *testing.T, gdb *gorm.DB, barberID uint, name string, price float64) models.Service {
	t.Helper()

	s := models.Service{BarberID: barberID, Name: name, NameKey: name, Price: price}
	require.NoError(t, gdb.Create(&s).Error)
	return s
}

func seedAvailability(t *testing.T, gdb *gorm.DB, barberID uint, date string, slots ...string) models.Availability {
	t.Helper()

	av := models.Availability{BarberID: barberID, Date: date, Slots: slots}
	require.NoError(t, gdb.Create(&av).Error)
	return av
}

func seedAppointment(t *testing.T, gdb *gorm.DB, clientID, barberID uint, date, slot string, status models.AppointmentStatus) models.Appointment {
	t.Helper()

	ap := models.Appointment{ClientID: clientID, BarberID: barberID, Date: date, Slot: slot, Status: status}
	require.NoError(t, gdb.Create(&ap).Error)
	return ap
}
