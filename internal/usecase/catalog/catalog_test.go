package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/account"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

func TestServicesLifecycle(t *testing.T) {
	gdb := testutil.NewDB(t)
	uc := NewServices(repository.NewServiceGormRepository(gdb), repository.NewUserGormRepository(gdb))
	ctx := context.Background()

	barber := testutil.User(t, gdb, models.RoleBarber, "barber@test.io")
	other := testutil.User(t, gdb, models.RoleBarber, "other@test.io")

	cut, err := uc.Create(ctx, barber.ID, "  Haircut ", 30)
	require.NoError(t, err)
	assert.Equal(t, "Haircut", cut.Name)
	assert.Equal(t, "haircut", cut.NameKey)

	_, err = uc.Create(ctx, barber.ID, "HAIRCUT", 25)
	assert.Equal(t, domain.ErrDuplicateService, err)

	// names are unique per barber only
	_, err = uc.Create(ctx, other.ID, "Haircut", 25)
	require.NoError(t, err)

	shave, err := uc.Create(ctx, barber.ID, "Shave", 20)
	require.NoError(t, err)

	_, err = uc.Update(ctx, barber.ID, shave.ID, ServiceInput{Name: ptr("haircut")})
	assert.Equal(t, domain.ErrDuplicateService, err)

	got, err := uc.Update(ctx, barber.ID, shave.ID, ServiceInput{Price: ptr(22.5)})
	require.NoError(t, err)
	assert.Equal(t, 22.5, got.Price)
	assert.Equal(t, "Shave", got.Name)

	_, err = uc.Update(ctx, barber.ID, shave.ID, ServiceInput{})
	assert.Equal(t, domain.ErrNoFields, err)

	_, err = uc.Update(ctx, other.ID, shave.ID, ServiceInput{Price: ptr(1.0)})
	assert.Equal(t, domain.ErrServiceNotFound, err)

	list, err := uc.List(ctx, barber.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Haircut", list[0].Name)

	require.NoError(t, uc.Delete(ctx, barber.ID, shave.ID))
	assert.Equal(t, domain.ErrServiceNotFound, uc.Delete(ctx, barber.ID, shave.ID))
}

func TestServicesValidation(t *testing.T) {
	gdb := testutil.NewDB(t)
	uc := NewServices(repository.NewServiceGormRepository(gdb), repository.NewUserGormRepository(gdb))
	ctx := context.Background()

	barber := testutil.User(t, gdb, models.RoleBarber, "barber@test.io")
	client := testutil.Clients(t, gdb, 1)[0]

	_, err := uc.Create(ctx, barber.ID, " ", 10)
	assert.Equal(t, domain.ErrInvalidName, err)

	_, err = uc.Create(ctx, barber.ID, "Cut", 0)
	assert.Equal(t, domain.ErrInvalidPrice, err)

	_, err = uc.Create(ctx, client.ID, "Cut", 10)
	assert.Equal(t, account.ErrBarberNotFound, err)

	_, err = uc.List(ctx, client.ID)
	assert.Equal(t, account.ErrBarberNotFound, err)
}

func TestDeleteServiceKeepsSnapshot(t *testing.T) {
	gdb := testutil.NewDB(t)
	uc := NewServices(repository.NewServiceGormRepository(gdb), repository.NewUserGormRepository(gdb))
	ctx := context.Background()

	barber := testutil.User(t, gdb, models.RoleBarber, "barber@test.io")
	client := testutil.Clients(t, gdb, 1)[0]
	cut := testutil.Service(t, gdb, barber.ID, "cut", 30)
	ap := testutil.Appointment(t, gdb, client.ID, barber.ID, "2024-06-01", "09:00", models.StatusOngoing)

	serviceID := cut.ID
	require.NoError(t, gdb.Create(&models.AppointmentService{
		AppointmentID: ap.ID, ServiceID: &serviceID, Name: "cut", Price: 30,
	}).Error)

	_, err := uc.Update(ctx, barber.ID, cut.ID, ServiceInput{Price: ptr(99.0)})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, barber.ID, cut.ID))

	var snap models.AppointmentService
	require.NoError(t, gdb.Where("appointment_id = ?", ap.ID).First(&snap).Error)
	assert.Nil(t, snap.ServiceID)
	assert.Equal(t, "cut", snap.Name)
	assert.Equal(t, 30.0, snap.Price)
}
