package audit

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/db"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *memorySink) Write(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func (s *memorySink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestDispatcherFansOut(t *testing.T) {
	failing := &memorySink{err: errors.New("down")}
	ok := &memorySink{}
	d := NewDispatcher(nil, failing, ok)

	id := uint(3)
	d.Dispatch(Event{Action: ActionAppointmentCreated, Entity: "appointment", EntityID: &id})
	d.Dispatch(Event{Action: ActionAppointmentCancelled, Entity: "appointment", EntityID: &id})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	assert.Equal(t, 2, failing.count())
	assert.Equal(t, 2, ok.count())
	assert.False(t, ok.events[0].At.IsZero())
}

func TestLoggerPersists(t *testing.T) {
	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	l := New(gdb)
	id := uint(9)
	require.NoError(t, l.Write(context.Background(), Event{
		Action:   ActionReviewCreated,
		Entity:   "review",
		EntityID: &id,
		Metadata: map[string]any{"rating": 5},
		At:       time.Now(),
	}))

	var row models.AuditLog
	require.NoError(t, gdb.First(&row).Error)
	assert.Equal(t, ActionReviewCreated, row.Action)
	assert.JSONEq(t, `{"rating":5}`, row.Metadata)
}
