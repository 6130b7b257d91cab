package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
)

type captureWriter struct {
	msgs []kafka.Message
}

func (w *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *captureWriter) Close() error { return nil }

func TestKafkaSinkWrite(t *testing.T) {
	w := &captureWriter{}
	sink := &KafkaSink{writer: w}

	id := uint(12)
	at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, sink.Write(context.Background(), audit.Event{
		Action:   audit.ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: &id,
		At:       at,
	}))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "appointment:12", string(msg.Key))
	assert.Equal(t, "action", msg.Headers[0].Key)
	assert.Equal(t, audit.ActionAppointmentCreated, string(msg.Headers[0].Value))

	var decoded audit.Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, id, *decoded.EntityID)
	assert.True(t, at.Equal(decoded.At))
}
