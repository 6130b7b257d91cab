package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBusinessErrorMatching(t *testing.T) {
	base := NewBusiness("not_cancellable", "Appointment does not exist.")
	variant := NewBusiness("not_cancellable", "Only ONGOING appointments can be cancelled.")
	wrapped := fmt.Errorf("cancel: %w", variant)

	assert.True(t, errors.Is(wrapped, base))
	assert.True(t, IsBusiness(wrapped, "not_cancellable"))
	assert.False(t, IsBusiness(wrapped, "slot_taken"))
	assert.False(t, errors.Is(wrapped, NewBusiness("slot_taken", "")))
	assert.Equal(t, "Only ONGOING appointments can be cancelled.", wrapped.Error()[len("cancel: "):])
	assert.Equal(t, "invalid_state", ErrBusiness("invalid_state").Error())
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Business", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		Respond(c, nil, NewBusiness("slot_taken", "This time slot is already booked."), "booking_failed")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error_code":"slot_taken","message":"This time slot is already booked."}`, w.Body.String())
	})

	t.Run("Internal", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		Respond(c, nil, errors.New("db down"), "booking_failed")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "booking_failed")
		assert.NotContains(t, w.Body.String(), "db down")
	})
}
