package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

func newTestIssuer() *Issuer {
	return NewIssuer(config.JWTConfig{Secret: "secret", AccessTTL: time.Minute, RefreshTTL: time.Hour})
}

func TestIssueAndParse(t *testing.T) {
	iss := newTestIssuer()

	pair, err := iss.Issue(42, models.RoleClient)
	require.NoError(t, err)

	claims, err := iss.Parse(pair.Access, TokenAccess)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
	assert.Equal(t, models.RoleClient, claims.Role)

	refresh, err := iss.Parse(pair.Refresh, TokenRefresh)
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, refresh.ID)
}

func TestParseRejectsWrongType(t *testing.T) {
	iss := newTestIssuer()
	pair, err := iss.Issue(1, models.RoleBarber)
	require.NoError(t, err)

	_, err = iss.Parse(pair.Refresh, TokenAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredAndForeign(t *testing.T) {
	iss := newTestIssuer()
	pair, err := iss.Issue(1, models.RoleAdmin)
	require.NoError(t, err)

	iss.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = iss.Parse(pair.Access, TokenAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewIssuer(config.JWTConfig{Secret: "other", AccessTTL: time.Minute, RefreshTTL: time.Hour})
	_, err = other.Parse(pair.Refresh, TokenRefresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = iss.Parse("garbage", TokenAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
