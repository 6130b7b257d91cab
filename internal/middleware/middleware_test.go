package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/auth"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newIssuer() *auth.Issuer {
	return auth.NewIssuer(config.JWTConfig{Secret: "test", AccessTTL: time.Minute, RefreshTTL: time.Hour})
}

func guarded(issuer *auth.Issuer, roles ...models.Role) *gin.Engine {
	r := gin.New()
	r.GET("/x", RequireAuth(issuer), RequireRole(roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": UserID(c), "role": Role(c)})
	})
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthAndRole(t *testing.T) {
	issuer := newIssuer()
	r := guarded(issuer, models.RoleClient)

	client, err := issuer.Issue(7, models.RoleClient)
	require.NoError(t, err)
	barber, err := issuer.Issue(8, models.RoleBarber)
	require.NoError(t, err)

	w := get(r, "/x", client.Access)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":7,"role":"CLIENT"}`, w.Body.String())

	assert.Equal(t, http.StatusForbidden, get(r, "/x", barber.Access).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/x", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/x", client.Refresh).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/x", "garbage").Code)
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(config.RateLimitConfig{RPS: 0.001, Burst: 2}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, get(r, "/x", "").Code)
	assert.Equal(t, http.StatusOK, get(r, "/x", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "/x", "").Code)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.test"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.test", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	log := zerolog.Nop()
	r := gin.New()
	r.Use(Recovery(&log), RequestLogger(&log))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := get(r, "/x", "")
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))

	assert.Equal(t, http.StatusInternalServerError, get(r, "/panic", "").Code)
}
