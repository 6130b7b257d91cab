package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/auth"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/storage"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/testutil"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	ucAccount "github.com/BruksfildServices01/barbershop-booking/internal/usecase/account"
)

func init() {
	gin.SetMode(gin.TestMode)
	ucAccount.HashCost = bcrypt.MinCost
}

type server struct {
	gdb    *gorm.DB
	router *gin.Engine
	issuer *auth.Issuer
	outbox *testutil.Outbox
}

func newServer(t *testing.T) *server {
	t.Helper()

	gdb := testutil.NewDB(t)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := &config.Config{
		App:  config.AppConfig{PublicURL: "http://app.test"},
		HTTP: config.HTTPConfig{MediaDir: t.TempDir()},
		JWT:  config.JWTConfig{Secret: "test-secret", AccessTTL: time.Minute, RefreshTTL: time.Hour},
		RateLimit: config.RateLimitConfig{
			RPS:           1000,
			Burst:         1000,
			LoginAttempts: 5,
			LoginWindow:   time.Minute,
		},
	}

	rdb := cache.NewClient(config.RedisConfig{Address: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	log := zerolog.Nop()
	outbox := &testutil.Outbox{}
	issuer := auth.NewIssuer(cfg.JWT)
	dispatcher := audit.NewDispatcher(&log, audit.New(gdb))

	r := gin.New()
	RegisterRoutes(r, Deps{
		Config: cfg,
		DB:     gdb,
		Redis:  rdb,
		Log:    &log,
		Clock:  timezone.NewFixedClock(testutil.At(t, "2024-06-01 08:00")),
		Audit:  dispatcher,
		Mailer: outbox,
		Images: storage.NewLocalStore(cfg.HTTP.MediaDir, "http://app.test"+MediaPrefix),
		Issuer: issuer,
	})

	return &server{gdb: gdb, router: r, issuer: issuer, outbox: outbox}
}

func (s *server) token(t *testing.T, u models.User) string {
	t.Helper()

	pair, err := s.issuer.Issue(u.ID, u.Role)
	require.NoError(t, err)
	return pair.Access
}

func (s *server) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Message string `json:"message"`
	}
	decode(t, w, &body)
	return body.Message
}

func TestHealth(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestBookingFlow(t *testing.T) {
	s := newServer(t)

	barber := testutil.User(t, s.gdb, models.RoleBarber, "barber@test.io")
	clients := testutil.Clients(t, s.gdb, 2)
	svc := testutil.Service(t, s.gdb, barber.ID, "Cut", 30)
	testutil.Availability(t, s.gdb, barber.ID, "2024-06-01", "09:00", "10:00")

	bookPath := fmt.Sprintf("/api/client/appointments/barbers/%d", barber.ID)
	req := gin.H{"date": "2024-06-01", "slot": "09:00", "services": []uint{svc.ID}}

	w := s.do(http.MethodPost, bookPath, s.token(t, clients[0]), req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{"detail":"Appointment added successfully."}`, w.Body.String())

	w = s.do(http.MethodPost, bookPath, s.token(t, clients[1]), req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "This time slot is already booked.", message(t, w))

	// public listing
	w = s.do(http.MethodGet, fmt.Sprintf("/api/public/barbers/%d/availability", barber.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listing struct {
		Availability []struct {
			Date  string   `json:"date"`
			Slots []string `json:"slots"`
		} `json:"availability"`
	}
	decode(t, w, &listing)
	require.Len(t, listing.Availability, 1)
	assert.Equal(t, "2024-06-01", listing.Availability[0].Date)

	// client list + cancel
	w = s.do(http.MethodGet, "/api/client/appointments", s.token(t, clients[0]), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var mine []struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	decode(t, w, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, "ONGOING", mine[0].Status)

	cancelPath := fmt.Sprintf("/api/client/appointments/%d", mine[0].ID)

	w = s.do(http.MethodDelete, cancelPath, s.token(t, clients[1]), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Appointment does not exist.", message(t, w))

	w = s.do(http.MethodDelete, cancelPath, s.token(t, clients[0]), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodDelete, cancelPath, s.token(t, clients[0]), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Only ONGOING appointments can be cancelled.", message(t, w))

	// the slot is free again
	w = s.do(http.MethodPost, bookPath, s.token(t, clients[1]), req)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestBookingValidation(t *testing.T) {
	s := newServer(t)

	barber := testutil.User(t, s.gdb, models.RoleBarber, "barber@test.io")
	client := testutil.User(t, s.gdb, models.RoleClient, "client@test.io")
	token := s.token(t, client)
	path := fmt.Sprintf("/api/client/appointments/barbers/%d", barber.ID)

	cases := map[string]gin.H{
		"bad slot":    {"date": "2024-06-01", "slot": "9am", "services": []uint{1}},
		"bad date":    {"date": "01/06/2024", "slot": "09:00", "services": []uint{1}},
		"no services": {"date": "2024-06-01", "slot": "09:00", "services": []uint{}},
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := s.do(http.MethodPost, path, token, body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	w := s.do(http.MethodPost, "/api/client/appointments/barbers/abc", token, cases["bad slot"])
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGuards(t *testing.T) {
	s := newServer(t)

	client := testutil.User(t, s.gdb, models.RoleClient, "client@test.io")
	admin := testutil.User(t, s.gdb, models.RoleAdmin, "admin@test.io")

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/admin/audit-logs", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/admin/audit-logs", s.token(t, client), nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/barber/appointments", s.token(t, client), nil).Code)

	w := s.do(http.MethodGet, "/api/admin/audit-logs?limit=10", s.token(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
	}
	decode(t, w, &page)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
}

func TestAdminManagesBarber(t *testing.T) {
	s := newServer(t)

	admin := s.token(t, testutil.User(t, s.gdb, models.RoleAdmin, "admin@test.io"))
	barber := testutil.User(t, s.gdb, models.RoleBarber, "barber@test.io")
	base := fmt.Sprintf("/api/admin/barbers/%d", barber.ID)

	w := s.do(http.MethodPost, base+"/services", admin, gin.H{"name": "Beard", "price": 20})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, base+"/services", admin, gin.H{"name": "beard", "price": 25})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, base+"/availability", admin, gin.H{"date": "2024-06-03", "slots": []string{"10:00", "09:00", "10:00"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var av struct {
		ID    uint     `json:"id"`
		Slots []string `json:"slots"`
	}
	decode(t, w, &av)
	assert.Equal(t, []string{"09:00", "10:00"}, av.Slots)

	w = s.do(http.MethodPost, base+"/availability", admin, gin.H{"date": "2024-06-03", "slots": []string{"11:00"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodDelete, fmt.Sprintf("%s/availability/%d", base, av.ID), admin, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/public/barbers/%d/services", barber.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Beard")
}

var tokenInLink = regexp.MustCompile(`token=([0-9a-f-]+)`)

func TestSignupVerifyLogin(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodPost, "/api/auth/signup", "", gin.H{
		"email":      "New@Client.io",
		"password":   "secret-pass",
		"first_name": "New",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	login := gin.H{"email": "new@client.io", "password": "secret-pass"}
	w = s.do(http.MethodPost, "/api/auth/login", "", login)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email address has not been verified.", message(t, w))

	sent := s.outbox.Sent()
	require.Len(t, sent, 1)
	m := tokenInLink.FindStringSubmatch(sent[0].Body)
	require.Len(t, m, 2)

	w = s.do(http.MethodPost, "/api/auth/verify-email", "", gin.H{"token": m[1]})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/auth/login", "", login)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var pair auth.Pair
	decode(t, w, &pair)
	require.NotEmpty(t, pair.Access)

	w = s.do(http.MethodGet, "/api/me", pair.Access, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"new@client.io"`)

	w = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "new@client.io", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
