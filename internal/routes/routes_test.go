package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/testutil"
)

type captureNotifier struct {
	mu            sync.Mutex
	confirmations []notify.Confirmation
}

func (n *captureNotifier) SendConfirmation(_ context.Context, msg notify.Confirmation) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmations = append(n.confirmations, msg)
	return nil
}

func (n *captureNotifier) SendReward(context.Context, notify.Reward) error { return nil }

func (n *captureNotifier) lastToken(t *testing.T) string {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	require.NotEmpty(t, n.confirmations)
	link := n.confirmations[len(n.confirmations)-1].Link
	return link[strings.LastIndex(link, "/")+1:]
}

type server struct {
	t        *testing.T
	router   *gin.Engine
	db       *gorm.DB
	notifier *captureNotifier
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:          "secret",
		JWTTTL:             time.Hour,
		Timezone:           "UTC",
		PublicBaseURL:      "http://test",
		DefaultStartTime:   "09:00",
		DefaultEndTime:     "18:20",
		SlotStepMinutes:    40,
		PendingTTL:         time.Hour,
		CancellationWindow: 600 * time.Second,
		WorkingHoursTTL:    60 * 24 * time.Hour,
	}

	db := testutil.NewDB(t)
	dispatcher := audit.NewDispatcher(audit.New(db), zerolog.Nop())
	t.Cleanup(dispatcher.Close)

	s := &server{t: t, router: gin.New(), db: db, notifier: &captureNotifier{}}
	RegisterRoutes(s.router, Deps{
		DB:       db,
		Config:   cfg,
		Log:      zerolog.Nop(),
		Cache:    cache.NewMemoryUserCache(time.Minute),
		Notifier: s.notifier,
		Audit:    dispatcher,
	})
	return s
}

func (s *server) createUser(email, role string) {
	s.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(s.t, err)
	require.NoError(s.t, s.db.Create(&models.User{
		Firstname:    "Test",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}).Error)
}

func (s *server) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
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

func (s *server) login(email string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": "secret123"})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &out))
	return out.Token
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var out struct {
		Code string `json:"error_code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out.Code
}

func TestPublicEndpoints(t *testing.T) {
	s := newServer(t)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", "", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/metrics", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/me", "", nil).Code)

	s.createUser("ana@example.com", models.RoleUser)
	w := s.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "ana@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", errorCode(t, w))
}

func TestBookingFlow(t *testing.T) {
	s := newServer(t)
	s.createUser("ana@example.com", models.RoleUser)
	s.createUser("bob@example.com", models.RoleUser)
	s.createUser("boss@example.com", models.RoleAdmin)

	ana := s.login("ana@example.com")
	bob := s.login("bob@example.com")
	boss := s.login("boss@example.com")

	date := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")

	// ------------------------------
	// availability of an untouched day
	// ------------------------------
	w := s.do(http.MethodGet, "/appointments/"+date, ana, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var day struct {
		Date  string   `json:"date"`
		Slots []string `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &day))
	assert.Equal(t, date, day.Date)
	assert.Len(t, day.Slots, 15)

	// ------------------------------
	// book + confirm
	// ------------------------------
	w = s.do(http.MethodPost, "/appointments/book", ana, map[string]string{
		"date": date, "time_slot": "10:20", "type": "Hair and Beard",
	})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"confirmation_sent"`)
	assert.NotContains(t, w.Body.String(), "confirmation_hex")

	token := s.notifier.lastToken(t)
	w = s.do(http.MethodGet, "/appointments/confirmation/"+token, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/appointments/confirmation/"+token, "", nil)
	assert.Equal(t, http.StatusGone, w.Code)
	assert.Equal(t, "token_not_found", errorCode(t, w))

	w = s.do(http.MethodPost, "/appointments/book", bob, map[string]string{
		"date": date, "time_slot": "11:00", "type": "Hair",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slot_conflict", errorCode(t, w))

	w = s.do(http.MethodPost, "/appointments/book", bob, map[string]string{
		"date": date, "time_slot": "10:21", "type": "Hair",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_slot", errorCode(t, w))

	// ------------------------------
	// admin surface
	// ------------------------------
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodDelete, "/admin/appointments/1", bob, nil).Code)

	w = s.do(http.MethodGet, "/admin/appointments/export/"+date, boss, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.NotZero(t, w.Body.Len())

	w = s.do(http.MethodGet, "/schedule/get-working-hours/"+date, ana, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"shifted_time":"11:10"`)

	w = s.do(http.MethodPost, "/admin/appointments/1/attendance", boss, map[string]bool{"attended": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"attendance":1`)

	// ------------------------------
	// cancel
	// ------------------------------
	w = s.do(http.MethodDelete, "/appointments/cancel/1", bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", errorCode(t, w))

	w = s.do(http.MethodDelete, "/appointments/cancel/1", ana, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodDelete, "/appointments/cancel/1", ana, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/appointments/"+date, ana, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &day))
	assert.Len(t, day.Slots, 15)

	// ------------------------------
	// audit trail
	// ------------------------------
	assert.Eventually(t, func() bool {
		w := s.do(http.MethodGet, "/admin/audit-logs?action=appointment_cancelled", boss, nil)
		return w.Code == http.StatusOK && strings.Contains(w.Body.String(), `"total":1`)
	}, 2*time.Second, 20*time.Millisecond)
}

func TestScheduleAdmin(t *testing.T) {
	s := newServer(t)
	s.createUser("ana@example.com", models.RoleUser)
	s.createUser("boss@example.com", models.RoleAdmin)
	ana := s.login("ana@example.com")
	boss := s.login("boss@example.com")

	date := time.Now().UTC().AddDate(0, 0, 3).Format("2006-01-02")
	hours := map[string]string{"date": date, "start_time": "10:00", "end_time": "12:00"}

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/schedule/set-working-hours", ana, hours).Code)

	w := s.do(http.MethodGet, "/schedule/get-working-hours/"+date, ana, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "working_hours_not_found", errorCode(t, w))

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/schedule/set-working-hours", boss, hours).Code)

	slot := map[string]string{"date": date, "time_slot": "10:40"}
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/schedule/block-slot", boss, slot).Code)

	var day struct {
		Slots []string `json:"slots"`
	}
	w = s.do(http.MethodGet, "/appointments/"+date, ana, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &day))
	assert.Equal(t, []string{"10:00", "11:20", "12:00"}, day.Slots)

	w = s.do(http.MethodPost, "/appointments/book", ana, map[string]string{"date": date, "time_slot": "10:40", "type": "Beard"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slot_unavailable", errorCode(t, w))

	require.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/schedule/block-slot", boss, slot).Code)
	w = s.do(http.MethodDelete, "/schedule/block-slot", boss, slot)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateAttendanceSuspends(t *testing.T) {
	s := newServer(t)
	s.createUser("ana@example.com", models.RoleUser)
	s.createUser("boss@example.com", models.RoleAdmin)
	ana := s.login("ana@example.com")
	boss := s.login("boss@example.com")

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/me", ana, nil).Code)

	w := s.do(http.MethodPatch, "/users/update-attendance/1", boss, map[string]int{"attendance": 9})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_attendance", errorCode(t, w))

	w = s.do(http.MethodPatch, "/users/update-attendance/1", boss, map[string]int{"attendance": -3})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"rights":"suspended"`)

	// the cached verification was dropped, so the suspension applies at once
	w = s.do(http.MethodGet, "/me", ana, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", errorCode(t, w))
}
