package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("CANCELLATION_WINDOW", "")
	t.Setenv("ADMIN_EMAILS", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "09:00", cfg.DefaultStartTime)
	assert.Equal(t, "18:20", cfg.DefaultEndTime)
	assert.Equal(t, 40, cfg.SlotStepMinutes)
	assert.Equal(t, 600*time.Second, cfg.CancellationWindow)
	assert.False(t, cfg.IsAdminEmail("root@example.com"))
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CANCELLATION_WINDOW", "120")
	t.Setenv("PENDING_TTL", "30m")
	t.Setenv("SLOT_STEP_MINUTES", "30")
	t.Setenv("ADMIN_EMAILS", " Boss@Example.com , other@example.com")
	t.Setenv("PUBLIC_BASE_URL", "https://barber.example.com/")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 120*time.Second, cfg.CancellationWindow)
	assert.Equal(t, 30*time.Minute, cfg.PendingTTL)
	assert.Equal(t, 30, cfg.SlotStepMinutes)
	assert.True(t, cfg.IsAdminEmail("boss@example.com"))
	assert.True(t, cfg.IsAdminEmail("OTHER@example.com"))
	assert.Equal(t, "https://barber.example.com", cfg.PublicBaseURL)
	assert.True(t, cfg.RedisEnabled())
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("SLOT_STEP_MINUTES", "forty")
	t.Setenv("SWEEP_INTERVAL", "soon")

	cfg := Load()

	assert.Equal(t, 40, cfg.SlotStepMinutes)
	assert.Equal(t, 10*time.Minute, cfg.SweepInterval)
}
