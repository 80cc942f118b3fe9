package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/booking-kit/internal/model"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "booking.json", cfg.Storage.Path)
	assert.Equal(t, "appointments", cfg.Storage.Keys.Appointments)
	assert.Equal(t, "users", cfg.Storage.Keys.Users)
	assert.Equal(t, "user", cfg.Storage.Keys.Session)
	assert.Equal(t, "token", cfg.Storage.Keys.Token)
	assert.Equal(t, model.DefaultSlots(), cfg.Booking.Slots)
	assert.Contains(t, cfg.Booking.Types, model.VisitTypeCheckup)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("BOOKING_STORAGE_BACKEND", "memory")
	t.Setenv("BOOKING_LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, "debug", cfg.Log.Level)
}
