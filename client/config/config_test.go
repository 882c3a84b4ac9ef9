package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MOMS_BACKEND_URL", "")
	t.Setenv("VITE_BACKEND_URL", "")
	t.Setenv("MOMS_REALTIME_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000/api", cfg.BackendURL)
	assert.Equal(t, "ws://localhost:5000/ws", cfg.RealtimeURL)
	assert.Equal(t, "default", cfg.Profile)
}

func TestLoadFallsBackToViteVariable(t *testing.T) {
	t.Setenv("MOMS_BACKEND_URL", "")
	t.Setenv("VITE_BACKEND_URL", "https://api.momsdigitales.com/api/")
	t.Setenv("MOMS_REALTIME_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.momsdigitales.com/api", cfg.BackendURL)
	assert.Equal(t, "wss://api.momsdigitales.com/ws", cfg.RealtimeURL)
}

func TestRealtimeOverride(t *testing.T) {
	t.Setenv("MOMS_BACKEND_URL", "http://localhost:5000/api")
	t.Setenv("MOMS_REALTIME_URL", "ws://otro:9000/socket")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "ws://otro:9000/socket", cfg.RealtimeURL)
}

func TestRealtimeFromBackendRejectsUnknownScheme(t *testing.T) {
	_, err := RealtimeFromBackend("ftp://host/api")
	assert.Error(t, err)
}
