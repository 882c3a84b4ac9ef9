package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const defaultBackendURL = "http://localhost:5000/api"

type Config struct {
	BackendURL   string
	RealtimeURL  string
	SessionStore string
	Profile      string
	LogFile      string
	LogMode      string
	PlansFile    string
}

// Load lee .env (si existe) y después el entorno.
func Load() (*Config, error) {
	// sin .env seguimos con las variables de entorno
	_ = godotenv.Load()

	backend := getEnv("MOMS_BACKEND_URL", getEnv("VITE_BACKEND_URL", defaultBackendURL))
	backend = strings.TrimRight(backend, "/")

	realtime, ok := os.LookupEnv("MOMS_REALTIME_URL")
	if !ok || realtime == "" {
		var err error
		realtime, err = RealtimeFromBackend(backend)
		if err != nil {
			return nil, err
		}
	}

	dir := stateDir()
	return &Config{
		BackendURL:   backend,
		RealtimeURL:  realtime,
		SessionStore: getEnv("MOMS_SESSION_STORE", filepath.Join(dir, "session.json")),
		Profile:      getEnv("MOMS_PROFILE", "default"),
		LogFile:      getEnv("MOMS_LOG_FILE", filepath.Join(dir, "client.log")),
		LogMode:      getEnv("MOMS_LOG_MODE", "dev"),
		PlansFile:    getEnv("MOMS_PLANS_FILE", ""),
	}, nil
}

// RealtimeFromBackend deriva la URL del websocket del mismo host que la API.
func RealtimeFromBackend(backend string) (string, error) {
	u, err := url.Parse(backend)
	if err != nil {
		return "", fmt.Errorf("invalid backend url %q: %w", backend, err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http", "":
		u.Scheme = "ws"
	default:
		return "", fmt.Errorf("invalid backend url scheme %q", u.Scheme)
	}
	u.Path = "/ws"
	u.RawQuery = ""
	return u.String(), nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func stateDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".momsdigitales"
	}
	return filepath.Join(dir, "momsdigitales")
}
