package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultBackendURL = "http://localhost:3000"

// Config holds all client configuration.
type Config struct {
	// BackendURL is the origin of the language-assistant backend.
	BackendURL string

	// RequestTimeout is the maximum duration for a single backend HTTP
	// request. Default: 30s.
	RequestTimeout time.Duration

	Auth AuthConfig

	// DBPath is the local SQLite cache path. Empty means the default
	// XDG location.
	DBPath string
}

// AuthConfig holds identity-provider configuration.
type AuthConfig struct {
	// Endpoint is the base URL of the account API.
	Endpoint string

	// Project identifies this app to the provider. Sent as a header on
	// every account request.
	Project string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BackendURL:     defaultBackendURL,
		RequestTimeout: 30 * time.Second,
		Auth: AuthConfig{
			Endpoint: "https://cloud.appwrite.io/v1",
		},
	}
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset values. A .env file in the working directory is
// loaded first when present; real environment variables win.
func FromEnv() Config {
	// Missing .env is the common case, not an error.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if u := os.Getenv("LINGUA_BACKEND_URL"); u != "" {
		cfg.BackendURL = u
	}
	if t := os.Getenv("LINGUA_REQUEST_TIMEOUT"); t != "" {
		if secs, err := strconv.Atoi(t); err == nil && secs > 0 {
			cfg.RequestTimeout = time.Duration(secs) * time.Second
		}
	}
	if e := os.Getenv("LINGUA_AUTH_ENDPOINT"); e != "" {
		cfg.Auth.Endpoint = e
	}
	if p := os.Getenv("LINGUA_AUTH_PROJECT"); p != "" {
		cfg.Auth.Project = p
	}
	if d := os.Getenv("LINGUA_DB"); d != "" {
		cfg.DBPath = d
	}

	return cfg
}

// DefaultDBPath resolves the local cache path in priority order:
// 1. LINGUA_DB environment variable
// 2. $XDG_DATA_HOME/lingua/lingua.db
// 3. ~/.local/share/lingua/lingua.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("LINGUA_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "lingua", "lingua.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
