package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries the knobs every front end shares. All of them are
// optional; unset or unparseable values fall back to the defaults.
type Config struct {
	// Dir overrides store discovery (KANBO_DIR).
	Dir string
	// AutosaveInterval is the TUI's periodic write cadence
	// (KANBO_AUTOSAVE_SECONDS).
	AutosaveInterval time.Duration
	// NoticeDuration is how long transient notices stay on screen
	// (KANBO_NOTICE_SECONDS).
	NoticeDuration time.Duration
	// ServeAddr is the read-only API bind address (KANBO_SERVE_ADDR).
	ServeAddr string
	// Theme forces the TUI palette: light, dark, or auto
	// (KANBO_TUI_THEME).
	Theme string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Dir:              os.Getenv("KANBO_DIR"),
		AutosaveInterval: secondsOr("KANBO_AUTOSAVE_SECONDS", 30*time.Second),
		NoticeDuration:   secondsOr("KANBO_NOTICE_SECONDS", 4*time.Second),
		ServeAddr:        envOr("KANBO_SERVE_ADDR", "127.0.0.1:8377"),
		Theme:            envOr("KANBO_TUI_THEME", "auto"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func secondsOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return time.Duration(n) * time.Second
}
