// Package config loads application configuration from the environment.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the serve command needs to wire the app.
type Config struct {
	Port          int
	DBPath        string
	DevMode       bool
	GeocodeToken  string
	GeocodeURL    string // override for tests; empty means the default
	ImageStoreKey string
	ImageStoreURL string // override for tests; empty means the default
}

// Load reads .env (if present) and the CAMP_* environment variables.
// Missing optional values fall back to development defaults.
func Load() Config {
	// A missing .env file is fine; real deployments set env vars directly.
	_ = godotenv.Load()

	return Config{
		Port:          envInt("CAMP_PORT", 8080),
		DBPath:        os.Getenv("CAMP_DB_PATH"),
		DevMode:       os.Getenv("CAMP_DEV_MODE") == "true",
		GeocodeToken:  os.Getenv("CAMP_GEOCODE_TOKEN"),
		GeocodeURL:    os.Getenv("CAMP_GEOCODE_URL"),
		ImageStoreKey: os.Getenv("CAMP_IMAGESTORE_KEY"),
		ImageStoreURL: os.Getenv("CAMP_IMAGESTORE_URL"),
	}
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
