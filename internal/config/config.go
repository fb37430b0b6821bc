package config

import (
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings, loaded once at startup.
type Config struct {
	Port        string
	DataDir     string
	LockTimeout time.Duration
	Timezone    string
	AdminToken  string
}

// Load reads an optional .env file and resolves settings from the
// environment with defaults suitable for local development.
func Load() *Config {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DataDir:     getEnv("DATA_DIR", "data"),
		LockTimeout: getEnvAsDuration("LOCK_TIMEOUT", 5*time.Second),
		Timezone:    getEnv("AUCTION_TIMEZONE", "Asia/Taipei"),
		AdminToken:  getEnv("ADMIN_TOKEN", ""),
	}
}

// Location resolves the configured timezone, falling back to UTC if the
// name is unknown to the host's zone database.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
