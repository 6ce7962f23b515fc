// Package config loads runtime settings from the environment, optionally
// seeded from a .env file in the working directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Session backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds every setting the binaries read.
type Config struct {
	HTTPAddr string
	TLSCert  string
	TLSKey   string

	SessionBackend string
	SessionTTL     time.Duration
	RedisAddr      string
	RedisURL       string
	DatabaseURL    string

	MealDBBaseURL string
	MealDBTimeout time.Duration

	OTelHost        string
	OTelSampleRatio float64
	LogLevel        string
}

// Load reads .env (when present) and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("SESSION_BACKEND", BackendMemory)
	v.SetDefault("SESSION_TTL", "12h")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("MEALDB_BASE_URL", "https://www.themealdb.com/api/json/v1/1")
	v.SetDefault("MEALDB_TIMEOUT", "10s")
	v.SetDefault("OTEL_SAMPLE_RATIO", 1.0)
	v.SetDefault("LOG_LEVEL", "info")
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		HTTPAddr:        v.GetString("HTTP_ADDR"),
		TLSCert:         v.GetString("TLS_CERT"),
		TLSKey:          v.GetString("TLS_KEY"),
		SessionBackend:  strings.ToLower(v.GetString("SESSION_BACKEND")),
		SessionTTL:      v.GetDuration("SESSION_TTL"),
		RedisAddr:       v.GetString("REDIS_ADDR"),
		RedisURL:        v.GetString("REDIS_URL"),
		DatabaseURL:     v.GetString("DATABASE_URL"),
		MealDBBaseURL:   strings.TrimRight(v.GetString("MEALDB_BASE_URL"), "/"),
		MealDBTimeout:   v.GetDuration("MEALDB_TIMEOUT"),
		OTelHost:        v.GetString("OTEL_HOST"),
		OTelSampleRatio: v.GetFloat64("OTEL_SAMPLE_RATIO"),
		LogLevel:        v.GetString("LOG_LEVEL"),
	}
	return cfg, cfg.Validate()
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	switch c.SessionBackend {
	case BackendMemory, BackendRedis:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres session backend")
		}
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.SessionBackend)
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return errors.New("TLS_CERT and TLS_KEY must be set together")
	}
	if c.OTelSampleRatio < 0 || c.OTelSampleRatio > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATIO must be within [0,1], got %v", c.OTelSampleRatio)
	}
	return nil
}
