package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the API server and its scan workers.
type Config struct {
	Addr string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// APIKey enables bearer authentication when non-empty.
	APIKey     string
	CORSOrigin string

	RateLimit       int64
	RateLimitWindow time.Duration

	ScanWorkers  int
	ProbeRate    int
	MaxPorts     int
	ScanDeadline time.Duration
	TaskTTL      time.Duration

	LogLevel string
}

// Load reads an optional dotenv file and then the process environment.
// Variables already present in the environment win over the file.
func Load() (*Config, error) {
	envFile := getenv("CYBERX_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	p := &parser{}
	cfg := &Config{
		Addr:            getenv("CYBERX_ADDR", ":8787"),
		RedisAddr:       getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         p.int("REDIS_DB", 0),
		APIKey:          os.Getenv("API_KEY"),
		CORSOrigin:      getenv("CORS_ORIGIN", "http://localhost:5173"),
		RateLimit:       int64(p.int("RATE_LIMIT", 60)),
		RateLimitWindow: p.duration("RATE_LIMIT_WINDOW", time.Minute),
		ScanWorkers:     p.int("SCAN_WORKERS", 5),
		ProbeRate:       p.int("SCAN_PROBE_RATE", 0),
		MaxPorts:        p.int("SCAN_MAX_PORTS", 65535),
		ScanDeadline:    p.duration("SCAN_DEADLINE", 10*time.Minute),
		TaskTTL:         p.duration("TASK_TTL", 24*time.Hour),
		LogLevel:        getenv("LOG_LEVEL", "info"),
	}
	if err := p.err(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.ScanWorkers < 1 {
		errs = append(errs, errors.New("SCAN_WORKERS must be at least 1"))
	}
	if c.MaxPorts < 1 {
		errs = append(errs, errors.New("SCAN_MAX_PORTS must be at least 1"))
	}
	if c.RateLimit < 1 {
		errs = append(errs, errors.New("RATE_LIMIT must be at least 1"))
	}
	if c.RateLimitWindow <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WINDOW must be positive"))
	}
	if c.ScanDeadline <= 0 {
		errs = append(errs, errors.New("SCAN_DEADLINE must be positive"))
	}
	return errors.Join(errs...)
}

func getenv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// parser collects conversion failures so every bad variable is reported at once.
type parser struct {
	errs []error
}

func (p *parser) int(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: invalid integer %q", key, raw))
		return fallback
	}
	return v
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: invalid duration %q", key, raw))
		return fallback
	}
	return v
}

func (p *parser) err() error {
	return errors.Join(p.errs...)
}
