package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultServerAddr      = ":8080"
	DefaultUpstreamBaseURL = "https://jsonplaceholder.typicode.com"
	DefaultUpstreamTimeout = 10 * time.Second
	DefaultUpstreamRPS     = 10.0
	DefaultUpstreamBurst   = 4
	DefaultMaxPages        = 256
	DefaultSessionSecret   = "userdash-development-session-secret"
)

// Provider is the read-only view of the configuration handed to services.
type Provider interface {
	GetServerAddr() string
	GetUpstreamBaseURL() string
	GetUpstreamTimeout() time.Duration
	GetUpstreamRPS() float64
	GetUpstreamBurst() int
	GetSessionSecret() string
	GetMaxPages() int
}

// Config holds all configuration for the application.
type Config struct {
	ServerAddr      string
	UpstreamBaseURL string
	UpstreamTimeout time.Duration
	UpstreamRPS     float64
	UpstreamBurst   int
	SessionSecret   string
	MaxPages        int
}

// New loads configuration from a .env file, if any, and the environment.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() *Config {
	cfg := &Config{
		ServerAddr:      getString("SERVER_ADDR", DefaultServerAddr),
		UpstreamBaseURL: getString("UPSTREAM_BASE_URL", DefaultUpstreamBaseURL),
		UpstreamTimeout: getDuration("UPSTREAM_TIMEOUT", DefaultUpstreamTimeout),
		UpstreamRPS:     getFloat("UPSTREAM_RPS", DefaultUpstreamRPS),
		UpstreamBurst:   getInt("UPSTREAM_BURST", DefaultUpstreamBurst),
		SessionSecret:   getString("SESSION_SECRET", DefaultSessionSecret),
		MaxPages:        getInt("MAX_PAGES", DefaultMaxPages),
	}

	if cfg.SessionSecret == DefaultSessionSecret {
		log.Println("SESSION_SECRET is not set, using the development default")
	}
	return cfg
}

func (c *Config) GetServerAddr() string             { return c.ServerAddr }
func (c *Config) GetUpstreamBaseURL() string        { return c.UpstreamBaseURL }
func (c *Config) GetUpstreamTimeout() time.Duration { return c.UpstreamTimeout }
func (c *Config) GetUpstreamRPS() float64           { return c.UpstreamRPS }
func (c *Config) GetUpstreamBurst() int             { return c.UpstreamBurst }
func (c *Config) GetSessionSecret() string          { return c.SessionSecret }
func (c *Config) GetMaxPages() int                  { return c.MaxPages }

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Ignoring invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		log.Printf("Ignoring invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return f
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("Ignoring invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
