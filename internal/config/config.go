// Package config reads the server settings from the environment. A .env
// file in the working directory is loaded first.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Port        string
	GinMode     string
	DBPath      string
	ContentPath string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	ToEmail  string

	AdminUsername string
	AdminPassword string

	ReplyDelay       time.Duration
	StarCount        int
	FrameRate        int
	MaxStreams       int
	VisitorRetention time.Duration
}

// DefaultMaxStreams bounds concurrent starfield websockets.
const DefaultMaxStreams = 100

// Load reads the environment, falling back to development defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		DBPath:        getEnv("DB_PATH", "data/portfolio.db"),
		ContentPath:   getEnv("CONTENT_PATH", "portfolio.yml"),
		SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		ToEmail:       os.Getenv("TO_EMAIL"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	var err error
	if cfg.ReplyDelay, err = getDuration("REPLY_DELAY", 800*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.VisitorRetention, err = getDuration("VISITOR_RETENTION", 365*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.StarCount, err = getInt("STAR_COUNT", 200); err != nil {
		return nil, err
	}
	if cfg.FrameRate, err = getInt("FRAME_RATE", 30); err != nil {
		return nil, err
	}
	if cfg.MaxStreams, err = getInt("MAX_STREAMS", DefaultMaxStreams); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.StarCount <= 0 {
		return fmt.Errorf("STAR_COUNT must be positive")
	}
	if c.FrameRate <= 0 || c.FrameRate > 120 {
		return fmt.Errorf("FRAME_RATE must be between 1 and 120")
	}
	if c.MaxStreams <= 0 {
		return fmt.Errorf("MAX_STREAMS must be positive")
	}
	if c.ReplyDelay < 0 {
		return fmt.Errorf("REPLY_DELAY must be non-negative")
	}
	if c.VisitorRetention <= 0 {
		return fmt.Errorf("VISITOR_RETENTION must be positive")
	}
	return nil
}

// SMTPConfigured reports whether the contact form can send mail.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPUser != "" && c.SMTPPass != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
