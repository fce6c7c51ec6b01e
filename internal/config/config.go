// Package config loads process configuration from the environment once at
// startup. Secrets are handed to their consumers explicitly; nothing below
// this package reads the environment.
package config

import (
	"errors"
	"os"
	"strconv"
)

type Config struct {
	Addr        string
	DatabaseURL string

	// JWTSecret signs session tokens. Its absence is a fatal startup
	// condition, not something deferred to first use.
	JWTSecret string

	// PublicDir is served as static files; uploads land in
	// PublicDir/UploadsDir and posts reference them by relative path.
	PublicDir  string
	UploadsDir string

	PerPage int

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	MailFrom string

	// Bootstrap admin, seeded idempotently at startup. Self-registration
	// always gets the user role.
	AdminEmail    string
	AdminPassword string
}

func Load() (*Config, error) {
	cfg := &Config{
		Addr:          ":" + getenv("PORT", "4000"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		PublicDir:     getenv("PUBLIC_DIR", "public"),
		UploadsDir:    getenv("UPLOADS_DIR", "uploads"),
		PerPage:       getenvInt("PER_PAGE", 9),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      getenv("SMTP_PORT", "587"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		MailFrom:      os.Getenv("MAIL_FROM"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("config: DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("config: JWT_SECRET is required")
	}
	return cfg, nil
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
