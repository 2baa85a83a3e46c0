package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	IdentityDatabaseURL string
	LaundryDatabaseURL  string
	RedisURL            string

	JWTSecret    string
	SessionTTL   time.Duration
	AdminPasskey string

	BusinessName       string
	AuditLogPath       string
	ReportQueryTimeout time.Duration

	CloudinaryURL          string
	CloudinaryUploadFolder string
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "4000"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		IdentityDatabaseURL: getEnv("IDENTITY_DATABASE_URL", defaultDSN("cims")),
		LaundryDatabaseURL:  getEnv("LAUNDRY_DATABASE_URL", defaultDSN("laundry")),
		RedisURL:            os.Getenv("REDIS_URL"),

		JWTSecret:    os.Getenv("JWT_SECRET"),
		AdminPasskey: os.Getenv("ADMIN_PASSKEY"),

		BusinessName: getEnv("BUSINESS_NAME", "FreshWash.INC"),
		AuditLogPath: getEnv("AUDIT_LOG_PATH", "logs/api.log"),

		CloudinaryURL:          os.Getenv("CLOUDINARY_URL"),
		CloudinaryUploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "freshwash"),
	}

	var err error
	cfg.SessionTTL, err = parseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	cfg.ReportQueryTimeout, err = parseDuration(getEnv("REPORT_QUERY_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_QUERY_TIMEOUT: %w", err)
	}

	if cfg.JWTSecret == "" {
		if cfg.AppEnv != "development" {
			return nil, errors.New("JWT_SECRET must be set outside development")
		}
		cfg.JWTSecret = "change-me"
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func defaultDSN(dbName string) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_USER", "postgres"),
		os.Getenv("DB_PASS"),
		dbName,
		getEnv("DB_PORT", "5432"),
	)
}

func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %s", s)
	}
	return d, nil
}
