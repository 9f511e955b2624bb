package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	OAuth      OAuthConfig
	Cloudinary CloudinaryConfig
	Email      EmailConfig
	Reminder   ReminderConfig
	CORS       CORSConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
	Issuer       string
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type EmailConfig struct {
	ResendAPIKey string
	From         string
}

type ReminderConfig struct {
	HoursAhead    int           // how far ahead of session start reminders target
	SweepInterval time.Duration // 0 disables the in-process sweeper
}

type CORSConfig struct {
	AllowedOrigins []string
	DefaultOrigin  string
}

// Load reads .env (when present) then environment variables, falling back to
// development defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("config: no .env file loaded: %v", err)
	}
	return &Config{
		Server: ServerConfig{
			Port:         env("PORT", "8080"),
			Env:          env("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             env("DATABASE_DSN", "studiohq:studiohq@tcp(localhost:3306)/studiohq?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			Secret:       env("JWT_SECRET", "change-me-in-production"),
			AccessExpiry: envDuration("JWT_ACCESS_EXPIRY", 24*time.Hour),
			Issuer:       "studiohq",
		},
		OAuth: OAuthConfig{
			GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
		Email: EmailConfig{
			ResendAPIKey: os.Getenv("RESEND_API_KEY"),
			From:         env("EMAIL_FROM", "StudioHQ <noreply@studiohq.local>"),
		},
		Reminder: ReminderConfig{
			HoursAhead:    envInt("REMINDER_HOURS_AHEAD", 24),
			SweepInterval: envDuration("REMINDER_SWEEP_INTERVAL", time.Hour),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				env("FRONTEND_ORIGIN", "http://localhost:5173"),
				"http://localhost:3000",
			},
			DefaultOrigin: env("FRONTEND_ORIGIN", "http://localhost:5173"),
		},
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
