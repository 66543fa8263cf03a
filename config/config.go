// File: /config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	// Places search
	GoogleMapsAPIKey string

	// Email Configuration
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string

	// How often the expiry scan runs
	NotifyInterval time.Duration
}

func Load() *Config {
	// Missing .env is fine; everything has an env-var or built-in fallback.
	_ = godotenv.Load()

	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "2525"))
	notifySeconds, _ := strconv.Atoi(getEnv("NOTIFY_INTERVAL_SECONDS", "5"))

	return &Config{
		Port:        getEnv("PORT", "3000"),
		DatabaseURL: getEnv("DATABASE_URL", "user:password@tcp(localhost:3306)/w2meet?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key"),

		GoogleMapsAPIKey: getEnv("GOOGLE_MAPS_API_KEY", ""),

		// Email settings
		SMTPHost:     getEnv("SMTP_HOST", "sandbox.smtp.mailtrap.io"),
		SMTPPort:     smtpPort,
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		FromEmail:    getEnv("FROM_EMAIL", "2w2meet.noreply@gmail.com"),
		FromName:     getEnv("FROM_NAME", "2W2Meet"),

		NotifyInterval: time.Duration(notifySeconds) * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
