package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds process settings for the server and the advisory client
type AppConfig struct {
	// Server
	Port      string
	CacheSize int

	// Gemini
	GeminiAPIKey  string
	GeminiModel   string
	AdviceTimeout time.Duration

	// Sentry
	SentryDSN         string
	SentryEnvironment string
	SentryRelease     string

	// Optional regulatory override file
	RegulatoryFile string
}

// LoadEnv reads .env (if present) and builds an AppConfig from the environment
func LoadEnv(files ...string) AppConfig {
	if err := godotenv.Load(files...); err != nil {
		log.Println("config: no .env file found, using environment variables")
	}

	return AppConfig{
		Port:      envOr("PORT", "8080"),
		CacheSize: envInt("CACHE_SIZE", 1024),

		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   envOr("GEMINI_MODEL", "gemini-2.0-flash"),
		AdviceTimeout: envDuration("ADVICE_TIMEOUT", 30*time.Second),

		SentryDSN:         os.Getenv("SENTRY_DSN"),
		SentryEnvironment: envOr("SENTRY_ENVIRONMENT", "development"),
		SentryRelease:     envOr("SENTRY_RELEASE", "itrgo@dev"),

		RegulatoryFile: os.Getenv("REGULATORY_FILE"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	dur, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return dur
}
