package config

import (
	"os"
	"strconv"
	"time"

	"customer-service/internal/pkg/jwt"
)

type AppConfig struct {
	// Server
	HTTPAddr string

	// Store backend: "mongo", "postgres" or "memory"
	StoreBackend string
	MongoURI     string
	MongoDB      string
	DatabaseURL  string
	StoreTimeout time.Duration

	// Redis (sessions + login rate limiting)
	RedisAddr string
	RedisPass string

	// Session token
	Session jwt.Config

	// Shared operator credential. The bcrypt hash is preferred; the
	// plaintext variant is a legacy fallback.
	AdminUsername     string
	AdminPasswordHash string
	AdminPassword     string

	// Pagination
	PageSize int
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr: getEnv("HTTP_ADDR", ":8000"),

		StoreBackend: getEnv("STORE_BACKEND", "mongo"),
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      getEnv("MONGO_DB", "customer_management"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		StoreTimeout: getEnvDuration("STORE_TIMEOUT", 3*time.Second),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass: getEnv("REDIS_PASS", ""),

		Session: jwt.Config{
			Secret:   getEnv("SESSION_SECRET", ""),
			Issuer:   "customer-service",
			Audience: "customer-service",
			TTL:      getEnvDuration("SESSION_TTL", 2*time.Hour),
		},

		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),

		PageSize: getEnvInt("PAGE_SIZE", 20),
	}
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
