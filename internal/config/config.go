package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// Server
	ServerPort string
	ServerEnv  string
	ServerHost string

	// Database
	DatabaseURL string

	// JWT
	JWTSecretKey              string
	JWTAccessTokenExpireMin   int
	JWTRefreshTokenExpireDays int

	// OpenAI
	OpenAIAPIKey         string
	OpenAIModel          string
	OpenAITimeoutSeconds int

	// AI search limits
	SearchRateLimit       int // requests per window per user
	SearchRateWindowMin   int // window length in minutes
	SearchCacheExpiryMin  int // cache entry TTL in minutes
	SearchDefaultLimit    int
	SearchMaxLimit        int

	// Email (SMTP)
	EmailHost         string
	EmailPort         int
	EmailHostUser     string
	EmailHostPassword string
	EmailUseTLS       bool
	DefaultFromEmail  string
	ConfirmURLBase    string

	// Observability
	OTLPEndpoint string
}

func Load() *Config {
	return &Config{
		// Server
		ServerPort: getEnv("SERVER_PORT", "3000"),
		ServerEnv:  getEnv("SERVER_ENV", "development"),
		ServerHost: getEnv("SERVER_HOST", "localhost:3000"),

		// Database - DATABASE_URL wins, otherwise composed from parts
		DatabaseURL: getDatabaseURL(),

		// JWT
		JWTSecretKey:              getEnv("JWT_SECRET_KEY", ""),
		JWTAccessTokenExpireMin:   getEnvAsInt("JWT_ACCESS_TOKEN_EXPIRE_MINUTES", 60*24),
		JWTRefreshTokenExpireDays: getEnvAsInt("JWT_REFRESH_TOKEN_EXPIRE_DAYS", 7),

		// OpenAI
		OpenAIAPIKey:         getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:          getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAITimeoutSeconds: getEnvAsInt("OPENAI_TIMEOUT_SECONDS", 30),

		// AI search limits
		SearchRateLimit:      getEnvAsInt("SEARCH_RATE_LIMIT", 60),
		SearchRateWindowMin:  getEnvAsInt("SEARCH_RATE_WINDOW_MINUTES", 60),
		SearchCacheExpiryMin: getEnvAsInt("SEARCH_CACHE_EXPIRY_MINUTES", 60),
		SearchDefaultLimit:   getEnvAsInt("SEARCH_DEFAULT_LIMIT", 10),
		SearchMaxLimit:       getEnvAsInt("SEARCH_MAX_LIMIT", 25),

		// Email
		EmailHost:         getEnv("EMAIL_HOST", "smtp.gmail.com"),
		EmailPort:         getEnvAsInt("EMAIL_PORT", 587),
		EmailHostUser:     getEnv("EMAIL_HOST_USER", ""),
		EmailHostPassword: getEnv("EMAIL_HOST_PASSWORD", ""),
		EmailUseTLS:       getEnvAsBool("EMAIL_USE_TLS", true),
		DefaultFromEmail:  getEnv("DEFAULT_FROM_EMAIL", ""),
		ConfirmURLBase:    getEnv("CONFIRM_URL_BASE", "http://localhost:3000/v1/auth/confirm_email"),

		// Observability
		OTLPEndpoint: getEnv("OTLP_ENDPOINT", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getDatabaseURL returns DATABASE_URL or builds it from individual env vars
func getDatabaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("POSTGRES_HOST", "localhost")
	port := getEnv("POSTGRES_PORT", "5432")
	user := getEnv("POSTGRES_USER", "postgres")
	password := getEnv("POSTGRES_PASSWORD", "")
	dbname := getEnv("POSTGRES_DB", "soundscape")
	sslmode := getEnv("POSTGRES_SSLMODE", "disable")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		user, password, host, port, dbname, sslmode)
}
