package config

import (
	"os"
	"strconv"
	"time"
)

// Store backends the hosts can run against.
const (
	StoreHTTP     = "http"
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	Environment string
	// Storage service
	Store       string // http, memory or postgres
	APIURL      string
	APIToken    string
	HTTPRetries int
	HTTPTimeout time.Duration
	FixturePath string // YAML seed for the memory store
	DatabaseURL string
	TablePrefix string
	OwnerID     int64 // user whose folders the postgres store serves
	// View
	Scope  string
	Locale string
	// Dev server
	Port        string
	CORSOrigins string
	JWTSecret   string // HS256 secret; empty disables auth
	AutoMigrate bool   // create the postgres tables on startup
	// Logging
	LogDir      string
	LogMaxFiles int
	Debug       bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Environment: env,
		Store:       getEnv("STORE", StoreHTTP),
		APIURL:      getEnv("API_URL", "http://localhost:8080/api"),
		APIToken:    getEnv("API_TOKEN", ""),
		HTTPRetries: getEnvInt("HTTP_RETRY_MAX", 3),
		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 15*time.Second),
		FixturePath: getEnv("FIXTURE_PATH", ""),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		TablePrefix: getEnv("TABLE_PREFIX", ""),
		OwnerID:     int64(getEnvInt("OWNER_ID", 1)),
		Scope:       getEnv("SCOPE", "private"),
		Locale:      getEnv("LOCALE", "en"),
		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		AutoMigrate: getEnv("AUTO_MIGRATE", "false") == "true",
		LogDir:      getEnv("LOG_DIR", defaultLogDir()),
		LogMaxFiles: getEnvInt("LOG_MAX_FILES", DefaultLogMaxFiles),
		// Debug defaults to true outside production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

func defaultLogDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return dir + string(os.PathSeparator) + "docshelf" + string(os.PathSeparator) + "logs"
	}
	return "logs"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
