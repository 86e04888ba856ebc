package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAdminPassword = "admin123"
	defaultUserPassword  = "user123"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Catalog  CatalogConfig
	CORS     CORSConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

// DatabaseConfig only carries the switch; connection settings live in
// LoadDatabaseConfig.
type DatabaseConfig struct {
	Enabled  bool
	Password string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
	Prefix   string
}

type AuthConfig struct {
	AdminUsername string
	AdminPassword string
	UserUsername  string
	UserPassword  string
	SessionStore  string // memory, redis
	SessionTTL    time.Duration
	CookieName    string
	CookieSecure  bool
}

type CatalogConfig struct {
	ImagesDir       string
	SeedFile        string // delimited file loaded when storage is empty or absent
	PersistOnChange bool
	MaxUploadBytes  int64
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Mineral Catalog"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Enabled:  getEnvBool("DB_ENABLED", true),
			Password: getEnv("DB_PASSWORD", ""),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			Prefix:   getEnv("REDIS_PREFIX", "minerals:"),
		},
		Auth: AuthConfig{
			AdminUsername: getEnv("AUTH_ADMIN_USERNAME", "admin"),
			AdminPassword: getEnv("AUTH_ADMIN_PASSWORD", defaultAdminPassword),
			UserUsername:  getEnv("AUTH_USER_USERNAME", "user"),
			UserPassword:  getEnv("AUTH_USER_PASSWORD", defaultUserPassword),
			SessionStore:  strings.ToLower(getEnv("AUTH_SESSION_STORE", "memory")),
			SessionTTL:    getEnvDuration("AUTH_SESSION_TTL", 24*time.Hour),
			CookieName:    getEnv("AUTH_COOKIE_NAME", "session"),
			CookieSecure:  getEnvBool("AUTH_COOKIE_SECURE", false),
		},
		Catalog: CatalogConfig{
			ImagesDir:       getEnv("CATALOG_IMAGES_DIR", "images"),
			SeedFile:        getEnv("CATALOG_SEED_FILE", ""),
			PersistOnChange: getEnvBool("CATALOG_PERSIST_ON_CHANGE", false),
			MaxUploadBytes:  int64(getEnvInt("CATALOG_MAX_UPLOAD_BYTES", 10<<20)),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects default credentials in production.
func (c *Config) Validate() error {
	switch c.Auth.SessionStore {
	case "memory", "redis":
	default:
		return fmt.Errorf("AUTH_SESSION_STORE must be memory or redis, got %q", c.Auth.SessionStore)
	}

	if strings.TrimSpace(c.Auth.AdminUsername) == "" {
		return fmt.Errorf("AUTH_ADMIN_USERNAME must not be empty")
	}

	if c.App.Environment == "production" {
		if c.Auth.AdminPassword == defaultAdminPassword {
			return fmt.Errorf("AUTH_ADMIN_PASSWORD must be set in production")
		}
		if c.Database.Enabled && c.Database.Password == "" && os.Getenv("DATABASE_URL") == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
