package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Port string

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	RedisURL      string
	RedisPassword string
	RedisDB       int

	JWTSecret  string
	SessionTTL time.Duration

	UploadDir     string
	PublicBaseURL string

	BackupDir       string
	BackupHour      int
	BackupRetention time.Duration

	LocalZone        string
	ShippingLocalFee decimal.Decimal
	ShippingOtherFee decimal.Decimal

	CartDir         string
	CORSOrigins     []string
	CatalogCacheTTL time.Duration
	RequestTimeout  time.Duration
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "postgres"),
		DBPassword:       getEnv("DB_PASSWORD", ""),
		DBName:           getEnv("DB_NAME", "nishaan"),
		DBSSLMode:        getEnv("DB_SSLMODE", "disable"),
		RedisURL:         os.Getenv("REDIS_URL"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvAsInt("REDIS_DB", 0),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		SessionTTL:       getEnvAsDuration("SESSION_TTL", 72*time.Hour),
		UploadDir:        getEnv("UPLOAD_DIR", "./uploads"),
		PublicBaseURL:    strings.TrimRight(getEnv("PUBLIC_BASE_URL", ""), "/"),
		BackupDir:        getEnv("BACKUP_DIR", "./backup/uploads"),
		BackupHour:       getEnvAsInt("BACKUP_HOUR", 2),
		BackupRetention:  time.Duration(getEnvAsInt("BACKUP_RETENTION_DAYS", 4)) * 24 * time.Hour,
		LocalZone:        getEnv("LOCAL_ZONE", "dhaka"),
		ShippingLocalFee: getEnvAsDecimal("SHIPPING_LOCAL_FEE", decimal.NewFromInt(60)),
		ShippingOtherFee: getEnvAsDecimal("SHIPPING_OTHER_FEE", decimal.NewFromInt(110)),
		CartDir:          getEnv("CART_DIR", "./data/carts"),
		CORSOrigins:      getEnvAsList("CORS_ORIGINS", []string{"*"}),
		CatalogCacheTTL:  getEnvAsDuration("CATALOG_CACHE_TTL", 5*time.Minute),
		RequestTimeout:   getEnvAsDuration("REQUEST_TIMEOUT", 10*time.Second),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.BackupHour < 0 || cfg.BackupHour > 23 {
		return nil, fmt.Errorf("BACKUP_HOUR must be 0-23, got %d", cfg.BackupHour)
	}
	return cfg, nil
}

// DSN returns DATABASE_URL when set, else a key/value DSN from the DB_* parts.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil && !d.IsNegative() {
			return d
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
