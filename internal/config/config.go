package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Currency CurrencyConfig
	Store    StoreConfig
	Email    EmailConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

// CurrencyConfig configures the exchange-rate source and cache.
type CurrencyConfig struct {
	BaseCurrency string        // prices are stored in this currency
	RateURL      string        // upstream rate source endpoint
	CacheTTL     time.Duration // how long fetched rates stay fresh
}

// StoreConfig carries the commerce constants: per-line quantity cap and
// the free-delivery threshold / fee, both in the base currency.
type StoreConfig struct {
	MaxQuantityPerItem    int
	FreeDeliveryThreshold int
	DeliveryFee           int
}

type EmailConfig struct {
	SMTPHost   string
	SMTPPort   string
	From       string
	AdminEmail string
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Storefront API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "storefront"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		},
		Currency: CurrencyConfig{
			BaseCurrency: getEnv("BASE_CURRENCY", "AED"),
			RateURL:      getEnv("CURRENCY_RATE_URL", "https://cdn.jsdelivr.net/npm/@fawazahmed0/currency-api@latest/v1/currencies/aed.json"),
			CacheTTL:     time.Duration(getEnvInt("CURRENCY_CACHE_TTL_MINUTES", 60)) * time.Minute,
		},
		Store: StoreConfig{
			MaxQuantityPerItem:    getEnvInt("MAX_QTY_PER_ITEM", 10),
			FreeDeliveryThreshold: getEnvInt("FREE_DELIVERY_THRESHOLD", 300),
			DeliveryFee:           getEnvInt("DELIVERY_FEE", 25),
		},
		Email: EmailConfig{
			SMTPHost:   getEnv("SMTP_HOST", "localhost"),
			SMTPPort:   getEnv("SMTP_PORT", "1025"),
			From:       getEnv("EMAIL_FROM", "noreply@storefront.dev"),
			AdminEmail: getEnv("ADMIN_EMAIL", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	if c.Store.MaxQuantityPerItem < 1 {
		return fmt.Errorf("MAX_QTY_PER_ITEM must be >= 1")
	}

	return nil
}

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
