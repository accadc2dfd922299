package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config is the runtime configuration of the storefront.
type Config struct {
	AppPort         string
	JWTSecret       string
	SessionTTL      time.Duration
	CleanupInterval time.Duration
	RabbitMQURL     string // empty disables order events
	CatalogDriver   string
	DatabaseDSN     string
	DefaultMaxPrice decimal.Decimal
}

// SetDefaults registers the default value of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("JWT_SECRET", "storefront_dev_secret")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_CLEANUP_INTERVAL", "1m")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("CATALOG_DRIVER", "memory")
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("DEFAULT_MAX_PRICE", "1000")
}

// Load reads the configuration from environment variables, falling back
// to the defaults.
func Load() (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	maxPrice, err := decimal.NewFromString(v.GetString("DEFAULT_MAX_PRICE"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_MAX_PRICE: %w", err)
	}
	if maxPrice.IsNegative() {
		return nil, fmt.Errorf("DEFAULT_MAX_PRICE must not be negative")
	}

	cfg := &Config{
		AppPort:         v.GetString("APP_PORT"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		SessionTTL:      v.GetDuration("SESSION_TTL"),
		CleanupInterval: v.GetDuration("SESSION_CLEANUP_INTERVAL"),
		RabbitMQURL:     v.GetString("RABBITMQ_URL"),
		CatalogDriver:   v.GetString("CATALOG_DRIVER"),
		DatabaseDSN:     v.GetString("DATABASE_DSN"),
		DefaultMaxPrice: maxPrice,
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive")
	}
	return cfg, nil
}
