package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"artist-membership.backend/internal/domain/entities"
)

// Config holds all configuration values
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Razorpay   RazorpayConfig
	Membership MembershipConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string // "postgres" or "memory"
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// RazorpayConfig holds payment gateway configuration.
// When Enabled is false registrations are persisted as completed
// immediately without creating a gateway order (free-registration mode).
type RazorpayConfig struct {
	Enabled       bool
	KeyID         string
	KeySecret     string
	WebhookSecret string
}

// MembershipConfig holds membership business configuration
type MembershipConfig struct {
	CardPrefix            string
	Currency              string
	BasePricePaise        int64
	CategoryPrices        map[entities.ArtistCategory]int64
	CouponCode            string
	CouponDiscountPercent int64
	PendingMaxAge         time.Duration
}

// PriceFor returns the base price in paise for a category
func (c MembershipConfig) PriceFor(category entities.ArtistCategory) int64 {
	if p, ok := c.CategoryPrices[category]; ok {
		return p
	}
	return c.BasePricePaise
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("STORE_DRIVER", "postgres"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "membership"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Razorpay: RazorpayConfig{
			Enabled:       getEnvAsBool("RAZORPAY_ENABLED", true),
			KeyID:         getEnv("RAZORPAY_KEY_ID", ""),
			KeySecret:     getEnv("RAZORPAY_KEY_SECRET", ""),
			WebhookSecret: getEnv("RAZORPAY_WEBHOOK_SECRET", ""),
		},
		Membership: MembershipConfig{
			CardPrefix:            getEnv("MEMBERSHIP_CARD_PREFIX", "AMP"),
			Currency:              getEnv("MEMBERSHIP_CURRENCY", "INR"),
			BasePricePaise:        getEnvAsInt64("MEMBERSHIP_BASE_PRICE_PAISE", 50000),
			CategoryPrices:        loadCategoryPrices(),
			CouponCode:            getEnv("MEMBERSHIP_COUPON_CODE", "ABINASH10"),
			CouponDiscountPercent: getEnvAsInt64("MEMBERSHIP_COUPON_DISCOUNT_PERCENT", 10),
			PendingMaxAge:         getEnvAsDuration("MEMBERSHIP_PENDING_MAX_AGE", 24*time.Hour),
		},
	}
}

// loadCategoryPrices reads per-category overrides, e.g.
// MEMBERSHIP_PRICE_MUSIC_DIRECTOR=75000
func loadCategoryPrices() map[entities.ArtistCategory]int64 {
	prices := map[entities.ArtistCategory]int64{}
	for _, cat := range entities.ArtistCategories {
		key := "MEMBERSHIP_PRICE_" + strings.ToUpper(strings.ReplaceAll(string(cat), " ", "_"))
		if v := os.Getenv(key); v != "" {
			if paise, err := strconv.ParseInt(v, 10, 64); err == nil && paise > 0 {
				prices[cat] = paise
			}
		}
	}
	return prices
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
