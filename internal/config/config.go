package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	GinMode       string
	ServerAddr    string

	// Payment processor
	BillingAPIKey     string
	BillingAPIURL     string
	PriceIDBasic      string
	PriceIDPro        string
	PriceIDEnterprise string
}

func Load() *Config {
	// Local development reads from .env; a missing file is fine
	_ = godotenv.Load()

	return &Config{
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "hivenow"),
		DBPassword:    getEnv("DB_PASSWORD", "hivenow"),
		DBName:        getEnv("DB_NAME", "hivenow"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		ServerAddr:    getEnv("SERVER_ADDR", ":8080"),

		BillingAPIKey:     getEnv("BILLING_SECRET_KEY", ""),
		BillingAPIURL:     getEnv("BILLING_API_URL", "https://api.stripe.com/v1"),
		PriceIDBasic:      getEnv("BILLING_PRICE_BASIC", "price_basic"),
		PriceIDPro:        getEnv("BILLING_PRICE_PRO", "price_pro"),
		PriceIDEnterprise: getEnv("BILLING_PRICE_ENTERPRISE", "price_enterprise"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
