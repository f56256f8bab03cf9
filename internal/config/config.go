// Package config handles configuration loading for the store manager API.
package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the service.
type Config struct {
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration
	AdminEmail       string
	AdminPassword    string
	Port             string
	Environment      string
	LogFile          string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		DBHost:           GetEnvRequired("DB_HOST"),
		DBPort:           GetEnvRequired("DB_PORT"),
		DBUser:           GetEnvRequired("DB_USER"),
		DBPassword:       GetEnvRequired("DB_PASSWORD"),
		DBName:           GetEnvRequired("DB_NAME"),
		RedisHost:        GetEnvRequired("REDIS_HOST"),
		RedisPort:        GetEnvRequired("REDIS_PORT"),
		RedisPassword:    GetEnv("REDIS_PASSWORD", ""),
		JWTSecret:        GetEnvRequired("JWT_SECRET"),
		JWTAccessExpiry:  parseDuration(GetEnv("JWT_ACCESS_EXPIRY", "15m"), 15*time.Minute),
		JWTRefreshExpiry: parseDuration(GetEnv("JWT_REFRESH_EXPIRY", "168h"), 168*time.Hour),
		AdminEmail:       GetEnv("ADMIN_EMAIL", "admin@store.com"),
		AdminPassword:    GetEnvRequired("ADMIN_PASSWORD"),
		Port:             GetEnv("PORT", "8080"),
		Environment:      GetEnv("ENVIRONMENT", "development"),
		LogFile:          GetEnv("LOG_FILE", ""),
	}
}

// GetEnv returns the value of the environment variable or the fallback
// when it is unset or empty.
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvRequired returns the value of the environment variable and
// exits the process when it is missing.
func GetEnvRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("required environment variable %s is not set", key)
	}
	return value
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
