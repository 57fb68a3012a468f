package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	JWTSecret          string
	Port               string
	DatabasePath       string
	LogLevel           string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration

	AnalyticsCacheExpiry  time.Duration
	AnalyticsCacheCleanup time.Duration
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	jwtSecret := getEnv("JWT_SECRET", "your-very-secure-and-long-jwt-secret-key-for-hs256-minimum-32-bytes")
	if jwtSecret == "your-very-secure-and-long-jwt-secret-key-for-hs256-minimum-32-bytes" {
		log.Println("WARNING: Using default insecure JWT_SECRET. Set JWT_SECRET environment variable for production.")
	}

	accessTokenExpiry := getDurationEnv("ACCESS_TOKEN_EXPIRY", 60*time.Minute)
	refreshTokenExpiry := getDurationEnv("REFRESH_TOKEN_EXPIRY", 7*24*time.Hour)
	analyticsCacheExpiry := getDurationEnv("ANALYTICS_CACHE_EXPIRY", 15*time.Minute)
	analyticsCacheCleanup := getDurationEnv("ANALYTICS_CACHE_CLEANUP", 30*time.Minute)

	Cfg = &AppConfig{
		JWTSecret:             jwtSecret,
		Port:                  getEnv("PORT", "8080"),
		DatabasePath:          getEnv("DATABASE_PATH", "./tradefolio.db"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		AccessTokenExpiry:     accessTokenExpiry,
		RefreshTokenExpiry:    refreshTokenExpiry,
		AnalyticsCacheExpiry:  analyticsCacheExpiry,
		AnalyticsCacheCleanup: analyticsCacheCleanup,
	}

	log.Printf("Configuration loaded. Port: %s, LogLevel: %s, DatabasePath: %s",
		Cfg.Port, Cfg.LogLevel, Cfg.DatabasePath)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("WARNING: Invalid %s format '%s'. Using default %s. Error: %v", key, valueStr, fallback, err)
		return fallback
	}
	return value
}
