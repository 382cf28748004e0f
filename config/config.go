package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	PORT        string
	DB_URL      string
	JWT_SECRET  string
	CORS_ORIGIN string
	APP_ENV     string

	SUBSCRIPTION_DAYS     int
	SUBSCRIPTION_AMOUNT   int
	SUBSCRIPTION_CURRENCY string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:3000")
	APP_ENV = getEnv("APP_ENV", "dev")

	SUBSCRIPTION_DAYS = getEnvInt("SUBSCRIPTION_DAYS", 30)
	SUBSCRIPTION_AMOUNT = getEnvInt("SUBSCRIPTION_AMOUNT", 1000)
	SUBSCRIPTION_CURRENCY = getEnv("SUBSCRIPTION_CURRENCY", "XOF")
}

func IsDev() bool {
	return APP_ENV != "production"
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
