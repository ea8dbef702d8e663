package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	SecretKeyName  string
	GinMode        string
	ListenAddr     string
	FirstSuperuser string
	FirstPassword  string
}

func Load() *Config {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	return &Config{
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "tracker"),
		DBPassword:     getEnv("DB_PASSWORD", "tracker"),
		DBName:         getEnv("DB_NAME", "project_tracker"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		SecretKeyName:  getEnv("SECRET_KEY_NAME", "SECRET_KEY"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		ListenAddr:     getEnv("LISTEN_ADDR", ":8080"),
		FirstSuperuser: getEnv("FIRST_SUPERUSER_EMAIL", ""),
		FirstPassword:  getEnv("FIRST_SUPERUSER_PASSWORD", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
