package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	RedisURL   string
	IDPURL     string
	IDPAnonKey string
}

func Load() *Config {
	// .env is optional; in production everything comes from the environment
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "nexo"),
		DBPassword: getEnv("DB_PASSWORD", "nexo_dev_password"),
		DBName:     getEnv("DB_NAME", "nexo"),
		RedisURL:   getEnv("REDIS_URL", "localhost:6379"),
		IDPURL:     getEnv("IDP_URL", ""),
		IDPAnonKey: getEnv("IDP_ANON_KEY", ""),
	}
}

func getEnv(key, fallback string) string {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return fallback
}
