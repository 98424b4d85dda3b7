package config

import (
	"fmt"
	"os"
	"strconv"
)

// devJWTSecret is the fallback signing key for local development only.
const devJWTSecret = "dev-secret-change-in-production"

// EnvDevelopment is the only environment allowed to run on the fallback
// signing key.
const EnvDevelopment = "development"

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Environment string
	ServerPort  string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	JWTSecret   string
	SwaggerHost string
}

// Load builds Config from environment with sensible defaults. It fails when
// the process would run outside development without an explicit JWT secret;
// the fallback key must never sign tokens in a real deployment.
func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("APP_ENV", EnvDevelopment),
		ServerPort:  getEnv("SERVER_PORT", "5000"),
		MySQLDSN:    getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/taskboard?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:     getEnvInt("REDIS_DB", 0),
		RedisPass:   os.Getenv("REDIS_PASSWORD"),
		JWTSecret:   getEnv("JWT_SECRET", devJWTSecret),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}

	if cfg.Environment != EnvDevelopment && cfg.JWTSecret == devJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set when APP_ENV=%s", cfg.Environment)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
