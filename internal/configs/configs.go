package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppURL                 string
	DatabaseDSN            string
	RedisAddr              string
	AuthTokenTTLHours      int
	RateLimit              int
	ShutdownTimeoutSeconds int
	AdminEmail             string
	AdminPassword          string
	AdminFullName          string
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:            getEnv("DATABASE_DSN", "taskmarket.db"),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		AuthTokenTTLHours:      getEnvAsInt("AUTH_TOKEN_TTL_HOURS", 168),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
		AdminEmail:             strings.ToLower(strings.TrimSpace(getEnv("ADMIN_EMAIL", "admin@taskmarket.local"))),
		AdminPassword:          getEnv("ADMIN_PASSWORD", "ChangeMe123!"),
		AdminFullName:          strings.TrimSpace(getEnv("ADMIN_FULL_NAME", "TaskMarket Admin")),
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.AppURL == "" {
		log.Fatal("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.AuthTokenTTLHours <= 0 {
		log.Fatal("AUTH_TOKEN_TTL_HOURS must be greater than 0")
	}
	if cfg.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if len(cfg.AdminPassword) < 8 {
		log.Fatal("ADMIN_PASSWORD must be at least 8 characters")
	}
	if cfg.AdminEmail == "" {
		log.Fatal("ADMIN_EMAIL must not be empty")
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}
