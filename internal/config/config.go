package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string

	// Token verification
	JWKSURL     string
	TokenIssuer string // issuer claim is checked only when set

	// Storage
	TodosTable        string
	CreatedAtIndex    string
	AttachmentsBucket string
	SignedURLTTL      time.Duration
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),

		JWKSURL:     getEnv("JWKS_URL", ""),
		TokenIssuer: getEnv("TOKEN_ISSUER", ""),

		TodosTable:        getEnv("TODOS_TABLE", "todos"),
		CreatedAtIndex:    getEnv("TODOS_CREATED_AT_INDEX", "createdAtIndex"),
		AttachmentsBucket: getEnv("ATTACHMENTS_S3_BUCKET", ""),
		SignedURLTTL:      time.Duration(getEnvInt("SIGNED_URL_EXPIRATION", 300)) * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
