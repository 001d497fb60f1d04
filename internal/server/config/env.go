package config

import (
	"os"
	"time"
)

// parseEnv overlays Config fields from environment variables. A `.env`
// file, if present next to the binary, is loaded into the environment by
// the entry point (via godotenv) before this runs.
//
// Recognized variables:
//
//	ADDRESS               HTTP bind address (e.g., ":8080")
//	DATABASE_DSN          PostgreSQL DSN
//	REDIS_ADDR            Redis address for the cart store
//	JWT_SECRET            access-token HMAC secret
//	REFRESH_TOKEN_SECRET  refresh-token secret (optional)
//	ACCESS_TOKEN_TTL      access token validity (Go duration, e.g. "15m")
//	REFRESH_TOKEN_TTL     refresh token validity (e.g. "168h")
//
// Malformed duration values are ignored, keeping the previous value.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("REDIS_ADDR"); ok {
		config.RedisAddr = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("REFRESH_TOKEN_SECRET"); ok {
		config.RefreshSecretKey = v
	}
	if v, ok := os.LookupEnv("ACCESS_TOKEN_TTL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.AccessTokenValidityDuration = d
		}
	}
	if v, ok := os.LookupEnv("REFRESH_TOKEN_TTL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.RefreshTokenValidityDuration = d
		}
	}
}
