package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays configuration values from environment variables.
// A .env file, if present, is loaded into the environment by the entry
// point (via godotenv) before this runs.
//
// Duration variables accept time.ParseDuration syntax ("30m", "720h");
// invalid values are ignored in favour of the current setting.
func parseEnv(config *Config) {
	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	setDuration := func(dst *time.Duration, key string) {
		if v, ok := os.LookupEnv(key); ok {
			if d, err := time.ParseDuration(v); err == nil {
				*dst = d
			}
		}
	}

	setString(&config.EndpointAddr, "ADDRESS")
	setString(&config.DatabaseDSN, "DATABASE_DSN")
	setString(&config.AccessSecretKey, "JWT_ACCESS_SECRET")
	setString(&config.RefreshSecretKey, "JWT_REFRESH_SECRET")
	setDuration(&config.AccessTokenValidityDuration, "ACCESS_TOKEN_VALIDITY_DURATION")
	setDuration(&config.RefreshTokenValidityDuration, "REFRESH_TOKEN_VALIDITY_DURATION")
	setString(&config.APIBaseURL, "API_URL")
	setString(&config.ClientURL, "CLIENT_URL")
	setString(&config.SMTPHost, "SMTP_HOST")
	if v, ok := os.LookupEnv("SMTP_PORT"); ok {
		if port, err := strconv.Atoi(v); err == nil {
			config.SMTPPort = port
		}
	}
	setString(&config.SMTPUsername, "SMTP_USER")
	setString(&config.SMTPPassword, "SMTP_PASSWORD")
	setString(&config.SMTPFrom, "SMTP_FROM")
}
