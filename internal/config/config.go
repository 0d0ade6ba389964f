package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		Global
		Auth
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Auth struct {
		TokenSecret   string // HMAC secret for signing access tokens; auto-generated if empty
		TokenIssuer   string
		TokenExpiry   time.Duration
		BcryptCost    int
		PruneEnabled  bool   // Periodically delete expired token records
		PruneSchedule string // Cron format: "0 * * * *" = hourly
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8189)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Auth defaults
	v.SetDefault("auth_token_secret", "") // Auto-generated if empty
	v.SetDefault("auth_token_issuer", "booktracker")
	v.SetDefault("auth_token_expiry", "1h")
	v.SetDefault("auth_bcrypt_cost", 12) // bcrypt cost factor

	// Token pruning defaults
	v.SetDefault("auth_prune_enabled", false)
	v.SetDefault("auth_prune_schedule", "0 * * * *") // Hourly at :00

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Auth: Auth{
			TokenSecret:   v.GetString("AUTH_TOKEN_SECRET"),
			TokenIssuer:   v.GetString("AUTH_TOKEN_ISSUER"),
			TokenExpiry:   v.GetDuration("AUTH_TOKEN_EXPIRY"),
			BcryptCost:    v.GetInt("AUTH_BCRYPT_COST"),
			PruneEnabled:  v.GetBool("AUTH_PRUNE_ENABLED"),
			PruneSchedule: v.GetString("AUTH_PRUNE_SCHEDULE"),
		},
	}
}
