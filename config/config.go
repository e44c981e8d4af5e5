// Package config loads application configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envFile = "config/.env"

// NewConfig loads configuration from environment using viper with typed defaults and validation.
func NewConfig() (*Config, error) {
	return load(envFile)
}

func load(path string) (*Config, error) {
	v := viper.New()
	if envMap, err := godotenv.Read(path); err == nil {
		for k, val := range envMap {
			if _, exists := os.LookupEnv(k); !exists {
				_ = os.Setenv(k, val)
			}
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

var defaults = map[string]any{
	"logging.level": "info",

	"server.host":             "0.0.0.0",
	"server.port":             8080,
	"server.shutdown_timeout": 5 * time.Second,

	"http.request_timeout": 3 * time.Second,

	"repository.backend": "postgres",

	"postgres.host":            "localhost",
	"postgres.port":            5432,
	"postgres.user":            "postgres",
	"postgres.password":        "postgres",
	"postgres.db_name":         "senior_hub",
	"postgres.ssl_mode":        "disable",
	"postgres.migrations_dir":  "db/migrations",
	"postgres.migrate_timeout": 10 * time.Second,
	"postgres.query_timeout":   2 * time.Second,
	"postgres.max_conns":       10,
	"postgres.min_conns":       2,

	"redis.addr":     "",
	"redis.password": "",
	"redis.db":       0,

	"invitation.ttl_seconds":        int64(7 * 24 * 60 * 60),
	"invitation.base_url":           "http://localhost:3000",
	"invitation.max_token_attempts": 5,
	"invitation.token_bytes":        32,
	"invitation.rate_limit":         20,
	"invitation.rate_window":        time.Hour,

	"smtp.host":      "",
	"smtp.port":      587,
	"smtp.username":  "",
	"smtp.password":  "",
	"smtp.from":      "",
	"smtp.from_name": "Senior Hub",
	"smtp.app_name":  "Senior Hub",
}

func setDefaults(v *viper.Viper) {
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
}

func bindEnvs(v *viper.Viper) {
	for k := range defaults {
		_ = v.BindEnv(k)
	}
}
