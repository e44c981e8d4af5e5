package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

const minTokenBytes = 32

// Config holds application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Repository RepositoryConfig `mapstructure:"repository"`
	Postgres   PostgresConfig   `mapstructure:"postgres"`
	Redis      RedisConfig      `mapstructure:"redis"`
	HTTP       HTTPConfig       `mapstructure:"http"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Invitation InvitationConfig `mapstructure:"invitation"`
	SMTP       SMTPConfig       `mapstructure:"smtp"`
}

// Validate ensures required fields are present.
func (c Config) Validate() error {
	if c.Server.Port == 0 {
		return errors.New("server.port is required")
	}
	switch c.Repository.Backend {
	case "postgres":
		if c.Postgres.User == "" || c.Postgres.Password == "" || c.Postgres.DBName == "" {
			return errors.New("postgres credentials are required")
		}
		if c.Postgres.Host == "" {
			return errors.New("postgres.host is required")
		}
	case "memory":
	default:
		return fmt.Errorf("repository.backend %q is not supported", c.Repository.Backend)
	}
	return c.Invitation.Validate()
}

// ServerAddr returns host:port for HTTP server binding.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ServerConfig contains HTTP server options.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// HTTPConfig contains transport settings.
type HTTPConfig struct {
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// LoggingConfig contains logger preferences.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// RepositoryConfig selects the storage backend.
type RepositoryConfig struct {
	Backend string `mapstructure:"backend"`
}

// PostgresConfig describes database connection parameters.
type PostgresConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	DBName         string        `mapstructure:"db_name"`
	SSLMode        string        `mapstructure:"ssl_mode"`
	MigrationsDir  string        `mapstructure:"migrations_dir"`
	MigrateTimeout time.Duration `mapstructure:"migrate_timeout"`
	QueryTimeout   time.Duration `mapstructure:"query_timeout"`
	MaxConns       int32         `mapstructure:"max_conns"`
	MinConns       int32         `mapstructure:"min_conns"`
}

// DSN returns a Postgres connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode,
	)
}

// RedisConfig describes the optional Redis used for invitation throttling.
// An empty Addr disables throttling.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// InvitationConfig holds invitation issuance settings.
type InvitationConfig struct {
	TTLSeconds       int64         `mapstructure:"ttl_seconds"`
	BaseURL          string        `mapstructure:"base_url"`
	MaxTokenAttempts int           `mapstructure:"max_token_attempts"`
	TokenBytes       int           `mapstructure:"token_bytes"`
	RateLimit        int64         `mapstructure:"rate_limit"`
	RateWindow       time.Duration `mapstructure:"rate_window"`
}

// TTL returns the invitation lifetime.
func (i InvitationConfig) TTL() time.Duration {
	return time.Duration(i.TTLSeconds) * time.Second
}

// Validate checks invitation settings.
func (i InvitationConfig) Validate() error {
	if i.TTLSeconds <= 0 {
		return errors.New("invitation.ttl_seconds must be positive")
	}
	u, err := url.Parse(i.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invitation.base_url %q must be an absolute url", i.BaseURL)
	}
	if i.MaxTokenAttempts <= 0 {
		return errors.New("invitation.max_token_attempts must be positive")
	}
	if i.TokenBytes < minTokenBytes {
		return fmt.Errorf("invitation.token_bytes must be at least %d", minTokenBytes)
	}
	return nil
}

// SMTPConfig describes the outgoing mail server. An empty Host selects the log notifier.
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	FromName string `mapstructure:"from_name"`
	AppName  string `mapstructure:"app_name"`
}

// Enabled reports whether SMTP delivery is configured.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && (s.From != "" || s.Username != "")
}

// Addr returns host:port of the mail server.
func (s SMTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
