// Package config loads process configuration from EVENTDESK_* environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store drivers supported by the backing server.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Server configures cmd/server.
type Server struct {
	Addr      string `env:"EVENTDESK_ADDR" envDefault:":3000"`
	Driver    string `env:"EVENTDESK_STORE" envDefault:"sqlite"`
	WebDir    string `env:"EVENTDESK_WEB_DIR"`
	LogLevel  string `env:"EVENTDESK_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"EVENTDESK_LOG_FORMAT" envDefault:"json"`

	Postgres Postgres
	SQLite   SQLite
	Seed     Seed
}

// Postgres holds PostgreSQL connection settings.
type Postgres struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName   string `env:"DB_NAME" envDefault:"eventdesk"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	ConnectAttempts uint64        `env:"DB_CONNECT_ATTEMPTS" envDefault:"5"`
	ConnectBackoff  time.Duration `env:"DB_CONNECT_BACKOFF" envDefault:"2s"`
}

// DSN builds a libpq-compatible connection string.
func (c Postgres) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// SQLite holds the database file location.
type SQLite struct {
	Path string `env:"EVENTDESK_SQLITE_PATH" envDefault:"eventdesk.db"`
}

// Seed describes the administrator created when the user collection is empty.
type Seed struct {
	AdminEmail    string `env:"EVENTDESK_ADMIN_EMAIL" envDefault:"admin@eventdesk.local"`
	AdminPassword string `env:"EVENTDESK_ADMIN_PASSWORD"`
	AdminName     string `env:"EVENTDESK_ADMIN_NAME" envDefault:"Admin"`
}

// Client configures the hosts that drive the navigator.
type Client struct {
	APIURL      string        `env:"EVENTDESK_API_URL" envDefault:"http://localhost:3000"`
	Timeout     time.Duration `env:"EVENTDESK_TIMEOUT" envDefault:"10s"`
	SessionPath string        `env:"EVENTDESK_SESSION_PATH"`
	LogLevel    string        `env:"EVENTDESK_LOG_LEVEL" envDefault:"warn"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadServer parses and validates the server configuration.
func LoadServer() (Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	switch cfg.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return Server{}, fmt.Errorf("unsupported store %q (want %s or %s)", cfg.Driver, DriverPostgres, DriverSQLite)
	}
	return cfg, nil
}

// LoadClient parses the client configuration and fills the default session path.
func LoadClient() (Client, error) {
	var cfg Client
	if err := ParseEnv(&cfg); err != nil {
		return Client{}, err
	}
	if cfg.SessionPath == "" {
		cfg.SessionPath = DefaultSessionPath()
	}
	return cfg, nil
}

// DefaultSessionPath returns the session database location under the user's
// config directory.
func DefaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "eventdesk-session.db"
	}
	return dir + string(os.PathSeparator) + "eventdesk" + string(os.PathSeparator) + "session.db"
}
