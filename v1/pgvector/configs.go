package pgvector

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the connection settings and the table a Table reads from.
type Config struct {
	Connection        Connection
	ConnectionDetails ConnectionDetails

	// Table is the name of the table searched by the Table, optionally
	// schema qualified ("search.documents").
	Table string `yaml:"table" env:"PGVECTOR_TABLE"`
}

// Connection holds the basic parameters required to connect to a database.
type Connection struct {
	Host     string `yaml:"host" env:"POSTGRES_HOST"`
	Port     string `yaml:"port" env:"POSTGRES_PORT"`
	User     string `yaml:"user" env:"POSTGRES_USER"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD"`
	DbName   string `yaml:"db_name" env:"POSTGRES_DB"`
	SSLMode  string `yaml:"ssl_mode" env:"POSTGRES_SSLMODE"`
}

// ConnectionDetails tunes the connection pool. Zero values select the
// package defaults.
type ConnectionDetails struct {
	MaxOpenConns    int           `yaml:"max_open_conns" env:"POSTGRES_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"POSTGRES_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"POSTGRES_CONN_MAX_LIFETIME"`
}

// NewConfig reads the configuration from environment variables.
func NewConfig() Config {
	cfg := Config{
		Connection: Connection{
			Host:     getenv("POSTGRES_HOST", "localhost"),
			Port:     getenv("POSTGRES_PORT", "5432"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DbName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  getenv("POSTGRES_SSLMODE", "disable"),
		},
		Table: os.Getenv("PGVECTOR_TABLE"),
	}
	if v, err := strconv.Atoi(os.Getenv("POSTGRES_MAX_OPEN_CONNS")); err == nil {
		cfg.ConnectionDetails.MaxOpenConns = v
	}
	if v, err := strconv.Atoi(os.Getenv("POSTGRES_MAX_IDLE_CONNS")); err == nil {
		cfg.ConnectionDetails.MaxIdleConns = v
	}
	if v, err := time.ParseDuration(os.Getenv("POSTGRES_CONN_MAX_LIFETIME")); err == nil {
		cfg.ConnectionDetails.ConnMaxLifetime = v
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Validate reports missing connection settings.
func (c Config) Validate() error {
	if c.Connection.Host == "" {
		return fmt.Errorf("pgvector: host is required")
	}
	if c.Connection.DbName == "" {
		return fmt.Errorf("pgvector: database name is required")
	}
	if c.Connection.User == "" {
		return fmt.Errorf("pgvector: user is required")
	}
	return nil
}

// DSN renders the connection string understood by the pgx driver.
func (c Config) DSN() string {
	sslMode := c.Connection.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Connection.Host,
		c.Connection.Port,
		c.Connection.User,
		c.Connection.Password,
		c.Connection.DbName,
		sslMode)
}
