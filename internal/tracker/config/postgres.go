package config

import (
	"fmt"
	"time"
)

// PostgresConfig представляет конфигурацию PostgreSQL.
type PostgresConfig struct {
	Host          string        `yaml:"host" env:"TRACKER_POSTGRES_HOST" env-default:"localhost"`
	Port          int           `yaml:"port" env:"TRACKER_POSTGRES_PORT" env-default:"5432"`
	User          string        `yaml:"user" env:"TRACKER_POSTGRES_USER" env-default:"postgres"`
	Password      string        `yaml:"password" env:"TRACKER_POSTGRES_PASSWORD" env-default:"postgres"`
	Database      string        `yaml:"database" env:"TRACKER_POSTGRES_DB" env-default:"tracker"`
	SSLMode       string        `yaml:"ssl_mode" env:"TRACKER_POSTGRES_SSL_MODE" env-default:"disable"`
	MinConn       int           `yaml:"min_conn" env:"TRACKER_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn       int           `yaml:"max_conn" env:"TRACKER_POSTGRES_MAX_CONN" env-default:"10"`
	ConnLifetime  time.Duration `yaml:"conn_lifetime" env:"TRACKER_POSTGRES_CONN_LIFETIME" env-default:"1h"`
	MigrationsDir string        `yaml:"migrations_dir" env:"TRACKER_POSTGRES_MIGRATIONS_DIR" env-default:"migrations/tracker"`
}

// GetDSN возвращает строку подключения для pgx.
func (c *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// GetConnectionURL возвращает URL подключения для миграций.
func (c *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}
