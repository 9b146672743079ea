package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Map sources.
const (
	MapSourceFile     = "file"
	MapSourcePostgres = "postgres"
)

// Server holds all configuration for the wayfinder server.
type Server struct {
	// Network
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`
	GinMode     string `yaml:"gin_mode"` // debug | release | test

	LogLevel string `yaml:"log_level"` // debug | info | warn | error

	// Floor plan
	MapSource     string `yaml:"map_source"`      // file | postgres
	MapFile       string `yaml:"map_file"`        // empty = embedded hospital plan
	ImportOnStart bool   `yaml:"import_on_start"` // store the file plan in postgres on boot

	// Per-request routing deadline
	RouteTimeout time.Duration `yaml:"route_timeout"`

	// Database (only used with map_source: postgres or import_on_start)
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Addr returns the HTTP listen address.
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.BindAddress, s.Port)
}

// NeedsDatabase reports whether the server has to connect to PostgreSQL.
func (s Server) NeedsDatabase() bool {
	return s.MapSource == MapSourcePostgres || s.ImportOnStart
}

// DefaultServer returns Server config with sensible defaults.
func DefaultServer() Server {
	return Server{
		BindAddress:  "0.0.0.0",
		Port:         8080,
		GinMode:      "release",
		LogLevel:     "info",
		MapSource:    MapSourceFile,
		RouteTimeout: 5 * time.Second,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "wayfinder",
			Password: "wayfinder",
			DBName:   "wayfinder",
			SSLMode:  "disable",
		},
	}
}

// LoadServer loads server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadServer(path string) (Server, error) {
	cfg := DefaultServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (s Server) validate() error {
	switch s.MapSource {
	case MapSourceFile, MapSourcePostgres:
	default:
		return fmt.Errorf("unknown map_source %q", s.MapSource)
	}
	if s.RouteTimeout <= 0 {
		return fmt.Errorf("route_timeout must be positive, got %s", s.RouteTimeout)
	}
	return nil
}
