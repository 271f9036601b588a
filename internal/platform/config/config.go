// Package config carga la configuración: defaults, luego un YAML opcional
// y por último variables de entorno.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Port     string   `yaml:"port" env:"PORT"`
	Log      Log      `yaml:"log"`
	Storage  Storage  `yaml:"storage"`
	Dispatch Dispatch `yaml:"dispatch"`
}

type Log struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
	App    string `yaml:"app" env:"APP_NAME"`
}

// Storage describe dónde vive la base y qué versión de esquema usar.
type Storage struct {
	Driver        string `yaml:"driver" env:"DB_DRIVER"`
	Path          string `yaml:"path" env:"DB_PATH"`
	DSN           string `yaml:"dsn" env:"DB_DSN"`
	MaxConns      int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
	SchemaVersion int64  `yaml:"schema_version" env:"DB_SCHEMA_VERSION"`
}

type Dispatch struct {
	Workers int64 `yaml:"workers" env:"DISPATCH_WORKERS"`
}

func Default() Config {
	return Config{
		Port: "8080",
		Log: Log{
			Level:  "info",
			Format: "text",
			App:    "pet-adoption-tracker",
		},
		Storage: Storage{
			Path: "petrealm.db",
		},
		Dispatch: Dispatch{Workers: 64},
	}
}

// Load aplica defaults, el archivo YAML (si path no está vacío) y el entorno.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	// Sin driver explícito: DB_DSN implica postgres, si no el archivo sqlite.
	if strings.TrimSpace(cfg.Storage.Driver) == "" {
		cfg.Storage.Driver = DriverSQLite
		if strings.TrimSpace(cfg.Storage.DSN) != "" {
			cfg.Storage.Driver = DriverPostgres
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Storage.Driver)) {
	case DriverMemory:
	case DriverSQLite:
		if strings.TrimSpace(c.Storage.Path) == "" {
			return fmt.Errorf("%w: storage.path is required for sqlite", ErrInvalid)
		}
	case DriverPostgres:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return fmt.Errorf("%w: storage.dsn is required for postgres", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalid, c.Storage.Driver)
	}
	if c.Storage.SchemaVersion < 0 {
		return fmt.Errorf("%w: storage.schema_version must be >= 0", ErrInvalid)
	}
	if c.Dispatch.Workers <= 0 {
		return fmt.Errorf("%w: dispatch.workers must be > 0", ErrInvalid)
	}
	return nil
}

// Addr devuelve la dirección de escucha HTTP.
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
