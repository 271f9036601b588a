// Package engine elige el motor de almacenamiento según la configuración.
package engine

import (
	"context"
	"fmt"
	"strings"

	mem "pet-adoption-tracker/internal/adapters/storage/memory"
	pg "pet-adoption-tracker/internal/adapters/storage/postgres"
	"pet-adoption-tracker/internal/adapters/storage/sqlite"
	"pet-adoption-tracker/internal/platform/config"
	"pet-adoption-tracker/internal/platform/logger"
	"pet-adoption-tracker/internal/ports/storage"
)

func Open(ctx context.Context, cfg config.Storage, log logger.Logger) (storage.DB, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	fields := map[string]any{"driver": driver, "schema_version": cfg.SchemaVersion}

	var (
		db  storage.DB
		err error
	)
	switch driver {
	case config.DriverMemory:
		db = mem.New()
	case config.DriverSQLite:
		fields["path"] = cfg.Path
		db, err = sqlite.Open(ctx, sqlite.Options{Path: cfg.Path, SchemaVersion: cfg.SchemaVersion})
	case config.DriverPostgres:
		db, err = pg.Open(ctx, pg.Options{DSN: cfg.DSN, MaxConns: cfg.MaxConns, SchemaVersion: cfg.SchemaVersion})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", driver, err)
	}

	log.Info("storage opened", fields)
	return db, nil
}
