package engine

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-adoption-tracker/internal/platform/config"
	"pet-adoption-tracker/internal/platform/logger"
	"pet-adoption-tracker/internal/ports/storage"
)

func TestOpen_Memory(t *testing.T) {
	db, err := Open(context.Background(), config.Storage{Driver: "memory"}, logger.Nop())
	require.NoError(t, err)
	defer db.Close()

	err = db.View(context.Background(), func(ctx context.Context, tx storage.Tx) error {
		owners, err := tx.ListOwners(ctx)
		assert.Empty(t, owners)
		return err
	})
	assert.NoError(t, err)
}

func TestOpen_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pets.db")

	db, err := Open(context.Background(), config.Storage{Driver: "SQLite", Path: path}, logger.Nop())
	require.NoError(t, err)
	defer db.Close()

	rec := storage.NewPetRecord("Rex", 3, "Dog", nil)
	require.NoError(t, db.Update(context.Background(), func(ctx context.Context, tx storage.Tx) error {
		return tx.InsertPet(ctx, rec)
	}))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.Storage{Driver: "realm"}, logger.Nop())
	assert.Error(t, err)
}
