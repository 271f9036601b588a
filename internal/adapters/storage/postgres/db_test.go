package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-adoption-tracker/internal/ports/storage"
)

// Requiere un Postgres real: TEST_DB_DSN=postgres://... go test ./...
func openTest(t *testing.T) storage.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	db, err := Open(context.Background(), Options{DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestPostgres_AdoptAndFilter(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()
	owner := storage.NewOwnerRecord("Ana", nil)
	dog := storage.NewPetRecord("Rex", 3, "Dog", nil)
	dolphin := storage.NewPetRecord("Flipper", 9, "Dolphin", nil)

	require.NoError(t, db.Update(ctx, func(ctx context.Context, tx storage.Tx) error {
		require.NoError(t, tx.InsertOwner(ctx, owner))
		require.NoError(t, tx.InsertPet(ctx, dog))
		require.NoError(t, tx.InsertPet(ctx, dolphin))
		require.NoError(t, tx.SetAdopted(ctx, dog.ID, true))
		return tx.AppendPet(ctx, owner.ID, dog.ID)
	}))
	t.Cleanup(func() {
		_ = db.Update(ctx, func(ctx context.Context, tx storage.Tx) error {
			_ = tx.DeletePet(ctx, dog.ID)
			_ = tx.DeletePet(ctx, dolphin.ID)
			return tx.DeleteOwner(ctx, owner.ID)
		})
	})

	require.NoError(t, db.View(ctx, func(ctx context.Context, tx storage.Tx) error {
		n, err := tx.CountPets(ctx, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		inv, err := tx.OwnersOfPet(ctx, dog.ID)
		require.NoError(t, err)
		require.Len(t, inv, 1)
		assert.Equal(t, "Ana", inv[0].Name)

		found, err := tx.FindPets(ctx, storage.PetQuery{Adopted: storage.Bool(false), TypePrefix: "Dol"})
		require.NoError(t, err)
		ids := make([]string, 0, len(found))
		for _, p := range found {
			ids = append(ids, p.ID)
		}
		assert.Contains(t, ids, dolphin.ID)
		assert.NotContains(t, ids, dog.ID)
		return nil
	}))
}
