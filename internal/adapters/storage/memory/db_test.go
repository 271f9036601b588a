package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-adoption-tracker/internal/ports/storage"
)

func TestUpdate_RollsBackOnError(t *testing.T) {
	db := New()
	ctx := context.Background()
	boom := errors.New("boom")

	err := db.Update(ctx, func(ctx context.Context, tx storage.Tx) error {
		require.NoError(t, tx.InsertOwner(ctx, storage.NewOwnerRecord("Ana", nil)))
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, db.View(ctx, func(ctx context.Context, tx storage.Tx) error {
		owners, err := tx.ListOwners(ctx)
		assert.Empty(t, owners)
		return err
	}))
}

func TestView_IsReadOnly(t *testing.T) {
	db := New()

	err := db.View(context.Background(), func(ctx context.Context, tx storage.Tx) error {
		return tx.InsertPet(ctx, storage.NewPetRecord("Rex", 1, "Dog", nil))
	})
	assert.ErrorIs(t, err, storage.ErrReadOnly)
}

func TestOwnersOfPet_ResolvesInverse(t *testing.T) {
	db := New()
	ctx := context.Background()
	owner := storage.NewOwnerRecord("Ana", nil)
	pet := storage.NewPetRecord("Rex", 1, "Dog", nil)

	require.NoError(t, db.Update(ctx, func(ctx context.Context, tx storage.Tx) error {
		if err := tx.InsertOwner(ctx, owner); err != nil {
			return err
		}
		if err := tx.InsertPet(ctx, pet); err != nil {
			return err
		}
		return tx.AppendPet(ctx, owner.ID, pet.ID)
	}))

	require.NoError(t, db.View(ctx, func(ctx context.Context, tx storage.Tx) error {
		got, err := tx.OwnersOfPet(ctx, pet.ID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Ana", got[0].Name)

		none, err := tx.OwnersOfPet(ctx, "other")
		assert.Empty(t, none)
		return err
	}))
}

func TestAppendPet_UnknownIDs(t *testing.T) {
	db := New()

	err := db.Update(context.Background(), func(ctx context.Context, tx storage.Tx) error {
		return tx.AppendPet(ctx, "owner", "pet")
	})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdate_DoesNotLeakIntoSnapshot(t *testing.T) {
	db := New()
	ctx := context.Background()
	owner := storage.NewOwnerRecord("Ana", nil)
	pet := storage.NewPetRecord("Rex", 1, "Dog", nil)

	require.NoError(t, db.Update(ctx, func(ctx context.Context, tx storage.Tx) error {
		_ = tx.InsertOwner(ctx, owner)
		return tx.InsertPet(ctx, pet)
	}))

	// un append que falla no debe tocar la colección publicada
	_ = db.Update(ctx, func(ctx context.Context, tx storage.Tx) error {
		_ = tx.AppendPet(ctx, owner.ID, pet.ID)
		return errors.New("abort")
	})

	require.NoError(t, db.View(ctx, func(ctx context.Context, tx storage.Tx) error {
		o, err := tx.GetOwner(ctx, owner.ID)
		assert.Empty(t, o.PetIDs)
		return err
	}))
}

func TestClosed(t *testing.T) {
	db := New()
	require.NoError(t, db.Close())

	err := db.View(context.Background(), func(context.Context, storage.Tx) error { return nil })
	assert.ErrorIs(t, err, ErrClosed)
}
