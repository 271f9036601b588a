package owners

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-adoption-tracker/internal/platform/dispatch"
	"pet-adoption-tracker/internal/platform/logger"
	"pet-adoption-tracker/internal/ports/storage"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Config struct {
	DB         storage.DB
	Dispatcher *dispatch.Dispatcher
	Logger     logger.Logger
}

// Store agrupa las operaciones sobre dueños. Cada método es una transacción.
type Store struct {
	db       storage.DB
	dispatch *dispatch.Dispatcher
	log      logger.Logger
}

func NewStore(cfg Config) *Store {
	d := cfg.Dispatcher
	if d == nil {
		d = dispatch.New(dispatch.DefaultWorkers)
	}
	l := cfg.Logger
	if l == nil {
		l = logger.Nop()
	}
	return &Store{
		db:       cfg.DB,
		dispatch: d,
		log:      l.With(map[string]any{"component": "owners"}),
	}
}

func (s *Store) Insert(ctx context.Context, name string, image *int) (Owner, error) {
	if strings.TrimSpace(name) == "" {
		return Owner{}, ErrInvalidInput
	}

	rec := storage.NewOwnerRecord(name, image)
	err := s.update(ctx, func(ctx context.Context, tx storage.Tx) error {
		return tx.InsertOwner(ctx, rec)
	})
	if err != nil {
		return Owner{}, fmt.Errorf("insert owner: %w", err)
	}

	s.log.Debug("owner inserted", map[string]any{"owner_id": rec.ID})
	return Owner{ID: rec.ID, Name: rec.Name, Image: rec.Image}, nil
}

// ListAll devuelve todos los dueños por nombre ascendente (case-sensitive),
// cada uno con su cantidad de mascotas.
func (s *Store) ListAll(ctx context.Context) ([]Owner, error) {
	var out []Owner
	err := s.view(ctx, func(ctx context.Context, tx storage.Tx) error {
		recs, err := tx.ListOwners(ctx)
		if err != nil {
			return err
		}

		out = make([]Owner, 0, len(recs))
		for _, o := range recs {
			n, err := tx.CountPets(ctx, o.ID)
			if err != nil {
				return err
			}
			out = append(out, Owner{
				ID:           o.ID,
				Name:         o.Name,
				Image:        o.Image,
				NumberOfPets: n,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list owners: %w", err)
	}
	return out, nil
}

// AdoptPet marca la mascota como adoptada y la agrega a la colección del dueño.
// Si la mascota no existe no hace nada. Si existe pero el dueño no,
// la marca igual queda en true (sin dueño asociado).
func (s *Store) AdoptPet(ctx context.Context, petID, ownerID string) error {
	err := s.update(ctx, func(ctx context.Context, tx storage.Tx) error {
		pet, err := tx.GetPet(ctx, petID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		owner, err := tx.GetOwner(ctx, ownerID)
		ownerFound := err == nil
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}

		if err := tx.SetAdopted(ctx, pet.ID, true); err != nil {
			return err
		}
		if !ownerFound {
			s.log.Warn("pet flagged adopted without owner", map[string]any{"pet_id": pet.ID, "owner_id": ownerID})
			return nil
		}
		return tx.AppendPet(ctx, owner.ID, pet.ID)
	})
	if err != nil {
		return fmt.Errorf("adopt pet: %w", err)
	}
	return nil
}

// Delete borra primero las mascotas del dueño y después al dueño. No-op si no existe.
func (s *Store) Delete(ctx context.Context, ownerID string) error {
	err := s.update(ctx, func(ctx context.Context, tx storage.Tx) error {
		owner, err := tx.GetOwner(ctx, ownerID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		for _, petID := range owner.PetIDs {
			// la colección puede repetir ids
			if err := tx.DeletePet(ctx, petID); err != nil && !errors.Is(err, storage.ErrNotFound) {
				return err
			}
		}
		return tx.DeleteOwner(ctx, owner.ID)
	})
	if err != nil {
		return fmt.Errorf("delete owner: %w", err)
	}
	return nil
}

func (s *Store) update(ctx context.Context, fn func(ctx context.Context, tx storage.Tx) error) error {
	return s.dispatch.Do(ctx, func(ctx context.Context) error {
		return s.db.Update(ctx, fn)
	})
}

func (s *Store) view(ctx context.Context, fn func(ctx context.Context, tx storage.Tx) error) error {
	return s.dispatch.Do(ctx, func(ctx context.Context) error {
		return s.db.View(ctx, fn)
	})
}
