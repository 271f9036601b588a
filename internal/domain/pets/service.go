package pets

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
		log:      l.With(map[string]any{"component": "pets"}),
	}
}

func (s *Store) Insert(ctx context.Context, name string, age int, petType string, image *int) (Pet, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(petType) == "" || age < 0 {
		return Pet{}, ErrInvalidInput
	}

	rec := storage.NewPetRecord(name, age, petType, image)
	err := s.update(ctx, func(ctx context.Context, tx storage.Tx) error {
		return tx.InsertPet(ctx, rec)
	})
	if err != nil {
		return Pet{}, fmt.Errorf("insert pet: %w", err)
	}

	s.log.Debug("pet inserted", map[string]any{"pet_id": rec.ID, "pet_type": rec.PetType})
	return toPet(rec, nil), nil
}

// ListAvailable devuelve las mascotas sin adoptar, en orden de inserción.
func (s *Store) ListAvailable(ctx context.Context) ([]Pet, error) {
	out, err := s.find(ctx, storage.PetQuery{Adopted: storage.Bool(false)})
	if err != nil {
		return nil, fmt.Errorf("list available pets: %w", err)
	}
	return out, nil
}

func (s *Store) ListAdopted(ctx context.Context) ([]Pet, error) {
	out, err := s.find(ctx, storage.PetQuery{Adopted: storage.Bool(true)})
	if err != nil {
		return nil, fmt.Errorf("list adopted pets: %w", err)
	}
	return out, nil
}

// ListFiltered devuelve las mascotas sin adoptar cuyo tipo empieza con petType.
func (s *Store) ListFiltered(ctx context.Context, petType string) ([]Pet, error) {
	out, err := s.find(ctx, storage.PetQuery{Adopted: storage.Bool(false), TypePrefix: petType})
	if err != nil {
		return nil, fmt.Errorf("list filtered pets: %w", err)
	}
	return out, nil
}

// Delete borra la mascota si existe. El motor la saca de la colección del dueño.
func (s *Store) Delete(ctx context.Context, petID string) error {
	err := s.update(ctx, func(ctx context.Context, tx storage.Tx) error {
		err := tx.DeletePet(ctx, petID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("delete pet: %w", err)
	}
	return nil
}

func (s *Store) find(ctx context.Context, q storage.PetQuery) ([]Pet, error) {
	var out []Pet
	err := s.view(ctx, func(ctx context.Context, tx storage.Tx) error {
		recs, err := tx.FindPets(ctx, q)
		if err != nil {
			return err
		}

		out = make([]Pet, 0, len(recs))
		for _, rec := range recs {
			owners, err := tx.OwnersOfPet(ctx, rec.ID)
			if err != nil {
				return err
			}
			out = append(out, toPet(rec, owners))
		}
		return nil
	})
	return out, err
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

func toPet(rec storage.PetRecord, owners []storage.OwnerRecord) Pet {
	p := Pet{
		ID:        rec.ID,
		Name:      rec.Name,
		PetType:   rec.PetType,
		Age:       rec.Age,
		IsAdopted: rec.IsAdopted,
		Image:     rec.Image,
	}
	if len(owners) > 0 {
		name := owners[0].Name
		p.OwnerName = &name
	}
	return p
}
