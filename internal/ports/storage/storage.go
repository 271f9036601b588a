package storage

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotFound = errors.New("not found")
	ErrReadOnly = errors.New("read-only transaction")
)

// DB es el motor embebido visto por los stores.
// Cada Update es una transacción atómica: o aplica todo o nada.
type DB interface {
	Update(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	View(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	Close() error
}

// Tx expone las primitivas disponibles dentro de una transacción.
type Tx interface {
	InsertOwner(ctx context.Context, o OwnerRecord) error
	GetOwner(ctx context.Context, id string) (OwnerRecord, error)
	// ListOwners devuelve todos los dueños ordenados por nombre (byte order).
	ListOwners(ctx context.Context) ([]OwnerRecord, error)
	AppendPet(ctx context.Context, ownerID, petID string) error
	DeleteOwner(ctx context.Context, id string) error
	// CountPets cuenta las mascotas distintas cuyo dueño derivado es ownerID.
	CountPets(ctx context.Context, ownerID string) (int64, error)

	InsertPet(ctx context.Context, p PetRecord) error
	GetPet(ctx context.Context, id string) (PetRecord, error)
	SetAdopted(ctx context.Context, id string, adopted bool) error
	// DeletePet borra la mascota y la quita de cualquier colección de dueño.
	DeletePet(ctx context.Context, id string) error
	// FindPets respeta el orden natural de inserción.
	FindPets(ctx context.Context, q PetQuery) ([]PetRecord, error)

	// OwnersOfPet resuelve la referencia inversa. PetIDs no viene cargado.
	OwnersOfPet(ctx context.Context, petID string) ([]OwnerRecord, error)
}

// PetQuery filtra mascotas. Campos vacíos/nil no filtran.
type PetQuery struct {
	Adopted    *bool
	TypePrefix string
}

func (q PetQuery) Match(p PetRecord) bool {
	if q.Adopted != nil && p.IsAdopted != *q.Adopted {
		return false
	}
	return strings.HasPrefix(p.PetType, q.TypePrefix)
}

func Bool(v bool) *bool { return &v }
