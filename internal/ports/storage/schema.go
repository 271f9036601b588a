package storage

import (
	"github.com/google/uuid"
)

// OwnerRecord es la fila persistida de un dueño.
// PetIDs es la colección ordenada de mascotas; el dueño es quien la posee.
type OwnerRecord struct {
	ID     string
	Name   string
	Image  *int
	PetIDs []string
}

// PetRecord es la fila persistida de una mascota.
// No guarda el dueño: se deriva con Tx.OwnersOfPet.
type PetRecord struct {
	ID        string
	Name      string
	PetType   string
	Age       int
	IsAdopted bool
	Image     *int
}

// NewOwnerRecord y NewPetRecord guardan los textos tal como llegan.
func NewOwnerRecord(name string, image *int) OwnerRecord {
	return OwnerRecord{
		ID:     uuid.NewString(),
		Name:   name,
		Image:  image,
		PetIDs: []string{},
	}
}

func NewPetRecord(name string, age int, petType string, image *int) PetRecord {
	return PetRecord{
		ID:        uuid.NewString(),
		Name:      name,
		PetType:   petType,
		Age:       age,
		IsAdopted: false,
		Image:     image,
	}
}

// HasPet indica si la colección del dueño contiene la mascota.
func (o OwnerRecord) HasPet(petID string) bool {
	for _, id := range o.PetIDs {
		if id == petID {
			return true
		}
	}
	return false
}
