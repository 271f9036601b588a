package pets

// Pet es la vista que reciben los consumidores.
// OwnerName sale de la referencia inversa (nil si nadie la adoptó).
type Pet struct {
	ID        string
	Name      string
	PetType   string
	Age       int
	IsAdopted bool
	Image     *int
	OwnerName *string
}
