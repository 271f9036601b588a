package owners

// Owner es la vista que reciben los consumidores.
// NumberOfPets se calcula al leer; no se persiste.
type Owner struct {
	ID           string
	Name         string
	Image        *int
	NumberOfPets int64
}
