package sqldb

import (
	"strconv"
	"strings"
)

type Dialect struct {
	Name string
	// Numbered usa $1, $2... en vez de ?.
	Numbered bool
	// NaturalOrder es la columna que refleja el orden de inserción.
	NaturalOrder string
	// NameOrder ordena por nombre comparando bytes (case-sensitive).
	NameOrder string
	// PrefixMatch recibe un único argumento: el prefijo.
	PrefixMatch string
}

var (
	SQLite = Dialect{
		Name:         "sqlite",
		NaturalOrder: "rowid",
		NameOrder:    "name",
		PrefixMatch:  "instr(pet_type, ?) = 1",
	}
	Postgres = Dialect{
		Name:         "postgres",
		Numbered:     true,
		NaturalOrder: "seq",
		NameOrder:    `name COLLATE "C"`,
		PrefixMatch:  "starts_with(pet_type, ?)",
	}
)

// Rebind reescribe los placeholders ? al estilo del dialecto.
func (d Dialect) Rebind(query string) string {
	if !d.Numbered {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
