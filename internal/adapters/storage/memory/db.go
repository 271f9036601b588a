package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-adoption-tracker/internal/ports/storage"
)

var ErrClosed = errors.New("memory db closed")

type state struct {
	owners     map[string]storage.OwnerRecord
	ownerOrder []string
	pets       map[string]storage.PetRecord
	petOrder   []string
}

func newState() *state {
	return &state{
		owners: make(map[string]storage.OwnerRecord),
		pets:   make(map[string]storage.PetRecord),
	}
}

func (s *state) clone() *state {
	out := &state{
		owners:     make(map[string]storage.OwnerRecord, len(s.owners)),
		ownerOrder: append([]string(nil), s.ownerOrder...),
		pets:       make(map[string]storage.PetRecord, len(s.pets)),
		petOrder:   append([]string(nil), s.petOrder...),
	}
	for id, o := range s.owners {
		o.PetIDs = append([]string(nil), o.PetIDs...)
		out.owners[id] = o
	}
	for id, p := range s.pets {
		out.pets[id] = p
	}
	return out
}

// DB es un motor en memoria con copy-on-write: Update trabaja sobre una copia
// y solo la publica si fn no devuelve error.
type DB struct {
	mu     sync.RWMutex
	cur    *state
	closed bool
}

func New() *DB {
	return &DB{cur: newState()}
}

func (d *DB) Update(ctx context.Context, fn func(ctx context.Context, tx storage.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}

	next := d.cur.clone()
	if err := fn(ctx, &tx{st: next, writable: true}); err != nil {
		return err
	}
	d.cur = next
	return nil
}

func (d *DB) View(ctx context.Context, fn func(ctx context.Context, tx storage.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrClosed
	}
	return fn(ctx, &tx{st: d.cur})
}

func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

type tx struct {
	st       *state
	writable bool
}

func (t *tx) write() error {
	if !t.writable {
		return storage.ErrReadOnly
	}
	return nil
}

func (t *tx) InsertOwner(ctx context.Context, o storage.OwnerRecord) error {
	if err := t.write(); err != nil {
		return err
	}
	if strings.TrimSpace(o.ID) == "" {
		return errors.New("owner id required")
	}
	if _, exists := t.st.owners[o.ID]; exists {
		return errors.New("owner already exists")
	}
	o.PetIDs = append([]string{}, o.PetIDs...)
	t.st.owners[o.ID] = o
	t.st.ownerOrder = append(t.st.ownerOrder, o.ID)
	return nil
}

func (t *tx) GetOwner(ctx context.Context, id string) (storage.OwnerRecord, error) {
	o, ok := t.st.owners[id]
	if !ok {
		return storage.OwnerRecord{}, storage.ErrNotFound
	}
	o.PetIDs = append([]string{}, o.PetIDs...)
	return o, nil
}

func (t *tx) ListOwners(ctx context.Context) ([]storage.OwnerRecord, error) {
	out := make([]storage.OwnerRecord, 0, len(t.st.ownerOrder))
	for _, id := range t.st.ownerOrder {
		o := t.st.owners[id]
		o.PetIDs = append([]string{}, o.PetIDs...)
		out = append(out, o)
	}

	// Estable: a igual nombre, queda el orden de inserción.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (t *tx) AppendPet(ctx context.Context, ownerID, petID string) error {
	if err := t.write(); err != nil {
		return err
	}
	o, ok := t.st.owners[ownerID]
	if !ok {
		return storage.ErrNotFound
	}
	if _, ok := t.st.pets[petID]; !ok {
		return storage.ErrNotFound
	}
	o.PetIDs = append(o.PetIDs, petID)
	t.st.owners[ownerID] = o
	return nil
}

func (t *tx) DeleteOwner(ctx context.Context, id string) error {
	if err := t.write(); err != nil {
		return err
	}
	if _, ok := t.st.owners[id]; !ok {
		return storage.ErrNotFound
	}
	delete(t.st.owners, id)
	t.st.ownerOrder = without(t.st.ownerOrder, id)
	return nil
}

func (t *tx) CountPets(ctx context.Context, ownerID string) (int64, error) {
	o, ok := t.st.owners[ownerID]
	if !ok {
		return 0, nil
	}
	seen := make(map[string]struct{}, len(o.PetIDs))
	for _, id := range o.PetIDs {
		if _, ok := t.st.pets[id]; ok {
			seen[id] = struct{}{}
		}
	}
	return int64(len(seen)), nil
}

func (t *tx) InsertPet(ctx context.Context, p storage.PetRecord) error {
	if err := t.write(); err != nil {
		return err
	}
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := t.st.pets[p.ID]; exists {
		return errors.New("pet already exists")
	}
	t.st.pets[p.ID] = p
	t.st.petOrder = append(t.st.petOrder, p.ID)
	return nil
}

func (t *tx) GetPet(ctx context.Context, id string) (storage.PetRecord, error) {
	p, ok := t.st.pets[id]
	if !ok {
		return storage.PetRecord{}, storage.ErrNotFound
	}
	return p, nil
}

func (t *tx) SetAdopted(ctx context.Context, id string, adopted bool) error {
	if err := t.write(); err != nil {
		return err
	}
	p, ok := t.st.pets[id]
	if !ok {
		return storage.ErrNotFound
	}
	p.IsAdopted = adopted
	t.st.pets[id] = p
	return nil
}

func (t *tx) DeletePet(ctx context.Context, id string) error {
	if err := t.write(); err != nil {
		return err
	}
	if _, ok := t.st.pets[id]; !ok {
		return storage.ErrNotFound
	}
	delete(t.st.pets, id)
	t.st.petOrder = without(t.st.petOrder, id)

	// Igual que los links en SQL (ON DELETE CASCADE): la mascota sale de toda colección.
	for oid, o := range t.st.owners {
		if o.HasPet(id) {
			o.PetIDs = without(o.PetIDs, id)
			t.st.owners[oid] = o
		}
	}
	return nil
}

func (t *tx) FindPets(ctx context.Context, q storage.PetQuery) ([]storage.PetRecord, error) {
	out := make([]storage.PetRecord, 0)
	for _, id := range t.st.petOrder {
		p := t.st.pets[id]
		if q.Match(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (t *tx) OwnersOfPet(ctx context.Context, petID string) ([]storage.OwnerRecord, error) {
	out := make([]storage.OwnerRecord, 0, 1)
	for _, id := range t.st.ownerOrder {
		o := t.st.owners[id]
		if o.HasPet(petID) {
			o.PetIDs = nil
			out = append(out, o)
		}
	}
	return out, nil
}

func without(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
