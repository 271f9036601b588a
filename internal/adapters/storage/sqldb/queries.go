package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pet-adoption-tracker/internal/ports/storage"
)

type Tx struct {
	q        DBTX
	d        Dialect
	writable bool
}

func (t *Tx) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if !t.writable {
		return nil, storage.ErrReadOnly
	}
	return t.q.ExecContext(ctx, t.d.Rebind(query), args...)
}

func (t *Tx) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.q.QueryContext(ctx, t.d.Rebind(query), args...)
}

func (t *Tx) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return t.q.QueryRowContext(ctx, t.d.Rebind(query), args...)
}

func (t *Tx) InsertOwner(ctx context.Context, o storage.OwnerRecord) error {
	if strings.TrimSpace(o.ID) == "" {
		return errors.New("owner id required")
	}
	if _, err := t.exec(ctx, `INSERT INTO owners (id, name, image) VALUES (?, ?, ?)`,
		o.ID, o.Name, toNullInt(o.Image),
	); err != nil {
		return fmt.Errorf("insert owner: %w", err)
	}
	for _, petID := range o.PetIDs {
		if err := t.AppendPet(ctx, o.ID, petID); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tx) GetOwner(ctx context.Context, id string) (storage.OwnerRecord, error) {
	var (
		o     storage.OwnerRecord
		image sql.NullInt64
	)
	err := t.queryRow(ctx, `SELECT id, name, image FROM owners WHERE id = ?`, id).
		Scan(&o.ID, &o.Name, &image)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.OwnerRecord{}, storage.ErrNotFound
		}
		return storage.OwnerRecord{}, fmt.Errorf("select owner: %w", err)
	}
	o.Image = fromNullInt(image)

	rows, err := t.query(ctx, `SELECT pet_id FROM owner_pets WHERE owner_id = ? ORDER BY position`, id)
	if err != nil {
		return storage.OwnerRecord{}, fmt.Errorf("select owner pets: %w", err)
	}
	defer rows.Close()

	o.PetIDs = make([]string, 0)
	for rows.Next() {
		var petID string
		if err := rows.Scan(&petID); err != nil {
			return storage.OwnerRecord{}, err
		}
		o.PetIDs = append(o.PetIDs, petID)
	}
	return o, rows.Err()
}

func (t *Tx) ListOwners(ctx context.Context) ([]storage.OwnerRecord, error) {
	rows, err := t.query(ctx, fmt.Sprintf(
		`SELECT id, name, image FROM owners ORDER BY %s, %s`, t.d.NameOrder, t.d.NaturalOrder,
	))
	if err != nil {
		return nil, fmt.Errorf("select owners: %w", err)
	}

	out := make([]storage.OwnerRecord, 0)
	index := make(map[string]int)
	for rows.Next() {
		var (
			o     storage.OwnerRecord
			image sql.NullInt64
		)
		if err := rows.Scan(&o.ID, &o.Name, &image); err != nil {
			rows.Close()
			return nil, err
		}
		o.Image = fromNullInt(image)
		o.PetIDs = make([]string, 0)
		index[o.ID] = len(out)
		out = append(out, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	links, err := t.query(ctx, `SELECT owner_id, pet_id FROM owner_pets ORDER BY owner_id, position`)
	if err != nil {
		return nil, fmt.Errorf("select owner pets: %w", err)
	}
	defer links.Close()

	for links.Next() {
		var ownerID, petID string
		if err := links.Scan(&ownerID, &petID); err != nil {
			return nil, err
		}
		if i, ok := index[ownerID]; ok {
			out[i].PetIDs = append(out[i].PetIDs, petID)
		}
	}
	return out, links.Err()
}

func (t *Tx) AppendPet(ctx context.Context, ownerID, petID string) error {
	if !t.writable {
		return storage.ErrReadOnly
	}
	for _, check := range []struct{ table, id string }{{"owners", ownerID}, {"pets", petID}} {
		ok, err := t.exists(ctx, check.table, check.id)
		if err != nil {
			return err
		}
		if !ok {
			return storage.ErrNotFound
		}
	}

	// En VALUES los placeholders toman el tipo de la columna destino.
	if _, err := t.exec(ctx, `
		INSERT INTO owner_pets (owner_id, pet_id, position)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM owner_pets WHERE owner_id = ?))
	`, ownerID, petID, ownerID); err != nil {
		return fmt.Errorf("append owner pet: %w", err)
	}
	return nil
}

func (t *Tx) DeleteOwner(ctx context.Context, id string) error {
	if _, err := t.exec(ctx, `DELETE FROM owner_pets WHERE owner_id = ?`, id); err != nil {
		return fmt.Errorf("delete owner pets: %w", err)
	}
	res, err := t.exec(ctx, `DELETE FROM owners WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete owner: %w", err)
	}
	return affectedOne(res)
}

func (t *Tx) CountPets(ctx context.Context, ownerID string) (int64, error) {
	var n int64
	err := t.queryRow(ctx, `SELECT COUNT(DISTINCT pet_id) FROM owner_pets WHERE owner_id = ?`, ownerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count owner pets: %w", err)
	}
	return n, nil
}

func (t *Tx) InsertPet(ctx context.Context, p storage.PetRecord) error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, err := t.exec(ctx, `
		INSERT INTO pets (id, name, pet_type, age, is_adopted, image)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.PetType, p.Age, p.IsAdopted, toNullInt(p.Image)); err != nil {
		return fmt.Errorf("insert pet: %w", err)
	}
	return nil
}

func (t *Tx) GetPet(ctx context.Context, id string) (storage.PetRecord, error) {
	row := t.queryRow(ctx, `
		SELECT id, name, pet_type, age, is_adopted, image
		FROM pets
		WHERE id = ?
	`, id)

	p, err := scanPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.PetRecord{}, storage.ErrNotFound
		}
		return storage.PetRecord{}, fmt.Errorf("select pet: %w", err)
	}
	return p, nil
}

func (t *Tx) SetAdopted(ctx context.Context, id string, adopted bool) error {
	res, err := t.exec(ctx, `UPDATE pets SET is_adopted = ? WHERE id = ?`, adopted, id)
	if err != nil {
		return fmt.Errorf("update pet: %w", err)
	}
	return affectedOne(res)
}

func (t *Tx) DeletePet(ctx context.Context, id string) error {
	if _, err := t.exec(ctx, `DELETE FROM owner_pets WHERE pet_id = ?`, id); err != nil {
		return fmt.Errorf("delete pet links: %w", err)
	}
	res, err := t.exec(ctx, `DELETE FROM pets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete pet: %w", err)
	}
	return affectedOne(res)
}

func (t *Tx) FindPets(ctx context.Context, q storage.PetQuery) ([]storage.PetRecord, error) {
	var (
		conds []string
		args  []any
	)
	if q.Adopted != nil {
		conds = append(conds, "is_adopted = ?")
		args = append(args, *q.Adopted)
	}
	if q.TypePrefix != "" {
		conds = append(conds, t.d.PrefixMatch)
		args = append(args, q.TypePrefix)
	}

	query := `SELECT id, name, pet_type, age, is_adopted, image FROM pets`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY " + t.d.NaturalOrder

	rows, err := t.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select pets: %w", err)
	}
	defer rows.Close()

	out := make([]storage.PetRecord, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (t *Tx) OwnersOfPet(ctx context.Context, petID string) ([]storage.OwnerRecord, error) {
	rows, err := t.query(ctx, fmt.Sprintf(`
		SELECT id, name, image
		FROM owners
		WHERE id IN (SELECT owner_id FROM owner_pets WHERE pet_id = ?)
		ORDER BY %s
	`, t.d.NaturalOrder), petID)
	if err != nil {
		return nil, fmt.Errorf("select pet owners: %w", err)
	}
	defer rows.Close()

	out := make([]storage.OwnerRecord, 0, 1)
	for rows.Next() {
		var (
			o     storage.OwnerRecord
			image sql.NullInt64
		)
		if err := rows.Scan(&o.ID, &o.Name, &image); err != nil {
			return nil, err
		}
		o.Image = fromNullInt(image)
		out = append(out, o)
	}
	return out, rows.Err()
}

func (t *Tx) exists(ctx context.Context, table, id string) (bool, error) {
	var one int
	err := t.queryRow(ctx, `SELECT 1 FROM `+table+` WHERE id = ?`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lookup %s: %w", table, err)
	}
	return true, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPet(s scanner) (storage.PetRecord, error) {
	var (
		p     storage.PetRecord
		image sql.NullInt64
	)
	if err := s.Scan(&p.ID, &p.Name, &p.PetType, &p.Age, &p.IsAdopted, &image); err != nil {
		return storage.PetRecord{}, err
	}
	p.Image = fromNullInt(image)
	return p, nil
}

func affectedOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func toNullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func fromNullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
