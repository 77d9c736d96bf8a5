// Package presets stores named reference values (project name, price per unit
// area, total area) that operators curate for the calculator form.
package presets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a preset id does not exist.
var ErrNotFound = errors.New("preset not found")

// Preset is a named starting point for the calculator form.
type Preset struct {
	ID               int64
	Name             string
	PricePerUnitArea float64
	TotalArea        float64
	Notes            string
	Active           bool
}

// Store reads and writes presets in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore returns a Store backed by db.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// List returns presets ordered by name. With activeOnly set, inactive presets
// are skipped.
func (s *Store) List(ctx context.Context, activeOnly bool) ([]Preset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, price_per_unit_area, total_area, COALESCE(notes, ''), active
		FROM presets
		WHERE (? = FALSE OR active = TRUE)
		ORDER BY name ASC, id ASC
	`, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("query presets: %w", err)
	}
	defer rows.Close()

	presets := make([]Preset, 0)
	for rows.Next() {
		var p Preset
		if err := rows.Scan(&p.ID, &p.Name, &p.PricePerUnitArea, &p.TotalArea, &p.Notes, &p.Active); err != nil {
			return nil, fmt.Errorf("scan preset: %w", err)
		}
		presets = append(presets, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate presets: %w", err)
	}

	return presets, nil
}

// Get returns the preset with the given id.
func (s *Store) Get(ctx context.Context, id int64) (Preset, error) {
	var p Preset
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, price_per_unit_area, total_area, COALESCE(notes, ''), active
		FROM presets
		WHERE id = ?
	`, id).Scan(&p.ID, &p.Name, &p.PricePerUnitArea, &p.TotalArea, &p.Notes, &p.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return Preset{}, ErrNotFound
	}
	if err != nil {
		return Preset{}, fmt.Errorf("query preset %d: %w", id, err)
	}
	return p, nil
}

// Create inserts p and returns its id. p.ID is ignored.
func (s *Store) Create(ctx context.Context, p Preset) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO presets (name, price_per_unit_area, total_area, notes, active)
		VALUES (?, ?, ?, ?, ?)
	`, p.Name, p.PricePerUnitArea, p.TotalArea, p.Notes, p.Active)
	if err != nil {
		return 0, fmt.Errorf("insert preset: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read preset id: %w", err)
	}
	return id, nil
}

// Update overwrites the preset identified by p.ID.
func (s *Store) Update(ctx context.Context, p Preset) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE presets
		SET
			name = ?,
			price_per_unit_area = ?,
			total_area = ?,
			notes = ?,
			active = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, p.Name, p.PricePerUnitArea, p.TotalArea, p.Notes, p.Active, p.ID)
	if err != nil {
		return fmt.Errorf("update preset %d: %w", p.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update preset %d: %w", p.ID, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Exists reports whether a preset with the given name is stored.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM presets WHERE name = ? LIMIT 1)`, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("check preset existence: %w", err)
	}
	return exists, nil
}

// NameTaken reports whether a preset other than exceptID already uses name.
// Pass 0 as exceptID when creating.
func (s *Store) NameTaken(ctx context.Context, name string, exceptID int64) (bool, error) {
	var taken bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM presets WHERE name = ? AND id <> ? LIMIT 1)`, name, exceptID).Scan(&taken); err != nil {
		return false, fmt.Errorf("check preset name: %w", err)
	}
	return taken, nil
}
