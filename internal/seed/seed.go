package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Simplici0/plotshare/internal/auth"
	"github.com/Simplici0/plotshare/internal/presets"
)

// DefaultPresetName names the preset created from the form defaults.
const DefaultPresetName = "Default project"

// Config contains the values required by startup seed.
type Config struct {
	AdminEmail       string
	AdminPassword    string
	PricePerUnitArea float64
	TotalArea        float64
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way.
func Run(ctx context.Context, db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := seedAdmin(ctx, tx, cfg.AdminEmail, cfg.AdminPassword, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	if err := ensureDefaultPreset(ctx, presets.NewStore(db), cfg, &stats); err != nil {
		return Stats{}, err
	}

	return stats, nil
}

func seedAdmin(ctx context.Context, tx *sql.Tx, email, password string, stats *Stats) error {
	if email == "" || password == "" {
		return nil
	}

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = ? LIMIT 1)`, email).Scan(&exists); err != nil {
		return fmt.Errorf("check admin user existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO users (email, password_hash) VALUES (?, ?)`, email, auth.HashPassword(password)); err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureDefaultPreset(ctx context.Context, store *presets.Store, cfg Config, stats *Stats) error {
	exists, err := store.Exists(ctx, DefaultPresetName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if _, err := store.Create(ctx, presets.Preset{
		Name:             DefaultPresetName,
		PricePerUnitArea: cfg.PricePerUnitArea,
		TotalArea:        cfg.TotalArea,
		Active:           true,
	}); err != nil {
		return fmt.Errorf("insert default preset: %w", err)
	}
	stats.Inserts++
	return nil
}
