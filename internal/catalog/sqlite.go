package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/litescript/ls-skydome/internal/astro"
)

const schema = `
	CREATE TABLE IF NOT EXISTS stars (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		ra_deg REAL NOT NULL,
		dec_deg REAL NOT NULL,
		mag REAL NOT NULL,
		bv REAL NOT NULL DEFAULT 0
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_stars_name ON stars(name);
`

// LoadSQLite reads the stars table, in insertion order.
func LoadSQLite(ctx context.Context, path string) (astro.StarCatalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return astro.StarCatalog{}, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	var count int
	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='stars'").Scan(&count)
	if err != nil {
		return astro.StarCatalog{}, fmt.Errorf("checking for stars table: %w", err)
	}
	if count == 0 {
		return astro.StarCatalog{}, fmt.Errorf("database %s has no stars table", path)
	}

	rows, err := db.QueryContext(ctx, "SELECT name, ra_deg, dec_deg, mag, bv FROM stars ORDER BY id")
	if err != nil {
		return astro.StarCatalog{}, fmt.Errorf("querying stars: %w", err)
	}
	defer rows.Close()

	var cat astro.StarCatalog
	for rows.Next() {
		var s astro.Star
		if err := rows.Scan(&s.Name, &s.RAdeg, &s.DecDeg, &s.Mag, &s.BV); err != nil {
			return astro.StarCatalog{}, fmt.Errorf("scanning star: %w", err)
		}
		cat.Stars = append(cat.Stars, s)
	}
	if err := rows.Err(); err != nil {
		return astro.StarCatalog{}, fmt.Errorf("reading stars: %w", err)
	}
	return cat, nil
}

// SaveSQLite replaces the stars table contents in a single transaction.
func SaveSQLite(ctx context.Context, path string, cat astro.StarCatalog) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating stars table: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM stars"); err != nil {
		return fmt.Errorf("clearing stars: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO stars (name, ra_deg, dec_deg, mag, bv) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range cat.Stars {
		if _, err := stmt.ExecContext(ctx, s.Name, s.RAdeg, s.DecDeg, s.Mag, s.BV); err != nil {
			return fmt.Errorf("inserting %s: %w", s.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing stars: %w", err)
	}
	return nil
}
