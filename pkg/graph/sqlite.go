package graph

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteGraph implements Graph with a SQLite database.
type SQLiteGraph struct {
	db *sql.DB
}

const createGraphTables = `
CREATE TABLE IF NOT EXISTS concepts (
	name       TEXT PRIMARY KEY,
	definition TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS prerequisites (
	concept      TEXT NOT NULL,
	prerequisite TEXT NOT NULL,
	PRIMARY KEY (concept, prerequisite)
);
`

// New creates a SQLiteGraph and runs auto-migration.
func New(dbPath string) (*SQLiteGraph, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open graph db: %w", err)
	}

	if _, err := db.Exec(createGraphTables); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate graph db: %w", err)
	}

	return &SQLiteGraph{db: db}, nil
}

// Definition returns a concept's definition, or "" when the concept is unknown.
func (g *SQLiteGraph) Definition(ctx context.Context, concept string) (string, error) {
	var def string
	err := g.db.QueryRowContext(ctx,
		`SELECT definition FROM concepts WHERE name = ?`, concept,
	).Scan(&def)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("concept definition: %w", err)
	}
	return def, nil
}

// Prerequisites returns the prerequisite concepts for a concept.
func (g *SQLiteGraph) Prerequisites(ctx context.Context, concept string) ([]string, error) {
	rows, err := g.db.QueryContext(ctx,
		`SELECT prerequisite FROM prerequisites WHERE concept = ? ORDER BY prerequisite`, concept,
	)
	if err != nil {
		return nil, fmt.Errorf("prerequisites: %w", err)
	}
	defer rows.Close()

	var prereqs []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan prerequisite: %w", err)
		}
		prereqs = append(prereqs, p)
	}
	return prereqs, rows.Err()
}

// UpsertConcept stores or updates a concept definition.
func (g *SQLiteGraph) UpsertConcept(ctx context.Context, name, definition string) error {
	_, err := g.db.ExecContext(ctx,
		`INSERT INTO concepts (name, definition) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET definition = excluded.definition`,
		name, definition,
	)
	if err != nil {
		return fmt.Errorf("upsert concept: %w", err)
	}
	return nil
}

// AddPrerequisite links a prerequisite to a concept.
func (g *SQLiteGraph) AddPrerequisite(ctx context.Context, concept, prerequisite string) error {
	_, err := g.db.ExecContext(ctx,
		`INSERT INTO prerequisites (concept, prerequisite) VALUES (?, ?)
		 ON CONFLICT(concept, prerequisite) DO NOTHING`,
		concept, prerequisite,
	)
	if err != nil {
		return fmt.Errorf("add prerequisite: %w", err)
	}
	return nil
}

// Close releases the database connection.
func (g *SQLiteGraph) Close() error {
	return g.db.Close()
}
