// Package catalog stores the source lists shown by the demo: the entries
// of the first listbox and, per entry, the items the second listbox swaps in.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	apperrors "listbox/internal/errors"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Entry is one row of a list: id is what the listbox publishes, label is
// what it draws, description is optional markdown for the detail pane.
type Entry struct {
	ID          string
	Label       string
	Description string
}

// Source is a first-listbox entry together with the items it selects.
type Source struct {
	Entry
	Items []Entry
}

// DefaultSources mirrors the two lists the demo was built around.
var DefaultSources = []Source{
	{
		Entry: Entry{ID: "first", Label: "First list"},
		Items: []Entry{
			{ID: "First", Label: "First", Description: "The **first** item of the first list."},
			{ID: "Second", Label: "Second", Description: "The **second** item of the first list."},
			{ID: "Third", Label: "Third", Description: "The **third** item of the first list."},
		},
	},
	{
		Entry: Entry{ID: "second", Label: "Second list"},
		Items: []Entry{
			{ID: "fourth", Label: "fourth", Description: "Item *four*, from the second list."},
			{ID: "fifth", Label: "fifth", Description: "Item *five*, from the second list."},
			{ID: "sixth", Label: "sixth", Description: "Item *six*, from the second list."},
		},
	},
}

const schema = `
	CREATE TABLE IF NOT EXISTS sources (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL,
		position INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS items (
		source_id TEXT NOT NULL REFERENCES sources(id) ON DELETE CASCADE,
		id TEXT NOT NULL,
		label TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL,
		PRIMARY KEY (source_id, id)
	);
`

// Store reads and seeds a catalog database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the catalog at path and seeds it with
// DefaultSources when it holds no sources. An empty path keeps the catalog
// in memory for the life of the Store.
func Open(ctx context.Context, path string) (*Store, error) {
	trimmed := strings.TrimSpace(path)
	db, err := sql.Open("sqlite", buildDSN(trimmed))
	if err != nil {
		return nil, apperrors.New(apperrors.CodeCatalogFailed, "open catalog", err)
	}
	// A single connection keeps an in-memory database alive and serializes writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, apperrors.New(apperrors.CodeCatalogFailed, "ping catalog", err)
	}
	s := &Store{db: db, path: trimmed}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, apperrors.New(apperrors.CodeCatalogFailed, "create catalog schema", err)
	}
	empty, err := s.isEmpty(ctx)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if empty {
		if err := s.Seed(ctx, DefaultSources); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return s, nil
}

func buildDSN(path string) string {
	if path == "" {
		return ":memory:"
	}
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(path),
	}
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(3000)")
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "journal_mode(WAL)")
	u.RawQuery = q.Encode()
	return u.String()
}

// Path returns the database path, empty for an in-memory catalog.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) isEmpty(ctx context.Context) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sources`).Scan(&n); err != nil {
		return false, apperrors.New(apperrors.CodeCatalogFailed, "count sources", err)
	}
	return n == 0, nil
}

// Seed replaces the catalog contents with sources, in order.
func (s *Store) Seed(ctx context.Context, sources []Source) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.New(apperrors.CodeCatalogFailed, "begin seed", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return apperrors.New(apperrors.CodeCatalogFailed, "clear items", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM sources`); err != nil {
		return apperrors.New(apperrors.CodeCatalogFailed, "clear sources", err)
	}
	for i, src := range sources {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO sources (id, label, position) VALUES (?, ?, ?)`,
			src.ID, src.Label, i,
		); err != nil {
			return apperrors.New(apperrors.CodeCatalogFailed, fmt.Sprintf("insert source %q", src.ID), err)
		}
		for j, item := range src.Items {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO items (source_id, id, label, description, position) VALUES (?, ?, ?, ?, ?)`,
				src.ID, item.ID, item.Label, item.Description, j,
			); err != nil {
				return apperrors.New(apperrors.CodeCatalogFailed, fmt.Sprintf("insert item %q/%q", src.ID, item.ID), err)
			}
		}
	}
	if err = tx.Commit(); err != nil {
		return apperrors.New(apperrors.CodeCatalogFailed, "commit seed", err)
	}
	return nil
}

// Sources returns the first-listbox entries in catalog order.
func (s *Store) Sources(ctx context.Context) ([]Entry, error) {
	return s.queryEntries(ctx, `
		SELECT id, label, ''
		FROM sources
		ORDER BY position, id
	`)
}

// Items returns the entries of one source. An id that names no source is
// reported with CodeUnknownSource rather than as an empty list.
func (s *Store) Items(ctx context.Context, sourceID string) ([]Entry, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM sources WHERE id = ?`, sourceID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.New(apperrors.CodeUnknownSource, fmt.Sprintf("unknown source %q", sourceID), nil)
	}
	if err != nil {
		return nil, apperrors.New(apperrors.CodeCatalogFailed, "lookup source", err)
	}
	return s.queryEntries(ctx, `
		SELECT id, label, description
		FROM items
		WHERE source_id = ?
		ORDER BY position, id
	`, sourceID)
}

// Describe returns the description of one item.
func (s *Store) Describe(ctx context.Context, sourceID, itemID string) (string, error) {
	var desc string
	err := s.db.QueryRowContext(ctx,
		`SELECT description FROM items WHERE source_id = ? AND id = ?`,
		sourceID, itemID,
	).Scan(&desc)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("item %q not found in %q", itemID, sourceID), nil)
	}
	if err != nil {
		return "", apperrors.New(apperrors.CodeCatalogFailed, "describe item", err)
	}
	return desc, nil
}

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeCatalogFailed, "query catalog", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Label, &e.Description); err != nil {
			return nil, apperrors.New(apperrors.CodeCatalogFailed, "scan entry", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.New(apperrors.CodeCatalogFailed, "iterate entries", err)
	}
	return entries, nil
}
