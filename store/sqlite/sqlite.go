/*
Package sqlite provides a SQLite-backed implementation of store.Store.

PURPOSE:
  Keeps the whole-collection load/save contract of the jsonfile store but
  puts the documents in a single database file. Each collection is one row
  holding its JSON document, so the persistence semantics the rest of the
  system relies on (read everything, write everything, last write wins)
  are identical across backends.

SCHEMA:
  collections(name TEXT PRIMARY KEY, doc TEXT NOT NULL)

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  st, err := sqlite.New("./data/rentals.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

MIGRATION:
  Schema is auto-migrated on New(). Use ":memory:" in tests.

SEE ALSO:
  - store/store.go: Interface definitions
  - store/jsonfile: The flat-file implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/rental-engine/booking"
	"github.com/warp/rental-engine/catalog"
	"github.com/warp/rental-engine/store"
)

// Store implements store.Store on a SQLite database.
type Store struct {
	db *sql.DB
}

// New opens the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		doc  TEXT NOT NULL
	);`
	_, err := s.db.Exec(schema)
	return err
}

// load unmarshals a collection document into v. A collection that was never
// saved reads as empty, matching the jsonfile backend.
func (s *Store) load(ctx context.Context, name string, v any) error {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM collections WHERE name = ?`, name).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(doc), v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// save replaces a collection document wholesale.
func (s *Store) save(ctx context.Context, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO collections (name, doc) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET doc = excluded.doc`,
		name, string(data))
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

func (s *Store) LoadArticles(ctx context.Context) ([]catalog.Article, error) {
	articles := []catalog.Article{}
	if err := s.load(ctx, store.CollectionArticles, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func (s *Store) SaveArticles(ctx context.Context, articles []catalog.Article) error {
	return s.save(ctx, store.CollectionArticles, articles)
}

func (s *Store) LoadRequests(ctx context.Context) ([]booking.RentalRequest, error) {
	requests := []booking.RentalRequest{}
	if err := s.load(ctx, store.CollectionRequests, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *Store) SaveRequests(ctx context.Context, requests []booking.RentalRequest) error {
	return s.save(ctx, store.CollectionRequests, requests)
}

func (s *Store) LoadLedger(ctx context.Context) ([]booking.ConfirmedRental, error) {
	entries := []booking.ConfirmedRental{}
	if err := s.load(ctx, store.CollectionLedger, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) SaveLedger(ctx context.Context, entries []booking.ConfirmedRental) error {
	return s.save(ctx, store.CollectionLedger, entries)
}
