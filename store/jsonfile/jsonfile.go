/*
jsonfile.go - File-backed JSON store

PURPOSE:
  The production persistence backend: one pretty-printed JSON array per
  collection, rewritten whole on every save. This matches the data files
  the site has always used, so an existing data directory keeps working
  as-is.

FAIL-SOFT READS:
  A missing or unreadable collection file reads as an empty collection.
  The error is logged, never returned: the site would rather show an
  empty catalog than a 500 on every page. Writes DO surface errors.

FILE INIT:
  Opening the store creates any missing collection file as "[]" so the
  first save never races file creation.

SEE ALSO:
  - store/store.go: Interface and collection names
  - store/sqlite: Database-backed alternative with the same semantics
*/
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/warp/rental-engine/booking"
	"github.com/warp/rental-engine/catalog"
	"github.com/warp/rental-engine/store"
)

// Store reads and writes collections under a data directory.
type Store struct {
	dir string
	log *zap.Logger
}

// New opens (and if needed initializes) the data directory.
func New(dir string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	s := &Store{dir: dir, log: log}
	for _, name := range []string{store.CollectionArticles, store.CollectionRequests, store.CollectionLedger} {
		if err := s.initFile(name); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) initFile(name string) error {
	path := s.path(name)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		return fmt.Errorf("initialize %s: %w", path, err)
	}
	s.log.Info("collection file created", zap.String("path", path))
	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// read unmarshals a collection into v. Fail-soft: on any error v is left
// untouched (callers pass a pre-allocated empty slice) and the error is
// only logged.
func (s *Store) read(name string, v any) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		s.log.Error("collection read failed, treating as empty",
			zap.String("collection", name), zap.Error(err))
		return
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.log.Error("collection parse failed, treating as empty",
			zap.String("collection", name), zap.Error(err))
	}
}

// write marshals the whole collection and rewrites the file.
func (s *Store) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := os.WriteFile(s.path(name), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (s *Store) LoadArticles(_ context.Context) ([]catalog.Article, error) {
	articles := []catalog.Article{}
	s.read(store.CollectionArticles, &articles)
	return articles, nil
}

func (s *Store) SaveArticles(_ context.Context, articles []catalog.Article) error {
	return s.write(store.CollectionArticles, articles)
}

func (s *Store) LoadRequests(_ context.Context) ([]booking.RentalRequest, error) {
	requests := []booking.RentalRequest{}
	s.read(store.CollectionRequests, &requests)
	return requests, nil
}

func (s *Store) SaveRequests(_ context.Context, requests []booking.RentalRequest) error {
	return s.write(store.CollectionRequests, requests)
}

func (s *Store) LoadLedger(_ context.Context) ([]booking.ConfirmedRental, error) {
	entries := []booking.ConfirmedRental{}
	s.read(store.CollectionLedger, &entries)
	return entries, nil
}

func (s *Store) SaveLedger(_ context.Context, entries []booking.ConfirmedRental) error {
	return s.write(store.CollectionLedger, entries)
}

func (s *Store) Close() error { return nil }
