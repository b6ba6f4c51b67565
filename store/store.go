/*
store.go - Persistence interface for the site's three collections

PURPOSE:
  Defines the interface between domain logic and storage. Persistence is
  deliberately primitive: each collection is loaded and saved WHOLE. Every
  API call reads the full collection, mutates in memory, and writes it
  back. No partial updates, no locking, no cross-collection transaction.
  Last write wins; that is the accepted contract of this site.

COLLECTIONS:
  articles          The rentable catalog
  rental-requests   Customer requests with status lifecycle
  mietdaten         Confirmed rentals (the date-blocking ledger); the
                    legacy German file name is kept so existing data
                    files keep working

IMPLEMENTATIONS:
  - store/jsonfile: One pretty-printed JSON array per collection file.
    The production backend; reads fail soft (missing/corrupt file reads
    as an empty collection).
  - store/sqlite:   One JSON document per collection row. Same
    whole-collection semantics on a real database file.
  - memory.go:      In-memory, for tests.

SEE ALSO:
  - booking/workflow.go: Consumes RequestStore/LedgerStore subsets
  - catalog/service.go: Consumes the ArticleStore subset
*/
package store

import (
	"context"

	"github.com/warp/rental-engine/booking"
	"github.com/warp/rental-engine/catalog"
)

// Collection names. These are the on-disk identities (file names for
// jsonfile, row keys for sqlite).
const (
	CollectionArticles = "articles"
	CollectionRequests = "rental-requests"
	CollectionLedger   = "mietdaten"
)

// Store persists all three collections. It satisfies catalog.ArticleStore,
// booking.RequestStore and booking.LedgerStore.
type Store interface {
	LoadArticles(ctx context.Context) ([]catalog.Article, error)
	SaveArticles(ctx context.Context, articles []catalog.Article) error

	LoadRequests(ctx context.Context) ([]booking.RentalRequest, error)
	SaveRequests(ctx context.Context, requests []booking.RentalRequest) error

	LoadLedger(ctx context.Context) ([]booking.ConfirmedRental, error)
	SaveLedger(ctx context.Context, entries []booking.ConfirmedRental) error

	Close() error
}
