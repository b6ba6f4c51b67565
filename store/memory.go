package store

import (
	"context"
	"sync"

	"github.com/warp/rental-engine/booking"
	"github.com/warp/rental-engine/catalog"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	articles []catalog.Article
	requests []booking.RentalRequest
	ledger   []booking.ConfirmedRental
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) LoadArticles(_ context.Context) ([]catalog.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copySlice(m.articles), nil
}

func (m *Memory) SaveArticles(_ context.Context, articles []catalog.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.articles = copySlice(articles)
	return nil
}

func (m *Memory) LoadRequests(_ context.Context) ([]booking.RentalRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copySlice(m.requests), nil
}

func (m *Memory) SaveRequests(_ context.Context, requests []booking.RentalRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = copySlice(requests)
	return nil
}

func (m *Memory) LoadLedger(_ context.Context) ([]booking.ConfirmedRental, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copySlice(m.ledger), nil
}

func (m *Memory) SaveLedger(_ context.Context, entries []booking.ConfirmedRental) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ledger = copySlice(entries)
	return nil
}

func (m *Memory) Close() error { return nil }

func copySlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
