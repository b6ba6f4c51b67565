package jsonfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/rental-engine/booking"
	"github.com/warp/rental-engine/store/jsonfile"
)

func newTestStore(t *testing.T) (*jsonfile.Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := jsonfile.New(dir, nil)
	require.NoError(t, err)
	return s, dir
}

func TestNew_InitializesCollectionFiles(t *testing.T) {
	_, dir := newTestStore(t)

	for _, name := range []string{"articles.json", "rental-requests.json", "mietdaten.json"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, "%s should exist after open", name)
		assert.Equal(t, "[]", string(data))
	}
}

func TestRoundTrip_Requests(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	req := booking.RentalRequest{
		ID:            "req-1",
		ProductID:     "p1",
		ProductTitle:  "Party Tent",
		StartDate:     booking.NewDate(2024, time.June, 1),
		EndDate:       booking.NewDate(2024, time.June, 5),
		CustomerName:  "Anna Schmidt",
		CustomerEmail: "anna@example.com",
		TotalPrice:    decimal.RequireFromString("120.50"),
		Status:        booking.StatusPending,
		CreatedAt:     time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.SaveRequests(ctx, []booking.RentalRequest{req}))

	loaded, err := s.LoadRequests(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "req-1", loaded[0].ID)
	assert.True(t, loaded[0].StartDate.Equal(req.StartDate))
	assert.True(t, loaded[0].TotalPrice.Equal(req.TotalPrice))
}

func TestLoad_FailsSoftOnCorruptFile(t *testing.T) {
	// GIVEN: A collection file with broken JSON
	// WHEN: The collection is loaded
	// THEN: The store reports an empty collection instead of an error

	s, dir := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mietdaten.json"), []byte("{not json"), 0o644))

	entries, err := s.LoadLedger(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLoad_FailsSoftOnMissingFile(t *testing.T) {
	s, dir := newTestStore(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "articles.json")))

	articles, err := s.LoadArticles(context.Background())
	require.NoError(t, err)
	assert.Empty(t, articles)
}

func TestSave_RewritesWholeFile(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first := booking.ConfirmedRental{ID: "a", ProductID: "p1"}
	second := booking.ConfirmedRental{ID: "b", ProductID: "p2"}

	require.NoError(t, s.SaveLedger(ctx, []booking.ConfirmedRental{first, second}))
	require.NoError(t, s.SaveLedger(ctx, []booking.ConfirmedRental{second}))

	entries, err := s.LoadLedger(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b", entries[0].ID)
}

func TestNew_KeepsExistingData(t *testing.T) {
	// Re-opening a data directory must not re-initialize populated files.

	dir := t.TempDir()
	s1, err := jsonfile.New(dir, nil)
	require.NoError(t, err)
	require.NoError(t, s1.SaveLedger(context.Background(), []booking.ConfirmedRental{{ID: "keep"}}))

	s2, err := jsonfile.New(dir, nil)
	require.NoError(t, err)
	entries, err := s2.LoadLedger(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "keep", entries[0].ID)
}
