package catalog_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/rental-engine/catalog"
	"github.com/warp/rental-engine/store"
)

func newTestService() *catalog.Service {
	var seq int
	return &catalog.Service{
		Store: store.NewMemory(),
		Clock: func() time.Time { return time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC) },
		NewID: func() string { seq++; return fmt.Sprintf("article-%d", seq) },
	}
}

func input(title, category string) catalog.ArticleInput {
	price := decimal.NewFromInt(25)
	return catalog.ArticleInput{
		Title:       title,
		Category:    category,
		Description: "Sturdy, weatherproof.",
		Price:       &price,
	}
}

func TestService_CreateAndGet(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, input("Party Tent", "tents"))
	require.NoError(t, err)
	assert.Equal(t, "article-1", created.ID)
	assert.True(t, created.Available, "availability defaults to true")
	assert.NotNil(t, created.Features, "features serialize as [], not null")

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Party Tent", got.Title)
}

func TestService_Create_MissingFields(t *testing.T) {
	svc := newTestService()

	in := input("Party Tent", "tents")
	in.Price = nil

	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, catalog.ErrMissingFields)
}

func TestService_ListByCategory(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, input("Party Tent", "tents"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, input("Beer Bench", "furniture"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, input("Pagoda Tent", "tents"))
	require.NoError(t, err)

	tents, err := svc.ListByCategory(ctx, "tents")
	require.NoError(t, err)
	assert.Len(t, tents, 2)

	none, err := svc.ListByCategory(ctx, "vehicles")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestService_Update(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, input("Party Tent", "tents"))
	require.NoError(t, err)

	in := input("Party Tent 6x3m", "tents")
	unavailable := false
	in.Available = &unavailable

	updated, err := svc.Update(ctx, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Party Tent 6x3m", updated.Title)
	assert.False(t, updated.Available)

	_, err = svc.Update(ctx, "nope", in)
	assert.ErrorIs(t, err, catalog.ErrArticleNotFound)
}

func TestService_Delete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, input("Party Tent", "tents"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, catalog.ErrArticleNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), catalog.ErrArticleNotFound)
}
