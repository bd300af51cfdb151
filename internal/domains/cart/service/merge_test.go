package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/domains/cart/model"
)

func TestMergeGuestCartAddsQuantities(t *testing.T) {
	repo := newMemoryCartRepo()
	userID := uuid.New()
	repo.carts[userID] = model.Lines{{Slug: "plain-tee", Quantity: 3}}
	svc := newService(repo, newMemoryCatalog(simpleProduct("plain-tee", "50", 5)), nil)

	merged, err := svc.MergeGuestCart(context.Background(), userID, model.Lines{{Slug: "plain-tee", Quantity: 4}})
	require.NoError(t, err)

	// 3 + 4 capped by stock 5.
	require.Len(t, merged, 1)
	assert.Equal(t, 5, merged[0].Quantity)
	assert.Equal(t, 5, repo.carts[userID][0].Quantity)
}

func TestMergeGuestCartCapsAtMaxPerItem(t *testing.T) {
	repo := newMemoryCartRepo()
	userID := uuid.New()
	repo.carts[userID] = model.Lines{{Slug: "plain-tee", Quantity: 6}}
	svc := newService(repo, newMemoryCatalog(simpleProduct("plain-tee", "50", 100)), nil)

	merged, err := svc.MergeGuestCart(context.Background(), userID, model.Lines{{Slug: "plain-tee", Quantity: 6}})
	require.NoError(t, err)

	require.Len(t, merged, 1)
	assert.Equal(t, 10, merged[0].Quantity)
}

func TestMergeGuestCartAppendsNewLines(t *testing.T) {
	repo := newMemoryCartRepo()
	userID := uuid.New()
	repo.carts[userID] = model.Lines{{Slug: "cap", Quantity: 1}}
	catalog := newMemoryCatalog(
		simpleProduct("cap", "75", 20),
		simpleProduct("plain-tee", "50", 3),
	)
	svc := newService(repo, catalog, nil)

	merged, err := svc.MergeGuestCart(context.Background(), userID, model.Lines{{Slug: "plain-tee", Quantity: 8}})
	require.NoError(t, err)

	require.Len(t, merged, 2)
	assert.Equal(t, "cap", merged[0].Slug)
	assert.Equal(t, "plain-tee", merged[1].Slug)
	assert.Equal(t, 3, merged[1].Quantity, "appended lines are capped by stock")
}

func TestMergeGuestCartSkipsUnusableLines(t *testing.T) {
	repo := newMemoryCartRepo()
	userID := uuid.New()
	catalog := newMemoryCatalog(
		simpleProduct("sold-out", "50", 0),
		simpleProduct("cap", "75", 20),
	)
	svc := newService(repo, catalog, nil)

	guest := model.Lines{
		{Slug: "vanished", Quantity: 2},
		{Slug: "sold-out", Quantity: 2},
		{Slug: "cap", Quantity: 0},
		{Slug: "cap", Quantity: 2},
	}
	merged, err := svc.MergeGuestCart(context.Background(), userID, guest)
	require.NoError(t, err)

	require.Len(t, merged, 1)
	assert.Equal(t, "cap", merged[0].Slug)
	assert.Equal(t, 2, merged[0].Quantity)
}

func TestMergeGuestCartDistinctSelections(t *testing.T) {
	product := simpleProduct("hoodie", "120", 50)
	variantID := uuid.New()
	product.Variants = append(product.Variants, variantFor(variantID, "Black"))
	repo := newMemoryCartRepo()
	userID := uuid.New()
	repo.carts[userID] = model.Lines{{Slug: "hoodie", Quantity: 1}}
	svc := newService(repo, newMemoryCatalog(product), nil)

	merged, err := svc.MergeGuestCart(context.Background(), userID, model.Lines{
		{Slug: "hoodie", VariantID: uuidPtr(variantID), Quantity: 2},
	})
	require.NoError(t, err)

	// The scoped selection is a different identity key; no addition.
	require.Len(t, merged, 2)
	assert.Equal(t, 1, merged[0].Quantity)
	assert.Equal(t, 2, merged[1].Quantity)
}

func TestMergeGuestCartNotIdempotent(t *testing.T) {
	repo := newMemoryCartRepo()
	userID := uuid.New()
	svc := newService(repo, newMemoryCatalog(simpleProduct("plain-tee", "50", 100)), nil)

	guest := model.Lines{{Slug: "plain-tee", Quantity: 3}}
	_, err := svc.MergeGuestCart(context.Background(), userID, guest)
	require.NoError(t, err)
	merged, err := svc.MergeGuestCart(context.Background(), userID, guest)
	require.NoError(t, err)

	// Replaying the payload adds again; clients clear their local cart
	// after a successful merge.
	assert.Equal(t, 6, merged[0].Quantity)
}

func TestMergeGuestCartLogsVanishedSelections(t *testing.T) {
	var buf bytes.Buffer
	orig := zlog.Logger
	zlog.Logger = zerolog.New(&buf)
	level := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	defer func() {
		zlog.Logger = orig
		zerolog.SetGlobalLevel(level)
	}()

	repo := newMemoryCartRepo()
	userID := uuid.New()
	svc := newService(repo, newMemoryCatalog(), nil)

	merged, err := svc.MergeGuestCart(context.Background(), userID, model.Lines{{Slug: "gone-product", Quantity: 2}})
	require.NoError(t, err)
	assert.Empty(t, merged)

	// The dropped line must be traceable by slug.
	assert.Contains(t, buf.String(), `"slug":"gone-product"`)
	assert.Contains(t, buf.String(), "product_removed")
}
