package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogModel "storefront-backend/internal/domains/catalog/model"
	"storefront-backend/internal/domains/cart/model"
	"storefront-backend/internal/domains/currency"
)

func TestPriceLinesSubtotalAndDeliveryFee(t *testing.T) {
	catalog := newMemoryCatalog(
		simpleProduct("plain-tee", "50", 20),
		simpleProduct("cap", "75", 20),
	)
	svc := newService(newMemoryCartRepo(), catalog, nil)

	lines := model.Lines{
		{Slug: "plain-tee", Quantity: 2},
		{Slug: "cap", Quantity: 2},
	}

	cart, err := svc.PriceLines(context.Background(), lines, "AED", "")
	require.NoError(t, err)

	assert.Equal(t, "AED", cart.Currency)
	assert.Equal(t, 2, cart.Count)
	assert.True(t, cart.Subtotal.Equal(dec("250")), "subtotal = %s", cart.Subtotal)
	assert.True(t, cart.DeliveryFee.Equal(dec("25")), "below the threshold the fee applies")
	assert.True(t, cart.Total.Equal(dec("275")), "total = %s", cart.Total)
}

func TestPriceLinesFreeDeliveryAtThreshold(t *testing.T) {
	catalog := newMemoryCatalog(simpleProduct("jacket", "300", 20))
	svc := newService(newMemoryCartRepo(), catalog, nil)

	cart, err := svc.PriceLines(context.Background(), model.Lines{{Slug: "jacket", Quantity: 1}}, "AED", "")
	require.NoError(t, err)

	assert.True(t, cart.DeliveryFee.IsZero(), "fee = %s", cart.DeliveryFee)
	assert.True(t, cart.Total.Equal(dec("300")))
}

func TestPriceLinesClampsToStock(t *testing.T) {
	catalog := newMemoryCatalog(simpleProduct("plain-tee", "50", 5))
	svc := newService(newMemoryCartRepo(), catalog, nil)

	cart, err := svc.PriceLines(context.Background(), model.Lines{{Slug: "plain-tee", Quantity: 7}}, "AED", "")
	require.NoError(t, err)

	require.Len(t, cart.Lines, 1)
	line := cart.Lines[0]
	assert.Equal(t, 5, line.Quantity)
	assert.Equal(t, 7, line.Requested)
	assert.True(t, line.OverStock)
	assert.True(t, line.InStock)
	assert.True(t, line.Subtotal.Equal(dec("250")), "subtotal uses the clamped quantity")
}

func TestPriceLinesOutOfStockLineStaysInView(t *testing.T) {
	catalog := newMemoryCatalog(
		simpleProduct("plain-tee", "50", 0),
		simpleProduct("cap", "75", 20),
	)
	svc := newService(newMemoryCartRepo(), catalog, nil)

	lines := model.Lines{
		{Slug: "plain-tee", Quantity: 2},
		{Slug: "cap", Quantity: 1},
	}
	cart, err := svc.PriceLines(context.Background(), lines, "AED", "")
	require.NoError(t, err)

	require.Len(t, cart.Lines, 2)
	assert.Equal(t, 0, cart.Lines[0].Quantity)
	assert.False(t, cart.Lines[0].InStock)
	assert.True(t, cart.Lines[0].OverStock)
	assert.True(t, cart.Subtotal.Equal(dec("75")), "out-of-stock lines contribute nothing")
}

func TestPriceLinesExcludesVanishedProduct(t *testing.T) {
	catalog := newMemoryCatalog(simpleProduct("cap", "75", 20))
	svc := newService(newMemoryCartRepo(), catalog, nil)

	lines := model.Lines{
		{Slug: "deleted-tee", Quantity: 2},
		{Slug: "cap", Quantity: 1},
	}
	cart, err := svc.PriceLines(context.Background(), lines, "AED", "")
	require.NoError(t, err)

	require.Len(t, cart.Excluded, 1)
	assert.Equal(t, "deleted-tee", cart.Excluded[0].Slug)
	assert.Equal(t, model.ExcludedProductRemoved, cart.Excluded[0].Reason)
	assert.Equal(t, 1, cart.Count)
	assert.True(t, cart.Subtotal.Equal(dec("75")))
}

func TestPriceLinesExcludesVanishedSelection(t *testing.T) {
	product := simpleProduct("hoodie", "120", 50)
	product.Variants = []catalogModel.Variant{{ID: uuid.New(), Color: "Black"}}
	svc := newService(newMemoryCartRepo(), newMemoryCatalog(product), nil)

	staleVariant := uuid.New()
	cart, err := svc.PriceLines(context.Background(), model.Lines{
		{Slug: "hoodie", VariantID: uuidPtr(staleVariant), Quantity: 1},
	}, "AED", "")
	require.NoError(t, err)

	require.Len(t, cart.Excluded, 1)
	assert.Equal(t, model.ExcludedSelectionRemoved, cart.Excluded[0].Reason)
	assert.Equal(t, 0, cart.Count)
}

func TestPriceLinesEligibilitySplit(t *testing.T) {
	restricted := simpleProduct("regional-only", "100", 20)
	restricted.SellGlobally = false
	restricted.AllowedCountries = []string{"AE"}
	catalog := newMemoryCatalog(restricted, simpleProduct("cap", "75", 20))
	svc := newService(newMemoryCartRepo(), catalog, nil)

	lines := model.Lines{
		{Slug: "regional-only", Quantity: 1},
		{Slug: "cap", Quantity: 1},
	}

	cart, err := svc.PriceLines(context.Background(), lines, "AED", "SA")
	require.NoError(t, err)

	require.Len(t, cart.NonEligible, 1)
	assert.Equal(t, "regional-only", cart.NonEligible[0].Slug)
	assert.False(t, cart.NonEligible[0].Eligible)
	assert.Equal(t, 1, cart.Count)
	assert.True(t, cart.Subtotal.Equal(dec("75")), "non-eligible lines are priced but never totalled")

	// Without a country everything is eligible.
	cart, err = svc.PriceLines(context.Background(), lines, "AED", "")
	require.NoError(t, err)
	assert.Empty(t, cart.NonEligible)
	assert.True(t, cart.Subtotal.Equal(dec("175")))
}

func TestPriceLinesConvertsCurrency(t *testing.T) {
	conv := &stubConverter{rates: map[string]decimal.Decimal{"USD": dec("0.2723")}}
	catalog := newMemoryCatalog(simpleProduct("plain-tee", "100", 20))
	svc := newService(newMemoryCartRepo(), catalog, conv)

	cart, err := svc.PriceLines(context.Background(), model.Lines{{Slug: "plain-tee", Quantity: 1}}, "usd", "")
	require.NoError(t, err)

	assert.Equal(t, "USD", cart.Currency)
	require.Len(t, cart.Lines, 1)
	assert.True(t, cart.Lines[0].PriceBase.Equal(dec("100")))
	assert.True(t, cart.Lines[0].Price.Equal(dec("28")), "conversion rounds up, price = %s", cart.Lines[0].Price)
	assert.True(t, cart.Subtotal.Equal(dec("28")))
}

func TestPriceLinesFeeThresholdUsesBaseCurrency(t *testing.T) {
	// 300 AED converts to a small USD amount; the threshold must still
	// be met because it compares base-currency subtotals.
	conv := &stubConverter{rates: map[string]decimal.Decimal{"USD": dec("0.2723")}}
	catalog := newMemoryCatalog(simpleProduct("jacket", "300", 20))
	svc := newService(newMemoryCartRepo(), catalog, conv)

	cart, err := svc.PriceLines(context.Background(), model.Lines{{Slug: "jacket", Quantity: 1}}, "USD", "")
	require.NoError(t, err)

	assert.True(t, cart.SubtotalBase.Equal(dec("300")))
	assert.True(t, cart.DeliveryFee.IsZero())
}

func TestPriceLinesEmptyCart(t *testing.T) {
	svc := newService(newMemoryCartRepo(), newMemoryCatalog(), nil)

	cart, err := svc.PriceLines(context.Background(), model.Lines{}, "AED", "")
	require.NoError(t, err)

	assert.Equal(t, 0, cart.Count)
	assert.True(t, cart.Subtotal.IsZero())
	assert.True(t, cart.DeliveryFee.IsZero())
	assert.True(t, cart.Total.IsZero())
}

func TestPriceUserCartIsReadOnly(t *testing.T) {
	repo := newMemoryCartRepo()
	userID := uuid.New()
	repo.carts[userID] = model.Lines{{Slug: "plain-tee", Quantity: 7}}
	svc := newService(repo, newMemoryCatalog(simpleProduct("plain-tee", "50", 5)), nil)

	first, err := svc.PriceUserCart(context.Background(), userID, "AED", "")
	require.NoError(t, err)
	second, err := svc.PriceUserCart(context.Background(), userID, "AED", "")
	require.NoError(t, err)

	// Clamping happens in the view only; the stored quantity survives.
	assert.Equal(t, first.Lines[0].Quantity, second.Lines[0].Quantity)
	assert.Equal(t, 7, repo.carts[userID][0].Quantity)
	assert.Equal(t, 0, repo.saves)
}

func TestPriceLinesRejectsUnsupportedCurrency(t *testing.T) {
	svc := newService(newMemoryCartRepo(), newMemoryCatalog(), nil)

	// Even an empty cart must not turn a bad currency into a 200.
	_, err := svc.PriceLines(context.Background(), model.Lines{}, "XTS", "")
	assert.ErrorIs(t, err, currency.ErrUnsupportedCurrency)
}
