package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/domains/catalog/model"
	"storefront-backend/internal/domains/currency"
)

type fakeRepo struct {
	products map[string]*model.Product
}

func (r *fakeRepo) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return r.products[slug], nil
}

type stubConverter struct {
	rates map[string]decimal.Decimal
}

func (s *stubConverter) BaseCurrency() string { return "AED" }

func (s *stubConverter) Convert(ctx context.Context, amount decimal.Decimal, target string) (decimal.Decimal, error) {
	target = strings.ToUpper(target)
	if target == "" || target == "AED" {
		return amount, nil
	}
	rate, ok := s.rates[target]
	if !ok {
		return decimal.Zero, currency.ErrUnsupportedCurrency
	}
	return amount.Mul(rate).Ceil(), nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func testProduct() *model.Product {
	return &model.Product{
		ID:    uuid.New(),
		Name:  "hoodie",
		Slug:  "hoodie",
		Price: dec("100"),
		Stock: 10,
		Variants: []model.Variant{{
			ID:    uuid.New(),
			Color: "Black",
			Price: decPtr("120"),
			Sizes: []model.Size{
				{ID: uuid.New(), Name: "M"},
				{ID: uuid.New(), Name: "L", Price: decPtr("140")},
			},
		}},
		SellGlobally: true,
		IsActive:     true,
	}
}

func TestGetProductConvertsWholePriceTree(t *testing.T) {
	repo := &fakeRepo{products: map[string]*model.Product{"hoodie": testProduct()}}
	conv := &stubConverter{rates: map[string]decimal.Decimal{"USD": dec("0.2723")}}
	svc := NewCatalogService(repo, conv)

	view, err := svc.GetProduct(context.Background(), "hoodie", "usd")
	require.NoError(t, err)

	assert.Equal(t, "USD", view.Currency)
	assert.True(t, view.Price.Equal(dec("28")), "base price converted, got %s", view.Price)

	require.Len(t, view.Variants, 1)
	require.NotNil(t, view.Variants[0].Price)
	assert.True(t, view.Variants[0].Price.Equal(dec("33")), "variant override converted")

	require.Len(t, view.Variants[0].Sizes, 2)
	assert.Nil(t, view.Variants[0].Sizes[0].Price, "inherit-when-nil survives conversion")
	require.NotNil(t, view.Variants[0].Sizes[1].Price)
	assert.True(t, view.Variants[0].Sizes[1].Price.Equal(dec("39")))
}

func TestGetProductBaseCurrencyPassThrough(t *testing.T) {
	repo := &fakeRepo{products: map[string]*model.Product{"hoodie": testProduct()}}
	svc := NewCatalogService(repo, &stubConverter{})

	view, err := svc.GetProduct(context.Background(), "hoodie", "")
	require.NoError(t, err)

	assert.Equal(t, "AED", view.Currency)
	assert.True(t, view.Price.Equal(dec("100")))
}

func TestGetProductNotFound(t *testing.T) {
	svc := NewCatalogService(&fakeRepo{products: map[string]*model.Product{}}, &stubConverter{})

	_, err := svc.GetProduct(context.Background(), "gone", "")
	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestGetProductUnsupportedCurrency(t *testing.T) {
	repo := &fakeRepo{products: map[string]*model.Product{"hoodie": testProduct()}}
	svc := NewCatalogService(repo, &stubConverter{})

	_, err := svc.GetProduct(context.Background(), "hoodie", "XYZ")
	assert.ErrorIs(t, err, currency.ErrUnsupportedCurrency)
}
