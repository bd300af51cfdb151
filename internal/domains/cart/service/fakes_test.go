package service

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogModel "storefront-backend/internal/domains/catalog/model"
	"storefront-backend/internal/domains/cart/model"
	"storefront-backend/internal/domains/currency"
)

// memoryCartRepo keeps carts in a map. Loads and saves copy the slice
// so tests can assert the service never mutates repo state in place.
type memoryCartRepo struct {
	mu      sync.Mutex
	carts   map[uuid.UUID]model.Lines
	loadErr error
	saveErr error
	saves   int
}

func newMemoryCartRepo() *memoryCartRepo {
	return &memoryCartRepo{carts: make(map[uuid.UUID]model.Lines)}
}

func (r *memoryCartRepo) LoadLines(ctx context.Context, userID uuid.UUID) (model.Lines, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	stored := r.carts[userID]
	lines := make(model.Lines, len(stored))
	copy(lines, stored)
	return lines, nil
}

func (r *memoryCartRepo) SaveLines(ctx context.Context, userID uuid.UUID, lines model.Lines) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	stored := make(model.Lines, len(lines))
	copy(stored, lines)
	r.carts[userID] = stored
	r.saves++
	return nil
}

type memoryCatalog struct {
	products map[string]*catalogModel.Product
	findErr  error
}

func newMemoryCatalog(products ...*catalogModel.Product) *memoryCatalog {
	c := &memoryCatalog{products: make(map[string]*catalogModel.Product)}
	for _, p := range products {
		c.products[p.Slug] = p
	}
	return c
}

func (c *memoryCatalog) FindBySlug(ctx context.Context, slug string) (*catalogModel.Product, error) {
	if c.findErr != nil {
		return nil, c.findErr
	}
	return c.products[slug], nil
}

// stubConverter converts with a fixed rate table, base AED, ceiling the
// result the way the real converter does.
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

func (s *stubConverter) Supports(ctx context.Context, target string) (bool, error) {
	target = strings.ToUpper(target)
	if target == "" || target == "AED" {
		return true, nil
	}
	_, ok := s.rates[target]
	return ok, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func intPtr(n int) *int { return &n }

func uuidPtr(id uuid.UUID) *uuid.UUID { return &id }

// simpleProduct has no variants; price and stock live on the product.
func simpleProduct(slug, price string, stock int) *catalogModel.Product {
	return &catalogModel.Product{
		ID:           uuid.New(),
		Name:         strings.ReplaceAll(slug, "-", " "),
		Slug:         slug,
		Price:        dec(price),
		Stock:        stock,
		Image:        "https://cdn.example.com/" + slug + ".jpg",
		SellGlobally: true,
		IsActive:     true,
	}
}

func variantFor(id uuid.UUID, color string) catalogModel.Variant {
	return catalogModel.Variant{ID: id, Color: color}
}

func newService(repo *memoryCartRepo, catalog *memoryCatalog, conv CurrencyConverter) ServiceInterface {
	if conv == nil {
		conv = &stubConverter{}
	}
	return NewCartService(repo, catalog, conv, DefaultConfig())
}
