package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	catalogModel "storefront-backend/internal/domains/catalog/model"
	catalogRepo "storefront-backend/internal/domains/catalog/repository"
	"storefront-backend/internal/domains/cart/model"
	repo "storefront-backend/internal/domains/cart/repository"
)

// Config carries the commerce constants, in the base currency.
type Config struct {
	MaxQuantityPerItem    int
	FreeDeliveryThreshold int
	DeliveryFee           int
}

func DefaultConfig() Config {
	return Config{
		MaxQuantityPerItem:    10,
		FreeDeliveryThreshold: 300,
		DeliveryFee:           25,
	}
}

type CartService struct {
	repository repo.RepositoryInterface
	catalog    catalogRepo.RepositoryInterface
	converter  CurrencyConverter
	cfg        Config
}

func NewCartService(
	r repo.RepositoryInterface,
	catalog catalogRepo.RepositoryInterface,
	converter CurrencyConverter,
	cfg Config,
) ServiceInterface {
	if cfg.MaxQuantityPerItem <= 0 {
		cfg = DefaultConfig()
	}
	return &CartService{
		repository: r,
		catalog:    catalog,
		converter:  converter,
		cfg:        cfg,
	}
}

// AddItem implements ServiceInterface.AddItem
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req model.AddToCartRequest, qty int) (*model.CartResponse, error) {
	if qty > s.cfg.MaxQuantityPerItem {
		return nil, &model.QuantityLimitError{Limit: s.cfg.MaxQuantityPerItem}
	}

	line := req.Line(qty)

	// qty 0 is delete-on-write; no stock check needed.
	if qty > 0 {
		if err := s.checkStock(ctx, line, qty); err != nil {
			return nil, err
		}
	}

	lines, err := s.repository.LoadLines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	existed := lines.Find(line.Key()) >= 0
	lines.Upsert(line)

	if err := s.repository.SaveLines(ctx, userID, lines); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	message := "Item added to cart."
	if existed {
		message = "Cart quantity updated."
	}

	return &model.CartResponse{
		Message: message,
		Count:   len(lines),
		Cart:    lines,
	}, nil
}

// UpdateQuantity implements ServiceInterface.UpdateQuantity
func (s *CartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, req model.UpdateQuantityRequest) (*model.CartResponse, error) {
	lines, err := s.repository.LoadLines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	key := req.Key()
	idx := lines.Find(key)
	if idx < 0 {
		return nil, model.ErrCartLineNotFound
	}

	quantity := *req.Quantity

	if quantity <= 0 {
		lines.Remove(key)
	} else {
		if quantity > s.cfg.MaxQuantityPerItem {
			return nil, &model.QuantityLimitError{Limit: s.cfg.MaxQuantityPerItem}
		}
		if err := s.checkStock(ctx, lines[idx], quantity); err != nil {
			return nil, err
		}
		lines[idx].Quantity = quantity
	}

	if err := s.repository.SaveLines(ctx, userID, lines); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	message := "Cart quantity updated"
	if quantity <= 0 {
		message = "Item removed from cart"
	}

	return &model.CartResponse{
		Message: message,
		Count:   len(lines),
		Cart:    lines,
	}, nil
}

// RemoveItem implements ServiceInterface.RemoveItem
func (s *CartService) RemoveItem(ctx context.Context, userID uuid.UUID, slug string, req model.RemoveItemRequest) (*model.CartResponse, error) {
	lines, err := s.repository.LoadLines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	key := model.CartLine{
		Slug:      slug,
		VariantID: req.VariantID,
		SizeID:    req.SizeID,
		Color:     req.Color,
		Size:      req.Size,
	}.Key()

	if !lines.Remove(key) {
		return nil, model.ErrCartLineNotFound
	}

	if err := s.repository.SaveLines(ctx, userID, lines); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	return &model.CartResponse{
		Message: "Product removed from cart",
		Count:   len(lines),
		Cart:    lines,
	}, nil
}

// GetQuantity implements ServiceInterface.GetQuantity
func (s *CartService) GetQuantity(ctx context.Context, userID uuid.UUID, slug, color, size string) (int, error) {
	lines, err := s.repository.LoadLines(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to load cart: %w", err)
	}

	for _, line := range lines {
		if line.Slug != slug {
			continue
		}
		if line.Color != color || line.Size != size {
			continue
		}
		return line.Quantity, nil
	}
	return 0, nil
}

// GetLine implements ServiceInterface.GetLine
func (s *CartService) GetLine(ctx context.Context, userID uuid.UUID, slug, color, size string) (*model.CartLine, error) {
	lines, err := s.repository.LoadLines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	for _, line := range lines {
		if line.Slug == slug && line.Color == color && line.Size == size {
			found := line
			return &found, nil
		}
	}
	return nil, model.ErrCartLineNotFound
}

// GetLines implements ServiceInterface.GetLines
func (s *CartService) GetLines(ctx context.Context, userID uuid.UUID) (model.Lines, error) {
	return s.repository.LoadLines(ctx, userID)
}

// ClearCart implements ServiceInterface.ClearCart
func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return s.repository.SaveLines(ctx, userID, model.Lines{})
}

// checkStock resolves the line's selection fresh and verifies the
// requested quantity fits the available stock.
func (s *CartService) checkStock(ctx context.Context, line model.CartLine, quantity int) error {
	resolved, _, err := s.resolveLine(ctx, line)
	if err != nil {
		return err
	}

	if resolved.Stock < quantity {
		return &model.InsufficientStockError{Available: resolved.Stock}
	}
	return nil
}

// resolveLine loads the line's product and resolves its selection.
// A vanished product or selection surfaces the catalog error; callers
// in the pricing path translate those into tagged exclusions instead.
func (s *CartService) resolveLine(ctx context.Context, line model.CartLine) (*catalogModel.Resolved, *catalogModel.Product, error) {
	product, err := s.catalog.FindBySlug(ctx, line.Slug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up product: %w", err)
	}
	if product == nil {
		return nil, nil, catalogModel.ErrProductNotFound
	}

	selector := catalogModel.Selector{
		VariantID: line.VariantID,
		SizeID:    line.SizeID,
		Color:     line.Color,
		Size:      line.Size,
	}

	resolved, err := product.Resolve(selector)
	if err != nil {
		return nil, product, err
	}
	if resolved == nil {
		// Name-based selector matched no variant. The caller asked for
		// a specific configuration, so this is a missing selection.
		return nil, product, catalogModel.ErrSelectionNotFound
	}

	return resolved, product, nil
}
