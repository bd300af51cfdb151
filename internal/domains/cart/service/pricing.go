package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogModel "storefront-backend/internal/domains/catalog/model"
	"storefront-backend/internal/domains/cart/model"
	"storefront-backend/internal/domains/currency"
)

// PriceUserCart implements ServiceInterface.PriceUserCart
func (s *CartService) PriceUserCart(ctx context.Context, userID uuid.UUID, currencyCode, country string) (*model.PricedCart, error) {
	lines, err := s.repository.LoadLines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return s.PriceLines(ctx, lines, currencyCode, country)
}

// PriceLines implements ServiceInterface.PriceLines
//
// Every line is re-resolved against the CURRENT catalog state in input
// order; stored snapshots are never trusted for price or stock. Lines
// whose product or selection vanished are dropped from the view and
// reported in Excluded; a read must not fail over someone else's
// missing data. Delivery fee tiers compare against the base-currency
// subtotal so the threshold is currency-independent; the fee itself is
// converted for display.
func (s *CartService) PriceLines(ctx context.Context, lines model.Lines, currencyCode, country string) (*model.PricedCart, error) {
	if currencyCode == "" {
		currencyCode = s.converter.BaseCurrency()
	}
	currencyCode = strings.ToUpper(currencyCode)
	country = strings.ToUpper(country)

	// Reject an unknown currency up front; an empty cart must not make
	// a bad currency parameter look valid.
	if ok, err := s.converter.Supports(ctx, currencyCode); err != nil {
		return nil, err
	} else if !ok {
		return nil, fmt.Errorf("%w: %s", currency.ErrUnsupportedCurrency, currencyCode)
	}

	view := &model.PricedCart{
		Currency:     currencyCode,
		SubtotalBase: decimal.Zero,
		Subtotal:     decimal.Zero,
		DeliveryFee:  decimal.Zero,
		Total:        decimal.Zero,
		Lines:        []model.PricedLine{},
	}

	if len(lines) == 0 {
		return view, nil
	}

	subtotalBase := decimal.Zero
	subtotal := decimal.Zero

	for _, line := range lines {
		resolved, product, err := s.resolveLine(ctx, line)
		if err != nil {
			if reason, stale := exclusionReason(err); stale {
				view.Excluded = append(view.Excluded, model.ExcludedLine{
					Slug:      line.Slug,
					VariantID: line.VariantID,
					SizeID:    line.SizeID,
					Color:     line.Color,
					Size:      line.Size,
					Reason:    reason,
				})
				continue
			}
			return nil, err
		}

		stock := resolved.Stock
		inStock := stock > 0
		adjusted := 0
		if inStock && line.Quantity < stock {
			adjusted = line.Quantity
		} else if inStock {
			adjusted = stock
		}

		eligible := product.IsEligible(country)

		priceConverted, err := s.converter.Convert(ctx, resolved.Price, currencyCode)
		if err != nil {
			return nil, err
		}
		lineSubtotal := priceConverted.Mul(decimal.NewFromInt(int64(adjusted)))

		priced := model.PricedLine{
			Slug:      line.Slug,
			Color:     line.Color,
			Size:      line.Size,
			Quantity:  adjusted,
			Requested: line.Quantity,
			OverStock: line.Quantity > stock,
			InStock:   inStock,
			Stock:     stock,
			Eligible:  eligible,
			PriceBase: resolved.Price,
			Price:     priceConverted,
			Subtotal:  lineSubtotal,
			Product:   productSummary(product, resolved),
		}
		if id := resolved.VariantID(); id != uuid.Nil {
			priced.VariantID = &id
		} else {
			priced.VariantID = line.VariantID
		}
		if id := resolved.SizeID(); id != uuid.Nil {
			priced.SizeID = &id
		} else {
			priced.SizeID = line.SizeID
		}

		if !eligible {
			view.NonEligible = append(view.NonEligible, priced)
			continue
		}

		if inStock {
			subtotalBase = subtotalBase.Add(resolved.Price.Mul(decimal.NewFromInt(int64(adjusted))))
			subtotal = subtotal.Add(lineSubtotal)
		}
		view.Lines = append(view.Lines, priced)
	}

	view.Count = len(view.Lines)

	deliveryFee := decimal.Zero
	if subtotalBase.LessThan(decimal.NewFromInt(int64(s.cfg.FreeDeliveryThreshold))) {
		fee, err := s.converter.Convert(ctx, decimal.NewFromInt(int64(s.cfg.DeliveryFee)), currencyCode)
		if err != nil {
			return nil, err
		}
		deliveryFee = fee
	}

	// Arithmetic stays unrounded until here; rounding is display-only.
	view.SubtotalBase = subtotalBase.Round(2)
	view.Subtotal = subtotal.Round(2)
	view.DeliveryFee = deliveryFee.Round(2)
	view.Total = subtotal.Add(deliveryFee).Round(2)

	return view, nil
}

func exclusionReason(err error) (model.ExclusionReason, bool) {
	switch {
	case errors.Is(err, catalogModel.ErrProductNotFound):
		return model.ExcludedProductRemoved, true
	case errors.Is(err, catalogModel.ErrVariantNotFound),
		errors.Is(err, catalogModel.ErrSizeNotFound),
		errors.Is(err, catalogModel.ErrSelectionNotFound):
		return model.ExcludedSelectionRemoved, true
	}
	return "", false
}

func productSummary(p *catalogModel.Product, r *catalogModel.Resolved) model.ProductSummary {
	summary := model.ProductSummary{
		Name:   p.Name,
		Slug:   p.Slug,
		Image:  r.Image,
		Colors: p.Colors(),
	}
	if r.Variant != nil {
		for _, sz := range r.Variant.Sizes {
			summary.Sizes = append(summary.Sizes, sz.Name)
		}
	}
	return summary
}
