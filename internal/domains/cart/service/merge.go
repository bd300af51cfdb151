package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/cart/model"
	"storefront-backend/pkg/logger"
)

// MergeGuestCart folds a guest cart into the user's persisted cart.
// Each guest line is re-resolved against the current catalog; lines
// whose product or selection no longer exists, or whose stock is zero,
// are silently dropped. Matching identity keys merge additively:
// min(persisted+guest, stock, cap). The merge is not idempotent; the
// client clears its local cart after a successful merge.
func (s *CartService) MergeGuestCart(ctx context.Context, userID uuid.UUID, guest model.Lines) (model.Lines, error) {
	persisted, err := s.repository.LoadLines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	for _, line := range guest {
		if line.Slug == "" || line.Quantity <= 0 {
			continue
		}

		resolved, _, err := s.resolveLine(ctx, line)
		if err != nil {
			if reason, stale := exclusionReason(err); stale {
				logger.Debug("guest cart line skipped: selection vanished", map[string]interface{}{
					"slug":   line.Slug,
					"reason": reason,
				})
				continue
			}
			return nil, err
		}

		stock := resolved.Stock
		if stock <= 0 {
			continue
		}

		key := line.Key()
		if idx := persisted.Find(key); idx >= 0 {
			persisted[idx].Quantity = minInt(persisted[idx].Quantity+line.Quantity, stock, s.cfg.MaxQuantityPerItem)
		} else {
			merged := line
			merged.Quantity = minInt(line.Quantity, stock, s.cfg.MaxQuantityPerItem)
			persisted = append(persisted, merged)
		}
	}

	if err := s.repository.SaveLines(ctx, userID, persisted); err != nil {
		return nil, fmt.Errorf("failed to save merged cart: %w", err)
	}

	return persisted, nil
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
