package repository

import (
	"context"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/cart/model"
)

// RepositoryInterface persists a cart owner's ordered lines. The core
// enforces identity and quantity invariants before a save; the
// repository only stores and retrieves.
type RepositoryInterface interface {
	// LoadLines returns the owner's lines in stored order. An owner
	// without a cart gets an empty, non-nil slice.
	LoadLines(ctx context.Context, userID uuid.UUID) (model.Lines, error)

	// SaveLines replaces the owner's cart with the given lines.
	SaveLines(ctx context.Context, userID uuid.UUID, lines model.Lines) error
}
