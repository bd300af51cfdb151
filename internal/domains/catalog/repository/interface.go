package repository

import (
	"context"

	"storefront-backend/internal/domains/catalog/model"
)

// RepositoryInterface is the catalog read contract the cart core
// consumes: resolve a product by slug with its full variant/size tree
// and stock fields.
type RepositoryInterface interface {
	// FindBySlug returns the product, or (nil, nil) when absent.
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
}
