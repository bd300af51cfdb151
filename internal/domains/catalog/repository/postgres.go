package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/catalog/model"
	"storefront-backend/pkg/cache"
	"storefront-backend/pkg/logger"
)

// Product reads are hot (every cart line re-resolves its product) and
// short-lived staleness is acceptable, so slug lookups go through the
// cache with a small TTL.
const productCacheTTL = 2 * time.Minute

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func productCacheKey(slug string) string {
	return "catalog:product:" + slug
}

// FindBySlug implements RepositoryInterface.FindBySlug
func (r *postgresRepository) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	if r.cache != nil {
		var cached model.Product
		found, err := r.cache.Get(ctx, productCacheKey(slug), &cached)
		if err != nil {
			// Cache trouble is never fatal for a read.
			logger.Warn("product cache read failed", map[string]interface{}{
				"slug":  slug,
				"error": err.Error(),
			})
		} else if found {
			return &cached, nil
		}
	}

	query := `
		SELECT
			id, product_name, slug, brand, category, sub_category,
			price, old_price, stock, main_image, gallery, variants,
			sell_globally, restricted_countries, allowed_countries,
			delivery_days, is_active, created_at, updated_at
		FROM products
		WHERE slug = $1 AND is_active = true
	`

	var p model.Product
	var variantsRaw []byte

	err := r.pool.QueryRow(ctx, query, slug).Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Brand,
		&p.Category,
		&p.SubCategory,
		&p.Price,
		&p.OldPrice,
		&p.Stock,
		&p.Image,
		&p.Gallery,
		&variantsRaw,
		&p.SellGlobally,
		&p.RestrictedCountries,
		&p.AllowedCountries,
		&p.DeliveryDays,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found - return nil, not error
		}
		return nil, fmt.Errorf("failed to get product by slug: %w", err)
	}

	if len(variantsRaw) > 0 {
		if err := json.Unmarshal(variantsRaw, &p.Variants); err != nil {
			return nil, fmt.Errorf("failed to decode product variants: %w", err)
		}
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, productCacheKey(slug), &p, productCacheTTL); err != nil {
			logger.Warn("product cache write failed", map[string]interface{}{
				"slug":  slug,
				"error": err.Error(),
			})
		}
	}

	return &p, nil
}
