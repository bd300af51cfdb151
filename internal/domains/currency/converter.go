package currency

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"storefront-backend/pkg/logger"
)

// Converter converts base-currency amounts into display currencies.
// It owns the process-wide rate cache: lazily populated on the first
// conversion, refreshed synchronously once its age exceeds the TTL.
// Conversions round UP to the nearest whole unit so the store never
// under-charges on rounding.
type Converter struct {
	source RateSource
	base   string
	ttl    time.Duration

	mu        sync.Mutex
	rates     map[string]decimal.Decimal
	fetchedAt time.Time

	now func() time.Time
}

func NewConverter(source RateSource, baseCurrency string, ttl time.Duration) *Converter {
	return &Converter{
		source: source,
		base:   strings.ToUpper(baseCurrency),
		ttl:    ttl,
		now:    time.Now,
	}
}

// BaseCurrency returns the currency prices are stored in.
func (c *Converter) BaseCurrency() string {
	return c.base
}

// Convert converts an amount in the base currency to the target
// currency. Converting to the base currency is the identity and needs
// no rate lookup. Currency codes are case-insensitive.
func (c *Converter) Convert(ctx context.Context, amount decimal.Decimal, targetCurrency string) (decimal.Decimal, error) {
	target := strings.ToLower(strings.TrimSpace(targetCurrency))
	if target == "" || strings.EqualFold(target, c.base) {
		return amount, nil
	}

	rate, err := c.rate(ctx, target)
	if err != nil {
		return decimal.Zero, err
	}

	// Ceiling, not round-to-nearest: the rounding bias always favors
	// the seller and must stay that way.
	return amount.Mul(rate).Ceil(), nil
}

// Supports reports whether the target currency can be converted to
// without refreshing beyond the normal TTL check.
func (c *Converter) Supports(ctx context.Context, targetCurrency string) (bool, error) {
	target := strings.ToLower(strings.TrimSpace(targetCurrency))
	if strings.EqualFold(target, c.base) {
		return true, nil
	}

	_, err := c.rate(ctx, target)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrUnsupportedCurrency) {
		return false, nil
	}
	return false, err
}

func (c *Converter) rate(ctx context.Context, target string) (decimal.Decimal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.refreshLocked(ctx); err != nil {
		return decimal.Zero, err
	}

	rate, ok := c.rates[target]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, strings.ToUpper(target))
	}
	return rate, nil
}

// refreshLocked refetches the rate table when the cache is empty or
// older than the TTL. A failed refresh propagates instead of falling
// back to stale rates.
func (c *Converter) refreshLocked(ctx context.Context) error {
	if c.rates != nil && c.now().Sub(c.fetchedAt) <= c.ttl {
		return nil
	}

	rates, err := c.source.FetchRates(ctx, c.base)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRateSourceUnavailable, err)
	}

	normalized := make(map[string]decimal.Decimal, len(rates))
	for code, rate := range rates {
		normalized[strings.ToLower(code)] = rate
	}

	c.rates = normalized
	c.fetchedAt = c.now()

	logger.Info("exchange rates refreshed", map[string]interface{}{
		"base":       c.base,
		"currencies": len(normalized),
	})

	return nil
}
