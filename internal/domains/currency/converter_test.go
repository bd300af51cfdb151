package currency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	rates   map[string]decimal.Decimal
	err     error
	fetches int
}

func (s *stubSource) FetchRates(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	s.fetches++
	if s.err != nil {
		return nil, s.err
	}
	return s.rates, nil
}

func newTestConverter(source *stubSource) *Converter {
	return NewConverter(source, "AED", time.Hour)
}

func TestConvertIdentityOnBaseCurrency(t *testing.T) {
	source := &stubSource{}
	c := newTestConverter(source)

	amount := decimal.NewFromFloat(123.45)

	got, err := c.Convert(context.Background(), amount, "AED")
	require.NoError(t, err)
	assert.True(t, got.Equal(amount))

	got, err = c.Convert(context.Background(), amount, "aed")
	require.NoError(t, err)
	assert.True(t, got.Equal(amount))

	assert.Equal(t, 0, source.fetches, "identity conversion must not touch the rate source")
}

func TestConvertRoundsUp(t *testing.T) {
	source := &stubSource{rates: map[string]decimal.Decimal{
		"usd": decimal.NewFromFloat(0.2723),
	}}
	c := newTestConverter(source)

	// 100 * 0.2723 = 27.23 -> ceil -> 28
	got, err := c.Convert(context.Background(), decimal.NewFromInt(100), "USD")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(28)), "expected 28, got %s", got)
}

func TestConvertZeroIsZero(t *testing.T) {
	source := &stubSource{rates: map[string]decimal.Decimal{
		"usd": decimal.NewFromFloat(0.2723),
	}}
	c := newTestConverter(source)

	got, err := c.Convert(context.Background(), decimal.Zero, "USD")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestConvertCaseInsensitiveLookup(t *testing.T) {
	source := &stubSource{rates: map[string]decimal.Decimal{
		"SAR": decimal.NewFromInt(1), // upper-cased upstream code is normalized
	}}
	c := newTestConverter(source)

	got, err := c.Convert(context.Background(), decimal.NewFromInt(10), "sar")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(10)))
}

func TestConvertUnsupportedCurrency(t *testing.T) {
	source := &stubSource{rates: map[string]decimal.Decimal{
		"usd": decimal.NewFromInt(1),
	}}
	c := newTestConverter(source)

	_, err := c.Convert(context.Background(), decimal.NewFromInt(10), "XTS")
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)
}

func TestRefreshFailurePropagates(t *testing.T) {
	source := &stubSource{err: errors.New("upstream down")}
	c := newTestConverter(source)

	_, err := c.Convert(context.Background(), decimal.NewFromInt(10), "USD")
	assert.ErrorIs(t, err, ErrRateSourceUnavailable)
}

func TestCacheRespectsTTL(t *testing.T) {
	source := &stubSource{rates: map[string]decimal.Decimal{
		"usd": decimal.NewFromInt(1),
	}}
	c := newTestConverter(source)

	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	_, err := c.Convert(context.Background(), decimal.NewFromInt(1), "USD")
	require.NoError(t, err)
	assert.Equal(t, 1, source.fetches)

	// Within the TTL the cache is reused.
	current = current.Add(59 * time.Minute)
	_, err = c.Convert(context.Background(), decimal.NewFromInt(1), "USD")
	require.NoError(t, err)
	assert.Equal(t, 1, source.fetches)

	// Past the TTL the next conversion refreshes synchronously.
	current = current.Add(2 * time.Minute)
	_, err = c.Convert(context.Background(), decimal.NewFromInt(1), "USD")
	require.NoError(t, err)
	assert.Equal(t, 2, source.fetches)
}

func TestSupports(t *testing.T) {
	source := &stubSource{rates: map[string]decimal.Decimal{
		"usd": decimal.NewFromInt(1),
	}}
	c := newTestConverter(source)

	ok, err := c.Supports(context.Background(), "usd")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Supports(context.Background(), "AED")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Supports(context.Background(), "XTS")
	require.NoError(t, err)
	assert.False(t, ok)
}
