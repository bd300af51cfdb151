package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RateSource fetches exchange rates relative to a base currency.
// Called at most once per cache TTL window.
type RateSource interface {
	FetchRates(ctx context.Context, baseCurrency string) (map[string]decimal.Decimal, error)
}

// HTTPRateSource reads the public currency-api JSON feed, shaped as
// {"date": "...", "<base>": {"usd": 3.67, ...}} with lower-case codes.
type HTTPRateSource struct {
	url    string
	client *http.Client
}

func NewHTTPRateSource(url string) *HTTPRateSource {
	return &HTTPRateSource{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *HTTPRateSource) FetchRates(ctx context.Context, baseCurrency string) (map[string]decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build rate request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate source returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read rate response: %w", err)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode rate response: %w", err)
	}

	raw, ok := payload[strings.ToLower(baseCurrency)]
	if !ok {
		return nil, fmt.Errorf("rate response has no %q table", strings.ToLower(baseCurrency))
	}

	var rates map[string]decimal.Decimal
	if err := json.Unmarshal(raw, &rates); err != nil {
		return nil, fmt.Errorf("decode rate table: %w", err)
	}

	return rates, nil
}
