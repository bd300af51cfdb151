package currency

import "errors"

var (
	// ErrUnsupportedCurrency is returned when the target currency has no
	// rate in the upstream feed.
	ErrUnsupportedCurrency = errors.New("currency not supported")

	// ErrRateSourceUnavailable is returned when the rate refresh fails.
	// This one propagates: silently pricing with stale or zero rates
	// would corrupt every amount downstream.
	ErrRateSourceUnavailable = errors.New("exchange rate source unavailable")
)
