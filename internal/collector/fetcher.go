package collector

import (
	"context"

	"MarketLens/internal/model"
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchHistory(ctx context.Context, symbol string, period model.Period) ([]model.OHLCV, error)
	FetchQuote(ctx context.Context, symbol string) (float64, error)
	FetchProfile(ctx context.Context, symbol string) (model.CompanyProfile, error)
	Name() string
}
