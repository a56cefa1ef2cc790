package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"MarketLens/internal/calculator"
	"MarketLens/internal/model"
)

// Indicator windows used for every analysis.
const (
	FastMAWindow = 50
	SlowMAWindow = 200
	RSIPeriod    = 14
)

// ErrNoData indicates the upstream returned no bars for the symbol.
var ErrNoData = errors.New("no data for symbol")

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Fetcher Fetcher
	Logger  *zap.Logger
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, logger *zap.Logger) *Collector {
	return &Collector{Fetcher: fetcher, Logger: logger}
}

// Analyze fetches history for the symbol and computes all indicator series.
// A profile fetch failure degrades to symbol-only metadata; an empty history
// is ErrNoData.
func (c *Collector) Analyze(ctx context.Context, symbol string, period model.Period) (*model.IndicatorSeries, model.CompanyProfile, error) {
	bars, err := c.Fetcher.FetchHistory(ctx, symbol, period)
	if err != nil {
		return nil, model.CompanyProfile{}, fmt.Errorf("fetch history: %w", err)
	}
	if len(bars) == 0 {
		return nil, model.CompanyProfile{}, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	profile, err := c.Fetcher.FetchProfile(ctx, symbol)
	if err != nil {
		c.Logger.Warn("profile fetch failed, using symbol only",
			zap.String("symbol", symbol), zap.Error(err))
		profile = model.CompanyProfile{Symbol: symbol}
	}

	series := &model.IndicatorSeries{
		Symbol:    symbol,
		Period:    period,
		Bars:      bars,
		FetchedAt: time.Now(),
	}

	closes := series.Closes()
	if series.MA50, err = calculator.SMASeries(closes, FastMAWindow); err != nil {
		return nil, profile, fmt.Errorf("ma50: %w", err)
	}
	if series.MA200, err = calculator.SMASeries(closes, SlowMAWindow); err != nil {
		return nil, profile, fmt.Errorf("ma200: %w", err)
	}
	if series.RSI, err = calculator.RSISeries(closes, RSIPeriod); err != nil {
		return nil, profile, fmt.Errorf("rsi: %w", err)
	}
	series.VWAP = calculator.VWAPSeries(bars)

	c.Logger.Debug("analysis computed",
		zap.String("symbol", symbol),
		zap.String("period", period.String()),
		zap.Int("bars", len(bars)),
		zap.String("source", c.Fetcher.Name()))

	return series, profile, nil
}
