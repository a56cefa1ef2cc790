package collector

import (
	"context"
	"time"

	"MarketLens/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price      float64
	Bars       []model.OHLCV
	Profile    model.CompanyProfile
	HistoryErr error
	ProfileErr error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(_ context.Context, _ string, _ model.Period) ([]model.OHLCV, error) {
	if m.HistoryErr != nil {
		return nil, m.HistoryErr
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	return GenerateBars(m.Price, 60), nil
}

func (m *MockFetcher) FetchQuote(_ context.Context, _ string) (float64, error) {
	return m.Price, nil
}

func (m *MockFetcher) FetchProfile(_ context.Context, symbol string) (model.CompanyProfile, error) {
	if m.ProfileErr != nil {
		return model.CompanyProfile{}, m.ProfileErr
	}
	if m.Profile.Symbol != "" {
		return m.Profile, nil
	}
	return model.CompanyProfile{Symbol: symbol}, nil
}

// GenerateBars builds a synthetic daily bar sequence drifting around basePrice.
func GenerateBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
