package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// TypicalPrice returns (High+Low+Close)/3, the price used for VWAP weighting.
func (b OHLCV) TypicalPrice() float64 {
	return (b.High + b.Low + b.Close) / 3.0
}

// CompanyProfile holds descriptive company information for a ticker.
type CompanyProfile struct {
	Symbol      string
	CompanyName string
	Sector      string
	Industry    string
}

// IndicatorSeries holds the fetched bars and all derived indicator series
// for one symbol. All slices are aligned to Bars; positions where an
// indicator is not yet defined hold NaN.
type IndicatorSeries struct {
	Symbol    string
	Period    Period
	Bars      []OHLCV
	MA50      []float64
	MA200     []float64
	RSI       []float64
	VWAP      []float64
	FetchedAt time.Time
}

// Closes returns the close prices of all bars.
func (s *IndicatorSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// LatestClose returns the most recent close price, or 0 if there are no bars.
func (s *IndicatorSeries) LatestClose() float64 {
	if len(s.Bars) == 0 {
		return 0
	}
	return s.Bars[len(s.Bars)-1].Close
}
