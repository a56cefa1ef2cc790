package model

import "math"

// Report is the full analysis payload returned by the stock endpoint.
type Report struct {
	Metadata   Metadata   `json:"metadata"`
	Timeseries Timeseries `json:"timeseries"`
	Analysis   Analysis   `json:"analysis"`
}

// Metadata describes the company and the analyzed data window.
type Metadata struct {
	Ticker      string `json:"ticker"`
	CompanyName string `json:"company_name"`
	Sector      string `json:"sector"`
	Industry    string `json:"industry"`
	DataPoints  int    `json:"data_points"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// Timeseries carries the per-bar price, volume, and indicator series.
// Indicator positions without enough lookback are null.
type Timeseries struct {
	Dates        []string   `json:"dates"`
	Price        []float64  `json:"price"`
	Volume       []float64  `json:"volume"`
	FiftyMA      []float64  `json:"fifty_ma"`
	TwoHundredMA []float64  `json:"twohundred_ma"`
	RSI          []*float64 `json:"rsi"`
	VWAP         []*float64 `json:"vwap"`
}

// Analysis summarizes the latest indicator readings.
type Analysis struct {
	MovingAverages MovingAverageAnalysis `json:"moving_averages"`
	RSI            RSIAnalysis           `json:"rsi"`
	VWAP           VWAPAnalysis          `json:"vwap"`
}

// MovingAverageAnalysis compares the latest price against the 50- and 200-bar
// simple moving averages.
type MovingAverageAnalysis struct {
	LatestPrice     float64          `json:"latest_price"`
	Latest50MA      float64          `json:"latest_50ma"`
	Latest200MA     float64          `json:"latest_200ma"`
	IsGoldenCross   bool             `json:"is_golden_cross"`
	PriceAbove50MA  bool             `json:"price_above_50ma"`
	PriceAbove200MA bool             `json:"price_above_200ma"`
	Crossovers      []CrossoverEvent `json:"crossovers,omitempty"`
}

// RSIAnalysis holds the latest RSI reading. CurrentRSI is nil when the
// window is too short for the RSI lookback.
type RSIAnalysis struct {
	CurrentRSI   *float64 `json:"current_rsi"`
	IsOverbought bool     `json:"is_overbought"`
	IsOversold   bool     `json:"is_oversold"`
}

// VWAPAnalysis compares the latest price against the session VWAP.
type VWAPAnalysis struct {
	CurrentVWAP    *float64 `json:"current_vwap"`
	PriceAboveVWAP bool     `json:"price_above_vwap"`
}

// CrossoverEvent marks a point where the fast MA crossed the slow MA.
type CrossoverEvent struct {
	Date string        `json:"date"`
	Type CrossoverType `json:"type"`
}

// CrossoverType labels the direction of a moving average crossover.
type CrossoverType string

const (
	GoldenCross CrossoverType = "golden_cross"
	DeathCross  CrossoverType = "death_cross"
)

// NullableSeries converts a series with NaN gaps into pointers, mapping NaN
// to nil so the wire format carries null instead of an invalid JSON token.
func NullableSeries(xs []float64) []*float64 {
	out := make([]*float64, len(xs))
	for i, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		v := x
		out[i] = &v
	}
	return out
}
