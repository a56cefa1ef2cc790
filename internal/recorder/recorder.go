package recorder

import "time"

// AnalysisSnapshot is one recorded analysis result for a symbol.
type AnalysisSnapshot struct {
	Symbol         string    `json:"symbol"`
	Timestamp      time.Time `json:"timestamp"`
	Price          float64   `json:"price"`
	MA50           float64   `json:"ma50"`
	MA200          float64   `json:"ma200"`
	RSI            float64   `json:"rsi"`
	VWAP           float64   `json:"vwap"`
	GoldenCross    bool      `json:"golden_cross"`
	Overbought     bool      `json:"overbought"`
	Oversold       bool      `json:"oversold"`
	PriceAboveVWAP bool      `json:"price_above_vwap"`
}

// Recorder persists analysis history.
type Recorder interface {
	RecordSnapshot(snap *AnalysisSnapshot) error
	RecentSnapshots(symbol string, limit int) ([]AnalysisSnapshot, error)
	Close() error
}
