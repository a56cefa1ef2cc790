package model

import "time"

// SignalKind indicates what kind of transition a watchlist scan detected.
type SignalKind string

const (
	SignalGoldenCross SignalKind = "GOLDEN_CROSS"
	SignalDeathCross  SignalKind = "DEATH_CROSS"
	SignalOverbought  SignalKind = "OVERBOUGHT"
	SignalOversold    SignalKind = "OVERSOLD"
)

// RSIZone buckets an RSI reading into the standard alert zones.
type RSIZone string

const (
	ZoneOverbought RSIZone = "overbought" // RSI > 70
	ZoneOversold   RSIZone = "oversold"   // RSI < 30
	ZoneNeutral    RSIZone = "neutral"
)

// ClassifyRSI maps an RSI value to its zone.
func ClassifyRSI(rsi float64) RSIZone {
	switch {
	case rsi > 70:
		return ZoneOverbought
	case rsi < 30:
		return ZoneOversold
	default:
		return ZoneNeutral
	}
}

// SignalEvent is an alert-worthy transition found during a watchlist scan.
type SignalEvent struct {
	Symbol string
	Kind   SignalKind
	Price  float64
	RSI    float64
	MA50   float64
	MA200  float64
	At     time.Time
}

// SymbolState is the per-symbol signal state remembered between scans so
// alerts fire only on transitions, not on every scan.
type SymbolState struct {
	GoldenCross bool      `json:"golden_cross"`
	RSIZone     RSIZone   `json:"rsi_zone"`
	LastPrice   float64   `json:"last_price"`
	LastScanAt  time.Time `json:"last_scan_at"`
}

// WatchState is the persisted state for all watched symbols.
type WatchState struct {
	Symbols   map[string]SymbolState `json:"symbols"`
	UpdatedAt time.Time              `json:"updated_at"`
}
