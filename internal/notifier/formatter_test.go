package notifier

import (
	"errors"
	"strings"
	"testing"
	"time"

	"MarketLens/internal/model"
)

func TestFormatSignalAlert(t *testing.T) {
	at := time.Date(2024, 6, 1, 22, 0, 0, 0, time.UTC)

	cases := []struct {
		kind model.SignalKind
		want []string
	}{
		{model.SignalGoldenCross, []string{"Golden cross", "AAPL", "crossed above"}},
		{model.SignalDeathCross, []string{"Death cross", "AAPL", "crossed below"}},
		{model.SignalOverbought, []string{"Overbought", "above 70"}},
		{model.SignalOversold, []string{"Oversold", "below 30"}},
	}
	for _, c := range cases {
		msg := FormatSignalAlert(model.SignalEvent{
			Symbol: "AAPL", Kind: c.kind,
			Price: 195.5, RSI: 72, MA50: 190, MA200: 180, At: at,
		})
		for _, w := range c.want {
			if !strings.Contains(msg, w) {
				t.Errorf("%s: message missing %q:\n%s", c.kind, w, msg)
			}
		}
		if !strings.Contains(msg, "195.50") {
			t.Errorf("%s: message missing price:\n%s", c.kind, msg)
		}
		if !strings.Contains(msg, "2024-06-01 22:00") {
			t.Errorf("%s: message missing timestamp:\n%s", c.kind, msg)
		}
	}
}

func TestFormatScanReport(t *testing.T) {
	rsi := 65.0
	vwap := 190.0
	results := []ScanResult{
		{
			Symbol: "AAPL",
			Analysis: model.Analysis{
				MovingAverages: model.MovingAverageAnalysis{LatestPrice: 195.5, IsGoldenCross: true},
				RSI:            model.RSIAnalysis{CurrentRSI: &rsi},
				VWAP:           model.VWAPAnalysis{CurrentVWAP: &vwap, PriceAboveVWAP: true},
			},
		},
		{Symbol: "NOPE", Err: errors.New("no data")},
	}

	msg := FormatScanReport(results)
	for _, w := range []string{"Watchlist scan", "AAPL", "195.50", "MA50 above MA200", "RSI 65", "above VWAP", "NOPE", "no data"} {
		if !strings.Contains(msg, w) {
			t.Errorf("report missing %q:\n%s", w, msg)
		}
	}
}

func TestFormatScanReport_NoIndicators(t *testing.T) {
	results := []ScanResult{{
		Symbol: "THIN",
		Analysis: model.Analysis{
			MovingAverages: model.MovingAverageAnalysis{LatestPrice: 10},
		},
	}}
	msg := FormatScanReport(results)
	if strings.Contains(msg, "RSI") || strings.Contains(msg, "VWAP") {
		t.Errorf("missing indicators should be omitted:\n%s", msg)
	}
	if !strings.Contains(msg, "MA50 below MA200") {
		t.Errorf("trend line missing:\n%s", msg)
	}
}
