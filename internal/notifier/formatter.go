package notifier

import (
	"fmt"
	"strings"
	"time"

	"MarketLens/internal/model"
)

// FormatSignalAlert formats one watchlist signal transition for Telegram.
func FormatSignalAlert(ev model.SignalEvent) string {
	var b strings.Builder

	switch ev.Kind {
	case model.SignalGoldenCross:
		b.WriteString(fmt.Sprintf("🌤 <b>Golden cross</b> | %s\n\n", ev.Symbol))
		b.WriteString(fmt.Sprintf("MA50 %.2f crossed above MA200 %.2f\n", ev.MA50, ev.MA200))
	case model.SignalDeathCross:
		b.WriteString(fmt.Sprintf("🌧 <b>Death cross</b> | %s\n\n", ev.Symbol))
		b.WriteString(fmt.Sprintf("MA50 %.2f crossed below MA200 %.2f\n", ev.MA50, ev.MA200))
	case model.SignalOverbought:
		b.WriteString(fmt.Sprintf("⚠️ <b>Overbought</b> | %s\n\n", ev.Symbol))
		b.WriteString(fmt.Sprintf("RSI moved above 70 (now %.0f)\n", ev.RSI))
	case model.SignalOversold:
		b.WriteString(fmt.Sprintf("🎣 <b>Oversold</b> | %s\n\n", ev.Symbol))
		b.WriteString(fmt.Sprintf("RSI moved below 30 (now %.0f)\n", ev.RSI))
	default:
		b.WriteString(fmt.Sprintf("📣 <b>%s</b> | %s\n", ev.Kind, ev.Symbol))
	}

	b.WriteString(fmt.Sprintf("Price: %.2f\n", ev.Price))
	b.WriteString(ev.At.Format("2006-01-02 15:04"))
	return b.String()
}

// FormatScanReport formats a full watchlist scan summary for Telegram.
func FormatScanReport(results []ScanResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>Watchlist scan</b> | %s\n\n", time.Now().Format("2006-01-02")))

	for _, r := range results {
		if r.Err != nil {
			b.WriteString(fmt.Sprintf("❌ %s: %v\n", r.Symbol, r.Err))
			continue
		}
		a := r.Analysis
		trend := "MA50 below MA200"
		if a.MovingAverages.IsGoldenCross {
			trend = "MA50 above MA200"
		}
		b.WriteString(fmt.Sprintf("<b>%s</b>  %.2f\n", r.Symbol, a.MovingAverages.LatestPrice))
		b.WriteString(fmt.Sprintf("  %s", trend))
		if a.RSI.CurrentRSI != nil {
			b.WriteString(fmt.Sprintf(" | RSI %.0f", *a.RSI.CurrentRSI))
		}
		if a.VWAP.CurrentVWAP != nil {
			rel := "below"
			if a.VWAP.PriceAboveVWAP {
				rel = "above"
			}
			b.WriteString(fmt.Sprintf(" | %s VWAP", rel))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ScanResult pairs a symbol with its analysis (or scan error) for reporting.
type ScanResult struct {
	Symbol   string
	Analysis model.Analysis
	Err      error
}
