// Package analyzer turns computed indicator series into the analysis report
// served by the API and into alert-worthy signal events for watchlist scans.
package analyzer

import (
	"math"
	"time"

	"MarketLens/internal/calculator"
	"MarketLens/internal/collector"
	"MarketLens/internal/model"
)

// Standard RSI alert thresholds.
const (
	OverboughtRSI = 70.0
	OversoldRSI   = 30.0
)

// BuildReport assembles the full API report from indicator series and the
// company profile.
func BuildReport(series *model.IndicatorSeries, profile model.CompanyProfile) *model.Report {
	n := len(series.Bars)
	dates := make([]string, n)
	price := make([]float64, n)
	volume := make([]float64, n)
	for i, b := range series.Bars {
		dates[i] = b.Time.Format("2006-01-02")
		price[i] = b.Close
		volume[i] = b.Volume
	}

	return &model.Report{
		Metadata: model.Metadata{
			Ticker:      series.Symbol,
			CompanyName: profile.CompanyName,
			Sector:      orNA(profile.Sector),
			Industry:    orNA(profile.Industry),
			DataPoints:  n,
			StartDate:   dates[0],
			EndDate:     dates[n-1],
		},
		Timeseries: model.Timeseries{
			Dates:        dates,
			Price:        price,
			Volume:       volume,
			FiftyMA:      series.MA50,
			TwoHundredMA: series.MA200,
			RSI:          model.NullableSeries(series.RSI),
			VWAP:         model.NullableSeries(series.VWAP),
		},
		Analysis: BuildAnalysis(series),
	}
}

// BuildAnalysis summarizes the latest indicator readings.
func BuildAnalysis(series *model.IndicatorSeries) model.Analysis {
	latestPrice := series.LatestClose()
	latest50 := lastValue(series.MA50)
	latest200 := lastValue(series.MA200)

	ma := model.MovingAverageAnalysis{
		LatestPrice:     latestPrice,
		Latest50MA:      latest50,
		Latest200MA:     latest200,
		IsGoldenCross:   latest50 > latest200,
		PriceAbove50MA:  latestPrice > latest50,
		PriceAbove200MA: latestPrice > latest200,
		Crossovers:      crossovers(series),
	}

	rsi := model.RSIAnalysis{}
	if v, ok := lastDefined(series.RSI); ok {
		rsi.CurrentRSI = &v
		rsi.IsOverbought = v > OverboughtRSI
		rsi.IsOversold = v < OversoldRSI
	}

	vwap := model.VWAPAnalysis{}
	if v, ok := lastDefined(series.VWAP); ok {
		vwap.CurrentVWAP = &v
		vwap.PriceAboveVWAP = latestPrice > v
	}

	return model.Analysis{MovingAverages: ma, RSI: rsi, VWAP: vwap}
}

// ScanSymbol compares the latest analysis against the previous scan state
// and returns the alert-worthy transitions. The first scan for a symbol
// establishes a baseline and never fires events.
func ScanSymbol(prev model.SymbolState, series *model.IndicatorSeries) ([]model.SignalEvent, model.SymbolState) {
	latestPrice := series.LatestClose()
	golden := lastValue(series.MA50) > lastValue(series.MA200)

	rsiVal, ok := lastDefined(series.RSI)
	if !ok {
		// Not enough lookback in the scan window, fall back to the
		// Wilder calculation over everything we have.
		rsiVal, _ = calculator.CalculateRSI(series.Closes(), collector.RSIPeriod)
	}
	zone := model.ClassifyRSI(rsiVal)

	cur := model.SymbolState{
		GoldenCross: golden,
		RSIZone:     zone,
		LastPrice:   latestPrice,
		LastScanAt:  series.FetchedAt,
	}

	if prev.LastScanAt.IsZero() {
		return nil, cur
	}

	var events []model.SignalEvent
	base := model.SignalEvent{
		Symbol: series.Symbol,
		Price:  latestPrice,
		RSI:    rsiVal,
		MA50:   lastValue(series.MA50),
		MA200:  lastValue(series.MA200),
		At:     series.FetchedAt,
	}

	if golden != prev.GoldenCross {
		ev := base
		ev.Kind = model.SignalDeathCross
		if golden {
			ev.Kind = model.SignalGoldenCross
		}
		events = append(events, ev)
	}

	if zone != prev.RSIZone {
		switch zone {
		case model.ZoneOverbought:
			ev := base
			ev.Kind = model.SignalOverbought
			events = append(events, ev)
		case model.ZoneOversold:
			ev := base
			ev.Kind = model.SignalOversold
			events = append(events, ev)
		}
	}

	return events, cur
}

func crossovers(series *model.IndicatorSeries) []model.CrossoverEvent {
	times := make([]time.Time, len(series.Bars))
	for i, b := range series.Bars {
		times[i] = b.Time
	}
	return calculator.DetectCrossovers(times, series.MA50, series.MA200)
}

func lastValue(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return xs[len(xs)-1]
}

// lastDefined returns the final value of a series, reporting false when the
// series is empty or ends in NaN.
func lastDefined(xs []float64) (float64, bool) {
	if len(xs) == 0 {
		return 0, false
	}
	v := xs[len(xs)-1]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
