// Package scheduler runs the periodic watchlist scans: fetch, analyze,
// record, broadcast, and alert on signal transitions.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"MarketLens/internal/analyzer"
	"MarketLens/internal/collector"
	"MarketLens/internal/metrics"
	"MarketLens/internal/model"
	"MarketLens/internal/notifier"
	"MarketLens/internal/recorder"
	"MarketLens/internal/watchlist"
)

// Broadcaster pushes scan updates to live stream clients.
type Broadcaster interface {
	Broadcast(v interface{})
}

// Scheduler manages the cron-driven watchlist scans.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Watch     *watchlist.Manager
	Notifier  notifier.Notifier
	Recorder  recorder.Recorder
	Hub       Broadcaster
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
	Symbols   []string
	Period    model.Period
	Ctx       context.Context
}

// New creates a Scheduler.
func New(ctx context.Context, col *collector.Collector, watch *watchlist.Manager, n notifier.Notifier, rec recorder.Recorder, hub Broadcaster, m *metrics.Metrics, logger *zap.Logger, symbols []string, period model.Period) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Watch:     watch,
		Notifier:  n,
		Recorder:  rec,
		Hub:       hub,
		Metrics:   m,
		Logger:    logger,
		Symbols:   symbols,
		Period:    period,
		Ctx:       ctx,
	}
}

// RegisterAll registers the scan task.
func (s *Scheduler) RegisterAll(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("scheduler started", zap.Int("symbols", len(s.Symbols)))
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.Logger.Info("scheduler stopped")
}

// RunScanNow executes the scan immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

// streamUpdate is the payload pushed to websocket clients after each scan.
type streamUpdate struct {
	Type    string         `json:"type"`
	At      string         `json:"at"`
	Symbols []symbolUpdate `json:"symbols"`
}

type symbolUpdate struct {
	Symbol   string          `json:"symbol"`
	Analysis *model.Analysis `json:"analysis,omitempty"`
	Error    string          `json:"error,omitempty"`
}

func (s *Scheduler) scanTask() {
	if len(s.Symbols) == 0 {
		return
	}
	s.Logger.Info("running watchlist scan", zap.Int("symbols", len(s.Symbols)))

	results := make([]notifier.ScanResult, 0, len(s.Symbols))
	updates := make([]symbolUpdate, 0, len(s.Symbols))

	for _, symbol := range s.Symbols {
		series, _, err := s.Collector.Analyze(s.Ctx, symbol, s.Period)
		if err != nil {
			s.Logger.Error("scan fetch failed", zap.String("symbol", symbol), zap.Error(err))
			results = append(results, notifier.ScanResult{Symbol: symbol, Err: err})
			updates = append(updates, symbolUpdate{Symbol: symbol, Error: err.Error()})
			continue
		}

		analysis := analyzer.BuildAnalysis(series)
		results = append(results, notifier.ScanResult{Symbol: symbol, Analysis: analysis})
		a := analysis
		updates = append(updates, symbolUpdate{Symbol: symbol, Analysis: &a})

		prev := s.Watch.State(symbol)
		events, cur := analyzer.ScanSymbol(prev, series)
		s.Watch.Update(symbol, cur)

		s.recordSnapshot(symbol, series, analysis, events)

		for _, ev := range events {
			s.Metrics.ScanEventsTotal.WithLabelValues(string(ev.Kind)).Inc()
			s.trySend(notifier.FormatSignalAlert(ev))
		}
	}

	s.Hub.Broadcast(streamUpdate{
		Type:    "watchlist_scan",
		At:      time.Now().Format(time.RFC3339),
		Symbols: updates,
	})
	s.trySend(notifier.FormatScanReport(results))
}

func (s *Scheduler) recordSnapshot(symbol string, series *model.IndicatorSeries, a model.Analysis, events []model.SignalEvent) {
	rsi := 0.0
	if a.RSI.CurrentRSI != nil {
		rsi = *a.RSI.CurrentRSI
	} else if len(events) > 0 {
		rsi = events[0].RSI
	}
	vwap := 0.0
	if a.VWAP.CurrentVWAP != nil {
		vwap = *a.VWAP.CurrentVWAP
	}
	snap := &recorder.AnalysisSnapshot{
		Symbol:         symbol,
		Timestamp:      series.FetchedAt,
		Price:          a.MovingAverages.LatestPrice,
		MA50:           a.MovingAverages.Latest50MA,
		MA200:          a.MovingAverages.Latest200MA,
		RSI:            rsi,
		VWAP:           vwap,
		GoldenCross:    a.MovingAverages.IsGoldenCross,
		Overbought:     a.RSI.IsOverbought,
		Oversold:       a.RSI.IsOversold,
		PriceAboveVWAP: a.VWAP.PriceAboveVWAP,
	}
	if err := s.Recorder.RecordSnapshot(snap); err != nil {
		s.Logger.Error("record snapshot", zap.String("symbol", symbol), zap.Error(err))
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.Logger.Error("send notification", zap.Error(err))
	}
}
