package scheduler

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"MarketLens/internal/collector"
	"MarketLens/internal/metrics"
	"MarketLens/internal/model"
	"MarketLens/internal/recorder"
	"MarketLens/internal/watchlist"
)

type fakeNotifier struct {
	mu   sync.Mutex
	msgs []string
}

func (f *fakeNotifier) SendWithRetry(_ context.Context, text string, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, text)
	return nil
}

func (f *fakeNotifier) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.msgs...)
}

type fakeBroadcaster struct {
	payloads []interface{}
}

func (f *fakeBroadcaster) Broadcast(v interface{}) { f.payloads = append(f.payloads, v) }

type fakeRecorder struct {
	snaps []recorder.AnalysisSnapshot
}

func (f *fakeRecorder) RecordSnapshot(s *recorder.AnalysisSnapshot) error {
	f.snaps = append(f.snaps, *s)
	return nil
}

func (f *fakeRecorder) RecentSnapshots(_ string, _ int) ([]recorder.AnalysisSnapshot, error) {
	return f.snaps, nil
}

func (f *fakeRecorder) Close() error { return nil }

type scanFixture struct {
	sched *Scheduler
	watch *watchlist.Manager
	notes *fakeNotifier
	hub   *fakeBroadcaster
	rec   *fakeRecorder
}

func newScanFixture(t *testing.T, fetcher collector.Fetcher, symbols []string) *scanFixture {
	t.Helper()
	logger := zap.NewNop()
	watch, err := watchlist.NewManager(filepath.Join(t.TempDir(), "state.json"), logger)
	if err != nil {
		t.Fatalf("watchlist manager: %v", err)
	}
	notes := &fakeNotifier{}
	hub := &fakeBroadcaster{}
	rec := &fakeRecorder{}
	col := collector.NewCollector(fetcher, logger)
	sched := New(context.Background(), col, watch, notes, rec, hub, metrics.New(), logger, symbols, model.PeriodHalfYear)
	return &scanFixture{sched: sched, watch: watch, notes: notes, hub: hub, rec: rec}
}

func TestScanTask_FirstScanRecordsAndBroadcastsWithoutAlerts(t *testing.T) {
	fx := newScanFixture(t, &collector.MockFetcher{Price: 100}, []string{"AAPL"})
	fx.sched.RunScanNow()

	if len(fx.rec.snaps) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(fx.rec.snaps))
	}
	snap := fx.rec.snaps[0]
	if snap.Symbol != "AAPL" || snap.Price == 0 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}

	if len(fx.hub.payloads) != 1 {
		t.Fatalf("expected 1 broadcast, got %d", len(fx.hub.payloads))
	}
	update, ok := fx.hub.payloads[0].(streamUpdate)
	if !ok {
		t.Fatalf("unexpected payload type %T", fx.hub.payloads[0])
	}
	if update.Type != "watchlist_scan" || len(update.Symbols) != 1 {
		t.Errorf("unexpected update: %+v", update)
	}
	if update.Symbols[0].Analysis == nil {
		t.Error("broadcast should carry the analysis")
	}

	// First scan establishes a baseline: scan report only, no signal alerts.
	msgs := fx.notes.messages()
	if len(msgs) != 1 {
		t.Fatalf("expected only the scan report, got %d messages: %v", len(msgs), msgs)
	}
	if !strings.Contains(msgs[0], "Watchlist scan") || !strings.Contains(msgs[0], "AAPL") {
		t.Errorf("unexpected report: %s", msgs[0])
	}

	if st := fx.watch.State("AAPL"); st.LastScanAt.IsZero() {
		t.Error("scan state should be recorded")
	}
}

func TestScanTask_AlertsOnGoldenCrossTransition(t *testing.T) {
	// MockFetcher's generated bars trend upward, so the scan observes a
	// golden cross and an overbought RSI.
	fx := newScanFixture(t, &collector.MockFetcher{Price: 100}, []string{"AAPL"})
	fx.watch.Update("AAPL", model.SymbolState{
		GoldenCross: false,
		RSIZone:     model.ZoneOverbought,
		LastScanAt:  time.Now().Add(-24 * time.Hour),
	})

	fx.sched.RunScanNow()

	msgs := fx.notes.messages()
	if len(msgs) != 2 {
		t.Fatalf("expected alert + scan report, got %d messages: %v", len(msgs), msgs)
	}
	if !strings.Contains(msgs[0], "Golden cross") {
		t.Errorf("expected golden cross alert first, got: %s", msgs[0])
	}
	if !strings.Contains(msgs[1], "Watchlist scan") {
		t.Errorf("expected scan report second, got: %s", msgs[1])
	}

	if st := fx.watch.State("AAPL"); !st.GoldenCross {
		t.Error("state should record the new cross position")
	}
}

func TestScanTask_UnchangedStateStaysQuiet(t *testing.T) {
	fx := newScanFixture(t, &collector.MockFetcher{Price: 100}, []string{"AAPL"})
	fx.sched.RunScanNow()
	fx.notes.msgs = nil

	// Same data again: no transitions, so only the scan report goes out.
	fx.sched.RunScanNow()
	msgs := fx.notes.messages()
	if len(msgs) != 1 || !strings.Contains(msgs[0], "Watchlist scan") {
		t.Errorf("repeat scan should only report, got %v", msgs)
	}
}

func TestScanTask_FetchFailureIsReportedNotRecorded(t *testing.T) {
	fx := newScanFixture(t, &collector.MockFetcher{HistoryErr: errors.New("upstream down")}, []string{"BAD"})
	fx.sched.RunScanNow()

	if len(fx.rec.snaps) != 0 {
		t.Errorf("failed fetch must not record a snapshot, got %d", len(fx.rec.snaps))
	}

	update, ok := fx.hub.payloads[0].(streamUpdate)
	if !ok || len(update.Symbols) != 1 {
		t.Fatalf("unexpected broadcast: %+v", fx.hub.payloads)
	}
	if update.Symbols[0].Error == "" {
		t.Error("broadcast entry should carry the fetch error")
	}

	msgs := fx.notes.messages()
	if len(msgs) != 1 || !strings.Contains(msgs[0], "BAD") {
		t.Errorf("scan report should mention the failed symbol, got %v", msgs)
	}
}

func TestScanTask_NoSymbolsIsNoop(t *testing.T) {
	fx := newScanFixture(t, &collector.MockFetcher{Price: 100}, nil)
	fx.sched.RunScanNow()

	if len(fx.hub.payloads) != 0 || len(fx.notes.messages()) != 0 {
		t.Error("empty watchlist must not broadcast or notify")
	}
}
