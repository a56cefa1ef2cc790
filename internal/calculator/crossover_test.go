package calculator

import (
	"math"
	"testing"
	"time"

	"MarketLens/internal/model"
)

func days(n int) []time.Time {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = base.AddDate(0, 0, i)
	}
	return out
}

func TestDetectCrossovers_Golden(t *testing.T) {
	fast := []float64{9, 9.5, 10.5, 11}
	slow := []float64{10, 10, 10, 10}
	events := DetectCrossovers(days(4), fast, slow)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != model.GoldenCross {
		t.Errorf("expected golden cross, got %s", events[0].Type)
	}
	if events[0].Date != "2024-01-03" {
		t.Errorf("expected 2024-01-03, got %s", events[0].Date)
	}
}

func TestDetectCrossovers_Death(t *testing.T) {
	fast := []float64{11, 10.5, 9.5, 9}
	slow := []float64{10, 10, 10, 10}
	events := DetectCrossovers(days(4), fast, slow)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != model.DeathCross {
		t.Errorf("expected death cross, got %s", events[0].Type)
	}
}

func TestDetectCrossovers_TouchThenCross(t *testing.T) {
	// Equal values count as "at or below", so the move off the touch is a cross.
	fast := []float64{10, 10, 11}
	slow := []float64{10, 10, 10}
	events := DetectCrossovers(days(3), fast, slow)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != model.GoldenCross {
		t.Errorf("expected golden cross, got %s", events[0].Type)
	}
}

func TestDetectCrossovers_SkipsNaN(t *testing.T) {
	nan := math.NaN()
	fast := []float64{nan, 9, 11}
	slow := []float64{10, 10, 10}
	events := DetectCrossovers(days(3), fast, slow)
	if len(events) != 1 {
		t.Fatalf("expected 1 event (NaN pair skipped), got %d", len(events))
	}
}

func TestDetectCrossovers_NoCross(t *testing.T) {
	fast := []float64{11, 12, 13}
	slow := []float64{10, 10, 10}
	if events := DetectCrossovers(days(3), fast, slow); len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}
}
