package calculator

import (
	"math"
	"testing"
)

func TestRSISeries_WarmupIsNaN(t *testing.T) {
	closes := []float64{10, 11, 12, 13, 14, 15}
	out, err := RSISeries(closes, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 3; i++ {
		if !math.IsNaN(out[i]) {
			t.Errorf("position %d: expected NaN during warmup, got %v", i, out[i])
		}
	}
	if math.IsNaN(out[3]) {
		t.Error("position 3: expected defined RSI after warmup")
	}
}

func TestRSISeries_AllGainsIs100(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}
	out, err := RSISeries(closes, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 2; i < len(out); i++ {
		if !almostEqual(out[i], 100) {
			t.Errorf("position %d: expected 100 with zero losses, got %v", i, out[i])
		}
	}
}

func TestRSISeries_FlatWindowIsNaN(t *testing.T) {
	closes := []float64{10, 10, 10, 10, 10, 10}
	out, err := RSISeries(closes, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 3; i < len(out); i++ {
		if !math.IsNaN(out[i]) {
			t.Errorf("position %d: flat window is 0/0, expected NaN, got %v", i, out[i])
		}
	}
}

func TestRSISeries_BalancedIs50(t *testing.T) {
	closes := []float64{10, 11, 10, 11, 10}
	out, err := RSISeries(closes, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 2; i < len(out); i++ {
		if !almostEqual(out[i], 50) {
			t.Errorf("position %d: expected 50 for equal gains/losses, got %v", i, out[i])
		}
	}
}

func TestRSISeries_Bounded(t *testing.T) {
	closes := []float64{50, 53, 49, 55, 48, 60, 45, 62, 44, 63, 61, 64, 60, 66, 58}
	out, err := RSISeries(closes, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range out {
		if math.IsNaN(v) {
			continue
		}
		if v < 0 || v > 100 {
			t.Errorf("position %d: RSI %v outside [0,100]", i, v)
		}
	}
}

func TestRSISeries_InvalidPeriod(t *testing.T) {
	if _, err := RSISeries([]float64{1, 2}, 0); err == nil {
		t.Error("expected error for non-positive period")
	}
}

func TestCalculateRSI_InsufficientDataDefaults(t *testing.T) {
	got, err := CalculateRSI([]float64{10, 11}, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got, 50) {
		t.Errorf("expected default 50, got %v", got)
	}
}

func TestCalculateRSI_AllGains(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = float64(100 + i)
	}
	got, err := CalculateRSI(closes, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got, 100) {
		t.Errorf("expected 100 with zero losses, got %v", got)
	}
}
