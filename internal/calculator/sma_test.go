package calculator

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculateSMA(t *testing.T) {
	prices := []float64{1, 2, 3, 4, 5}
	got, err := CalculateSMA(prices, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got, 4) {
		t.Errorf("expected 4, got %v", got)
	}
}

func TestCalculateSMA_NotEnoughData(t *testing.T) {
	if _, err := CalculateSMA([]float64{1, 2}, 3); err == nil {
		t.Error("expected error for insufficient data")
	}
	if _, err := CalculateSMA([]float64{1, 2}, 0); err == nil {
		t.Error("expected error for non-positive period")
	}
}

func TestSMASeries_ConstantSeries(t *testing.T) {
	values := []float64{7, 7, 7, 7, 7, 7}
	out, err := SMASeries(values, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range out {
		if !almostEqual(v, 7) {
			t.Errorf("position %d: expected 7, got %v", i, v)
		}
	}
}

func TestSMASeries_WarmupUsesPrefix(t *testing.T) {
	values := []float64{2, 4, 6, 8}
	out, err := SMASeries(values, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{2, 3, 4, 6}
	for i := range want {
		if !almostEqual(out[i], want[i]) {
			t.Errorf("position %d: expected %v, got %v", i, want[i], out[i])
		}
	}
}

func TestSMASeries_InvalidWindow(t *testing.T) {
	if _, err := SMASeries([]float64{1}, 0); err == nil {
		t.Error("expected error for non-positive window")
	}
}
