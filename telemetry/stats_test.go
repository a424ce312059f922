package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeDistribution(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	mean, std, p10, p50, p90 := ComputeDistribution(values)

	if math.Abs(mean-5) > 1e-9 {
		t.Errorf("mean = %v, want 5", mean)
	}
	// Sample variance: 32 / 7.
	if want := math.Sqrt(32.0 / 7); math.Abs(std-want) > 1e-9 {
		t.Errorf("std = %v, want %v", std, want)
	}
	if p50 != 4.5 {
		t.Errorf("p50 = %v, want 4.5", p50)
	}
	if !(p10 <= p50 && p50 <= p90) {
		t.Errorf("percentiles out of order: %v %v %v", p10, p50, p90)
	}
	// Input must not be reordered.
	if values[0] != 2 || values[7] != 9 || values[4] != 5 {
		t.Errorf("input mutated: %v", values)
	}
}

func TestComputeDistributionDegenerate(t *testing.T) {
	mean, std, _, p50, _ := ComputeDistribution(nil)
	if mean != 0 || std != 0 || p50 != 0 {
		t.Errorf("empty: %v %v %v", mean, std, p50)
	}
	mean, std, _, p50, _ = ComputeDistribution([]float64{3})
	if mean != 3 || std != 0 || p50 != 3 {
		t.Errorf("single: %v %v %v", mean, std, p50)
	}
}
