package analysis

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		series []float64
		want   Summary
	}{
		{"empty", nil, Summary{}},
		{"single", []float64{3}, Summary{Mean: 3, Min: 3, Max: 3}},
		{"spread", []float64{2, 4, 4, 4, 5, 5, 7, 9}, Summary{Mean: 5, Min: 2, Max: 9, StdDev: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.series)
			if math.Abs(got.Mean-tt.want.Mean) > 1e-9 ||
				got.Min != tt.want.Min ||
				got.Max != tt.want.Max ||
				math.Abs(got.StdDev-tt.want.StdDev) > 1e-9 {
				t.Errorf("Summarize(%v) = %+v, want %+v", tt.series, got, tt.want)
			}
		})
	}
}

func TestPadPow2(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 1},
		{1, 1},
		{5, 8},
		{64, 64},
		{65, 128},
	}
	for _, tt := range tests {
		if got := len(PadPow2(make([]float64, tt.in))); got != tt.want {
			t.Errorf("PadPow2(len %d) has len %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPowerSpectrum_Peak(t *testing.T) {
	data := make([]float64, 32)
	for i := range data {
		data[i] = math.Cos(2 * math.Pi * 2 * float64(i) / 32)
	}

	ps := PowerSpectrum(data)
	if len(ps) != 16 {
		t.Fatalf("expected 16 bins, got %d", len(ps))
	}
	if math.Abs(ps[2]-16) > 1e-9 {
		t.Errorf("expected peak 16 at bin 2, got %f", ps[2])
	}
}

func TestDominantPeriod(t *testing.T) {
	series := make([]float64, 64)
	for i := range series {
		series[i] = 10 + 3*math.Sin(2*math.Pi*float64(i)/16)
	}

	if got := DominantPeriod(series); math.Abs(got-16) > 1e-9 {
		t.Errorf("expected period 16, got %f", got)
	}
}

func TestDominantPeriod_Flat(t *testing.T) {
	if got := DominantPeriod([]float64{4, 4, 4, 4}); got != 0 {
		t.Errorf("expected 0 for a flat series, got %f", got)
	}
	if got := DominantPeriod([]float64{1}); got != 0 {
		t.Errorf("expected 0 for a single sample, got %f", got)
	}
}
