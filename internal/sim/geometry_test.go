package sim

import (
	"math"
	"testing"
)

func TestCircleHitsRect(t *testing.T) {
	tests := []struct {
		name string
		cx   float64
		cy   float64
		r    float64
		x, y float64
		w, h float64
		want bool
	}{
		{"center inside rect", 5, 5, 1, 0, 0, 10, 10, true},
		{"overlaps edge", 15, 5, 6, 0, 0, 10, 10, true},
		{"touches edge only", 15, 5, 5, 0, 0, 10, 10, false},
		{"clear of rect", 30, 30, 5, 0, 0, 10, 10, false},
		{"near corner outside", 13, 13, 4, 0, 0, 10, 10, false},
		{"near corner inside", 13, 13, 5, 0, 0, 10, 10, true},
		{"zero size rect", 0, 0, 50, 0, 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := circleHitsRect(tt.cx, tt.cy, tt.r, tt.x, tt.y, tt.w, tt.h); got != tt.want {
				t.Errorf("circleHitsRect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEdgeWidth_Monotonic(t *testing.T) {
	const threshold, thickness = 100.0, 5.5

	if got := EdgeWidth(0, threshold, thickness); got != thickness {
		t.Errorf("EdgeWidth(0) = %v, want %v", got, thickness)
	}
	if got := EdgeWidth(threshold, threshold, thickness); got != 0 {
		t.Errorf("EdgeWidth(threshold) = %v, want 0", got)
	}

	prev := math.Inf(1)
	for d := 0.0; d <= threshold; d += 0.5 {
		w := EdgeWidth(d, threshold, thickness)
		if w >= prev {
			t.Fatalf("width not strictly decreasing at d=%v: %v >= %v", d, w, prev)
		}
		prev = w
	}
}

func TestReflect(t *testing.T) {
	a1, a2 := reflect(0, math.Pi/2)
	if a1 != math.Pi {
		t.Errorf("new a1 = %v, want π", a1)
	}
	if a2 != -math.Pi/2 {
		t.Errorf("new a2 = %v, want -π/2", a2)
	}
}
