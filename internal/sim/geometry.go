package sim

import "math"

// circleHitsRect reports whether the disk at (cx, cy) with radius r overlaps
// the rectangle with origin (x, y) and size w x h. Touching is not overlap.
func circleHitsRect(cx, cy, r, x, y, w, h float64) bool {
	if w <= 0 || h <= 0 || r <= 0 {
		return false
	}
	nx := math.Max(x, math.Min(cx, x+w))
	ny := math.Max(y, math.Min(cy, y+h))
	dx, dy := cx-nx, cy-ny
	return dx*dx+dy*dy < r*r
}

// EdgeWidth is the stroke width of an edge of length d under the given
// threshold: thickness at d = 0, falling linearly to 0 at d = threshold.
func EdgeWidth(d, threshold, thickness float64) float64 {
	return thickness * (1 - d/threshold)
}

// reflect returns the new headings of two collided particles. Both results
// are computed from the original pair.
func reflect(a1, a2 float64) (float64, float64) {
	return 2*a2 - a1, 2*a1 - a2
}
