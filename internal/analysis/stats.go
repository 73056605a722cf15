package analysis

import "math"

type Summary struct {
	Mean   float64
	Min    float64
	Max    float64
	StdDev float64
}

// Summarize returns the zero Summary for an empty series.
func Summarize(series []float64) Summary {
	if len(series) == 0 {
		return Summary{}
	}

	s := Summary{Min: series[0], Max: series[0]}
	sum := 0.0
	for _, v := range series {
		sum += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean = sum / float64(len(series))

	variance := 0.0
	for _, v := range series {
		d := v - s.Mean
		variance += d * d
	}
	s.StdDev = math.Sqrt(variance / float64(len(series)))
	return s
}

// DominantPeriod is the period in ticks of the strongest non-zero frequency
// after removing the mean. It returns 0 when the series has no oscillation.
func DominantPeriod(series []float64) float64 {
	if len(series) < 2 {
		return 0
	}

	mean := Summarize(series).Mean
	centered := make([]float64, len(series))
	for i, v := range series {
		centered[i] = v - mean
	}

	padded := PadPow2(centered)
	ps := PowerSpectrum(padded)

	maxPower := 1e-9
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return 0
	}
	return float64(len(padded)) / float64(maxIdx)
}
