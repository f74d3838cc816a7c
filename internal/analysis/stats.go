package analysis

import (
	"math"
	"sort"

	"microgrid-planner/internal/model"
)

// computeStats summarizes an hourly series with min/max/mean plus the
// 5th and 95th percentiles, the bands most useful for sizing reviews.
func computeStats(series []float64) model.SeriesStats {
	s := model.SeriesStats{}
	if len(series) == 0 {
		return s
	}
	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	vals := make([]float64, 0, len(series))
	for _, v := range series {
		vals = append(vals, v)
		sum += v
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
		}
	}
	sort.Float64s(vals)
	s.Min = minv
	s.Max = maxv
	s.Mean = sum / float64(len(vals))
	s.P05 = percentileSorted(vals, 0.05)
	s.P95 = percentileSorted(vals, 0.95)
	return s
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
