package generation

import "microgrid-planner/internal/model"

// PowerCurve maps wind speed to an output fraction of nameplate capacity.
// Implementations must be deterministic.
type PowerCurve interface {
	Name() string
	// Fraction returns output in [0, 1] for a wind speed in m/s.
	Fraction(speedMs float64) float64
}

// curveFor picks the interpolation strategy for an asset. The default is
// linear, matching the simplest published manufacturer curves.
func curveFor(a model.GenerationAsset) PowerCurve {
	switch a.Curve {
	case model.CurveCubic:
		return &CubicCurve{CutIn: a.CutInSpeedMs, Rated: a.RatedSpeedMs, CutOut: a.CutOutSpeedMs}
	default:
		return &LinearCurve{CutIn: a.CutInSpeedMs, Rated: a.RatedSpeedMs, CutOut: a.CutOutSpeedMs}
	}
}

// addWind accumulates one wind asset's hourly output into dst.
//
// Three regimes plus safety shutdown: zero below cut-in, interpolated
// between cut-in and rated, flat at capacity to cut-out, zero above.
func addWind(dst []float64, site model.SiteProfile, a model.GenerationAsset) {
	curve := curveFor(a)
	for t := range dst {
		dst[t] += a.CapacityKW * curve.Fraction(site.WindSpeedMs[t])
	}
}

// LinearCurve interpolates linearly between cut-in and rated speed.
type LinearCurve struct {
	CutIn  float64
	Rated  float64
	CutOut float64
}

func (c *LinearCurve) Name() string { return "linear" }

func (c *LinearCurve) Fraction(speedMs float64) float64 {
	switch {
	case speedMs < c.CutIn:
		return 0
	case speedMs < c.Rated:
		return (speedMs - c.CutIn) / (c.Rated - c.CutIn)
	case speedMs <= c.CutOut:
		return 1
	default:
		return 0 // safety shutdown
	}
}

// CubicCurve interpolates with the cube of the normalized speed between
// cut-in and rated, tracking the v³ wind power density.
type CubicCurve struct {
	CutIn  float64
	Rated  float64
	CutOut float64
}

func (c *CubicCurve) Name() string { return "cubic" }

func (c *CubicCurve) Fraction(speedMs float64) float64 {
	switch {
	case speedMs < c.CutIn:
		return 0
	case speedMs < c.Rated:
		x := (speedMs - c.CutIn) / (c.Rated - c.CutIn)
		return x * x * x
	case speedMs <= c.CutOut:
		return 1
	default:
		return 0 // safety shutdown
	}
}
