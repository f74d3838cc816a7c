// Package generation converts weather series and asset specifications
// into hourly power output. Pure functions of their inputs: no caching,
// no I/O, identical inputs always give identical series.
package generation

import (
	"microgrid-planner/internal/model"
)

// Output holds the hourly generation series, split by technology.
// All slices have the site horizon length.
type Output struct {
	SolarKW []float64
	WindKW  []float64
	TotalKW []float64
}

// Run produces hourly output for every asset against the site weather.
// Per-technology series are summed across assets of that technology.
func Run(site model.SiteProfile, assets []model.GenerationAsset) (*Output, error) {
	if err := site.Validate(); err != nil {
		return nil, err
	}
	for _, a := range assets {
		if err := a.Validate(); err != nil {
			return nil, err
		}
	}

	h := site.Hours()
	out := &Output{
		SolarKW: make([]float64, h),
		WindKW:  make([]float64, h),
		TotalKW: make([]float64, h),
	}

	for _, a := range assets {
		switch a.Technology {
		case model.TechSolar:
			addSolar(out.SolarKW, site, a)
		case model.TechWind:
			addWind(out.WindKW, site, a)
		}
	}
	for t := 0; t < h; t++ {
		out.TotalKW[t] = out.SolarKW[t] + out.WindKW[t]
	}
	return out, nil
}
