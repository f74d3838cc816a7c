package batch

import (
	"context"
	"log"
	"runtime"
	"sort"
	"sync"

	"github.com/google/uuid"

	"microgrid-planner/internal/analysis"
	"microgrid-planner/internal/model"
	"microgrid-planner/internal/sim"
)

// Case bundles the inputs for one scenario in a batch run.
type Case struct {
	Name      string
	Site      model.SiteProfile
	Load      model.LoadProfile
	Assets    []model.GenerationAsset
	Storage   model.StorageAsset
	Grid      model.GridConnection
	Economics model.EconomicConfig
}

// Outcome is the result of simulating and analyzing one case. Err is
// set when the case failed; Result and KPIs are nil in that event.
type Outcome struct {
	ID     string
	Name   string
	Result *model.SimulationResult
	KPIs   *model.KPISet
	Err    error
}

// Runner executes scenario cases concurrently over a fixed worker pool.
// Cases share no mutable state, so workers only need the input slice
// and their own engine calls.
type Runner struct {
	engine  *sim.Engine
	workers int
}

// NewRunner creates a Runner with the given worker count. A count of
// zero or less defaults to the number of CPUs.
func NewRunner(workers int) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Runner{engine: sim.New(), workers: workers}
}

// Run simulates and analyzes every case, returning outcomes in the
// same order as the input slice. A failed case produces an Outcome
// with Err set; it never aborts the rest of the batch. Run stops
// dispatching new cases once ctx is cancelled.
func (r *Runner) Run(ctx context.Context, cases []Case) []Outcome {
	outcomes := make([]Outcome, len(cases))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				outcomes[idx] = r.runCase(cases[idx])
			}
		}()
	}

	log.Printf("[Batch] Running %d cases across %d workers", len(cases), r.workers)

dispatch:
	for i := range cases {
		select {
		case <-ctx.Done():
			for j := i; j < len(cases); j++ {
				outcomes[j] = Outcome{
					ID:   uuid.NewString(),
					Name: cases[j].Name,
					Err:  ctx.Err(),
				}
			}
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return outcomes
}

func (r *Runner) runCase(c Case) Outcome {
	out := Outcome{ID: uuid.NewString(), Name: c.Name}

	result, err := r.engine.Run(c.Site, c.Load, c.Assets, c.Storage, c.Grid)
	if err != nil {
		log.Printf("[Batch] Case %q failed: %v", c.Name, err)
		out.Err = err
		return out
	}

	kpis, err := analysis.Analyze(result, c.Assets, c.Storage, c.Economics)
	if err != nil {
		log.Printf("[Batch] Case %q analysis failed: %v", c.Name, err)
		out.Err = err
		return out
	}

	out.Result = result
	out.KPIs = kpis
	return out
}

// RankByNPV filters out failed outcomes and sorts the remainder
// descending by net present value.
func RankByNPV(outcomes []Outcome) []Outcome {
	ranked := make([]Outcome, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err != nil {
			continue
		}
		ranked = append(ranked, o)
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].KPIs.NPVUSD > ranked[j].KPIs.NPVUSD
	})
	return ranked
}
