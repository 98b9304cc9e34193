package experiment

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"uft-ca/pkg/ca"
	pcore "uft-ca/pkg/core"
)

// SweepConfig describes a grid search over birth/survival ranges on a random
// lattice.
type SweepConfig struct {
	Width, Height, Depth int
	Steps                int
	Density              float64
	Seed                 int64
	Workers              int

	// Every birth range is paired with every survival range.
	BirthMins    []int
	BirthSpans   []int
	SurviveMins  []int
	SurviveSpans []int
}

// DefaultSweepConfig scans ranges around the reference 4-7 rule.
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		Width: 24, Height: 24, Depth: 24,
		Steps:        60,
		Density:      0.3,
		Seed:         1337,
		Workers:      runtime.NumCPU(),
		BirthMins:    []int{3, 4, 5},
		BirthSpans:   []int{0, 1, 3},
		SurviveMins:  []int{2, 4, 6},
		SurviveSpans: []int{1, 3, 5},
	}
}

// SweepResult is the outcome of one rule.
type SweepResult struct {
	Rule         string
	FinalDensity float64
	PeakActive   int
	ExtinctAt    int // -1 if the pattern never died out
}

func (r SweepResult) String() string {
	return fmt.Sprintf("%-16s final=%.4f peak=%d extinct=%d", r.Rule, r.FinalDensity, r.PeakActive, r.ExtinctAt)
}

// Rules expands the sweep grid.
func (c SweepConfig) Rules() []ca.OuterTotalistic {
	var rules []ca.OuterTotalistic
	for _, bMin := range c.BirthMins {
		for _, bSpan := range c.BirthSpans {
			for _, sMin := range c.SurviveMins {
				for _, sSpan := range c.SurviveSpans {
					rules = append(rules, ca.OuterTotalistic{
						Birth:   ca.NewCountSet(ca.CountRange{Min: bMin, Max: bMin + bSpan}),
						Survive: ca.NewCountSet(ca.CountRange{Min: sMin, Max: sMin + sSpan}),
					})
				}
			}
		}
	}
	return rules
}

// Sweep evaluates every rule of the grid on the same random seed and returns
// results ordered by final density, densest first.
func Sweep(ctx context.Context, cfg SweepConfig) ([]SweepResult, error) {
	lattice := ca.NewLattice3D(cfg.Width, cfg.Height, cfg.Depth)
	seed := make([]uint8, lattice.Size())
	pcore.FillDensity(pcore.NewRNG(cfg.Seed).Source(), seed, cfg.Density, ca.Structural.Byte())

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	jobs := make(chan ca.OuterTotalistic)
	results := make(chan SweepResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rule := range jobs {
				res, err := runSweepRule(ctx, lattice, seed, rule, cfg.Steps)
				if err != nil {
					continue
				}
				results <- res
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for _, rule := range cfg.Rules() {
			select {
			case jobs <- rule:
			case <-ctx.Done():
				return
			}
		}
	}()

	var all []SweepResult
	for res := range results {
		all = append(all, res)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].FinalDensity != all[j].FinalDensity {
			return all[i].FinalDensity > all[j].FinalDensity
		}
		return all[i].Rule < all[j].Rule
	})
	return all, nil
}

func runSweepRule(ctx context.Context, l ca.Lattice3D, seed []uint8, rule ca.OuterTotalistic, steps int) (SweepResult, error) {
	res := SweepResult{Rule: rule.String(), ExtinctAt: -1}
	states := seed
	res.PeakActive = ca.CountActive(states)
	for step := 1; step <= steps; step++ {
		next, err := ca.StepLattice3DParallel(ctx, l, states, rule, 1)
		if err != nil {
			return res, err
		}
		states = next
		active := ca.CountActive(states)
		if active > res.PeakActive {
			res.PeakActive = active
		}
		if active == 0 {
			res.ExtinctAt = step
			break
		}
	}
	if len(states) > 0 {
		res.FinalDensity = float64(ca.CountActive(states)) / float64(len(states))
	}
	return res, nil
}
