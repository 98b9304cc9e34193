package ca

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// StepLattice3DParallel is StepLattice3D with the z-planes split into slabs
// computed by up to workers goroutines. workers <= 0 selects GOMAXPROCS. The
// result is identical to the sequential step. rule must be safe for
// concurrent use.
func StepLattice3DParallel(ctx context.Context, l Lattice3D, states []uint8, rule Rule, workers int) ([]uint8, error) {
	if len(states) != l.Size() {
		return nil, errors.Wrapf(ErrLengthMismatch, "lattice %dx%dx%d needs %d states, got %d", l.Width, l.Height, l.Depth, l.Size(), len(states))
	}
	next := make([]uint8, len(states))
	err := forEachChunk(ctx, l.Depth, workers, func(lo, hi int) {
		stepLatticeSlab(l, states, next, rule, lo, hi)
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

// StepGraphParallel is StepGraph with node ranges computed concurrently.
func StepGraphParallel(ctx context.Context, g *GraphCA, rule Rule, workers int) ([]uint8, error) {
	if err := g.check(); err != nil {
		return nil, err
	}
	next := make([]uint8, len(g.States))
	err := forEachChunk(ctx, g.numNodes, workers, func(lo, hi int) {
		stepGraphRange(g, next, rule, lo, hi)
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

// forEachChunk splits [0, n) into contiguous chunks and runs fn on each. The
// group's Wait is the only barrier: chunks never share output slots.
func forEachChunk(ctx context.Context, n, workers int, fn func(lo, hi int)) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(0, n)
		return nil
	}
	chunk := (n + workers - 1) / workers
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, min(lo+chunk, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(lo, hi)
			return nil
		})
	}
	return g.Wait()
}
