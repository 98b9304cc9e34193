package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"uft-ca/internal/experiment"
	"uft-ca/pkg/ca"
)

func newStepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "step <in> <out>",
		Short: "Advance a raw state file by one generation",
		Long: `step reads one byte per cell from <in>, applies the rule once and writes
the next generation to <out>.

Lattices need --dims w,h,d with cells in z, y, x order. Graphs need --graph
pointing at a seed JSON file whose edges define the adjacency; its states
are ignored in favour of <in>.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dims, _ := cmd.Flags().GetString("dims")
			graphPath, _ := cmd.Flags().GetString("graph")
			ruleStr, _ := cmd.Flags().GetString("rule")
			generations, _ := cmd.Flags().GetInt("generations")

			if (dims == "") == (graphPath == "") {
				return errors.New("exactly one of --dims or --graph is required")
			}
			rule, err := parseRule(ruleStr)
			if err != nil {
				return err
			}
			states, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(err, "read states")
			}

			var next []uint8
			if dims != "" {
				l, err := parseDims(dims)
				if err != nil {
					return err
				}
				next, err = stepLattice(l, states, rule, generations)
				if err != nil {
					return err
				}
			} else {
				seed, err := experiment.LoadSeed(graphPath)
				if err != nil {
					return err
				}
				seed.States = states
				g, err := experiment.BuildGraph(len(states), seed)
				if err != nil {
					return err
				}
				next, err = stepGraph(g, rule, generations)
				if err != nil {
					return err
				}
			}

			if err := os.WriteFile(args[1], next, 0o644); err != nil {
				return errors.Wrap(err, "write states")
			}
			loggerFor(cmd).Debug("stepped", "cells", len(next), "active", ca.CountActive(next), "generations", generations)
			fmt.Fprintf(cmd.OutOrStdout(), "%d cells, %d active\n", len(next), ca.CountActive(next))
			return nil
		},
	}
	cmd.Flags().String("dims", "", "Lattice dimensions w,h,d")
	cmd.Flags().String("graph", "", "Seed JSON file providing graph edges")
	cmd.Flags().String("rule", "conway-3d", "conway-3d or B/S notation such as B4-7/S4-7")
	cmd.Flags().Int("generations", 1, "Number of generations to advance")
	return cmd
}

func stepLattice(l ca.Lattice3D, states []uint8, rule ca.Rule, generations int) ([]uint8, error) {
	for i := 0; i < generations; i++ {
		next, err := ca.StepLattice3D(l, states, rule)
		if err != nil {
			return nil, err
		}
		states = next
	}
	return states, nil
}

func stepGraph(g *ca.GraphCA, rule ca.Rule, generations int) ([]uint8, error) {
	for i := 0; i < generations; i++ {
		next, err := ca.StepGraph(g, rule)
		if err != nil {
			return nil, err
		}
		g.States = next
	}
	return g.States, nil
}
