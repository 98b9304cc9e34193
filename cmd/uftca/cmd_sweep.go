package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"uft-ca/internal/experiment"
)

func newSweepCmd() *cobra.Command {
	def := experiment.DefaultSweepConfig()
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Grid search birth/survival ranges on a random lattice",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := def
			flags := cmd.Flags()
			dims, _ := flags.GetString("dims")
			l, err := parseDims(dims)
			if err != nil {
				return err
			}
			cfg.Width, cfg.Height, cfg.Depth = l.Width, l.Height, l.Depth
			cfg.Steps, _ = flags.GetInt("steps")
			cfg.Density, _ = flags.GetFloat64("density")
			cfg.Seed, _ = flags.GetInt64("seed")
			cfg.Workers, _ = flags.GetInt("workers")
			top, _ := flags.GetInt("top")
			for name, dst := range map[string]*[]int{
				"birth-min":    &cfg.BirthMins,
				"birth-span":   &cfg.BirthSpans,
				"survive-min":  &cfg.SurviveMins,
				"survive-span": &cfg.SurviveSpans,
			} {
				raw, _ := flags.GetString(name)
				if *dst, err = parseInts(raw); err != nil {
					return err
				}
			}

			log := loggerFor(cmd)
			log.Info("sweeping", "rules", len(cfg.Rules()), "dims", dims, "steps", cfg.Steps, "workers", cfg.Workers)
			start := time.Now()
			results, err := experiment.Sweep(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			log.Info("sweep complete", "elapsed", time.Since(start).Round(time.Millisecond))

			if top > 0 && top < len(results) {
				results = results[:top]
			}
			jsonOut, _ := flags.GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(results)
			}
			for i, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s\n", i+1, r)
			}
			return nil
		},
	}
	cmd.Flags().String("dims", fmt.Sprintf("%d,%d,%d", def.Width, def.Height, def.Depth), "Lattice dimensions w,h,d")
	cmd.Flags().Int("steps", def.Steps, "Generations per rule")
	cmd.Flags().Float64("density", def.Density, "Initial live fraction")
	cmd.Flags().Int64("seed", def.Seed, "Random seed")
	cmd.Flags().Int("workers", def.Workers, "Number of worker goroutines")
	cmd.Flags().Int("top", 10, "Print only the densest N rules (0 for all)")
	cmd.Flags().String("birth-min", joinInts(def.BirthMins), "Birth range lower bounds")
	cmd.Flags().String("birth-span", joinInts(def.BirthSpans), "Birth range widths")
	cmd.Flags().String("survive-min", joinInts(def.SurviveMins), "Survival range lower bounds")
	cmd.Flags().String("survive-span", joinInts(def.SurviveSpans), "Survival range widths")
	return cmd
}

func joinInts(v []int) string {
	s := ""
	for i, n := range v {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprint(n)
	}
	return s
}
