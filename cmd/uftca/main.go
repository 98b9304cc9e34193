// Command uftca runs automaton experiments, steps raw state files and sweeps
// rule families from the command line.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"uft-ca/internal/logging"
	"uft-ca/pkg/ca"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "uftca",
		Short: "Cellular automaton stepping kernel and experiment runner",
		Long: `uftca steps 3D lattice and graph cellular automata.

It runs YAML-described experiments, steps raw state files once, sweeps
outer-totalistic rule families and inspects saved snapshots.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (info, debug, trace)")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newStepCmd(),
		newSweepCmd(),
		newInspectCmd(),
	)
	return rootCmd
}

func loggerFor(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return logging.NewLogger(level, cmd.ErrOrStderr())
}

// parseRule accepts "conway-3d" or B/S notation.
func parseRule(s string) (ca.Rule, error) {
	if s == "" || strings.EqualFold(s, "conway-3d") {
		return ca.Conway3D, nil
	}
	return ca.ParseNotation(s)
}

// parseDims parses "w,h,d".
func parseDims(s string) (ca.Lattice3D, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return ca.Lattice3D{}, errors.Errorf("dims %q: want w,h,d", s)
	}
	var d [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n <= 0 {
			return ca.Lattice3D{}, errors.Errorf("dims %q: %q is not a positive integer", s, p)
		}
		d[i] = n
	}
	return ca.NewLattice3D(d[0], d[1], d[2]), nil
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %q", s)
		}
		out = append(out, n)
	}
	return out, nil
}
