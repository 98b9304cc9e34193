package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"uft-ca/internal/persistence/snapshot"
	"uft-ca/pkg/ca"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <snapshot>",
		Short: "Print the header and state counts of a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := snapshot.ReadSnapshot(args[0])
			if err != nil {
				return err
			}
			var counts [ca.NumStates]int
			for _, b := range snap.States {
				counts[ca.Decode(b)]++
			}

			out := cmd.OutOrStdout()
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				byName := make(map[string]int, ca.NumStates)
				for s, n := range counts {
					byName[ca.CellState(s).String()] = n
				}
				return json.NewEncoder(out).Encode(map[string]any{
					"header": snap.Header,
					"dims":   [3]int{snap.Width, snap.Height, snap.Depth},
					"edges":  len(snap.Edges),
					"states": byName,
				})
			}

			h := snap.Header
			fmt.Fprintf(out, "name:     %s\nrule:     %s\ntick:     %d\ntopology: %s\ncells:    %d\n",
				h.Name, h.Rule, h.Tick, h.Topology, len(snap.States))
			if h.Topology == snapshot.TopologyGraph {
				fmt.Fprintf(out, "edges:    %d\n", len(snap.Edges))
			} else {
				fmt.Fprintf(out, "dims:     %dx%dx%d\n", snap.Width, snap.Height, snap.Depth)
			}
			for s, n := range counts {
				fmt.Fprintf(out, "  %-10s %d\n", ca.CellState(s), n)
			}
			return nil
		},
	}
}
