package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"uft-ca/internal/experiment"
	"uft-ca/internal/persistence/indexdb"
	"uft-ca/internal/transport/ws"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <experiment.yaml>",
		Short: "Run an experiment and write its artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serve, _ := cmd.Flags().GetString("serve")
			noIndex, _ := cmd.Flags().GetBool("no-index")
			log := loggerFor(cmd)

			cfg, err := experiment.LoadConfig(args[0])
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			opts := []experiment.Option{experiment.WithLogger(log)}
			if !noIndex {
				idx, err := indexdb.OpenSQLite(filepath.Join(cfg.OutputDir, "runs.db"))
				if err != nil {
					return errors.Wrap(err, "open run index")
				}
				defer idx.Close()
				opts = append(opts, experiment.WithIndex(idx))
			}

			if serve != "" {
				hub := ws.NewHub(log)
				mux := http.NewServeMux()
				mux.Handle("/ws", hub.Handler())
				srv := &http.Server{Addr: serve, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						log.Error("frame server", "err", err)
					}
				}()
				log.Info("streaming frames", "addr", serve, "path", "/ws")
				defer func() {
					hub.Close()
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
				opts = append(opts, experiment.WithPublisher(hub))
			}

			runner, err := experiment.NewRunner(cfg, opts...)
			if err != nil {
				return err
			}
			res, err := runner.Run(ctx)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			fmt.Fprintf(out, "%s: %d steps, %d/%d active, density %.4f\n",
				res.Experiment, res.Steps, res.FinalMetrics.ActiveCells, res.FinalMetrics.TotalCells, res.FinalMetrics.Density)
			fmt.Fprintf(out, "metrics:  %s\nsnapshot: %s\n", res.MetricsPath, res.SnapshotPath)
			return nil
		},
	}
	cmd.Flags().String("serve", "", "Stream generations over websocket on this address (e.g. :8080)")
	cmd.Flags().Bool("no-index", false, "Do not record the run in runs.db")
	return cmd
}
