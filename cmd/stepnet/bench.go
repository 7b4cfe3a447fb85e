package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/born-ml/stepnet/nn"
	"github.com/born-ml/stepnet/optim"
	"github.com/born-ml/stepnet/train"
	"github.com/spf13/cobra"
)

func newBenchCommand() *cobra.Command {
	var (
		opts        dataOptions
		epochs      int
		optimizers  []string
		concurrency int
		out         string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Train one network per optimizer and write the loss curves as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			if epochs <= 0 {
				return fmt.Errorf("--epochs must be positive, got %d", epochs)
			}
			logger := slog.Default()

			ds, err := opts.load(logger)
			if err != nil {
				return err
			}

			rng := opts.rng()
			results, err := train.Benchmark(cmd.Context(), train.BenchmarkConfig{
				Build:       func() nn.Layer { return opts.buildNetwork(ds.features, rng) },
				Batches:     ds.train,
				Optimizers:  optimizers,
				Epochs:      epochs,
				Concurrency: concurrency,
				Logger:      logger,
			})
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			if err := train.WriteLossCSV(f, results); err != nil {
				f.Close()
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to close %s: %w", out, err)
			}

			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%-9s final_loss=%.4f duration=%s\n",
					r.Optimizer, r.Losses[len(r.Losses)-1], r.Duration.Round(time.Millisecond))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}

	opts.addFlags(cmd.Flags())
	cmd.Flags().IntVar(&epochs, "epochs", 1, "passes over the training set per optimizer")
	cmd.Flags().StringSliceVar(&optimizers, "optimizers", optim.Names(), "optimizers to compare")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "runs in flight at once (0: all)")
	cmd.Flags().StringVar(&out, "out", "optimizer_losses.csv", "loss CSV output path")
	return cmd
}
