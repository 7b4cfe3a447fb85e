package train

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/born-ml/stepnet/internal/data"
	"github.com/born-ml/stepnet/internal/nn"
	"github.com/born-ml/stepnet/internal/optim"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// DefaultBenchmarkLR holds the learning rates the benchmark uses when
// BenchmarkConfig.LR has no entry for an optimizer.
var DefaultBenchmarkLR = map[string]float64{
	"sgd":      0.05,
	"momentum": 0.05,
	"rmsprop":  0.005,
	"adam":     0.005,
	"adamw":    0.005,
}

// BenchmarkConfig describes an optimizer comparison run.
type BenchmarkConfig struct {
	// Build returns a freshly initialized network. It is called once per
	// optimizer, sequentially, before any training starts.
	Build func() nn.Layer

	// Batches are the encoded training batches shared read-only by all runs.
	Batches []data.Batch

	Optimizers  []string           // Optimizer names (default: optim.Names())
	LR          map[string]float64 // Per-optimizer learning rate (default: DefaultBenchmarkLR)
	Epochs      int                // Passes over Batches (default: 1)
	Concurrency int                // Runs in flight at once (default: all)
	Logger      *slog.Logger       // nil uses slog.Default()
}

// BenchmarkResult is the per-step loss curve of one optimizer.
type BenchmarkResult struct {
	Optimizer string
	Losses    []float64
	Duration  time.Duration
}

// Benchmark trains one freshly built network per optimizer on the same
// batches and returns the loss of every step, ordered like
// config.Optimizers. Runs proceed concurrently; the first failure or a
// cancelled ctx stops all of them.
func Benchmark(ctx context.Context, config BenchmarkConfig) ([]BenchmarkResult, error) {
	if config.Build == nil {
		return nil, errors.New("Benchmark: Build is required")
	}
	if len(config.Batches) == 0 {
		return nil, ErrNoBatches
	}
	if len(config.Optimizers) == 0 {
		config.Optimizers = optim.Names()
	}
	if config.Epochs < 0 {
		return nil, fmt.Errorf("Benchmark: epochs must be positive, got %d", config.Epochs)
	}
	if config.Epochs == 0 {
		config.Epochs = 1
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	models := make([]*Model, len(config.Optimizers))
	for i, name := range config.Optimizers {
		lr, ok := config.LR[name]
		if !ok {
			lr = DefaultBenchmarkLR[name]
		}
		opt, err := optim.New(name, lr)
		if err != nil {
			return nil, fmt.Errorf("Benchmark: %w", err)
		}
		models[i] = NewModel(config.Build(), nn.NewCrossEntropyLoss(), opt).WithReporter(NopReporter{})
	}

	results := make([]BenchmarkResult, len(models))
	g, ctx := errgroup.WithContext(ctx)
	if config.Concurrency > 0 {
		g.SetLimit(config.Concurrency)
	}

	for i, model := range models {
		g.Go(func() error {
			name := model.Optimizer().Name()
			logger := config.Logger.With(slog.String("optimizer", name))
			start := time.Now()

			losses := make([]float64, 0, config.Epochs*len(config.Batches))
			for range config.Epochs {
				for _, b := range config.Batches {
					if err := ctx.Err(); err != nil {
						return err
					}
					loss := model.Step(b.X, b.Y)
					losses = append(losses, loss)
					logger.Debug("step", slog.Int("step", len(losses)), slog.Float64("loss", loss))
				}
			}

			results[i] = BenchmarkResult{Optimizer: name, Losses: losses, Duration: time.Since(start)}
			logger.Info("benchmark run finished",
				slog.Int("steps", len(losses)),
				slog.Float64("final_loss", losses[len(losses)-1]),
				slog.Duration("duration", results[i].Duration),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// WriteLossCSV writes one column per optimizer, headed by the optimizer
// name, in sorted order. Row i holds every optimizer's loss at step i+1;
// shorter curves leave empty cells.
func WriteLossCSV(w io.Writer, results []BenchmarkResult) error {
	sorted := slices.SortedFunc(slices.Values(results), func(a, b BenchmarkResult) int {
		return strings.Compare(a.Optimizer, b.Optimizer)
	})

	cw := csv.NewWriter(w)
	header := lo.Map(sorted, func(r BenchmarkResult, _ int) string { return r.Optimizer })
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	longest := lo.Max(lo.Map(sorted, func(r BenchmarkResult, _ int) int { return len(r.Losses) }))
	record := make([]string, len(sorted))
	for step := 0; step < longest; step++ {
		for j, r := range sorted {
			record[j] = ""
			if step < len(r.Losses) {
				record[j] = strconv.FormatFloat(r.Losses[step], 'g', -1, 64)
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", step+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
