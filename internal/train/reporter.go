package train

import (
	"context"
	"log/slog"
)

// Reporter receives training progress.
type Reporter interface {
	Epoch(result EpochResult)
	Step(result StepResult)
}

// SlogReporter logs progress as structured records. Epochs are logged at
// Info and steps at Debug.
type SlogReporter struct {
	Logger *slog.Logger // nil uses slog.Default()
}

func (r SlogReporter) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

// Epoch implements Reporter.
func (r SlogReporter) Epoch(result EpochResult) {
	r.logger().LogAttrs(context.Background(), slog.LevelInfo, "epoch",
		slog.Int("epoch", result.Epoch),
		slog.Float64("loss", result.TrainLoss),
		slog.Float64("val_loss", result.ValLoss),
		slog.Float64("val_accuracy", result.ValAccuracy),
		slog.Duration("duration", result.Duration),
	)
}

// Step implements Reporter.
func (r SlogReporter) Step(result StepResult) {
	r.logger().LogAttrs(context.Background(), slog.LevelDebug, "step",
		slog.Int("epoch", result.Epoch),
		slog.Int("step", result.Step),
		slog.Float64("loss", result.TrainLoss),
		slog.Float64("val_loss", result.ValLoss),
	)
}

// NopReporter discards progress.
type NopReporter struct{}

// Epoch implements Reporter.
func (NopReporter) Epoch(EpochResult) {}

// Step implements Reporter.
func (NopReporter) Step(StepResult) {}
