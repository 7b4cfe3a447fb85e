// Package train drives layers, a loss and an optimizer through epochs of
// mini-batches.
//
// The nn and optim packages know nothing about epochs, datasets or
// progress. Model owns that loop: per batch it runs forward, the loss,
// backward and one optimizer update, in that fixed order.
package train

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/born-ml/stepnet/internal/data"
	"github.com/born-ml/stepnet/internal/metrics"
	"github.com/born-ml/stepnet/internal/nn"
	"github.com/born-ml/stepnet/internal/optim"
	"github.com/born-ml/stepnet/internal/tensor"
	"github.com/samber/lo"
)

// ErrNoBatches is returned when a fit is asked to run on an empty batch set.
var ErrNoBatches = errors.New("train: no batches")

// EpochResult summarizes one epoch of Fit.
type EpochResult struct {
	Epoch       int // 1-based
	TrainLoss   float64
	ValLoss     float64 // 0 without validation batches
	ValAccuracy float64 // 0 without a metric or validation batches
	Duration    time.Duration
}

// StepResult records one optimizer step of FitSteps.
type StepResult struct {
	Epoch     int // 1-based
	Step      int // 1-based, counted across epochs
	TrainLoss float64
	ValLoss   float64
}

// Model couples a layer graph with its loss and optimizer.
//
// Example:
//
//	model := train.NewModel(net, nn.NewCrossEntropyLoss(), optim.NewAdam(optim.AdamConfig{}))
//	history, err := model.Fit(ctx, 10, trainBatches, valBatches)
type Model struct {
	layer    nn.Layer
	loss     nn.Loss
	opt      optim.Optimizer
	metric   metrics.Accuracy
	reporter Reporter
	training bool
}

// NewModel creates a Model. Progress is reported through a SlogReporter on
// slog.Default() until WithReporter replaces it.
func NewModel(layer nn.Layer, loss nn.Loss, opt optim.Optimizer) *Model {
	return &Model{
		layer:    layer,
		loss:     loss,
		opt:      opt,
		reporter: SlogReporter{},
		training: true,
	}
}

// WithReporter sets the progress reporter and returns the model.
func (m *Model) WithReporter(r Reporter) *Model {
	m.reporter = r
	return m
}

// WithMetric sets the accuracy metric evaluated on validation batches and
// returns the model.
func (m *Model) WithMetric(metric metrics.Accuracy) *Model {
	m.metric = metric
	return m
}

// Layer returns the model's layer graph.
func (m *Model) Layer() nn.Layer { return m.layer }

// Optimizer returns the model's optimizer.
func (m *Model) Optimizer() optim.Optimizer { return m.opt }

// SetTraining puts the layer graph into training or inference mode. Predict,
// Loss, Accuracy and validation during Fit switch to inference mode
// temporarily and then return to the mode set here.
func (m *Model) SetTraining(training bool) {
	m.training = training
	m.layer.SetTraining(training)
}

// Training reports the mode last set with SetTraining (true for a new Model).
func (m *Model) Training() bool { return m.training }

// Step trains on one batch and returns its loss before the update. The
// forward and backward passes always run in training mode.
func (m *Model) Step(x, y *tensor.Tensor) float64 {
	if !m.training {
		m.layer.SetTraining(true)
		defer m.layer.SetTraining(false)
	}

	pred := m.layer.Forward(x)
	loss := m.loss.Forward(pred, y)
	m.layer.Backward(m.loss.Backward(pred, y))
	m.opt.Update(m.layer.Params())
	return loss
}

// Predict runs a forward pass in inference mode.
func (m *Model) Predict(x *tensor.Tensor) *tensor.Tensor {
	m.layer.SetTraining(false)
	defer m.layer.SetTraining(m.training)

	return m.layer.Forward(x)
}

// Loss evaluates the loss in inference mode without updating anything.
func (m *Model) Loss(x, y *tensor.Tensor) float64 {
	return m.loss.Forward(m.Predict(x), y)
}

// Accuracy scores the inference-mode prediction for x against y.
func (m *Model) Accuracy(x, y *tensor.Tensor, metric metrics.Accuracy) float64 {
	return metric.Accuracy(m.Predict(x), y)
}

// Fit trains for the given number of epochs. After every epoch the mean
// validation loss is computed in inference mode and the result reported.
//
// Fit stops between batches when ctx is done and returns the epochs that
// completed together with ctx.Err().
func (m *Model) Fit(ctx context.Context, epochs int, trainBatches, valBatches []data.Batch) ([]EpochResult, error) {
	if len(trainBatches) == 0 {
		return nil, ErrNoBatches
	}

	history := make([]EpochResult, 0, epochs)
	for epoch := 1; epoch <= epochs; epoch++ {
		start := time.Now()

		losses := make([]float64, 0, len(trainBatches))
		for _, b := range trainBatches {
			if err := ctx.Err(); err != nil {
				return history, err
			}
			losses = append(losses, m.Step(b.X, b.Y))
		}

		result := EpochResult{
			Epoch:     epoch,
			TrainLoss: lo.Mean(losses),
		}
		if len(valBatches) > 0 {
			result.ValLoss, result.ValAccuracy = m.evaluate(valBatches)
		}
		result.Duration = time.Since(start)

		history = append(history, result)
		m.reporter.Epoch(result)
	}
	return history, nil
}

// FitSteps trains like Fit but evaluates one randomly chosen validation
// batch after every step, recording a loss curve at step granularity.
//
// rng may be nil, in which case a randomly seeded generator is used.
func (m *Model) FitSteps(ctx context.Context, epochs int, trainBatches, valBatches []data.Batch, rng *rand.Rand) ([]StepResult, error) {
	if len(trainBatches) == 0 {
		return nil, ErrNoBatches
	}
	if len(valBatches) == 0 {
		return nil, fmt.Errorf("FitSteps: validation set: %w", ErrNoBatches)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	history := make([]StepResult, 0, epochs*len(trainBatches))
	for epoch := 1; epoch <= epochs; epoch++ {
		for _, b := range trainBatches {
			if err := ctx.Err(); err != nil {
				return history, err
			}

			trainLoss := m.Step(b.X, b.Y)
			val := valBatches[rng.IntN(len(valBatches))]

			result := StepResult{
				Epoch:     epoch,
				Step:      len(history) + 1,
				TrainLoss: trainLoss,
				ValLoss:   m.Loss(val.X, val.Y),
			}
			history = append(history, result)
			m.reporter.Step(result)
		}
	}
	return history, nil
}

// evaluate returns the mean loss and, if a metric is set, the mean accuracy
// over batches in inference mode.
func (m *Model) evaluate(batches []data.Batch) (loss, accuracy float64) {
	m.layer.SetTraining(false)
	defer m.layer.SetTraining(m.training)

	losses := make([]float64, len(batches))
	scores := make([]float64, 0, len(batches))
	for i, b := range batches {
		pred := m.layer.Forward(b.X)
		losses[i] = m.loss.Forward(pred, b.Y)
		if m.metric != nil {
			scores = append(scores, m.metric.Accuracy(pred, b.Y))
		}
	}
	return lo.Mean(losses), lo.Mean(scores)
}
