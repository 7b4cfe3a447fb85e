// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package train

import (
	"context"
	"io"
	"math/rand/v2"

	"github.com/born-ml/stepnet/internal/data"
	"github.com/born-ml/stepnet/internal/metrics"
	"github.com/born-ml/stepnet/internal/nn"
	"github.com/born-ml/stepnet/internal/optim"
	"github.com/born-ml/stepnet/internal/tensor"
	"github.com/born-ml/stepnet/internal/train"
)

// Model couples a layer graph with its loss and optimizer.
type Model = train.Model

// NewModel creates a Model that reports progress through log/slog.
func NewModel(layer nn.Layer, loss nn.Loss, opt optim.Optimizer) *Model {
	return train.NewModel(layer, loss, opt)
}

// EpochResult summarizes one epoch of Model.Fit.
type EpochResult = train.EpochResult

// StepResult records one step of Model.FitSteps.
type StepResult = train.StepResult

// ErrNoBatches is returned when a fit is asked to run on no batches.
var ErrNoBatches = train.ErrNoBatches

// Reporter receives training progress.
type Reporter = train.Reporter

// SlogReporter logs progress with log/slog.
type SlogReporter = train.SlogReporter

// NopReporter discards progress.
type NopReporter = train.NopReporter

// Benchmarking

// BenchmarkConfig describes an optimizer comparison run.
type BenchmarkConfig = train.BenchmarkConfig

// BenchmarkResult is the per-step loss curve of one optimizer.
type BenchmarkResult = train.BenchmarkResult

// Benchmark trains one network per optimizer concurrently.
func Benchmark(ctx context.Context, config BenchmarkConfig) ([]BenchmarkResult, error) {
	return train.Benchmark(ctx, config)
}

// WriteLossCSV writes benchmark loss curves as CSV, one column per optimizer.
func WriteLossCSV(w io.Writer, results []BenchmarkResult) error {
	return train.WriteLossCSV(w, results)
}

// Data

// Batch is one mini-batch of features and targets.
type Batch = data.Batch

// BlobsConfig describes a synthetic Gaussian-blob dataset.
type BlobsConfig = data.BlobsConfig

// Data errors.
var (
	ErrEmpty  = data.ErrEmpty
	ErrRagged = data.ErrRagged
)

// LoadCSV reads a numeric CSV file into a [rows, cols] tensor.
func LoadCSV(path string, hasHeader bool) (*tensor.Tensor, error) {
	return data.LoadCSV(path, hasHeader)
}

// CreateBatches shuffles rows, splits out the label column and batches.
func CreateBatches(ds *tensor.Tensor, labelCol, batchSize int, rng *rand.Rand) ([]Batch, error) {
	return data.CreateBatches(ds, labelCol, batchSize, rng)
}

// OneHot encodes a [n, 1] label column as [n, numClasses].
func OneHot(labels *tensor.Tensor, numClasses int) *tensor.Tensor {
	return data.OneHot(labels, numClasses)
}

// Encode scales X by 1/scale and one-hot encodes Y.
func Encode(batches []Batch, numClasses int, scale float64) []Batch {
	return data.Encode(batches, numClasses, scale)
}

// Split copies the leading ratio of rows into head and the rest into tail.
func Split(ds *tensor.Tensor, ratio float64) (head, tail *tensor.Tensor, err error) {
	return data.Split(ds, ratio)
}

// Blobs generates a labeled Gaussian-blob dataset.
func Blobs(config BlobsConfig, rng *rand.Rand) *tensor.Tensor {
	return data.Blobs(config, rng)
}

// Metrics

// Accuracy scores predictions against targets.
type Accuracy = metrics.Accuracy

// OneHotArgmax compares per-row argmax of predictions and one-hot targets.
type OneHotArgmax = metrics.OneHotArgmax
