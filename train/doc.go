// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train runs the training loop around nn layers and optim
// optimizers.
//
// # Overview
//
// This package contains:
//   - Model: forward, loss, backward and update for one batch (Step), whole
//     epochs with validation (Fit) and step-level loss curves (FitSteps)
//   - Data helpers: LoadCSV, CreateBatches, OneHot, Encode, Split, Blobs
//   - Metrics: OneHotArgmax accuracy
//   - Benchmark: the same network trained with several optimizers at once
//
// # Basic Usage
//
//	ds, err := train.LoadCSV("mnist_train.csv", true)
//	if err != nil {
//	    log.Fatalf("Failed to load data: %v", err)
//	}
//	batches, err := train.CreateBatches(ds, 0, 256, nil)
//	if err != nil {
//	    log.Fatalf("Failed to batch data: %v", err)
//	}
//	batches = train.Encode(batches, 10, 255)
//
//	model := train.NewModel(net, nn.NewCrossEntropyLoss(), optim.NewAdam(optim.AdamConfig{LR: 0.005})).
//	    WithMetric(train.OneHotArgmax{})
//	history, err := model.Fit(ctx, 10, batches, valBatches)
package train
