// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/stepnet/internal/optim"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// ErrUnknownOptimizer is returned by New for an unregistered name.
var ErrUnknownOptimizer = optim.ErrUnknownOptimizer

// New creates an optimizer by name ("sgd", "momentum", "rmsprop", "adam",
// "adamw"). A zero lr keeps the optimizer's default.
func New(name string, lr float64) (Optimizer, error) {
	return optim.New(name, lr)
}

// Names returns the registered optimizer names in sorted order.
func Names() []string {
	return optim.Names()
}

// SGD (Stochastic Gradient Descent)

// SGD represents the plain SGD optimizer.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.01})
func NewSGD(config SGDConfig) *SGD {
	return optim.NewSGD(config)
}

// Momentum

// Momentum represents gradient descent with a velocity term.
type Momentum = optim.Momentum

// MomentumConfig contains configuration for the Momentum optimizer.
type MomentumConfig = optim.MomentumConfig

// NewMomentum creates a new Momentum optimizer.
//
// Example:
//
//	optimizer := optim.NewMomentum(optim.MomentumConfig{LR: 0.05, Momentum: 0.9})
func NewMomentum(config MomentumConfig) *Momentum {
	return optim.NewMomentum(config)
}

// RMSProp

// RMSProp represents the RMSProp optimizer.
type RMSProp = optim.RMSProp

// RMSPropConfig contains configuration for the RMSProp optimizer.
type RMSPropConfig = optim.RMSPropConfig

// NewRMSProp creates a new RMSProp optimizer.
func NewRMSProp(config RMSPropConfig) *RMSProp {
	return optim.NewRMSProp(config)
}

// Adam (Adaptive Moment Estimation)

// Adam represents the Adam optimizer.
type Adam = optim.Adam

// AdamConfig contains configuration for Adam optimizer.
type AdamConfig = optim.AdamConfig

// Schedule selects when Adam advances its step counter.
type Schedule = optim.Schedule

// Step counter schedules.
const (
	StepPerParameter = optim.StepPerParameter
	StepPerUpdate    = optim.StepPerUpdate
)

// NewAdam creates a new Adam optimizer with bias correction.
//
// Example:
//
//	optimizer := optim.NewAdam(optim.AdamConfig{
//	    LR:       0.001,
//	    Betas:    [2]float64{0.9, 0.999},
//	    Schedule: optim.StepPerUpdate,
//	})
func NewAdam(config AdamConfig) *Adam {
	return optim.NewAdam(config)
}

// AdamW represents Adam with decoupled weight decay.
type AdamW = optim.AdamW

// AdamWConfig contains configuration for AdamW optimizer.
type AdamWConfig = optim.AdamWConfig

// NewAdamW creates a new AdamW optimizer.
//
// Example:
//
//	optimizer := optim.NewAdamW(optim.AdamWConfig{
//	    AdamConfig:  optim.AdamConfig{LR: 0.001},
//	    WeightDecay: 0.01,
//	})
func NewAdamW(config AdamWConfig) *AdamW {
	return optim.NewAdamW(config)
}
