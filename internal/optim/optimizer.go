// Package optim implements optimization algorithms for training neural networks.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: plain gradient descent
//   - Momentum: gradient descent with a velocity term
//   - RMSProp: per-element step sizes from a running mean of squared gradients
//   - Adam / AdamW: Adaptive Moment Estimation, optionally with decoupled weight decay
//
// Every optimizer is a state machine over parameter identity. The parameter
// list is re-collected from the layer graph before every call and may arrive
// in any order; per-parameter accumulators are looked up by nn.ID and start
// as zeros the first time an ID is seen.
//
// Example usage:
//
//	optimizer := optim.NewAdam(optim.AdamConfig{LR: 0.001})
//
//	for epoch := range epochs {
//	    pred := model.Forward(x)
//	    model.Backward(loss.Backward(pred, y))
//	    optimizer.Update(model.Params())
//	}
package optim

import (
	"errors"
	"fmt"
	"slices"

	"github.com/born-ml/stepnet/internal/nn"
	"github.com/born-ml/stepnet/internal/tensor"
	"github.com/samber/lo"
)

// Epsilon floors squared-gradient statistics before a square root.
const Epsilon = nn.Epsilon

// Optimizer is the base interface for all optimization algorithms.
//
// Update is called once per training step after a full backward pass. It
// mutates each parameter's value in place and only reads its gradient.
// Optimizers do not retain the params slice between calls.
type Optimizer interface {
	// Update applies one step to every parameter in params.
	Update(params []*nn.Parameter)

	// Name returns the optimizer's registry name, e.g. "adam".
	Name() string

	// LR returns the current learning rate.
	LR() float64

	// SetLR changes the learning rate used by subsequent updates.
	SetLR(lr float64)
}

// ErrUnknownOptimizer is returned by New for an unregistered name.
var ErrUnknownOptimizer = errors.New("unknown optimizer")

var registry = map[string]func(lr float64) Optimizer{
	"sgd":      func(lr float64) Optimizer { return NewSGD(SGDConfig{LR: lr}) },
	"momentum": func(lr float64) Optimizer { return NewMomentum(MomentumConfig{LR: lr}) },
	"rmsprop":  func(lr float64) Optimizer { return NewRMSProp(RMSPropConfig{LR: lr}) },
	"adam":     func(lr float64) Optimizer { return NewAdam(AdamConfig{LR: lr}) },
	"adamw":    func(lr float64) Optimizer { return NewAdamW(AdamWConfig{AdamConfig: AdamConfig{LR: lr}}) },
}

// New creates a fresh optimizer by name with default hyperparameters.
// A zero lr keeps the optimizer's default learning rate.
func New(name string, lr float64) (Optimizer, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("optim.New %q: %w (known: %v)", name, ErrUnknownOptimizer, Names())
	}
	return ctor(lr), nil
}

// Names returns the registered optimizer names in sorted order.
func Names() []string {
	names := lo.Keys(registry)
	slices.Sort(names)
	return names
}

// state holds one accumulator tensor per parameter identity.
type state map[nn.ID]*tensor.Tensor

// get returns the accumulator for p, creating a zero tensor of p's shape on
// first sight.
func (s state) get(p *nn.Parameter) []float64 {
	acc, ok := s[p.ID()]
	if !ok {
		acc = tensor.ZerosLike(p.Value())
		s[p.ID()] = acc
	}
	return acc.Data()
}
