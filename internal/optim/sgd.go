package optim

import (
	"github.com/born-ml/stepnet/internal/nn"
	"gonum.org/v1/gonum/floats"
)

// SGD implements plain Stochastic Gradient Descent.
//
// Update rule:
//
//	param = param - lr * gradient
//
// SGD keeps no per-parameter state.
//
// Example:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.01})
//	optimizer.Update(model.Params())
type SGD struct {
	lr float64
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR float64 // Learning rate (default: 0.01)
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	// Set defaults
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{lr: config.LR}
}

// Update performs a single optimization step.
func (s *SGD) Update(params []*nn.Parameter) {
	for _, p := range params {
		floats.AddScaled(p.Value().Data(), -s.lr, p.Grad().Data())
	}
}

// Name returns "sgd".
func (s *SGD) Name() string { return "sgd" }

// LR returns the current learning rate.
func (s *SGD) LR() float64 { return s.lr }

// SetLR sets the learning rate.
func (s *SGD) SetLR(lr float64) { s.lr = lr }
