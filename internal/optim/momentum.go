package optim

import (
	"github.com/born-ml/stepnet/internal/nn"
	"gonum.org/v1/gonum/floats"
)

// Momentum implements gradient descent with a velocity term.
//
// Update rule:
//
//	velocity = momentum * velocity - lr * gradient
//	param = param + velocity
//
// The velocity is kept per parameter ID and starts at zero.
type Momentum struct {
	lr       float64
	momentum float64
	velocity state
}

// MomentumConfig holds configuration for the Momentum optimizer.
type MomentumConfig struct {
	LR       float64 // Learning rate (default: 0.05)
	Momentum float64 // Velocity decay (default: 0.9, range: [0, 1))
}

// NewMomentum creates a new Momentum optimizer.
func NewMomentum(config MomentumConfig) *Momentum {
	if config.LR == 0 {
		config.LR = 0.05
	}
	if config.Momentum == 0 {
		config.Momentum = 0.9
	}

	return &Momentum{
		lr:       config.LR,
		momentum: config.Momentum,
		velocity: make(state),
	}
}

// Update performs a single optimization step.
func (m *Momentum) Update(params []*nn.Parameter) {
	for _, p := range params {
		v := m.velocity.get(p)
		floats.Scale(m.momentum, v)
		floats.AddScaled(v, -m.lr, p.Grad().Data())
		floats.Add(p.Value().Data(), v)
	}
}

// Name returns "momentum".
func (m *Momentum) Name() string { return "momentum" }

// LR returns the current learning rate.
func (m *Momentum) LR() float64 { return m.lr }

// SetLR sets the learning rate.
func (m *Momentum) SetLR(lr float64) { m.lr = lr }
