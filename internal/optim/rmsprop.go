package optim

import (
	"math"

	"github.com/born-ml/stepnet/internal/nn"
)

// RMSProp scales each element's step by a running root mean square of its
// gradients.
//
// Update rule:
//
//	cache = decay * cache + (1-decay) * gradient²
//	param = param - lr * gradient / sqrt(max(cache, eps))
type RMSProp struct {
	lr    float64
	decay float64
	cache state
}

// RMSPropConfig holds configuration for the RMSProp optimizer.
type RMSPropConfig struct {
	LR    float64 // Learning rate (default: 0.005)
	Decay float64 // Squared-gradient decay (default: 0.9)
}

// NewRMSProp creates a new RMSProp optimizer.
func NewRMSProp(config RMSPropConfig) *RMSProp {
	if config.LR == 0 {
		config.LR = 0.005
	}
	if config.Decay == 0 {
		config.Decay = 0.9
	}

	return &RMSProp{
		lr:    config.LR,
		decay: config.Decay,
		cache: make(state),
	}
}

// Update performs a single optimization step.
func (r *RMSProp) Update(params []*nn.Parameter) {
	for _, p := range params {
		cache := r.cache.get(p)
		value := p.Value().Data()

		for i, g := range p.Grad().Data() {
			cache[i] = r.decay*cache[i] + (1-r.decay)*g*g
			value[i] -= r.lr * g / math.Sqrt(math.Max(cache[i], Epsilon))
		}
	}
}

// Name returns "rmsprop".
func (r *RMSProp) Name() string { return "rmsprop" }

// LR returns the current learning rate.
func (r *RMSProp) LR() float64 { return r.lr }

// SetLR sets the learning rate.
func (r *RMSProp) SetLR(lr float64) { r.lr = lr }
