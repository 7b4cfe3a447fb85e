package optim

import (
	"math"

	"github.com/born-ml/stepnet/internal/nn"
	"gonum.org/v1/gonum/floats"
)

// Schedule selects when Adam advances its bias-correction step counter.
type Schedule int

const (
	// StepPerParameter advances the counter after every parameter processed,
	// so parameters later in the list see a larger exponent within the same
	// call.
	StepPerParameter Schedule = iota

	// StepPerUpdate advances the counter once per Update call; all
	// parameters in a call share the same exponent.
	StepPerUpdate
)

// String returns the schedule name.
func (s Schedule) String() string {
	if s == StepPerUpdate {
		return "per-update"
	}
	return "per-parameter"
}

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Adam combines ideas from RMSprop and momentum:
//   - Maintains exponential moving averages of gradients (first moment)
//   - Maintains exponential moving averages of squared gradients (second moment)
//   - Applies bias correction to compensate for initialization at zero
//
// Update rule, with t the step counter before this parameter is processed:
//
//	m = beta1 * m + (1-beta1) * gradient          // First moment
//	v = beta2 * v + (1-beta2) * gradient²         // Second moment
//	m_hat = m / (1 - beta1^(t+1))                 // Bias correction
//	v_hat = v / (1 - beta2^(t+1))                 // Bias correction
//	param = param - lr * m_hat / sqrt(max(v_hat, eps))
//
// On the first update of a fresh parameter m_hat equals the gradient and
// v_hat its square, so every element moves by exactly lr.
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
//
// Example:
//
//	optimizer := optim.NewAdam(optim.AdamConfig{
//	    LR:    0.001,
//	    Betas: [2]float64{0.9, 0.999},
//	})
//	optimizer.Update(model.Params())
type Adam struct {
	lr       float64
	beta1    float64
	beta2    float64
	schedule Schedule
	t        int   // Step counter for bias correction
	m        state // First moment estimates
	v        state // Second moment estimates
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR       float64    // Learning rate (default: 0.001)
	Betas    [2]float64 // Coefficients for computing running averages (default: [0.9, 0.999])
	Schedule Schedule   // Step counter schedule (default: StepPerParameter)
}

// NewAdam creates a new Adam optimizer.
//
// Default hyperparameters:
//   - LR: 0.001
//   - Beta1: 0.9
//   - Beta2: 0.999
func NewAdam(config AdamConfig) *Adam {
	// Set defaults
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}

	return &Adam{
		lr:       config.LR,
		beta1:    config.Betas[0],
		beta2:    config.Betas[1],
		schedule: config.Schedule,
		m:        make(state),
		v:        make(state),
	}
}

// Update performs a single optimization step using Adam algorithm.
func (a *Adam) Update(params []*nn.Parameter) {
	a.step(params, 0)
}

func (a *Adam) step(params []*nn.Parameter, weightDecay float64) {
	for _, p := range params {
		a.updateParameter(p)
		if weightDecay != 0 {
			// value -= weightDecay * value, on the already-updated value
			floats.Scale(1-weightDecay, p.Value().Data())
		}
		if a.schedule == StepPerParameter {
			a.t++
		}
	}
	if a.schedule == StepPerUpdate {
		a.t++
	}
}

// updateParameter performs Adam update for a single parameter.
func (a *Adam) updateParameter(p *nn.Parameter) {
	exp := float64(a.t + 1)
	biasCorrection1 := 1 - math.Pow(a.beta1, exp)
	biasCorrection2 := 1 - math.Pow(a.beta2, exp)

	m := a.m.get(p)
	v := a.v.get(p)
	value := p.Value().Data()

	for i, g := range p.Grad().Data() {
		m[i] = a.beta1*m[i] + (1-a.beta1)*g
		v[i] = a.beta2*v[i] + (1-a.beta2)*g*g

		mHat := m[i] / biasCorrection1
		vHat := v[i] / biasCorrection2

		value[i] -= a.lr * mHat / math.Sqrt(math.Max(vHat, Epsilon))
	}
}

// Name returns "adam".
func (a *Adam) Name() string { return "adam" }

// LR returns the current learning rate.
func (a *Adam) LR() float64 { return a.lr }

// SetLR sets the learning rate.
func (a *Adam) SetLR(lr float64) { a.lr = lr }

// Steps returns the bias-correction step counter.
func (a *Adam) Steps() int { return a.t }

// AdamW is Adam with decoupled weight decay.
//
// After the Adam step each parameter is shrunk toward zero:
//
//	param = param - weight_decay * param
//
// The decay uses the value Adam just produced, not the pre-step value.
type AdamW struct {
	*Adam
	weightDecay float64
}

// AdamWConfig holds configuration for AdamW optimizer.
type AdamWConfig struct {
	AdamConfig
	WeightDecay float64 // Decoupled decay factor (default: 0.01)
}

// NewAdamW creates a new AdamW optimizer.
func NewAdamW(config AdamWConfig) *AdamW {
	if config.WeightDecay == 0 {
		config.WeightDecay = 0.01
	}

	return &AdamW{
		Adam:        NewAdam(config.AdamConfig),
		weightDecay: config.WeightDecay,
	}
}

// Update performs a single optimization step: Adam, then weight decay.
func (a *AdamW) Update(params []*nn.Parameter) {
	a.step(params, a.weightDecay)
}

// Name returns "adamw".
func (a *AdamW) Name() string { return "adamw" }

// WeightDecay returns the decoupled decay factor.
func (a *AdamW) WeightDecay() float64 { return a.weightDecay }
