package optim_test

import (
	"math"
	"testing"

	"github.com/born-ml/stepnet/internal/nn"
	"github.com/born-ml/stepnet/internal/optim"
	"github.com/born-ml/stepnet/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newParam creates a parameter with the given value and gradient.
func newParam(t *testing.T, value, grad []float64) *nn.Parameter {
	t.Helper()
	v, err := tensor.FromSlice(value, tensor.Shape{len(value)})
	require.NoError(t, err)
	g, err := tensor.FromSlice(grad, tensor.Shape{len(grad)})
	require.NoError(t, err)

	p := nn.NewParameter("p", v)
	p.SetGrad(g)
	return p
}

func TestSGD_SimpleUpdate(t *testing.T) {
	p := newParam(t, []float64{2, -1}, []float64{1, -3})

	optim.NewSGD(optim.SGDConfig{LR: 0.1}).Update([]*nn.Parameter{p})

	// x_new = x_old - lr * grad
	assert.InDeltaSlice(t, []float64{1.9, -0.7}, p.Value().Data(), 1e-12)
}

func TestMomentum_Velocity(t *testing.T) {
	p := newParam(t, []float64{0}, []float64{1})
	opt := optim.NewMomentum(optim.MomentumConfig{LR: 0.1, Momentum: 0.9})

	opt.Update([]*nn.Parameter{p})
	assert.InDelta(t, -0.1, p.Value().Data()[0], 1e-12)

	// v = 0.9·(-0.1) - 0.1 = -0.19
	opt.Update([]*nn.Parameter{p})
	assert.InDelta(t, -0.29, p.Value().Data()[0], 1e-12)
}

func TestRMSProp_Update(t *testing.T) {
	p := newParam(t, []float64{1, 1}, []float64{2, 0})
	opt := optim.NewRMSProp(optim.RMSPropConfig{LR: 0.01, Decay: 0.9})

	opt.Update([]*nn.Parameter{p})

	// cache = 0.1·4 = 0.4
	assert.InDelta(t, 1-0.01*2/math.Sqrt(0.4), p.Value().Data()[0], 1e-12)
	assert.Equal(t, 1.0, p.Value().Data()[1], "zero gradient with zero cache must stay finite")
}

func TestAdam_FirstStepIsSignTimesLR(t *testing.T) {
	p := newParam(t, []float64{0, 0, 0, 0}, []float64{0.5, -2, 1e-3, -40})
	opt := optim.NewAdam(optim.AdamConfig{LR: 0.01})

	opt.Update([]*nn.Parameter{p})

	assert.InDeltaSlice(t, []float64{-0.01, 0.01, -0.01, 0.01}, p.Value().Data(), 1e-9)
	assert.Equal(t, 1, opt.Steps())
}

func TestAdam_StepPerParameter(t *testing.T) {
	a := newParam(t, []float64{0}, []float64{1})
	b := newParam(t, []float64{0}, []float64{1})
	opt := optim.NewAdam(optim.AdamConfig{LR: 0.01})

	opt.Update([]*nn.Parameter{a, b})

	assert.Equal(t, 2, opt.Steps())
	assert.InDelta(t, -0.01, a.Value().Data()[0], 1e-12)

	// b is processed with t=1: m̂ = 0.1/(1-0.9²), v̂ = 0.001/(1-0.999²)
	mHat := 0.1 / (1 - 0.81)
	vHat := 0.001 / (1 - 0.999*0.999)
	assert.InDelta(t, -0.01*mHat/math.Sqrt(vHat), b.Value().Data()[0], 1e-12)
}

func TestAdam_StepPerUpdate(t *testing.T) {
	a := newParam(t, []float64{0}, []float64{1})
	b := newParam(t, []float64{0}, []float64{1})
	opt := optim.NewAdam(optim.AdamConfig{LR: 0.01, Schedule: optim.StepPerUpdate})

	opt.Update([]*nn.Parameter{a, b})

	assert.Equal(t, 1, opt.Steps())
	assert.InDelta(t, -0.01, a.Value().Data()[0], 1e-12)
	assert.InDelta(t, -0.01, b.Value().Data()[0], 1e-12)
	assert.Equal(t, "per-update", optim.StepPerUpdate.String())
}

func TestAdamW_DecaysUpdatedValue(t *testing.T) {
	p := newParam(t, []float64{1}, []float64{1})
	opt := optim.NewAdamW(optim.AdamWConfig{
		AdamConfig:  optim.AdamConfig{LR: 0.1},
		WeightDecay: 0.1,
	})

	opt.Update([]*nn.Parameter{p})

	// Adam: 1 - 0.1 = 0.9, then 0.9 - 0.1·0.9
	assert.InDelta(t, 0.81, p.Value().Data()[0], 1e-12)
	assert.Equal(t, "adamw", opt.Name())
	assert.Equal(t, 1, opt.Steps())
}

// TestStateKeyedByIdentity checks that reordering the parameter list between
// calls does not swap accumulators: two calls with [A, B] then [B, A] must
// match each parameter being optimized on its own.
func TestStateKeyedByIdentity(t *testing.T) {
	configs := map[string]func() optim.Optimizer{
		"momentum": func() optim.Optimizer { return optim.NewMomentum(optim.MomentumConfig{LR: 0.1}) },
		"rmsprop":  func() optim.Optimizer { return optim.NewRMSProp(optim.RMSPropConfig{LR: 0.1}) },
		"adam": func() optim.Optimizer {
			return optim.NewAdam(optim.AdamConfig{LR: 0.1, Schedule: optim.StepPerUpdate})
		},
		"adamw": func() optim.Optimizer {
			return optim.NewAdamW(optim.AdamWConfig{AdamConfig: optim.AdamConfig{LR: 0.1, Schedule: optim.StepPerUpdate}})
		},
	}

	for name, newOpt := range configs {
		t.Run(name, func(t *testing.T) {
			a := newParam(t, []float64{1, 2}, []float64{0.5, -0.25})
			b := newParam(t, []float64{-3, 0, 4}, []float64{-4, 1, 8})
			shared := newOpt()
			shared.Update([]*nn.Parameter{a, b})
			shared.Update([]*nn.Parameter{b, a})

			soloA := newParam(t, []float64{1, 2}, []float64{0.5, -0.25})
			soloB := newParam(t, []float64{-3, 0, 4}, []float64{-4, 1, 8})
			optA, optB := newOpt(), newOpt()
			for range 2 {
				optA.Update([]*nn.Parameter{soloA})
				optB.Update([]*nn.Parameter{soloB})
			}

			assert.InDeltaSlice(t, soloA.Value().Data(), a.Value().Data(), 1e-12)
			assert.InDeltaSlice(t, soloB.Value().Data(), b.Value().Data(), 1e-12)
		})
	}
}

func TestUpdateLeavesGradients(t *testing.T) {
	for _, name := range optim.Names() {
		t.Run(name, func(t *testing.T) {
			opt, err := optim.New(name, 0.1)
			require.NoError(t, err)
			p := newParam(t, []float64{1, 2}, []float64{0.3, -0.7})

			opt.Update([]*nn.Parameter{p})

			assert.Equal(t, []float64{0.3, -0.7}, p.Grad().Data())
			assert.NotEqual(t, []float64{1, 2}, p.Value().Data())
		})
	}
}

// TestConvergence minimizes Σ(x-3)² with each optimizer.
func TestConvergence(t *testing.T) {
	for _, name := range []string{"sgd", "momentum", "rmsprop", "adam"} {
		t.Run(name, func(t *testing.T) {
			opt, err := optim.New(name, 0.02)
			require.NoError(t, err)
			p := newParam(t, []float64{0, 6}, []float64{0, 0})

			for range 2000 {
				grad := p.Value().AddScalar(-3).Scale(2)
				p.SetGrad(grad)
				opt.Update([]*nn.Parameter{p})
			}

			assert.InDeltaSlice(t, []float64{3, 3}, p.Value().Data(), 0.1)
		})
	}
}

func TestNew(t *testing.T) {
	assert.Equal(t, []string{"adam", "adamw", "momentum", "rmsprop", "sgd"}, optim.Names())

	for _, name := range optim.Names() {
		opt, err := optim.New(name, 0.25)
		require.NoError(t, err)
		assert.Equal(t, name, opt.Name())
		assert.Equal(t, 0.25, opt.LR())

		opt.SetLR(0.5)
		assert.Equal(t, 0.5, opt.LR())
	}

	_, err := optim.New("lbfgs", 0.1)
	require.ErrorIs(t, err, optim.ErrUnknownOptimizer)

	opt, err := optim.New("adam", 0)
	require.NoError(t, err)
	assert.Equal(t, 0.001, opt.LR())
}
