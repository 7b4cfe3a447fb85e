package nn

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/born-ml/stepnet/internal/tensor"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
)

func TestCrossEntropy_PerfectPrediction(t *testing.T) {
	target := mustRows(t, [][]float64{{0, 1, 0}, {1, 0, 0}})

	loss := NewCrossEntropyLoss().Forward(target.Clone(), target)

	assert.InDelta(t, 0, loss, 1e-12)
	assert.False(t, math.IsInf(loss, 0) || math.IsNaN(loss))
}

func TestCrossEntropy_KnownValue(t *testing.T) {
	pred := mustRows(t, [][]float64{{0.25, 0.75}, {0.5, 0.5}})
	target := mustRows(t, [][]float64{{0, 1}, {1, 0}})

	loss := NewCrossEntropyLoss().Forward(pred, target)

	assert.InDelta(t, -(math.Log(0.75)+math.Log(0.5))/2, loss, 1e-12)
}

func TestCrossEntropy_ZeroProbabilityIsFinite(t *testing.T) {
	pred := mustRows(t, [][]float64{{1, 0}})
	target := mustRows(t, [][]float64{{0, 1}})
	ce := NewCrossEntropyLoss()

	loss := ce.Forward(pred, target)
	grad := ce.Backward(pred, target)

	assert.InDelta(t, -math.Log(Epsilon), loss, 1e-9)
	for _, g := range grad.Data() {
		assert.False(t, math.IsInf(g, 0) || math.IsNaN(g))
	}
}

func TestCrossEntropy_RowPermutationInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(31, 32))
	pred := NewSoftmax().Forward(randomTensor(rng, 5, 4))
	target := tensor.Zeros(tensor.Shape{5, 4})
	for i := range 5 {
		target.Set(i, i%4, 1)
	}

	perm := []int{3, 0, 4, 1, 2}
	permPred, permTarget := tensor.Zeros(tensor.Shape{5, 4}), tensor.Zeros(tensor.Shape{5, 4})
	for i, j := range perm {
		copy(permPred.Row(i), pred.Row(j))
		copy(permTarget.Row(i), target.Row(j))
	}

	ce := NewCrossEntropyLoss()
	assert.InDelta(t, ce.Forward(pred, target), ce.Forward(permPred, permTarget), 1e-12)
}

func TestCrossEntropy_SoftmaxGradient(t *testing.T) {
	// Softmax followed by cross-entropy yields (p - y) / N.
	x := mustRows(t, [][]float64{{0.1, 0.2, 0.7}, {2, -1, 0}})
	target := mustRows(t, [][]float64{{0, 0, 1}, {0, 1, 0}})
	softmax := NewSoftmax()
	ce := NewCrossEntropyLoss()

	p := softmax.Forward(x)
	grad := softmax.Backward(ce.Backward(p, target))

	assert.InDeltaSlice(t, p.Sub(target).Scale(0.5).Data(), grad.Data(), 1e-12)
}

func TestMSE(t *testing.T) {
	pred := mustRows(t, [][]float64{{1, 2}, {3, 4}})
	target := mustRows(t, [][]float64{{1, 0}, {3, 6}})
	mse := NewMSELoss()

	assert.InDelta(t, 2.0, mse.Forward(pred, target), 1e-12)
	assert.InDeltaSlice(t, []float64{0, 1, 0, -1}, mse.Backward(pred, target).Data(), 1e-12)
}

func TestLoss_ShapeMismatchPanics(t *testing.T) {
	pred := tensor.Zeros(tensor.Shape{2, 3})

	assert.Panics(t, func() { NewCrossEntropyLoss().Forward(pred, tensor.Zeros(tensor.Shape{2, 2})) })
	assert.Panics(t, func() { NewMSELoss().Backward(pred, tensor.Zeros(tensor.Shape{3, 2})) })
	assert.Panics(t, func() { NewMSELoss().Forward(tensor.Zeros(tensor.Shape{6}), tensor.Zeros(tensor.Shape{6})) })
}

func TestAffineSoftmax_LossDecreases(t *testing.T) {
	rng := rand.New(rand.NewPCG(41, 42))
	x := randomTensor(rng, 16, 4)
	target := tensor.Zeros(tensor.Shape{16, 3})
	for i, class := range x.ArgmaxRows() {
		target.Set(i, class%3, 1)
	}

	model := NewSequential(NewAffine(4, 3, Xavier{}, Zero{}), NewSoftmax())
	ce := NewCrossEntropyLoss()

	step := func() float64 {
		pred := model.Forward(x)
		loss := ce.Forward(pred, target)
		model.Backward(ce.Backward(pred, target))
		for _, p := range model.Params() {
			floats.AddScaled(p.Value().Data(), -0.1, p.Grad().Data())
		}
		return loss
	}

	first := step()
	var last float64
	for range 200 {
		last = step()
	}
	assert.Less(t, last, first)
}
