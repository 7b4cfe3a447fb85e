package nn

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/born-ml/stepnet/internal/tensor"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
)

const gradTol = 1e-5

// numericGrad differentiates f with respect to the elements of x by central
// differences, perturbing x in place and restoring it afterwards.
func numericGrad(x *tensor.Tensor, f func() float64) []float64 {
	data := x.Data()
	orig := slices.Clone(data)
	defer copy(data, orig)

	return fd.Gradient(nil, func(v []float64) float64 {
		copy(data, v)
		return f()
	}, orig, &fd.Settings{Formula: fd.Central, Concurrent: 1})
}

// projection returns f(x) = Σ layer(x) ⊙ r, whose gradient with respect to
// the layer output is exactly r.
func projection(layer Layer, x, r *tensor.Tensor) func() float64 {
	return func() float64 {
		return layer.Forward(x).Mul(r).Sum()
	}
}

func randomTensor(rng *rand.Rand, rows, cols int) *tensor.Tensor {
	return tensor.Rand(tensor.Shape{rows, cols}, rng).AddScalar(-0.5).Scale(2)
}

// checkLayerGrads compares the analytic input and parameter gradients of
// layer against central differences.
func checkLayerGrads(t *testing.T, layer Layer, x *tensor.Tensor, seed uint64) {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed+1))

	r := randomTensor(rng, x.Dim(0), layer.Forward(x).Dim(1))
	layer.Forward(x)
	gradInput := layer.Backward(r)

	analytic := make([]*tensor.Tensor, 0)
	for _, p := range layer.Params() {
		analytic = append(analytic, p.Grad().Clone())
	}

	f := projection(layer, x, r)
	require.InDeltaSlice(t, numericGrad(x, f), gradInput.Data(), gradTol, "input gradient")

	for i, p := range layer.Params() {
		require.InDeltaSlice(t, numericGrad(p.Value(), f), analytic[i].Data(), gradTol,
			"gradient of %s", p)
	}
}

func TestGradCheck_Affine(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	layer := NewAffine(4, 3, Xavier{}, Uniform{Low: -0.1, High: 0.1})

	checkLayerGrads(t, layer, randomTensor(rng, 5, 4), 1)
}

func TestGradCheck_AffineRegularized(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 10))
	layer := NewAffine(3, 2, Xavier{}, Zero{}).WithRegularizer(L2{Lambda: 0.05})
	x := randomTensor(rng, 4, 3)
	r := randomTensor(rng, 4, 2)

	layer.Forward(x)
	layer.Backward(r)

	// The penalty λ·Σw² is part of the objective being differentiated.
	w := layer.Weight().Value()
	f := func() float64 {
		return layer.Forward(x).Mul(r).Sum() + 0.05*w.Square().Sum()
	}
	analytic := layer.Weight().Grad().Clone()
	require.InDeltaSlice(t, numericGrad(w, f), analytic.Data(), gradTol)
}

func TestGradCheck_ReLU(t *testing.T) {
	x, err := tensor.FromRows([][]float64{
		{-1.5, 0.3, 2.0},
		{0.7, -0.2, -3.1},
	})
	require.NoError(t, err)

	checkLayerGrads(t, NewReLU(), x, 2)
}

func TestGradCheck_Softmax(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))

	checkLayerGrads(t, NewSoftmax(), randomTensor(rng, 3, 5), 3)
}

func TestGradCheck_BatchNorm(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 14))
	bn := NewBatchNorm(3, Uniform{Low: 0.5, High: 1.5}, Uniform{Low: -0.5, High: 0.5})

	checkLayerGrads(t, bn, randomTensor(rng, 6, 3), 4)
}

func TestGradCheck_Sequential(t *testing.T) {
	rng := rand.New(rand.NewPCG(15, 16))
	model := NewSequential(
		NewAffine(4, 5, Xavier{}, Uniform{Low: -0.1, High: 0.1}),
		NewBatchNorm(5, Ones{}, Zero{}),
		NewAffine(5, 3, Xavier{}, Zero{}),
		NewSoftmax(),
	)

	checkLayerGrads(t, model, randomTensor(rng, 6, 4), 5)
}

func TestGradCheck_Losses(t *testing.T) {
	pred, err := tensor.FromRows([][]float64{
		{0.2, 0.5, 0.3},
		{0.6, 0.1, 0.3},
	})
	require.NoError(t, err)
	target, err := tensor.FromRows([][]float64{
		{0, 1, 0},
		{1, 0, 0},
	})
	require.NoError(t, err)

	losses := map[string]Loss{
		"cross_entropy": NewCrossEntropyLoss(),
		"mse":           NewMSELoss(),
	}
	for name, loss := range losses {
		t.Run(name, func(t *testing.T) {
			analytic := loss.Backward(pred, target)
			numeric := numericGrad(pred, func() float64 { return loss.Forward(pred, target) })
			require.InDeltaSlice(t, numeric, analytic.Data(), gradTol)
		})
	}
}
