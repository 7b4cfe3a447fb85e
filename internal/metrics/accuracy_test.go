package metrics

import (
	"testing"

	"github.com/born-ml/stepnet/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOneHotArgmax(t *testing.T) {
	pred, err := tensor.FromRows([][]float64{
		{0.1, 0.7, 0.2},
		{0.8, 0.1, 0.1},
		{0.3, 0.3, 0.4},
		{0.2, 0.5, 0.3},
	})
	require.NoError(t, err)
	target, err := tensor.FromRows([][]float64{
		{0, 1, 0},
		{1, 0, 0},
		{1, 0, 0},
		{0, 0, 1},
	})
	require.NoError(t, err)

	var metric Accuracy = OneHotArgmax{}
	assert.InDelta(t, 0.5, metric.Accuracy(pred, target), 1e-12)
	assert.InDelta(t, 1.0, metric.Accuracy(target, target), 1e-12)
}

func TestOneHotArgmax_ShapeMismatch(t *testing.T) {
	assert.Panics(t, func() {
		OneHotArgmax{}.Accuracy(tensor.Zeros(tensor.Shape{2, 3}), tensor.Zeros(tensor.Shape{3, 3}))
	})
}
