// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"math/rand/v2"
	"testing"

	"github.com/born-ml/stepnet/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// TestPublicAPI exercises the re-exported constructors end to end.
func TestPublicAPI(t *testing.T) {
	x, err := tensor.FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	y := x.Add(tensor.Ones(tensor.Shape{3}))
	assert.Equal(t, []float64{2, 3, 4, 5, 6, 7}, y.Data())

	w := x.MatMul(x.T())
	assert.Equal(t, tensor.Shape{2, 2}, w.Shape())
	assert.Equal(t, []float64{14, 32, 32, 77}, w.Data())

	d := tensor.FromDense(mat.NewDense(1, 2, []float64{7, 8}))
	assert.Equal(t, []float64{7, 8}, d.Data())

	shape, err := tensor.BroadcastShapes(tensor.Shape{4, 1}, tensor.Shape{3})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{4, 3}, shape)

	r := tensor.Rand(tensor.Shape{2, 2}, rand.New(rand.NewPCG(1, 2)))
	for _, v := range r.Data() {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}
