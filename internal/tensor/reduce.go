package tensor

import (
	"fmt"
	"math"

	"github.com/born-ml/stepnet/internal/parallel"
	"gonum.org/v1/gonum/floats"
)

// Sum returns the sum of all elements.
func (t *Tensor) Sum() float64 {
	return floats.Sum(t.data)
}

// SumDim sums a rank-2 tensor along dim (0 = over rows, 1 = over columns).
//
// With keepDim the reduced dimension is kept with size 1, otherwise the
// result is rank 1.
func (t *Tensor) SumDim(dim int, keepDim bool) *Tensor {
	return t.reduce("SumDim", dim, keepDim, 0, func(acc, v float64) float64 { return acc + v })
}

// MeanDim averages a rank-2 tensor along dim.
func (t *Tensor) MeanDim(dim int, keepDim bool) *Tensor {
	out := t.SumDim(dim, keepDim)
	floats.Scale(1/float64(t.Dim(dim)), out.data)
	return out
}

// MaxDim takes the maximum of a rank-2 tensor along dim.
func (t *Tensor) MaxDim(dim int, keepDim bool) *Tensor {
	return t.reduce("MaxDim", dim, keepDim, math.Inf(-1), math.Max)
}

// ArgmaxRows returns, for each row of a rank-2 tensor, the column index of
// its largest element. Ties resolve to the lowest index.
func (t *Tensor) ArgmaxRows() []int {
	t.mustRank2("ArgmaxRows")
	out := make([]int, t.shape[0])
	parallel.Rows(t.shape[0], t.shape[1], func(i int) {
		out[i] = floats.MaxIdx(t.Row(i))
	}, Parallelism)
	return out
}

func (t *Tensor) reduce(op string, dim int, keepDim bool, init float64, fn func(acc, v float64) float64) *Tensor {
	t.mustRank2(op)
	if dim < 0 {
		dim += 2
	}
	if dim != 0 && dim != 1 {
		panic(fmt.Sprintf("Tensor.%s: dimension %d out of range for shape %v", op, dim, t.shape))
	}

	rows, cols := t.shape[0], t.shape[1]
	var out *Tensor
	if dim == 0 {
		out = Full(Shape{cols}, init)
		for i := 0; i < rows; i++ {
			for j, v := range t.Row(i) {
				out.data[j] = fn(out.data[j], v)
			}
		}
		if keepDim {
			out.shape = Shape{1, cols}
		}
		return out
	}

	out = Full(Shape{rows}, init)
	parallel.Rows(rows, cols, func(i int) {
		for _, v := range t.Row(i) {
			out.data[i] = fn(out.data[i], v)
		}
	}, Parallelism)
	if keepDim {
		out.shape = Shape{rows, 1}
	}
	return out
}
