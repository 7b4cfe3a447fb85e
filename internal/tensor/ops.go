package tensor

import (
	"fmt"
	"math"

	"github.com/born-ml/stepnet/internal/parallel"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Add returns t + other with NumPy-style broadcasting.
func (t *Tensor) Add(other *Tensor) *Tensor {
	return t.binary("Add", other, floats.Add, func(a, b float64) float64 { return a + b })
}

// Sub returns t - other with NumPy-style broadcasting.
func (t *Tensor) Sub(other *Tensor) *Tensor {
	return t.binary("Sub", other, floats.Sub, func(a, b float64) float64 { return a - b })
}

// Mul returns the element-wise product t ⊙ other with broadcasting.
func (t *Tensor) Mul(other *Tensor) *Tensor {
	return t.binary("Mul", other, floats.Mul, func(a, b float64) float64 { return a * b })
}

// Div returns the element-wise quotient t / other with broadcasting.
func (t *Tensor) Div(other *Tensor) *Tensor {
	return t.binary("Div", other, floats.Div, func(a, b float64) float64 { return a / b })
}

// binary applies an element-wise operation. Same-shape operands go through
// the gonum kernel; everything else walks broadcast strides.
func (t *Tensor) binary(op string, other *Tensor, kernel func(dst, s []float64), fn func(a, b float64) float64) *Tensor {
	if t.shape.Equal(other.shape) {
		out := t.Clone()
		kernel(out.data, other.data)
		return out
	}

	outShape, err := BroadcastShapes(t.shape, other.shape)
	if err != nil {
		panic(fmt.Sprintf("Tensor.%s: %v", op, err))
	}

	out := Zeros(outShape)
	outStrides := outShape.Strides()
	aStrides := broadcastStrides(t.shape, outShape)
	bStrides := broadcastStrides(other.shape, outShape)

	parallel.Chunks(len(out.data), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			rem := i
			ai, bi := 0, 0
			for d, stride := range outStrides {
				coord := rem / stride
				rem %= stride
				ai += coord * aStrides[d]
				bi += coord * bStrides[d]
			}
			out.data[i] = fn(t.data[ai], other.data[bi])
		}
	}, Parallelism)
	return out
}

// Scale returns s·t.
func (t *Tensor) Scale(s float64) *Tensor {
	out := t.Clone()
	floats.Scale(s, out.data)
	return out
}

// AddScalar returns t + s.
func (t *Tensor) AddScalar(s float64) *Tensor {
	out := t.Clone()
	floats.AddConst(s, out.data)
	return out
}

// Parallelism controls how element-wise operations on large tensors are
// split across goroutines.
var Parallelism = parallel.DefaultConfig()

// Apply returns a new tensor with fn applied to every element. Large tensors
// are split across goroutines per Parallelism, so fn must not keep state.
func (t *Tensor) Apply(fn func(float64) float64) *Tensor {
	out := t.Clone()
	parallel.Chunks(len(out.data), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out.data[i] = fn(out.data[i])
		}
	}, Parallelism)
	return out
}

// Exp returns e^t element-wise.
func (t *Tensor) Exp() *Tensor { return t.Apply(math.Exp) }

// Log returns ln(t) element-wise.
func (t *Tensor) Log() *Tensor { return t.Apply(math.Log) }

// Sqrt returns √t element-wise.
func (t *Tensor) Sqrt() *Tensor { return t.Apply(math.Sqrt) }

// Square returns t² element-wise.
func (t *Tensor) Square() *Tensor {
	return t.Apply(func(v float64) float64 { return v * v })
}

// Sign returns 1 where t > 0 and -1 elsewhere.
func (t *Tensor) Sign() *Tensor {
	return t.Apply(func(v float64) float64 {
		if v > 0 {
			return 1
		}
		return -1
	})
}

// Clamp limits every element to [lo, hi].
func (t *Tensor) Clamp(lo, hi float64) *Tensor {
	return t.Apply(func(v float64) float64 { return math.Min(math.Max(v, lo), hi) })
}

// ClampMin limits every element to be at least lo.
func (t *Tensor) ClampMin(lo float64) *Tensor {
	return t.Apply(func(v float64) float64 { return math.Max(v, lo) })
}

// MatMul computes the matrix product of two rank-2 tensors.
//
// [m, k] @ [k, n] → [m, n]
func (t *Tensor) MatMul(other *Tensor) *Tensor {
	if t.Rank() != 2 || other.Rank() != 2 {
		panic(fmt.Sprintf("Tensor.MatMul: expected rank-2 operands, got %v and %v", t.shape, other.shape))
	}
	if t.shape[1] != other.shape[0] {
		panic(fmt.Sprintf("Tensor.MatMul: inner dimensions differ: %v @ %v", t.shape, other.shape))
	}

	out := Zeros(Shape{t.shape[0], other.shape[1]})
	out.Dense().Mul(t.Dense(), other.Dense())
	return out
}

// T returns the transpose of a rank-2 tensor as a new tensor.
func (t *Tensor) T() *Tensor {
	t.mustRank2("T")
	return FromDense(t.Dense().T())
}

// Outer returns the outer product a·bᵀ of two vectors as [len(a), len(b)].
func Outer(a, b []float64) *Tensor {
	out := Zeros(Shape{len(a), len(b)})
	out.Dense().Outer(1, mat.NewVecDense(len(a), a), mat.NewVecDense(len(b), b))
	return out
}
