// Package tensor provides the dense float64 tensor substrate used by the
// layers and optimizers. Matrix products and element-wise kernels are
// delegated to gonum.
package tensor

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Tensor is a dense, row-major array of float64 values.
//
// A Tensor owns its backing slice unless it was produced by Reshape or Row,
// which return views sharing memory with the receiver.
//
// Example:
//
//	x, err := tensor.FromRows([][]float64{{1, 2}, {3, 4}})
//	y := x.MatMul(x.T()).Add(tensor.Ones(tensor.Shape{2}))
type Tensor struct {
	shape Shape
	data  []float64
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// Data returns the backing slice in row-major order.
//
// Writes through the returned slice modify the tensor.
func (t *Tensor) Data() []float64 {
	return t.data
}

// Rank returns the number of dimensions.
func (t *Tensor) Rank() int {
	return len(t.shape)
}

// Dim returns the size of dimension i. Negative i counts from the end.
func (t *Tensor) Dim(i int) int {
	if i < 0 {
		i += len(t.shape)
	}
	if i < 0 || i >= len(t.shape) {
		panic(fmt.Sprintf("Tensor.Dim: dimension %d out of range for shape %v", i, t.shape))
	}
	return t.shape[i]
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// At returns the element at (i, j) of a rank-2 tensor.
func (t *Tensor) At(i, j int) float64 {
	t.mustRank2("At")
	return t.data[i*t.shape[1]+j]
}

// Set assigns the element at (i, j) of a rank-2 tensor.
func (t *Tensor) Set(i, j int, v float64) {
	t.mustRank2("Set")
	t.data[i*t.shape[1]+j] = v
}

// Row returns row i of a rank-2 tensor as a view into the backing slice.
func (t *Tensor) Row(i int) []float64 {
	t.mustRank2("Row")
	cols := t.shape[1]
	return t.data[i*cols : (i+1)*cols : (i+1)*cols]
}

// Clone returns a deep copy.
func (t *Tensor) Clone() *Tensor {
	data := make([]float64, len(t.data))
	copy(data, t.data)
	return &Tensor{shape: t.shape.Clone(), data: data}
}

// Reshape returns a view with a new shape over the same data.
func (t *Tensor) Reshape(dims ...int) *Tensor {
	shape := Shape(dims)
	if shape.NumElements() != len(t.data) {
		panic(fmt.Sprintf("Tensor.Reshape: cannot reshape %v into %v", t.shape, shape))
	}
	return &Tensor{shape: shape.Clone(), data: t.data}
}

// Dense returns a gonum matrix view of a rank-2 tensor.
//
// The matrix shares memory with the tensor.
func (t *Tensor) Dense() *mat.Dense {
	t.mustRank2("Dense")
	return mat.NewDense(t.shape[0], t.shape[1], t.data)
}

// FromDense copies a gonum matrix into a new rank-2 tensor.
func FromDense(m mat.Matrix) *Tensor {
	r, c := m.Dims()
	out := Zeros(Shape{r, c})
	mat.NewDense(r, c, out.data).Copy(m)
	return out
}

// AllClose reports whether both tensors have the same shape and every pair
// of elements differs by at most tol.
func (t *Tensor) AllClose(other *Tensor, tol float64) bool {
	if !t.shape.Equal(other.shape) {
		return false
	}
	for i, v := range t.data {
		if math.Abs(v-other.data[i]) > tol {
			return false
		}
	}
	return true
}

// String renders the tensor for debugging.
func (t *Tensor) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tensor%v", []int(t.shape))
	if t.Rank() == 2 {
		sb.WriteString("[")
		for i := 0; i < t.shape[0]; i++ {
			if i > 0 {
				sb.WriteString(" ")
			}
			fmt.Fprintf(&sb, "%v", t.Row(i))
		}
		sb.WriteString("]")
		return sb.String()
	}
	fmt.Fprintf(&sb, "%v", t.data)
	return sb.String()
}

func (t *Tensor) mustRank2(op string) {
	if len(t.shape) != 2 {
		panic(fmt.Sprintf("Tensor.%s: expected rank-2 tensor, got shape %v", op, t.shape))
	}
}
