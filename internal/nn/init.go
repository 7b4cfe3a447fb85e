package nn

import (
	"math"
	"math/rand/v2"

	"github.com/born-ml/stepnet/internal/tensor"
	"gonum.org/v1/gonum/stat/distuv"
)

// Initializer creates a Parameter with an initial value of the given shape.
//
// shape[0] is treated as the fan-in: layers lay weights out as
// [in_features, out_features].
type Initializer interface {
	Initialize(name string, shape tensor.Shape) *Parameter
}

// Zero initializes every element to 0. Typically used for biases.
type Zero struct{}

// Initialize implements Initializer.
func (Zero) Initialize(name string, shape tensor.Shape) *Parameter {
	return NewParameter(name, tensor.Zeros(shape))
}

// Ones initializes every element to 1. Typically used for BatchNorm gamma.
type Ones struct{}

// Initialize implements Initializer.
func (Ones) Initialize(name string, shape tensor.Shape) *Parameter {
	return NewParameter(name, tensor.Ones(shape))
}

// Constant initializes every element to Value.
type Constant struct {
	Value float64
}

// Initialize implements Initializer.
func (c Constant) Initialize(name string, shape tensor.Shape) *Parameter {
	return NewParameter(name, tensor.Full(shape, c.Value))
}

// Uniform draws every element from U(Low, High).
type Uniform struct {
	Low, High float64
	Src       rand.Source // nil uses the global source
}

// Initialize implements Initializer.
func (u Uniform) Initialize(name string, shape tensor.Shape) *Parameter {
	return NewParameter(name, sample(shape, distuv.Uniform{Min: u.Low, Max: u.High, Src: u.Src}))
}

// Xavier draws from N(0, 1/fan_in).
type Xavier struct {
	Src rand.Source
}

// Initialize implements Initializer.
func (x Xavier) Initialize(name string, shape tensor.Shape) *Parameter {
	std := 1 / math.Sqrt(float64(shape[0]))
	return NewParameter(name, sample(shape, distuv.Normal{Mu: 0, Sigma: std, Src: x.Src}))
}

// XavierUniform (Glorot) draws from U(-bound, bound) with
// bound = sqrt(6 / (fan_in + fan_out)). Rank-1 shapes use fan_out = fan_in.
type XavierUniform struct {
	Src rand.Source
}

// Initialize implements Initializer.
func (x XavierUniform) Initialize(name string, shape tensor.Shape) *Parameter {
	fanIn, fanOut := shape[0], shape[0]
	if len(shape) > 1 {
		fanOut = shape[1]
	}
	bound := math.Sqrt(6 / float64(fanIn+fanOut))
	return NewParameter(name, sample(shape, distuv.Uniform{Min: -bound, Max: bound, Src: x.Src}))
}

// He (Kaiming) draws from N(0, 2/fan_in). Suited to ReLU stacks.
type He struct {
	Src rand.Source
}

// Initialize implements Initializer.
func (h He) Initialize(name string, shape tensor.Shape) *Parameter {
	std := math.Sqrt(2 / float64(shape[0]))
	return NewParameter(name, sample(shape, distuv.Normal{Mu: 0, Sigma: std, Src: h.Src}))
}

type distribution interface {
	Rand() float64
}

func sample(shape tensor.Shape, dist distribution) *tensor.Tensor {
	t := tensor.Zeros(shape)
	data := t.Data()
	for i := range data {
		data[i] = dist.Rand()
	}
	return t
}
