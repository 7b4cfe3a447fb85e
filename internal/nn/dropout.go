package nn

import (
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/stepnet/internal/tensor"
)

// Dropout randomly zeroes activations during training (inverted dropout).
//
// Each element is dropped independently with probability p; survivors are
// scaled by 1/(1-p) so the expected activation is unchanged. In inference
// mode Forward is the identity.
//
// Example:
//
//	drop := nn.NewDropout(0.5, rand.New(rand.NewPCG(1, 2)))
//	y := drop.Forward(x)
//	drop.SetTraining(false)
//	y = drop.Forward(x) // y == x
type Dropout struct {
	p        float64
	rng      *rand.Rand
	training bool

	mask *tensor.Tensor // 1 = kept, 0 = dropped
}

// NewDropout creates a Dropout layer with drop probability p in [0, 1).
//
// rng may be nil, in which case a randomly seeded generator is used.
func NewDropout(p float64, rng *rand.Rand) *Dropout {
	if p < 0 || p >= 1 {
		panic(fmt.Sprintf("NewDropout: drop probability must be in [0, 1), got %g", p))
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Dropout{p: p, rng: rng, training: true}
}

// Forward draws a fresh keep-mask in training mode and applies it.
func (d *Dropout) Forward(input *tensor.Tensor) *tensor.Tensor {
	checkInput("Dropout.Forward", input, -1)

	if !d.training {
		d.mask = nil
		return input
	}

	mask := tensor.Rand(input.Shape(), d.rng)
	data := mask.Data()
	for i, u := range data {
		if u < d.p {
			data[i] = 0
		} else {
			data[i] = 1
		}
	}
	d.mask = mask

	return input.Mul(mask).Scale(d.scale())
}

// Backward applies the cached mask and scale to the gradient.
//
// Panics in inference mode, where no mask exists.
func (d *Dropout) Backward(gradOutput *tensor.Tensor) *tensor.Tensor {
	mustHaveCache("Dropout.Backward", d.mask != nil)
	checkGrad("Dropout.Backward", gradOutput, d.mask.Shape())

	return gradOutput.Mul(d.mask).Scale(d.scale())
}

func (d *Dropout) scale() float64 {
	return 1 / (1 - d.p)
}

// Params returns nil (Dropout has no trainable parameters).
func (d *Dropout) Params() []*Parameter { return nil }

// SetTraining switches between masking (true) and identity (false).
func (d *Dropout) SetTraining(training bool) {
	d.training = training
}

// Kind returns KindDropout.
func (d *Dropout) Kind() Kind { return KindDropout }

func (d *Dropout) sealed() {}

// P returns the drop probability.
func (d *Dropout) P() float64 {
	return d.p
}
