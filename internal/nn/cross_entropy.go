package nn

import (
	"github.com/born-ml/stepnet/internal/tensor"
)

// CrossEntropyLoss computes cross-entropy between predicted probabilities
// and one-hot targets.
//
// Predictions are probabilities, typically the output of a Softmax layer,
// whose own Backward turns this gradient into a logit gradient.
//
// Mathematical Formulation:
//
//	Loss = -(1/N) Σ_rows Σ_classes target ⊙ ln(clip(pred, ε, 1-ε))
//
// Gradient (Backward):
//
//	∂L/∂pred = -(target / max(pred, ε)) / N
//
// Usage:
//
//	criterion := nn.NewCrossEntropyLoss()
//	probs := model.Forward(input)             // [batch_size, num_classes]
//	loss := criterion.Forward(probs, oneHot)  // oneHot: [batch_size, num_classes]
//	model.Backward(criterion.Backward(probs, oneHot))
type CrossEntropyLoss struct{}

// NewCrossEntropyLoss creates a new cross-entropy loss function.
func NewCrossEntropyLoss() *CrossEntropyLoss {
	return &CrossEntropyLoss{}
}

// Forward returns the batch-mean cross-entropy.
func (c *CrossEntropyLoss) Forward(pred, target *tensor.Tensor) float64 {
	checkSameShape("CrossEntropyLoss.Forward", pred, target)

	logProbs := pred.Clamp(Epsilon, 1-Epsilon).Log()
	return -target.Mul(logProbs).Sum() / float64(pred.Dim(0))
}

// Backward returns the gradient of Forward with respect to pred.
func (c *CrossEntropyLoss) Backward(pred, target *tensor.Tensor) *tensor.Tensor {
	checkSameShape("CrossEntropyLoss.Backward", pred, target)

	return target.Div(pred.ClampMin(Epsilon)).Scale(-1 / float64(pred.Dim(0)))
}
