package nn

import (
	"fmt"

	"github.com/born-ml/stepnet/internal/tensor"
)

// Loss reduces a prediction and a target to a scalar and provides the
// gradient that seeds the backward pass.
type Loss interface {
	// Forward returns the scalar loss. Used for reporting only.
	Forward(pred, target *tensor.Tensor) float64

	// Backward returns dL/dPred with the shape of pred.
	Backward(pred, target *tensor.Tensor) *tensor.Tensor
}

// MSELoss computes Mean Squared Error loss.
//
// Loss = mean((predictions - targets)²)
//
// MSE is commonly used for regression tasks where the goal is to predict
// continuous values.
type MSELoss struct{}

// NewMSELoss creates a new MSE loss function.
func NewMSELoss() *MSELoss {
	return &MSELoss{}
}

// Forward computes mean((pred - target)²) over all elements.
func (m *MSELoss) Forward(pred, target *tensor.Tensor) float64 {
	checkSameShape("MSELoss.Forward", pred, target)

	diff := pred.Sub(target)
	return diff.Square().Sum() / float64(diff.NumElements())
}

// Backward returns 2(pred - target) / numel.
func (m *MSELoss) Backward(pred, target *tensor.Tensor) *tensor.Tensor {
	checkSameShape("MSELoss.Backward", pred, target)

	return pred.Sub(target).Scale(2 / float64(pred.NumElements()))
}

func checkSameShape(op string, pred, target *tensor.Tensor) {
	if pred.Rank() != 2 {
		panic(fmt.Sprintf("%s: predictions must be 2D [batch_size, classes], got %v", op, pred.Shape()))
	}
	if !pred.Shape().Equal(target.Shape()) {
		panic(fmt.Sprintf("%s: predictions %v and targets %v must have the same shape",
			op, pred.Shape(), target.Shape()))
	}
}
