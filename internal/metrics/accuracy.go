// Package metrics scores predictions against targets.
package metrics

import (
	"fmt"

	"github.com/born-ml/stepnet/internal/tensor"
)

// Accuracy reduces a batch of predictions and targets to a score in [0, 1].
type Accuracy interface {
	Accuracy(pred, target *tensor.Tensor) float64
}

// OneHotArgmax counts a row as correct when the argmax of the prediction
// equals the argmax of the one-hot target.
type OneHotArgmax struct{}

// Accuracy returns the fraction of rows whose predicted class is correct.
// An empty batch scores 0.
func (OneHotArgmax) Accuracy(pred, target *tensor.Tensor) float64 {
	if !pred.Shape().Equal(target.Shape()) {
		panic(fmt.Sprintf("OneHotArgmax.Accuracy: predictions %v and targets %v must have the same shape",
			pred.Shape(), target.Shape()))
	}

	predicted := pred.ArgmaxRows()
	if len(predicted) == 0 {
		return 0
	}

	correct := 0
	for i, class := range target.ArgmaxRows() {
		if predicted[i] == class {
			correct++
		}
	}
	return float64(correct) / float64(len(predicted))
}
