package nn

import (
	"github.com/born-ml/stepnet/internal/tensor"
)

const (
	// Epsilon floors variances, probabilities and second moments before a
	// division, square root or logarithm.
	Epsilon = 1e-15

	// runningMomentum weights the current batch in the running statistics.
	runningMomentum = 0.1
)

// BatchNorm normalizes each feature over the batch axis.
//
// Formula: Y = gamma * (X - mean) / sqrt(max(var, eps)) + beta
//
// Where:
//   - mean and var are per-feature population statistics of the batch
//   - gamma is the learnable scale [features]
//   - beta is the learnable shift [features]
//
// By default the current batch's statistics are used in both training and
// inference mode. WithRunningStats(true) switches inference mode to the
// exponential running averages gathered during training.
//
// Example:
//
//	bn := nn.NewBatchNorm(128, nn.Ones{}, nn.Zero{})
//	y := bn.Forward(x) // [batch, 128] → [batch, 128]
type BatchNorm struct {
	features int
	gamma    *Parameter // [features]
	beta     *Parameter // [features]

	training    bool
	useRunning  bool
	runningMean *tensor.Tensor // [1, features]
	runningVar  *tensor.Tensor // [1, features]
	cache       BatchNormCache
	cacheReady  bool
}

// BatchNormCache holds what BatchNorm.Backward needs from the last Forward.
type BatchNormCache struct {
	Z    *tensor.Tensor // normalized input before gamma/beta, [batch, features]
	Mean *tensor.Tensor // [1, features]
	Var  *tensor.Tensor // [1, features], before the epsilon floor
}

// NewBatchNorm creates a BatchNorm layer over the given number of features.
func NewBatchNorm(features int, gammaInit, betaInit Initializer) *BatchNorm {
	return &BatchNorm{
		features:    features,
		gamma:       gammaInit.Initialize("batchnorm.gamma", tensor.Shape{features}),
		beta:        betaInit.Initialize("batchnorm.beta", tensor.Shape{features}),
		training:    true,
		runningMean: tensor.Zeros(tensor.Shape{1, features}),
		runningVar:  tensor.Ones(tensor.Shape{1, features}),
	}
}

// WithRunningStats selects whether inference mode normalizes with running
// statistics instead of the batch's own.
func (b *BatchNorm) WithRunningStats(enabled bool) *BatchNorm {
	b.useRunning = enabled
	return b
}

// Forward normalizes x per feature, then scales by gamma and shifts by beta.
func (b *BatchNorm) Forward(input *tensor.Tensor) *tensor.Tensor {
	checkInput("BatchNorm.Forward", input, b.features)

	mean := input.MeanDim(0, true)
	centered := input.Sub(mean)
	variance := centered.Square().MeanDim(0, true)

	if b.training {
		b.runningMean = b.runningMean.Scale(1 - runningMomentum).Add(mean.Scale(runningMomentum))
		b.runningVar = b.runningVar.Scale(1 - runningMomentum).Add(variance.Scale(runningMomentum))
	} else if b.useRunning {
		mean = b.runningMean
		variance = b.runningVar
		centered = input.Sub(mean)
	}

	std := variance.ClampMin(Epsilon).Sqrt()
	z := centered.Div(std)

	b.cache = BatchNormCache{Z: z, Mean: mean, Var: variance}
	b.cacheReady = true

	return z.Mul(b.gamma.Value()).Add(b.beta.Value())
}

// Backward stores dgamma = colsum(dY⊙z) and dbeta = colsum(dY) and returns
//
//	dX = (gamma/std) ⊙ (dY - (z⊙dgamma + dbeta)/N)
//
// which accounts for every row's influence on the batch mean and variance.
func (b *BatchNorm) Backward(gradOutput *tensor.Tensor) *tensor.Tensor {
	mustHaveCache("BatchNorm.Backward", b.cacheReady)
	z := b.cache.Z
	checkGrad("BatchNorm.Backward", gradOutput, z.Shape())

	n := float64(z.Dim(0))
	std := b.cache.Var.ClampMin(Epsilon).Sqrt()

	gradGamma := gradOutput.Mul(z).SumDim(0, false)
	gradBeta := gradOutput.SumDim(0, false)

	correction := z.Mul(gradGamma).Add(gradBeta).Scale(1 / n)
	gradInput := b.gamma.Value().Div(std).Mul(gradOutput.Sub(correction))

	b.gamma.SetGrad(gradGamma)
	b.beta.SetGrad(gradBeta)

	return gradInput
}

// Params returns [gamma, beta].
func (b *BatchNorm) Params() []*Parameter {
	return []*Parameter{b.gamma, b.beta}
}

// SetTraining toggles running-statistic updates. Normalization itself only
// changes when WithRunningStats(true) was requested.
func (b *BatchNorm) SetTraining(training bool) {
	b.training = training
}

// Kind returns KindBatchNorm.
func (b *BatchNorm) Kind() Kind { return KindBatchNorm }

func (b *BatchNorm) sealed() {}

// Cache returns the tensors cached by the last Forward.
func (b *BatchNorm) Cache() BatchNormCache {
	return b.cache
}

// RunningMean returns the running per-feature mean, [1, features].
func (b *BatchNorm) RunningMean() *tensor.Tensor {
	return b.runningMean
}

// RunningVar returns the running per-feature variance, [1, features].
func (b *BatchNorm) RunningVar() *tensor.Tensor {
	return b.runningVar
}

// Gamma returns the scale parameter.
func (b *BatchNorm) Gamma() *Parameter {
	return b.gamma
}

// Beta returns the shift parameter.
func (b *BatchNorm) Beta() *Parameter {
	return b.beta
}
