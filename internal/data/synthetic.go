package data

import (
	"math/rand/v2"

	"github.com/born-ml/stepnet/internal/tensor"
	"gonum.org/v1/gonum/stat/distuv"
)

// BlobsConfig describes a synthetic Gaussian-blob classification dataset.
type BlobsConfig struct {
	Samples  int     // Number of rows (default: 1000)
	Features int     // Feature columns (default: 8)
	Classes  int     // Number of blobs (default: 3)
	Spread   float64 // Standard deviation around each center (default: 1)
	Radius   float64 // Centers are drawn from U(-Radius, Radius) (default: 5)
}

// Blobs generates a dataset in the same layout LoadCSV produces for a
// labeled file: column 0 is the class, columns 1..Features the point.
//
// Class i owns rows i, i+Classes, i+2·Classes, ...
func Blobs(config BlobsConfig, rng *rand.Rand) *tensor.Tensor {
	if config.Samples == 0 {
		config.Samples = 1000
	}
	if config.Features == 0 {
		config.Features = 8
	}
	if config.Classes == 0 {
		config.Classes = 3
	}
	if config.Spread == 0 {
		config.Spread = 1
	}
	if config.Radius == 0 {
		config.Radius = 5
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	centerDist := distuv.Uniform{Min: -config.Radius, Max: config.Radius, Src: rng}
	noise := distuv.Normal{Mu: 0, Sigma: config.Spread, Src: rng}

	centers := make([][]float64, config.Classes)
	for c := range centers {
		centers[c] = make([]float64, config.Features)
		for j := range centers[c] {
			centers[c][j] = centerDist.Rand()
		}
	}

	out := tensor.Zeros(tensor.Shape{config.Samples, config.Features + 1})
	for i := 0; i < config.Samples; i++ {
		class := i % config.Classes
		row := out.Row(i)
		row[0] = float64(class)
		for j, c := range centers[class] {
			row[j+1] = c + noise.Rand()
		}
	}
	return out
}
