package data

import (
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/stepnet/internal/tensor"
	"github.com/samber/lo"
)

// Batch is one mini-batch: features X [n, features] and targets Y.
//
// CreateBatches produces Y as a [n, 1] label column; Encode turns it into a
// one-hot [n, classes] matrix ready for a cross-entropy loss.
type Batch struct {
	X *tensor.Tensor
	Y *tensor.Tensor
}

// Len returns the number of rows in the batch.
func (b Batch) Len() int {
	return b.X.Dim(0)
}

// CreateBatches shuffles the rows of data, splits column labelCol out as the
// label, and cuts the result into batches of batchSize rows. The last batch
// may be smaller.
//
// rng may be nil, in which case a randomly seeded generator is used.
func CreateBatches(data *tensor.Tensor, labelCol, batchSize int, rng *rand.Rand) ([]Batch, error) {
	if data.Rank() != 2 {
		return nil, fmt.Errorf("CreateBatches: expected 2D data, got shape %v", data.Shape())
	}
	rows, cols := data.Dim(0), data.Dim(1)
	if rows == 0 {
		return nil, ErrEmpty
	}
	if labelCol < 0 || labelCol >= cols {
		return nil, fmt.Errorf("CreateBatches: label column %d out of range [0, %d)", labelCol, cols)
	}
	if cols < 2 {
		return nil, fmt.Errorf("CreateBatches: need at least one feature column besides the label, got %d columns", cols)
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("CreateBatches: batch size must be positive, got %d", batchSize)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	indices := lo.Range(rows)
	rng.Shuffle(rows, func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	return lo.Map(lo.Chunk(indices, batchSize), func(chunk []int, _ int) Batch {
		x := tensor.Zeros(tensor.Shape{len(chunk), cols - 1})
		y := tensor.Zeros(tensor.Shape{len(chunk), 1})

		for i, src := range chunk {
			row := data.Row(src)
			features := x.Row(i)
			copy(features, row[:labelCol])
			copy(features[labelCol:], row[labelCol+1:])
			y.Set(i, 0, row[labelCol])
		}
		return Batch{X: x, Y: y}
	}), nil
}

// OneHot encodes a [n, 1] label column as a [n, numClasses] matrix.
//
// Labels are truncated to integers. A label outside [0, numClasses) yields
// an all-zero row.
func OneHot(labels *tensor.Tensor, numClasses int) *tensor.Tensor {
	if labels.Rank() != 2 || labels.Dim(1) != 1 {
		panic(fmt.Sprintf("OneHot: expected labels of shape [n, 1], got %v", labels.Shape()))
	}

	n := labels.Dim(0)
	out := tensor.Zeros(tensor.Shape{n, numClasses})
	for i := 0; i < n; i++ {
		label := labels.At(i, 0)
		if label < 0 || label >= float64(numClasses) {
			continue
		}
		out.Set(i, int(label), 1)
	}
	return out
}

// Encode returns batches with X multiplied by 1/scale and Y one-hot encoded.
// A scale of 0 or 1 leaves X unchanged.
func Encode(batches []Batch, numClasses int, scale float64) []Batch {
	return lo.Map(batches, func(b Batch, _ int) Batch {
		x := b.X
		if scale != 0 && scale != 1 {
			x = x.Scale(1 / scale)
		}
		return Batch{X: x, Y: OneHot(b.Y, numClasses)}
	})
}

// Split copies the first ratio·rows rows into head and the rest into tail.
func Split(data *tensor.Tensor, ratio float64) (head, tail *tensor.Tensor, err error) {
	if data.Rank() != 2 {
		return nil, nil, fmt.Errorf("Split: expected 2D data, got shape %v", data.Shape())
	}
	if ratio <= 0 || ratio >= 1 {
		return nil, nil, fmt.Errorf("Split: ratio must be in (0, 1), got %g", ratio)
	}

	rows, cols := data.Dim(0), data.Dim(1)
	cut := int(float64(rows) * ratio)
	if cut == 0 || cut == rows {
		return nil, nil, fmt.Errorf("Split: ratio %g leaves an empty side of %d rows: %w", ratio, rows, ErrEmpty)
	}

	values := data.Data()
	head, err = tensor.FromSlice(values[:cut*cols], tensor.Shape{cut, cols})
	if err != nil {
		return nil, nil, err
	}
	tail, err = tensor.FromSlice(values[cut*cols:], tensor.Shape{rows - cut, cols})
	if err != nil {
		return nil, nil, err
	}
	return head, tail, nil
}
