package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/born-ml/stepnet/nn"
	"github.com/born-ml/stepnet/tensor"
	"github.com/born-ml/stepnet/train"
	"github.com/spf13/pflag"
)

// dataOptions are the flags shared by train and bench.
type dataOptions struct {
	trainPath string
	valPath   string
	header    bool
	labelCol  int
	classes   int
	batchSize int
	scale     float64
	valRatio  float64
	seed      uint64

	synthetic bool
	samples   int
	features  int

	hidden    []int
	batchNorm bool
	dropout   float64
}

func (o *dataOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.trainPath, "train", "", "training CSV file")
	fs.StringVar(&o.valPath, "val", "", "validation CSV file (default: split from --train)")
	fs.BoolVar(&o.header, "header", false, "CSV files start with a header row")
	fs.IntVar(&o.labelCol, "label-col", 0, "column holding the class label")
	fs.IntVar(&o.classes, "classes", 10, "number of classes")
	fs.IntVar(&o.batchSize, "batch", 256, "mini-batch size")
	fs.Float64Var(&o.scale, "scale", 255, "divide features by this value")
	fs.Float64Var(&o.valRatio, "val-ratio", 0.8, "training share when splitting a validation set off --train")
	fs.Uint64Var(&o.seed, "seed", 1, "random seed for shuffling and initialization")

	fs.BoolVar(&o.synthetic, "synthetic", false, "generate Gaussian blobs instead of reading CSV")
	fs.IntVar(&o.samples, "samples", 2000, "synthetic sample count")
	fs.IntVar(&o.features, "features", 8, "synthetic feature count")

	fs.IntSliceVar(&o.hidden, "hidden", []int{128, 64}, "hidden layer widths")
	fs.BoolVar(&o.batchNorm, "batchnorm", false, "add BatchNorm after each hidden Affine")
	fs.Float64Var(&o.dropout, "dropout", 0, "dropout probability after each hidden ReLU")
}

func (o *dataOptions) validate() error {
	if !o.synthetic && o.trainPath == "" {
		return errors.New("either --train or --synthetic is required")
	}
	if o.classes < 2 {
		return fmt.Errorf("--classes must be at least 2, got %d", o.classes)
	}
	if o.synthetic && o.samples < o.classes {
		return fmt.Errorf("--samples must be at least --classes (%d), got %d", o.classes, o.samples)
	}
	if o.synthetic && o.features <= 0 {
		return fmt.Errorf("--features must be positive, got %d", o.features)
	}
	if o.dropout < 0 || o.dropout >= 1 {
		return fmt.Errorf("--dropout must be in [0, 1), got %g", o.dropout)
	}
	for _, h := range o.hidden {
		if h <= 0 {
			return fmt.Errorf("--hidden widths must be positive, got %v", o.hidden)
		}
	}
	return nil
}

func (o *dataOptions) rng() *rand.Rand {
	return rand.New(rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15))
}

// datasets is the encoded input of a run.
type datasets struct {
	train    []train.Batch
	val      []train.Batch
	features int
}

// load reads or generates the data, splits a validation set when none is
// given and returns shuffled, encoded batches.
func (o *dataOptions) load(logger *slog.Logger) (*datasets, error) {
	rng := o.rng()

	var trainSet, valSet *tensor.Tensor
	labelCol, scale := o.labelCol, o.scale
	switch {
	case o.synthetic:
		all := train.Blobs(train.BlobsConfig{
			Samples:  o.samples,
			Features: o.features,
			Classes:  o.classes,
		}, rng)
		labelCol, scale = 0, 1

		var err error
		if trainSet, valSet, err = train.Split(all, o.valRatio); err != nil {
			return nil, err
		}
	default:
		var err error
		if trainSet, err = train.LoadCSV(o.trainPath, o.header); err != nil {
			return nil, err
		}
		if o.valPath != "" {
			if valSet, err = train.LoadCSV(o.valPath, o.header); err != nil {
				return nil, err
			}
		} else if trainSet, valSet, err = train.Split(trainSet, o.valRatio); err != nil {
			return nil, err
		}
	}

	if valSet.Dim(1) != trainSet.Dim(1) {
		return nil, fmt.Errorf("validation set has %d columns, training set %d", valSet.Dim(1), trainSet.Dim(1))
	}

	trainBatches, err := train.CreateBatches(trainSet, labelCol, o.batchSize, rng)
	if err != nil {
		return nil, fmt.Errorf("training set: %w", err)
	}
	valBatches, err := train.CreateBatches(valSet, labelCol, o.batchSize, rng)
	if err != nil {
		return nil, fmt.Errorf("validation set: %w", err)
	}

	logger.Info("data loaded",
		slog.Int("train_rows", trainSet.Dim(0)),
		slog.Int("val_rows", valSet.Dim(0)),
		slog.Int("features", trainSet.Dim(1)-1),
		slog.Int("train_batches", len(trainBatches)),
	)

	return &datasets{
		train:    train.Encode(trainBatches, o.classes, scale),
		val:      train.Encode(valBatches, o.classes, scale),
		features: trainSet.Dim(1) - 1,
	}, nil
}

// buildNetwork stacks Affine, optional BatchNorm, ReLU and optional Dropout
// per hidden width, then an Affine and Softmax over the classes.
func (o *dataOptions) buildNetwork(inputs int, rng *rand.Rand) *nn.Sequential {
	src := rand.NewPCG(rng.Uint64(), rng.Uint64())

	var layers []nn.Layer
	in := inputs
	for _, width := range o.hidden {
		layers = append(layers, nn.NewAffine(in, width, nn.He{Src: src}, nn.Zero{}))
		if o.batchNorm {
			layers = append(layers, nn.NewBatchNorm(width, nn.Ones{}, nn.Zero{}))
		}
		layers = append(layers, nn.NewReLU())
		if o.dropout > 0 {
			layers = append(layers, nn.NewDropout(o.dropout, rand.New(rand.NewPCG(rng.Uint64(), rng.Uint64()))))
		}
		in = width
	}
	layers = append(layers,
		nn.NewAffine(in, o.classes, nn.Xavier{Src: src}, nn.Zero{}),
		nn.NewSoftmax(),
	)
	return nn.NewSequential(layers...)
}
