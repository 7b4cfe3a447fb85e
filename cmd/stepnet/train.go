package main

import (
	"fmt"
	"log/slog"

	"github.com/born-ml/stepnet/nn"
	"github.com/born-ml/stepnet/optim"
	"github.com/born-ml/stepnet/train"
	"github.com/spf13/cobra"
)

func newTrainCommand() *cobra.Command {
	var (
		opts      dataOptions
		epochs    int
		optimizer string
		lr        float64
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a classifier and report validation accuracy per epoch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			if epochs <= 0 {
				return fmt.Errorf("--epochs must be positive, got %d", epochs)
			}
			logger := slog.Default()

			ds, err := opts.load(logger)
			if err != nil {
				return err
			}
			opt, err := optim.New(optimizer, lr)
			if err != nil {
				return err
			}

			net := opts.buildNetwork(ds.features, opts.rng())
			logger.Info("network built",
				slog.String("layers", nn.Describe(net)),
				slog.Int("params", nn.CountParams(net)),
				slog.String("optimizer", opt.Name()),
				slog.Float64("lr", opt.LR()),
			)

			model := train.NewModel(net, nn.NewCrossEntropyLoss(), opt).WithMetric(train.OneHotArgmax{})
			history, err := model.Fit(cmd.Context(), epochs, ds.train, ds.val)
			if err != nil {
				return fmt.Errorf("training stopped after %d epochs: %w", len(history), err)
			}

			last := history[len(history)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "final: loss=%.4f val_loss=%.4f val_accuracy=%.4f\n",
				last.TrainLoss, last.ValLoss, last.ValAccuracy)
			return nil
		},
	}

	opts.addFlags(cmd.Flags())
	cmd.Flags().IntVar(&epochs, "epochs", 10, "passes over the training set")
	cmd.Flags().StringVar(&optimizer, "optimizer", "adam", fmt.Sprintf("one of %v", optim.Names()))
	cmd.Flags().Float64Var(&lr, "lr", 0.005, "learning rate")
	return cmd
}
