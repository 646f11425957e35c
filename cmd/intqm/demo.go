package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/qubo-tools/intqm/pkg/iqm"
	"github.com/qubo-tools/intqm/pkg/lib/signals"
)

func newDemoCmd(root *rootOptions) *cobra.Command {
	o := newSampleOptions()

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Sample x² - 4x + y² + 6y over an unsigned x and a signed y",
		Long: `Builds the model x² - 4x + y² + 6y, where x is an unsigned integer
with 4 bits and y a signed integer with 5 bits, and samples it. The
optimum is x = 2, y = -3 with energy -13.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(signals.Context(root.logger))
			defer cancel()

			model, err := demoModel(iqm.WithLogger(root.logger))
			if err != nil {
				return err
			}
			return o.run(ctx, cmd.OutOrStdout(), root.logger, model, nil)
		},
	}
	o.addFlags(cmd.Flags())

	return cmd
}

func demoModel(options ...iqm.Option) (*iqm.Model, error) {
	model, err := iqm.New(append([]iqm.Option{iqm.WithUnsignedPrecision(4)}, options...)...)
	if err != nil {
		return nil, err
	}
	if _, err := model.AddVariable("x", -4, iqm.UnsignedInteger); err != nil {
		return nil, err
	}
	if _, err := model.AddVariable("y", 6, iqm.SignedInteger); err != nil {
		return nil, err
	}
	if err := model.AddInteraction("x", "x", 1); err != nil {
		return nil, err
	}
	if err := model.AddInteraction("y", "y", 1); err != nil {
		return nil, err
	}
	return model, nil
}
