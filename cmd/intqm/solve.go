package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/qubo-tools/intqm/pkg/ilp"
	"github.com/qubo-tools/intqm/pkg/iqm"
	"github.com/qubo-tools/intqm/pkg/lib/signals"
)

type solveOptions struct {
	*sampleOptions

	file    string
	penalty float64
}

func newSolveCmd(root *rootOptions) *cobra.Command {
	o := solveOptions{sampleOptions: newSampleOptions()}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Sample an integer linear program read from a YAML file",
		Long: `Minimizes cᵀx subject to Ax = b. The program file holds the fields
c, a, b, kinds and optionally penalty and precision. The constraints
are added to the objective as penalty·‖Ax - b‖².`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.file == "" {
				return errors.New("a program file is required (-f)")
			}
			overridePenalty := cmd.Flags().Changed("penalty")
			if overridePenalty && o.penalty <= 0 {
				return errors.Errorf("penalty must be positive, got %v", o.penalty)
			}
			program, err := ilp.Load(o.file)
			if err != nil {
				return err
			}
			if overridePenalty {
				program.Penalty = o.penalty
			}

			model, err := program.Encode(iqm.WithLogger(root.logger))
			if err != nil {
				return errors.Wrap(err, "encoding program")
			}

			ctx, cancel := context.WithCancel(signals.Context(root.logger))
			defer cancel()
			return o.run(ctx, cmd.OutOrStdout(), root.logger, model, program.Evaluate)
		},
	}
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "path to the program file")
	cmd.Flags().Float64Var(&o.penalty, "penalty", ilp.DefaultPenalty, "weight of the constraint residual, must be positive; overrides the program file, where 0 or no value means the default")
	o.addFlags(cmd.Flags())

	return cmd
}
