package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	intqmversion "github.com/qubo-tools/intqm/pkg/version"
)

type rootOptions struct {
	debug   bool
	version bool

	logger *logrus.Logger
}

func newRootCmd() *cobra.Command {
	o := rootOptions{logger: logrus.New()}

	cmd := &cobra.Command{
		Use:          "intqm",
		Short:        "Encode integer quadratic models as binary ones and sample them",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if o.debug {
				o.logger.SetLevel(logrus.DebugLevel)
			}
			o.logger.Debugf("log level %s", o.logger.Level)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.version {
				fmt.Fprint(cmd.OutOrStdout(), intqmversion.String())
				return nil
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVar(&o.debug, "debug", false, "use debug log level")
	cmd.Flags().BoolVar(&o.version, "version", false, "displays the intqm version")

	cmd.AddCommand(newDemoCmd(&o))
	cmd.AddCommand(newSolveCmd(&o))

	return cmd
}
