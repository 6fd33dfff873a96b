// Command sortcheck sorts randomly shaped arrays with the engine and checks
// every result against a simple stable reference sort.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	var flags flagValues
	cmd := &cobra.Command{
		Use:   "sortcheck",
		Short: "Check the array sort engine against a reference sort",
		Long: "Generate arrays of several shapes (random, sorted, reversed, runs, " +
			"holes, ...), sort them with the engine and compare the results with a " +
			"reference stable sort. Some inputs use a comparator that throws part way " +
			"through, which must leave the array untouched.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.load(cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := newLogger(opts.Verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			logger.Info("starting",
				zap.Int("iterations", opts.Iterations),
				zap.Int("workers", opts.Workers),
				zap.Int("maxLength", opts.MaxLength),
				zap.Strings("shapes", opts.Shapes))
			s, err := newChecker(opts, logger).run(cmd.Context())
			if err != nil {
				return err
			}
			logger.Info("done",
				zap.Int64("checked", s.checked),
				zap.Int64("aborted", s.aborted),
				zap.Int64("largest", s.largest))
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d arrays checked (%d aborted by the comparator)\n", s.checked, s.aborted)
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Cobra has already printed the error message.
		os.Exit(1)
	}
}
