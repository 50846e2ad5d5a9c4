// Package cli wires the ragbooster command-line interface: a root cobra
// command with train and bench subcommands.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Execute builds the root command and runs it against os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "ragbooster",
		Short: "Learn existence-probability weights for a retrieval-augmented classifier",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	root.AddCommand(newTrainCmd())
	root.AddCommand(newBenchCmd())

	return root
}
