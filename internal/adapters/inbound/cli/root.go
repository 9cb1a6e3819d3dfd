// Package cli wires the cobra command surface onto the application
// services.
package cli

import (
	"go.uber.org/zap"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "boundary",
		Short:         "Static architectural analysis for multi-language codebases",
		Long:          "Boundary extracts a component graph from Go, Rust, TypeScript and Java sources, classifies architectural layers, scores the architecture, and reports boundary violations.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	logger := func() *zap.Logger {
		if verbose {
			l, err := zap.NewDevelopment()
			if err == nil {
				return l
			}
		}
		return zap.NewNop()
	}

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newAnalyzeCmd(logger))
	cmd.AddCommand(newCheckCmd(logger))
	cmd.AddCommand(newWatchCmd(logger))
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
