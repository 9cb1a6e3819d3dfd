package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/boundary-cli/boundary/internal/adapters/outbound/config"
	"github.com/boundary-cli/boundary/internal/adapters/outbound/gitinfo"
	"github.com/boundary-cli/boundary/internal/adapters/outbound/history"
	"github.com/boundary-cli/boundary/internal/adapters/outbound/parser"
	"github.com/boundary-cli/boundary/internal/adapters/outbound/scanner"
	"github.com/boundary-cli/boundary/internal/adapters/outbound/tui"
	"github.com/boundary-cli/boundary/internal/application"
)

func newAnalyzeService(logger *zap.Logger) *application.AnalyzeService {
	return application.NewAnalyzeService(
		scanner.New(),
		parser.NewRegistry(nil),
		config.New(),
		history.New(),
		gitinfo.New(),
		logger,
	)
}

func newAnalyzeCmd(logger func() *zap.Logger) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze a project's architecture",
		Long:  "Extract the component graph, classify layers, score the architecture and list violations.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			svc := newAnalyzeService(logger())
			res, err := svc.Analyze(absPath)
			if err != nil {
				return err
			}
			svc.Record(absPath, res)

			if jsonOutput {
				return renderJSON(cmd, res)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderAnalysis(res))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	return cmd
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
