package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/boundary-cli/boundary/internal/adapters/outbound/history"
	"github.com/boundary-cli/boundary/internal/adapters/outbound/tui"
	"github.com/boundary-cli/boundary/internal/application"
	"github.com/boundary-cli/boundary/internal/domain"
)

func newCheckCmd(logger func() *zap.Logger) *cobra.Command {
	var (
		jsonOutput   bool
		noRegression bool
		minScore     int
	)

	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Analyze and fail on violations or score regression",
		Long:  "Run the analysis and exit non-zero when violations reach the configured fail_on severity, the score misses min_score, or (with --no-regression) the score dropped since the last snapshot.",
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

			hist := history.New()
			svc := application.NewCheckService(newAnalyzeService(logger()), hist)

			res, err := svc.Check(absPath, noRegression)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("min-score") {
				overall := res.Analysis.Score.Overall
				res.Check.Passed = res.Check.FailingViolationCount == 0 && !res.Check.Regression &&
					(overall == nil || *overall >= minScore)
			}

			if jsonOutput {
				if err := renderJSON(cmd, res); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderCheck(res))
			}

			if !res.Check.Passed {
				switch {
				case res.Check.Regression:
					return &domain.CheckFailedError{Reason: "score regressed against the last snapshot"}
				case res.Check.FailingViolationCount > 0:
					return &domain.CheckFailedError{
						Reason: fmt.Sprintf("%d violation(s) at or above %s", res.Check.FailingViolationCount, res.Check.FailOn),
					}
				default:
					return &domain.CheckFailedError{Reason: "overall score below minimum"}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().BoolVar(&noRegression, "no-regression", false, "Fail when the overall score dropped since the last snapshot")
	cmd.Flags().IntVar(&minScore, "min-score", 0, "Minimum overall score, overriding rules.min_score")
	return cmd
}
