package application

import (
	"fmt"

	"github.com/boundary-cli/boundary/internal/domain"
)

// CheckService runs an analysis and evaluates it against the configured
// thresholds: fail_on severity, min_score, and (optionally) the last
// recorded snapshot.
type CheckService struct {
	analyze *AnalyzeService
	history domain.SnapshotStore
}

func NewCheckService(analyze *AnalyzeService, history domain.SnapshotStore) *CheckService {
	return &CheckService{analyze: analyze, history: history}
}

// Check analyzes root and returns the pass/fail status. The previous
// snapshot is read before the new one is recorded so regression always
// compares against the prior run.
func (s *CheckService) Check(root string, checkRegression bool) (*domain.CheckResult, error) {
	var previous *domain.Snapshot
	if checkRegression && s.history != nil {
		var err error
		previous, err = s.history.Last(root)
		if err != nil {
			return nil, fmt.Errorf("reading snapshot history: %w", err)
		}
	}

	res, err := s.analyze.Analyze(root)
	if err != nil {
		return nil, err
	}

	cfg := res.Project.Config
	failOn := cfg.Rules.FailOn
	if failOn == "" {
		failOn = domain.SeverityError
	}

	status := domain.CheckStatus{FailOn: failOn, Passed: true}
	for _, v := range res.Violations {
		if v.Severity.Rank() >= failOn.Rank() {
			status.FailingViolationCount++
		}
	}
	if status.FailingViolationCount > 0 {
		status.Passed = false
	}

	if cfg.Rules.MinScore != nil && res.Score.Overall != nil && *res.Score.Overall < *cfg.Rules.MinScore {
		status.Passed = false
	}

	if checkRegression && previous != nil && previous.Overall != nil && res.Score.Overall != nil {
		status.PreviousOverall = previous.Overall
		if *previous.Overall > *res.Score.Overall {
			status.Regression = true
			status.Passed = false
		}
	}

	s.analyze.Record(root, res)

	return &domain.CheckResult{Analysis: res, Check: status}, nil
}
