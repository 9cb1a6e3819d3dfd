package tui_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boundary-cli/boundary/internal/adapters/outbound/tui"
	"github.com/boundary-cli/boundary/internal/domain"
)

func intPtr(v int) *int { return &v }

func fullResult() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Score: domain.ScoreReport{
			Overall:              intPtr(82),
			LayerConformance:     intPtr(78),
			DependencyCompliance: intPtr(90),
			InterfaceCoverage:    intPtr(100),
			StructuralPresence:   100,
		},
		Patterns: []domain.PatternConfidence{
			{Pattern: domain.PatternDDDHexagonal, Confidence: 0.8},
		},
		ComponentCount:  12,
		DependencyCount: 9,
	}
}

func TestRenderAnalysis_TitleCaseLabels(t *testing.T) {
	out := tui.RenderAnalysis(fullResult())

	assert.Contains(t, out, "Overall Score: 82")
	assert.Contains(t, out, "Structural Presence: 100%")
	assert.Contains(t, out, "Layer Conformance: 78%")
	assert.Contains(t, out, "Dependency Compliance: 90%")
	assert.Contains(t, out, "Interface Coverage: 100%")
	assert.Contains(t, out, "DDD/Hexagonal")
	assert.Contains(t, out, "No violations found.")
	// The legacy label must not resurface.
	assert.NotContains(t, out, "Layer Isolation")
}

func TestRenderAnalysis_OmitsUndefinedDimensions(t *testing.T) {
	res := fullResult()
	res.Score.Overall = nil
	res.Score.OverallReason = "no pattern matched with confidence >= 0.5"
	res.Score.InterfaceCoverage = nil
	res.Score.LayerConformance = nil
	res.Score.DependencyCompliance = nil

	out := tui.RenderAnalysis(res)

	assert.Contains(t, out, "not computed (no pattern matched with confidence >= 0.5)")
	assert.NotContains(t, out, "Interface Coverage")
	assert.NotContains(t, out, "Layer Conformance")
	assert.NotContains(t, out, "Dependency Compliance")
}

func TestRenderAnalysis_Violations(t *testing.T) {
	res := fullResult()
	res.Violations = []domain.Violation{
		{
			Kind: domain.ViolationLayerBoundary, Severity: domain.SeverityError,
			Location: domain.Location{File: "internal/domain/user/bad.go", Line: 3, Column: 8},
			Message:  "domain layer depends on infrastructure",
		},
		{
			Kind: domain.ViolationMissingPort, Severity: domain.SeverityWarning,
			Location: domain.Location{File: "internal/infrastructure/cache.go", Line: 7, Column: 1},
			Message:  "adapter RedisCacheAdapter has no corresponding port",
		},
	}

	out := tui.RenderAnalysis(res)
	assert.Contains(t, out, "1 errors")
	assert.Contains(t, out, "1 warnings")
	assert.Contains(t, out, "internal/domain/user/bad.go:3:8")
}

func TestRenderCheck_FailureSummary(t *testing.T) {
	res := &domain.CheckResult{
		Analysis: fullResult(),
		Check: domain.CheckStatus{
			Passed: false, FailOn: domain.SeverityError, FailingViolationCount: 2,
		},
	}
	out := tui.RenderCheck(res)
	assert.Contains(t, out, "CHECK FAILED")

	res.Check = domain.CheckStatus{Passed: true, FailOn: domain.SeverityError}
	assert.Contains(t, tui.RenderCheck(res), "CHECK PASSED")
}

func TestRenderCheck_RegressionShowsBothScores(t *testing.T) {
	res := &domain.CheckResult{
		Analysis: fullResult(),
		Check: domain.CheckStatus{
			Passed: false, FailOn: domain.SeverityError,
			PreviousOverall: intPtr(90), Regression: true,
		},
	}
	out := tui.RenderCheck(res)
	assert.Contains(t, out, "Previous Score: 90")
	assert.Contains(t, out, "Current Score: 82")
	assert.True(t, strings.Contains(out, "CHECK FAILED"))
}
