// Package tui renders analysis results as styled terminal text.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/boundary-cli/boundary/internal/domain"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger).Bold(true)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
)

// RenderAnalysis renders the full report: header, pattern line, score
// block, violations. Undefined dimensions are omitted; an absent overall
// prints its reason instead of a number.
func RenderAnalysis(res *domain.AnalysisResult) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("boundary"))
	b.WriteString(dimStyle.Render("  architectural analysis"))
	b.WriteString("\n\n")

	if top, ok := res.TopPattern(); ok {
		b.WriteString(fmt.Sprintf("  Detected Pattern: %s (%d%% confidence)\n",
			top.Pattern.DisplayName(), int(top.Confidence*100)))
	}
	b.WriteString(fmt.Sprintf("  Components: %d\n", res.ComponentCount))
	b.WriteString(fmt.Sprintf("  Dependencies: %d\n", res.DependencyCount))
	b.WriteString("\n")

	renderScore(&b, res.Score)

	b.WriteString("\n")
	renderViolations(&b, res.Violations)

	return b.String()
}

// RenderCheck renders the analysis followed by the one-line check summary.
func RenderCheck(res *domain.CheckResult) string {
	var b strings.Builder
	b.WriteString(RenderAnalysis(res.Analysis))
	b.WriteString("\n")

	c := res.Check
	if c.PreviousOverall != nil && res.Analysis.Score.Overall != nil {
		b.WriteString(fmt.Sprintf("  Previous Score: %d\n", *c.PreviousOverall))
		b.WriteString(fmt.Sprintf("  Current Score: %d\n", *res.Analysis.Score.Overall))
	}
	switch {
	case c.Passed:
		b.WriteString("  " + passStyle.Render("CHECK PASSED") + "\n")
	case c.Regression:
		b.WriteString("  " + failStyle.Render("CHECK FAILED") +
			dimStyle.Render("  score regressed against the last snapshot") + "\n")
	default:
		b.WriteString("  " + failStyle.Render("CHECK FAILED") +
			dimStyle.Render(fmt.Sprintf("  %d violation(s) at or above %s", c.FailingViolationCount, c.FailOn)) + "\n")
	}
	return b.String()
}

func renderScore(b *strings.Builder, s domain.ScoreReport) {
	b.WriteString("  " + titleStyle.Render("Scores") + "\n")
	if s.Overall != nil {
		b.WriteString(fmt.Sprintf("  Overall Score: %d\n", *s.Overall))
	} else {
		b.WriteString("  Overall Score: " + dimStyle.Render("not computed ("+s.OverallReason+")") + "\n")
	}
	b.WriteString(fmt.Sprintf("  Structural Presence: %d%%\n", s.StructuralPresence))
	if s.LayerConformance != nil {
		b.WriteString(fmt.Sprintf("  Layer Conformance: %d%%\n", *s.LayerConformance))
	}
	if s.DependencyCompliance != nil {
		b.WriteString(fmt.Sprintf("  Dependency Compliance: %d%%\n", *s.DependencyCompliance))
	}
	if s.InterfaceCoverage != nil {
		b.WriteString(fmt.Sprintf("  Interface Coverage: %d%%\n", *s.InterfaceCoverage))
	}
}

func renderViolations(b *strings.Builder, violations []domain.Violation) {
	if len(violations) == 0 {
		b.WriteString("  " + passStyle.Render("No violations found.") + "\n")
		return
	}

	var errors, warnings, infos int
	for _, v := range violations {
		switch v.Severity {
		case domain.SeverityError:
			errors++
		case domain.SeverityWarning:
			warnings++
		default:
			infos++
		}
	}

	b.WriteString("  " + titleStyle.Render("Violations") + "  ")
	if errors > 0 {
		b.WriteString(errorTagStyle.Render(fmt.Sprintf("%d errors", errors)) + "  ")
	}
	if warnings > 0 {
		b.WriteString(warnTagStyle.Render(fmt.Sprintf("%d warnings", warnings)) + "  ")
	}
	if infos > 0 {
		b.WriteString(infoTagStyle.Render(fmt.Sprintf("%d info", infos)))
	}
	b.WriteString("\n\n")

	for _, v := range violations {
		tag := infoTagStyle
		switch v.Severity {
		case domain.SeverityError:
			tag = errorTagStyle
		case domain.SeverityWarning:
			tag = warnTagStyle
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", tag.Render(strings.ToUpper(string(v.Severity))), v.Message))
		b.WriteString("    " + dimStyle.Render(fmt.Sprintf("%s:%d:%d", v.Location.File, v.Location.Line, v.Location.Column)) + "\n")
		if v.Suggestion != "" {
			b.WriteString("    " + dimStyle.Render(v.Suggestion) + "\n")
		}
	}
}
