package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boundary-cli/boundary/internal/adapters/outbound/config"
	"github.com/boundary-cli/boundary/internal/domain"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".boundary.yaml"), []byte(content), 0o644))
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.New().Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, domain.ModeDDD, cfg.Layers.ArchitectureMode)
	assert.Equal(t, domain.SeverityError, cfg.Rules.FailOn)
	assert.InDelta(t, 0.40, cfg.Scoring.LayerIsolationWeight, 1e-9)
	assert.InDelta(t, 0.20, cfg.Scoring.InterfaceCoverageWeight, 1e-9)
}

func TestLoad_FullConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
languages: [go, typescript]
exclude_patterns:
  - "**/generated/**"
layers:
  domain:
    - "**/core/**"
  cross_cutting:
    - "**/logging/**"
  architecture_mode: service-oriented
  overrides:
    - scope: "services/billing/**"
      domain:
        - "services/billing/model/**"
      architecture_mode: active-record
scoring:
  layer_isolation_weight: 0.5
  dependency_direction_weight: 0.3
  interface_coverage_weight: 0.2
rules:
  fail_on: warning
  min_score: 70
  severities:
    missing_port: error
  custom_rules:
    - name: no-sql-in-handlers
      from_pattern: "**/handler/**"
      to_pattern: "**/database/sql**"
      action: deny
      severity: warning
`)

	cfg, err := config.New().Load(dir)
	require.NoError(t, err)

	assert.Equal(t, []domain.Language{domain.LangGo, domain.LangTypeScript}, cfg.Languages)
	assert.Equal(t, domain.ModeServiceOriented, cfg.Layers.ArchitectureMode)
	assert.Equal(t, []string{"**/core/**"}, cfg.Layers.Domain)
	require.Len(t, cfg.Layers.Overrides, 1)
	assert.Equal(t, domain.ModeActiveRecord, cfg.Layers.Overrides[0].ArchitectureMode)
	assert.Equal(t, domain.SeverityWarning, cfg.Rules.FailOn)
	require.NotNil(t, cfg.Rules.MinScore)
	assert.Equal(t, 70, *cfg.Rules.MinScore)
	assert.Equal(t, domain.SeverityError, cfg.SeverityFor(domain.ViolationMissingPort))
	require.Len(t, cfg.Rules.CustomRules, 1)
}

func TestLoad_WeightsMustSumToOne(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
scoring:
  layer_isolation_weight: 0.5
  dependency_direction_weight: 0.5
  interface_coverage_weight: 0.2
`)

	_, err := config.New().Load(dir)
	require.Error(t, err)
	var cfgErr *domain.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, err.Error(), "weights")
}

func TestLoad_UnknownModeRejected(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
layers:
  architecture_mode: layered
`)

	_, err := config.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "architecture_mode")
}

func TestLoad_UnknownSeverityRejected(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
rules:
  severities:
    layer_boundary: fatal
`)

	_, err := config.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "severity")
}

func TestLoad_CustomRuleRequiresDenyAction(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
rules:
  custom_rules:
    - name: broken
      from_pattern: "**/a/**"
      to_pattern: "**/b/**"
      action: allow
      severity: error
`)

	_, err := config.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "action")
}
