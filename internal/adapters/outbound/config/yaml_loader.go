// Package config loads the analyzer configuration from .boundary.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/boundary-cli/boundary/internal/domain"
)

const fileName = ".boundary.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .boundary.yaml.
type YAMLLoader struct{}

func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .boundary.yaml from root. A missing file yields the default
// configuration; an invalid one is a ConfigError.
func (l *YAMLLoader) Load(root string) (*domain.Config, error) {
	data, err := os.ReadFile(filepath.Join(root, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := domain.DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, domain.NewConfigError("parsing %s: %v", fileName, err)
	}
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", fileName, err)
	}
	return cfg, nil
}

// applyDefaults restores defaulted fields the YAML decoder zeroed because
// the file set a parent key without all children.
func applyDefaults(cfg *domain.Config) {
	if cfg.Layers.ArchitectureMode == "" {
		cfg.Layers.ArchitectureMode = domain.ModeDDD
	}
	if cfg.Rules.FailOn == "" {
		cfg.Rules.FailOn = domain.SeverityError
	}
	s := &cfg.Scoring
	if s.LayerIsolationWeight == 0 && s.DependencyDirectionWeight == 0 && s.InterfaceCoverageWeight == 0 {
		s.LayerIsolationWeight = 0.40
		s.DependencyDirectionWeight = 0.40
		s.InterfaceCoverageWeight = 0.20
	}
	for i := range cfg.Rules.CustomRules {
		if cfg.Rules.CustomRules[i].Action == "" {
			cfg.Rules.CustomRules[i].Action = "deny"
		}
	}
}
