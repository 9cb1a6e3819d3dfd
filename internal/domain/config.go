package domain

import (
	"math"
	"strings"

	"github.com/gobwas/glob"
	"github.com/hashicorp/go-multierror"
)

// Severity of a violation.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Rank orders severities: info < warning < error.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 2
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 0
	}
	return -1
}

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool { return s.Rank() >= 0 }

// ViolationKind names a built-in or custom violation class.
type ViolationKind string

const (
	ViolationLayerBoundary      ViolationKind = "layer_boundary"
	ViolationCircularDependency ViolationKind = "circular_dependency"
	ViolationMissingPort        ViolationKind = "missing_port"
	ViolationInitCoupling       ViolationKind = "init_coupling"
	ViolationAnemicDomain       ViolationKind = "anemic_domain"
	ViolationCustom             ViolationKind = "custom"
)

// DefaultSeverities maps each built-in kind to its default severity.
var DefaultSeverities = map[ViolationKind]Severity{
	ViolationLayerBoundary:      SeverityError,
	ViolationCircularDependency: SeverityError,
	ViolationMissingPort:        SeverityWarning,
	ViolationInitCoupling:       SeverityWarning,
	ViolationAnemicDomain:       SeverityInfo,
}

// ArchitectureMode is a relaxation preset altering which edges are
// violations.
type ArchitectureMode string

const (
	ModeDDD             ArchitectureMode = "ddd"
	ModeActiveRecord    ArchitectureMode = "active-record"
	ModeServiceOriented ArchitectureMode = "service-oriented"
)

// Valid reports whether m is a known mode.
func (m ArchitectureMode) Valid() bool {
	switch m {
	case ModeDDD, ModeActiveRecord, ModeServiceOriented:
		return true
	}
	return false
}

// LayerGlobs holds the path globs for the four concrete layers.
type LayerGlobs struct {
	Domain         []string `yaml:"domain"         json:"domain,omitempty"`
	Application    []string `yaml:"application"    json:"application,omitempty"`
	Infrastructure []string `yaml:"infrastructure" json:"infrastructure,omitempty"`
	Presentation   []string `yaml:"presentation"   json:"presentation,omitempty"`
}

// ForLayer returns the globs for one concrete layer.
func (g LayerGlobs) ForLayer(l Layer) []string {
	switch l {
	case LayerDomain:
		return g.Domain
	case LayerApplication:
		return g.Application
	case LayerInfrastructure:
		return g.Infrastructure
	case LayerPresentation:
		return g.Presentation
	}
	return nil
}

// DefaultLayerGlobs are used for any layer the config omits.
var DefaultLayerGlobs = LayerGlobs{
	Domain:         []string{"**/domain/**", "**/entity/**", "**/model/**"},
	Application:    []string{"**/application/**", "**/usecase/**", "**/service/**"},
	Infrastructure: []string{"**/infrastructure/**", "**/adapter/**", "**/repository/**", "**/persistence/**"},
	Presentation:   []string{"**/presentation/**", "**/handler/**", "**/api/**", "**/cmd/**"},
}

// LayerOrder is the fixed consultation order for layer globs.
var LayerOrder = []Layer{LayerDomain, LayerApplication, LayerInfrastructure, LayerPresentation}

// Override scopes alternative layer globs (and optionally a mode) to a
// subtree matched by the Scope glob.
type Override struct {
	Scope            string `yaml:"scope" json:"scope"`
	LayerGlobs       `yaml:",inline"`
	ArchitectureMode ArchitectureMode `yaml:"architecture_mode" json:"architecture_mode,omitempty"`
}

// LayersConfig groups all layer classification settings.
type LayersConfig struct {
	LayerGlobs       `yaml:",inline"`
	CrossCutting     []string         `yaml:"cross_cutting"     json:"cross_cutting,omitempty"`
	ArchitectureMode ArchitectureMode `yaml:"architecture_mode" json:"architecture_mode,omitempty"`
	Overrides        []Override       `yaml:"overrides"         json:"overrides,omitempty"`
}

// ScoringConfig holds the three dimension weights. They must sum to 1.0.
type ScoringConfig struct {
	LayerIsolationWeight      float64 `yaml:"layer_isolation_weight"      json:"layer_isolation_weight"`
	DependencyDirectionWeight float64 `yaml:"dependency_direction_weight" json:"dependency_direction_weight"`
	InterfaceCoverageWeight   float64 `yaml:"interface_coverage_weight"   json:"interface_coverage_weight"`
}

// CustomRule is a user-defined deny-rule on import records, so stdlib
// imports that never become edges can be denied too.
type CustomRule struct {
	Name        string   `yaml:"name"         json:"name"`
	FromPattern string   `yaml:"from_pattern" json:"from_pattern"`
	ToPattern   string   `yaml:"to_pattern"   json:"to_pattern"`
	Action      string   `yaml:"action"       json:"action"`
	Severity    Severity `yaml:"severity"     json:"severity"`
	Message     string   `yaml:"message"      json:"message,omitempty"`
}

// RulesConfig holds violation policy settings.
type RulesConfig struct {
	FailOn      Severity                   `yaml:"fail_on"      json:"fail_on"`
	MinScore    *int                       `yaml:"min_score"    json:"min_score,omitempty"`
	Severities  map[ViolationKind]Severity `yaml:"severities"   json:"severities,omitempty"`
	CustomRules []CustomRule               `yaml:"custom_rules" json:"custom_rules,omitempty"`
}

// Config is the fully populated analyzer configuration. The core receives
// it already loaded; see the yaml adapter.
type Config struct {
	Languages       []Language    `yaml:"languages"        json:"languages,omitempty"`
	ExcludePatterns []string      `yaml:"exclude_patterns" json:"exclude_patterns,omitempty"`
	ServicesPattern string        `yaml:"services_pattern" json:"services_pattern,omitempty"`
	Layers          LayersConfig  `yaml:"layers"           json:"layers"`
	Scoring         ScoringConfig `yaml:"scoring"          json:"scoring"`
	Rules           RulesConfig   `yaml:"rules"            json:"rules"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Layers: LayersConfig{ArchitectureMode: ModeDDD},
		Scoring: ScoringConfig{
			LayerIsolationWeight:      0.40,
			DependencyDirectionWeight: 0.40,
			InterfaceCoverageWeight:   0.20,
		},
		Rules: RulesConfig{FailOn: SeverityError},
	}
}

// EffectiveLayerGlobs returns the configured globs for a layer, falling
// back to the defaults when the config omits that layer.
func (c *Config) EffectiveLayerGlobs(l Layer) []string {
	if globs := c.Layers.ForLayer(l); len(globs) > 0 {
		return globs
	}
	return DefaultLayerGlobs.ForLayer(l)
}

// EffectiveMode returns the architecture mode for a file path: the deepest
// matching override scope wins, then the global mode, then ddd. Depth is
// the scope's path-segment count, never its string length.
func (c *Config) EffectiveMode(path string) ArchitectureMode {
	mode := c.Layers.ArchitectureMode
	if mode == "" {
		mode = ModeDDD
	}
	best := -1
	for _, ov := range c.Layers.Overrides {
		if ov.ArchitectureMode == "" {
			continue
		}
		g, err := glob.Compile(ov.Scope, '/')
		if err != nil || !g.Match(path) {
			continue
		}
		if depth := strings.Count(ov.Scope, "/"); depth > best {
			best = depth
			mode = ov.ArchitectureMode
		}
	}
	return mode
}

// SeverityFor returns the effective severity for a built-in kind, applying
// any configured remap.
func (c *Config) SeverityFor(kind ViolationKind) Severity {
	if s, ok := c.Rules.Severities[kind]; ok {
		return s
	}
	return DefaultSeverities[kind]
}

// Validate checks the config and returns a ConfigError describing every
// problem found.
func (c *Config) Validate() error {
	var errs *multierror.Error

	sum := c.Scoring.LayerIsolationWeight + c.Scoring.DependencyDirectionWeight + c.Scoring.InterfaceCoverageWeight
	if math.Abs(sum-1.0) > 1e-9 {
		errs = multierror.Append(errs, NewConfigError("scoring weights sum to %.3f, want 1.0", sum))
	}

	if m := c.Layers.ArchitectureMode; m != "" && !m.Valid() {
		errs = multierror.Append(errs, NewConfigError("unknown architecture_mode %q", m))
	}
	for _, ov := range c.Layers.Overrides {
		if ov.Scope == "" {
			errs = multierror.Append(errs, NewConfigError("override without a scope"))
		} else if _, err := glob.Compile(ov.Scope, '/'); err != nil {
			errs = multierror.Append(errs, NewConfigError("malformed scope glob %q: %v", ov.Scope, err))
		}
		if m := ov.ArchitectureMode; m != "" && !m.Valid() {
			errs = multierror.Append(errs, NewConfigError("unknown architecture_mode %q in override %q", m, ov.Scope))
		}
		errs = appendGlobErrors(errs, ov.LayerGlobs)
	}
	errs = appendGlobErrors(errs, c.Layers.LayerGlobs)
	for _, pat := range c.Layers.CrossCutting {
		if _, err := glob.Compile(pat, '/'); err != nil {
			errs = multierror.Append(errs, NewConfigError("malformed cross_cutting glob %q: %v", pat, err))
		}
	}
	for _, pat := range c.ExcludePatterns {
		if _, err := glob.Compile(pat, '/'); err != nil {
			errs = multierror.Append(errs, NewConfigError("malformed exclude glob %q: %v", pat, err))
		}
	}

	if f := c.Rules.FailOn; f != "" && !f.Valid() {
		errs = multierror.Append(errs, NewConfigError("unknown fail_on severity %q", f))
	}
	for kind, sev := range c.Rules.Severities {
		if _, ok := DefaultSeverities[kind]; !ok {
			errs = multierror.Append(errs, NewConfigError("unknown violation kind %q in severities", kind))
		}
		if !sev.Valid() {
			errs = multierror.Append(errs, NewConfigError("unknown severity %q for %q", sev, kind))
		}
	}
	for _, r := range c.Rules.CustomRules {
		if r.Action != "deny" {
			errs = multierror.Append(errs, NewConfigError("custom rule %q: unsupported action %q", r.Name, r.Action))
		}
		if !r.Severity.Valid() {
			errs = multierror.Append(errs, NewConfigError("custom rule %q: unknown severity %q", r.Name, r.Severity))
		}
		for _, pat := range []string{r.FromPattern, r.ToPattern} {
			if _, err := glob.Compile(pat, '/'); err != nil {
				errs = multierror.Append(errs, NewConfigError("custom rule %q: malformed glob %q: %v", r.Name, pat, err))
			}
		}
	}

	return errs.ErrorOrNil()
}

func appendGlobErrors(errs *multierror.Error, globs LayerGlobs) *multierror.Error {
	for _, layer := range LayerOrder {
		for _, pat := range globs.ForLayer(layer) {
			if _, err := glob.Compile(pat, '/'); err != nil {
				errs = multierror.Append(errs, NewConfigError("malformed %s glob %q: %v", layer, pat, err))
			}
		}
	}
	return errs
}
