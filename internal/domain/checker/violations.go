package checker

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/boundary-cli/boundary/internal/domain"
	"github.com/boundary-cli/boundary/internal/domain/classify"
	"github.com/boundary-cli/boundary/internal/domain/scoring"
)

// Detect runs every violation scan over a classified project and returns
// the list in deterministic order: (file, line, column, kind name).
// Cross-cutting components never produce or receive violations.
func Detect(p *domain.Project) []domain.Violation {
	cfg := p.Config
	if cfg == nil {
		cfg = domain.DefaultConfig()
	}

	pkgByPath := make(map[string]*domain.Package, len(p.Packages))
	for _, pkg := range p.Packages {
		pkgByPath[pkg.Path] = pkg
	}

	var out []domain.Violation
	out = append(out, layerBoundary(p, cfg, pkgByPath)...)
	out = append(out, circularDependencies(p, cfg)...)
	out = append(out, missingPorts(p, cfg)...)
	out = append(out, initCoupling(p, pkgByPath, cfg)...)
	out = append(out, anemicDomain(p, cfg)...)
	out = append(out, customRules(p, cfg)...)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Location.File != b.Location.File {
			return a.Location.File < b.Location.File
		}
		if a.Location.Line != b.Location.Line {
			return a.Location.Line < b.Location.Line
		}
		if a.Location.Column != b.Location.Column {
			return a.Location.Column < b.Location.Column
		}
		return a.Kind < b.Kind
	})
	return out
}

// layerBoundary flags edges whose direction points outward, subject to the
// architecture-mode exemptions of the source file's scope.
func layerBoundary(p *domain.Project, cfg *domain.Config, pkgByPath map[string]*domain.Package) []domain.Violation {
	var out []domain.Violation
	for _, e := range p.Edges {
		from, to, ok := scoring.EdgeLayers(p, pkgByPath, e)
		if !ok || !scoring.OutwardEdge(from, to) {
			continue
		}
		src := p.Components[e.Source]

		switch cfg.EffectiveMode(src.File) {
		case domain.ModeActiveRecord:
			if from == domain.LayerDomain && to == domain.LayerInfrastructure && src.HasPersistenceTags() {
				continue
			}
		case domain.ModeServiceOriented:
			if from == domain.LayerApplication && to == domain.LayerInfrastructure {
				continue
			}
		}

		out = append(out, domain.Violation{
			Kind:     domain.ViolationLayerBoundary,
			Severity: cfg.SeverityFor(domain.ViolationLayerBoundary),
			Location: e.Location,
			Message:  fmt.Sprintf("%s layer depends on %s: %s imports %s", from, to, src.Name, e.TargetPkg),
			Suggestion: fmt.Sprintf("invert the dependency: define an abstraction in the %s layer and implement it in %s",
				from, to),
		})
	}
	return out
}

func circularDependencies(p *domain.Project, cfg *domain.Config) []domain.Violation {
	cycles := PackageCycles(p)
	if len(cycles) == 0 {
		return nil
	}

	// First import location per (source pkg, target pkg), for anchoring.
	edgeLoc := make(map[[2]string]domain.Location)
	for _, e := range p.Edges {
		src := p.Components[e.Source]
		if src == nil {
			continue
		}
		key := [2]string{src.Package, e.TargetPkg}
		if _, ok := edgeLoc[key]; !ok {
			edgeLoc[key] = e.Location
		}
	}

	var out []domain.Violation
	for _, cycle := range cycles {
		loc := domain.Location{}
		for i, pkg := range cycle {
			next := cycle[(i+1)%len(cycle)]
			if l, ok := edgeLoc[[2]string{pkg, next}]; ok {
				loc = l
				break
			}
		}
		out = append(out, domain.Violation{
			Kind:       domain.ViolationCircularDependency,
			Severity:   cfg.SeverityFor(domain.ViolationCircularDependency),
			Location:   loc,
			Message:    "circular dependency: " + strings.Join(append(cycle, cycle[0]), " -> "),
			Suggestion: "break the cycle by moving the shared types into a package neither side imports",
		})
	}
	return out
}

// missingPorts flags Infrastructure adapters and repositories whose name
// corresponds to no Port in the Domain layer. Suppressed under the
// active-record mode of the adapter's scope.
func missingPorts(p *domain.Project, cfg *domain.Config) []domain.Violation {
	var portNames []string
	for _, comp := range p.Components {
		if comp.Kind == domain.KindPort && comp.Layer == domain.LayerDomain {
			portNames = append(portNames, comp.Name)
		}
	}

	var out []domain.Violation
	for _, pkg := range p.Packages {
		if pkg.Synthetic {
			continue
		}
		for _, id := range pkg.Components {
			comp := p.Components[id]
			if comp == nil || comp.Layer != domain.LayerInfrastructure {
				continue
			}
			if comp.Kind != domain.KindAdapter && comp.Kind != domain.KindRepository {
				continue
			}
			if cfg.EffectiveMode(comp.File) == domain.ModeActiveRecord {
				continue
			}
			matched := false
			for _, port := range portNames {
				if classify.MatchesPort(comp.Name, port) {
					matched = true
					break
				}
			}
			if matched {
				continue
			}
			out = append(out, domain.Violation{
				Kind:     domain.ViolationMissingPort,
				Severity: cfg.SeverityFor(domain.ViolationMissingPort),
				Location: domain.Location{File: comp.File, Line: comp.StartLine, Column: 1},
				Message:  fmt.Sprintf("%s %s has no corresponding port in the domain layer", comp.Kind, comp.Name),
				Suggestion: fmt.Sprintf("declare an abstraction named %s in the domain layer",
					strings.Join(classify.StripSuffixTokens(comp.Name), "")),
			})
		}
	}
	return out
}

// initCoupling flags Go init functions in Domain packages that reference
// Infrastructure packages.
func initCoupling(p *domain.Project, pkgByPath map[string]*domain.Package, cfg *domain.Config) []domain.Violation {
	var out []domain.Violation
	for _, e := range p.Edges {
		src := p.Components[e.Source]
		if src == nil || src.Language != domain.LangGo || src.Kind != domain.KindFunction {
			continue
		}
		if src.Name != "init" || src.Layer != domain.LayerDomain {
			continue
		}
		tgt := pkgByPath[e.TargetPkg]
		if tgt == nil || tgt.Layer != domain.LayerInfrastructure {
			continue
		}
		out = append(out, domain.Violation{
			Kind:       domain.ViolationInitCoupling,
			Severity:   cfg.SeverityFor(domain.ViolationInitCoupling),
			Location:   e.Location,
			Message:    fmt.Sprintf("init function in domain package %s references infrastructure package %s", src.Package, e.TargetPkg),
			Suggestion: "wire infrastructure at the composition root instead of in init",
		})
	}
	return out
}

// anemicDomain flags Domain entities with no behavior: zero methods that
// take parameters. Persistence-annotated types are Active Record, handled
// by the fingerprint instead.
func anemicDomain(p *domain.Project, cfg *domain.Config) []domain.Violation {
	var out []domain.Violation
	for _, pkg := range p.Packages {
		if pkg.Synthetic {
			continue
		}
		for _, id := range pkg.Components {
			comp := p.Components[id]
			if comp == nil || comp.Kind != domain.KindEntity || comp.Layer != domain.LayerDomain {
				continue
			}
			if comp.HasPersistenceTags() {
				continue
			}
			anemic := true
			for _, m := range comp.Methods {
				if m.Arity >= 1 {
					anemic = false
					break
				}
			}
			if !anemic {
				continue
			}
			out = append(out, domain.Violation{
				Kind:       domain.ViolationAnemicDomain,
				Severity:   cfg.SeverityFor(domain.ViolationAnemicDomain),
				Location:   domain.Location{File: comp.File, Line: comp.StartLine, Column: 1},
				Message:    fmt.Sprintf("entity %s has no behavior; its logic likely lives in the application layer", comp.Name),
				Suggestion: "move the operations that mutate this entity onto the entity itself",
			})
		}
	}
	return out
}

// customRules evaluates user-defined deny-rules against the raw import
// records: a record violates when its file matches from_pattern and its
// import path matches to_pattern. Records are used instead of edges so a
// rule can deny stdlib imports, which never become edges.
func customRules(p *domain.Project, cfg *domain.Config) []domain.Violation {
	if len(cfg.Rules.CustomRules) == 0 {
		return nil
	}

	type compiledRule struct {
		rule domain.CustomRule
		from []glob.Glob
		to   []glob.Glob
	}
	var rules []compiledRule
	for _, r := range cfg.Rules.CustomRules {
		from, err1 := compileRulePattern(r.FromPattern)
		to, err2 := compileRulePattern(r.ToPattern)
		if err1 != nil || err2 != nil {
			continue // Validate rejects these before analysis
		}
		rules = append(rules, compiledRule{rule: r, from: from, to: to})
	}

	crossCut := make(map[string]bool)
	for _, pkg := range p.Packages {
		if pkg.Layer == domain.LayerCrossCutting {
			crossCut[pkg.Path] = true
		}
	}

	var out []domain.Violation
	for _, rec := range p.ImportRecords {
		if crossCut[rec.SourcePkg] {
			continue
		}
		for _, cr := range rules {
			if !matchAny(cr.from, rec.File) || !matchAny(cr.to, rec.Path) {
				continue
			}
			msg := cr.rule.Message
			if msg == "" {
				msg = fmt.Sprintf("%s must not depend on %s", cr.rule.FromPattern, cr.rule.ToPattern)
			}
			out = append(out, domain.Violation{
				Kind:     domain.ViolationCustom,
				Severity: cr.rule.Severity,
				Location: rec.Location,
				Message:  msg,
				Rule:     cr.rule.Name,
			})
		}
	}
	return out
}

func compileRulePattern(pat string) ([]glob.Glob, error) {
	g, err := glob.Compile(pat, '/')
	if err != nil {
		return nil, err
	}
	out := []glob.Glob{g}
	if rest, ok := strings.CutPrefix(pat, "**/"); ok {
		if rg, err := glob.Compile(rest, '/'); err == nil {
			out = append(out, rg)
		}
	}
	return out, nil
}

func matchAny(globs []glob.Glob, path string) bool {
	for _, g := range globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}
