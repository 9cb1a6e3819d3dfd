// Package classify assigns architectural layers to components and synthetic
// package nodes, and derives language-neutral kinds after classification.
package classify

import (
	"strings"

	"github.com/gobwas/glob"

	"github.com/boundary-cli/boundary/internal/domain"
)

// Classifier resolves layer assignments from configured globs, scoped
// overrides and cross-cutting patterns. Globs are compiled once.
type Classifier struct {
	cfg          *domain.Config
	crossCutting []glob.Glob
	layers       map[domain.Layer][]glob.Glob
	overrides    []compiledOverride
}

type compiledOverride struct {
	scope  glob.Glob
	layers map[domain.Layer][]glob.Glob
}

// New compiles the classifier configuration. The config is assumed to have
// passed Validate; a compile failure here is still reported as a ConfigError.
func New(cfg *domain.Config) (*Classifier, error) {
	c := &Classifier{cfg: cfg, layers: make(map[domain.Layer][]glob.Glob)}

	for _, pat := range cfg.Layers.CrossCutting {
		g, err := compile(pat)
		if err != nil {
			return nil, err
		}
		c.crossCutting = append(c.crossCutting, g...)
	}

	for _, layer := range domain.LayerOrder {
		for _, pat := range cfg.EffectiveLayerGlobs(layer) {
			g, err := compile(pat)
			if err != nil {
				return nil, err
			}
			c.layers[layer] = append(c.layers[layer], g...)
		}
	}

	for _, ov := range cfg.Layers.Overrides {
		scope, err := glob.Compile(ov.Scope, '/')
		if err != nil {
			return nil, domain.NewConfigError("malformed scope glob %q: %v", ov.Scope, err)
		}
		co := compiledOverride{scope: scope, layers: make(map[domain.Layer][]glob.Glob)}
		for _, layer := range domain.LayerOrder {
			for _, pat := range ov.ForLayer(layer) {
				g, err := compile(pat)
				if err != nil {
					return nil, err
				}
				co.layers[layer] = append(co.layers[layer], g...)
			}
		}
		c.overrides = append(c.overrides, co)
	}

	return c, nil
}

// compile produces the glob(s) for one pattern. A pattern anchored with a
// leading "**/" also gets a root-level variant so "**/domain/**" matches
// "domain/user.go" as well as "internal/domain/user.go".
func compile(pat string) ([]glob.Glob, error) {
	g, err := glob.Compile(pat, '/')
	if err != nil {
		return nil, domain.NewConfigError("malformed glob %q: %v", pat, err)
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

// LayerForPath classifies a root-relative file or package path.
// Precedence, stop at first match: cross-cutting globs, scope-matched
// override layer globs, global layer globs; otherwise Unclassified.
// External detection for import targets happens in the graph builder.
func (c *Classifier) LayerForPath(path string) domain.Layer {
	path = strings.TrimPrefix(path, "./")

	if matchAny(c.crossCutting, path) {
		return domain.LayerCrossCutting
	}

	for _, ov := range c.overrides {
		if !ov.scope.Match(path) {
			continue
		}
		for _, layer := range domain.LayerOrder {
			if matchAny(ov.layers[layer], path) {
				return layer
			}
		}
		break // first matching scope wins, even when its globs miss
	}

	for _, layer := range domain.LayerOrder {
		if matchAny(c.layers[layer], path) {
			return layer
		}
	}

	return domain.LayerUnclassified
}

// ClassifyProject assigns a layer to every real component and synthetic
// internal package node, then derives kinds.
func (c *Classifier) ClassifyProject(p *domain.Project) {
	for _, pkg := range p.Packages {
		if pkg.Synthetic {
			if pkg.Layer != domain.LayerExternal {
				pkg.Layer = c.LayerForPath(pkg.Path)
			}
			continue
		}
		for _, id := range pkg.Components {
			comp := p.Components[id]
			if comp == nil {
				continue
			}
			comp.Layer = c.LayerForPath(comp.File)
		}
		pkg.Layer = dominantLayer(p, pkg)
	}

	deriveKinds(p)
}

// dominantLayer picks the majority layer of a package's real classified
// members; ties resolve toward the inward-most layer.
func dominantLayer(p *domain.Project, pkg *domain.Package) domain.Layer {
	counts := make(map[domain.Layer]int)
	for _, id := range pkg.Components {
		if comp := p.Components[id]; comp != nil {
			counts[comp.Layer]++
		}
	}
	best := domain.LayerUnclassified
	bestN := 0
	for _, layer := range []domain.Layer{
		domain.LayerDomain, domain.LayerApplication,
		domain.LayerInfrastructure, domain.LayerPresentation,
		domain.LayerCrossCutting,
	} {
		if n := counts[layer]; n > bestN {
			best, bestN = layer, n
		}
	}
	return best
}
