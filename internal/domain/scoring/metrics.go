// Package scoring computes package metrics, pattern fingerprints and the
// score dimensions over a classified project graph.
package scoring

import (
	"math"
	"sort"

	"github.com/boundary-cli/boundary/internal/domain"
)

// PackageMetrics holds Robert Martin's package metrics for one internal
// package. A, I and D are all in [0, 1]; D = |A + I - 1|.
type PackageMetrics struct {
	Path  string       `json:"path"`
	Layer domain.Layer `json:"layer"`
	Na    int          `json:"abstract_components"`
	Nc    int          `json:"components"`
	Ce    int          `json:"efferent"`
	Ca    int          `json:"afferent"`
	I     float64      `json:"instability"`
	A     float64      `json:"abstractness"`
	D     float64      `json:"distance"`
}

// ComputeMetrics derives per-package metrics over real, internal,
// non-cross-cutting, classified components. Packages with no such
// components are excluded from scoring entirely rather than scored A=0.
func ComputeMetrics(p *domain.Project) []*PackageMetrics {
	counted := make(map[string]*PackageMetrics)

	for _, pkg := range p.Packages {
		if pkg.Synthetic || pkg.Layer == domain.LayerCrossCutting {
			continue
		}
		m := &PackageMetrics{Path: pkg.Path, Layer: pkg.Layer}
		for _, id := range pkg.Components {
			comp := p.Components[id]
			if comp == nil || !comp.Layer.Classified() || comp.Layer == domain.LayerCrossCutting {
				continue
			}
			m.Nc++
			if comp.Abstract() {
				m.Na++
			}
		}
		if m.Nc == 0 {
			continue
		}
		counted[pkg.Path] = m
	}

	// Coupling over the package projection of the edge graph, restricted
	// to internal non-cross-cutting endpoints.
	efferent := make(map[string]map[string]bool)
	afferent := make(map[string]map[string]bool)
	crossCut := make(map[string]bool)
	external := make(map[string]bool)
	for _, pkg := range p.Packages {
		if pkg.Layer == domain.LayerCrossCutting {
			crossCut[pkg.Path] = true
		}
		if pkg.Layer == domain.LayerExternal {
			external[pkg.Path] = true
		}
	}

	for _, e := range p.Edges {
		if e.TargetKind == domain.TargetExternal || e.TargetKind == domain.TargetCrossCutting {
			continue
		}
		src := p.Components[e.Source]
		if src == nil || crossCut[src.Package] || external[e.TargetPkg] {
			continue
		}
		if src.Package == e.TargetPkg {
			continue
		}
		addEdge(efferent, src.Package, e.TargetPkg)
		addEdge(afferent, e.TargetPkg, src.Package)
	}

	out := make([]*PackageMetrics, 0, len(counted))
	for _, m := range counted {
		m.Ce = len(efferent[m.Path])
		m.Ca = len(afferent[m.Path])
		if m.Ca+m.Ce > 0 {
			m.I = float64(m.Ce) / float64(m.Ca+m.Ce)
		}
		m.A = float64(m.Na) / float64(m.Nc)
		m.D = math.Abs(m.A + m.I - 1)
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func addEdge(m map[string]map[string]bool, from, to string) {
	set, ok := m[from]
	if !ok {
		set = make(map[string]bool)
		m[from] = set
	}
	set[to] = true
}
