package graph

import (
	"sort"

	"github.com/boundary-cli/boundary/internal/domain"
)

// BuildEdges constructs the edge list once layers are assigned. Every
// component in a file inherits the file's imports; each import resolves to
// a real component (when the parser captured a symbol), a package node, an
// external marker or a cross-cutting marker. Self-loops are dropped and
// edges are deduplicated by (source, target) keeping the first location.
func BuildEdges(p *domain.Project, files []FileImports) {
	pkgIndex := make(map[string]*domain.Package, len(p.Packages))
	for _, pkg := range p.Packages {
		pkgIndex[pkg.Path] = pkg
	}

	seen := make(map[[2]string]bool)
	var edges []domain.Edge

	emit := func(e domain.Edge) {
		key := [2]string{e.Source, e.Target}
		if seen[key] {
			return
		}
		seen[key] = true
		edges = append(edges, e)
	}

	for _, fi := range files {
		comps := make([]string, len(fi.Components))
		copy(comps, fi.Components)
		sort.Strings(comps)

		for _, imp := range fi.Imports {
			if imp.PkgPath == fi.Package {
				continue
			}
			target := pkgIndex[imp.PkgPath]
			if target == nil {
				continue
			}

			kind := domain.TargetPackage
			switch target.Layer {
			case domain.LayerExternal:
				kind = domain.TargetExternal
			case domain.LayerCrossCutting:
				kind = domain.TargetCrossCutting
			}

			targets := resolveTargets(p, target, imp, kind)
			for _, src := range comps {
				for _, tgt := range targets {
					emit(domain.Edge{
						Source:     src,
						Target:     tgt.id,
						TargetPkg:  imp.PkgPath,
						TargetKind: tgt.kind,
						Location:   imp.Location,
					})
				}
			}
		}
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
	p.Edges = edges
}

type edgeTarget struct {
	id   string
	kind domain.TargetKind
}

// resolveTargets prefers direct component targets when the parser captured
// imported symbols that name extracted components; otherwise the edge
// lands on the package's synthetic node.
func resolveTargets(p *domain.Project, pkg *domain.Package, imp ResolvedImport, kind domain.TargetKind) []edgeTarget {
	if kind == domain.TargetPackage && !pkg.Synthetic {
		var direct []edgeTarget
		for _, sym := range imp.Symbols {
			id := domain.ComponentID(pkg.Path, sym)
			if _, ok := p.Components[id]; ok {
				direct = append(direct, edgeTarget{id: id, kind: domain.TargetComponent})
			}
		}
		if len(direct) > 0 {
			return direct
		}
	}
	return []edgeTarget{{id: PackageNodeID(pkg.Path), kind: kind}}
}
