package scoring

import (
	"github.com/boundary-cli/boundary/internal/domain"
)

// layerRank orders layers from the inside out. Infrastructure and
// Presentation share the outermost rank: the ordering does not relate
// them, so edges between the two are never outward.
var layerRank = map[domain.Layer]int{
	domain.LayerDomain:         0,
	domain.LayerApplication:    1,
	domain.LayerInfrastructure: 2,
	domain.LayerPresentation:   2,
}

// OutwardEdge reports whether an edge from one concrete layer to another
// points outward, i.e. violates Domain ← Application ← Infrastructure,
// Presentation.
func OutwardEdge(from, to domain.Layer) bool {
	fr, ok1 := layerRank[from]
	tr, ok2 := layerRank[to]
	return ok1 && ok2 && tr > fr
}

// Stats aggregates everything the fingerprints and score dimensions read
// from a project: component tallies, per-layer presence, port/adapter
// counts, and the cross-layer edge census.
type Stats struct {
	TotalReal        int
	ClassifiedReal   int
	CrossCuttingReal int

	Packages     []*PackageMetrics
	PackageCount int // real packages, synthetic excluded
	LayerPresent map[domain.Layer]bool

	DomainMeanA       float64
	DomainAbstract    int
	DomainPersistence bool

	Ports              int
	Adapters           int
	PortsWithAdapter   int
	AbstractComponents int

	CrossLayerEdges   int
	OutwardEdges      int
	AppToInfraEdges   int
	DomainBusinessFns int
	AppBusinessFns    int
}

// EdgeLayers resolves the (source, target) layers of an edge. ok is false
// when either endpoint is external, synthetic-unclassified, cross-cutting
// or unresolvable.
func EdgeLayers(p *domain.Project, pkgByPath map[string]*domain.Package, e domain.Edge) (from, to domain.Layer, ok bool) {
	src := p.Components[e.Source]
	if src == nil {
		return "", "", false
	}
	from = src.Layer

	switch e.TargetKind {
	case domain.TargetExternal, domain.TargetCrossCutting:
		return "", "", false
	case domain.TargetComponent:
		tgt := p.Components[e.Target]
		if tgt == nil {
			return "", "", false
		}
		to = tgt.Layer
	default:
		pkg := pkgByPath[e.TargetPkg]
		if pkg == nil {
			return "", "", false
		}
		to = pkg.Layer
	}

	if !from.Classified() || !to.Classified() {
		return "", "", false
	}
	return from, to, true
}

// CollectStats computes the aggregate census over a classified project.
func CollectStats(p *domain.Project, metrics []*PackageMetrics, matchesPort func(adapter, port string) bool) *Stats {
	s := &Stats{
		Packages:     metrics,
		LayerPresent: make(map[domain.Layer]bool),
	}

	var portNames, adapterNames []string
	for _, pkg := range p.Packages {
		if pkg.Synthetic {
			continue
		}
		s.PackageCount++
		for _, id := range pkg.Components {
			comp := p.Components[id]
			if comp == nil {
				continue
			}
			s.TotalReal++
			switch {
			case comp.Layer == domain.LayerCrossCutting:
				s.CrossCuttingReal++
			case comp.Layer.Classified():
				s.ClassifiedReal++
				s.LayerPresent[comp.Layer] = true
			}
			if comp.Abstract() {
				s.AbstractComponents++
			}

			business := 0
			for _, m := range comp.Methods {
				if m.Arity >= 1 {
					business++
				}
			}

			switch comp.Layer {
			case domain.LayerDomain:
				if comp.Kind == domain.KindPort {
					s.Ports++
					portNames = append(portNames, comp.Name)
				}
				if comp.Abstract() {
					s.DomainAbstract++
				}
				if comp.HasPersistenceTags() {
					s.DomainPersistence = true
				}
				s.DomainBusinessFns += business
			case domain.LayerApplication:
				s.AppBusinessFns += business
			case domain.LayerInfrastructure:
				if comp.Kind == domain.KindAdapter || comp.Kind == domain.KindRepository {
					s.Adapters++
					adapterNames = append(adapterNames, comp.Name)
				}
			}
		}
	}

	for _, port := range portNames {
		for _, adapter := range adapterNames {
			if matchesPort(adapter, port) {
				s.PortsWithAdapter++
				break
			}
		}
	}

	var domainA float64
	var domainPkgs int
	for _, m := range metrics {
		if m.Layer == domain.LayerDomain {
			domainA += m.A
			domainPkgs++
		}
	}
	if domainPkgs > 0 {
		s.DomainMeanA = domainA / float64(domainPkgs)
	}

	pkgByPath := make(map[string]*domain.Package, len(p.Packages))
	for _, pkg := range p.Packages {
		pkgByPath[pkg.Path] = pkg
	}
	for _, e := range p.Edges {
		from, to, ok := EdgeLayers(p, pkgByPath, e)
		if !ok || from == to {
			continue
		}
		s.CrossLayerEdges++
		if OutwardEdge(from, to) {
			s.OutwardEdges++
		}
		if from == domain.LayerApplication && to == domain.LayerInfrastructure {
			s.AppToInfraEdges++
		}
	}

	return s
}
