package scoring

import (
	"math"

	"github.com/boundary-cli/boundary/internal/domain"
)

// Dimensions holds the raw score dimensions in [0, 1]. A nil value means
// the dimension is undefined and must be omitted from every report.
type Dimensions struct {
	Presence    float64
	Conformance *float64
	Compliance  *float64
	Coverage    *float64
}

// ComputeDimensions derives the four score dimensions from the census.
func ComputeDimensions(s *Stats) Dimensions {
	var d Dimensions

	if s.TotalReal > 0 {
		d.Presence = float64(s.ClassifiedReal+s.CrossCuttingReal) / float64(s.TotalReal)
	}

	var confSum float64
	var confN int
	for _, m := range s.Packages {
		if v, ok := Conformance(m); ok {
			confSum += v
			confN++
		}
	}
	if confN > 0 {
		v := confSum / float64(confN)
		d.Conformance = &v
	}

	if s.CrossLayerEdges > 0 {
		v := float64(s.CrossLayerEdges-s.OutwardEdges) / float64(s.CrossLayerEdges)
		d.Compliance = &v
	}

	if s.Adapters > 0 {
		var v float64
		if s.Ports > 0 {
			lo, hi := s.Ports, s.Adapters
			if lo > hi {
				lo, hi = hi, lo
			}
			v = float64(lo) / float64(hi)
		}
		d.Coverage = &v
	}

	return d
}

// BuildReport folds the dimensions and pattern confidences into the
// reported score. The overall score exists iff the top pattern confidence
// is at least 0.5 and structural presence is positive; otherwise it is
// absent with a reason, never 0 or 100.
func BuildReport(d Dimensions, patterns []domain.PatternConfidence, weights domain.ScoringConfig) domain.ScoreReport {
	r := domain.ScoreReport{StructuralPresence: percent(d.Presence)}
	if d.Conformance != nil {
		r.LayerConformance = percentPtr(*d.Conformance)
	}
	if d.Compliance != nil {
		r.DependencyCompliance = percentPtr(*d.Compliance)
	}
	if d.Coverage != nil {
		r.InterfaceCoverage = percentPtr(*d.Coverage)
	}

	topConfidence := 0.0
	if len(patterns) > 0 {
		topConfidence = patterns[0].Confidence
	}
	switch {
	case topConfidence < 0.5:
		r.OverallReason = "no pattern matched with confidence >= 0.5"
		return r
	case d.Presence <= 0:
		r.OverallReason = "no components could be assigned a layer"
		return r
	}

	type weighted struct {
		dim    *float64
		weight float64
	}
	var sum, wsum float64
	for _, w := range []weighted{
		{d.Conformance, weights.LayerIsolationWeight},
		{d.Compliance, weights.DependencyDirectionWeight},
		{d.Coverage, weights.InterfaceCoverageWeight},
	} {
		if w.dim == nil {
			continue
		}
		sum += *w.dim * w.weight
		wsum += w.weight
	}

	overall := d.Presence
	if wsum > 0 {
		overall = d.Presence * (sum / wsum)
	}
	r.Overall = percentPtr(overall)
	return r
}

func percent(v float64) int {
	return int(math.Round(v * 100))
}

func percentPtr(v float64) *int {
	p := percent(v)
	return &p
}
