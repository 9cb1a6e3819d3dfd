package scoring

import (
	"sort"

	"github.com/boundary-cli/boundary/internal/domain"
)

// Fingerprints computes the confidence of every recognized pattern from
// independent signal weights. Confidences do not sum to 1; the caller
// picks the maximum as the top pattern.
func Fingerprints(s *Stats) []domain.PatternConfidence {
	out := []domain.PatternConfidence{
		{Pattern: domain.PatternDDDHexagonal, Confidence: dddConfidence(s)},
		{Pattern: domain.PatternActiveRecord, Confidence: activeRecordConfidence(s)},
		{Pattern: domain.PatternFlatCRUD, Confidence: flatCRUDConfidence(s)},
		{Pattern: domain.PatternAnemicDomain, Confidence: anemicConfidence(s)},
		{Pattern: domain.PatternServiceLayer, Confidence: serviceLayerConfidence(s)},
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	return out
}

func dddConfidence(s *Stats) float64 {
	c := 0.0
	for _, layer := range []domain.Layer{domain.LayerDomain, domain.LayerApplication, domain.LayerInfrastructure} {
		if s.LayerPresent[layer] {
			c += 0.2
		}
	}
	if s.LayerPresent[domain.LayerDomain] && s.DomainMeanA >= 0.5 {
		c += 0.2
	}
	if s.PortsWithAdapter >= 1 {
		c += 0.2
	}
	if s.OutwardEdges == 0 && s.ClassifiedReal > 0 {
		c += 0.2
	}
	return cap1(c)
}

func activeRecordConfidence(s *Stats) float64 {
	c := 0.0
	if s.DomainPersistence {
		c += 0.5
	}
	if s.Ports == 0 {
		c += 0.3
	}
	if !s.LayerPresent[domain.LayerInfrastructure] {
		c += 0.2
	}
	return cap1(c)
}

func flatCRUDConfidence(s *Stats) float64 {
	c := 0.0
	if s.PackageCount <= 2 {
		c += 0.5
	}
	if s.AbstractComponents == 0 {
		c += 0.3
	}
	if s.ClassifiedReal == 0 {
		c += 0.2
	}
	return cap1(c)
}

func anemicConfidence(s *Stats) float64 {
	c := 0.0
	if s.LayerPresent[domain.LayerDomain] {
		c += 0.2
	}
	if s.LayerPresent[domain.LayerDomain] && s.DomainAbstract == 0 {
		c += 0.4
	}
	if s.AppBusinessFns > 0 && s.AppBusinessFns > s.DomainBusinessFns {
		c += 0.4
	}
	return cap1(c)
}

func serviceLayerConfidence(s *Stats) float64 {
	c := 0.0
	layers := 0
	for _, present := range s.LayerPresent {
		if present {
			layers++
		}
	}
	if layers >= 2 {
		c += 0.3
	}
	if s.Ports == 0 {
		c += 0.4
	}
	if s.AppToInfraEdges > 0 {
		c += 0.3
	}
	return cap1(c)
}

func cap1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
