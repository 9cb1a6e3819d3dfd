package scoring

import (
	"math"

	"github.com/boundary-cli/boundary/internal/domain"
)

// centroid is the expected (A, I) region midpoint for a layer.
type centroid struct {
	a, i float64
}

// layerCentroids are the expected-region midpoints: Domain packages should
// be abstract and stable, Infrastructure and Presentation concrete and
// unstable, Application in between.
var layerCentroids = map[domain.Layer]centroid{
	domain.LayerDomain:         {a: 0.75, i: 0.15},
	domain.LayerApplication:    {a: 0.40, i: 0.50},
	domain.LayerInfrastructure: {a: 0.15, i: 0.75},
	domain.LayerPresentation:   {a: 0.15, i: 0.75},
}

// Conformance returns the per-package layer conformance: 1 minus the
// Euclidean distance from the layer centroid in the unit A×I square,
// normalized so the diagonal equals 1, clamped to [0, 1]. The second
// return is false for packages in no concrete layer.
func Conformance(m *PackageMetrics) (float64, bool) {
	c, ok := layerCentroids[m.Layer]
	if !ok {
		return 0, false
	}
	dist := math.Hypot(m.A-c.a, m.I-c.i) / math.Sqrt2
	v := 1 - dist
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v, true
}
