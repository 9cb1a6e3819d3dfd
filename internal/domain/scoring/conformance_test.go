package scoring_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boundary-cli/boundary/internal/domain"
	"github.com/boundary-cli/boundary/internal/domain/scoring"
)

func TestConformance_AtCentroidIsPerfect(t *testing.T) {
	tests := []struct {
		layer domain.Layer
		a, i  float64
	}{
		{domain.LayerDomain, 0.75, 0.15},
		{domain.LayerApplication, 0.40, 0.50},
		{domain.LayerInfrastructure, 0.15, 0.75},
		{domain.LayerPresentation, 0.15, 0.75},
	}
	for _, tt := range tests {
		v, ok := scoring.Conformance(&scoring.PackageMetrics{Layer: tt.layer, A: tt.a, I: tt.i})
		require.True(t, ok, tt.layer)
		assert.InDelta(t, 1.0, v, 1e-9, tt.layer)
	}
}

func TestConformance_NormalizedByDiagonal(t *testing.T) {
	// A concrete, maximally unstable package measured against the domain
	// centroid: distance hypot(0.75, 0.85)/sqrt(2).
	v, ok := scoring.Conformance(&scoring.PackageMetrics{Layer: domain.LayerDomain, A: 0, I: 1})
	require.True(t, ok)
	want := 1 - math.Hypot(0.75, 0.85)/math.Sqrt2
	assert.InDelta(t, want, v, 1e-9)
	assert.GreaterOrEqual(t, v, 0.0)
}

func TestConformance_UnclassifiedPackagesExcluded(t *testing.T) {
	_, ok := scoring.Conformance(&scoring.PackageMetrics{Layer: domain.LayerUnclassified, A: 0.5, I: 0.5})
	assert.False(t, ok)
}
