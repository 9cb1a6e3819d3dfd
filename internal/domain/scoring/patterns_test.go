package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boundary-cli/boundary/internal/domain"
	"github.com/boundary-cli/boundary/internal/domain/classify"
	"github.com/boundary-cli/boundary/internal/domain/scoring"
)

func confidences(s *scoring.Stats) map[domain.Pattern]float64 {
	out := make(map[domain.Pattern]float64)
	for _, pc := range scoring.Fingerprints(s) {
		out[pc.Pattern] = pc.Confidence
	}
	return out
}

func TestFingerprints_DDDProject(t *testing.T) {
	p := fixtureProject()
	metrics := scoring.ComputeMetrics(p)
	stats := scoring.CollectStats(p, metrics, classify.MatchesPort)

	c := confidences(stats)
	require.GreaterOrEqual(t, c[domain.PatternDDDHexagonal], 1.0)
	assert.Less(t, c[domain.PatternActiveRecord], 0.5)
	assert.Less(t, c[domain.PatternFlatCRUD], 0.5)

	top := scoring.Fingerprints(stats)[0]
	assert.Equal(t, domain.PatternDDDHexagonal, top.Pattern)
}

func TestFingerprints_ActiveRecord(t *testing.T) {
	p := &domain.Project{
		Components: map[string]*domain.Component{
			"models.User": {
				ID: "models.User", Name: "User", Kind: domain.KindEntity,
				Package: "models", File: "models/user.go", Layer: domain.LayerDomain,
				Fields: []domain.Field{{Name: "ID", Type: "int64", Tags: []string{"db"}}},
			},
		},
		Packages: []*domain.Package{
			{Path: "models", Layer: domain.LayerDomain, Components: []string{"models.User"}},
		},
	}
	metrics := scoring.ComputeMetrics(p)
	stats := scoring.CollectStats(p, metrics, classify.MatchesPort)

	c := confidences(stats)
	assert.Greater(t, c[domain.PatternActiveRecord], 0.7)
	assert.Less(t, c[domain.PatternDDDHexagonal], 0.5)
}

func TestFingerprints_AnemicDomain(t *testing.T) {
	p := &domain.Project{
		Components: map[string]*domain.Component{
			"domain/user.User": {
				ID: "domain/user.User", Name: "User", Kind: domain.KindEntity,
				Package: "domain/user", Layer: domain.LayerDomain,
			},
			"application/user.UserService": {
				ID: "application/user.UserService", Name: "UserService", Kind: domain.KindStruct,
				Package: "application/user", Layer: domain.LayerApplication,
				Methods: []domain.Method{{Name: "Register", Arity: 2}, {Name: "Rename", Arity: 2}},
			},
		},
		Packages: []*domain.Package{
			{Path: "domain/user", Layer: domain.LayerDomain, Components: []string{"domain/user.User"}},
			{Path: "application/user", Layer: domain.LayerApplication, Components: []string{"application/user.UserService"}},
		},
	}
	metrics := scoring.ComputeMetrics(p)
	stats := scoring.CollectStats(p, metrics, classify.MatchesPort)

	c := confidences(stats)
	assert.InDelta(t, 1.0, c[domain.PatternAnemicDomain], 1e-9)
}

func TestFingerprints_ServiceLayer(t *testing.T) {
	p := fixtureProject()
	// Remove the port and point the application straight at infrastructure.
	delete(p.Components, "domain/user.UserRepository")
	p.Packages[1].Components = []string{"domain/user.User"}
	p.Components["infra/db.PostgresUserRepository"].Kind = domain.KindStruct
	p.Edges = append(p.Edges, domain.Edge{
		Source: "app/user.UserService", Target: "infra/db.PostgresUserRepository",
		TargetPkg: "infra/db", TargetKind: domain.TargetComponent,
		Location: domain.Location{File: "app/user/service.go", Line: 5, Column: 2},
	})

	metrics := scoring.ComputeMetrics(p)
	stats := scoring.CollectStats(p, metrics, classify.MatchesPort)

	c := confidences(stats)
	assert.InDelta(t, 1.0, c[domain.PatternServiceLayer], 1e-9)
}

func TestFingerprints_FlatCRUD(t *testing.T) {
	p := &domain.Project{
		Components: map[string]*domain.Component{
			"util.Helper": {
				ID: "util.Helper", Name: "Helper", Kind: domain.KindStruct,
				Package: "util", Layer: domain.LayerUnclassified,
			},
		},
		Packages: []*domain.Package{
			{Path: "util", Layer: domain.LayerUnclassified, Components: []string{"util.Helper"}},
		},
	}
	metrics := scoring.ComputeMetrics(p)
	stats := scoring.CollectStats(p, metrics, classify.MatchesPort)

	c := confidences(stats)
	assert.InDelta(t, 1.0, c[domain.PatternFlatCRUD], 1e-9)
}
