package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boundary-cli/boundary/internal/domain"
	"github.com/boundary-cli/boundary/internal/domain/graph"
)

func buildProject(t *testing.T, files []*domain.ParsedFile, module string) *domain.Project {
	t.Helper()
	p, fi := graph.Normalize("/proj", module, files)
	graph.BuildEdges(p, fi)
	return p
}

func TestBuildEdges_PackageTargetAndDedup(t *testing.T) {
	files := []*domain.ParsedFile{
		goFile("app/service.go",
			[]domain.RawComponent{{Name: "Service", Kind: domain.KindStruct}},
			[]domain.RawImport{
				{Path: "m/core", Line: 3, Column: 2},
				{Path: "m/core", Line: 9, Column: 2}, // duplicate syntactic import
			}),
		goFile("core/user.go",
			[]domain.RawComponent{{Name: "User", Kind: domain.KindStruct}}, nil),
	}

	p := buildProject(t, files, "m")

	require.Len(t, p.Edges, 1)
	e := p.Edges[0]
	assert.Equal(t, "app.Service", e.Source)
	assert.Equal(t, graph.PackageNodeID("core"), e.Target)
	assert.Equal(t, domain.TargetPackage, e.TargetKind)
	// First encountered location wins.
	assert.Equal(t, 3, e.Location.Line)
}

func TestBuildEdges_SymbolResolvesToComponent(t *testing.T) {
	files := []*domain.ParsedFile{
		{
			Path: "src/app/service.ts", Language: domain.LangTypeScript,
			Components: []domain.RawComponent{{Name: "Service", Kind: domain.KindClass}},
			Imports: []domain.RawImport{
				{Path: "../core/user", Symbols: []string{"User"}, Line: 1, Column: 1},
			},
		},
		{
			Path: "src/core/user.ts", Language: domain.LangTypeScript,
			Components: []domain.RawComponent{{Name: "User", Kind: domain.KindClass}},
		},
	}

	p := buildProject(t, files, "")

	require.Len(t, p.Edges, 1)
	assert.Equal(t, "src/core.User", p.Edges[0].Target)
	assert.Equal(t, domain.TargetComponent, p.Edges[0].TargetKind)
}

func TestBuildEdges_SelfLoopDropped(t *testing.T) {
	files := []*domain.ParsedFile{
		goFile("core/a.go",
			[]domain.RawComponent{{Name: "A", Kind: domain.KindStruct}},
			[]domain.RawImport{{Path: "m/core", Line: 3, Column: 2}}),
	}

	p := buildProject(t, files, "m")
	assert.Empty(t, p.Edges)
}

func TestBuildEdges_ExternalMarker(t *testing.T) {
	files := []*domain.ParsedFile{
		goFile("app/service.go",
			[]domain.RawComponent{{Name: "Service", Kind: domain.KindStruct}},
			[]domain.RawImport{{Path: "github.com/lib/pq", Line: 3, Column: 2}}),
	}

	p := buildProject(t, files, "m")

	require.Len(t, p.Edges, 1)
	assert.Equal(t, domain.TargetExternal, p.Edges[0].TargetKind)
	assert.Equal(t, "github.com/lib/pq", p.Edges[0].TargetPkg)
}

func TestBuildEdges_EveryComponentInFileInheritsImports(t *testing.T) {
	files := []*domain.ParsedFile{
		goFile("app/service.go",
			[]domain.RawComponent{
				{Name: "Reader", Kind: domain.KindStruct},
				{Name: "Writer", Kind: domain.KindStruct},
			},
			[]domain.RawImport{{Path: "m/core", Line: 3, Column: 2}}),
		goFile("core/user.go",
			[]domain.RawComponent{{Name: "User", Kind: domain.KindStruct}}, nil),
	}

	p := buildProject(t, files, "m")

	require.Len(t, p.Edges, 2)
	sources := []string{p.Edges[0].Source, p.Edges[1].Source}
	assert.Contains(t, sources, "app.Reader")
	assert.Contains(t, sources, "app.Writer")
}
