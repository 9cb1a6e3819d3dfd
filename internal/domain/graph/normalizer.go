// Package graph merges per-file parse results into a Project and builds
// the directed dependency graph over component ids and synthetic package
// nodes.
package graph

import (
	"path"
	"sort"
	"strings"

	"github.com/boundary-cli/boundary/internal/domain"
)

// PackageSentinel is the name carried by synthetic package nodes.
const PackageSentinel = "<package>"

// PackageNodeID returns the id of a package's synthetic node.
func PackageNodeID(pkgPath string) string {
	return domain.ComponentID(pkgPath, PackageSentinel)
}

// ResolvedImport is one import record after target resolution, kept per
// file so the builder can emit edges once layers are assigned.
type ResolvedImport struct {
	PkgPath  string // canonical internal package path, or raw path when external
	Internal bool
	Symbols  []string
	Location domain.Location
}

// FileImports pairs a file's member components with its resolved imports.
type FileImports struct {
	File       string
	Package    string
	Components []string
	Imports    []ResolvedImport
}

// Normalize merges ParsedFiles into a single Project: canonical component
// ids, per-package member sets, synthetic placeholder packages for import
// targets that resolve to nothing extracted. Files are sorted by path
// first so component and edge ordering never depends on discovery order.
func Normalize(root, goModule string, files []*domain.ParsedFile) (*domain.Project, []FileImports) {
	sorted := make([]*domain.ParsedFile, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	p := &domain.Project{
		Root:       root,
		Components: make(map[string]*domain.Component),
	}
	pkgIndex := make(map[string]*domain.Package)
	javaPackages := make(map[string]string) // declared java package -> dir path

	pkgFor := func(pkgPath string) *domain.Package {
		if pkg, ok := pkgIndex[pkgPath]; ok {
			return pkg
		}
		pkg := &domain.Package{Path: pkgPath, Layer: domain.LayerUnclassified}
		pkgIndex[pkgPath] = pkg
		p.Packages = append(p.Packages, pkg)
		return pkg
	}

	for _, f := range sorted {
		dir := packagePath(f.Path)
		pkgFor(dir)
		if f.Language == domain.LangJava && f.Package != "" {
			javaPackages[f.Package] = dir
		}
	}

	var fileImports []FileImports

	for _, f := range sorted {
		dir := packagePath(f.Path)
		pkg := pkgFor(dir)

		fi := FileImports{File: f.Path, Package: dir}

		for _, raw := range f.Components {
			id := domain.ComponentID(dir, raw.Name)
			if _, exists := p.Components[id]; exists {
				// Same name declared twice in one package (e.g. a Go type
				// split across build-tagged files): first declaration wins.
				fi.Components = append(fi.Components, id)
				continue
			}
			comp := &domain.Component{
				ID:          id,
				Name:        raw.Name,
				Kind:        raw.Kind,
				Language:    f.Language,
				Package:     dir,
				File:        f.Path,
				StartLine:   raw.StartLine,
				EndLine:     raw.EndLine,
				Methods:     raw.Methods,
				Fields:      raw.Fields,
				Annotations: raw.Annotations,
				Layer:       domain.LayerUnclassified,
			}
			p.Components[id] = comp
			pkg.Components = append(pkg.Components, id)
			fi.Components = append(fi.Components, id)
		}

		for _, imp := range f.Imports {
			loc := domain.Location{File: f.Path, Line: imp.Line, Column: imp.Column}
			p.ImportRecords = append(p.ImportRecords, domain.ImportRecord{
				File:      f.Path,
				SourcePkg: dir,
				Path:      imp.Path,
				Location:  loc,
				Stdlib:    imp.Stdlib,
			})
			if imp.Stdlib {
				continue
			}
			res := resolveImport(f, imp, dir, goModule, pkgIndex, javaPackages)
			fi.Imports = append(fi.Imports, res)
			if !containsString(pkg.Imports, res.PkgPath) {
				pkg.Imports = append(pkg.Imports, res.PkgPath)
			}
		}

		fileImports = append(fileImports, fi)
	}

	// Materialize synthetic packages for unresolved targets.
	for _, fi := range fileImports {
		for _, res := range fi.Imports {
			if _, ok := pkgIndex[res.PkgPath]; ok {
				continue
			}
			pkg := pkgFor(res.PkgPath)
			pkg.Synthetic = true
			if !res.Internal {
				pkg.Layer = domain.LayerExternal
			}
		}
	}

	sort.Slice(p.Packages, func(i, j int) bool { return p.Packages[i].Path < p.Packages[j].Path })
	for _, pkg := range p.Packages {
		sort.Strings(pkg.Components)
		sort.Strings(pkg.Imports)
	}

	return p, fileImports
}

// packagePath maps a file path to its canonical package path: the
// containing directory, root-relative with forward slashes. The project
// root itself is the empty path.
func packagePath(file string) string {
	dir := path.Dir(strings.ReplaceAll(file, "\\", "/"))
	if dir == "." {
		return ""
	}
	return dir
}

// resolveImport maps a raw import to an internal package path or marks it
// external. Resolution is name/path matching only; no cross-unit type
// resolution happens here.
func resolveImport(
	f *domain.ParsedFile,
	imp domain.RawImport,
	fromPkg, goModule string,
	pkgIndex map[string]*domain.Package,
	javaPackages map[string]string,
) ResolvedImport {
	loc := domain.Location{File: f.Path, Line: imp.Line, Column: imp.Column}
	res := ResolvedImport{PkgPath: imp.Path, Symbols: imp.Symbols, Location: loc}

	switch f.Language {
	case domain.LangGo:
		if goModule != "" {
			if imp.Path == goModule {
				res.PkgPath, res.Internal = "", true
				return res
			}
			if rest, ok := strings.CutPrefix(imp.Path, goModule+"/"); ok {
				res.PkgPath, res.Internal = rest, true
				return res
			}
		}
		if _, ok := pkgIndex[imp.Path]; ok {
			res.Internal = true
			return res
		}

	case domain.LangTypeScript:
		if strings.HasPrefix(imp.Path, ".") {
			joined := path.Clean(path.Join(fromPkg, imp.Path))
			if _, ok := pkgIndex[joined]; ok {
				res.PkgPath, res.Internal = joined, true
				return res
			}
			// "./user" usually names a module file inside a package dir.
			if dir := path.Dir(joined); dir != "." {
				if _, ok := pkgIndex[dir]; ok {
					res.PkgPath, res.Internal = dir, true
					return res
				}
			}
			res.PkgPath, res.Internal = joined, true
			return res
		}

	case domain.LangRust:
		first, rest, _ := strings.Cut(imp.Path, "/")
		switch first {
		case "crate":
			res.Internal = true
			res.PkgPath = resolveRustPath(rest, pkgIndex)
			return res
		case "super":
			parent := path.Dir(fromPkg)
			if parent == "." {
				parent = ""
			}
			res.Internal = true
			res.PkgPath = path.Clean(path.Join(parent, rest))
			return res
		case "self":
			res.Internal = true
			res.PkgPath = path.Clean(path.Join(fromPkg, rest))
			return res
		}

	case domain.LangJava:
		if dir, ok := javaPackages[imp.Path]; ok {
			res.PkgPath, res.Internal = dir, true
			return res
		}
	}

	return res
}

// resolveRustPath maps a crate-rooted module path onto the package index,
// trying the conventional src/ prefix first.
func resolveRustPath(rel string, pkgIndex map[string]*domain.Package) string {
	for _, candidate := range []string{"src/" + rel, rel} {
		if _, ok := pkgIndex[candidate]; ok {
			return candidate
		}
		// The path may end in a symbol's module file: src/a/b for use
		// crate::a::b::C where b.rs holds C.
		if dir := path.Dir(candidate); dir != "." {
			if _, ok := pkgIndex[dir]; ok {
				return dir
			}
		}
	}
	return "src/" + rel
}

func containsString(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
