// Package scanner discovers source files under a project root.
package scanner

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/boundary-cli/boundary/internal/adapters/outbound/parser"
	"github.com/boundary-cli/boundary/internal/domain"
)

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"bin":          true,
	"target":       true,
	".boundary":    true,
}

// FileScanner implements domain.ProjectScanner by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner { return &FileScanner{} }

func (s *FileScanner) Scan(root string, cfg *domain.Config) (*domain.ScanResult, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(absRoot); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("project root %s is not a readable directory", root)
	}

	enabled := make(map[domain.Language]bool)
	if cfg == nil || len(cfg.Languages) == 0 {
		for _, l := range domain.AllLanguages {
			enabled[l] = true
		}
	} else {
		for _, l := range cfg.Languages {
			enabled[l] = true
		}
	}

	var excludes []glob.Glob
	if cfg != nil {
		for _, pat := range cfg.ExcludePatterns {
			if g, err := glob.Compile(pat, '/'); err == nil {
				excludes = append(excludes, g)
			}
			if rest, ok := strings.CutPrefix(pat, "**/"); ok {
				if g, err := glob.Compile(rest, '/'); err == nil {
					excludes = append(excludes, g)
				}
			}
		}
	}

	result := &domain.ScanResult{Root: absRoot}

	err = filepath.WalkDir(absRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(absRoot, path)
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path != absRoot && (skipDirs[d.Name()] || matchAny(excludes, rel)) {
				return filepath.SkipDir
			}
			return nil
		}
		if matchAny(excludes, rel) {
			return nil
		}

		if d.Name() == "go.mod" && filepath.Dir(rel) == "." {
			result.GoModulePath = readModulePath(path)
			return nil
		}

		lang, ok := parser.LanguageForFile(rel)
		if !ok || !enabled[lang] {
			return nil
		}
		result.Files = append(result.Files, domain.SourceFile{Path: rel, Language: lang})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result.Files, func(i, j int) bool { return result.Files[i].Path < result.Files[j].Path })
	return result, nil
}

func matchAny(globs []glob.Glob, path string) bool {
	for _, g := range globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// readModulePath extracts the module line from a go.mod, best-effort.
func readModulePath(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if rest, ok := strings.CutPrefix(line, "module "); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}
