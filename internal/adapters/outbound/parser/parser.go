// Package parser implements the per-language source parsers. Go is parsed
// with go/ast; Rust, TypeScript and Java are parsed with tree-sitter.
package parser

import (
	"path/filepath"
	"strings"

	"github.com/boundary-cli/boundary/internal/domain"
)

// Registry holds one parser per enabled language, keyed by file extension.
type Registry struct {
	parsers []domain.SourceParser
	byExt   map[string]domain.SourceParser
}

// NewRegistry builds a registry for the requested languages; an empty list
// enables all four.
func NewRegistry(languages []domain.Language) *Registry {
	enabled := make(map[domain.Language]bool)
	if len(languages) == 0 {
		for _, l := range domain.AllLanguages {
			enabled[l] = true
		}
	} else {
		for _, l := range languages {
			enabled[l] = true
		}
	}

	r := &Registry{byExt: make(map[string]domain.SourceParser)}
	all := []domain.SourceParser{
		NewGoParser(),
		NewRustParser(),
		NewTypeScriptParser(),
		NewJavaParser(),
	}
	for _, p := range all {
		if !enabled[p.Language()] {
			continue
		}
		r.parsers = append(r.parsers, p)
		for _, ext := range p.Extensions() {
			r.byExt[ext] = p
		}
	}
	return r
}

// ForFile returns the parser handling the file's extension, or nil when
// the file's language is disabled or unknown.
func (r *Registry) ForFile(path string) domain.SourceParser {
	return r.byExt[strings.ToLower(filepath.Ext(path))]
}

// LanguageForFile maps an extension to a language without consulting the
// enabled set.
func LanguageForFile(path string) (domain.Language, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return domain.LangGo, true
	case ".rs":
		return domain.LangRust, true
	case ".ts", ".tsx":
		return domain.LangTypeScript, true
	case ".java":
		return domain.LangJava, true
	}
	return "", false
}
