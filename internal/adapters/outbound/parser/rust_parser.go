package parser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/boundary-cli/boundary/internal/domain"
)

// RustParser extracts components and use declarations from Rust source
// using tree-sitter.
type RustParser struct {
	parser *sitter.Parser
}

func NewRustParser() *RustParser {
	p := sitter.NewParser()
	p.SetLanguage(rust.GetLanguage())
	return &RustParser{parser: p}
}

func (p *RustParser) Language() domain.Language { return domain.LangRust }

func (p *RustParser) Extensions() []string { return []string{".rs"} }

// IsStdlib reports whether a use path roots in the Rust standard library.
func (p *RustParser) IsStdlib(importPath string) bool {
	first, _, _ := strings.Cut(importPath, "/")
	switch first {
	case "std", "core", "alloc":
		return true
	}
	return false
}

func (p *RustParser) Parse(path string, src []byte) (*domain.ParsedFile, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	defer tree.Close()

	result := &domain.ParsedFile{Path: path, Language: domain.LangRust}
	p.walk(tree.RootNode(), src, result, nil)
	return result, nil
}

// walk visits item nodes, carrying the attributes that syntactically
// precede each item (#[derive(...)], #[table_name = ...]).
func (p *RustParser) walk(node *sitter.Node, src []byte, result *domain.ParsedFile, pending []string) {
	impls := make(map[string][]domain.Method)

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "attribute_item":
			pending = append(pending, text(child, src))
			continue

		case "struct_item":
			result.Components = append(result.Components, rustComponent(child, src, domain.KindStruct, pending))
		case "enum_item":
			result.Components = append(result.Components, rustComponent(child, src, domain.KindEnum, pending))
		case "trait_item":
			comp := rustComponent(child, src, domain.KindTrait, pending)
			comp.Methods = rustTraitMethods(child, src)
			result.Components = append(result.Components, comp)
		case "function_item":
			comp := rustComponent(child, src, domain.KindFunction, pending)
			result.Components = append(result.Components, comp)

		case "impl_item":
			name, methods := rustImplMethods(child, src)
			if name != "" {
				impls[name] = append(impls[name], methods...)
			}

		case "mod_item":
			if body := child.ChildByFieldName("body"); body != nil {
				p.walk(body, src, result, nil)
			}

		case "use_declaration":
			if imp, ok := p.useImport(child, src); ok {
				result.Imports = append(result.Imports, imp...)
			}
		}
		pending = nil
	}

	for i := range result.Components {
		if ms, ok := impls[result.Components[i].Name]; ok {
			result.Components[i].Methods = append(result.Components[i].Methods, ms...)
		}
	}
}

func rustComponent(node *sitter.Node, src []byte, kind domain.Kind, attrs []string) domain.RawComponent {
	comp := domain.RawComponent{
		Kind:      kind,
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
	}
	if name := node.ChildByFieldName("name"); name != nil {
		comp.Name = text(name, src)
	}
	for _, a := range attrs {
		comp.Annotations = append(comp.Annotations, rustAttributeTokens(a)...)
	}
	if body := node.ChildByFieldName("body"); body != nil && kind == domain.KindStruct {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			f := body.NamedChild(i)
			if f.Type() != "field_declaration" {
				continue
			}
			field := domain.Field{}
			if n := f.ChildByFieldName("name"); n != nil {
				field.Name = text(n, src)
			}
			if t := f.ChildByFieldName("type"); t != nil {
				field.Type = text(t, src)
			}
			comp.Fields = append(comp.Fields, field)
		}
	}
	return comp
}

// rustAttributeTokens flattens an attribute item into bare tokens:
// "#[derive(Queryable)]" -> [derive Queryable]; "#[table_name = "users"]"
// -> [table_name].
func rustAttributeTokens(attr string) []string {
	attr = strings.Trim(attr, "#[]")
	var toks []string
	for _, part := range strings.FieldsFunc(attr, func(r rune) bool {
		return r == '(' || r == ')' || r == ',' || r == '=' || r == ' ' || r == '"'
	}) {
		if part != "" {
			toks = append(toks, part)
		}
	}
	return toks
}

func rustTraitMethods(node *sitter.Node, src []byte) []domain.Method {
	body := node.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	var methods []domain.Method
	for i := 0; i < int(body.NamedChildCount()); i++ {
		m := body.NamedChild(i)
		if m.Type() != "function_signature_item" && m.Type() != "function_item" {
			continue
		}
		methods = append(methods, rustMethod(m, src))
	}
	return methods
}

func rustImplMethods(node *sitter.Node, src []byte) (string, []domain.Method) {
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		return "", nil
	}
	name := text(typeNode, src)
	// Generic impls: Foo<T> names Foo.
	if idx := strings.IndexByte(name, '<'); idx > 0 {
		name = name[:idx]
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return name, nil
	}
	var methods []domain.Method
	for i := 0; i < int(body.NamedChildCount()); i++ {
		m := body.NamedChild(i)
		if m.Type() != "function_item" {
			continue
		}
		methods = append(methods, rustMethod(m, src))
	}
	return name, methods
}

// rustMethod counts value parameters, excluding the self receiver.
func rustMethod(node *sitter.Node, src []byte) domain.Method {
	m := domain.Method{}
	if n := node.ChildByFieldName("name"); n != nil {
		m.Name = text(n, src)
	}
	if params := node.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			if params.NamedChild(i).Type() == "parameter" {
				m.Arity++
			}
		}
	}
	return m
}

// useImport converts a use declaration into raw imports with :: replaced
// by /. Grouped uses (use crate::a::{B, C}) expand to one import per leaf.
func (p *RustParser) useImport(node *sitter.Node, src []byte) ([]domain.RawImport, bool) {
	arg := node.ChildByFieldName("argument")
	if arg == nil {
		return nil, false
	}
	line := int(node.StartPoint().Row) + 1
	col := int(node.StartPoint().Column) + 1

	raw := text(arg, src)
	var out []domain.RawImport
	for _, usePath := range expandUsePath(raw) {
		slashed := strings.ReplaceAll(usePath, "::", "/")
		imp := domain.RawImport{Path: slashed, Line: line, Column: col, Stdlib: p.IsStdlib(slashed)}
		// The final capitalized segment names a symbol, not a module.
		segs := strings.Split(slashed, "/")
		if last := segs[len(segs)-1]; len(segs) > 1 && isCapitalized(last) {
			imp.Path = strings.Join(segs[:len(segs)-1], "/")
			imp.Symbols = []string{last}
		}
		out = append(out, imp)
	}
	return out, len(out) > 0
}

// expandUsePath flattens "crate::a::{B, c::D}" into crate::a::B and
// crate::a::c::D. Aliases (as) and globs (*) keep the prefix only.
func expandUsePath(raw string) []string {
	raw = strings.TrimSpace(raw)
	open := strings.IndexByte(raw, '{')
	if open < 0 {
		if before, _, found := strings.Cut(raw, " as "); found {
			raw = before
		}
		return []string{strings.TrimSuffix(strings.TrimSpace(raw), "::*")}
	}
	prefix := strings.TrimSuffix(raw[:open], "::")
	inner := strings.TrimSuffix(raw[open+1:], "}")
	var out []string
	for _, part := range splitTopLevel(inner) {
		part = strings.TrimSpace(part)
		if part == "" || part == "self" {
			out = append(out, prefix)
			continue
		}
		for _, sub := range expandUsePath(part) {
			out = append(out, prefix+"::"+sub)
		}
	}
	return out
}

// splitTopLevel splits on commas outside nested braces.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

func isCapitalized(s string) bool {
	return len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z'
}

func text(n *sitter.Node, src []byte) string {
	return string(src[n.StartByte():n.EndByte()])
}
