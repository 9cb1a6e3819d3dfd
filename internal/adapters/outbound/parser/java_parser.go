package parser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/boundary-cli/boundary/internal/domain"
)

// JavaParser extracts components and imports from Java source using
// tree-sitter. Imports are recorded at package granularity with the class
// name as the imported symbol.
type JavaParser struct {
	parser *sitter.Parser
}

func NewJavaParser() *JavaParser {
	p := sitter.NewParser()
	p.SetLanguage(java.GetLanguage())
	return &JavaParser{parser: p}
}

func (p *JavaParser) Language() domain.Language { return domain.LangJava }

func (p *JavaParser) Extensions() []string { return []string{".java"} }

// IsStdlib reports whether an import belongs to the JDK.
func (p *JavaParser) IsStdlib(importPath string) bool {
	for _, prefix := range []string{"java.", "javax.", "jdk."} {
		if strings.HasPrefix(importPath, prefix) {
			return true
		}
	}
	return false
}

func (p *JavaParser) Parse(path string, src []byte) (*domain.ParsedFile, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	defer tree.Close()

	result := &domain.ParsedFile{Path: path, Language: domain.LangJava}
	root := tree.RootNode()

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		switch child.Type() {
		case "package_declaration":
			result.Package = javaDottedName(child, src)

		case "import_declaration":
			if imp, ok := p.importSpec(child, src); ok {
				result.Imports = append(result.Imports, imp)
			}

		case "class_declaration":
			kind := domain.KindClass
			if hasModifier(child, src, "abstract") {
				kind = domain.KindAbstractClass
			}
			result.Components = append(result.Components, p.javaType(child, src, kind))
		case "interface_declaration":
			result.Components = append(result.Components, p.javaType(child, src, domain.KindInterface))
		case "enum_declaration":
			result.Components = append(result.Components, p.javaType(child, src, domain.KindEnum))
		}
	}

	return result, nil
}

func (p *JavaParser) importSpec(node *sitter.Node, src []byte) (domain.RawImport, bool) {
	full := strings.TrimSuffix(strings.TrimSpace(
		strings.TrimPrefix(strings.TrimSpace(text(node, src)), "import")), ";")
	full = strings.TrimSpace(strings.TrimPrefix(full, "static"))
	if full == "" {
		return domain.RawImport{}, false
	}

	imp := domain.RawImport{
		Line:   int(node.StartPoint().Row) + 1,
		Column: int(node.StartPoint().Column) + 1,
		Stdlib: p.IsStdlib(full),
	}
	switch {
	case strings.HasSuffix(full, ".*"):
		imp.Path = strings.TrimSuffix(full, ".*")
	default:
		if idx := strings.LastIndexByte(full, '.'); idx > 0 && isCapitalized(full[idx+1:]) {
			imp.Path = full[:idx]
			imp.Symbols = []string{full[idx+1:]}
		} else {
			imp.Path = full
		}
	}
	return imp, true
}

func (p *JavaParser) javaType(node *sitter.Node, src []byte, kind domain.Kind) domain.RawComponent {
	comp := domain.RawComponent{
		Kind:        kind,
		StartLine:   int(node.StartPoint().Row) + 1,
		EndLine:     int(node.EndPoint().Row) + 1,
		Annotations: annotations(node, src),
	}
	if n := node.ChildByFieldName("name"); n != nil {
		comp.Name = text(n, src)
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return comp
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		m := body.NamedChild(i)
		switch m.Type() {
		case "method_declaration":
			method := domain.Method{}
			if n := m.ChildByFieldName("name"); n != nil {
				method.Name = text(n, src)
			}
			if params := m.ChildByFieldName("parameters"); params != nil {
				method.Arity = int(params.NamedChildCount())
			}
			comp.Methods = append(comp.Methods, method)

		case "field_declaration":
			field := domain.Field{Tags: annotations(m, src)}
			if t := m.ChildByFieldName("type"); t != nil {
				field.Type = text(t, src)
			}
			if d := m.ChildByFieldName("declarator"); d != nil {
				if n := d.ChildByFieldName("name"); n != nil {
					field.Name = text(n, src)
				}
			}
			comp.Fields = append(comp.Fields, field)
		}
	}
	return comp
}

// annotations collects the annotation names from a declaration's modifiers:
// @Entity, @Table(name = "users") -> [Entity Table].
func annotations(node *sitter.Node, src []byte) []string {
	var out []string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		c := node.NamedChild(i)
		if c.Type() != "modifiers" {
			continue
		}
		for j := 0; j < int(c.NamedChildCount()); j++ {
			m := c.NamedChild(j)
			if m.Type() == "marker_annotation" || m.Type() == "annotation" {
				if n := m.ChildByFieldName("name"); n != nil {
					out = append(out, text(n, src))
				}
			}
		}
	}
	return out
}

func hasModifier(node *sitter.Node, src []byte, mod string) bool {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		c := node.NamedChild(i)
		if c.Type() != "modifiers" {
			continue
		}
		for _, tok := range strings.Fields(text(c, src)) {
			if tok == mod {
				return true
			}
		}
	}
	return false
}

func javaDottedName(node *sitter.Node, src []byte) string {
	s := strings.TrimSpace(text(node, src))
	s = strings.TrimPrefix(s, "package")
	return strings.TrimSuffix(strings.TrimSpace(s), ";")
}
