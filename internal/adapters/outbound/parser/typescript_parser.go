package parser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/boundary-cli/boundary/internal/domain"
)

// TypeScriptParser extracts components and module imports from TypeScript
// source using tree-sitter.
type TypeScriptParser struct {
	parser *sitter.Parser
}

func NewTypeScriptParser() *TypeScriptParser {
	p := sitter.NewParser()
	p.SetLanguage(typescript.GetLanguage())
	return &TypeScriptParser{parser: p}
}

func (p *TypeScriptParser) Language() domain.Language { return domain.LangTypeScript }

func (p *TypeScriptParser) Extensions() []string { return []string{".ts", ".tsx"} }

// IsStdlib reports whether a module specifier is filtered like a runtime
// built-in: bare specifiers not starting with @ and not containing /, plus
// node:-prefixed ones.
func (p *TypeScriptParser) IsStdlib(importPath string) bool {
	if strings.HasPrefix(importPath, "node:") {
		return true
	}
	if strings.HasPrefix(importPath, ".") || strings.HasPrefix(importPath, "@") {
		return false
	}
	return !strings.Contains(importPath, "/")
}

func (p *TypeScriptParser) Parse(path string, src []byte) (*domain.ParsedFile, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	defer tree.Close()

	result := &domain.ParsedFile{Path: path, Language: domain.LangTypeScript}
	p.walk(tree.RootNode(), src, result, nil)
	return result, nil
}

func (p *TypeScriptParser) walk(node *sitter.Node, src []byte, result *domain.ParsedFile, decorators []string) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "decorator":
			decorators = append(decorators, text(child, src))
			continue

		case "export_statement":
			// Declarations nest one level under export.
			p.walk(child, src, result, decorators)

		case "interface_declaration":
			result.Components = append(result.Components, p.tsType(child, src, domain.KindInterface, decorators))
		case "abstract_class_declaration":
			result.Components = append(result.Components, p.tsType(child, src, domain.KindAbstractClass, decorators))
		case "class_declaration":
			kind := domain.KindClass
			if firstTokenIs(child, src, "abstract") {
				kind = domain.KindAbstractClass
			}
			result.Components = append(result.Components, p.tsType(child, src, kind, decorators))
		case "enum_declaration":
			result.Components = append(result.Components, p.tsType(child, src, domain.KindEnum, decorators))
		case "function_declaration":
			comp := domain.RawComponent{
				Kind:      domain.KindFunction,
				StartLine: int(child.StartPoint().Row) + 1,
				EndLine:   int(child.EndPoint().Row) + 1,
			}
			if n := child.ChildByFieldName("name"); n != nil {
				comp.Name = text(n, src)
			}
			result.Components = append(result.Components, comp)

		case "import_statement":
			if imp, ok := p.importSpec(child, src); ok {
				result.Imports = append(result.Imports, imp)
			}
		}
		decorators = nil
	}
}

func (p *TypeScriptParser) tsType(node *sitter.Node, src []byte, kind domain.Kind, decorators []string) domain.RawComponent {
	comp := domain.RawComponent{
		Kind:      kind,
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
	}
	if n := node.ChildByFieldName("name"); n != nil {
		comp.Name = text(n, src)
	}
	for _, d := range decorators {
		comp.Annotations = append(comp.Annotations, decoratorToken(d))
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return comp
	}
	var memberDecorators []string
	for i := 0; i < int(body.NamedChildCount()); i++ {
		m := body.NamedChild(i)
		switch m.Type() {
		case "decorator":
			memberDecorators = append(memberDecorators, text(m, src))
			continue
		case "method_definition", "method_signature", "abstract_method_signature":
			method := domain.Method{}
			if n := m.ChildByFieldName("name"); n != nil {
				method.Name = text(n, src)
			}
			if params := m.ChildByFieldName("parameters"); params != nil {
				method.Arity = int(params.NamedChildCount())
			}
			if method.Name != "constructor" {
				comp.Methods = append(comp.Methods, method)
			}
		case "public_field_definition", "property_signature":
			field := domain.Field{}
			if n := m.ChildByFieldName("name"); n != nil {
				field.Name = text(n, src)
			}
			if t := m.ChildByFieldName("type"); t != nil {
				field.Type = strings.TrimPrefix(text(t, src), ": ")
			}
			for _, d := range memberDecorators {
				field.Tags = append(field.Tags, decoratorToken(d))
			}
			for j := 0; j < int(m.NamedChildCount()); j++ {
				if d := m.NamedChild(j); d.Type() == "decorator" {
					field.Tags = append(field.Tags, decoratorToken(text(d, src)))
				}
			}
			comp.Fields = append(comp.Fields, field)
		}
		memberDecorators = nil
	}
	return comp
}

// decoratorToken reduces "@Entity({name: 'users'})" to "Entity".
func decoratorToken(d string) string {
	d = strings.TrimPrefix(d, "@")
	if idx := strings.IndexByte(d, '('); idx >= 0 {
		d = d[:idx]
	}
	return d
}

func (p *TypeScriptParser) importSpec(node *sitter.Node, src []byte) (domain.RawImport, bool) {
	srcNode := node.ChildByFieldName("source")
	if srcNode == nil {
		return domain.RawImport{}, false
	}
	spec := strings.Trim(text(srcNode, src), `"'`)
	imp := domain.RawImport{
		Path:   spec,
		Line:   int(node.StartPoint().Row) + 1,
		Column: int(node.StartPoint().Column) + 1,
		Stdlib: p.IsStdlib(spec),
	}

	// Named imports become symbols: import { User, Order } from "./user".
	var collect func(n *sitter.Node)
	collect = func(n *sitter.Node) {
		for i := 0; i < int(n.NamedChildCount()); i++ {
			c := n.NamedChild(i)
			if c.Type() == "import_specifier" {
				if name := c.ChildByFieldName("name"); name != nil {
					imp.Symbols = append(imp.Symbols, text(name, src))
				}
				continue
			}
			collect(c)
		}
	}
	collect(node)

	return imp, true
}

// firstTokenIs checks the first lexical child of a node.
func firstTokenIs(node *sitter.Node, src []byte, token string) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		if c.Type() == token || text(c, src) == token {
			return true
		}
		if c.IsNamed() {
			break
		}
	}
	return false
}
