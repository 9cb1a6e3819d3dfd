package parser

import (
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"strings"

	"github.com/boundary-cli/boundary/internal/domain"
)

// GoParser extracts components and imports from Go source using go/ast.
type GoParser struct{}

func NewGoParser() *GoParser { return &GoParser{} }

func (p *GoParser) Language() domain.Language { return domain.LangGo }

func (p *GoParser) Extensions() []string { return []string{".go"} }

// IsStdlib reports whether an import path belongs to the standard library:
// any path without a dot in its first segment.
func (p *GoParser) IsStdlib(importPath string) bool {
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".")
}

func (p *GoParser) Parse(path string, src []byte) (*domain.ParsedFile, error) {
	fset := token.NewFileSet()
	file, err := goparser.ParseFile(fset, path, src, goparser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	result := &domain.ParsedFile{
		Path:     path,
		Language: domain.LangGo,
		Package:  file.Name.Name,
	}

	for _, imp := range file.Imports {
		impPath := strings.Trim(imp.Path.Value, `"`)
		pos := fset.Position(imp.Pos())
		result.Imports = append(result.Imports, domain.RawImport{
			Path:   impPath,
			Line:   pos.Line,
			Column: pos.Column,
			Stdlib: p.IsStdlib(impPath),
		})
	}

	// Methods attach to their receiver's component after the declaration
	// walk; Go allows methods before the type.
	methods := make(map[string][]domain.Method)

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			p.processGenDecl(fset, d, result)
		case *ast.FuncDecl:
			if d.Recv != nil && len(d.Recv.List) > 0 {
				recv := receiverType(d.Recv.List[0].Type)
				if recv != "" {
					methods[recv] = append(methods[recv], domain.Method{
						Name:  d.Name.Name,
						Arity: paramCount(d.Type),
					})
				}
				continue
			}
			result.Components = append(result.Components, domain.RawComponent{
				Name:      d.Name.Name,
				Kind:      domain.KindFunction,
				StartLine: fset.Position(d.Pos()).Line,
				EndLine:   fset.Position(d.End()).Line,
			})
		}
	}

	for i := range result.Components {
		if ms, ok := methods[result.Components[i].Name]; ok {
			result.Components[i].Methods = append(result.Components[i].Methods, ms...)
		}
	}

	return result, nil
}

func (p *GoParser) processGenDecl(fset *token.FileSet, decl *ast.GenDecl, result *domain.ParsedFile) {
	for _, spec := range decl.Specs {
		ts, ok := spec.(*ast.TypeSpec)
		if !ok {
			continue
		}
		comp := domain.RawComponent{
			Name:      ts.Name.Name,
			StartLine: fset.Position(ts.Pos()).Line,
			EndLine:   fset.Position(ts.End()).Line,
		}

		switch t := ts.Type.(type) {
		case *ast.InterfaceType:
			comp.Kind = domain.KindInterface
			if t.Methods != nil {
				for _, m := range t.Methods.List {
					if len(m.Names) == 0 {
						continue // embedded interface
					}
					arity := 0
					if ft, ok := m.Type.(*ast.FuncType); ok {
						arity = paramCount(ft)
					}
					comp.Methods = append(comp.Methods, domain.Method{Name: m.Names[0].Name, Arity: arity})
				}
			}
		case *ast.StructType:
			comp.Kind = domain.KindStruct
			if t.Fields != nil {
				for _, f := range t.Fields.List {
					field := domain.Field{Type: exprToString(f.Type)}
					if len(f.Names) > 0 {
						field.Name = f.Names[0].Name
					}
					if f.Tag != nil {
						field.Tags = tagKeys(f.Tag.Value)
					}
					comp.Fields = append(comp.Fields, field)
				}
			}
		default:
			continue
		}

		result.Components = append(result.Components, comp)
	}
}

// tagKeys extracts the tag keys from a raw struct tag literal:
// `bson:"name" json:"n"` yields [bson json].
func tagKeys(raw string) []string {
	raw = strings.Trim(raw, "`\"")
	var keys []string
	for _, part := range strings.Fields(raw) {
		if key, _, ok := strings.Cut(part, ":"); ok {
			keys = append(keys, key)
		}
	}
	return keys
}

func paramCount(ft *ast.FuncType) int {
	if ft.Params == nil {
		return 0
	}
	n := 0
	for _, f := range ft.Params.List {
		if len(f.Names) == 0 {
			n++
			continue
		}
		n += len(f.Names)
	}
	return n
}

func receiverType(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverType(t.X)
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		return receiverType(t.X)
	case *ast.IndexListExpr:
		return receiverType(t.X)
	default:
		return ""
	}
}

func exprToString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + exprToString(t.X)
	case *ast.SelectorExpr:
		return exprToString(t.X) + "." + t.Sel.Name
	case *ast.ArrayType:
		return "[]" + exprToString(t.Elt)
	case *ast.MapType:
		return "map[" + exprToString(t.Key) + "]" + exprToString(t.Value)
	case *ast.InterfaceType:
		return "interface{}"
	case *ast.Ellipsis:
		return "..." + exprToString(t.Elt)
	case *ast.FuncType:
		return "func"
	case *ast.ChanType:
		return "chan"
	default:
		return "unknown"
	}
}
