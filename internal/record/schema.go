package record

import (
	"embed"
	"encoding/json"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/stoewer/go-strcase"
)

//go:embed record.go
var recordGoFile embed.FS

// Reflector builds JSON schemas for record types, carrying their Go doc
// comments over as descriptions.
type Reflector struct {
	*jsonschema.Reflector
}

// NewReflector creates a reflector with snake_case key and definition names.
func NewReflector() *Reflector {
	r := &jsonschema.Reflector{
		KeyNamer: strcase.SnakeCase,
		Namer: func(t reflect.Type) string {
			return strcase.SnakeCase(t.Name())
		},
		ExpandedStruct: true,
	}

	return &Reflector{Reflector: r}
}

// Schema returns the JSON Schema of Person.
func Schema() (*jsonschema.Schema, error) {
	reflector := NewReflector()
	if err := reflector.extractGoComments(reflect.TypeOf(Person{}).PkgPath()); err != nil {
		return nil, err
	}

	return reflector.Reflect(&Person{}), nil
}

// SchemaJSON returns the indented JSON encoding of Schema.
func SchemaJSON() ([]byte, error) {
	s, err := Schema()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(s, "", "  ")
}

func (r *Reflector) extractGoComments(pkg string) error {
	commentMap := make(map[string]string)
	fset := token.NewFileSet()
	src, err := recordGoFile.ReadFile("record.go")
	if err != nil {
		return fmt.Errorf("reading embedded record.go: %w", err)
	}

	f, err := parser.ParseFile(fset, "record.go", src, parser.ParseComments)
	if err != nil {
		return fmt.Errorf("parsing embedded record.go: %w", err)
	}

	gtxt := ""
	typ := ""
	ast.Inspect(f, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.TypeSpec:
			typ = x.Name.String()
			if !ast.IsExported(typ) {
				typ = ""
				return true
			}
			txt := x.Doc.Text()
			if txt == "" && gtxt != "" {
				txt = gtxt
				gtxt = ""
			}
			commentMap[fmt.Sprintf("%s.%s", pkg, typ)] = strings.TrimSpace(txt)
		case *ast.Field:
			txt := x.Doc.Text()
			if txt == "" {
				txt = x.Comment.Text()
			}
			if typ != "" && txt != "" {
				for _, n := range x.Names {
					if ast.IsExported(n.String()) {
						commentMap[fmt.Sprintf("%s.%s.%s", pkg, typ, n)] = strings.TrimSpace(txt)
					}
				}
			}
		case *ast.GenDecl:
			// remember for the next type
			gtxt = x.Doc.Text()
		}
		return true
	})

	r.CommentMap = commentMap

	return nil
}
