// Package gen derives field-wise Interpolate methods for struct types.
//
// It works on syntax alone: field types are classified from their AST and
// from type declarations in the same package, so it needs no build of the
// target package. A field whose type it cannot classify is assumed to
// implement interpolate.Interpolatable; if it does not, the generated code
// fails to compile, naming the field.
package gen

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"text/template"
)

// TagKey is the struct tag consulted per field. `interp:"-"` excludes a
// field from blending; it then snaps to the nearer snapshot.
const TagKey = "interp"

// Field is one assignment in a generated method.
type Field struct {
	Name   string
	Helper string // interpolate.<Helper>(start.Name, end.Name, t, curve)
}

// Struct is one type to generate a method for.
type Struct struct {
	Name   string
	Fields []Field
}

var numericIdents = map[string]bool{
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true, "uintptr": true,
	"float32": true, "float64": true, "byte": true, "rune": true,
}

var discreteIdents = map[string]bool{
	"string": true, "bool": true, "complex64": true, "complex128": true, "error": true, "any": true,
}

// ParseDir parses the non-test Go files of dir and returns the package name
// and the requested structs in the order given.
func ParseDir(dir string, types []string) (string, []Struct, error) {
	fset := token.NewFileSet()
	matches, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		return "", nil, err
	}
	sort.Strings(matches)

	var files []*ast.File
	for _, fn := range matches {
		if strings.HasSuffix(fn, "_test.go") {
			continue
		}
		src, err := os.ReadFile(fn)
		if err != nil {
			return "", nil, fmt.Errorf("read %s: %w", fn, err)
		}
		f, err := parser.ParseFile(fset, fn, src, parser.SkipObjectResolution)
		if err != nil {
			return "", nil, fmt.Errorf("parse %s: %w", fn, err)
		}
		files = append(files, f)
	}
	return collect(files, types)
}

// ParseSource is ParseDir for a single in-memory file.
func ParseSource(src string, types []string) (string, []Struct, error) {
	f, err := parser.ParseFile(token.NewFileSet(), "src.go", src, parser.SkipObjectResolution)
	if err != nil {
		return "", nil, fmt.Errorf("parse: %w", err)
	}
	return collect([]*ast.File{f}, types)
}

func collect(files []*ast.File, types []string) (string, []Struct, error) {
	if len(files) == 0 {
		return "", nil, fmt.Errorf("no Go files")
	}
	pkg := files[0].Name.Name

	specs := map[string]*ast.TypeSpec{}
	for _, f := range files {
		if f.Name.Name != pkg {
			return "", nil, fmt.Errorf("multiple packages: %s and %s", pkg, f.Name.Name)
		}
		ast.Inspect(f, func(n ast.Node) bool {
			if ts, ok := n.(*ast.TypeSpec); ok {
				specs[ts.Name.Name] = ts
			}
			return true
		})
	}

	c := classifier{specs: specs}
	out := make([]Struct, 0, len(types))
	for _, name := range types {
		ts, ok := specs[name]
		if !ok {
			return "", nil, fmt.Errorf("type %s not found in package %s", name, pkg)
		}
		if ts.TypeParams != nil && len(ts.TypeParams.List) > 0 {
			return "", nil, fmt.Errorf("type %s: generic types are not supported", name)
		}
		st, ok := ts.Type.(*ast.StructType)
		if !ok {
			return "", nil, fmt.Errorf("type %s is not a struct", name)
		}
		s := Struct{Name: name}
		for _, fld := range st.Fields.List {
			helper := c.helper(fld.Type, 0)
			if excluded(fld) {
				helper = "Nearest"
			}
			for _, fn := range fieldNames(fld) {
				if fn == "_" {
					continue
				}
				s.Fields = append(s.Fields, Field{Name: fn, Helper: helper})
			}
		}
		out = append(out, s)
	}
	return pkg, out, nil
}

func excluded(f *ast.Field) bool {
	if f.Tag == nil {
		return false
	}
	tag := reflect.StructTag(strings.Trim(f.Tag.Value, "`"))
	return tag.Get(TagKey) == "-"
}

func fieldNames(f *ast.Field) []string {
	if len(f.Names) > 0 {
		names := make([]string, len(f.Names))
		for i, n := range f.Names {
			names[i] = n.Name
		}
		return names
	}
	// Embedded field: the name is the type name.
	expr := f.Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	switch e := expr.(type) {
	case *ast.Ident:
		return []string{e.Name}
	case *ast.SelectorExpr:
		return []string{e.Sel.Name}
	case *ast.IndexExpr:
		return fieldNames(&ast.Field{Type: e.X})
	}
	return nil
}

type classifier struct {
	specs map[string]*ast.TypeSpec
}

// helper picks the interpolate function for a field type.
func (c classifier) helper(expr ast.Expr, depth int) string {
	switch e := expr.(type) {
	case *ast.ParenExpr:
		return c.helper(e.X, depth)
	case *ast.Ident:
		switch {
		case numericIdents[e.Name]:
			return "Number"
		case discreteIdents[e.Name]:
			return "Nearest"
		}
		// Follow local named types such as `type Meters float64` or
		// `type Path []float32`; the helpers accept them through inference.
		if ts, ok := c.specs[e.Name]; ok && depth < 8 {
			if _, isStruct := ts.Type.(*ast.StructType); !isStruct {
				if h := c.helper(ts.Type, depth+1); h != "Value" {
					return h
				}
			}
		}
		return "Value"
	case *ast.SelectorExpr:
		if pkg, ok := e.X.(*ast.Ident); ok && pkg.Name == "time" {
			switch e.Sel.Name {
			case "Time":
				return "Time"
			case "Duration":
				return "Duration"
			}
		}
		return "Value"
	case *ast.ArrayType:
		if e.Len != nil {
			// Arrays are not covered by a helper; snap.
			return "Nearest"
		}
		switch c.helper(e.Elt, depth+1) {
		case "Number":
			return "NumberSlice"
		case "Value":
			return "Slice"
		}
		return "Nearest"
	case *ast.MapType:
		if c.helper(e.Value, depth+1) == "Value" {
			return "Map"
		}
		return "Nearest"
	}
	// Pointers, channels, funcs, interfaces, anonymous structs.
	return "Nearest"
}

var tmpl = template.Must(template.New("interp").Parse(`// Code generated by interpgen; DO NOT EDIT.

package {{.Package}}

import (
	"github.com/comalice/tickloop/ease"
	"github.com/comalice/tickloop/interpolate"
)
{{range .Structs}}
// Interpolate blends every field of start toward end.
func (start {{.Name}}) Interpolate(end {{.Name}}, t float32, curve ease.Curve) {{.Name}} {
	return {{.Name}}{
{{- range .Fields}}
		{{.Name}}: interpolate.{{.Helper}}(start.{{.Name}}, end.{{.Name}}, t, curve),
{{- end}}
	}
}
{{end}}`))

// Render produces the gofmt'd source of the generated file.
func Render(pkg string, structs []Struct) ([]byte, error) {
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, struct {
		Package string
		Structs []Struct
	}{pkg, structs})
	if err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w\n%s", err, buf.Bytes())
	}
	return src, nil
}

// OutputName is the default file name for the generated code.
func OutputName(types []string) string {
	return strings.ToLower(types[0]) + "_interp.go"
}
