// Package gen provides functions for generating go source code
//
// The gen package provides wrapper functions around the go/ast and
// go/token packages to reduce boilerplate.
package gen

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/printer"
	"go/token"
	"strconv"
	"strings"

	"golang.org/x/tools/imports"
)

// TypeDecl generates a type declaration with the given name.
func TypeDecl(name *ast.Ident, typ ast.Expr) *ast.GenDecl {
	return &ast.GenDecl{
		Tok: token.TYPE,
		Specs: []ast.Spec{
			&ast.TypeSpec{
				Name: name,
				Type: typ,
			},
		},
	}
}

// Sanitize modifies any names that are reserved in
// Go, so that they may be used as identifiers without
// causing a syntax error.
func Sanitize(name string) string {
	switch name {
	case "break", "default", "func", "interface", "select",
		"case", "defer", "go", "map", "struct",
		"chan", "else", "goto", "package", "switch",
		"const", "fallthrough", "if", "range", "type",
		"continue", "for", "import", "return", "var":
		return name + "_"
	}
	return name
}

// Struct creates a struct{} expression. The arguments are a series
// of name/type/tag tuples. Name must be of type *ast.Ident, type
// must be of type ast.Expr, and tag must be of type *ast.BasicLit,
// The number of arguments must be a multiple of 3, or a run-time
// panic will occur.
func Struct(args ...ast.Expr) *ast.StructType {
	fields := new(ast.FieldList)
	if len(args)%3 != 0 {
		panic("Number of args to FieldList must be a multiple of 3, got " + strconv.Itoa(len(args)))
	}
	for i := 0; i < len(args); i += 3 {
		var field ast.Field
		name, typ, tag := args[i], args[i+1], args[i+2]
		if name != nil {
			field.Names = []*ast.Ident{name.(*ast.Ident)}
		}
		if typ != nil {
			field.Type = typ
		}
		if tag != nil {
			field.Tag = tag.(*ast.BasicLit)
		}
		fields.List = append(fields.List, &field)
	}
	return &ast.StructType{Fields: fields}
}

// FieldList generates a field list from strings in the form "[name]
// expr".
func FieldList(fields ...string) (*ast.FieldList, error) {
	result := &ast.FieldList{List: []*ast.Field{}}
	for _, s := range fields {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 0 {
			return nil, fmt.Errorf("empty field list item %q", s)
		}
		var names []*ast.Ident
		typeExpr, err := parser.ParseExpr(parts[len(parts)-1])
		if err != nil {
			return nil, fmt.Errorf("could not parse type in %q: %v", s, err)
		}
		if len(parts) > 1 {
			names = []*ast.Ident{ast.NewIdent(parts[0])}
		}
		result.List = append(result.List, &ast.Field{
			Names: names,
			Type:  typeExpr,
		})
	}
	return result, nil
}

// Method creates an interface method signature with the given
// parameters and results, each in the form accepted by FieldList.
func Method(name string, params, results []string) (*ast.Field, error) {
	in, err := FieldList(params...)
	if err != nil {
		return nil, err
	}
	out, err := FieldList(results...)
	if err != nil {
		return nil, err
	}
	return &ast.Field{
		Names: []*ast.Ident{ast.NewIdent(name)},
		Type:  &ast.FuncType{Params: in, Results: out},
	}, nil
}

// Interface creates an interface{} expression from a list of methods.
func Interface(methods ...*ast.Field) *ast.InterfaceType {
	return &ast.InterfaceType{Methods: &ast.FieldList{List: methods}}
}

// String generates a literal string. If the string contains a double
// quote, backticks are used for quoting instead.
func String(s string) *ast.BasicLit {
	if strings.Contains(s, "\"") && !strings.Contains(s, "`") {
		return &ast.BasicLit{Kind: token.STRING, Value: "`" + s + "`"}
	}
	return &ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(s)}
}

// Tag generates a struct tag with a single key.
func Tag(key, value string) *ast.BasicLit {
	return &ast.BasicLit{Kind: token.STRING, Value: "`" + key + ":" + strconv.Quote(value) + "`"}
}

// ConstString creates a series of string const declarations from
// the name/type/value triples in args. The type may be empty.
func ConstString(args ...string) *ast.GenDecl {
	decl := ast.GenDecl{Tok: token.CONST}

	if len(args)%3 != 0 {
		panic("Number of values passed to ConstString must be a multiple of 3")
	}
	for i := 0; i < len(args); i += 3 {
		name, typ, val := args[i], args[i+1], args[i+2]
		a := &ast.ValueSpec{
			Names:  []*ast.Ident{ast.NewIdent(name)},
			Values: []ast.Expr{&ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(val)}},
		}
		if typ != "" {
			a.Type = ast.NewIdent(typ)
		}
		decl.Specs = append(decl.Specs, a)
	}

	if len(decl.Specs) > 1 {
		decl.Lparen = 1
	}

	return &decl
}

// CommentLines converts text to a series of line comments, one per
// line of text. Blank lines become empty comments.
func CommentLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			lines = append(lines, "//")
		} else {
			lines = append(lines, "// "+line)
		}
	}
	return lines
}

// ExprString converts an ast.Expr to the Go source it represents.
func ExprString(expr ast.Expr) string {
	var buf bytes.Buffer
	fs := token.NewFileSet()
	printer.Fprint(&buf, fs, expr)
	return buf.String()
}

// A File accumulates top-level declarations and comments, and
// renders them as formatted Go source.
//
// Declarations built with the functions in this package carry no
// position information, so the go/printer package cannot place
// comments attached to them. A File prints each declaration on its
// own and writes the comments around it as text instead.
type File struct {
	buf bytes.Buffer
	err error
}

// NewFile starts a Go source file for the named package. The doc
// lines, if any, are written before the package clause.
func NewFile(pkg string, doc ...string) *File {
	f := new(File)
	for _, line := range doc {
		f.buf.WriteString(line + "\n")
	}
	fmt.Fprintf(&f.buf, "package %s\n\n", pkg)
	return f
}

// Comment writes free-standing comment lines.
func (f *File) Comment(lines ...string) {
	for _, line := range lines {
		f.buf.WriteString(line + "\n")
	}
	f.buf.WriteString("\n")
}

// Decl writes a declaration, preceded by the given comment lines.
func (f *File) Decl(decl ast.Decl, doc ...string) {
	if f.err != nil {
		return
	}
	for _, line := range doc {
		f.buf.WriteString(line + "\n")
	}
	if err := format.Node(&f.buf, token.NewFileSet(), decl); err != nil {
		f.err = err
		return
	}
	f.buf.WriteString("\n\n")
}

// Source returns the formatted contents of the file, with imports
// added for any standard packages it refers to.
func (f *File) Source() ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	out, err := imports.Process("", f.buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("%v in %s", err, f.buf.String())
	}
	return out, nil
}
