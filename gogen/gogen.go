// Package gogen generates Go type declarations from WSDL definitions.
//
// The generated file declares a string type and constants for each
// enumeration, a defined type for each restricted simple type, a
// struct with encoding/xml tags for each complex type, element and
// message, and, if requested, an interface for each port type whose
// methods take a context.Context. Like the tsgen package, gogen only
// describes data shapes; no client is generated.
package gogen

import (
	"errors"
	"fmt"
	"go/ast"
	"strconv"
	"strings"
	"unicode"

	"github.com/CognitoIQ/wsdl2ts/internal/gen"
	"github.com/CognitoIQ/wsdl2ts/names"
	"github.com/CognitoIQ/wsdl2ts/wsdl"
	"github.com/CognitoIQ/wsdl2ts/xsd"
)

const timestampLayout = "2006-01-02T15:04:05.000Z"

// Generate produces Go source for def using the DefaultOptions,
// modified by opts.
func Generate(def *wsdl.Definition, opts ...Option) ([]byte, error) {
	var cfg Config
	cfg.Option(DefaultOptions...)
	cfg.Option(opts...)
	return cfg.Generate(def)
}

// Generate produces formatted Go source declaring the types in def.
func (cfg *Config) Generate(def *wsdl.Definition) ([]byte, error) {
	if def == nil {
		return nil, errors.New("gogen: nil definition")
	}
	if cfg.clock == nil {
		return nil, errors.New("gogen: no clock configured")
	}
	g := &generator{
		Config:   cfg,
		def:      def,
		declared: make(map[string]bool),
		elements: make(map[string]string),
		messages: make(map[string]string),
	}
	if err := g.names(); err != nil {
		return nil, err
	}
	pkg := g.packageName()
	cfg.verbosef("generating package %s", pkg)
	g.file = gen.NewFile(pkg,
		"// Code generated by wsdl2ts. DO NOT EDIT.",
		"// Generated on: "+cfg.clock().UTC().Format(timestampLayout),
		"",
	)
	if err := g.decls(); err != nil {
		return nil, err
	}
	return g.file.Source()
}

type generator struct {
	*Config
	def  *wsdl.Definition
	file *gen.File
	// Go names in use, and the Go names chosen for elements and
	// messages that clash with a type name.
	declared map[string]bool
	elements map[string]string
	messages map[string]string
}

func (g *generator) packageName() string {
	if g.pkgname != "" {
		return g.pkgname
	}
	var buf strings.Builder
	for _, r := range strings.ToLower(g.namespaceHint) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || buf.Len() > 0 && unicode.IsDigit(r)) {
			buf.WriteRune(r)
		}
	}
	if buf.Len() == 0 {
		return "ws"
	}
	return gen.Sanitize(buf.String())
}

func (g *generator) typeName(name string) string {
	s := names.TypeName(name)
	if g.nameTransform != nil {
		s = g.nameTransform(s)
	}
	return s
}

// declare reserves a Go name for a declaration. If the name is taken,
// suffix is appended until it is not.
func (g *generator) declare(name, suffix string) string {
	goName := name
	for n := 2; g.declared[goName]; n++ {
		goName = name + suffix
		if n > 2 {
			goName += strconv.Itoa(n - 1)
		}
	}
	if goName != name {
		g.logf("%s is already declared, using %s", name, goName)
	}
	g.declared[goName] = true
	return goName
}

// names assigns Go names to every declaration before any is
// generated, so that references resolve to the final names.
func (g *generator) names() error {
	for _, t := range g.def.SimpleTypes {
		if t.Name == "" {
			return errors.New("gogen: simple type with empty name")
		}
		g.declared[g.typeName(t.Name)] = true
	}
	for _, t := range g.def.ComplexTypes {
		if t.Name == "" {
			return errors.New("gogen: complex type with empty name")
		}
		g.declared[g.typeName(t.Name)] = true
	}
	for _, el := range g.def.Elements {
		if el.Name == "" {
			return errors.New("gogen: element with empty name")
		}
		if _, ok := g.elements[el.Name]; !ok {
			g.elements[el.Name] = g.declare(g.typeName(el.Name), "Element")
		}
	}
	for _, msg := range g.def.Messages {
		if msg.Name == "" {
			return errors.New("gogen: message with empty name")
		}
		if _, ok := g.messages[msg.Name]; !ok {
			g.messages[msg.Name] = g.declare(g.typeName(msg.Name), "Message")
		}
	}
	for _, pt := range g.def.PortTypes {
		if pt.Name == "" {
			return errors.New("gogen: port type with empty name")
		}
	}
	return nil
}

func (g *generator) decls() error {
	if len(g.def.SimpleTypes) > 0 {
		g.file.Comment("// Simple Types")
		for i := range g.def.SimpleTypes {
			g.simpleType(&g.def.SimpleTypes[i])
		}
	}
	if len(g.def.ComplexTypes) > 0 {
		g.file.Comment("// Complex Types")
		for i := range g.def.ComplexTypes {
			g.complexType(&g.def.ComplexTypes[i])
		}
	}
	if len(g.def.Elements) > 0 {
		g.file.Comment("// Element Types")
		done := make(map[string]bool)
		for i := range g.def.Elements {
			el := &g.def.Elements[i]
			if done[el.Name] {
				continue
			}
			done[el.Name] = true
			g.element(el)
		}
	}
	if len(g.def.Messages) > 0 {
		g.file.Comment("// Message Types")
		done := make(map[string]bool)
		for _, msg := range g.def.Messages {
			if done[msg.Name] {
				continue
			}
			done[msg.Name] = true
			g.message(msg)
		}
	}
	if g.includeOperations && len(g.def.PortTypes) > 0 {
		g.file.Comment("// Service Operations")
		for _, pt := range g.def.PortTypes {
			if err := g.portType(pt); err != nil {
				return err
			}
		}
	}
	return nil
}

func doc(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return gen.CommentLines(text)
}

func ident(name string) *ast.Ident { return ast.NewIdent(name) }

func (g *generator) unknown(where string) ast.Expr {
	g.debugf("%s has no declared type", where)
	return ident("any")
}

// mapRef returns the Go type for a reference to a built-in or
// user-defined type.
func (g *generator) mapRef(ref xsd.Ref, where string) ast.Expr {
	if !ref.Known() {
		return g.unknown(where)
	}
	if b, ok := xsd.ParseBuiltin(string(ref)); ok {
		return builtinExpr(b)
	}
	return ident(g.typeName(string(ref)))
}

func (g *generator) simpleType(t *xsd.SimpleType) {
	name := g.typeName(t.Name)
	comments := doc(t.Doc)
	switch {
	case t.Enumerated():
		g.file.Decl(gen.TypeDecl(ident(name), ident("string")), comments...)
		g.file.Decl(gen.ConstString(g.enumConsts(name, t.Restriction.Enumeration)...))
	case t.Restriction != nil:
		r := t.Restriction
		if r.Pattern != "" {
			comments = append(comments, "// Pattern: "+r.Pattern)
		}
		if r.MinLength != nil {
			comments = append(comments, "// Min length: "+strconv.Itoa(*r.MinLength))
		}
		if r.MaxLength != nil {
			comments = append(comments, "// Max length: "+strconv.Itoa(*r.MaxLength))
		}
		g.file.Decl(gen.TypeDecl(ident(name), g.mapRef(r.Base, "simple type "+t.Name)), comments...)
	default:
		g.file.Decl(gen.TypeDecl(ident(name), g.unknown("simple type "+t.Name)), comments...)
	}
}

// enumConsts returns name/type/value triples for the constants of an
// enumeration. Constant names are the type name followed by the
// title-cased enumeration key; clashes are numbered.
func (g *generator) enumConsts(typ string, values []string) []string {
	var args []string
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		suffix := names.TypeName(strings.ToLower(names.EnumKey(v)))
		if suffix == "" {
			suffix = "Empty"
		}
		base := typ + suffix
		name := base
		for n := 2; seen[name]; n++ {
			name = base + strconv.Itoa(n)
		}
		if name != base {
			g.logf("enum %s: value %q collides on %s, using %s", typ, v, base, name)
		}
		seen[name] = true
		args = append(args, name, typ, v)
	}
	return args
}

func (g *generator) complexType(t *xsd.ComplexType) {
	name := g.typeName(t.Name)
	if t.SOAPArray {
		typ := &ast.ArrayType{Elt: g.mapRef(t.SOAPArrayType, "array type "+t.Name)}
		g.file.Decl(gen.TypeDecl(ident(name), typ), doc(t.Doc)...)
		return
	}
	var embed ast.Expr
	if t.Base.Known() {
		if base := g.def.ComplexType(string(t.Base)); base != nil && !base.SOAPArray {
			embed = ident(g.typeName(base.Name))
		} else {
			g.logf("complex type %s: base %s is not a record type, not embedding it", t.Name, t.Base)
		}
	}
	g.file.Decl(gen.TypeDecl(ident(name), g.structType(t, embed)), doc(t.Doc)...)
}

// structType builds the struct for a record type: the embedded base
// type if any, then one field per element, then one per attribute.
func (g *generator) structType(t *xsd.ComplexType, embed ast.Expr) *ast.StructType {
	var args []ast.Expr
	used := make(map[string]bool)
	field := func(name string) *ast.Ident {
		goName := names.TypeName(name)
		if goName == "" {
			goName = "Field"
		}
		unique := goName
		for n := 2; used[unique]; n++ {
			unique = goName + strconv.Itoa(n)
		}
		used[unique] = true
		return ident(unique)
	}
	if embed != nil {
		used[gen.ExprString(embed)] = true
		args = append(args, nil, embed, nil)
	}
	for i := range t.Elements {
		el := &t.Elements[i]
		tag := el.Name
		if el.Optional() {
			tag += ",omitempty"
		}
		args = append(args, field(el.Name), g.occurs(el, g.elementType(el)), gen.Tag("xml", tag))
	}
	for _, attr := range t.Attributes {
		typ := g.mapRef(attr.Type, "attribute "+attr.Name)
		tag := attr.Name + ",attr"
		if attr.Use != xsd.Required {
			tag += ",omitempty"
		}
		args = append(args, field(attr.Name), typ, gen.Tag("xml", tag))
	}
	return gen.Struct(args...)
}

// occurs applies the cardinality of el to a type. Repeated elements
// become slices, and optional scalars become pointers.
func (g *generator) occurs(el *xsd.Element, typ ast.Expr) ast.Expr {
	if el.Repeated() {
		return &ast.ArrayType{Elt: typ}
	}
	if el.Optional() && pointable(typ) {
		return &ast.StarExpr{X: typ}
	}
	return typ
}

func pointable(typ ast.Expr) bool {
	switch typ := typ.(type) {
	case *ast.ArrayType:
		return false
	case *ast.Ident:
		return typ.Name != "any"
	}
	return true
}

// elementType returns the type of a value held by an element member of
// a complex type, before cardinality is applied.
func (g *generator) elementType(el *xsd.Element) ast.Expr {
	switch {
	case el.Inline != nil:
		return g.structType(el.Inline, nil)
	case el.InlineSimple != nil:
		if r := el.InlineSimple.Restriction; r != nil {
			return g.mapRef(r.Base, "element "+el.Name)
		}
		return g.unknown("element " + el.Name)
	case el.Ref.Known():
		return g.elementRef(el.Ref)
	}
	return g.mapRef(el.Type, "element "+el.Name)
}

// elementRef returns the type of the top-level element with the given
// name. If there is no such element, the name itself is taken to be a
// type name.
func (g *generator) elementRef(ref xsd.Ref) ast.Expr {
	el := g.def.Element(string(ref))
	if el == nil {
		g.verbosef("no element %s declared, assuming it names a type", ref)
		return ident(g.typeName(string(ref)))
	}
	if el.Inline != nil || el.InlineSimple != nil {
		return ident(g.elements[el.Name])
	}
	return g.mapRef(el.Type, "element "+el.Name)
}

func (g *generator) element(el *xsd.Element) {
	name := g.elements[el.Name]
	var typ ast.Expr
	if el.Inline != nil {
		typ = g.structType(el.Inline, nil)
	} else {
		typ = g.elementType(el)
		if el.Repeated() {
			typ = &ast.ArrayType{Elt: typ}
		}
	}
	g.file.Decl(gen.TypeDecl(ident(name), typ), doc(el.Doc)...)
}

func (g *generator) message(msg wsdl.Message) {
	var args []ast.Expr
	for _, part := range msg.Parts {
		var typ ast.Expr
		switch {
		case part.Element.Known():
			typ = g.elementRef(part.Element)
		case part.Type.Known():
			typ = g.mapRef(part.Type, "part "+part.Name)
		default:
			typ = g.unknown("message " + msg.Name + " part " + part.Name)
		}
		field := names.TypeName(part.Name)
		if field == "" {
			field = "Part"
		}
		args = append(args, ident(field), typ, gen.Tag("xml", part.Name))
	}
	g.file.Decl(gen.TypeDecl(ident(g.messages[msg.Name]), gen.Struct(args...)))
}

func (g *generator) messageName(ref xsd.Ref) string {
	if name, ok := g.messages[string(ref)]; ok {
		return name
	}
	return g.typeName(string(ref))
}

func (g *generator) portType(pt wsdl.PortType) error {
	var methods []*ast.Field
	for _, op := range pt.Operations {
		params := []string{"ctx context.Context"}
		if op.Input.Known() {
			params = append(params, "request *"+g.messageName(op.Input))
		}
		results := []string{"error"}
		if op.Output.Known() {
			results = []string{"*" + g.messageName(op.Output), "error"}
		}
		m, err := gen.Method(names.TypeName(op.Name), params, results)
		if err != nil {
			return fmt.Errorf("gogen: operation %s: %v", op.Name, err)
		}
		methods = append(methods, m)
	}
	name := g.declare(g.typeName(pt.Name), "Service")
	g.file.Decl(gen.TypeDecl(ident(name), gen.Interface(methods...)), doc(pt.Doc)...)
	return nil
}
