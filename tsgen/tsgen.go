// Package tsgen generates TypeScript type declarations from WSDL
// definitions.
//
// The declarations describe the shape of the data a service exchanges:
// an enum or alias for each simple type, an interface for each complex
// type and message, an alias for each top-level element and, if
// requested, an interface for each port type. No runtime code is
// generated. Output is deterministic; rendering the same definition
// twice yields the same text apart from the timestamp in the header.
package tsgen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/CognitoIQ/wsdl2ts/names"
	"github.com/CognitoIQ/wsdl2ts/wsdl"
	"github.com/CognitoIQ/wsdl2ts/xsd"
)

const timestampLayout = "2006-01-02T15:04:05.000Z"

// Render generates TypeScript declarations for def using the
// DefaultOptions, modified by opts.
func Render(def *wsdl.Definition, opts ...Option) (string, error) {
	var cfg Config
	cfg.Option(DefaultOptions...)
	cfg.Option(opts...)
	return cfg.Generate(def)
}

// Generate renders def as TypeScript declarations. Generate fails,
// returning no text, if def is nil or contains a declaration with no
// name, or if StrictEnumKeys is set and an enumeration has colliding
// member names.
func (cfg *Config) Generate(def *wsdl.Definition) (string, error) {
	if def == nil {
		return "", errors.New("tsgen: nil definition")
	}
	if err := validate(def); err != nil {
		return "", err
	}
	if cfg.namespaceHint != "" {
		cfg.verbosef("namespace hint %q does not affect TypeScript output", cfg.namespaceHint)
	}
	g := generator{Config: cfg, def: def}
	if err := g.file(); err != nil {
		return "", err
	}
	if g.fallbacks > 0 {
		cfg.verbosef("%d references had no declared type and were rendered as %s", g.fallbacks, g.unknownExpr())
	}
	return strings.Join(g.lines, "\n"), nil
}

func validate(def *wsdl.Definition) error {
	check := func(category, name string) error {
		if name == "" {
			return fmt.Errorf("tsgen: %s with empty name", category)
		}
		return nil
	}
	for _, t := range def.SimpleTypes {
		if err := check("simple type", t.Name); err != nil {
			return err
		}
	}
	for _, t := range def.ComplexTypes {
		if err := check("complex type", t.Name); err != nil {
			return err
		}
	}
	for _, el := range def.Elements {
		if err := check("element", el.Name); err != nil {
			return err
		}
	}
	for _, msg := range def.Messages {
		if err := check("message", msg.Name); err != nil {
			return err
		}
	}
	for _, pt := range def.PortTypes {
		if err := check("port type", pt.Name); err != nil {
			return err
		}
	}
	return nil
}

type generator struct {
	*Config
	def       *wsdl.Definition
	lines     []string
	fallbacks int
}

func (g *generator) emit(lines ...string) {
	g.lines = append(g.lines, lines...)
}

func (g *generator) file() error {
	now := g.clock
	if now == nil {
		return errors.New("tsgen: no clock configured")
	}
	g.emit(
		"// Generated TypeScript types from WSDL",
		"// Generated on: "+now().UTC().Format(timestampLayout),
		"",
	)

	if len(g.def.SimpleTypes) > 0 {
		g.emit("// Simple Types")
		for i := range g.def.SimpleTypes {
			if err := g.simpleType(&g.def.SimpleTypes[i]); err != nil {
				return err
			}
			g.emit("")
		}
	}
	if len(g.def.ComplexTypes) > 0 {
		g.emit("// Complex Types")
		for i := range g.def.ComplexTypes {
			g.complexType(&g.def.ComplexTypes[i])
			g.emit("")
		}
	}
	if len(g.def.Elements) > 0 {
		g.emit("// Element Types")
		for i := range g.def.Elements {
			g.element(&g.def.Elements[i])
			g.emit("")
		}
	}
	if len(g.def.Messages) > 0 {
		g.emit("// Message Types")
		for _, msg := range g.def.Messages {
			g.message(msg)
			g.emit("")
		}
	}
	if g.includeOperations && len(g.def.PortTypes) > 0 {
		g.emit("// Service Operations")
		for _, pt := range g.def.PortTypes {
			g.portType(pt)
			g.emit("")
		}
	}
	return nil
}

func (g *generator) doc(indent, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	lines := strings.Split(text, "\n")
	if len(lines) == 1 {
		g.emit(indent + "/** " + text + " */")
		return
	}
	g.emit(indent + "/**")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			g.emit(indent + " *")
		} else {
			g.emit(indent + " * " + line)
		}
	}
	g.emit(indent + " */")
}

func (g *generator) typeName(name string) string {
	s := names.TypeName(name)
	if g.nameTransform != nil {
		s = g.nameTransform(s)
	}
	return s
}

func (g *generator) unknownExpr() string {
	if g.unknownType == "" {
		return "unknown"
	}
	return g.unknownType
}

// unknown is used wherever the document did not say what a value may
// contain.
func (g *generator) unknown(where string) string {
	g.fallbacks++
	g.debugf("%s has no declared type", where)
	return g.unknownExpr()
}

// mapRef returns the TypeScript type for a reference to a built-in or
// user-defined type.
func (g *generator) mapRef(ref xsd.Ref, where string) string {
	if !ref.Known() {
		return g.unknown(where)
	}
	if ts, ok := MapPrimitive(string(ref)); ok {
		return ts
	}
	return g.typeName(string(ref))
}

func (g *generator) simpleType(t *xsd.SimpleType) error {
	name := g.typeName(t.Name)
	g.doc("", t.Doc)
	switch {
	case t.Enumerated():
		keys, err := g.enumKeys(t.Name, t.Restriction.Enumeration)
		if err != nil {
			return err
		}
		g.emit("export enum " + name + " {")
		for i, value := range t.Restriction.Enumeration {
			comma := ","
			if i == len(keys)-1 {
				comma = ""
			}
			g.emit("  " + keys[i] + " = " + strconv.Quote(value) + comma)
		}
		g.emit("}")
	case t.Restriction != nil:
		r := t.Restriction
		if r.Pattern != "" {
			g.emit("// Pattern: " + r.Pattern)
		}
		if r.MinLength != nil {
			g.emit("// Min length: " + strconv.Itoa(*r.MinLength))
		}
		if r.MaxLength != nil {
			g.emit("// Max length: " + strconv.Itoa(*r.MaxLength))
		}
		g.emit("export type " + name + " = " + g.mapRef(r.Base, "simple type "+t.Name) + ";")
	default:
		g.emit("export type " + name + " = " + g.unknown("simple type "+t.Name) + ";")
	}
	return nil
}

// enumKeys returns the member names for the values of an enumeration.
// Values that collide are renamed KEY_2, KEY_3 and so on, unless
// StrictEnumKeys is set.
func (g *generator) enumKeys(enum string, values []string) ([]string, error) {
	keys := make([]string, 0, len(values))
	owner := make(map[string]string, len(values))
	for _, value := range values {
		key := names.EnumKey(value)
		if key == "" {
			key = "_"
		}
		if prev, ok := owner[key]; ok {
			if g.strictEnumKeys {
				return nil, fmt.Errorf("tsgen: enum %s: values %q and %q both map to member %s",
					enum, prev, value, key)
			}
			n := 2
			for {
				if _, taken := owner[key+"_"+strconv.Itoa(n)]; !taken {
					break
				}
				n++
			}
			renamed := key + "_" + strconv.Itoa(n)
			g.logf("enum %s: value %q collides with %q on member %s, using %s",
				enum, value, prev, key, renamed)
			key = renamed
		}
		owner[key] = value
		keys = append(keys, key)
	}
	return keys, nil
}

func (g *generator) complexType(t *xsd.ComplexType) {
	name := g.typeName(t.Name)
	g.doc("", t.Doc)
	if t.SOAPArray {
		g.emit("export type " + name + " = " + array(g.mapRef(t.SOAPArrayType, "array type "+t.Name)) + ";")
		return
	}
	decl := "export interface " + name
	if t.Base.Known() {
		if base := g.def.ComplexType(string(t.Base)); base != nil && !base.SOAPArray {
			decl += " extends " + g.typeName(base.Name)
		} else {
			g.logf("complex type %s: base %s is not a record type, not extending it", t.Name, t.Base)
		}
	}
	g.emit(decl + " {")
	for _, field := range g.fields(t) {
		g.emit("  " + field + ";")
	}
	g.emit("}")
}

// fields returns the property signatures of a record type, elements
// first, then attributes.
func (g *generator) fields(t *xsd.ComplexType) []string {
	var fields []string
	for i := range t.Elements {
		el := &t.Elements[i]
		marker := ""
		if el.Optional() {
			marker = "?"
		}
		fields = append(fields, names.FieldName(el.Name)+marker+": "+g.occurs(el, g.elementType(el)))
	}
	for _, attr := range t.Attributes {
		marker := "?"
		if attr.Use == xsd.Required {
			marker = ""
		}
		fields = append(fields, names.FieldName(attr.Name)+marker+": "+g.mapRef(attr.Type, "attribute "+attr.Name))
	}
	return fields
}

// occurs applies the cardinality and nillability of el to a type.
func (g *generator) occurs(el *xsd.Element, typ string) string {
	if el.Repeated() {
		typ = array(typ)
	}
	if el.Nillable {
		typ += " | null"
	}
	return typ
}

func array(typ string) string {
	if strings.Contains(typ, " | ") {
		return "(" + typ + ")[]"
	}
	return typ + "[]"
}

// elementType returns the type of a value held by an element member of
// a complex type, before cardinality is applied.
func (g *generator) elementType(el *xsd.Element) string {
	switch {
	case el.Inline != nil:
		return g.objectLiteral(el.Inline)
	case el.InlineSimple != nil:
		return g.inlineSimple(el)
	case el.Ref.Known():
		return g.elementRef(el.Ref)
	}
	return g.mapRef(el.Type, "element "+el.Name)
}

func (g *generator) objectLiteral(t *xsd.ComplexType) string {
	fields := g.fields(t)
	if len(fields) == 0 {
		return "{}"
	}
	return "{ " + strings.Join(fields, "; ") + " }"
}

// inlineSimple renders an anonymous simple type. Enumerations become
// a union of string literals.
func (g *generator) inlineSimple(el *xsd.Element) string {
	t := el.InlineSimple
	switch {
	case t.Enumerated():
		values := make([]string, len(t.Restriction.Enumeration))
		for i, v := range t.Restriction.Enumeration {
			values[i] = strconv.Quote(v)
		}
		return strings.Join(values, " | ")
	case t.Restriction != nil:
		return g.mapRef(t.Restriction.Base, "element "+el.Name)
	}
	return g.unknown("element " + el.Name)
}

// elementRef returns the type of the top-level element with the given
// name. If there is no such element, the name itself is taken to be a
// type name.
func (g *generator) elementRef(ref xsd.Ref) string {
	el := g.def.Element(string(ref))
	if el == nil {
		g.verbosef("no element %s declared, assuming it names a type", ref)
		return g.typeName(string(ref))
	}
	if el.Inline != nil || el.InlineSimple != nil {
		return g.typeName(el.Name)
	}
	return g.mapRef(el.Type, "element "+el.Name)
}

func (g *generator) element(el *xsd.Element) {
	name := g.typeName(el.Name)
	g.doc("", el.Doc)
	if el.Inline != nil {
		g.emit("export interface " + name + " {")
		for _, field := range g.fields(el.Inline) {
			g.emit("  " + field + ";")
		}
		g.emit("}")
		return
	}
	g.emit("export type " + name + " = " + g.occurs(el, g.elementType(el)) + ";")
}

func (g *generator) message(msg wsdl.Message) {
	g.emit("export interface " + g.typeName(msg.Name) + " {")
	for _, part := range msg.Parts {
		var typ string
		switch {
		case part.Element.Known():
			typ = g.elementRef(part.Element)
		case part.Type.Known():
			typ = g.mapRef(part.Type, "part "+part.Name)
		default:
			typ = g.unknown("message " + msg.Name + " part " + part.Name)
		}
		g.emit("  " + names.FieldName(part.Name) + ": " + typ + ";")
	}
	g.emit("}")
}

func (g *generator) portType(pt wsdl.PortType) {
	g.doc("", pt.Doc)
	g.emit("export interface I" + g.typeName(pt.Name) + " {")
	for _, op := range pt.Operations {
		in, out := "void", "void"
		if op.Input.Known() {
			in = g.typeName(string(op.Input))
		}
		if op.Output.Known() {
			out = g.typeName(string(op.Output))
		}
		if len(op.Faults) > 0 {
			g.debugf("operation %s: faults are not part of the signature", op.Name)
		}
		g.doc("  ", op.Doc)
		g.emit("  " + names.FieldName(op.Name) + "(request: " + in + "): Promise<" + out + ">;")
	}
	g.emit("}")
}
