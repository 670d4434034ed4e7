package wsdl

import (
	"strconv"
	"strings"

	"github.com/CognitoIQ/wsdl2ts/internal/ordered"
	"github.com/CognitoIQ/wsdl2ts/names"
	"github.com/CognitoIQ/wsdl2ts/xsd"
)

// Types conforming to the Logger interface can receive information
// about the extraction process. The Logger interface is implemented by
// *log.Logger.
type Logger interface {
	Printf(format string, v ...interface{})
}

// An Extractor builds Definitions from merged trees. The zero value is
// not usable; create Extractors with NewExtractor. An Extractor is not
// modified by Extract and may be reused.
type Extractor struct {
	schema   Convention
	wsdl     Convention
	logger   Logger
	loglevel int
}

// An Option modifies an Extractor. The return value of an Option can be
// used to undo its effect.
type Option func(*Extractor) Option

// NewExtractor returns an Extractor using the default conventions,
// modified by opts.
func NewExtractor(opts ...Option) *Extractor {
	x := &Extractor{
		schema: SchemaConvention,
		wsdl:   WSDLConvention,
	}
	x.Option(opts...)
	return x
}

// Option applies the provided Options to an Extractor. The return value
// of Option can be used to revert the effects of the final parameter.
func (x *Extractor) Option(opts ...Option) (previous Option) {
	for _, opt := range opts {
		previous = opt(x)
	}
	return previous
}

// LogOutput sets the destination for messages about skipped or
// degraded declarations.
func LogOutput(l Logger) Option {
	return func(x *Extractor) Option {
		prev := x.logger
		x.logger = l
		return LogOutput(prev)
	}
}

// LogLevel sets the verbosity of log messages. Level 0 reports only
// skipped declarations; 1 and above also reports each declaration
// extracted.
func LogLevel(level int) Option {
	return func(x *Extractor) Option {
		prev := x.loglevel
		x.loglevel = level
		return LogLevel(prev)
	}
}

// SchemaPrefixes adds prefixes to try, after the defaults, when looking
// up XML Schema constructs.
func SchemaPrefixes(prefixes ...string) Option {
	return func(x *Extractor) Option {
		prev := x.schema
		x.schema = x.schema.With(prefixes...)
		return setSchema(prev)
	}
}

// WSDLPrefixes adds prefixes to try, after the defaults, when looking
// up WSDL constructs.
func WSDLPrefixes(prefixes ...string) Option {
	return func(x *Extractor) Option {
		prev := x.wsdl
		x.wsdl = x.wsdl.With(prefixes...)
		return setWSDL(prev)
	}
}

func setSchema(c Convention) Option {
	return func(x *Extractor) Option {
		prev := x.schema
		x.schema = c
		return setSchema(prev)
	}
}

func setWSDL(c Convention) Option {
	return func(x *Extractor) Option {
		prev := x.wsdl
		x.wsdl = c
		return setWSDL(prev)
	}
}

func (x *Extractor) logf(format string, v ...interface{}) {
	if x.logger != nil {
		x.logger.Printf(format, v...)
	}
}

func (x *Extractor) verbosef(format string, v ...interface{}) {
	if x.loglevel > 0 {
		x.logf(format, v...)
	}
}

// Extract builds a Definition from a merged tree using the default
// conventions. See (*Extractor).Extract.
func Extract(tree map[string]interface{}) (*Definition, error) {
	return NewExtractor().Extract(tree)
}

// Extract builds a Definition from tree, a document in the
// attribute-merged form returned by xmltree's Merge method. If tree
// has no definitions root, Extract returns a *SchemaError. Any other
// missing or malformed structure is skipped or replaced with a
// fallback value.
func (x *Extractor) Extract(tree map[string]interface{}) (*Definition, error) {
	root, ok := x.definitions(tree)
	if !ok {
		return nil, &SchemaError{Msg: "Invalid WSDL: No definitions found"}
	}
	ns := declarations(root)
	e := extraction{
		Extractor: x,
		wsdl:      x.wsdl.With(prefixesFor(ns, wsdlNS)...),
		schema:    x.schema.With(prefixesFor(ns, schemaNS...)...),
		seen:      make(map[string]bool),
		def: &Definition{
			TargetNS:   attr(root, "targetNamespace"),
			Namespaces: ns,
		},
	}
	e.types(root)
	e.messages(root)
	e.portTypes(root)
	return e.def, nil
}

// definitions finds the root object. The root key is tried with the
// WSDL convention first; failing that, any root whose local name is
// "definitions" is accepted.
func (x *Extractor) definitions(tree map[string]interface{}) (object, bool) {
	if v, ok := x.wsdl.Lookup(tree, "definitions"); ok {
		return firstObject(v), true
	}
	for _, key := range ordered.Keys(tree) {
		if names.StripPrefix(key) == "definitions" {
			return firstObject(tree[key]), true
		}
	}
	return nil, false
}

func firstObject(v interface{}) object {
	if list := objects(v); len(list) > 0 {
		return list[0]
	}
	return object{}
}

// extraction holds the state of a single call to Extract.
type extraction struct {
	*Extractor
	wsdl, schema Convention
	def          *Definition
	// keyed by category and name
	seen map[string]bool
}

// declare reports whether a named top-level declaration should be
// kept. Unnamed declarations and repeated names are dropped.
func (e *extraction) declare(category, name string) bool {
	if name == "" {
		e.logf("skipping %s with no name", category)
		return false
	}
	key := category + " " + name
	if e.seen[key] {
		e.logf("skipping duplicate %s %q", category, name)
		return false
	}
	e.seen[key] = true
	e.verbosef("found %s %s", category, name)
	return true
}

func (e *extraction) types(root object) {
	types := e.wsdl.first(root, "types")
	for _, schema := range e.schema.objects(types, "schema") {
		s := e.schema.With(prefixesFor(declarations(schema), schemaNS...)...)
		for _, obj := range s.objects(schema, "complexType") {
			t := e.complexType(s, obj)
			if e.declare("complexType", t.Name) {
				e.def.ComplexTypes = append(e.def.ComplexTypes, t)
			}
		}
		for _, obj := range s.objects(schema, "simpleType") {
			t := e.simpleType(s, obj)
			if e.declare("simpleType", t.Name) {
				e.def.SimpleTypes = append(e.def.SimpleTypes, t)
			}
		}
		for _, obj := range s.objects(schema, "element") {
			el := e.element(s, obj)
			if e.declare("element", el.Name) {
				e.def.Elements = append(e.def.Elements, el)
			}
		}
	}
}

// SOAP-encoded array bases, matched exactly.
func isSOAPArray(base string) bool {
	return base == "soapenc:Array" || base == "SOAP-ENC:Array"
}

func (e *extraction) complexType(s Convention, obj object) xsd.ComplexType {
	t := xsd.ComplexType{
		Name:     attr(obj, "name"),
		Doc:      e.doc(s, obj),
		Elements: e.content(s, obj),
	}
	for _, a := range s.objects(obj, "attribute") {
		if at, ok := e.attribute(a); ok {
			t.Attributes = append(t.Attributes, at)
		}
	}
	cc := s.first(obj, "complexContent")
	if cc == nil {
		return t
	}
	if ext := s.first(cc, "extension"); ext != nil {
		t.Base = xsd.RefOf(attr(ext, "base"))
		t.Elements = append(t.Elements, e.content(s, ext)...)
		for _, a := range s.objects(ext, "attribute") {
			if at, ok := e.attribute(a); ok {
				t.Attributes = append(t.Attributes, at)
			}
		}
	}
	if res := s.first(cc, "restriction"); res != nil && isSOAPArray(attr(res, "base")) {
		for _, a := range s.objects(res, "attribute") {
			if arrayType, ok := e.arrayType(a); ok {
				t.SOAPArray = true
				t.SOAPArrayType = xsd.RefOf(strings.TrimSuffix(arrayType, "[]"))
				break
			}
		}
	}
	return t
}

// arrayType returns the value of the arrayType attribute of a SOAP
// array restriction. The attribute belongs to the WSDL namespace, but
// some toolkits bind it to other prefixes, so any prefix is accepted
// when the conventional ones are absent.
func (e *extraction) arrayType(obj object) (string, bool) {
	if v, ok := e.wsdl.Lookup(obj, "arrayType"); ok {
		return text(v), true
	}
	for _, key := range ordered.Keys(obj) {
		if names.StripPrefix(key) == "arrayType" {
			return text(obj[key]), true
		}
	}
	return "", false
}

// content flattens the sequence, all and choice content models of obj,
// including compositors nested within them, into one element list.
func (e *extraction) content(s Convention, obj object) []xsd.Element {
	var elements []xsd.Element
	for _, model := range [...]string{"sequence", "all", "choice"} {
		for _, group := range s.objects(obj, model) {
			for _, el := range s.objects(group, "element") {
				if el := e.element(s, el); el.Name != "" {
					elements = append(elements, el)
				} else {
					e.logf("skipping unnamed element in %s", model)
				}
			}
			elements = append(elements, e.content(s, group)...)
		}
	}
	return elements
}

func (e *extraction) element(s Convention, obj object) xsd.Element {
	el := xsd.Element{
		Name:      attr(obj, "name"),
		Doc:       e.doc(s, obj),
		Type:      xsd.RefOf(attr(obj, "type")),
		MinOccurs: attr(obj, "minOccurs"),
		MaxOccurs: attr(obj, "maxOccurs"),
	}
	switch attr(obj, "nillable") {
	case "true", "1":
		el.Nillable = true
	}
	if ref := attr(obj, "ref"); ref != "" && el.Name == "" {
		el.Ref = xsd.RefOf(ref)
		el.Name = string(el.Ref)
	}
	if ct := s.first(obj, "complexType"); ct != nil {
		t := e.complexType(s, ct)
		t.Name = ""
		el.Inline = &t
	} else if st := s.first(obj, "simpleType"); st != nil {
		t := e.simpleType(s, st)
		t.Name = ""
		el.InlineSimple = &t
	}
	return el
}

func (e *extraction) attribute(obj object) (xsd.Attribute, bool) {
	a := xsd.Attribute{
		Name: attr(obj, "name"),
		Type: xsd.RefOf(attr(obj, "type")),
		Use:  xsd.Optional,
	}
	if a.Name == "" {
		a.Name = names.StripPrefix(attr(obj, "ref"))
	}
	if attr(obj, "use") == string(xsd.Required) {
		a.Use = xsd.Required
	}
	if a.Name == "" {
		e.logf("skipping unnamed attribute")
		return a, false
	}
	return a, true
}

func (e *extraction) simpleType(s Convention, obj object) xsd.SimpleType {
	t := xsd.SimpleType{
		Name: attr(obj, "name"),
		Doc:  e.doc(s, obj),
	}
	res := s.first(obj, "restriction")
	if res == nil {
		return t
	}
	r := &xsd.Restriction{Base: xsd.RefOf(attr(res, "base"))}
	for _, v := range s.objects(res, "enumeration") {
		r.Enumeration = append(r.Enumeration, attr(v, "value"))
	}
	if p := s.first(res, "pattern"); p != nil {
		r.Pattern = attr(p, "value")
	}
	r.MinLength = facetInt(s.first(res, "minLength"))
	r.MaxLength = facetInt(s.first(res, "maxLength"))
	t.Restriction = r
	return t
}

// facetInt parses the integer value of a facet; nil if the facet is
// absent or its value is not an integer.
func facetInt(facet object) *int {
	if facet == nil {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(attr(facet, "value")))
	if err != nil {
		return nil
	}
	return &n
}

// doc returns the text of an annotation/documentation child.
func (e *extraction) doc(s Convention, obj object) string {
	ann := s.first(obj, "annotation")
	if ann == nil {
		return ""
	}
	v, _ := s.Lookup(ann, "documentation")
	return strings.TrimSpace(text(v))
}

func (e *extraction) messages(root object) {
	for _, obj := range e.wsdl.objects(root, "message") {
		msg := Message{Name: attr(obj, "name")}
		for _, p := range e.wsdl.objects(obj, "part") {
			msg.Parts = append(msg.Parts, Part{
				Name:    attr(p, "name"),
				Element: xsd.RefOf(attr(p, "element")),
				Type:    xsd.RefOf(attr(p, "type")),
			})
		}
		if e.declare("message", msg.Name) {
			e.def.Messages = append(e.def.Messages, msg)
		}
	}
}

func (e *extraction) portTypes(root object) {
	for _, obj := range e.wsdl.objects(root, "portType") {
		pt := PortType{
			Name: attr(obj, "name"),
			Doc:  e.wsdlDoc(obj),
		}
		for _, o := range e.wsdl.objects(obj, "operation") {
			op := Operation{
				Name: attr(o, "name"),
				Doc:  e.wsdlDoc(o),
			}
			if in := e.wsdl.first(o, "input"); in != nil {
				op.Input = xsd.RefOf(attr(in, "message"))
			}
			if out := e.wsdl.first(o, "output"); out != nil {
				op.Output = xsd.RefOf(attr(out, "message"))
			}
			for _, f := range e.wsdl.objects(o, "fault") {
				op.Faults = append(op.Faults, Fault{
					Name:    attr(f, "name"),
					Message: xsd.RefOf(attr(f, "message")),
				})
			}
			if op.Name == "" {
				e.logf("skipping unnamed operation in portType %q", pt.Name)
				continue
			}
			pt.Operations = append(pt.Operations, op)
		}
		if e.declare("portType", pt.Name) {
			e.def.PortTypes = append(e.def.PortTypes, pt)
		}
	}
}

func (e *extraction) wsdlDoc(obj object) string {
	v, _ := e.wsdl.Lookup(obj, "documentation")
	return strings.TrimSpace(text(v))
}
