// Package xsd describes the data shapes declared in XML Schema documents.
//
// The xsd package holds the canonical, language-neutral form of the
// complex types, simple types and elements found in the <types> section
// of a WSDL document. Values are produced by the wsdl package's extractor
// and consumed by the code generators; they are never modified once
// extracted.
//
// The model is deliberately shallow. References between declarations
// are kept as namespace-stripped names (see Ref) rather than resolved
// pointers, and nested content models (sequence, all, choice) are
// flattened into a single ordered list of elements.
package xsd

import (
	"strconv"

	"github.com/CognitoIQ/wsdl2ts/names"
)

// A Ref is a reference to a named type, element or message, with its
// namespace prefix removed. The zero value, Unknown, is used wherever
// the source document did not say what a value may contain.
type Ref string

// Unknown is the Ref of a value whose type was not declared. Generators
// render it as an unconstrained type, and may report it for review.
const Unknown Ref = ""

// RefOf strips the namespace prefix from a qualified name taken from an
// attribute value such as type="tns:Item".
func RefOf(qname string) Ref {
	return Ref(names.StripPrefix(qname))
}

// Known returns true if r names something.
func (r Ref) Known() bool { return r != Unknown }

// An Element describes an XML element, either declared at the top level
// of a schema or as a member of a complex type.
//
// http://www.w3.org/TR/2004/REC-xmlschema-1-20041028/structures.html#element-element
type Element struct {
	// Annotations for this element
	Doc  string
	Name string
	// Type of this element. Unknown if the element declares neither a
	// type nor an inline type.
	Type Ref
	// Set when the element was declared with ref="..." instead of a
	// name; the element's type is that of the referenced element.
	Ref Ref
	// The occurrence attributes, verbatim. Empty if absent.
	MinOccurs, MaxOccurs string
	Nillable             bool
	// Anonymous types declared inside the element, if any.
	Inline       *ComplexType
	InlineSimple *SimpleType
}

// Optional returns true if the element may be omitted: minOccurs is "0"
// or the element is nillable.
func (el *Element) Optional() bool {
	return el.MinOccurs == "0" || el.Nillable
}

// Repeated returns true if the element may appear more than once:
// maxOccurs is "unbounded" or an integer greater than one.
func (el *Element) Repeated() bool {
	if el.MaxOccurs == "unbounded" {
		return true
	}
	n, err := strconv.Atoi(el.MaxOccurs)
	return err == nil && n > 1
}

// Use describes whether an attribute must be present.
type Use string

const (
	Optional Use = "optional"
	Required Use = "required"
)

// An Attribute describes the key=value pairs that may appear within the
// opening tag of an element. Attributes are optional unless declared with
// use="required".
//
// http://www.w3.org/TR/2004/REC-xmlschema-1-20041028/structures.html#element-attribute
type Attribute struct {
	Name string
	Type Ref
	Use  Use
}

// A ComplexType describes a record with named, typed fields. If
// SOAPArray is set, the type is a SOAP-encoded array of SOAPArrayType
// and its elements and attributes are not meaningful. SOAPArrayType is
// Unknown when the array type attribute was present but empty.
type ComplexType struct {
	Doc string
	// Empty for anonymous types declared inline in an element.
	Name string
	// Flattened from sequence, all and choice content models, including
	// those inside a complexContent extension, in extraction order.
	Elements   []Element
	Attributes []Attribute
	// The base type of a complexContent extension, if any.
	Base          Ref
	SOAPArray     bool
	SOAPArrayType Ref
}

// Anonymous returns true if the type was declared inline.
func (t *ComplexType) Anonymous() bool { return t.Name == "" }

// A Restriction constrains the values of a simple type. MinLength and
// MaxLength are nil when the corresponding facet is absent.
type Restriction struct {
	Base        Ref
	Enumeration []string
	Pattern     string
	MinLength   *int
	MaxLength   *int
}

// A SimpleType describes a constrained scalar. A SimpleType with no
// Restriction is opaque.
type SimpleType struct {
	Doc         string
	Name        string
	Restriction *Restriction
}

// Enumerated returns true if the simple type restricts its values to a
// list of literals.
func (t *SimpleType) Enumerated() bool {
	return t.Restriction != nil && len(t.Restriction.Enumeration) > 0
}
