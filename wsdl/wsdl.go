// Package wsdl extracts a canonical type model from Web Service
// Definition Language documents.
//
// The wsdl package reads a WSDL 1.1 document in the attribute-merged
// tree form produced by xmltree's Merge method and extracts the
// complex types, simple types and elements of its embedded schema,
// along with its messages and port types. The extractor is tolerant:
// schema constructs are found under any of several conventional
// namespace prefixes, constructs that may repeat are accepted as a
// single object or as a list, and malformed declarations degrade to
// empty or Unknown values instead of failing. The only fatal condition
// is a document with no definitions root.
package wsdl

import (
	"github.com/CognitoIQ/wsdl2ts/xmltree"
	"github.com/CognitoIQ/wsdl2ts/xsd"
)

const (
	wsdlNS = "http://schemas.xmlsoap.org/wsdl/"
)

// Namespaces under which XML Schema constructs are declared. Old
// drafts still appear in generated WSDL.
var schemaNS = []string{
	"http://www.w3.org/2001/XMLSchema",
	"http://www.w3.org/2000/10/XMLSchema",
	"http://www.w3.org/1999/XMLSchema",
}

// A Definition is the canonical model of one WSDL document. It is
// built in a single pass by Extract and is read-only afterwards. All
// slices are in document order.
type Definition struct {
	TargetNS string
	// Namespace declarations on the definitions element, keyed by
	// prefix. The default namespace has the empty prefix.
	Namespaces   map[string]string
	ComplexTypes []xsd.ComplexType
	SimpleTypes  []xsd.SimpleType
	Elements     []xsd.Element
	Messages     []Message
	PortTypes    []PortType
}

// Element returns the first top-level element with the given name,
// or nil.
func (def *Definition) Element(name string) *xsd.Element {
	for i := range def.Elements {
		if def.Elements[i].Name == name {
			return &def.Elements[i]
		}
	}
	return nil
}

// ComplexType returns the complex type with the given name, or nil.
func (def *Definition) ComplexType(name string) *xsd.ComplexType {
	for i := range def.ComplexTypes {
		if def.ComplexTypes[i].Name == name {
			return &def.ComplexTypes[i]
		}
	}
	return nil
}

// A Part is one argument of a Message. A part refers either to a
// top-level element (document style) or directly to a type (RPC
// style); if it does neither, both are Unknown.
type Part struct {
	Name    string
	Element xsd.Ref
	Type    xsd.Ref
}

// A Message is a named list of parts, exchanged as the input, output
// or fault of an operation.
type Message struct {
	Name  string
	Parts []Part
}

// A Fault names an error message an operation may return.
type Fault struct {
	Name    string
	Message xsd.Ref
}

// An Operation describes an RPC call that can be made against the
// remote server. Input and Output are Unknown if the operation does not
// declare them.
type Operation struct {
	Name          string
	Doc           string
	Input, Output xsd.Ref
	Faults        []Fault
}

// A PortType is a named group of operations; a service contract.
type PortType struct {
	Name       string
	Doc        string
	Operations []Operation
}

// Parse reads a WSDL document and extracts its Definition. Options
// configure the extractor as in NewExtractor.
func Parse(data []byte, opts ...Option) (*Definition, error) {
	root, err := xmltree.Parse(data)
	if err != nil {
		return nil, err
	}
	return NewExtractor(opts...).Extract(root.Merge())
}
