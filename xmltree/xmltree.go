// Package xmltree converts XML documents as a tree of Go structs.
//
// The xmltree package provides routines for accessing an XML document
// as a tree, along with functionality to recover the namespace prefixes
// used by the document's author at any point in the tree. The Merge
// method converts a tree to the generic, attribute-merged object form
// consumed by the wsdl package.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"

	"golang.org/x/net/html/charset"
)

const recursionLimit = 3000

// namespace bound to the reserved "xml" prefix
const xmlNS = "http://www.w3.org/XML/1998/namespace"

var errDeepXML = errors.New("xmltree: xml document too deeply nested")

// An Element represents a single element in an XML document. Elements
// may have zero or more children. An Element also captures xml namespace
// prefixes, so that resolved names can be written back in the form the
// document used.
type Element struct {
	xml.StartElement
	// Character data appearing directly inside the element, with
	// entities decoded. Text inside child elements is not included.
	Text     []byte
	Children []Element
	// A list of defined XML namespace prefixes, from least specific to
	// most specific. The Space field is the canonical xml namespace,
	// and the Local field is the prefix.
	Scope []xml.Name
}

// QName translates a resolved xml.Name back to the prefix:local form
// used in the document, using the closest prefix defined for its
// namespace. Names in the default namespace, and names without a
// namespace, are returned without a prefix. If the namespace has no
// prefix in scope, its value is used as the prefix; the encoding/xml
// package leaves undeclared prefixes unresolved.
func (el *Element) QName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	for i := len(el.Scope) - 1; i >= 0; i-- {
		if el.Scope[i].Space != name.Space {
			continue
		}
		if el.Scope[i].Local == "" {
			return name.Local
		}
		return el.Scope[i].Local + ":" + name.Local
	}
	if name.Space == xmlNS {
		return "xml:" + name.Local
	}
	return name.Space + ":" + name.Local
}

func (el *Element) pushNS(tag xml.StartElement) {
	var scope []xml.Name
	for _, attr := range tag.Attr {
		if attr.Name.Space == "xmlns" {
			scope = append(scope, xml.Name{Space: attr.Value, Local: attr.Name.Local})
		} else if attr.Name.Space == "" && attr.Name.Local == "xmlns" {
			scope = append(scope, xml.Name{Space: attr.Value})
		}
	}
	if len(scope) > 0 {
		el.Scope = append(el.Scope, scope...)
		// Ensure that future additions to the scope create
		// a new backing array. This prevents the scope from
		// being clobbered during parsing.
		el.Scope = el.Scope[:len(el.Scope):len(el.Scope)]
	}
}

// Save some typing when scanning xml
type scanner struct {
	*xml.Decoder
	tok xml.Token
	err error
}

func (s *scanner) scan() bool {
	if s.err != nil {
		return false
	}
	s.tok, s.err = s.Token()
	return s.err == nil
}

// Parse builds a tree of Elements by reading an XML document. The byte
// slice passed to Parse is expected to be a valid XML document with a
// single root element. Documents declaring a non-UTF-8 encoding in
// their XML declaration are converted to UTF-8.
func Parse(doc []byte) (*Element, error) {
	d := xml.NewDecoder(bytes.NewReader(doc))
	d.CharsetReader = charset.NewReaderLabel
	scanner := scanner{Decoder: d}
	root := new(Element)

	for scanner.scan() {
		if start, ok := scanner.tok.(xml.StartElement); ok {
			root.StartElement = start.Copy()
			break
		}
	}
	if scanner.err != nil {
		return nil, scanner.err
	}
	if err := root.parse(&scanner, 0); err != nil {
		return nil, err
	}
	return root, nil
}

func (el *Element) parse(scanner *scanner, depth int) error {
	if depth > recursionLimit {
		return errDeepXML
	}
	el.pushNS(el.StartElement)

walk:
	for scanner.scan() {
		switch tok := scanner.tok.(type) {
		case xml.StartElement:
			child := Element{StartElement: tok.Copy(), Scope: el.Scope}
			if err := child.parse(scanner, depth+1); err != nil {
				return err
			}
			el.Children = append(el.Children, child)
		case xml.CharData:
			el.Text = append(el.Text, tok...)
		case xml.EndElement:
			if tok.Name != el.Name {
				return fmt.Errorf("Expecting </%s>, got </%s>", el.QName(el.Name), el.QName(tok.Name))
			}
			break walk
		}
	}
	return scanner.err
}
