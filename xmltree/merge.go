package xmltree

import (
	"bytes"
	"encoding/xml"
)

// TextKey is the key under which Merge stores the text of a leaf
// element that also carries attributes.
const TextKey = "_"

// Merge converts the tree rooted at el to attribute-merged form: a map
// with a single key, the root element's qualified name, whose value is
// the merged root.
//
// In merged form, an element's attributes and child elements share one
// key space, keyed by the qualified name (prefix:local) that the
// document used. A key that occurs once holds its value directly; a key
// that occurs more than once holds a []interface{} of the values in
// document order. An element with neither attributes nor children
// merges to its text as a string. Attribute values are strings, and
// namespace declarations are kept under "xmlns" and "xmlns:prefix".
func (el *Element) Merge() map[string]interface{} {
	return map[string]interface{}{
		el.QName(el.Name): el.merged(),
	}
}

func (el *Element) merged() interface{} {
	if len(el.StartElement.Attr) == 0 && len(el.Children) == 0 {
		return string(el.Text)
	}
	obj := make(map[string]interface{}, len(el.StartElement.Attr)+len(el.Children))
	for _, attr := range el.StartElement.Attr {
		add(obj, el.attrName(attr.Name), attr.Value)
	}
	for i := range el.Children {
		child := &el.Children[i]
		add(obj, child.QName(child.Name), child.merged())
	}
	if len(el.Children) == 0 && len(bytes.TrimSpace(el.Text)) > 0 {
		add(obj, TextKey, string(el.Text))
	}
	return obj
}

func (el *Element) attrName(name xml.Name) string {
	switch {
	case name.Space == "xmlns":
		return "xmlns:" + name.Local
	case name.Space == "" && name.Local == "xmlns":
		return "xmlns"
	}
	return el.QName(name)
}

// Merged values are strings or maps, never slices, so a slice
// value always means the key has been seen before.
func add(obj map[string]interface{}, key string, v interface{}) {
	prev, ok := obj[key]
	if !ok {
		obj[key] = v
		return
	}
	if list, ok := prev.([]interface{}); ok {
		obj[key] = append(list, v)
		return
	}
	obj[key] = []interface{}{prev, v}
}
