package wsdl

import (
	"strings"

	"github.com/CognitoIQ/wsdl2ts/internal/ordered"
	"github.com/CognitoIQ/wsdl2ts/xmltree"
)

// object is one element of a merged tree.
type object = map[string]interface{}

// A Convention lists the namespace prefixes under which a construct
// may appear in a merged tree, in the order they are tried. The
// unprefixed name is always tried first. Whether the upstream parser
// kept prefixes, and which prefix an author chose for a namespace,
// both vary; a Convention lets every lookup tolerate that in one place.
type Convention []string

// Default conventions. Prefixes bound to the schema or WSDL namespace
// by the document itself are tried after these.
var (
	SchemaConvention = Convention{"xs", "xsd", "s"}
	WSDLConvention   = Convention{"wsdl", "wsdl11"}
)

// Keys returns the keys tried when looking up local, in order.
func (c Convention) Keys(local string) []string {
	keys := make([]string, 0, len(c)+1)
	keys = append(keys, local)
	for _, prefix := range c {
		keys = append(keys, prefix+":"+local)
	}
	return keys
}

// Lookup returns the value stored under the first of c.Keys(local)
// present in obj.
func (c Convention) Lookup(obj map[string]interface{}, local string) (interface{}, bool) {
	if obj == nil {
		return nil, false
	}
	if v, ok := obj[local]; ok {
		return v, true
	}
	for _, prefix := range c {
		if v, ok := obj[prefix+":"+local]; ok {
			return v, true
		}
	}
	return nil, false
}

// With returns a Convention that tries the given prefixes after those
// in c. Empty prefixes and prefixes already in c are skipped; c itself
// is not modified.
func (c Convention) With(prefixes ...string) Convention {
	out := append(Convention(nil), c...)
	for _, p := range prefixes {
		if p != "" && !out.has(p) {
			out = append(out, p)
		}
	}
	return out
}

func (c Convention) has(prefix string) bool {
	for _, p := range c {
		if p == prefix {
			return true
		}
	}
	return false
}

// objects looks up local and normalizes the result to a list.
func (c Convention) objects(obj object, local string) []object {
	v, _ := c.Lookup(obj, local)
	return objects(v)
}

// first looks up local and returns its first occurrence, or nil.
func (c Convention) first(obj object, local string) object {
	if list := c.objects(obj, local); len(list) > 0 {
		return list[0]
	}
	return nil
}

// objects normalizes a merged value to an ordered list of objects. A
// construct that occurs once is stored bare, and one that occurs many
// times as a list. An element with no attributes or children is stored
// as its text; it is kept as an empty object so that it still counts.
func objects(v interface{}) []object {
	switch v := v.(type) {
	case object:
		return []object{v}
	case string:
		return []object{{}}
	case []interface{}:
		list := make([]object, 0, len(v))
		for _, item := range v {
			list = append(list, objects(item)...)
		}
		return list
	}
	return nil
}

// attr returns the string value of an attribute, or the empty string.
func attr(obj object, name string) string {
	return text(obj[name])
}

// text returns the character data of a merged value. For repeated
// values, the first is used.
func text(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case object:
		return text(v[xmltree.TextKey])
	case []interface{}:
		if len(v) > 0 {
			return text(v[0])
		}
	}
	return ""
}

// declarations returns the namespace declarations in obj, keyed by
// prefix. The default namespace has the empty prefix.
func declarations(obj object) map[string]string {
	ns := make(map[string]string)
	for key, val := range obj {
		switch {
		case key == "xmlns":
			ns[""] = text(val)
		case strings.HasPrefix(key, "xmlns:"):
			ns[strings.TrimPrefix(key, "xmlns:")] = text(val)
		}
	}
	return ns
}

// prefixesFor returns the prefixes that ns binds to any of the
// namespaces in spaces, in sorted order.
func prefixesFor(ns map[string]string, spaces ...string) []string {
	var prefixes []string
	ordered.Range(ns, func(prefix, uri string) {
		for _, space := range spaces {
			if uri == space && prefix != "" {
				prefixes = append(prefixes, prefix)
				break
			}
		}
	})
	return prefixes
}
