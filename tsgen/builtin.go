package tsgen

import "github.com/CognitoIQ/wsdl2ts/xsd"

// MapPrimitive returns the TypeScript type for an XML Schema
// built-in type. The name may carry a namespace prefix, and is
// matched without regard to case. If name is not one of the
// supported built-ins, MapPrimitive returns false.
func MapPrimitive(name string) (string, bool) {
	b, ok := xsd.ParseBuiltin(name)
	if !ok {
		return "", false
	}
	switch {
	case b.Numeric():
		return "number", true
	case b.Temporal():
		return "Date", true
	case b == xsd.Boolean:
		return "boolean", true
	case b == xsd.AnyType:
		return "any", true
	}
	return "string", true
}
