package xsd

import "strings"

// A Builtin is one of the primitive XML schema types that generators map
// directly to a target-language primitive. Only the primitives that
// commonly appear in WSDL documents are recognized; any other name is
// treated as a reference to a user-defined type.
//
// http://www.w3.org/TR/xmlschema-2/#built-in-datatypes
type Builtin int

const (
	String Builtin = iota
	Int
	Integer
	Long
	Short
	Byte
	UnsignedLong
	UnsignedInt
	UnsignedShort
	UnsignedByte
	Float
	Double
	Decimal
	Boolean
	Date
	DateTime
	Time
	Base64Binary
	HexBinary
	AnyURI
	QName
	AnyType
)

var builtinNames = [...]string{
	String:        "string",
	Int:           "int",
	Integer:       "integer",
	Long:          "long",
	Short:         "short",
	Byte:          "byte",
	UnsignedLong:  "unsignedLong",
	UnsignedInt:   "unsignedInt",
	UnsignedShort: "unsignedShort",
	UnsignedByte:  "unsignedByte",
	Float:         "float",
	Double:        "double",
	Decimal:       "decimal",
	Boolean:       "boolean",
	Date:          "date",
	DateTime:      "dateTime",
	Time:          "time",
	Base64Binary:  "base64Binary",
	HexBinary:     "hexBinary",
	AnyURI:        "anyURI",
	QName:         "QName",
	AnyType:       "anyType",
}

// keyed by lower-case name
var builtinIndex = func() map[string]Builtin {
	m := make(map[string]Builtin, len(builtinNames))
	for i, name := range builtinNames {
		m[strings.ToLower(name)] = Builtin(i)
	}
	return m
}()

// String returns the local name of the built-in type as it is spelled in
// the XML Schema specification.
func (b Builtin) String() string {
	if b < 0 || int(b) >= len(builtinNames) {
		return "Builtin(?)"
	}
	return builtinNames[b]
}

// Numeric returns true for the integer, floating point and decimal types.
func (b Builtin) Numeric() bool {
	return b >= Int && b <= Decimal
}

// Temporal returns true for date, dateTime and time.
func (b Builtin) Temporal() bool {
	return b == Date || b == DateTime || b == Time
}

// ParseBuiltin looks up a Builtin by name. Any namespace prefix is
// ignored, and the comparison is case-insensitive, since schema authors
// vary in their capitalization. The second return value is false if name
// does not name a recognized built-in type.
func ParseBuiltin(name string) (Builtin, bool) {
	b, ok := builtinIndex[strings.ToLower(string(RefOf(name)))]
	return b, ok
}
