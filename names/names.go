// Package names converts schema identifiers into the identifier
// conventions used by generated declarations.
//
// Schema authors are free to use hyphens, underscores and white space in
// type and element names. The functions in this package collapse those
// separators into title-case, camel-case or constant-case identifiers.
// All functions are pure and safe for concurrent use.
package names

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

func isSeparator(r rune) bool {
	return r == '-' || r == '_' || unicode.IsSpace(r)
}

// TypeName converts name to a title-case identifier suitable for a type or
// interface. Every run of hyphens, underscores or white space is removed,
// and the character following the run is upper-cased, as is the first
// character of the result.
//
// 	TypeName("get-user_info") == "GetUserInfo"
func TypeName(name string) string {
	var buf strings.Builder
	buf.Grow(len(name))
	upper := true
	for _, r := range name {
		if isSeparator(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		buf.WriteRune(r)
	}
	return buf.String()
}

// FieldName converts name to a lower camel-case identifier suitable for a
// record field or method. It is TypeName with the first character
// lower-cased.
func FieldName(name string) string {
	s := TypeName(name)
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return ""
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// EnumKey converts an enumeration literal to a constant-case key. Every
// character outside [A-Za-z0-9] becomes an underscore, a leading digit
// is prefixed with an underscore, and the result is upper-cased.
//
// Distinct literals may produce the same key ("a-b" and "a_b" both become
// "A_B"); callers that emit keys are responsible for detecting that.
func EnumKey(value string) string {
	var buf strings.Builder
	buf.Grow(len(value) + 1)
	for _, r := range value {
		if r < utf8.RuneSelf && (isDigit(byte(r)) || isLetter(byte(r))) {
			buf.WriteRune(r)
		} else {
			buf.WriteByte('_')
		}
	}
	s := buf.String()
	if len(s) > 0 && isDigit(s[0]) {
		s = "_" + s
	}
	return strings.ToUpper(s)
}

// StripPrefix removes a namespace prefix, everything up to and including
// the last colon, from a qualified name.
func StripPrefix(qname string) string {
	if i := strings.LastIndexByte(qname, ':'); i >= 0 {
		return qname[i+1:]
	}
	return qname
}

func isDigit(c byte) bool  { return '0' <= c && c <= '9' }
func isLetter(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }
