package gogen

import (
	"go/ast"

	"github.com/CognitoIQ/wsdl2ts/xsd"
)

func builtinExpr(b xsd.Builtin) ast.Expr {
	if int(b) >= len(builtinTbl) || b < 0 {
		return nil
	}
	return builtinTbl[b]
}

// Go types for the recognized XSD built-ins.
var builtinTbl = []ast.Expr{
	xsd.String:        &ast.Ident{Name: "string"},
	xsd.Int:           &ast.Ident{Name: "int"},
	xsd.Integer:       &ast.Ident{Name: "int"},
	xsd.Long:          &ast.Ident{Name: "int64"},
	xsd.Short:         &ast.Ident{Name: "int16"},
	xsd.Byte:          &ast.Ident{Name: "int8"},
	xsd.UnsignedLong:  &ast.Ident{Name: "uint64"},
	xsd.UnsignedInt:   &ast.Ident{Name: "uint32"},
	xsd.UnsignedShort: &ast.Ident{Name: "uint16"},
	xsd.UnsignedByte:  &ast.Ident{Name: "uint8"},
	xsd.Float:         &ast.Ident{Name: "float32"},
	xsd.Double:        &ast.Ident{Name: "float64"},
	xsd.Decimal:       &ast.Ident{Name: "float64"},
	xsd.Boolean:       &ast.Ident{Name: "bool"},
	xsd.Date:          &ast.Ident{Name: "time.Time"},
	xsd.DateTime:      &ast.Ident{Name: "time.Time"},
	xsd.Time:          &ast.Ident{Name: "time.Time"},
	xsd.Base64Binary:  &ast.ArrayType{Elt: &ast.Ident{Name: "byte"}},
	xsd.HexBinary:     &ast.ArrayType{Elt: &ast.Ident{Name: "byte"}},
	xsd.AnyURI:        &ast.Ident{Name: "string"},
	xsd.QName:         &ast.Ident{Name: "xml.Name"},
	xsd.AnyType:       &ast.Ident{Name: "any"},
}
