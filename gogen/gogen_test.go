package gogen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CognitoIQ/wsdl2ts/internal/gen"
	"github.com/CognitoIQ/wsdl2ts/internal/testutil"
	"github.com/CognitoIQ/wsdl2ts/wsdl"
	"github.com/CognitoIQ/wsdl2ts/xsd"
)

func fixedClock() time.Time {
	return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
}

func generate(t *testing.T, def *wsdl.Definition, opts ...Option) (*ast.File, []byte) {
	t.Helper()
	opts = append([]Option{
		Clock(fixedClock),
		LogOutput(testutil.Logger{TB: t}),
		LogLevel(5),
	}, opts...)
	src, err := Generate(def, opts...)
	require.NoError(t, err)
	file, err := parser.ParseFile(token.NewFileSet(), "generated.go", src, parser.ParseComments)
	require.NoError(t, err, "%s", src)
	return file, src
}

func parseWSDL(t *testing.T, filename string) *wsdl.Definition {
	t.Helper()
	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	def, err := wsdl.Parse(data)
	require.NoError(t, err)
	return def
}

// types returns the type expression of every type declared in file.
func types(file *ast.File) map[string]ast.Expr {
	result := make(map[string]ast.Expr)
	for _, decl := range file.Decls {
		decl, ok := decl.(*ast.GenDecl)
		if !ok || decl.Tok != token.TYPE {
			continue
		}
		for _, spec := range decl.Specs {
			spec := spec.(*ast.TypeSpec)
			result[spec.Name.Name] = spec.Type
		}
	}
	return result
}

// fields returns "Name Type Tag" for each field of a struct type.
func fields(t *testing.T, expr ast.Expr) []string {
	t.Helper()
	st, ok := expr.(*ast.StructType)
	require.True(t, ok, "%T is not a struct", expr)
	var result []string
	for _, f := range st.Fields.List {
		var parts []string
		for _, name := range f.Names {
			parts = append(parts, name.Name)
		}
		parts = append(parts, gen.ExprString(f.Type))
		if f.Tag != nil {
			parts = append(parts, f.Tag.Value)
		}
		result = append(result, strings.Join(parts, " "))
	}
	return result
}

func TestGenerateUsers(t *testing.T) {
	file, src := generate(t, parseWSDL(t, "../wsdl/testdata/users.wsdl"), IncludeOperations(true))
	assert.Equal(t, "ws", file.Name.Name)
	assert.True(t, strings.HasPrefix(string(src), "// Code generated by wsdl2ts. DO NOT EDIT.\n"))

	var imports []string
	for _, imp := range file.Imports {
		imports = append(imports, imp.Path.Value)
	}
	assert.ElementsMatch(t, []string{`"context"`, `"time"`}, imports)

	decls := types(file)
	assert.Equal(t, "string", gen.ExprString(decls["UserStatus"]))
	assert.Equal(t, "string", gen.ExprString(decls["EmailAddress"]))
	assert.Equal(t, "any", gen.ExprString(decls["Opaque"]))
	assert.Equal(t, "[]string", gen.ExprString(decls["Token"]))
	assert.Equal(t, "UserInfo", gen.ExprString(decls["GetUserResponse"]))

	assert.Equal(t, []string{
		"Id int64 `xml:\"id\"`",
		"Email EmailAddress `xml:\"email\"`",
		"NickName *string `xml:\"nick-name,omitempty\"`",
		"Tags []string `xml:\"tags\"`",
		"Aliases []string `xml:\"aliases,omitempty\"`",
		"Manager *UserInfo `xml:\"manager,omitempty\"`",
		"Home Address `xml:\"home\"`",
		"Office Address `xml:\"office\"`",
		"Status UserStatus `xml:\"status,attr\"`",
		"Created time.Time `xml:\"created,attr,omitempty\"`",
	}, fields(t, decls["UserInfo"]))

	assert.Equal(t, []string{
		"UserInfo",
		"Level int `xml:\"level\"`",
		"Scope string `xml:\"scope,attr,omitempty\"`",
	}, fields(t, decls["AdminUser"]))

	assert.Equal(t, []string{"Id int64 `xml:\"id\"`"}, fields(t, decls["GetUser"]))
	assert.Equal(t, []string{
		"Payload DoesNotExist `xml:\"payload\"`",
		"Count int `xml:\"count\"`",
		"Extra any `xml:\"extra\"`",
	}, fields(t, decls["PingRequest"]))

	svc, ok := decls["UserService"].(*ast.InterfaceType)
	require.True(t, ok)
	var methods []string
	for _, m := range svc.Methods.List {
		methods = append(methods, m.Names[0].Name+gen.ExprString(m.Type)[len("func"):])
	}
	assert.Equal(t, []string{
		"GetUser(ctx context.Context, request *GetUserRequest) (*GetUserReply, error)",
		"Ping(ctx context.Context, request *PingRequest) error",
	}, methods)

	assert.Contains(t, string(src), "UserStatusA1")
	assert.Contains(t, string(src), "UserStatus2b")
	assert.Contains(t, string(src), "// Lifecycle state of an account.\ntype UserStatus string")
	assert.Contains(t, string(src), "// Pattern: [^@]+@[^@]+\n// Min length: 3\n// Max length: 254\ntype EmailAddress string")
}

func TestGenerateSOAPArray(t *testing.T) {
	file, _ := generate(t, parseWSDL(t, "../wsdl/testdata/encoded.wsdl"))
	decls := types(file)
	assert.Equal(t, "[]Item", gen.ExprString(decls["ArrayOfItem"]))
	assert.Equal(t, "[]Item", gen.ExprString(decls["ItemList"]))
	assert.Empty(t, fields(t, decls["NotAnArray"]))
	_, ok := decls["Inventory"]
	assert.False(t, ok, "operations are not generated by default")
}

func TestGenerateNameClashes(t *testing.T) {
	def := &wsdl.Definition{
		ComplexTypes: []xsd.ComplexType{{Name: "Order"}},
		Elements: []xsd.Element{
			{Name: "Order", Type: "Order"},
			{Name: "Status", InlineSimple: &xsd.SimpleType{
				Restriction: &xsd.Restriction{Base: "string", Enumeration: []string{"open"}},
			}},
		},
		Messages: []wsdl.Message{
			{Name: "Order", Parts: []wsdl.Part{{Name: "body", Element: "Order"}}},
			{Name: "StatusMsg", Parts: []wsdl.Part{{Name: "status", Element: "Status"}}},
		},
		PortTypes: []wsdl.PortType{{
			Name:       "Order",
			Operations: []wsdl.Operation{{Name: "place", Input: "Order"}},
		}},
	}
	var log testutil.Recorder
	src, err := Generate(def, Clock(fixedClock), LogOutput(&log), IncludeOperations(true))
	require.NoError(t, err)
	file, err := parser.ParseFile(token.NewFileSet(), "", src, 0)
	require.NoError(t, err)

	decls := types(file)
	assert.Contains(t, decls, "Order")
	assert.Equal(t, "Order", gen.ExprString(decls["OrderElement"]))
	assert.Contains(t, decls, "OrderMessage")
	assert.Contains(t, decls, "OrderService")
	assert.Equal(t, []string{"Status Status `xml:\"status\"`"}, fields(t, decls["StatusMsg"]))
	assert.True(t, log.Contains("already declared"), log.Lines)

	svc := decls["OrderService"].(*ast.InterfaceType)
	assert.Equal(t, "func(ctx context.Context, request *OrderMessage) error", gen.ExprString(svc.Methods.List[0].Type))
}

func TestGeneratePackageName(t *testing.T) {
	for hint, want := range map[string]string{
		"":                 "ws",
		"Users":            "users",
		"urn:inventory-v2": "urninventoryv2",
		"2nd":              "nd",
		"type":             "type_",
		"---":              "ws",
	} {
		file, _ := generate(t, &wsdl.Definition{}, NamespaceHint(hint))
		assert.Equal(t, want, file.Name.Name, "hint %q", hint)
	}
	file, _ := generate(t, &wsdl.Definition{}, NamespaceHint("Users"), PackageName("api"))
	assert.Equal(t, "api", file.Name.Name)
}

func TestGenerateErrors(t *testing.T) {
	_, err := Generate(nil)
	assert.Error(t, err)
	_, err = Generate(&wsdl.Definition{SimpleTypes: []xsd.SimpleType{{}}})
	assert.Error(t, err)
}
