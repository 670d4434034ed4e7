package xmltree

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exampleDoc = []byte(`<?xml version="1.0" encoding="utf-8"?>
<wsdl:definitions xmlns:soap="http://schemas.xmlsoap.org/wsdl/soap/" xmlns:tm="http://microsoft.com/wsdl/mime/textMatching/" xmlns:soapenc="http://schemas.xmlsoap.org/soap/encoding/" xmlns:mime="http://schemas.xmlsoap.org/wsdl/mime/" xmlns:tns="http://www.sci-grupo.com.mx/" xmlns:s="http://www.w3.org/2001/XMLSchema" xmlns:soap12="http://schemas.xmlsoap.org/wsdl/soap12/" xmlns:http="http://schemas.xmlsoap.org/wsdl/http/" targetNamespace="http://www.sci-grupo.com.mx/" xmlns:wsdl="http://schemas.xmlsoap.org/wsdl/" xmlns="http://defaultns.net/">
  <wsdl:types>
    <s:schema elementFormDefault="qualified" targetNamespace="http://www.sci-grupo.com.mx/">
      <s:element name="RecibeCFD">
        <s:complexType>
          <s:sequence>
            <s:element minOccurs="0" maxOccurs="1" name="XMLCFD" type="s:string" />
          </s:sequence>
        </s:complexType>
      </s:element>
      <s:element name="RecibeCFDResponse">
        <s:complexType>
          <s:sequence>
            <s:element minOccurs="0" maxOccurs="1" name="RecibeCFDResult" type="s:string" />
          </s:sequence>
        </s:complexType>
      </s:element>
    </s:schema>
  </wsdl:types>
  <wsdl:message name="RecibeCFDSoapIn">
    <wsdl:part name="parameters" element="tns:RecibeCFD" />
  </wsdl:message>
  <wsdl:message name="RecibeCFDSoapOut">
    <wsdl:part name="parameters" element="tns:RecibeCFDResponse" />
  </wsdl:message>
  <wsdl:portType name="wseDocReciboSoap">
    <wsdl:operation name="RecibeCFD">
      <wsdl:input message="tns:RecibeCFDSoapIn" />
      <wsdl:output message="tns:RecibeCFDSoapOut" />
    </wsdl:operation>
  </wsdl:portType>
  <wsdl:binding name="wseDocReciboSoap" type="tns:wseDocReciboSoap" xmlns="http://custom2/">
    <soap:binding transport="http://schemas.xmlsoap.org/soap/http" />
    <wsdl:operation name="RecibeCFD">
      <soap:operation soapAction="http://www.sci-grupo.com.mx/RecibeCFD" style="document" />
      <wsdl:input>
        <soap:body use="literal" />
      </wsdl:input>
      <wsdl:output>
        <soap:body use="literal" />
      </wsdl:output>
    </wsdl:operation>
  </wsdl:binding>
  <wsdl:binding name="wseDocReciboSoap12" type="tns:wseDocReciboSoap" xmlns="http://custom/">
    <soap12:binding transport="http://schemas.xmlsoap.org/soap/http" />
    <wsdl:operation name="RecibeCFD">
      <soap12:operation soapAction="http://www.sci-grupo.com.mx/RecibeCFD" style="document" />
      <wsdl:input>
        <soap12:body use="literal" />
      </wsdl:input>
      <wsdl:output>
        <soap12:body use="literal" />
      </wsdl:output>
    </wsdl:operation>
  </wsdl:binding>
  <wsdl:service name="wseDocRecibo">
    <wsdl:port name="wseDocReciboSoap" binding="tns:wseDocReciboSoap">
      <soap:address location="http://www2.soriana.com/integracion/recibecfd/wseDocRecibo.asmx" />
    </wsdl:port>
    <wsdl:port name="wseDocReciboSoap12" binding="tns:wseDocReciboSoap12">
      <soap12:address location="http://www2.soriana.com/integracion/recibecfd/wseDocRecibo.asmx" />
    </wsdl:port>
  </wsdl:service>
</wsdl:definitions>`)

func parseDoc(t *testing.T, document []byte) *Element {
	root, err := Parse(document)
	require.NoError(t, err)
	return root
}

func TestParse(t *testing.T) {
	root := parseDoc(t, exampleDoc)
	assert.Equal(t, "definitions", root.Name.Local)
	assert.Equal(t, "http://schemas.xmlsoap.org/wsdl/", root.Name.Space)
	// types, 2 messages, portType, 2 bindings, service
	assert.Len(t, root.Children, 7)
}

func TestQName(t *testing.T) {
	root := parseDoc(t, exampleDoc)
	assert.Equal(t, "wsdl:definitions", root.QName(root.Name))

	schema := &root.Children[0].Children[0]
	assert.Equal(t, "s:schema", schema.QName(schema.Name))

	binding := &root.Children[4]
	require.Equal(t, "binding", binding.Name.Local)
	soapBinding := &binding.Children[0]
	assert.Equal(t, "soap:binding", soapBinding.QName(soapBinding.Name))
}

func TestQNameDefaultNamespace(t *testing.T) {
	root := parseDoc(t, []byte(`<definitions xmlns="http://schemas.xmlsoap.org/wsdl/"><message name="m"/></definitions>`))
	assert.Equal(t, "definitions", root.QName(root.Name))
	assert.Equal(t, "message", root.Children[0].QName(root.Children[0].Name))
}

func TestQNameUndeclaredPrefix(t *testing.T) {
	root := parseDoc(t, []byte(`<wsdl:definitions><wsdl:message name="m"/></wsdl:definitions>`))
	assert.Equal(t, "wsdl:definitions", root.QName(root.Name))
	assert.Equal(t, "wsdl:message", root.Children[0].QName(root.Children[0].Name))
}

func TestMergeSingleAndRepeated(t *testing.T) {
	root := parseDoc(t, exampleDoc)
	tree := root.Merge()
	require.Contains(t, tree, "wsdl:definitions")
	defs := tree["wsdl:definitions"].(map[string]interface{})

	assert.Equal(t, "http://www.sci-grupo.com.mx/", defs["targetNamespace"])
	assert.Equal(t, "http://www.w3.org/2001/XMLSchema", defs["xmlns:s"])
	assert.Equal(t, "http://defaultns.net/", defs["xmlns"])

	messages, ok := defs["wsdl:message"].([]interface{})
	require.True(t, ok, "repeated children merge to a list")
	require.Len(t, messages, 2)
	assert.Equal(t, "RecibeCFDSoapIn", messages[0].(map[string]interface{})["name"])
	assert.Equal(t, "RecibeCFDSoapOut", messages[1].(map[string]interface{})["name"])

	portType, ok := defs["wsdl:portType"].(map[string]interface{})
	require.True(t, ok, "a single child merges to a bare object")
	op := portType["wsdl:operation"].(map[string]interface{})
	input := op["wsdl:input"].(map[string]interface{})
	assert.Equal(t, "tns:RecibeCFDSoapIn", input["message"])
}

func TestMergeText(t *testing.T) {
	doc := `<root xmlns:xs="http://www.w3.org/2001/XMLSchema">
	<doc>plain &amp; simple</doc>
	<empty/>
	<tagged lang="en">hello</tagged>
	<xs:item>1</xs:item>
	<xs:item>2</xs:item>
</root>`
	root := parseDoc(t, []byte(doc))
	want := map[string]interface{}{
		"root": map[string]interface{}{
			"xmlns:xs": "http://www.w3.org/2001/XMLSchema",
			"doc":      "plain & simple",
			"empty":    "",
			"tagged":   map[string]interface{}{"lang": "en", TextKey: "hello"},
			"xs:item":  []interface{}{"1", "2"},
		},
	}
	if diff := cmp.Diff(want, root.Merge()); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeAttributeAndChildShareKey(t *testing.T) {
	root := parseDoc(t, []byte(`<a name="attr"><name>child</name></a>`))
	got := root.Merge()["a"].(map[string]interface{})
	assert.Equal(t, []interface{}{"attr", "child"}, got["name"])
}

func TestParseCharset(t *testing.T) {
	// "Préfixe" encoded as ISO-8859-1
	doc := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n<a name=\"Pr\xe9fixe\"/>")
	root := parseDoc(t, doc)
	got := root.Merge()["a"].(map[string]interface{})
	assert.Equal(t, "Préfixe", got["name"])
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`<a><b></a>`))
	assert.Error(t, err)

	deep := strings.Repeat("<a>", recursionLimit+2) + strings.Repeat("</a>", recursionLimit+2)
	_, err = Parse([]byte(deep))
	assert.ErrorIs(t, err, errDeepXML)
}
