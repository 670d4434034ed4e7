package wsdl

// A SchemaError is returned when a document has no recognizable WSDL
// definitions root. Nothing useful can be generated from such a
// document, so callers should report Msg to the user and stop.
type SchemaError struct {
	Msg string
}

func (e *SchemaError) Error() string { return e.Msg }
