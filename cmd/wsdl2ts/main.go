// Command wsdl2ts generates TypeScript type declarations from WSDL
// documents.
//
// Usage:
//
//	wsdl2ts [flags] <wsdl>
//
// The WSDL may be a file path or an http(s) URL. Declarations are
// written to ./types.ts unless -o is given. With --target go, Go
// declarations are written instead. Flags may also be set in a
// wsdl2ts.yaml file in the current directory or in
// $HOME/.config/wsdl2ts, or with WSDL2TS_-prefixed environment
// variables.
package main

import "github.com/CognitoIQ/wsdl2ts/internal/cli"

func main() {
	cli.Execute()
}
