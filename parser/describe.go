/*
File    : pl0run/parser/describe.go
*/
package parser

import (
	"fmt"

	"github.com/pl0toolkit/pl0run/lexer"
)

func sprintf(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}

func describe(tok lexer.Token) string {
	if tok.Kind == lexer.EOF {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", tok.Kind, tok.Literal)
}

func describeExpect(kind lexer.Kind, literal string) string {
	if literal == "" {
		return string(kind)
	}
	return fmt.Sprintf("%q", literal)
}
