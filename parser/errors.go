/*
File    : pl0run/parser/errors.go
*/
package parser

import "fmt"

// SyntaxError reports the first deviation from the PL/0 grammar. The parser
// does not attempt recovery: the first SyntaxError aborts translation.
type SyntaxError struct {
	Line, Col int
	Message   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: syntax error: %s", e.Line, e.Col, e.Message)
}
