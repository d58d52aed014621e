/*
File    : pl0run/lexer/token.go
*/
package lexer

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind string

// Token kinds. PL/0 has a small closed alphabet.
const (
	EOF      Kind = "EOF"
	Operator Kind = "Operator"
	Number   Kind = "Number"
	Name     Kind = "Name"
	Keyword  Kind = "Keyword"
)

// reserved holds the words that are keywords rather than identifiers.
var reserved = map[string]bool{
	"begin": true, "call": true, "const": true, "do": true, "end": true,
	"if": true, "odd": true, "procedure": true, "then": true, "var": true,
	"while": true,
}

// Token is a single lexical unit: a kind plus its source text and position.
// Two tokens are equal iff Kind and Literal match; Line/Col are carried
// only for diagnostics, never consulted by equality or parsing logic.
type Token struct {
	Kind    Kind
	Literal string
	Line    int
	Col     int
}

// IsKeyword reports whether literal names a reserved word rather than a
// user identifier.
func IsKeyword(literal string) bool {
	return reserved[literal]
}

// String renders the token as "literal:kind". cmd/pl0lex and the parser's
// error messages format the token's fields themselves and do not call it.
func (t Token) String() string {
	return fmt.Sprintf("%s:%s", t.Literal, t.Kind)
}
