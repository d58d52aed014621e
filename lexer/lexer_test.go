/*
File    : pl0run/lexer/lexer_test.go
*/
package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func consumeAll(t *testing.T, src string) []Token {
	t.Helper()
	l := New(src)
	var toks []Token
	for {
		tok, err := l.Next()
		assert.NoError(t, err)
		if tok.Kind == EOF {
			break
		}
		toks = append(toks, tok)
	}
	return toks
}

func TestLexer_Operators(t *testing.T) {
	toks := consumeAll(t, ":= <= >= < > = # + - * / , ; . ( ) ? !")
	want := []string{":=", "<=", ">=", "<", ">", "=", "#", "+", "-", "*", "/", ",", ";", ".", "(", ")", "?", "!"}
	assert.Equal(t, len(want), len(toks))
	for i, w := range want {
		assert.Equal(t, Operator, toks[i].Kind)
		assert.Equal(t, w, toks[i].Literal)
	}
}

func TestLexer_TwoCharBeforeOneChar(t *testing.T) {
	toks := consumeAll(t, ":=<=>=")
	assert.Equal(t, []string{":=", "<=", ">="}, []string{toks[0].Literal, toks[1].Literal, toks[2].Literal})
}

func TestLexer_NumbersAndIdentifiers(t *testing.T) {
	toks := consumeAll(t, "123 abc _x9 a_b")
	assert.Equal(t, Number, toks[0].Kind)
	assert.Equal(t, "123", toks[0].Literal)
	for _, tok := range toks[1:] {
		assert.Equal(t, Name, tok.Kind)
	}
}

func TestLexer_Keywords(t *testing.T) {
	toks := consumeAll(t, "begin call const do end if odd procedure then var while")
	for _, tok := range toks {
		assert.Equal(t, Keyword, tok.Kind)
	}
}

func TestLexer_IdentifierNotKeywordPrefix(t *testing.T) {
	toks := consumeAll(t, "beginner")
	assert.Equal(t, Name, toks[0].Kind)
	assert.Equal(t, "beginner", toks[0].Literal)
}

func TestLexer_SkipsWhitespace(t *testing.T) {
	toks := consumeAll(t, "  \t\n  x   \n  := 1 ")
	assert.Equal(t, 3, len(toks))
}

func TestLexer_InvalidCharacter(t *testing.T) {
	l := New("x := @")
	var lastErr error
	for {
		tok, err := l.Next()
		if err != nil {
			lastErr = err
			break
		}
		if tok.Kind == EOF {
			break
		}
	}
	if assert.Error(t, lastErr) {
		var invErr *InvalidCharacterError
		assert.ErrorAs(t, lastErr, &invErr)
		assert.Equal(t, byte('@'), invErr.Char)
	}
}

func TestLexer_PeekDoesNotConsume(t *testing.T) {
	l := New("x y")
	first, err := l.Peek()
	assert.NoError(t, err)
	again, err := l.Peek()
	assert.NoError(t, err)
	assert.Equal(t, first, again)
	consumed, err := l.Next()
	assert.NoError(t, err)
	assert.Equal(t, first, consumed)
}

func TestLexer_EOFIsSticky(t *testing.T) {
	l := New("x")
	_, _ = l.Next()
	tok1, _ := l.Next()
	tok2, _ := l.Next()
	assert.Equal(t, EOF, tok1.Kind)
	assert.Equal(t, EOF, tok2.Kind)
}

func TestLexer_LineAndColumnTracking(t *testing.T) {
	l := New("x\ny")
	_, _ = l.Next()
	tok, _ := l.Next()
	assert.Equal(t, 2, tok.Line)
	assert.Equal(t, 1, tok.Col)
}
