/*
File    : pl0run/cmd/pl0lex/main.go
*/

// Command pl0lex dumps the token stream of a PL/0 source file, one
// "kind literal line:col" triple per line, with file-argument handling
// and colored stderr diagnostics.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/pl0toolkit/pl0run/lexer"
)

var redColor = color.New(color.FgRed)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: pl0lex <file.pl0>")
		os.Exit(1)
	}

	src, err := os.ReadFile(os.Args[1])
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] %v\n", err)
		os.Exit(1)
	}

	lex := lexer.New(string(src))
	for {
		tok, err := lex.Next()
		if err != nil {
			redColor.Fprintf(os.Stderr, "[LEX ERROR] %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s %q %d:%d\n", tok.Kind, tok.Literal, tok.Line, tok.Col)
		if tok.Kind == lexer.EOF {
			break
		}
	}
}
