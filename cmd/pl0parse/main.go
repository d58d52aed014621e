/*
File    : pl0run/cmd/pl0parse/main.go
*/

// Command pl0parse parses a PL/0 source file and pretty-prints its AST
// via ast.PrintVisitor's indentation-based dump.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/pl0toolkit/pl0run/ast"
	"github.com/pl0toolkit/pl0run/parser"
)

var redColor = color.New(color.FgRed)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: pl0parse <file.pl0>")
		os.Exit(1)
	}

	src, err := os.ReadFile(os.Args[1])
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] %v\n", err)
		os.Exit(1)
	}

	prog, err := parser.Parse(string(src))
	if err != nil {
		redColor.Fprintf(os.Stderr, "[PARSE ERROR] %v\n", err)
		os.Exit(1)
	}

	pv := &ast.PrintVisitor{}
	prog.Accept(pv)
	fmt.Print(pv.String())
}
