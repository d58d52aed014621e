/*
File    : pl0run/cmd/pl0icg/main.go
*/

// Command pl0icg lowers a PL/0 source file to IR and prints the numbered
// instruction listing.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/pl0toolkit/pl0run/icg"
	"github.com/pl0toolkit/pl0run/parser"
)

var redColor = color.New(color.FgRed)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: pl0icg <file.pl0>")
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

	code, err := icg.Generate(prog)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[ICG ERROR] %v\n", err)
		os.Exit(1)
	}

	fmt.Print(code.String())
}
