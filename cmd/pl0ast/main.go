/*
File    : pl0run/cmd/pl0ast/main.go
*/

// Command pl0ast parses a PL/0 source file and runs it directly on the
// tree-walking interpreter, bypassing ir/vm entirely. Mirrors pl0vm's
// flag handling so the two can be run side by side on the same source to
// check by hand that both execution strategies agree.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/pl0toolkit/pl0run/astinterp"
	"github.com/pl0toolkit/pl0run/diag"
	"github.com/pl0toolkit/pl0run/parser"
)

var redColor = color.New(color.FgRed)

func main() {
	args := os.Args[1:]
	trace := false
	if len(args) > 0 && args[0] == "-trace" {
		trace = true
		args = args[1:]
	}
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: pl0ast [-trace] <file.pl0>")
		os.Exit(1)
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] %v\n", err)
		os.Exit(1)
	}

	prog, err := parser.Parse(string(src))
	if err != nil {
		redColor.Fprintf(os.Stderr, "[PARSE ERROR] %v\n", err)
		os.Exit(1)
	}

	opts := []astinterp.Option{astinterp.WithInput(os.Stdin), astinterp.WithOutput(os.Stdout)}
	var tracer *diag.Tracer
	if trace {
		tracer = diag.NewTracer(1000)
		opts = append(opts, astinterp.WithTracer(tracer))
	}

	it := astinterp.New(opts...)
	runErr := it.Run(prog)
	if tracer != nil {
		tracer.Flush()
	}
	if runErr != nil {
		redColor.Fprintf(os.Stderr, "[RUNTIME ERROR] %v\n", runErr)
		os.Exit(1)
	}
}
