/*
File    : pl0run/cmd/pl0vm/main.go
*/

// Command pl0vm lowers a PL/0 source file to IR and runs it on the stack
// VM, with INPUT/OUTPUT attached to stdin/stdout. An optional -trace flag
// (must be the first argument) enables a diag.Tracer flushed to stderr
// after the run, keeping diagnostics out of the program's own output
// stream.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/pl0toolkit/pl0run/diag"
	"github.com/pl0toolkit/pl0run/icg"
	"github.com/pl0toolkit/pl0run/parser"
	"github.com/pl0toolkit/pl0run/vm"
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
		fmt.Fprintln(os.Stderr, "usage: pl0vm [-trace] <file.pl0>")
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

	code, err := icg.Generate(prog)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[ICG ERROR] %v\n", err)
		os.Exit(1)
	}

	opts := []vm.Option{vm.WithInput(os.Stdin), vm.WithOutput(os.Stdout)}
	var tracer *diag.Tracer
	if trace {
		tracer = diag.NewTracer(1000)
		opts = append(opts, vm.WithTracer(tracer))
	}

	machine := vm.New(code, opts...)
	runErr := machine.Run()
	if tracer != nil {
		tracer.Flush()
	}
	if runErr != nil {
		redColor.Fprintf(os.Stderr, "[RUNTIME ERROR] %v\n", runErr)
		os.Exit(1)
	}
}
