/*
File    : pl0run/repl/repl.go
*/

// Package repl implements an interactive front end for PL/0, reading
// whole programs a block at a time (terminated by the grammar's trailing
// "."), running each through the AST interpreter, and printing its
// OUTPUT statements to the session's writer. It uses
// github.com/chzyer/readline for line editing and history,
// github.com/fatih/color for a red/yellow/cyan/green/blue diagnostic
// convention, and a Repl struct carrying the banner/version/prompt
// strings that Start() prints before looping. Each accepted program gets
// its own fresh interpreter and scope, since PL/0 programs are
// self-contained blocks rather than a sequence of top-level statements
// sharing one global scope.
package repl

import (
	"bufio"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/pl0toolkit/pl0run/astinterp"
	"github.com/pl0toolkit/pl0run/parser"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl is an interactive PL/0 session.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
}

// NewRepl creates a Repl with the given display strings.
func NewRepl(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo writes the startup banner and usage hints to writer.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Type a PL/0 program, ending with '.', and press enter.")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' on its own line to quit.")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the REPL loop: readline reads lines from reader (a terminal's
// stdin or a network connection) and echoes prompts to writer, which also
// receives banner, program output, and diagnostics.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.NewEx(&readline.Config{
		Prompt: r.Prompt,
		Stdin:  io.NopCloser(reader),
		Stdout: writer,
	})
	if err != nil {
		redColor.Fprintf(writer, "[REPL ERROR] %v\n", err)
		return
	}
	defer rl.Close()

	var pending strings.Builder
	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good bye!\n"))
			return
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == ".exit" {
			writer.Write([]byte("Good bye!\n"))
			return
		}
		if trimmed == "" {
			continue
		}

		pending.WriteString(line)
		pending.WriteByte('\n')
		rl.SaveHistory(line)

		if !strings.HasSuffix(trimmed, ".") {
			continue // still accumulating a block
		}

		r.runProgram(writer, pending.String())
		pending.Reset()
	}
}

// runProgram parses and runs one complete PL/0 program, printing its
// OUTPUT in the normal stream and any error in red. Panics inside the
// interpreter are not expected (every error path returns error), but a
// recover is kept anyway as the last line of defense for malformed AST
// built by future callers.
func (r *Repl) runProgram(writer io.Writer, src string) {
	defer func() {
		if rec := recover(); rec != nil {
			redColor.Fprintf(writer, "[RUNTIME ERROR] %v\n", rec)
		}
	}()

	prog, err := parser.Parse(src)
	if err != nil {
		redColor.Fprintf(writer, "[PARSE ERROR] %v\n", err)
		return
	}

	// ? statements have no live input source in interactive mode: readline
	// owns the terminal's stdin, so Read always sees EOF here.
	it := astinterp.New(astinterp.WithInput(bufio.NewReader(strings.NewReader(""))), astinterp.WithOutput(writer))
	if err := it.Run(prog); err != nil {
		redColor.Fprintf(writer, "[RUNTIME ERROR] %v\n", err)
	}
}
