/*
File    : pl0run/diag/tracer.go
*/

// Package diag provides an execution trace channel for the vm and
// astinterp packages, kept separate from ordinary program INPUT/OUTPUT.
// A bounded devt.de/krotik/common/datautil.RingBuffer holds formatted
// instruction-trace lines, discarding the oldest once full; Flush renders
// them with github.com/dustin/go-humanize for a human-readable step count.
package diag

import (
	"fmt"
	"io"
	"os"

	"devt.de/krotik/common/datautil"
	"github.com/dustin/go-humanize"
)

// Tracer records a bounded history of executed instructions. Once full,
// the ring buffer discards the oldest entry to make room for the newest,
// so a Tracer never grows without bound even for long-running programs.
type Tracer struct {
	ring *datautil.RingBuffer
	out  io.Writer
	n    uint64
}

// NewTracer creates a Tracer retaining at most capacity trace lines.
// Output defaults to os.Stderr; diagnostics never share program OUTPUT's
// stream.
func NewTracer(capacity int) *Tracer {
	return &Tracer{
		ring: datautil.NewRingBuffer(capacity),
		out:  os.Stderr,
	}
}

// SetOutput redirects where Flush writes.
func (t *Tracer) SetOutput(w io.Writer) {
	t.out = w
}

// Record appends one trace line: the instruction pointer and the
// instruction executed there.
func (t *Tracer) Record(pc int, instr string) {
	t.n++
	t.ring.Add(fmt.Sprintf("%04d  %s", pc, instr))
}

// Lines returns the currently retained trace lines, oldest first.
func (t *Tracer) Lines() []string {
	raw := t.ring.Slice()
	lines := make([]string, len(raw))
	for i, v := range raw {
		lines[i] = v.(string)
	}
	return lines
}

// Flush writes the retained trace lines to the configured output,
// prefixed with a humanized count of total instructions executed
// (which may exceed the number of retained lines once the ring wraps).
func (t *Tracer) Flush() {
	fmt.Fprintf(t.out, "--- trace: %s instructions executed ---\n", humanize.Comma(int64(t.n)))
	for _, line := range t.Lines() {
		fmt.Fprintln(t.out, line)
	}
}
