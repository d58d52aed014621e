/*
File    : pl0run/diag/tracer_test.go
*/
package diag

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracer_RecordsAndFlushes(t *testing.T) {
	tr := NewTracer(10)
	var buf bytes.Buffer
	tr.SetOutput(&buf)

	tr.Record(0, "LIT 1")
	tr.Record(1, "STORE a")
	tr.Flush()

	out := buf.String()
	assert.Contains(t, out, "LIT 1")
	assert.Contains(t, out, "STORE a")
	assert.Contains(t, out, "2 instructions executed")
}

func TestTracer_RingDiscardsOldest(t *testing.T) {
	tr := NewTracer(2)
	var buf bytes.Buffer
	tr.SetOutput(&buf)

	tr.Record(0, "first")
	tr.Record(1, "second")
	tr.Record(2, "third")

	lines := tr.Lines()
	assert.Len(t, lines, 2)
	assert.False(t, strings.Contains(strings.Join(lines, "\n"), "first"))
	assert.Contains(t, strings.Join(lines, "\n"), "third")
}
