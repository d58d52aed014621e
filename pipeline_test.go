/*
File    : pl0run/pipeline_test.go
*/
package pl0run_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pl0toolkit/pl0run/ast"
	"github.com/pl0toolkit/pl0run/astinterp"
	"github.com/pl0toolkit/pl0run/icg"
	"github.com/pl0toolkit/pl0run/parser"
	"github.com/pl0toolkit/pl0run/vm"
)

// runVM lowers src through icg and executes it on the stack VM.
func runVM(t *testing.T, src, stdin string) (string, error) {
	t.Helper()
	prog, err := parser.Parse(src)
	require.NoError(t, err)
	code, err := icg.Generate(prog)
	require.NoError(t, err)

	var out bytes.Buffer
	machine := vm.New(code, vm.WithInput(strings.NewReader(stdin)), vm.WithOutput(&out))
	return out.String(), machine.Run()
}

// runAST walks src's AST directly with the tree-walking interpreter.
func runAST(t *testing.T, src, stdin string) (string, error) {
	t.Helper()
	prog, err := parser.Parse(src)
	require.NoError(t, err)

	var out bytes.Buffer
	it := astinterp.New(astinterp.WithInput(strings.NewReader(stdin)), astinterp.WithOutput(&out))
	return out.String(), it.Run(prog)
}

// scenarios are end-to-end programs exercising assignment, loops,
// conditions, recursion, and I/O.
var scenarios = []struct {
	name  string
	src   string
	stdin string
}{
	{
		name: "negative-prefix assignment",
		src:  `var a; begin a := -5; ! a end.`,
	},
	{
		name: "sum of squares",
		src: `
		var i, s;
		begin
		  i := 0; s := 0;
		  while i <= 3 do
		  begin
		    s := s + i * i;
		    i := i + 1
		  end;
		  ! s
		end.`,
	},
	{
		name: "odd condition",
		src:  `var a; begin a := 7; if odd a then ! 1 end.`,
	},
	{
		name: "procedure recursion (factorial)",
		src: `
		var n, r;
		procedure fact;
		  begin
		    if n > 1 then
		    begin
		      r := r * n;
		      n := n - 1;
		      call fact
		    end
		  end;
		begin
		  n := 5; r := 1;
		  call fact;
		  ! r
		end.`,
	},
	{
		name: "read then write round trip",
		src:  `var a; begin ? a; ! a end.`,
		stdin: "17\n",
	},
}

// TestRoundTrip_VMAndASTInterpreterAgree checks the round-trip property:
// the VM (via icg) and the AST interpreter must produce identical output
// on the same program.
func TestRoundTrip_VMAndASTInterpreterAgree(t *testing.T) {
	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			vmOut, vmErr := runVM(t, sc.src, sc.stdin)
			astOut, astErr := runAST(t, sc.src, sc.stdin)

			require.NoError(t, vmErr)
			require.NoError(t, astErr)
			assert.Equal(t, vmOut, astOut)
		})
	}
}

// TestRoundTrip_DivisionByZeroAgrees checks that both execution
// strategies fail the same way on a division by zero.
func TestRoundTrip_DivisionByZeroAgrees(t *testing.T) {
	src := `var a; a := 1 / 0.`
	_, vmErr := runVM(t, src, "")
	_, astErr := runAST(t, src, "")
	require.Error(t, vmErr)
	require.Error(t, astErr)
}

// TestRoundTrip_ReassignmentToConstantAgrees checks that both execution
// strategies reject storing into a const.
func TestRoundTrip_ReassignmentToConstantAgrees(t *testing.T) {
	src := `const k = 1; k := 2.`
	_, vmErr := runVM(t, src, "")
	_, astErr := runAST(t, src, "")
	require.Error(t, vmErr)
	require.Error(t, astErr)
	assert.ErrorIs(t, vmErr, vm.ErrKindMismatch)
	assert.ErrorIs(t, astErr, astinterp.ErrKindMismatch)
}

// TestParse_Idempotent checks idempotence at the parser level: parsing
// the same source twice yields ASTs that print identically via
// ast.PrintVisitor.
func TestParse_Idempotent(t *testing.T) {
	src := scenarios[3].src
	a, err := parser.Parse(src)
	require.NoError(t, err)
	b, err := parser.Parse(src)
	require.NoError(t, err)
	assert.Equal(t, printTree(a), printTree(b))
}

func printTree(prog *ast.Program) string {
	pv := &ast.PrintVisitor{}
	prog.Accept(pv)
	return pv.String()
}
