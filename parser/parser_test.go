/*
File    : pl0run/parser/parser_test.go
*/
package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pl0toolkit/pl0run/ast"
)

func TestParse_NegativePrefixAssignment(t *testing.T) {
	prog, err := Parse(`var a; a := - 1 + 2.`)
	require.NoError(t, err)

	require.Len(t, prog.Block.Vars, 1)
	assert.Equal(t, "a", prog.Block.Vars[0].Ident)

	assign, ok := prog.Block.Stmt.(*ast.Assignment)
	require.True(t, ok)
	assert.Equal(t, "a", assign.Ident)
	assert.Equal(t, ast.OpSub, assign.Expr.Prefix)
	require.Len(t, assign.Expr.Terms, 2)
	require.Len(t, assign.Expr.Ops, 1)
	assert.Equal(t, ast.OpAdd, assign.Expr.Ops[0])
}

func TestParse_SumOfSquares(t *testing.T) {
	src := `
	var i, s;
	begin
	  i := 0; s := 0;
	  while i < 5 do
	  begin i := i + 1; s := s + i * i end
	end.`
	prog, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, prog.Block.Vars, 2)

	outer, ok := prog.Block.Stmt.(*ast.Begin)
	require.True(t, ok)
	require.Len(t, outer.Body, 3)

	while, ok := outer.Body[2].(*ast.While)
	require.True(t, ok)
	cmp, ok := while.Cond.(*ast.ComparisonCondition)
	require.True(t, ok)
	assert.Equal(t, ast.RelLT, cmp.Op)
}

func TestParse_ProcedureRecursion(t *testing.T) {
	src := `
	var n, r;
	procedure fact;
	  begin
	    if n > 1 then
	    begin r := r * n; n := n - 1; call fact end
	  end;
	begin n := 5; r := 1; call fact; ! r end.`
	prog, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, prog.Block.Procs, 1)
	assert.Equal(t, "fact", prog.Block.Procs[0].Ident)
}

func TestParse_OddCondition(t *testing.T) {
	prog, err := Parse(`var x; begin x := 7; if odd x then ! x end.`)
	require.NoError(t, err)
	body := prog.Block.Stmt.(*ast.Begin).Body
	ifStmt := body[1].(*ast.If)
	_, ok := ifStmt.Cond.(*ast.OddCondition)
	assert.True(t, ok)
}

func TestParse_ExpressionTermInvariant(t *testing.T) {
	prog, err := Parse(`var a; a := 1 + 2 - 3 + 4.`)
	require.NoError(t, err)
	expr := prog.Block.Stmt.(*ast.Assignment).Expr
	assert.Equal(t, len(expr.Ops)+1, len(expr.Terms))
}

func TestParse_TermFactorInvariant(t *testing.T) {
	prog, err := Parse(`var a; a := 1 * 2 / 3 * 4.`)
	require.NoError(t, err)
	term := prog.Block.Stmt.(*ast.Assignment).Expr.Terms[0]
	assert.Equal(t, len(term.Ops)+1, len(term.Factors))
}

func TestParse_TrailingSemicolonBeforeEndRejected(t *testing.T) {
	_, err := Parse(`var a; begin a := 1; end.`)
	require.Error(t, err)
	var synErr *SyntaxError
	assert.ErrorAs(t, err, &synErr)
}

func TestParse_TrailingCharactersAfterDotRejected(t *testing.T) {
	_, err := Parse(`var a; a := 1. garbage`)
	require.Error(t, err)
}

func TestParse_MissingRelationalOperator(t *testing.T) {
	_, err := Parse(`var a; if a + 1 then a := 1.`)
	require.Error(t, err)
}

func TestParse_EmptyStatementRejected(t *testing.T) {
	_, err := Parse(`var a; begin end.`)
	require.Error(t, err)
}

func TestParse_Idempotent(t *testing.T) {
	src := `var i, s; begin i := 0; while i < 5 do i := i + 1 end.`
	p1, err1 := Parse(src)
	p2, err2 := Parse(src)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, p1, p2)
}

func TestParse_ConstRedeclarationIsNotAParserConcern(t *testing.T) {
	// The parser performs no semantic checks; duplicate identifiers within
	// a scope are only caught at execution time.
	_, err := Parse(`const a = 1, a = 2; begin a := 3 end.`)
	require.NoError(t, err)
}
