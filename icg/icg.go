/*
File    : pl0run/icg/icg.go
*/

// Package icg (intermediate code generator) lowers a PL/0 ast.Program into
// a flat ir.Program: procedure bodies are emitted inline, and If/While
// branches are forward-patched by recording the index of a placeholder
// jump and filling in its target once the following code's position is
// known.
package icg

import (
	"fmt"

	"github.com/pl0toolkit/pl0run/ast"
	"github.com/pl0toolkit/pl0run/ir"
)

// Generate lowers prog into an ir.Program ending in HALT.
func Generate(prog *ast.Program) (ir.Program, error) {
	g := &generator{}
	if err := g.block(prog.Block); err != nil {
		return nil, err
	}
	g.emit(ir.Simple(ir.HALT))
	return g.buf, nil
}

type generator struct {
	buf ir.Program
}

// emit appends instr and returns its index in the buffer.
func (g *generator) emit(instr ir.Instruction) int {
	idx := len(g.buf)
	g.buf = append(g.buf, instr)
	return idx
}

// patch rewrites the integer operand of the instruction at idx to target.
func (g *generator) patch(idx int, target int) {
	g.buf[idx].IntArg = int64(target)
}

// block lowers a Block's declarations then its single statement. Constants
// emit LIT+CONST, variables emit VAR, and each procedure emits PROC
// followed by its body and a RET, all inline — the VM skips over a
// procedure's body at declaration time (vm package, PROC opcode).
func (g *generator) block(b *ast.Block) error {
	for _, c := range b.Consts {
		g.emit(ir.Lit(c.Value))
		g.emit(ir.Named(ir.CONST, c.Ident))
	}
	for _, v := range b.Vars {
		g.emit(ir.Named(ir.VAR, v.Ident))
	}
	for _, proc := range b.Procs {
		g.emit(ir.Named(ir.PROC, proc.Ident))
		if err := g.block(proc.Block); err != nil {
			return err
		}
		g.emit(ir.Simple(ir.RET))
	}
	return g.statement(b.Stmt)
}

func (g *generator) statement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.Assignment:
		if err := g.expression(s.Expr); err != nil {
			return err
		}
		g.emit(ir.Named(ir.STORE, s.Ident))
		return nil

	case *ast.Call:
		g.emit(ir.Named(ir.CALL, s.Ident))
		return nil

	case *ast.Read:
		g.emit(ir.Simple(ir.INPUT))
		g.emit(ir.Named(ir.STORE, s.Ident))
		return nil

	case *ast.Write:
		if err := g.expression(s.Expr); err != nil {
			return err
		}
		g.emit(ir.Simple(ir.OUTPUT))
		return nil

	case *ast.Begin:
		for _, child := range s.Body {
			if err := g.statement(child); err != nil {
				return err
			}
		}
		return nil

	case *ast.If:
		if err := g.condition(s.Cond); err != nil {
			return err
		}
		jpf := g.emit(ir.Branch(ir.JPF, -1))
		if err := g.statement(s.Stmt); err != nil {
			return err
		}
		g.patch(jpf, len(g.buf))
		return nil

	case *ast.While:
		loopHead := len(g.buf)
		if err := g.condition(s.Cond); err != nil {
			return err
		}
		jpf := g.emit(ir.Branch(ir.JPF, -1))
		if err := g.statement(s.Stmt); err != nil {
			return err
		}
		g.emit(ir.Branch(ir.JMP, loopHead))
		g.patch(jpf, len(g.buf))
		return nil

	default:
		return fmt.Errorf("icg: unhandled statement type %T", stmt)
	}
}

func (g *generator) condition(cond ast.Condition) error {
	switch c := cond.(type) {
	case *ast.OddCondition:
		if err := g.expression(c.Expr); err != nil {
			return err
		}
		g.emit(ir.Simple(ir.ODD))
		return nil

	case *ast.ComparisonCondition:
		if err := g.expression(c.Lhs); err != nil {
			return err
		}
		if err := g.expression(c.Rhs); err != nil {
			return err
		}
		op, ok := comparisonOpcodes[c.Op]
		if !ok {
			return ErrInvalidComparisonOperator
		}
		g.emit(ir.Simple(op))
		return nil

	default:
		return fmt.Errorf("icg: unhandled condition type %T", cond)
	}
}

var comparisonOpcodes = map[ast.RelOp]ir.Opcode{
	ast.RelEQ: ir.EQ,
	ast.RelNE: ir.NE,
	ast.RelLT: ir.LT,
	ast.RelLE: ir.LE,
	ast.RelGT: ir.GT,
	ast.RelGE: ir.GE,
}

// expression lowers terms[0], negates it if the expression had a leading
// "-", then folds in each remaining term with ADD or SUB.
func (g *generator) expression(expr *ast.Expression) error {
	if err := g.term(expr.Terms[0]); err != nil {
		return err
	}
	if expr.Prefix == ast.OpSub {
		g.emit(ir.Simple(ir.NEG))
	}
	for i, op := range expr.Ops {
		if err := g.term(expr.Terms[i+1]); err != nil {
			return err
		}
		if op == ast.OpAdd {
			g.emit(ir.Simple(ir.ADD))
		} else {
			g.emit(ir.Simple(ir.SUB))
		}
	}
	return nil
}

func (g *generator) term(t *ast.Term) error {
	if err := g.factor(t.Factors[0]); err != nil {
		return err
	}
	for i, op := range t.Ops {
		if err := g.factor(t.Factors[i+1]); err != nil {
			return err
		}
		if op == ast.OpMul {
			g.emit(ir.Simple(ir.MUL))
		} else {
			g.emit(ir.Simple(ir.DIV))
		}
	}
	return nil
}

func (g *generator) factor(f ast.Factor) error {
	switch fac := f.(type) {
	case *ast.IntegerFactor:
		g.emit(ir.Lit(fac.Value))
		return nil
	case *ast.IdentifierFactor:
		g.emit(ir.Named(ir.LOAD, fac.Ident))
		return nil
	case *ast.ParenFactor:
		return g.expression(fac.Expr)
	default:
		return fmt.Errorf("icg: unhandled factor type %T", f)
	}
}
