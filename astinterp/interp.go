/*
File    : pl0run/astinterp/interp.go
*/

// Package astinterp walks an ast.Program directly instead of lowering it
// to ir first, as an alternative execution strategy whose observable
// behavior must match the vm package's on every program. It shares
// symtab.Stack with vm for identifier storage and dynamic scoping, rather
// than a closure-capturing scope — a procedure call here opens a fresh
// scope the way vm.CALL does, it does not close over the scope active at
// the procedure's declaration site. Shaped around a pluggable reader/writer
// and a type-switch-driven Eval, using type switches throughout rather
// than the ast.Visitor interface, for the same reason icg does:
// evaluation must propagate error.
package astinterp

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pl0toolkit/pl0run/ast"
	"github.com/pl0toolkit/pl0run/diag"
	"github.com/pl0toolkit/pl0run/symtab"
)

// Interp holds the mutable state of one tree-walking execution.
type Interp struct {
	env *symtab.Stack

	in    *bufio.Reader
	out   io.Writer
	trace *diag.Tracer
}

// Option configures an Interp at construction time.
type Option func(*Interp)

// WithInput overrides the reader Read statements draw integers from
// (default os.Stdin).
func WithInput(r io.Reader) Option {
	return func(it *Interp) { it.in = bufio.NewReader(r) }
}

// WithOutput overrides the writer Write statements write to (default
// os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(it *Interp) { it.out = w }
}

// WithTracer attaches a diagnostic tracer; every executed assignment is
// recorded to it as "ident := value". Other statements and condition
// evaluations are not recorded.
func WithTracer(t *diag.Tracer) Option {
	return func(it *Interp) { it.trace = t }
}

// New builds an Interp ready to Run a program.
func New(opts ...Option) *Interp {
	it := &Interp{
		env: symtab.NewStack(),
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// Run executes prog's block to completion.
func (it *Interp) Run(prog *ast.Program) error {
	return it.block(prog.Block)
}

// block declares prog's constants, variables, and procedures into the
// current scope (in source order, exactly as vm's block lowering does),
// then executes the block's single statement.
func (it *Interp) block(b *ast.Block) error {
	for _, c := range b.Consts {
		if err := it.env.Declare(c.Ident, symtab.KindConst, c.Value); err != nil {
			return it.wrap(err)
		}
	}
	for _, v := range b.Vars {
		if err := it.env.Declare(v.Ident, symtab.KindVar, 0); err != nil {
			return it.wrap(err)
		}
	}
	for _, proc := range b.Procs {
		if err := it.env.DeclareWithExtra(proc.Ident, symtab.KindProc, 0, proc); err != nil {
			return it.wrap(err)
		}
	}
	return it.exec(b.Stmt)
}

func (it *Interp) trc(format string, args ...interface{}) {
	if it.trace != nil {
		it.trace.Record(0, fmt.Sprintf(format, args...))
	}
}

func (it *Interp) exec(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.Assignment:
		v, err := it.eval(s.Expr)
		if err != nil {
			return err
		}
		entry, err := it.env.Lookup(s.Ident)
		if err != nil {
			return it.wrap(err)
		}
		if entry.Kind != symtab.KindVar {
			return it.wrap(ErrKindMismatch)
		}
		entry.Value = v
		entry.Initialized = true
		it.trc("%s := %d", s.Ident, v)
		return nil

	case *ast.Call:
		entry, err := it.env.Lookup(s.Ident)
		if err != nil {
			return it.wrap(err)
		}
		if entry.Kind != symtab.KindProc {
			return it.wrap(ErrKindMismatch)
		}
		proc, ok := entry.Extra.(*ast.Procedure)
		if !ok {
			return it.wrap(fmt.Errorf("procedure %q has no body", s.Ident))
		}
		it.env.Push()
		defer it.env.Pop()
		return it.block(proc.Block)

	case *ast.Read:
		var v int64
		if _, err := fmt.Fscan(it.in, &v); err != nil {
			return it.wrap(fmt.Errorf("reading input: %w", err))
		}
		entry, err := it.env.Lookup(s.Ident)
		if err != nil {
			return it.wrap(err)
		}
		if entry.Kind != symtab.KindVar {
			return it.wrap(ErrKindMismatch)
		}
		entry.Value = v
		entry.Initialized = true
		return nil

	case *ast.Write:
		v, err := it.eval(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintf(it.out, "%d\n", v)
		return nil

	case *ast.Begin:
		for _, child := range s.Body {
			if err := it.exec(child); err != nil {
				return err
			}
		}
		return nil

	case *ast.If:
		ok, err := it.condition(s.Cond)
		if err != nil {
			return err
		}
		if ok {
			return it.exec(s.Stmt)
		}
		return nil

	case *ast.While:
		for {
			ok, err := it.condition(s.Cond)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			if err := it.exec(s.Stmt); err != nil {
				return err
			}
		}

	default:
		return it.wrap(fmt.Errorf("astinterp: unhandled statement type %T", stmt))
	}
}

func (it *Interp) condition(cond ast.Condition) (bool, error) {
	switch c := cond.(type) {
	case *ast.OddCondition:
		v, err := it.eval(c.Expr)
		if err != nil {
			return false, err
		}
		return ((v%2)+2)%2 != 0, nil

	case *ast.ComparisonCondition:
		lhs, err := it.eval(c.Lhs)
		if err != nil {
			return false, err
		}
		rhs, err := it.eval(c.Rhs)
		if err != nil {
			return false, err
		}
		switch c.Op {
		case ast.RelEQ:
			return lhs == rhs, nil
		case ast.RelNE:
			return lhs != rhs, nil
		case ast.RelLT:
			return lhs < rhs, nil
		case ast.RelLE:
			return lhs <= rhs, nil
		case ast.RelGT:
			return lhs > rhs, nil
		case ast.RelGE:
			return lhs >= rhs, nil
		default:
			return false, it.wrap(fmt.Errorf("astinterp: invalid comparison operator %q", c.Op))
		}

	default:
		return false, it.wrap(fmt.Errorf("astinterp: unhandled condition type %T", cond))
	}
}

func (it *Interp) eval(expr *ast.Expression) (int64, error) {
	v, err := it.term(expr.Terms[0])
	if err != nil {
		return 0, err
	}
	if expr.Prefix == ast.OpSub {
		v = -v
	}
	for i, op := range expr.Ops {
		rhs, err := it.term(expr.Terms[i+1])
		if err != nil {
			return 0, err
		}
		if op == ast.OpAdd {
			v += rhs
		} else {
			v -= rhs
		}
	}
	return v, nil
}

func (it *Interp) term(t *ast.Term) (int64, error) {
	v, err := it.factor(t.Factors[0])
	if err != nil {
		return 0, err
	}
	for i, op := range t.Ops {
		rhs, err := it.factor(t.Factors[i+1])
		if err != nil {
			return 0, err
		}
		if op == ast.OpMul {
			v *= rhs
		} else {
			if rhs == 0 {
				return 0, it.wrap(ErrDivisionByZero)
			}
			v /= rhs
		}
	}
	return v, nil
}

func (it *Interp) factor(f ast.Factor) (int64, error) {
	switch fac := f.(type) {
	case *ast.IntegerFactor:
		return fac.Value, nil
	case *ast.IdentifierFactor:
		entry, err := it.env.Lookup(fac.Ident)
		if err != nil {
			return 0, it.wrap(err)
		}
		if entry.Kind == symtab.KindVar && !entry.Initialized {
			return 0, it.wrap(ErrUninitializedRead)
		}
		if entry.Kind == symtab.KindProc {
			return 0, it.wrap(ErrKindMismatch)
		}
		return entry.Value, nil
	case *ast.ParenFactor:
		return it.eval(fac.Expr)
	default:
		return 0, it.wrap(fmt.Errorf("astinterp: unhandled factor type %T", f))
	}
}

func (it *Interp) wrap(err error) error {
	return err
}
