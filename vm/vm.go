/*
File    : pl0run/vm/vm.go
*/

// Package vm executes an ir.Program on a stack machine: an int64 value
// stack for expression evaluation, a symtab.Stack for identifier storage,
// and a parallel return-address stack pushed and popped by CALL/RET.
// Scoping is dynamic: CALL opens a fresh symtab scope for the callee's
// own VAR/CONST declarations rather than capturing the scope lexically
// active at the procedure's declaration site. Errors carry the active
// procedure-name activation chain rather than a bare message.
package vm

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pl0toolkit/pl0run/diag"
	"github.com/pl0toolkit/pl0run/ir"
	"github.com/pl0toolkit/pl0run/symtab"
)

// VM holds the mutable state of one execution of an ir.Program.
type VM struct {
	code ir.Program
	pc   int

	values  []int64
	returns []int
	env     *symtab.Stack

	callStack []string

	in    *bufio.Reader
	out   io.Writer
	trace *diag.Tracer
}

// Option configures a VM at construction time.
type Option func(*VM)

// WithInput overrides the reader INPUT draws integers from (default os.Stdin).
func WithInput(r io.Reader) Option {
	return func(vm *VM) { vm.in = bufio.NewReader(r) }
}

// WithOutput overrides the writer OUTPUT writes to (default os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(vm *VM) { vm.out = w }
}

// WithTracer attaches a diagnostic tracer; every executed instruction is
// recorded to it, kept separate from the program's own INPUT/OUTPUT.
func WithTracer(t *diag.Tracer) Option {
	return func(vm *VM) { vm.trace = t }
}

// New builds a VM ready to run code.
func New(code ir.Program, opts ...Option) *VM {
	vm := &VM{
		code: code,
		env:  symtab.NewStack(),
		in:   bufio.NewReader(os.Stdin),
		out:  os.Stdout,
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// Run executes code from the first instruction until HALT, or until a
// runtime error occurs.
func (vm *VM) Run() error {
	for {
		if vm.pc < 0 || vm.pc >= len(vm.code) {
			return vm.fail(fmt.Errorf("program counter %d out of range", vm.pc))
		}
		instr := vm.code[vm.pc]
		at := vm.pc
		vm.pc++

		if vm.trace != nil {
			vm.trace.Record(at, instr.String())
		}

		if err := vm.step(instr); err != nil {
			return err
		}
		if instr.Op == ir.HALT {
			return nil
		}
	}
}

func (vm *VM) step(instr ir.Instruction) error {
	switch instr.Op {
	case ir.LIT:
		vm.push(instr.IntArg)

	case ir.ADD, ir.SUB, ir.MUL, ir.DIV:
		rhs, err := vm.pop()
		if err != nil {
			return vm.fail(err)
		}
		lhs, err := vm.pop()
		if err != nil {
			return vm.fail(err)
		}
		result, err := arith(instr.Op, lhs, rhs)
		if err != nil {
			return vm.fail(err)
		}
		vm.push(result)

	case ir.NEG:
		v, err := vm.pop()
		if err != nil {
			return vm.fail(err)
		}
		vm.push(-v)

	case ir.EQ, ir.NE, ir.LT, ir.LE, ir.GT, ir.GE:
		rhs, err := vm.pop()
		if err != nil {
			return vm.fail(err)
		}
		lhs, err := vm.pop()
		if err != nil {
			return vm.fail(err)
		}
		vm.push(boolToInt(compare(instr.Op, lhs, rhs)))

	case ir.ODD:
		v, err := vm.pop()
		if err != nil {
			return vm.fail(err)
		}
		vm.push(((v % 2) + 2) % 2)

	case ir.LOAD:
		entry, err := vm.env.Lookup(instr.Name)
		if err != nil {
			return vm.fail(err)
		}
		if entry.Kind == symtab.KindProc {
			return vm.fail(ErrKindMismatch)
		}
		if entry.Kind == symtab.KindVar && !entry.Initialized {
			return vm.fail(ErrUninitializedRead)
		}
		vm.push(entry.Value)

	case ir.STORE:
		entry, err := vm.env.Lookup(instr.Name)
		if err != nil {
			return vm.fail(err)
		}
		if entry.Kind != symtab.KindVar {
			return vm.fail(ErrKindMismatch)
		}
		v, err := vm.pop()
		if err != nil {
			return vm.fail(err)
		}
		entry.Value = v
		entry.Initialized = true

	case ir.JMP:
		vm.pc = int(instr.IntArg)

	case ir.JPF:
		v, err := vm.pop()
		if err != nil {
			return vm.fail(err)
		}
		if v == 0 {
			vm.pc = int(instr.IntArg)
		}

	case ir.VAR:
		if err := vm.env.Declare(instr.Name, symtab.KindVar, 0); err != nil {
			return vm.fail(err)
		}

	case ir.CONST:
		v, err := vm.pop()
		if err != nil {
			return vm.fail(err)
		}
		if err := vm.env.Declare(instr.Name, symtab.KindConst, v); err != nil {
			return vm.fail(err)
		}

	case ir.PROC:
		if err := vm.env.Declare(instr.Name, symtab.KindProc, int64(vm.pc)); err != nil {
			return vm.fail(err)
		}
		vm.skipBody()

	case ir.CALL:
		entry, err := vm.env.Lookup(instr.Name)
		if err != nil {
			return vm.fail(err)
		}
		if entry.Kind != symtab.KindProc {
			return vm.fail(ErrKindMismatch)
		}
		vm.returns = append(vm.returns, vm.pc)
		vm.callStack = append(vm.callStack, instr.Name)
		vm.env.Push()
		vm.pc = int(entry.Value)

	case ir.RET:
		if len(vm.returns) == 0 {
			return vm.fail(fmt.Errorf("return with no active call"))
		}
		vm.env.Pop()
		last := len(vm.returns) - 1
		vm.pc = vm.returns[last]
		vm.returns = vm.returns[:last]
		vm.callStack = vm.callStack[:len(vm.callStack)-1]

	case ir.INPUT:
		var v int64
		if _, err := fmt.Fscan(vm.in, &v); err != nil {
			return vm.fail(fmt.Errorf("reading input: %w", err))
		}
		vm.push(v)

	case ir.OUTPUT:
		v, err := vm.pop()
		if err != nil {
			return vm.fail(err)
		}
		fmt.Fprintf(vm.out, "%d\n", v)

	case ir.HALT:
		// handled by Run's loop

	default:
		return vm.fail(fmt.Errorf("unhandled opcode %s", instr.Op))
	}
	return nil
}

// skipBody advances pc past a just-registered procedure's body, counting
// nested PROC/RET pairs so a procedure declaring procedures of its own is
// skipped correctly when reached by ordinary linear flow (CALL jumps
// directly into a body and never goes through this scan).
func (vm *VM) skipBody() {
	depth := 1
	for depth > 0 {
		switch vm.code[vm.pc].Op {
		case ir.PROC:
			depth++
		case ir.RET:
			depth--
		}
		vm.pc++
	}
}

func (vm *VM) push(v int64) {
	vm.values = append(vm.values, v)
}

func (vm *VM) pop() (int64, error) {
	if len(vm.values) == 0 {
		return 0, ErrStackUnderflow
	}
	last := len(vm.values) - 1
	v := vm.values[last]
	vm.values = vm.values[:last]
	return v, nil
}

func (vm *VM) fail(err error) error {
	frame := make([]string, len(vm.callStack))
	copy(frame, vm.callStack)
	return &RuntimeError{Err: err, PC: vm.pc, Frame: frame}
}

func arith(op ir.Opcode, lhs, rhs int64) (int64, error) {
	switch op {
	case ir.ADD:
		return lhs + rhs, nil
	case ir.SUB:
		return lhs - rhs, nil
	case ir.MUL:
		return lhs * rhs, nil
	case ir.DIV:
		if rhs == 0 {
			return 0, ErrDivisionByZero
		}
		return lhs / rhs, nil
	default:
		return 0, fmt.Errorf("not an arithmetic opcode: %s", op)
	}
}

func compare(op ir.Opcode, lhs, rhs int64) bool {
	switch op {
	case ir.EQ:
		return lhs == rhs
	case ir.NE:
		return lhs != rhs
	case ir.LT:
		return lhs < rhs
	case ir.LE:
		return lhs <= rhs
	case ir.GT:
		return lhs > rhs
	case ir.GE:
		return lhs >= rhs
	default:
		return false
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
