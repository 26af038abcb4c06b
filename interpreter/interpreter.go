// Package interpreter glues the lexer, compiler and VM behind the single
// Interpret entry point the CLI front ends call.
package interpreter

import (
	"io"

	"blue/compiler"
	"blue/value"
	"blue/vm"
)

// Result classifies the outcome of one Interpret call, mirroring the three
// exit-code buckets the command-line front end reports.
type Result int

const (
	OK Result = iota
	CompileError
	RuntimeError
)

// Interpreter owns a VM whose globals, interner and object heap persist
// across calls, so a REPL session sees variables defined on earlier lines.
type Interpreter struct {
	vm       *vm.VM
	interner *value.Interner
}

// Make creates an Interpreter with a fresh VM and string heap.
func Make() *Interpreter {
	interner := value.NewInterner()
	return &Interpreter{vm: vm.New(interner), interner: interner}
}

// Interpret compiles source and, on success, runs it on the Interpreter's
// VM. Compile errors are reported by the compiler itself to stderr;
// runtime errors are reported by the VM the same way.
func (i *Interpreter) Interpret(source string) Result {
	c, ok := compiler.Compile(source, i.interner)
	if !ok {
		return CompileError
	}

	if err := i.vm.Run(c); err != nil {
		return RuntimeError
	}
	return OK
}

// Close releases the Interpreter's heap. Call it once, when the session
// (REPL or single-file run) ends.
func (i *Interpreter) Close() {
	i.vm.Release()
}

// SetOutput redirects where print statements write, in place of stdout.
func (i *Interpreter) SetOutput(w io.Writer) {
	i.vm.SetOutput(w)
}
