package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"blue/compiler"
	"blue/value"
)

type emitCmd struct{}

func (*emitCmd) Name() string     { return "emit" }
func (*emitCmd) Synopsis() string { return "Compile a source file and print its disassembled bytecode" }
func (*emitCmd) Usage() string {
	return `emit <path>:
  Compile a Blue source file and print its bytecode listing without running it.
`
}
func (r *emitCmd) SetFlags(f *flag.FlagSet) {}

func (r *emitCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: blue emit [file path]")
		return subcommands.ExitStatus(exitUsageError)
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read file: %v\n", err)
		return subcommands.ExitStatus(exitUsageError)
	}

	interner := value.NewInterner()
	c, ok := compiler.Compile(string(source), interner)
	if !ok {
		return subcommands.ExitStatus(exitCompileError)
	}

	fmt.Print(c.Disassemble(args[0]))
	return subcommands.ExitStatus(exitOK)
}
