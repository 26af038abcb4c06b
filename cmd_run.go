package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"blue/interpreter"
)

// exit codes per the run/file CLI contract: 0 ok, 65 compile error, 70
// runtime error, 64 usage error.
const (
	exitOK           = 0
	exitCompileError = 65
	exitRuntimeError = 70
	exitUsageError   = 64
)

type runCmd struct{}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Execute a Blue source file" }
func (*runCmd) Usage() string {
	return `run <path>:
  Execute a Blue source file.
`
}
func (r *runCmd) SetFlags(f *flag.FlagSet) {}

func (r *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: blue run [file path]")
		return subcommands.ExitStatus(exitUsageError)
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read file: %v\n", err)
		return subcommands.ExitStatus(exitUsageError)
	}

	i := interpreter.Make()
	defer i.Close()

	switch i.Interpret(string(source)) {
	case interpreter.CompileError:
		return subcommands.ExitStatus(exitCompileError)
	case interpreter.RuntimeError:
		return subcommands.ExitStatus(exitRuntimeError)
	default:
		return subcommands.ExitStatus(exitOK)
	}
}
