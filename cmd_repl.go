package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"blue/interpreter"
	"blue/lexer"
	"blue/token"
)

type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive Blue session" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive Blue session.
`
}
func (r *replCmd) SetFlags(f *flag.FlagSet) {}

func (r *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rl, err := readline.New("> ")
	if err != nil {
		fmt.Println(err)
		return subcommands.ExitStatus(exitUsageError)
	}
	defer rl.Close()

	i := interpreter.Make()
	defer i.Close()

	var buffer strings.Builder

	for {
		if buffer.Len() > 0 {
			rl.SetPrompt("... ")
		} else {
			rl.SetPrompt("> ")
		}

		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return subcommands.ExitStatus(exitOK)
		}
		if err != nil {
			fmt.Println(err)
			return subcommands.ExitStatus(exitOK)
		}

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}
		buffer.WriteString(line)
		source := buffer.String()

		if !inputComplete(source) {
			continue
		}

		i.Interpret(source)
		buffer.Reset()
	}
}

// inputComplete reports whether source has no unclosed '{' and doesn't end
// on a token that obviously expects more to follow, so the REPL can let a
// multi-line if/while/block statement span several readline prompts
// instead of erroring at the end of the first line.
func inputComplete(source string) bool {
	lex := lexer.New(source)

	depth := 0
	var last token.Token
	for {
		t := lex.NextToken()
		if t.Kind == token.EOF {
			break
		}
		if t.Kind == token.LBRACE {
			depth++
		}
		if t.Kind == token.RBRACE {
			depth--
		}
		last = t
	}

	if depth > 0 {
		return false
	}

	switch last.Kind {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.CARET,
		token.EQUAL, token.EQUAL_EQUAL, token.BANG_EQUAL,
		token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL,
		token.AND, token.OR, token.COMMA, token.LPAREN,
		token.IF, token.ELSE, token.WHILE, token.FOR, token.VAR, token.PRINT:
		return false
	}

	return true
}
