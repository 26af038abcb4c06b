package compiler

import (
	"fmt"
	"os"

	"blue/token"
)

// reporter accumulates compile errors with panic-mode resynchronization:
// the first error is printed and flips panicMode; subsequent errors are
// swallowed until synchronize() clears it. hadError survives the whole
// compilation unit and is what tells the caller whether to run the chunk.
type reporter struct {
	hadError   bool
	panicMode  bool
	out        *os.File
}

func newReporter() *reporter {
	return &reporter{out: os.Stderr}
}

func (r *reporter) errorAt(t token.Token, message string) {
	if r.panicMode {
		return
	}
	r.panicMode = true
	r.hadError = true

	where := fmt.Sprintf(" at '%s'", t.Lexeme)
	if t.Kind == token.EOF {
		where = " at end"
	} else if t.Kind == token.ERROR {
		where = ""
		message = t.Lexeme
	}
	fmt.Fprintf(r.out, "[line %d] Error%s: %s\n", t.Line, where, message)
}
