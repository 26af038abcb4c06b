// Package compiler implements Blue's single-pass front end: a Pratt parser
// that emits bytecode directly as it recognizes grammar productions. There
// is no intermediate syntax tree; a token is parsed and turned into
// instructions in the same step.
package compiler

import (
	"strconv"

	"blue/chunk"
	"blue/lexer"
	"blue/token"
	"blue/value"
)

const maxLocals = 256

// Local tracks one lexically scoped variable bound to a stack slot. depth
// of -1 means the local has been declared but its initializer has not yet
// run, which is what lets resolveLocal reject `var x = x;` in a nested
// scope while still allowing it at global scope.
type Local struct {
	name  string
	depth int
}

// Compiler holds everything needed to turn one source unit into one Chunk.
// It is not reused across compilations.
type Compiler struct {
	lex      *lexer.Lexer
	current  token.Token
	previous token.Token
	rep      *reporter

	chunk    *chunk.Chunk
	interner *value.Interner

	locals     []Local
	scopeDepth int
}

// Compile lexes and compiles source into a Chunk, using interner for every
// string constant and variable name it emits. It returns the chunk and
// whether compilation succeeded; on failure the chunk's contents are not
// meant to be run.
func Compile(source string, interner *value.Interner) (*chunk.Chunk, bool) {
	c := &Compiler{
		lex:      lexer.New(source),
		rep:      newReporter(),
		chunk:    chunk.New(),
		interner: interner,
	}

	c.advance()
	for !c.match(token.EOF) {
		c.declaration()
	}
	c.emitReturn()

	return c.chunk, !c.rep.hadError
}

// --- token stream -----------------------------------------------------

func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.lex.NextToken()
		if c.current.Kind != token.ERROR {
			break
		}
		c.rep.errorAt(c.current, c.current.Lexeme)
	}
}

func (c *Compiler) check(kind token.Kind) bool {
	return c.current.Kind == kind
}

func (c *Compiler) match(kind token.Kind) bool {
	if !c.check(kind) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(kind token.Kind, message string) {
	if c.current.Kind == kind {
		c.advance()
		return
	}
	c.rep.errorAt(c.current, message)
}

func (c *Compiler) errorAtCurrent(message string) {
	c.rep.errorAt(c.current, message)
}

func (c *Compiler) errorAtPrevious(message string) {
	c.rep.errorAt(c.previous, message)
}

// --- bytecode emission -------------------------------------------------

func (c *Compiler) emitByte(b byte) {
	c.chunk.WriteByte(b, c.previous.Line)
}

func (c *Compiler) emitOpcode(op chunk.Opcode) {
	c.chunk.WriteOpcode(op, c.previous.Line)
}

func (c *Compiler) emitOpcodeByte(op chunk.Opcode, operand byte) {
	c.emitOpcode(op)
	c.emitByte(operand)
}

func (c *Compiler) emitReturn() {
	c.emitOpcode(chunk.OP_RETURN)
}

// emitJump writes op followed by a two-byte placeholder and returns the
// offset of the placeholder, to be filled in later by patchJump.
func (c *Compiler) emitJump(op chunk.Opcode) int {
	c.emitOpcode(op)
	c.emitByte(0xff)
	c.emitByte(0xff)
	return len(c.chunk.Code) - 2
}

func (c *Compiler) patchJump(offset int) {
	jump := len(c.chunk.Code) - offset - 2
	if jump > chunk.MaxJump {
		c.errorAtPrevious("This code body is too large.")
		return
	}
	c.chunk.PatchUint16(offset, jump)
}

func (c *Compiler) emitLoop(loopStart int) {
	c.emitOpcode(chunk.OP_LOOP)
	offset := len(c.chunk.Code) - loopStart + 2
	if offset > chunk.MaxJump {
		c.errorAtPrevious("This loop's body is too large.")
	}
	c.chunk.WriteUint16(offset, c.previous.Line)
}

// makeConstant appends v to the chunk's constant pool, enforcing the
// one-byte index limit.
func (c *Compiler) makeConstant(v value.Value) byte {
	if len(c.chunk.Constants) >= chunk.MaxConstants {
		c.errorAtPrevious("Too many literals in one chunk.")
		return 0
	}
	return byte(c.chunk.AddConstant(v))
}

func (c *Compiler) emitConstant(v value.Value) {
	c.emitOpcodeByte(chunk.OP_CONSTANT, c.makeConstant(v))
}

// --- expressions --------------------------------------------------------

func (c *Compiler) expression() {
	c.parsePrecedence(PREC_ASSIGNMENT)
}

func (c *Compiler) parsePrecedence(prec Precedence) {
	c.advance()
	prefix := getRule(c.previous.Kind).prefix
	if prefix == nil {
		c.errorAtPrevious("Expected an expression.")
		return
	}

	canAssign := prec <= PREC_ASSIGNMENT
	prefix(c, canAssign)

	for prec <= getRule(c.current.Kind).precedence {
		c.advance()
		infix := getRule(c.previous.Kind).infix
		infix(c, canAssign)
	}

	if canAssign && c.match(token.EQUAL) {
		c.errorAtPrevious("Invalid assignment target.")
	}
}

func number(c *Compiler, _ bool) {
	n, _ := strconv.ParseFloat(c.previous.Lexeme, 64)
	c.emitConstant(value.Number(n))
}

func stringLiteral(c *Compiler, _ bool) {
	raw := c.previous.Lexeme
	s := c.interner.CopyString(raw[1 : len(raw)-1])
	c.emitConstant(value.Obj(s))
}

func literal(c *Compiler, _ bool) {
	switch c.previous.Kind {
	case token.FALSE:
		c.emitOpcode(chunk.OP_FALSE)
	case token.TRUE:
		c.emitOpcode(chunk.OP_TRUE)
	case token.NIL:
		c.emitOpcode(chunk.OP_NIL)
	}
}

func grouping(c *Compiler, _ bool) {
	c.expression()
	c.consume(token.RPAREN, "Expect ')' after expression.")
}

func unary(c *Compiler, _ bool) {
	opKind := c.previous.Kind
	c.parsePrecedence(PREC_UNARY)

	switch opKind {
	case token.MINUS:
		c.emitOpcode(chunk.OP_NEGATE)
	case token.BANG:
		c.emitOpcode(chunk.OP_NOT)
	}
}

func binary(c *Compiler, _ bool) {
	opKind := c.previous.Kind
	rule := getRule(opKind)
	c.parsePrecedence(rule.precedence + 1)

	switch opKind {
	case token.PLUS:
		c.emitOpcode(chunk.OP_ADD)
	case token.MINUS:
		c.emitOpcode(chunk.OP_SUBTRACT)
	case token.STAR:
		c.emitOpcode(chunk.OP_MULTIPLY)
	case token.SLASH:
		c.emitOpcode(chunk.OP_DIVIDE)
	case token.CARET:
		c.emitOpcode(chunk.OP_EXPONENT)
	case token.EQUAL_EQUAL:
		c.emitOpcode(chunk.OP_EQUAL)
	case token.BANG_EQUAL:
		c.emitOpcode(chunk.OP_EQUAL)
		c.emitOpcode(chunk.OP_NOT)
	case token.GREATER:
		c.emitOpcode(chunk.OP_GREATER)
	case token.GREATER_EQUAL:
		c.emitOpcode(chunk.OP_LESS)
		c.emitOpcode(chunk.OP_NOT)
	case token.LESS:
		c.emitOpcode(chunk.OP_LESS)
	case token.LESS_EQUAL:
		c.emitOpcode(chunk.OP_GREATER)
		c.emitOpcode(chunk.OP_NOT)
	}
}

func and_(c *Compiler, _ bool) {
	endJump := c.emitJump(chunk.OP_JUMP_IF_FALSE)
	c.emitOpcode(chunk.OP_POP)
	c.parsePrecedence(PREC_AND)
	c.patchJump(endJump)
}

func or_(c *Compiler, _ bool) {
	elseJump := c.emitJump(chunk.OP_JUMP_IF_FALSE)
	endJump := c.emitJump(chunk.OP_JUMP)
	c.patchJump(elseJump)
	c.emitOpcode(chunk.OP_POP)
	c.parsePrecedence(PREC_OR)
	c.patchJump(endJump)
}

func variable(c *Compiler, canAssign bool) {
	c.namedVariable(c.previous, canAssign)
}

func (c *Compiler) namedVariable(name token.Token, canAssign bool) {
	var getOp, setOp chunk.Opcode
	slot := c.resolveLocal(name.Lexeme)

	if slot != -1 {
		getOp, setOp = chunk.OP_GET_LOCAL, chunk.OP_SET_LOCAL
	} else {
		getOp, setOp = chunk.OP_GET_GLOBAL, chunk.OP_SET_GLOBAL
		slot = int(c.identifierConstant(name.Lexeme))
	}

	if canAssign && c.match(token.EQUAL) {
		c.expression()
		c.emitOpcodeByte(setOp, byte(slot))
		return
	}
	c.emitOpcodeByte(getOp, byte(slot))
}

// --- statements & declarations ------------------------------------------

func (c *Compiler) declaration() {
	if c.match(token.VAR) {
		c.varDeclaration()
	} else {
		c.statement()
	}

	if c.rep.panicMode {
		c.synchronize()
	}
}

func (c *Compiler) varDeclaration() {
	global := c.parseVariable("Expect variable name.")

	if c.match(token.EQUAL) {
		c.expression()
	} else {
		c.emitOpcode(chunk.OP_NIL)
	}
	c.consume(token.SEMICOLON, "Expect ';' after variable declaration.")

	c.defineVariable(global)
}

func (c *Compiler) statement() {
	switch {
	case c.match(token.PRINT):
		c.printStatement()
	case c.match(token.IF):
		c.ifStatement()
	case c.match(token.WHILE):
		c.whileStatement()
	case c.match(token.FOR):
		c.forStatement()
	case c.match(token.LBRACE):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(token.SEMICOLON, "Expect ';' after value.")
	c.emitOpcode(chunk.OP_PRINT)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.SEMICOLON, "Expect ';' after expression.")
	c.emitOpcode(chunk.OP_POP)
}

func (c *Compiler) ifStatement() {
	c.consume(token.LPAREN, "Expect '(' after 'if'.")
	c.expression()
	c.consume(token.RPAREN, "Expect ')' after condition.")

	thenJump := c.emitJump(chunk.OP_JUMP_IF_FALSE)
	c.emitOpcode(chunk.OP_POP)
	c.statement()

	elseJump := c.emitJump(chunk.OP_JUMP)
	c.patchJump(thenJump)
	c.emitOpcode(chunk.OP_POP)

	if c.match(token.ELSE) {
		c.statement()
	}
	c.patchJump(elseJump)
}

func (c *Compiler) whileStatement() {
	loopStart := len(c.chunk.Code)
	c.consume(token.LPAREN, "Expect '(' after 'while'.")
	c.expression()
	c.consume(token.RPAREN, "Expect ')' after condition.")

	exitJump := c.emitJump(chunk.OP_JUMP_IF_FALSE)
	c.emitOpcode(chunk.OP_POP)
	c.statement()
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emitOpcode(chunk.OP_POP)
}

func (c *Compiler) forStatement() {
	c.beginScope()
	c.consume(token.LPAREN, "Expect '(' after 'for'.")

	switch {
	case c.match(token.SEMICOLON):
		// no initializer
	case c.match(token.VAR):
		c.varDeclaration()
	default:
		c.expressionStatement()
	}

	loopStart := len(c.chunk.Code)
	exitJump := -1
	if !c.match(token.SEMICOLON) {
		c.expression()
		c.consume(token.SEMICOLON, "Expect ';' after loop condition.")
		exitJump = c.emitJump(chunk.OP_JUMP_IF_FALSE)
		c.emitOpcode(chunk.OP_POP)
	}

	if !c.match(token.RPAREN) {
		bodyJump := c.emitJump(chunk.OP_JUMP)
		incrementStart := len(c.chunk.Code)
		c.expression()
		c.emitOpcode(chunk.OP_POP)
		c.consume(token.RPAREN, "Expect ')' after for clauses.")

		c.emitLoop(loopStart)
		loopStart = incrementStart
		c.patchJump(bodyJump)
	}

	c.statement()
	c.emitLoop(loopStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emitOpcode(chunk.OP_POP)
	}
	c.endScope()
}

func (c *Compiler) block() {
	for !c.check(token.RBRACE) && !c.check(token.EOF) {
		c.declaration()
	}
	c.consume(token.RBRACE, "Expect '}' after block.")
}

func (c *Compiler) beginScope() {
	c.scopeDepth++
}

func (c *Compiler) endScope() {
	c.scopeDepth--
	for len(c.locals) > 0 && c.locals[len(c.locals)-1].depth > c.scopeDepth {
		c.emitOpcode(chunk.OP_POP)
		c.locals = c.locals[:len(c.locals)-1]
	}
}

// --- variable resolution --------------------------------------------------

func (c *Compiler) identifierConstant(name string) byte {
	return c.makeConstant(value.Obj(c.interner.CopyString(name)))
}

func (c *Compiler) addLocal(name string) {
	if len(c.locals) >= maxLocals {
		c.errorAtPrevious("Too many local variables in function.")
		return
	}
	c.locals = append(c.locals, Local{name: name, depth: -1})
}

func (c *Compiler) declareVariable(name token.Token) {
	if c.scopeDepth == 0 {
		return
	}

	for i := len(c.locals) - 1; i >= 0; i-- {
		local := c.locals[i]
		if local.depth != -1 && local.depth < c.scopeDepth {
			break
		}
		if local.name == name.Lexeme {
			c.errorAtPrevious("Variable already defined")
		}
	}

	c.addLocal(name.Lexeme)
}

func (c *Compiler) parseVariable(message string) byte {
	c.consume(token.IDENTIFIER, message)

	name := c.previous
	c.declareVariable(name)
	if c.scopeDepth > 0 {
		return 0
	}
	return c.identifierConstant(name.Lexeme)
}

func (c *Compiler) defineVariable(global byte) {
	if c.scopeDepth > 0 {
		c.locals[len(c.locals)-1].depth = c.scopeDepth
		return
	}
	c.emitOpcodeByte(chunk.OP_DEFINE_GLOBAL, global)
}

func (c *Compiler) resolveLocal(name string) int {
	for i := len(c.locals) - 1; i >= 0; i-- {
		if c.locals[i].name == name {
			if c.locals[i].depth == -1 {
				c.errorAtPrevious("Can't read local variable in initializer")
			}
			return i
		}
	}
	return -1
}

// --- panic-mode recovery -------------------------------------------------

func (c *Compiler) synchronize() {
	c.rep.panicMode = false

	for c.current.Kind != token.EOF {
		if c.previous.Kind == token.SEMICOLON {
			return
		}
		switch c.current.Kind {
		case token.CLASS, token.FUNC, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		c.advance()
	}
}
