package compiler

import "blue/token"

// Precedence orders binding strength low to high. parsePrecedence only
// consumes infix operators whose precedence is >= the level passed in.
type Precedence int

const (
	PREC_NONE Precedence = iota
	PREC_ASSIGNMENT
	PREC_OR
	PREC_AND
	PREC_EQUALITY
	PREC_COMPARISON
	PREC_TERM
	PREC_FACTOR
	PREC_UNARY
	PREC_CALL
	PREC_PRIMARY
)

// parseFn is either a prefix or infix handler. canAssign is threaded
// through so a primary expression deep in a larger infix chain can reject
// an errant `=` target.
type parseFn func(c *Compiler, canAssign bool)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

// rules is the static Pratt table keyed by token kind. Exponent (CARET) is
// bound at PREC_FACTOR with the same left-associative binary handler as
// '*' and '/' — the source this VM is modeled on never special-cased it to
// be right-associative despite the name, and that quirk is preserved here.
var rules = map[token.Kind]parseRule{
	token.LPAREN:        {prefix: grouping},
	token.MINUS:         {prefix: unary, infix: binary, precedence: PREC_TERM},
	token.PLUS:          {infix: binary, precedence: PREC_TERM},
	token.SLASH:         {infix: binary, precedence: PREC_FACTOR},
	token.STAR:          {infix: binary, precedence: PREC_FACTOR},
	token.CARET:         {infix: binary, precedence: PREC_FACTOR},
	token.BANG:          {prefix: unary},
	token.BANG_EQUAL:    {infix: binary, precedence: PREC_EQUALITY},
	token.EQUAL_EQUAL:   {infix: binary, precedence: PREC_EQUALITY},
	token.GREATER:       {infix: binary, precedence: PREC_COMPARISON},
	token.GREATER_EQUAL: {infix: binary, precedence: PREC_COMPARISON},
	token.LESS:          {infix: binary, precedence: PREC_COMPARISON},
	token.LESS_EQUAL:    {infix: binary, precedence: PREC_COMPARISON},
	token.IDENTIFIER:    {prefix: variable},
	token.STRING:        {prefix: stringLiteral},
	token.NUMBER:        {prefix: number},
	token.AND:           {infix: and_, precedence: PREC_AND},
	token.OR:            {infix: or_, precedence: PREC_OR},
	token.FALSE:         {prefix: literal},
	token.TRUE:          {prefix: literal},
	token.NIL:           {prefix: literal},
}

// ruleTable is what getRule reads. It is filled from rules in init rather
// than referencing rules directly, because rules' handlers (grouping ->
// expression -> parsePrecedence -> getRule) would otherwise make rules
// depend on itself, which Go rejects as an initialization cycle.
var ruleTable map[token.Kind]parseRule

func init() {
	ruleTable = rules
}

func getRule(kind token.Kind) parseRule {
	return ruleTable[kind]
}
