package lexer

import (
	"testing"

	"blue/token"
)

func scanAll(source string) []token.Token {
	l := New(source)
	var out []token.Token
	for {
		t := l.NextToken()
		out = append(out, t)
		if t.Kind == token.EOF {
			return out
		}
	}
}

func TestNextTokenPunctuationAndOperators(t *testing.T) {
	source := `(){},.;^ - + / * ! != = == < <= > >=`
	want := []token.Kind{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.COMMA,
		token.DOT, token.SEMICOLON, token.CARET, token.MINUS, token.PLUS,
		token.SLASH, token.STAR, token.BANG, token.BANG_EQUAL, token.EQUAL,
		token.EQUAL_EQUAL, token.LESS, token.LESS_EQUAL, token.GREATER,
		token.GREATER_EQUAL, token.EOF,
	}
	got := scanAll(source)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i, k := range want {
		if got[i].Kind != k {
			t.Errorf("token %d: kind = %v, want %v", i, got[i].Kind, k)
		}
	}
}

func TestNextTokenNumbers(t *testing.T) {
	for _, tc := range []string{"0", "123", "3.14", "0.5"} {
		toks := scanAll(tc)
		if toks[0].Kind != token.NUMBER || toks[0].Lexeme != tc {
			t.Errorf("scan(%q) = %+v, want NUMBER %q", tc, toks[0], tc)
		}
	}
}

func TestNextTokenStringLiteral(t *testing.T) {
	toks := scanAll(`"hello world"`)
	if toks[0].Kind != token.STRING || toks[0].Lexeme != `"hello world"` {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestNextTokenUnterminatedString(t *testing.T) {
	toks := scanAll(`"hello`)
	if toks[0].Kind != token.ERROR || toks[0].Lexeme != "Unterminated string." {
		t.Fatalf("got %+v, want ERROR Unterminated string.", toks[0])
	}
}

func TestNextTokenIdentifiersAndKeywords(t *testing.T) {
	toks := scanAll("foo bar123 _x if while print")
	wantKinds := []token.Kind{
		token.IDENTIFIER, token.IDENTIFIER, token.IDENTIFIER,
		token.IF, token.WHILE, token.PRINT, token.EOF,
	}
	for i, k := range wantKinds {
		if toks[i].Kind != k {
			t.Errorf("token %d: kind = %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestNextTokenSkipsCommentsAndTracksLines(t *testing.T) {
	source := "var x = 1; // a comment\nvar y = 2;"
	toks := scanAll(source)
	var secondVarLine int
	count := 0
	for _, tok := range toks {
		if tok.Kind == token.VAR {
			count++
			if count == 2 {
				secondVarLine = tok.Line
			}
		}
	}
	if secondVarLine != 2 {
		t.Errorf("second var on line %d, want 2", secondVarLine)
	}
}

func TestNextTokenEOFRepeats(t *testing.T) {
	l := New("")
	first := l.NextToken()
	second := l.NextToken()
	if first.Kind != token.EOF || second.Kind != token.EOF {
		t.Fatalf("expected repeated EOF, got %v then %v", first, second)
	}
}

func TestNextTokenUnexpectedCharacter(t *testing.T) {
	toks := scanAll("@")
	if toks[0].Kind != token.ERROR || toks[0].Lexeme != "Unexpected character." {
		t.Fatalf("got %+v", toks[0])
	}
}
