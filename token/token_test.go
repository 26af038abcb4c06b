package token

import "testing"

func TestKeywordsClassifyReservedWords(t *testing.T) {
	cases := map[string]Kind{
		"and": AND, "class": CLASS, "else": ELSE, "false": FALSE,
		"for": FOR, "func": FUNC, "if": IF, "nil": NIL, "or": OR,
		"print": PRINT, "return": RETURN, "super": SUPER, "this": THIS,
		"true": TRUE, "var": VAR, "while": WHILE,
	}
	for lexeme, want := range cases {
		got, ok := Keywords[lexeme]
		if !ok {
			t.Errorf("Keywords[%q] missing", lexeme)
			continue
		}
		if got != want {
			t.Errorf("Keywords[%q] = %v, want %v", lexeme, got, want)
		}
	}
}

func TestKeywordsExcludesPlainIdentifiers(t *testing.T) {
	for _, lexeme := range []string{"x", "foo", "classify", "printer"} {
		if _, ok := Keywords[lexeme]; ok {
			t.Errorf("Keywords[%q] unexpectedly present", lexeme)
		}
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: IDENTIFIER, Lexeme: "x", Line: 3}
	want := `Token{IDENTIFIER "x" line=3}`
	if got := tok.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
