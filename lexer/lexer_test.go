package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type tokenCase struct {
	Input    string
	Expected []Token
}

func collect(src string) []Token {
	l := New(src)
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks
		}
	}
}

func tok(typ TokenType, lit string) Token {
	var literal []rune
	if lit != "" {
		literal = []rune(lit)
	}
	return Token{Type: typ, Literal: literal}
}

// stripPositions drops Row/Col so tests can compare type+literal only.
func stripPositions(toks []Token) []Token {
	out := make([]Token, len(toks))
	for i, t := range toks {
		out[i] = Token{Type: t.Type, Literal: t.Literal}
	}
	return out
}

func TestLexerTokens(t *testing.T) {
	tests := []tokenCase{
		{
			Input: `123 + 2 - 12`,
			Expected: []Token{
				tok(INTEGER, "123"), tok(PLUS, ""), tok(INTEGER, "2"),
				tok(MINUS, ""), tok(INTEGER, "12"), tok(EOF, ""),
			},
		},
		{
			Input: `{ } + [] abc123 _under`,
			Expected: []Token{
				tok(LBRACE, ""), tok(RBRACE, ""), tok(PLUS, ""),
				tok(LBRACKET, ""), tok(RBRACKET, ""),
				tok(IDENTIFIER, "abc123"), tok(IDENTIFIER, "_under"),
				tok(EOF, ""),
			},
		},
		{
			Input: `<= >= == != && || !`,
			Expected: []Token{
				tok(LE, ""), tok(GE, ""), tok(EQ, ""), tok(NEQ, ""),
				tok(AND, ""), tok(OR, ""), tok(NOT, ""), tok(EOF, ""),
			},
		},
		{
			Input: `var if else for while function return true false null`,
			Expected: []Token{
				tok(VAR, ""), tok(IF, ""), tok(ELSE, ""), tok(FOR, ""),
				tok(WHILE, ""), tok(FUNCTION, ""), tok(RETURN, ""),
				tok(TRUE, ""), tok(FALSE, ""), tok(NULL, ""), tok(EOF, ""),
			},
		},
		{
			Input:    `3.14 1e10 2.5e-3 42`,
			Expected: []Token{tok(FLOAT, "3.14"), tok(FLOAT, "1e10"), tok(FLOAT, "2.5e-3"), tok(INTEGER, "42"), tok(EOF, "")},
		},
		{
			Input:    `123.`,
			Expected: []Token{tok(FLOAT, "123."), tok(EOF, "")},
		},
		{
			Input:    `"hello\nworld" "é"`,
			Expected: []Token{tok(STRING, "hello\nworld"), tok(STRING, "é"), tok(EOF, "")},
		},
		{
			Input:    `// a comment
123`,
			Expected: []Token{tok(INTEGER, "123"), tok(EOF, "")},
		},
		{
			Input:    `/* block \n comment */ 7`,
			Expected: []Token{tok(INTEGER, "7"), tok(EOF, "")},
		},
	}

	for _, tc := range tests {
		got := stripPositions(collect(tc.Input))
		assert.Equal(t, tc.Expected, got, "input: %q", tc.Input)
	}
}

func TestLexerUnknownOnLoneAmpersandOrPipe(t *testing.T) {
	assert.Equal(t, UNKNOWN, New("&").NextToken().Type)
	assert.Equal(t, UNKNOWN, New("|").NextToken().Type)
}

func TestLexerUnknownOnUnterminatedString(t *testing.T) {
	assert.Equal(t, UNKNOWN, New(`"abc`).NextToken().Type)
}

func TestLexerPositions(t *testing.T) {
	l := New("ab\ncd")
	first := l.NextToken()
	assert.Equal(t, 1, first.Row)
	assert.Equal(t, 1, first.Col)
	second := l.NextToken()
	assert.Equal(t, 2, second.Row)
	assert.Equal(t, 1, second.Col)
}

func TestLexerUnicodeIdentifierRejectedButStringAccepted(t *testing.T) {
	assert.Equal(t, UNKNOWN, New("é").NextToken().Type)

	toks := collect(`"café"`)
	assert.Equal(t, STRING, toks[0].Type)
	assert.Equal(t, []rune("café"), toks[0].Literal)
}
