package scanner_test

import (
	"bytes"
	"testing"

	"github.com/sdecook/glox/internal/lox/diag"
	"github.com/sdecook/glox/internal/lox/scanner"
	"github.com/sdecook/glox/internal/lox/token"
	"github.com/stretchr/testify/assert"
)

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestScanPunctuationAndOperators(t *testing.T) {
	var out bytes.Buffer
	r := diag.New(&out)
	toks := scanner.New("(){},.-+;*!= == <= >=", r).Scan()

	assert.False(t, r.HadError())
	assert.Equal(t, []token.Kind{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon,
		token.Star, token.BangEqual, token.EqualEqual, token.LessEqual,
		token.GreaterEqual, token.EOF,
	}, kinds(toks))
}

func TestScanStringLiteralSpansLines(t *testing.T) {
	var out bytes.Buffer
	r := diag.New(&out)
	toks := scanner.New("\"a\nb\" print", r).Scan()

	assert.False(t, r.HadError())
	assert.Equal(t, token.String, toks[0].Kind)
	assert.Equal(t, "a\nb", toks[0].Literal)
	assert.Equal(t, 2, toks[1].Line, "token after a multi-line string should report the post-string line")
}

func TestScanUnterminatedStringReportsError(t *testing.T) {
	var out bytes.Buffer
	r := diag.New(&out)
	scanner.New(`"unterminated`, r).Scan()

	assert.True(t, r.HadError())
	assert.Contains(t, out.String(), "Unterminated string.")
}

func TestScanNumberLiteral(t *testing.T) {
	var out bytes.Buffer
	r := diag.New(&out)
	toks := scanner.New("123.45", r).Scan()

	assert.Equal(t, token.Number, toks[0].Kind)
	assert.Equal(t, 123.45, toks[0].Literal)
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	var out bytes.Buffer
	r := diag.New(&out)
	toks := scanner.New("class orchid", r).Scan()

	assert.Equal(t, token.Class, toks[0].Kind)
	assert.Equal(t, token.Identifier, toks[1].Kind, "orchid starts with a keyword prefix but must scan whole")
}

func TestScanUnexpectedCharacterReportsAndContinues(t *testing.T) {
	var out bytes.Buffer
	r := diag.New(&out)
	toks := scanner.New("1 @ 2", r).Scan()

	assert.True(t, r.HadError())
	// scanning continues past the bad character
	assert.Equal(t, []token.Kind{token.Number, token.Number, token.EOF}, kinds(toks))
}
