// Package scanner turns Lox source text into a token stream, per
// spec.md §4.1.
package scanner

import (
	"strconv"

	"github.com/sdecook/glox/internal/lox/diag"
	"github.com/sdecook/glox/internal/lox/token"
)

// Scanner converts source text into a list of tokens, reporting any
// lexical errors to its Reporter but continuing to scan afterward.
type Scanner struct {
	src      []byte
	reporter *diag.Reporter

	start, current int
	line           int
	tokens         []token.Token
}

// New creates a Scanner over src that reports lexical errors to r.
func New(src string, r *diag.Reporter) *Scanner {
	return &Scanner{src: []byte(src), reporter: r, line: 1}
}

// Scan consumes the whole source and returns its tokens, terminated by
// an EOF token.
func (s *Scanner) Scan() []token.Token {
	for !s.atEnd() {
		s.start = s.current
		s.scanToken()
	}
	s.tokens = append(s.tokens, token.Token{Kind: token.EOF, Line: s.line})
	return s.tokens
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case '(':
		s.add(token.LeftParen)
	case ')':
		s.add(token.RightParen)
	case '{':
		s.add(token.LeftBrace)
	case '}':
		s.add(token.RightBrace)
	case ',':
		s.add(token.Comma)
	case '.':
		s.add(token.Dot)
	case '-':
		s.add(token.Minus)
	case '+':
		s.add(token.Plus)
	case ';':
		s.add(token.Semicolon)
	case '*':
		s.add(token.Star)
	case '!':
		s.addMatch('=', token.BangEqual, token.Bang)
	case '=':
		s.addMatch('=', token.EqualEqual, token.Equal)
	case '<':
		s.addMatch('=', token.LessEqual, token.Less)
	case '>':
		s.addMatch('=', token.GreaterEqual, token.Greater)
	case '/':
		if s.match('/') {
			for s.peek() != '\n' && !s.atEnd() {
				s.advance()
			}
		} else {
			s.add(token.Slash)
		}
	case ' ', '\r', '\t':
		// ignore whitespace
	case '\n':
		s.line++
	case '"':
		s.scanString()
	default:
		switch {
		case isDigit(c):
			s.scanNumber()
		case isAlpha(c):
			s.scanIdentifier()
		default:
			s.reporter.ScanError(s.line, "Unexpected character: "+string(c))
		}
	}
}

func (s *Scanner) scanString() {
	startLine := s.line
	for s.peek() != '"' && !s.atEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}

	if s.atEnd() {
		s.reporter.ScanError(startLine, "Unterminated string.")
		return
	}

	s.advance() // the closing '"'

	value := string(s.src[s.start+1 : s.current-1])
	s.tokens = append(s.tokens, token.Token{
		Kind:    token.String,
		Lexeme:  string(s.src[s.start:s.current]),
		Literal: value,
		Line:    s.line,
	})
}

func (s *Scanner) scanNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance() // consume the '.'
		for isDigit(s.peek()) {
			s.advance()
		}
	}

	lexeme := string(s.src[s.start:s.current])
	value, _ := strconv.ParseFloat(lexeme, 64)
	s.tokens = append(s.tokens, token.Token{
		Kind:    token.Number,
		Lexeme:  lexeme,
		Literal: value,
		Line:    s.line,
	})
}

func (s *Scanner) scanIdentifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	lexeme := string(s.src[s.start:s.current])
	kind, ok := token.Keywords[lexeme]
	if !ok {
		kind = token.Identifier
	}
	s.add(kind)
}

func (s *Scanner) add(kind token.Kind) {
	s.tokens = append(s.tokens, token.Token{
		Kind:   kind,
		Lexeme: string(s.src[s.start:s.current]),
		Line:   s.line,
	})
}

func (s *Scanner) addMatch(next byte, ifMatch, otherwise token.Kind) {
	if s.match(next) {
		s.add(ifMatch)
	} else {
		s.add(otherwise)
	}
}

func (s *Scanner) advance() byte {
	c := s.src[s.current]
	s.current++
	return c
}

func (s *Scanner) match(expected byte) bool {
	if s.atEnd() || s.src[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.src) {
		return 0
	}
	return s.src[s.current+1]
}

func (s *Scanner) atEnd() bool {
	return s.current >= len(s.src)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }
