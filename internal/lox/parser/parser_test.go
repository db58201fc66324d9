package parser_test

import (
	"bytes"
	"testing"

	"github.com/sdecook/glox/internal/lox/ast"
	"github.com/sdecook/glox/internal/lox/diag"
	"github.com/sdecook/glox/internal/lox/parser"
	"github.com/sdecook/glox/internal/lox/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) ([]ast.Stmt, *diag.Reporter) {
	t.Helper()
	var out bytes.Buffer
	r := diag.New(&out)
	toks := scanner.New(src, r).Scan()
	return parser.New(toks, r).Parse(), r
}

func TestParsePrecedence(t *testing.T) {
	stmts, r := parse(t, "1 + 2 * 3;")
	require.False(t, r.HadError())
	require.Len(t, stmts, 1)

	exprStmt := stmts[0].(*ast.Expression)
	bin := exprStmt.Expr.(*ast.Binary)
	assert.Equal(t, "+", bin.Op.Lexeme)

	right := bin.Right.(*ast.Binary)
	assert.Equal(t, "*", right.Op.Lexeme)
}

func TestParseClassWithSuperclassAndMethods(t *testing.T) {
	stmts, r := parse(t, `
		class Doughnut {
			cook() { print "Fry until golden."; }
		}
		class BostonCream < Doughnut {
			cook() { super.cook(); print "Glaze."; }
		}
	`)
	require.False(t, r.HadError())
	require.Len(t, stmts, 2)

	base := stmts[0].(*ast.Class)
	assert.Equal(t, "Doughnut", base.Name.Lexeme)
	assert.Nil(t, base.Superclass)
	require.Len(t, base.Methods, 1)
	assert.Equal(t, "cook", base.Methods[0].Name.Lexeme)

	sub := stmts[1].(*ast.Class)
	require.NotNil(t, sub.Superclass)
	assert.Equal(t, "Doughnut", sub.Superclass.Name.Lexeme)
}

func TestParseGetSetChain(t *testing.T) {
	stmts, r := parse(t, "egg.scramble().filling = yolk;")
	require.False(t, r.HadError())
	require.Len(t, stmts, 1)

	set := stmts[0].(*ast.Expression).Expr.(*ast.Set)
	assert.Equal(t, "filling", set.Name.Lexeme)
	_, ok := set.Object.(*ast.Call)
	assert.True(t, ok, "egg.scramble() should parse as a Call before the .filling get")
}

func TestParseInvalidAssignmentTargetReportsError(t *testing.T) {
	_, r := parse(t, "1 + 2 = 3;")
	assert.True(t, r.HadError())
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts, r := parse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	require.False(t, r.HadError())
	require.Len(t, stmts, 1)

	outer := stmts[0].(*ast.Block)
	require.Len(t, outer.Stmts, 2)
	_, isVar := outer.Stmts[0].(*ast.Var)
	assert.True(t, isVar)

	loop, ok := outer.Stmts[1].(*ast.While)
	require.True(t, ok)
	body := loop.Body.(*ast.Block)
	require.Len(t, body.Stmts, 2)
}

func TestParseSynchronizesAfterStrayToken(t *testing.T) {
	stmts, r := parse(t, "+; print 1;")
	assert.True(t, r.HadError())
	// synchronize discards the bad statement up to its semicolon and
	// resumes parsing cleanly from the next one.
	require.Len(t, stmts, 1)
	p := stmts[0].(*ast.Print)
	lit := p.Expr.(*ast.Literal)
	assert.Equal(t, 1.0, lit.Value)
}
