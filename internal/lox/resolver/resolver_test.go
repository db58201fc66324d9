package resolver_test

import (
	"bytes"
	"testing"

	"github.com/sdecook/glox/internal/lox/ast"
	"github.com/sdecook/glox/internal/lox/diag"
	"github.com/sdecook/glox/internal/lox/parser"
	"github.com/sdecook/glox/internal/lox/resolver"
	"github.com/sdecook/glox/internal/lox/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, src string) ([]ast.Stmt, map[int]int, *diag.Reporter) {
	t.Helper()
	var out bytes.Buffer
	r := diag.New(&out)
	toks := scanner.New(src, r).Scan()
	stmts := parser.New(toks, r).Parse()
	require.False(t, r.HadError(), "fixture must parse cleanly: %s", out.String())
	locals := resolver.New(r).Resolve(stmts)
	return stmts, locals, r
}

func TestResolverBindsBlockLocalToDepthZero(t *testing.T) {
	stmts, locals, r := resolve(t, `
		var a = "global";
		{
			var a = "local";
			print a;
		}
	`)
	assert.False(t, r.HadError())

	block := stmts[1].(*ast.Block)
	printStmt := block.Stmts[1].(*ast.Print)
	variable := printStmt.Expr.(*ast.Variable)

	depth, ok := locals[variable.ID]
	require.True(t, ok)
	assert.Equal(t, 0, depth)
}

func TestResolverLeavesGlobalsUnresolved(t *testing.T) {
	stmts, locals, _ := resolve(t, `
		var a = "global";
		print a;
	`)
	printStmt := stmts[1].(*ast.Print)
	variable := printStmt.Expr.(*ast.Variable)

	_, ok := locals[variable.ID]
	assert.False(t, ok, "a top-level global reference should be left for the interpreter's global lookup")
}

func TestResolverRejectsSelfInitializerRead(t *testing.T) {
	_, _, r := resolve(t, `
		var a = "outer";
		{
			var a = a;
		}
	`)
	assert.True(t, r.HadError())
}

func TestResolverRejectsReturnOutsideFunction(t *testing.T) {
	var out bytes.Buffer
	r := diag.New(&out)
	toks := scanner.New("return 1;", r).Scan()
	stmts := parser.New(toks, r).Parse()
	require.False(t, r.HadError())

	resolver.New(r).Resolve(stmts)
	assert.True(t, r.HadError())
	assert.Contains(t, out.String(), "Can't return from top-level code.")
}

func TestResolverRejectsThisOutsideClass(t *testing.T) {
	var out bytes.Buffer
	r := diag.New(&out)
	toks := scanner.New("print this;", r).Scan()
	stmts := parser.New(toks, r).Parse()
	require.False(t, r.HadError())

	resolver.New(r).Resolve(stmts)
	assert.True(t, r.HadError())
}

func TestResolverRejectsClassInheritingFromItself(t *testing.T) {
	_, _, r := resolve(t, "class Oops < Oops {}")
	assert.True(t, r.HadError())
}

func TestResolverAcceptsSuperInSubclass(t *testing.T) {
	_, _, r := resolve(t, `
		class A { greet() { print "A"; } }
		class B < A { greet() { super.greet(); } }
	`)
	assert.False(t, r.HadError())
}
