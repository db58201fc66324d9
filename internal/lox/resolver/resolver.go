// Package resolver implements the static lexical-scope analysis pass
// described in spec.md §4.3: it binds each variable/this/super use to
// the hop depth the evaluator should use to reach its defining scope.
package resolver

import (
	"github.com/sdecook/glox/internal/lox/ast"
	"github.com/sdecook/glox/internal/lox/diag"
	"github.com/sdecook/glox/internal/lox/token"
)

type functionType int

const (
	funcNone functionType = iota
	funcFunction
	funcInitializer
	funcMethod
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// scope maps a name to whether its declaration has finished (false while
// its own initializer is being resolved).
type scope map[string]bool

// Resolver walks a parsed program and produces a table of resolution
// distances, keyed by the ID of each Variable/Assign/This/Super node.
type Resolver struct {
	reporter *diag.Reporter
	scopes   []scope
	locals   map[int]int
	curFunc  functionType
	curClass classType
}

// New creates a Resolver that reports static errors to r.
func New(r *diag.Reporter) *Resolver {
	return &Resolver{reporter: r, locals: make(map[int]int)}
}

// Resolve walks stmts and returns the resolution table. Static errors are
// reported to the Resolver's Reporter; resolution continues past them.
func (r *Resolver) Resolve(stmts []ast.Stmt) map[int]int {
	r.resolveStmts(stmts)
	return r.locals
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(s.Stmts)
		r.endScope()
	case *ast.Var:
		r.declare(s.Name)
		if s.Init != nil {
			r.resolveExpr(s.Init)
		}
		r.define(s.Name)
	case *ast.Function:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, funcFunction)
	case *ast.Class:
		r.resolveClass(s)
	case *ast.Expression:
		r.resolveExpr(s.Expr)
	case *ast.If:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.Print:
		r.resolveExpr(s.Expr)
	case *ast.Return:
		if r.curFunc == funcNone {
			r.reporter.ResolveError(s.Keyword.Line, s.Keyword.Lexeme, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.curFunc == funcInitializer {
				r.reporter.ResolveError(s.Keyword.Line, s.Keyword.Lexeme, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}
	case *ast.While:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)
	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *Resolver) resolveClass(c *ast.Class) {
	enclosingClass := r.curClass
	r.curClass = classClass

	r.declare(c.Name)
	r.define(c.Name)

	if c.Superclass != nil {
		if c.Superclass.Name.Lexeme == c.Name.Lexeme {
			r.reporter.ResolveError(c.Superclass.Name.Line, c.Superclass.Name.Lexeme, "A class can't inherit from itself.")
		}
		r.curClass = classSubclass
		r.resolveExpr(c.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range c.Methods {
		typ := funcMethod
		if method.Name.Lexeme == "init" {
			typ = funcInitializer
		}
		r.resolveFunction(method, typ)
	}

	r.endScope()
	if c.Superclass != nil {
		r.endScope()
	}

	r.curClass = enclosingClass
}

func (r *Resolver) resolveFunction(fn *ast.Function, typ functionType) {
	enclosingFunc := r.curFunc
	r.curFunc = typ

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.curFunc = enclosingFunc
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, declared := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; declared && !defined {
				r.reporter.ResolveError(e.Name.Line, e.Name.Lexeme, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e.ID, e.Name.Lexeme)
	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e.ID, e.Name.Lexeme)
	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Grouping:
		r.resolveExpr(e.Inner)
	case *ast.Literal:
		// nothing to resolve
	case *ast.Unary:
		r.resolveExpr(e.Right)
	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Args {
			r.resolveExpr(arg)
		}
	case *ast.Get:
		r.resolveExpr(e.Object)
	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *ast.This:
		if r.curClass == classNone {
			r.reporter.ResolveError(e.Keyword.Line, e.Keyword.Lexeme, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e.ID, e.Keyword.Lexeme)
	case *ast.Super:
		switch r.curClass {
		case classNone:
			r.reporter.ResolveError(e.Keyword.Line, e.Keyword.Lexeme, "Can't use 'super' outside of a class.")
			return
		case classClass:
			r.reporter.ResolveError(e.Keyword.Line, e.Keyword.Lexeme, "Can't use 'super' in a class with no superclass.")
			return
		}
		r.resolveLocal(e.ID, e.Keyword.Lexeme)
	default:
		panic("resolver: unhandled expression type")
	}
}

func (r *Resolver) resolveLocal(id int, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals[id] = len(r.scopes) - 1 - i
			return
		}
	}
	// Unresolved: treated as a global by the interpreter.
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	s := r.scopes[len(r.scopes)-1]
	if _, ok := s[name.Lexeme]; ok {
		r.reporter.ResolveError(name.Line, name.Lexeme, "Already a variable with this name in this scope.")
	}
	s[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, scope{}) }

func (r *Resolver) endScope() { r.scopes = r.scopes[:len(r.scopes)-1] }
