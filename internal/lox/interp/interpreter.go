package interp

import (
	"fmt"
	"io"

	"github.com/sdecook/glox/internal/lox/ast"
	"github.com/sdecook/glox/internal/lox/diag"
	"github.com/sdecook/glox/internal/lox/token"
)

// runtimeError is the Interpreter's error category: it carries the
// offending token so the reporter can print the "[line L]" suffix
// spec.md §6 requires. It is a plain Go error, threaded back through
// every eval/exec call rather than panicked — the "Return" signal
// below, by contrast, is not an error at all and never becomes one.
type runtimeError struct {
	Tok token.Token
	Msg string
}

func (e *runtimeError) Error() string { return e.Msg }

func newRuntimeError(tok token.Token, format string, args ...any) error {
	return &runtimeError{Tok: tok, Msg: fmt.Sprintf(format, args...)}
}

// execResult is the non-local "Return" control-flow signal described in
// spec.md §4.5 and §9: a distinct mechanism from runtimeError, carrying
// a value (or none) out to the nearest enclosing Call.
type execResult struct {
	returned bool
	value    Value
}

var noResult = execResult{}

// Interpreter is the tree-walking evaluator. One instance can run
// multiple programs (or REPL lines) in sequence; globals persist
// between calls to Interpret, matching spec.md §5.
type Interpreter struct {
	globals  *Environment
	env      *Environment
	locals   map[int]int
	out      io.Writer
	reporter *diag.Reporter
}

// New creates an Interpreter that writes `print` output to out and
// reports runtime errors to reporter.
func New(out io.Writer, reporter *diag.Reporter) *Interpreter {
	globals := NewEnvironment(nil)
	defineGlobals(globals)
	return &Interpreter{globals: globals, env: globals, out: out, reporter: reporter}
}

// Interpret runs stmts using the resolution table locals (produced by
// the resolver). A runtime error is reported and stops evaluation of
// this call, but the Interpreter — and its globals — remain usable for
// a subsequent call, per spec.md §5.
func (i *Interpreter) Interpret(stmts []ast.Stmt, locals map[int]int) {
	// Node IDs are unique across parses, so earlier entries stay valid for
	// the functions and classes that previous calls defined.
	if i.locals == nil {
		i.locals = make(map[int]int)
	}
	for id, depth := range locals {
		i.locals[id] = depth
	}
	for _, stmt := range stmts {
		if _, err := i.execStmt(i.env, stmt); err != nil {
			if rerr, ok := err.(*runtimeError); ok {
				i.reporter.RuntimeError(rerr.Tok.Line, rerr.Msg)
			}
			return
		}
	}
}

func (i *Interpreter) execStmt(env *Environment, stmt ast.Stmt) (execResult, error) {
	switch s := stmt.(type) {
	case *ast.Expression:
		_, err := i.evalExpr(env, s.Expr)
		return noResult, err
	case *ast.Print:
		v, err := i.evalExpr(env, s.Expr)
		if err != nil {
			return noResult, err
		}
		fmt.Fprintln(i.out, Stringify(v))
		return noResult, nil
	case *ast.Var:
		var v Value
		if s.Init != nil {
			var err error
			v, err = i.evalExpr(env, s.Init)
			if err != nil {
				return noResult, err
			}
		}
		env.Define(s.Name.Lexeme, v)
		return noResult, nil
	case *ast.Block:
		return i.execBlock(s.Stmts, NewEnvironment(env))
	case *ast.If:
		cond, err := i.evalExpr(env, s.Cond)
		if err != nil {
			return noResult, err
		}
		if IsTruthy(cond) {
			return i.execStmt(env, s.Then)
		} else if s.Else != nil {
			return i.execStmt(env, s.Else)
		}
		return noResult, nil
	case *ast.While:
		for {
			cond, err := i.evalExpr(env, s.Cond)
			if err != nil {
				return noResult, err
			}
			if !IsTruthy(cond) {
				return noResult, nil
			}
			result, err := i.execStmt(env, s.Body)
			if err != nil || result.returned {
				return result, err
			}
		}
	case *ast.Function:
		fn := newFunction(s, env, false)
		env.Define(s.Name.Lexeme, fn)
		return noResult, nil
	case *ast.Return:
		var v Value
		if s.Value != nil {
			var err error
			v, err = i.evalExpr(env, s.Value)
			if err != nil {
				return noResult, err
			}
		}
		return execResult{returned: true, value: v}, nil
	case *ast.Class:
		return noResult, i.execClass(env, s)
	default:
		panic("interp: unhandled statement type")
	}
}

// execBlock implements spec.md §4.5's scoped-environment Block
// execution: the caller supplies the fresh child environment, and it is
// implicitly restored on every exit path because execStmt never mutates
// the caller's env reference — there is nothing to restore.
func (i *Interpreter) execBlock(stmts []ast.Stmt, env *Environment) (execResult, error) {
	for _, stmt := range stmts {
		result, err := i.execStmt(env, stmt)
		if err != nil || result.returned {
			return result, err
		}
	}
	return noResult, nil
}

// execClass implements spec.md §4.5's seven-step Class statement.
func (i *Interpreter) execClass(env *Environment, s *ast.Class) error {
	env.Define(s.Name.Lexeme, nil)

	var superclass *Class
	if s.Superclass != nil {
		v, err := i.evalExpr(env, s.Superclass)
		if err != nil {
			return err
		}
		var ok bool
		superclass, ok = v.(*Class)
		if !ok {
			return newRuntimeError(s.Superclass.Name, "Superclass must be a class.")
		}
	}

	methodEnv := env
	if superclass != nil {
		methodEnv = NewEnvironment(env)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, decl := range s.Methods {
		methods[decl.Name.Lexeme] = newFunction(decl, methodEnv, decl.Name.Lexeme == "init")
	}

	class := &Class{Name: s.Name.Lexeme, Superclass: superclass, Methods: methods}
	env.Assign(s.Name.Lexeme, class)
	return nil
}

func (i *Interpreter) evalExpr(env *Environment, expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil
	case *ast.Grouping:
		return i.evalExpr(env, e.Inner)
	case *ast.Unary:
		return i.evalUnary(env, e)
	case *ast.Binary:
		return i.evalBinary(env, e)
	case *ast.Logical:
		return i.evalLogical(env, e)
	case *ast.Variable:
		return i.lookUpVariable(env, e.ID, e.Name)
	case *ast.Assign:
		return i.evalAssign(env, e)
	case *ast.Call:
		return i.evalCall(env, e)
	case *ast.Get:
		return i.evalGet(env, e)
	case *ast.Set:
		return i.evalSet(env, e)
	case *ast.This:
		return i.lookUpVariable(env, e.ID, e.Keyword)
	case *ast.Super:
		return i.evalSuper(env, e)
	default:
		panic("interp: unhandled expression type")
	}
}

func (i *Interpreter) lookUpVariable(env *Environment, id int, name token.Token) (Value, error) {
	if depth, ok := i.locals[id]; ok {
		return env.GetAt(depth, name.Lexeme), nil
	}
	if v, ok := i.globals.Get(name.Lexeme); ok {
		return v, nil
	}
	return nil, newRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

func (i *Interpreter) evalAssign(env *Environment, e *ast.Assign) (Value, error) {
	value, err := i.evalExpr(env, e.Value)
	if err != nil {
		return nil, err
	}
	if depth, ok := i.locals[e.ID]; ok {
		env.AssignAt(depth, e.Name.Lexeme, value)
		return value, nil
	}
	if !i.globals.Assign(e.Name.Lexeme, value) {
		return nil, newRuntimeError(e.Name, "Undefined variable '%s'.", e.Name.Lexeme)
	}
	return value, nil
}

func (i *Interpreter) evalLogical(env *Environment, e *ast.Logical) (Value, error) {
	left, err := i.evalExpr(env, e.Left)
	if err != nil {
		return nil, err
	}
	if e.Op.Kind == token.Or {
		if IsTruthy(left) {
			return left, nil
		}
	} else if !IsTruthy(left) {
		return left, nil
	}
	return i.evalExpr(env, e.Right)
}

func (i *Interpreter) evalUnary(env *Environment, e *ast.Unary) (Value, error) {
	right, err := i.evalExpr(env, e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Op.Kind {
	case token.Bang:
		return !IsTruthy(right), nil
	case token.Minus:
		n, ok := right.(float64)
		if !ok {
			return nil, newRuntimeError(e.Op, "Operand must be a number.")
		}
		return -n, nil
	default:
		panic("interp: unhandled unary operator")
	}
}

func (i *Interpreter) evalBinary(env *Environment, e *ast.Binary) (Value, error) {
	left, err := i.evalExpr(env, e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpr(env, e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Kind {
	case token.Plus:
		if ln, lok := left.(float64); lok {
			if rn, rok := right.(float64); rok {
				return ln + rn, nil
			}
		}
		if ls, lok := left.(string); lok {
			if rs, rok := right.(string); rok {
				return ls + rs, nil
			}
		}
		return nil, newRuntimeError(e.Op, "Operands must be two numbers or two strings.")
	case token.Minus:
		return numberBinary(e.Op, left, right, func(a, b float64) Value { return a - b })
	case token.Star:
		return numberBinary(e.Op, left, right, func(a, b float64) Value { return a * b })
	case token.Slash:
		return numberBinary(e.Op, left, right, func(a, b float64) Value { return a / b })
	case token.Greater:
		return numberBinary(e.Op, left, right, func(a, b float64) Value { return a > b })
	case token.GreaterEqual:
		return numberBinary(e.Op, left, right, func(a, b float64) Value { return a >= b })
	case token.Less:
		return numberBinary(e.Op, left, right, func(a, b float64) Value { return a < b })
	case token.LessEqual:
		return numberBinary(e.Op, left, right, func(a, b float64) Value { return a <= b })
	case token.EqualEqual:
		return IsEqual(left, right), nil
	case token.BangEqual:
		return !IsEqual(left, right), nil
	default:
		panic("interp: unhandled binary operator")
	}
}

func numberBinary(op token.Token, left, right Value, apply func(a, b float64) Value) (Value, error) {
	ln, lok := left.(float64)
	rn, rok := right.(float64)
	if !lok || !rok {
		return nil, newRuntimeError(op, "Operands must be numbers.")
	}
	return apply(ln, rn), nil
}

func (i *Interpreter) evalCall(env *Environment, e *ast.Call) (Value, error) {
	callee, err := i.evalExpr(env, e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Args))
	for idx, argExpr := range e.Args {
		v, err := i.evalExpr(env, argExpr)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, newRuntimeError(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return nil, newRuntimeError(e.Paren, "Expected %d arguments but got %d.", callable.Arity(), len(args))
	}
	return callable.Call(i, args)
}

func (i *Interpreter) evalGet(env *Environment, e *ast.Get) (Value, error) {
	object, err := i.evalExpr(env, e.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := object.(*Instance)
	if !ok {
		return nil, newRuntimeError(e.Name, "Only instances have properties.")
	}
	v, ok := inst.Get(e.Name.Lexeme)
	if !ok {
		return nil, newRuntimeError(e.Name, "Undefined property '%s'.", e.Name.Lexeme)
	}
	return v, nil
}

func (i *Interpreter) evalSet(env *Environment, e *ast.Set) (Value, error) {
	object, err := i.evalExpr(env, e.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := object.(*Instance)
	if !ok {
		return nil, newRuntimeError(e.Name, "Only instances have fields.")
	}
	value, err := i.evalExpr(env, e.Value)
	if err != nil {
		return nil, err
	}
	inst.Set(e.Name.Lexeme, value)
	return value, nil
}

func (i *Interpreter) evalSuper(env *Environment, e *ast.Super) (Value, error) {
	depth := i.locals[e.ID] // resolver always resolves super; absence is a resolver bug
	superclass := env.GetAt(depth, "super").(*Class)
	instance := env.GetAt(depth-1, "this").(*Instance)

	method := superclass.FindMethod(e.Method.Lexeme)
	if method == nil {
		return nil, newRuntimeError(e.Method, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return method.bind(instance), nil
}
