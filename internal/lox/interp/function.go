package interp

import "github.com/sdecook/glox/internal/lox/ast"

// Function is a user-defined function or method: its declaration node,
// the environment it closed over, and whether it is a class initializer
// (which always returns `this` regardless of any `return` inside it).
type Function struct {
	Decl          *ast.Function
	closure       *Environment
	isInitializer bool
}

func newFunction(decl *ast.Function, closure *Environment, isInitializer bool) *Function {
	return &Function{Decl: decl, closure: closure, isInitializer: isInitializer}
}

func (f *Function) Arity() int { return len(f.Decl.Params) }

func (f *Function) callableName() string { return f.Decl.Name.Lexeme }

// Call runs the function body in a fresh environment enclosing its
// closure, per spec.md §4.5's "Calling a user Function" rules.
func (f *Function) Call(i *Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(f.closure)
	for idx, param := range f.Decl.Params {
		env.Define(param.Lexeme, args[idx])
	}

	result, err := i.execBlock(f.Decl.Body, env)
	if err != nil {
		return nil, err
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	if result.returned {
		return result.value, nil
	}
	return nil, nil
}

// bind produces a copy of f whose closure additionally defines `this`
// as instance, used for both plain method lookup and `super.method`.
func (f *Function) bind(instance *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", instance)
	return newFunction(f.Decl, env, f.isInitializer)
}
