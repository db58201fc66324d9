package interp

import "time"

// Native is a built-in callable implemented in Go, per spec.md §4.9.
type Native struct {
	name  string
	arity int
	fn    func(i *Interpreter, args []Value) (Value, error)
}

func (n *Native) Arity() int { return n.arity }

func (n *Native) callableName() string { return n.name }

func (n *Native) Call(i *Interpreter, args []Value) (Value, error) {
	return n.fn(i, args)
}

// defineGlobals installs the built-in callables into env, per spec.md
// §4.5's `clock()` — the only standard library this interpreter has.
func defineGlobals(env *Environment) {
	env.Define("clock", &Native{
		name:  "clock",
		arity: 0,
		fn: func(_ *Interpreter, _ []Value) (Value, error) {
			return float64(time.Now().UnixNano()) / float64(time.Second), nil
		},
	})
}
