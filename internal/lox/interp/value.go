// Package interp implements the tree-walking evaluator described in
// spec.md §4.5: runtime values, environments, classes, instances, and
// the statement/expression evaluation rules.
package interp

import (
	"fmt"
	"strconv"
)

// Value is a runtime Lox value. The concrete type carries the tag:
// nil is Nil, bool is Bool, float64 is Number, string is String, and
// *Function/*Class/*Instance/*Native are the callable/object kinds.
// This mirrors spec.md §3's tagged union without a wrapper type, per
// the "type-erased value → tagged union" design note — Go's `any` plus
// a closed type switch gives the same exhaustiveness without the
// original's typeid/any_cast dispatch.
type Value = any

// Callable is implemented by every value that can appear as a call
// callee: user functions, classes (as constructors), and natives.
type Callable interface {
	Value
	Arity() int
	Call(i *Interpreter, args []Value) (Value, error)
	callableName() string
}

// IsTruthy implements spec.md §4.5: Nil is false, Bool is itself,
// everything else is true.
func IsTruthy(v Value) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	default:
		return true
	}
}

// IsEqual implements spec.md §4.5's `==`: same kind required, Nil==Nil,
// Number/Bool/String compare by value, and functions, classes, instances
// and natives compare by identity.
func IsEqual(a, b Value) bool {
	switch a := a.(type) {
	case nil:
		return b == nil
	case float64:
		b, ok := b.(float64)
		return ok && a == b
	case string:
		b, ok := b.(string)
		return ok && a == b
	case bool:
		b, ok := b.(bool)
		return ok && a == b
	default:
		return a == b // reference equality for functions/classes/instances
	}
}

// Stringify renders v the way `print` does, per spec.md §4.5.
func Stringify(v Value) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return formatNumber(v)
	case string:
		return v
	case *Instance:
		return v.Class.Name + " instance"
	case *Class:
		return v.Name
	case *Function:
		return "<fn " + v.Decl.Name.Lexeme + ">"
	case *Native:
		return "<native fn>"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatNumber renders the shortest decimal that round-trips through
// strconv.ParseFloat. Go's 'g' formatter already omits a trailing ".0"
// on integral values (unlike the original implementation's raw
// to-string, which always shows one) — see spec.md §9's note on this.
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'g', -1, 64)
}
