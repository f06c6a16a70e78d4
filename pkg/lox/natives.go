package lox

import (
	"fmt"
	"time"
)

// defineNatives seeds env with the interpreter's builtin callables.
// clock is the only native spec.md §4.6 requires; str/len/type are
// additive convenience natives (§4.6 of SPEC_FULL.md) — each is a
// single built-in function value, never a module or import, so they
// don't reintroduce a standard library.
func defineNatives(env *Environment) {
	env.Define("clock", &Native{
		name:  "clock",
		arity: 0,
		fn: func(_ *Interpreter, _ []Value) (Value, error) {
			return float64(time.Now().UnixNano()) / 1e9, nil
		},
	})

	env.Define("str", &Native{
		name:  "str",
		arity: 1,
		fn: func(_ *Interpreter, args []Value) (Value, error) {
			return stringify(args[0]), nil
		},
	})

	env.Define("len", &Native{
		name:  "len",
		arity: 1,
		fn: func(_ *Interpreter, args []Value) (Value, error) {
			s, ok := args[0].(string)
			if !ok {
				return nil, fmt.Errorf("len() expects a string, got %s", typeName(args[0]))
			}
			return float64(len(s)), nil
		},
	})

	env.Define("type", &Native{
		name:  "type",
		arity: 1,
		fn: func(_ *Interpreter, args []Value) (Value, error) {
			return typeName(args[0]), nil
		},
	})
}
