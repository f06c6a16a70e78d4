package lox

import "fmt"

// Callable is the invocation protocol shared by user functions and
// native builtins.
type Callable interface {
	Arity() int
	Call(interp *Interpreter, args []Value) (Value, error)
}

// Function is a user-defined function: the declaration AST plus the
// environment captured at definition time (its closure).
type Function struct {
	declaration *FunctionStmt
	closure     *Environment
}

func (f *Function) Arity() int {
	return len(f.declaration.Params)
}

func (f *Function) String() string {
	return fmt.Sprintf("<fn %s>", f.declaration.Name.Lexeme)
}

// Call binds each parameter in a fresh frame rooted at the closure and
// executes the body as a block. Completing without an explicit `return`
// yields nil.
func (f *Function) Call(interp *Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	outcome, err := interp.executeBlock(f.declaration.Body, env)
	if err != nil {
		return nil, err
	}
	if outcome.Returning {
		return outcome.Value, nil
	}
	return nil, nil
}

// Native wraps a builtin implemented in Go (clock, str, len, type).
type Native struct {
	name  string
	arity int
	fn    func(interp *Interpreter, args []Value) (Value, error)
}

func (n *Native) Arity() int { return n.arity }

func (n *Native) Call(interp *Interpreter, args []Value) (Value, error) {
	return n.fn(interp, args)
}

func (n *Native) String() string {
	return fmt.Sprintf("<native fn %s>", n.name)
}
