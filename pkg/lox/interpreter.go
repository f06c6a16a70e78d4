package lox

import "fmt"

// outcome is the explicit result of executing a statement: whether it
// carried a `return` out of the enclosing function, and if so, with what
// value. This is the non-local-return control transfer from spec.md
// §4.5/§7 modeled as an ordinary return value (Design Notes alternative
// (a)) instead of panic/recover, so every frame that needs to stop early
// checks for it the same way it checks for an error.
type outcome struct {
	Returning bool
	Value     Value
}

var normal = outcome{}

func returning(v Value) outcome {
	return outcome{Returning: true, Value: v}
}

// Interpreter is the tree-walking evaluator. It holds no state of its
// own beyond the current environment frame and a reference to the
// owning Session (globals + resolver output + output streams).
type Interpreter struct {
	session *Session
	env     *Environment
}

func NewInterpreter(session *Session) *Interpreter {
	return &Interpreter{session: session, env: session.Globals}
}

// Interpret runs a top-level statement list against the Session's
// globals frame.
func (interp *Interpreter) Interpret(stmts []Stmt) error {
	for _, stmt := range stmts {
		if _, err := interp.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (interp *Interpreter) execute(stmt Stmt) (outcome, error) {
	switch s := stmt.(type) {
	case *BlockStmt:
		return interp.executeBlock(s.Stmts, NewEnvironment(interp.env))

	case *VarStmt:
		var value Value
		if s.Initializer != nil {
			v, err := interp.evaluate(s.Initializer)
			if err != nil {
				return normal, err
			}
			value = v
		}
		interp.env.Define(s.Name.Lexeme, value)
		return normal, nil

	case *FunctionStmt:
		fn := &Function{declaration: s, closure: interp.env}
		interp.env.Define(s.Name.Lexeme, fn)
		return normal, nil

	case *ExpressionStmt:
		_, err := interp.evaluate(s.Expr)
		return normal, err

	case *IfStmt:
		cond, err := interp.evaluate(s.Cond)
		if err != nil {
			return normal, err
		}
		if isTruthy(cond) {
			return interp.execute(s.ThenBranch)
		}
		if s.ElseBranch != nil {
			return interp.execute(s.ElseBranch)
		}
		return normal, nil

	case *PrintStmt:
		v, err := interp.evaluate(s.Expr)
		if err != nil {
			return normal, err
		}
		fmt.Fprintln(interp.session.Stdout, stringify(v))
		return normal, nil

	case *ReturnStmt:
		var value Value
		if s.Value != nil {
			v, err := interp.evaluate(s.Value)
			if err != nil {
				return normal, err
			}
			value = v
		}
		return returning(value), nil

	case *WhileStmt:
		for {
			cond, err := interp.evaluate(s.Cond)
			if err != nil {
				return normal, err
			}
			if !isTruthy(cond) {
				return normal, nil
			}
			out, err := interp.execute(s.Body)
			if err != nil || out.Returning {
				return out, err
			}
		}

	default:
		panic("lox: interpreter: unhandled statement type")
	}
}

// executeBlock runs stmts in a fresh frame and guarantees the prior
// environment is restored on every exit path — normal completion, a
// runtime error, or a non-local return.
func (interp *Interpreter) executeBlock(stmts []Stmt, env *Environment) (outcome, error) {
	previous := interp.env
	interp.env = env
	defer func() { interp.env = previous }()

	for _, stmt := range stmts {
		out, err := interp.execute(stmt)
		if err != nil || out.Returning {
			return out, err
		}
	}
	return normal, nil
}

func (interp *Interpreter) evaluate(expr Expr) (Value, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return e.Value, nil

	case *GroupingExpr:
		return interp.evaluate(e.Inner)

	case *VariableExpr:
		return interp.lookupVariable(e.Name, e)

	case *AssignExpr:
		value, err := interp.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if depth, ok := interp.session.Locals[e]; ok {
			interp.env.AssignAt(depth, e.Name, value)
		} else if err := interp.session.Globals.Assign(e.Name, value); err != nil {
			return nil, err
		}
		return value, nil

	case *LogicalExpr:
		left, err := interp.evaluate(e.Left)
		if err != nil {
			return nil, err
		}
		truthy := isTruthy(left)
		if (e.Op.Type == OR) == truthy {
			// `or` short-circuits on truthy, `and` short-circuits on falsy
			return left, nil
		}
		return interp.evaluate(e.Right)

	case *UnaryExpr:
		right, err := interp.evaluate(e.Right)
		if err != nil {
			return nil, err
		}
		switch e.Op.Type {
		case BANG:
			return !isTruthy(right), nil
		case MINUS:
			n, err := interp.numberOperand(e.Op, right)
			if err != nil {
				return nil, err
			}
			return -n, nil
		}
		panic("lox: interpreter: unhandled unary operator")

	case *BinaryExpr:
		return interp.evaluateBinary(e)

	case *CallExpr:
		return interp.evaluateCall(e)

	default:
		panic("lox: interpreter: unhandled expression type")
	}
}

// lookupVariable uses the resolver's depth annotation when present;
// unannotated references resolve against globals directly.
func (interp *Interpreter) lookupVariable(name Token, expr Expr) (Value, error) {
	if depth, ok := interp.session.Locals[expr]; ok {
		return interp.env.GetAt(depth, name.Lexeme), nil
	}
	return interp.session.Globals.Get(name)
}

func (interp *Interpreter) evaluateBinary(e *BinaryExpr) (Value, error) {
	left, err := interp.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := interp.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case PLUS:
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
		return nil, newRuntimeError(e.Op, "Operands must both be numbers or strings.")

	case MINUS:
		l, r, err := interp.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l - r, nil

	case STAR:
		l, r, err := interp.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l * r, nil

	case SLASH:
		l, r, err := interp.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l / r, nil

	case GREATER:
		l, r, err := interp.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l > r, nil

	case GREATER_EQUAL:
		l, r, err := interp.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l >= r, nil

	case LESS:
		l, r, err := interp.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l < r, nil

	case LESS_EQUAL:
		l, r, err := interp.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l <= r, nil

	case EQUAL_EQUAL:
		return isEqual(left, right), nil

	case BANG_EQUAL:
		return !isEqual(left, right), nil
	}

	panic("lox: interpreter: unhandled binary operator")
}

func (interp *Interpreter) evaluateCall(e *CallExpr) (Value, error) {
	callee, err := interp.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, 0, len(e.Args))
	for _, a := range e.Args {
		v, err := interp.evaluate(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, newRuntimeError(e.ClosingParen, "Can only call functions and classes.")
	}

	if len(args) != fn.Arity() {
		return nil, newRuntimeError(e.ClosingParen, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}

	result, err := fn.Call(interp, args)
	if err != nil {
		if _, ok := err.(*RuntimeError); ok {
			return nil, err
		}
		return nil, newRuntimeError(e.ClosingParen, "%s", err.Error())
	}
	return result, nil
}

func (interp *Interpreter) numberOperand(op Token, v Value) (float64, error) {
	n, ok := v.(float64)
	if !ok {
		return 0, newRuntimeError(op, "Operand must be a number.")
	}
	return n, nil
}

func (interp *Interpreter) numberOperands(op Token, a, b Value) (float64, float64, error) {
	an, aok := a.(float64)
	bn, bok := b.(float64)
	if !aok || !bok {
		return 0, 0, newRuntimeError(op, "Operands must be numbers.")
	}
	return an, bn, nil
}
