package lox

import (
	"fmt"
	"strconv"
)

// Value is any Lox runtime value: nil, bool, float64, string, or a
// Callable (*Function or *Native). Using the bare empty interface
// instead of per-kind wrapper structs keeps the evaluator's type
// switches direct, matching how the original dynamically-typed
// reference implementation represents values.
type Value = any

// isTruthy: nil and false are falsy, everything else — including 0,
// 0.0 and "" — is truthy.
func isTruthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// isEqual is structural on primitives. Cross-type comparisons (e.g.
// number vs string) are always unequal; nil == nil is true.
func isEqual(a, b Value) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		return a == b
	}
}

// stringify is the canonical textual form used by `print` and by the
// str() native: nil -> "nil", numbers render with the shortest decimal
// representation that round-trips exactly (so integral values have no
// ".0" suffix), strings print verbatim with no surrounding quotes.
func stringify(v Value) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// typeName is used by the type() native.
func typeName(v Value) string {
	switch v.(type) {
	case nil:
		return "nil"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case Callable:
		return "function"
	default:
		return "unknown"
	}
}
