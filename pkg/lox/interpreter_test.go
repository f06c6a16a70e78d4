package lox

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSource(t *testing.T, src string) (stdout, stderr string, session *Session) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	session = NewSession(&outBuf, &errBuf)
	_ = session.Run(src)
	return outBuf.String(), errBuf.String(), session
}

func TestInterpreterArithmeticAndPrint(t *testing.T) {
	out, _, session := runSource(t, "print 1 + 2 * 3;")
	require.False(t, session.HadError)
	require.False(t, session.HadRuntimeError)
	assert.Equal(t, "7\n", out)
}

func TestInterpreterStringConcatenation(t *testing.T) {
	out, _, _ := runSource(t, `print "foo" + "bar";`)
	assert.Equal(t, "foobar\n", out)
}

func TestInterpreterIntegralNumberStringifiesWithoutDecimal(t *testing.T) {
	out, _, _ := runSource(t, "print 6 / 2;")
	assert.Equal(t, "3\n", out)
}

func TestInterpreterTruthiness(t *testing.T) {
	out, _, _ := runSource(t, `
		if (nil) print "wrong"; else print "nil is falsy";
		if (0) print "0 is truthy"; else print "wrong";
		if ("") print "empty string is truthy"; else print "wrong";
	`)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "nil is falsy", lines[0])
	assert.Equal(t, "0 is truthy", lines[1])
	assert.Equal(t, "empty string is truthy", lines[2])
}

func TestInterpreterVariablesAndAssignment(t *testing.T) {
	out, _, session := runSource(t, "var a = 1; a = a + 1; print a;")
	require.False(t, session.HadRuntimeError)
	assert.Equal(t, "2\n", out)
}

func TestInterpreterBlockScopingAndShadowing(t *testing.T) {
	out, _, _ := runSource(t, `
		var a = "outer";
		{
			var a = "inner";
			print a;
		}
		print a;
	`)
	assert.Equal(t, "inner\nouter\n", out)
}

func TestInterpreterWhileLoop(t *testing.T) {
	out, _, _ := runSource(t, `
		var i = 0;
		while (i < 3) {
			print i;
			i = i + 1;
		}
	`)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestInterpreterForLoopDesugaring(t *testing.T) {
	out, _, _ := runSource(t, `
		for (var i = 0; i < 3; i = i + 1) print i;
	`)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestInterpreterLogicalOperatorsReturnOperandValue(t *testing.T) {
	out, _, _ := runSource(t, `
		print "hi" or 2;
		print nil or "fallback";
		print false and "unreached";
	`)
	assert.Equal(t, "hi\nfallback\nfalse\n", out)
}

func TestInterpreterFunctionCallAndReturn(t *testing.T) {
	out, _, session := runSource(t, `
		fun add(a, b) {
			return a + b;
		}
		print add(2, 3);
	`)
	require.False(t, session.HadRuntimeError)
	assert.Equal(t, "5\n", out)
}

func TestInterpreterFunctionWithoutReturnYieldsNil(t *testing.T) {
	out, _, _ := runSource(t, `
		fun noop() {}
		print noop();
	`)
	assert.Equal(t, "nil\n", out)
}

func TestInterpreterClosureCapturesDefiningEnvironment(t *testing.T) {
	out, _, session := runSource(t, `
		fun makeCounter() {
			var count = 0;
			fun increment() {
				count = count + 1;
				return count;
			}
			return increment;
		}
		var counter = makeCounter();
		print counter();
		print counter();
		print counter();
	`)
	require.False(t, session.HadRuntimeError)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestInterpreterRecursion(t *testing.T) {
	out, _, session := runSource(t, `
		fun fib(n) {
			if (n < 2) return n;
			return fib(n - 1) + fib(n - 2);
		}
		print fib(10);
	`)
	require.False(t, session.HadRuntimeError)
	assert.Equal(t, "55\n", out)
}

func TestInterpreterRuntimeErrorOnUndefinedVariable(t *testing.T) {
	_, errOut, session := runSource(t, "print missing;")
	assert.True(t, session.HadRuntimeError)
	assert.Contains(t, errOut, "Undefined variable")
}

func TestInterpreterRuntimeErrorOnTypeMismatch(t *testing.T) {
	_, errOut, session := runSource(t, `print 1 + "two";`)
	assert.True(t, session.HadRuntimeError)
	assert.Contains(t, errOut, "Operands must both be numbers or strings.")
}

func TestInterpreterRuntimeErrorCallingNonFunction(t *testing.T) {
	_, errOut, session := runSource(t, `var x = 1; x();`)
	assert.True(t, session.HadRuntimeError)
	assert.Contains(t, errOut, "Can only call functions and classes.")
}

func TestInterpreterRuntimeErrorOnArityMismatch(t *testing.T) {
	_, errOut, session := runSource(t, `
		fun f(a, b) { return a + b; }
		f(1);
	`)
	assert.True(t, session.HadRuntimeError)
	assert.Contains(t, errOut, "Expected 2 arguments but got 1.")
}

// A runtime error aborts the rest of that Run call, but must not leave
// the interpreter's active environment pointer stuck inside the block
// or call frame where the error occurred: the next line fed to the same
// (REPL-style) Session has to see the outer scope, not the abandoned one.
func TestInterpreterEnvironmentRestoredAfterRuntimeErrorInBlock(t *testing.T) {
	var outBuf, errBuf bytes.Buffer
	session := NewSession(&outBuf, &errBuf)

	require.Error(t, session.Run(`var x = "outer"; { var x = "inner"; print missing; }`))
	assert.True(t, session.HadRuntimeError)

	outBuf.Reset()
	require.NoError(t, session.Run(`print x;`))
	assert.Equal(t, "outer\n", outBuf.String())
}

func TestInterpreterEnvironmentRestoredAfterRuntimeErrorInCall(t *testing.T) {
	var outBuf, errBuf bytes.Buffer
	session := NewSession(&outBuf, &errBuf)

	script := `
		var x = "outer";
		fun f() { var x = "inner"; print missing; }
		f();
	`
	require.Error(t, session.Run(script))
	assert.True(t, session.HadRuntimeError)

	outBuf.Reset()
	require.NoError(t, session.Run(`print x;`))
	assert.Equal(t, "outer\n", outBuf.String())
}

func TestInterpreterNativeClockReturnsNumber(t *testing.T) {
	out, _, session := runSource(t, `print type(clock());`)
	require.False(t, session.HadRuntimeError)
	assert.Equal(t, "number\n", out)
}

func TestInterpreterNativeStrAndLenAndType(t *testing.T) {
	out, _, session := runSource(t, `
		print str(42);
		print len("hello");
		print type("s");
		print type(1);
		print type(true);
		print type(nil);
	`)
	require.False(t, session.HadRuntimeError)
	assert.Equal(t, "42\n5\nstring\nnumber\nboolean\nnil\n", out)
}

func TestInterpreterStaticErrorPreventsExecution(t *testing.T) {
	out, _, session := runSource(t, "print 1 +;")
	assert.True(t, session.HadError)
	assert.Equal(t, "", out)
}
