package interpreter_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golox/internal/lox/interpreter"
	"golox/internal/lox/loxerr"
	"golox/internal/lox/parser"
	"golox/internal/lox/resolver"
)

// run executes source through the full parse -> resolve -> interpret
// pipeline and returns everything printed to stdout, one element per line.
func run(t *testing.T, source string) ([]string, error) {
	t.Helper()
	stmts, err := parser.Parse(source)
	require.NoError(t, err)

	depths, err := resolver.Resolve(stmts)
	require.NoError(t, err)

	interp := interpreter.New()
	var buf bytes.Buffer
	interp.Stdout = &buf

	runErr := interp.Interpret(stmts, depths)
	output := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if buf.Len() == 0 {
		output = nil
	}
	return output, runErr
}

func TestInterpretArithmeticAndPrint(t *testing.T) {
	out, err := run(t, `
var a = 10;
var b = 20;
print a + b;
print a * b;
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"30", "200"}, out)
}

func TestInterpretStringConcatenation(t *testing.T) {
	out, err := run(t, `print "Hello" + " " + "World" + "!";`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello World!"}, out)
}

func TestInterpretDivisionByZeroIsNotAnError(t *testing.T) {
	out, err := run(t, `
print 1 / 0;
print -1 / 0;
print 0 / 0;
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"inf", "-inf", "NaN"}, out)
}

func TestInterpretTruthiness(t *testing.T) {
	out, err := run(t, `
if (0) print "zero is truthy"; else print "zero is falsy";
if ("") print "empty string is truthy"; else print "empty string is falsy";
if (nil) print "nil is truthy"; else print "nil is falsy";
if (false) print "false is truthy"; else print "false is falsy";
`)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"zero is truthy",
		"empty string is truthy",
		"nil is falsy",
		"false is falsy",
	}, out)
}

func TestInterpretEqualityNeverCoercesBoolAndNumber(t *testing.T) {
	out, err := run(t, `
print nil == nil;
print nil == false;
print 1 == 1.0;
print true == 1;
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"true", "false", "true", "false"}, out)
}

func TestInterpretUndefinedVariableIsRuntimeError(t *testing.T) {
	_, err := run(t, `print undefined_var;`)
	require.Error(t, err)
	rerr, ok := err.(*loxerr.RuntimeError)
	require.True(t, ok)
	assert.Contains(t, rerr.Message, "Undefined variable 'undefined_var'.")
}

func TestInterpretClosureCapturesBindingAtDeclaration(t *testing.T) {
	out, err := run(t, `
fun makeCounter() {
  var count = 0;
  fun counter() {
    count = count + 1;
    return count;
  }
  return counter;
}
var counter = makeCounter();
print counter();
print counter();
print counter();
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, out)
}

func TestInterpretClassesFieldsAndMethods(t *testing.T) {
	out, err := run(t, `
class Bagel {
  init(kind) {
    this.kind = kind;
  }
  describe() {
    return "a " + this.kind + " bagel";
  }
}
var b = Bagel("sesame");
print b.describe();
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a sesame bagel"}, out)
}

func TestInterpretInheritanceAndSuper(t *testing.T) {
	out, err := run(t, `
class Doughnut {
  cook() {
    return "Fry until golden brown.";
  }
}
class BostonCream < Doughnut {
  cook() {
    return super.cook() + " Pipe full of custard.";
  }
}
print BostonCream().cook();
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fry until golden brown. Pipe full of custard."}, out)
}

func TestInterpretInitAlwaysReturnsThisDespiteBareReturn(t *testing.T) {
	out, err := run(t, `
class Thing {
  init() {
    return;
  }
}
var t = Thing();
print t;
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Thing instance"}, out)
}

func TestInterpretBoundMethodRemembersReceiver(t *testing.T) {
	out, err := run(t, `
class Person {
  init(name) {
    this.name = name;
  }
  greet() {
    return "hi, " + this.name;
  }
}
var p = Person("Ada");
var greet = p.greet;
print greet();
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"hi, Ada"}, out)
}

func TestInterpretCallArityMismatchIsRuntimeError(t *testing.T) {
	_, err := run(t, `
fun f(a, b) { return a + b; }
f(1);
`)
	require.Error(t, err)
	rerr, ok := err.(*loxerr.RuntimeError)
	require.True(t, ok)
	assert.Contains(t, rerr.Message, "Expected 2 arguments but got 1.")
}

func TestInterpretCallingNonCallableIsRuntimeError(t *testing.T) {
	_, err := run(t, `
var notAFunction = 1;
notAFunction();
`)
	require.Error(t, err)
	rerr, ok := err.(*loxerr.RuntimeError)
	require.True(t, ok)
	assert.Contains(t, rerr.Message, "Can only call functions and classes.")
}

func TestInterpretClockIsNativeAndZeroArity(t *testing.T) {
	out, err := run(t, `print clock() >= 0;`)
	require.NoError(t, err)
	assert.Equal(t, []string{"true"}, out)
}

func TestInterpretWhileLoop(t *testing.T) {
	out, err := run(t, `
var i = 0;
while (i < 3) {
  print i;
  i = i + 1;
}
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2"}, out)
}

func TestInterpretForLoop(t *testing.T) {
	out, err := run(t, `
var total = 0;
for (var i = 1; i <= 4; i = i + 1) {
  total = total + i;
}
print total;
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"10"}, out)
}
