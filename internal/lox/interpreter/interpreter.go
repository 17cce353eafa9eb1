// Package interpreter executes a resolved Lox AST against an environment
// chain (spec.md §4.3, §4.4).
package interpreter

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golox/internal/lox/ast"
	"golox/internal/lox/loxerr"
	"golox/internal/lox/resolver"
	"golox/internal/lox/token"
)

// returnSignal is the control-flow signal used to unwind out of a function
// call on `return` (spec.md §4.3, §9). It's never surfaced to a caller of
// Interpret: Function.Call intercepts it.
type returnSignal struct {
	value any
}

func (r *returnSignal) Error() string { return "return" }

// Interpreter walks statements and expressions, evaluating them against a
// mutable environment chain.
type Interpreter struct {
	Globals *Environment
	env     *Environment
	depths  resolver.Depths
	Stdout  io.Writer
}

// New creates an Interpreter with a fresh global environment seeded with the
// native clock() function (spec.md §4.3, §6).
func New() *Interpreter {
	globals := NewEnvironment(nil)
	globals.Define("clock", clockFn)
	return &Interpreter{
		Globals: globals,
		env:     globals,
		depths:  make(resolver.Depths),
		Stdout:  os.Stdout,
	}
}

// Interpret executes stmts using depths (as produced by resolver.Resolve) to
// resolve variable references. Depths is merged into any previously recorded
// depths, so an Interpreter can be reused across multiple REPL inputs.
func (i *Interpreter) Interpret(stmts []ast.Stmt, depths resolver.Depths) error {
	for e, d := range depths {
		i.depths[e] = d
	}
	for _, stmt := range stmts {
		if err := i.execute(stmt); err != nil {
			if rerr, ok := err.(*loxerr.RuntimeError); ok {
				return rerr
			}
			return err
		}
	}
	return nil
}

func (i *Interpreter) execute(s ast.Stmt) error {
	return s.Accept(i)
}

func (i *Interpreter) evaluate(e ast.Expr) (any, error) {
	return e.Accept(i)
}

func (i *Interpreter) VisitExpressionStmt(s *ast.ExpressionStmt) error {
	_, err := i.evaluate(s.Expression)
	return err
}

func (i *Interpreter) VisitPrintStmt(s *ast.PrintStmt) error {
	value, err := i.evaluate(s.Expression)
	if err != nil {
		return err
	}
	fmt.Fprintln(i.Stdout, Stringify(value))
	return nil
}

func (i *Interpreter) VisitVarStmt(s *ast.VarStmt) error {
	var value any
	if s.Initializer != nil {
		v, err := i.evaluate(s.Initializer)
		if err != nil {
			return err
		}
		value = v
	}
	i.env.Define(s.Name.Lexeme, value)
	return nil
}

func (i *Interpreter) VisitBlockStmt(s *ast.BlockStmt) error {
	return i.executeBlock(s.Statements, NewEnvironment(i.env))
}

// executeBlock runs stmts against env, always restoring the previous
// environment on every exit path (spec.md §5).
func (i *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) error {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	for _, stmt := range stmts {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) VisitIfStmt(s *ast.IfStmt) error {
	cond, err := i.evaluate(s.Condition)
	if err != nil {
		return err
	}
	if isTruthy(cond) {
		return i.execute(s.Then)
	} else if s.Else != nil {
		return i.execute(s.Else)
	}
	return nil
}

func (i *Interpreter) VisitWhileStmt(s *ast.WhileStmt) error {
	for {
		cond, err := i.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if !isTruthy(cond) {
			return nil
		}
		if err := i.execute(s.Body); err != nil {
			return err
		}
	}
}

func (i *Interpreter) VisitFunctionStmt(s *ast.FunctionStmt) error {
	fn := NewFunction(s, i.env, false)
	i.env.Define(s.Name.Lexeme, fn)
	return nil
}

func (i *Interpreter) VisitReturnStmt(s *ast.ReturnStmt) error {
	var value any
	if s.Value != nil {
		v, err := i.evaluate(s.Value)
		if err != nil {
			return err
		}
		value = v
	}
	return &returnSignal{value: value}
}

func (i *Interpreter) VisitClassStmt(s *ast.ClassStmt) error {
	var superclass *Class
	if s.Superclass != nil {
		v, err := i.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return &loxerr.RuntimeError{Token: s.Superclass.Name, Message: "Superclass must be a class."}
		}
		superclass = sc
	}

	i.env.Define(s.Name.Lexeme, nil)

	env := i.env
	if s.Superclass != nil {
		env = NewEnvironment(i.env)
		env.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, method := range s.Methods {
		fn := NewFunction(method, env, method.Name.Lexeme == "init")
		methods[method.Name.Lexeme] = fn
	}

	class := NewClass(s.Name.Lexeme, superclass, methods)
	return i.env.Assign(s.Name, class)
}

func (i *Interpreter) VisitLiteral(e *ast.Literal) (any, error) {
	return e.Value, nil
}

func (i *Interpreter) VisitGrouping(e *ast.Grouping) (any, error) {
	return i.evaluate(e.Expression)
}

func (i *Interpreter) VisitUnary(e *ast.Unary) (any, error) {
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Kind {
	case token.Bang:
		return !isTruthy(right), nil
	case token.Minus:
		n, ok := right.(float64)
		if !ok {
			return nil, &loxerr.RuntimeError{Token: e.Operator, Message: "Operand must be a number."}
		}
		return -n, nil
	}
	panic("unreachable unary operator " + e.Operator.Kind.String())
}

func (i *Interpreter) VisitBinary(e *ast.Binary) (any, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Kind {
	case token.BangEqual:
		return !isEqual(left, right), nil
	case token.EqualEqual:
		return isEqual(left, right), nil
	case token.Greater:
		l, r, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l > r, nil
	case token.GreaterEqual:
		l, r, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l >= r, nil
	case token.Less:
		l, r, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l < r, nil
	case token.LessEqual:
		l, r, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l <= r, nil
	case token.Minus:
		l, r, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l - r, nil
	case token.Slash:
		l, r, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l / r, nil // IEEE-754: division by zero yields ±Inf/NaN, not an error (spec.md §4.3)
	case token.Star:
		l, r, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l * r, nil
	case token.Plus:
		if ln, ok := left.(float64); ok {
			if rn, ok := right.(float64); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
		return nil, &loxerr.RuntimeError{Token: e.Operator, Message: "Operands must be two numbers or two strings."}
	}
	panic("unreachable binary operator " + e.Operator.Kind.String())
}

func (i *Interpreter) VisitLogical(e *ast.Logical) (any, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Operator.Kind == token.Or {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}
	return i.evaluate(e.Right)
}

func (i *Interpreter) VisitVariable(e *ast.Variable) (any, error) {
	return i.lookUpVariable(e.Name, e)
}

func (i *Interpreter) lookUpVariable(name token.Token, expr ast.Expr) (any, error) {
	if distance, ok := i.depths[expr]; ok {
		return i.env.GetAt(distance, name.Lexeme), nil
	}
	return i.Globals.Get(name)
}

func (i *Interpreter) VisitAssign(e *ast.Assign) (any, error) {
	value, err := i.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	if distance, ok := i.depths[e]; ok {
		i.env.AssignAt(distance, e.Name, value)
	} else if err := i.Globals.Assign(e.Name, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (i *Interpreter) VisitCall(e *ast.Call) (any, error) {
	callee, err := i.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]any, len(e.Args))
	for idx, argExpr := range e.Args {
		v, err := i.evaluate(argExpr)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, &loxerr.RuntimeError{Token: e.Paren, Message: "Can only call functions and classes."}
	}
	if len(args) != callable.Arity() {
		return nil, &loxerr.RuntimeError{
			Token:   e.Paren,
			Message: fmt.Sprintf("Expected %d arguments but got %d.", callable.Arity(), len(args)),
		}
	}
	return callable.Call(i, args)
}

func (i *Interpreter) VisitGet(e *ast.Get) (any, error) {
	object, err := i.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*Instance)
	if !ok {
		return nil, &loxerr.RuntimeError{Token: e.Name, Message: "Only instances have properties."}
	}
	return instance.Get(e.Name)
}

func (i *Interpreter) VisitSet(e *ast.Set) (any, error) {
	object, err := i.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*Instance)
	if !ok {
		return nil, &loxerr.RuntimeError{Token: e.Name, Message: "Only instances have fields."}
	}
	value, err := i.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	instance.Set(e.Name, value)
	return value, nil
}

func (i *Interpreter) VisitThis(e *ast.This) (any, error) {
	return i.lookUpVariable(e.Keyword, e)
}

func (i *Interpreter) VisitSuper(e *ast.Super) (any, error) {
	distance := i.depths[e]
	superclass := i.env.GetAt(distance, "super").(*Class)
	instance := i.env.GetAt(distance-1, "this").(*Instance)

	method := superclass.FindMethod(e.Method.Lexeme)
	if method == nil {
		return nil, &loxerr.RuntimeError{Token: e.Method, Message: fmt.Sprintf("Undefined property '%s'.", e.Method.Lexeme)}
	}
	return method.Bind(instance), nil
}

// isTruthy implements spec.md §4.3's Ruby-style truthiness: nil and false
// are falsy, everything else (including 0 and "") is truthy.
func isTruthy(value any) bool {
	if value == nil {
		return false
	}
	if b, ok := value.(bool); ok {
		return b
	}
	return true
}

// isEqual implements spec.md §4.3's equality rule: nil only equals nil, and
// a Bool is never equal to a Number even if numerically 1/0.
func isEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

func numberOperands(operator token.Token, a, b any) (float64, float64, error) {
	an, aok := a.(float64)
	bn, bok := b.(float64)
	if !aok || !bok {
		return 0, 0, &loxerr.RuntimeError{Token: operator, Message: "Operands must be numbers."}
	}
	return an, bn, nil
}

// Stringify renders a runtime value the way `print` displays it (spec.md
// §4.3).
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		if math.IsInf(v, 1) {
			return "inf"
		}
		if math.IsInf(v, -1) {
			return "-inf"
		}
		if math.IsNaN(v) {
			return "NaN"
		}
		text := strconv.FormatFloat(v, 'f', -1, 64)
		return text
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
