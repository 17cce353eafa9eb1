package interpreter

import "golox/internal/lox/ast"

// Function is a user-defined Lox function or method (spec.md §3 LoxFunction).
type Function struct {
	declaration   *ast.FunctionStmt
	closure       *Environment
	isInitializer bool
}

// NewFunction wraps declaration with the environment that was current at its
// declaration point, as required by spec.md §3's closure invariant.
func NewFunction(declaration *ast.FunctionStmt, closure *Environment, isInitializer bool) *Function {
	return &Function{declaration: declaration, closure: closure, isInitializer: isInitializer}
}

// Bind returns a new Function whose closure layers "this" = instance on top
// of the original closure (spec.md §4.4 "Method binding").
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", instance)
	return NewFunction(f.declaration, env, f.isInitializer)
}

// Arity implements Callable.
func (f *Function) Arity() int {
	return len(f.declaration.Params)
}

// Call implements Callable: it executes the function body in a fresh
// environment layered on its closure, with parameters bound to args.
func (f *Function) Call(interp *Interpreter, args []any) (any, error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := interp.executeBlock(f.declaration.Body, env)

	if f.isInitializer {
		// An initializer always yields the receiver, even after a bare
		// `return;` inside the body -- but a genuine runtime error still
		// propagates (spec.md §4.3 "Initializer special case").
		if err != nil {
			if _, ok := err.(*returnSignal); !ok {
				return nil, err
			}
		}
		return f.closure.GetAt(0, "this"), nil
	}

	if ret, ok := err.(*returnSignal); ok {
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}
	return nil, nil
}

func (f *Function) String() string {
	return "<fn " + f.declaration.Name.Lexeme + ">"
}
