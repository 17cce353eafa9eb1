package interpreter

// Callable is implemented by every value which can appear as the callee of
// a Call expression: native functions, LoxFunction and LoxClass (spec.md
// §4.4).
type Callable interface {
	Arity() int
	Call(interp *Interpreter, args []any) (any, error)
	String() string
}
