package interpreter

import "time"

// nativeFn wraps a Go function as a Lox-callable native function. Every
// native stringifies as "<native fn>" (spec.md §4.3), matching the original
// Python implementation's Clock.__str__ (_examples/original_source/lox/native_functions.py).
type nativeFn struct {
	arity int
	fn    func(interp *Interpreter, args []any) (any, error)
}

func (n *nativeFn) Arity() int { return n.arity }

func (n *nativeFn) Call(interp *Interpreter, args []any) (any, error) {
	return n.fn(interp, args)
}

func (n *nativeFn) String() string { return "<native fn>" }

// clockFn returns seconds since an unspecified epoch (spec.md §6), matching
// the original's time.time()-based clock().
var clockFn = &nativeFn{
	arity: 0,
	fn: func(interp *Interpreter, args []any) (any, error) {
		return float64(time.Now().UnixNano()) / 1e9, nil
	},
}
