// Package resolver implements the static scope/variable-distance analysis
// pass described by spec.md §4.2.
package resolver

import (
	"golox/internal/lox/ast"
	"golox/internal/lox/loxerr"
	"golox/internal/lox/token"
)

type functionType int

const (
	functionNone functionType = iota
	functionFunction
	functionInitializer
	functionMethod
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// Depths maps each resolvable expression to the number of enclosing
// environments to walk at runtime to find its binding. Absence means the
// name falls through to globals. Keyed by expression identity (spec.md §9),
// never by structural equality.
type Depths map[ast.Expr]int

// Resolver walks a statement list once, recording variable-distance
// information into a Depths table.
type Resolver struct {
	scopes          []map[string]bool
	depths          Depths
	currentFunction functionType
	currentClass    classType
	errs            loxerr.List
}

// New creates a Resolver.
func New() *Resolver {
	return &Resolver{depths: make(Depths)}
}

// Resolve runs the resolver over stmts and returns the resulting Depths
// table, or an error describing every static-scope violation found.
func Resolve(stmts []ast.Stmt) (Depths, error) {
	r := New()
	if err := r.resolveStmts(stmts); err != nil {
		return r.depths, err
	}
	if r.errs.HadError() {
		return r.depths, &r.errs
	}
	return r.depths, nil
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := r.resolveStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) resolveStmt(s ast.Stmt) error {
	return s.Accept(r)
}

func (r *Resolver) resolveExpr(e ast.Expr) error {
	_, err := e.Accept(r)
	return err
}

func (r *Resolver) VisitBlockStmt(s *ast.BlockStmt) error {
	r.beginScope()
	err := r.resolveStmts(s.Statements)
	r.endScope()
	return err
}

func (r *Resolver) VisitVarStmt(s *ast.VarStmt) error {
	r.declare(s.Name)
	if s.Initializer != nil {
		if err := r.resolveExpr(s.Initializer); err != nil {
			return err
		}
	}
	r.define(s.Name)
	return nil
}

func (r *Resolver) VisitFunctionStmt(s *ast.FunctionStmt) error {
	r.declare(s.Name)
	r.define(s.Name)
	return r.resolveFunction(s, functionFunction)
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, fnType functionType) error {
	enclosingFunction := r.currentFunction
	r.currentFunction = fnType

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	err := r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
	return err
}

func (r *Resolver) VisitExpressionStmt(s *ast.ExpressionStmt) error {
	return r.resolveExpr(s.Expression)
}

func (r *Resolver) VisitIfStmt(s *ast.IfStmt) error {
	if err := r.resolveExpr(s.Condition); err != nil {
		return err
	}
	if err := r.resolveStmt(s.Then); err != nil {
		return err
	}
	if s.Else != nil {
		return r.resolveStmt(s.Else)
	}
	return nil
}

func (r *Resolver) VisitPrintStmt(s *ast.PrintStmt) error {
	return r.resolveExpr(s.Expression)
}

func (r *Resolver) VisitReturnStmt(s *ast.ReturnStmt) error {
	if r.currentFunction == functionNone {
		r.errs.AddToken(s.Keyword, "Can't return from top-level code.")
		return nil
	}
	if s.Value != nil {
		if r.currentFunction == functionInitializer {
			r.errs.AddToken(s.Keyword, "Can't return a value from an initializer.")
			return nil
		}
		return r.resolveExpr(s.Value)
	}
	return nil
}

func (r *Resolver) VisitWhileStmt(s *ast.WhileStmt) error {
	if err := r.resolveExpr(s.Condition); err != nil {
		return err
	}
	return r.resolveStmt(s.Body)
}

func (r *Resolver) VisitClassStmt(s *ast.ClassStmt) error {
	enclosingClass := r.currentClass
	r.currentClass = classClass

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.errs.AddToken(s.Superclass.Name, "A class can't inherit from itself.")
		} else {
			r.currentClass = classSubclass
			if err := r.resolveExpr(s.Superclass); err != nil {
				return err
			}
		}
		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range s.Methods {
		fnType := functionMethod
		if method.Name.Lexeme == "init" {
			fnType = functionInitializer
		}
		if err := r.resolveFunction(method, fnType); err != nil {
			return err
		}
	}

	r.endScope()
	if s.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
	return nil
}

func (r *Resolver) VisitAssign(e *ast.Assign) (any, error) {
	if err := r.resolveExpr(e.Value); err != nil {
		return nil, err
	}
	r.resolveLocal(e, e.Name)
	return nil, nil
}

func (r *Resolver) VisitBinary(e *ast.Binary) (any, error) {
	if err := r.resolveExpr(e.Left); err != nil {
		return nil, err
	}
	return nil, r.resolveExpr(e.Right)
}

func (r *Resolver) VisitCall(e *ast.Call) (any, error) {
	if err := r.resolveExpr(e.Callee); err != nil {
		return nil, err
	}
	for _, arg := range e.Args {
		if err := r.resolveExpr(arg); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func (r *Resolver) VisitGet(e *ast.Get) (any, error) {
	return nil, r.resolveExpr(e.Object)
}

func (r *Resolver) VisitSet(e *ast.Set) (any, error) {
	if err := r.resolveExpr(e.Value); err != nil {
		return nil, err
	}
	return nil, r.resolveExpr(e.Object)
}

func (r *Resolver) VisitThis(e *ast.This) (any, error) {
	if r.currentClass == classNone {
		r.errs.AddToken(e.Keyword, "Can't use 'this' outside of a class.")
		return nil, nil
	}
	r.resolveLocal(e, e.Keyword)
	return nil, nil
}

func (r *Resolver) VisitSuper(e *ast.Super) (any, error) {
	switch r.currentClass {
	case classNone:
		r.errs.AddToken(e.Keyword, "Can't use 'super' outside of a class.")
	case classClass:
		r.errs.AddToken(e.Keyword, "Can't use 'super' in a class with no superclass.")
	}
	r.resolveLocal(e, e.Keyword)
	return nil, nil
}

func (r *Resolver) VisitGrouping(e *ast.Grouping) (any, error) {
	return nil, r.resolveExpr(e.Expression)
}

func (r *Resolver) VisitLiteral(e *ast.Literal) (any, error) {
	return nil, nil
}

func (r *Resolver) VisitLogical(e *ast.Logical) (any, error) {
	if err := r.resolveExpr(e.Left); err != nil {
		return nil, err
	}
	return nil, r.resolveExpr(e.Right)
}

func (r *Resolver) VisitUnary(e *ast.Unary) (any, error) {
	return nil, r.resolveExpr(e.Right)
}

func (r *Resolver) VisitVariable(e *ast.Variable) (any, error) {
	if len(r.scopes) != 0 {
		if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
			r.errs.AddToken(e.Name, "Can't read local variable in its own initializer.")
		}
	}
	r.resolveLocal(e, e.Name)
	return nil, nil
}

func (r *Resolver) resolveLocal(e ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.depths[e] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.errs.AddToken(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}
