package ast

import (
	"fmt"
	"strings"
)

// Print renders stmts as a parenthesised Lisp-like form, one line per
// top-level statement. It's informational only (spec.md §1): nothing in the
// interpreter depends on its output.
func Print(stmts []Stmt) string {
	p := &printer{}
	var b strings.Builder
	for _, s := range stmts {
		if err := s.Accept(p); err != nil {
			fmt.Fprintf(&b, "(error: %s)\n", err)
			continue
		}
		b.WriteString(p.last)
		b.WriteByte('\n')
	}
	return b.String()
}

// printer implements ExprVisitor and StmtVisitor, threading its result
// through the `last` field since StmtVisitor methods only return an error.
type printer struct {
	last string
}

func (p *printer) exprString(e Expr) string {
	v, err := e.Accept(p)
	if err != nil {
		return fmt.Sprintf("(error: %s)", err)
	}
	s, _ := v.(string)
	return s
}

func (p *printer) parenthesize(name string, exprs ...Expr) string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteString(" ")
		b.WriteString(p.exprString(e))
	}
	b.WriteString(")")
	return b.String()
}

func (p *printer) VisitLiteral(e *Literal) (any, error) {
	if e.Value == nil {
		return "nil", nil
	}
	return fmt.Sprintf("%v", e.Value), nil
}

func (p *printer) VisitGrouping(e *Grouping) (any, error) {
	return p.parenthesize("group", e.Expression), nil
}

func (p *printer) VisitUnary(e *Unary) (any, error) {
	return p.parenthesize(e.Operator.Lexeme, e.Right), nil
}

func (p *printer) VisitBinary(e *Binary) (any, error) {
	return p.parenthesize(e.Operator.Lexeme, e.Left, e.Right), nil
}

func (p *printer) VisitLogical(e *Logical) (any, error) {
	return p.parenthesize(e.Operator.Lexeme, e.Left, e.Right), nil
}

func (p *printer) VisitVariable(e *Variable) (any, error) {
	return e.Name.Lexeme, nil
}

func (p *printer) VisitAssign(e *Assign) (any, error) {
	return p.parenthesize("= "+e.Name.Lexeme, e.Value), nil
}

func (p *printer) VisitCall(e *Call) (any, error) {
	return p.parenthesize("call", append([]Expr{e.Callee}, e.Args...)...), nil
}

func (p *printer) VisitGet(e *Get) (any, error) {
	return fmt.Sprintf("(get %s %s)", p.exprString(e.Object), e.Name.Lexeme), nil
}

func (p *printer) VisitSet(e *Set) (any, error) {
	return fmt.Sprintf("(set %s %s %s)", p.exprString(e.Object), e.Name.Lexeme, p.exprString(e.Value)), nil
}

func (p *printer) VisitThis(e *This) (any, error) {
	return "this", nil
}

func (p *printer) VisitSuper(e *Super) (any, error) {
	return fmt.Sprintf("(super %s)", e.Method.Lexeme), nil
}

func (p *printer) VisitExpressionStmt(s *ExpressionStmt) error {
	p.last = p.parenthesize("expr", s.Expression)
	return nil
}

func (p *printer) VisitPrintStmt(s *PrintStmt) error {
	p.last = p.parenthesize("print", s.Expression)
	return nil
}

func (p *printer) VisitVarStmt(s *VarStmt) error {
	if s.Initializer == nil {
		p.last = fmt.Sprintf("(var %s)", s.Name.Lexeme)
		return nil
	}
	p.last = fmt.Sprintf("(var %s %s)", s.Name.Lexeme, p.exprString(s.Initializer))
	return nil
}

func (p *printer) VisitBlockStmt(s *BlockStmt) error {
	var parts []string
	for _, inner := range s.Statements {
		if err := inner.Accept(p); err != nil {
			return err
		}
		parts = append(parts, p.last)
	}
	p.last = "(block " + strings.Join(parts, " ") + ")"
	return nil
}

func (p *printer) VisitIfStmt(s *IfStmt) error {
	if err := s.Then.Accept(p); err != nil {
		return err
	}
	thenStr := p.last
	elseStr := ""
	if s.Else != nil {
		if err := s.Else.Accept(p); err != nil {
			return err
		}
		elseStr = " " + p.last
	}
	p.last = fmt.Sprintf("(if %s %s%s)", p.exprString(s.Condition), thenStr, elseStr)
	return nil
}

func (p *printer) VisitWhileStmt(s *WhileStmt) error {
	if err := s.Body.Accept(p); err != nil {
		return err
	}
	p.last = fmt.Sprintf("(while %s %s)", p.exprString(s.Condition), p.last)
	return nil
}

func (p *printer) VisitFunctionStmt(s *FunctionStmt) error {
	names := make([]string, len(s.Params))
	for i, param := range s.Params {
		names[i] = param.Lexeme
	}
	p.last = fmt.Sprintf("(fun %s (%s) ...)", s.Name.Lexeme, strings.Join(names, " "))
	return nil
}

func (p *printer) VisitReturnStmt(s *ReturnStmt) error {
	if s.Value == nil {
		p.last = "(return)"
		return nil
	}
	p.last = p.parenthesize("return", s.Value)
	return nil
}

func (p *printer) VisitClassStmt(s *ClassStmt) error {
	if s.Superclass == nil {
		p.last = fmt.Sprintf("(class %s)", s.Name.Lexeme)
		return nil
	}
	p.last = fmt.Sprintf("(class %s < %s)", s.Name.Lexeme, s.Superclass.Name.Lexeme)
	return nil
}
