package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"golox/internal/lox/ast"
	"golox/internal/lox/token"
)

func TestPrintBinaryExpression(t *testing.T) {
	expr := &ast.Binary{
		Left:     &ast.Literal{Value: 1.0},
		Operator: token.Token{Kind: token.Plus, Lexeme: "+", Line: 1},
		Right:    &ast.Literal{Value: 2.0},
	}
	stmts := []ast.Stmt{&ast.ExpressionStmt{Expression: expr}}
	assert.Equal(t, "(expr (+ 1 2))\n", ast.Print(stmts))
}

func TestPrintNilLiteral(t *testing.T) {
	stmts := []ast.Stmt{&ast.PrintStmt{Expression: &ast.Literal{Value: nil}}}
	assert.Equal(t, "(print nil)\n", ast.Print(stmts))
}

func TestPrintVarStmtWithoutInitializer(t *testing.T) {
	stmts := []ast.Stmt{&ast.VarStmt{Name: token.Token{Lexeme: "a"}}}
	assert.Equal(t, "(var a)\n", ast.Print(stmts))
}
