// Package token declares the lexical token type shared by the scanner,
// parser, resolver and interpreter.
package token

import "fmt"

// Kind identifies which lexical category a Token belongs to.
type Kind int

// The closed set of token kinds recognised by the scanner.
const (
	// Single-character punctuation.
	LeftParen Kind = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// One or two character tokens.
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals.
	Identifier
	String
	Number

	// Keywords.
	And
	Class
	Else
	False
	Fun
	For
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	EOF
)

var kindNames = map[Kind]string{
	LeftParen:     "(",
	RightParen:    ")",
	LeftBrace:     "{",
	RightBrace:    "}",
	Comma:         ",",
	Dot:           ".",
	Minus:         "-",
	Plus:          "+",
	Semicolon:     ";",
	Slash:         "/",
	Star:          "*",
	Bang:          "!",
	BangEqual:     "!=",
	Equal:         "=",
	EqualEqual:    "==",
	Greater:       ">",
	GreaterEqual:  ">=",
	Less:          "<",
	LessEqual:     "<=",
	Identifier:    "identifier",
	String:        "string",
	Number:        "number",
	And:           "and",
	Class:         "class",
	Else:          "else",
	False:         "false",
	Fun:           "fun",
	For:           "for",
	If:            "if",
	Nil:           "nil",
	Or:            "or",
	Print:         "print",
	Return:        "return",
	Super:         "super",
	This:          "this",
	True:          "true",
	Var:           "var",
	While:         "while",
	EOF:           "EOF",
}

// Keywords maps a reserved word's lexeme to its Kind.
var Keywords = map[string]Kind{
	"and":    And,
	"class":  Class,
	"else":   Else,
	"false":  False,
	"for":    For,
	"fun":    Fun,
	"if":     If,
	"nil":    Nil,
	"or":     Or,
	"print":  Print,
	"return": Return,
	"super":  Super,
	"this":   This,
	"true":   True,
	"var":    Var,
	"while":  While,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a single lexical token of Lox source, as described by spec.md §3.
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal any // nil, float64 or string
	Line    int
}

// Equal reports whether t and other are equivalent, ignoring Line as
// spec.md §3 requires.
func (t Token) Equal(other Token) bool {
	return t.Kind == other.Kind && t.Lexeme == other.Lexeme && t.Literal == other.Literal
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q %v", t.Kind, t.Lexeme, t.Literal)
}
