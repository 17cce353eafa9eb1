package interpreter

import (
	"fmt"

	"golox/internal/lox/loxerr"
	"golox/internal/lox/token"
)

// Environment is a single lexical scope: a map of names to values with a
// pointer to its enclosing scope, forming the chain described in spec.md §3.
type Environment struct {
	enclosing *Environment
	values    map[string]any
}

// NewEnvironment creates an Environment, optionally nested inside enclosing.
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{enclosing: enclosing, values: make(map[string]any)}
}

// Define binds name to value in this environment, shadowing any binding of
// the same name in an enclosing environment.
func (e *Environment) Define(name string, value any) {
	e.values[name] = value
}

// Get looks up name, walking outward through enclosing environments.
func (e *Environment) Get(name token.Token) (any, error) {
	if value, ok := e.values[name.Lexeme]; ok {
		return value, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, &loxerr.RuntimeError{Token: name, Message: fmt.Sprintf("Undefined variable '%s'.", name.Lexeme)}
}

// Assign stores value into the nearest existing binding of name, walking
// outward through enclosing environments. It is an error to assign to a
// name that was never declared.
func (e *Environment) Assign(name token.Token, value any) error {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = value
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, value)
	}
	return &loxerr.RuntimeError{Token: name, Message: fmt.Sprintf("Undefined variable '%s'.", name.Lexeme)}
}

// ancestor walks exactly distance parents up the chain.
func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}

// GetAt reads name directly from the environment distance hops up the chain,
// as recorded by the resolver. The name is guaranteed present there
// (spec.md §3 invariants).
func (e *Environment) GetAt(distance int, name string) any {
	return e.ancestor(distance).values[name]
}

// AssignAt stores value directly into the environment distance hops up the
// chain.
func (e *Environment) AssignAt(distance int, name token.Token, value any) {
	e.ancestor(distance).values[name.Lexeme] = value
}
