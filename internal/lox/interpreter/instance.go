package interpreter

import (
	"fmt"

	"golox/internal/lox/loxerr"
	"golox/internal/lox/token"
)

// Instance is a runtime instance of a Lox class (spec.md §3 LoxInstance).
type Instance struct {
	class  *Class
	fields map[string]any
}

// NewInstance creates an Instance of class with no fields set.
func NewInstance(class *Class) *Instance {
	return &Instance{class: class, fields: make(map[string]any)}
}

// Get reads a property: fields shadow methods, and a method hit is bound to
// the instance before being returned (spec.md §4.3 "Get").
func (i *Instance) Get(name token.Token) (any, error) {
	if value, ok := i.fields[name.Lexeme]; ok {
		return value, nil
	}
	if method := i.class.FindMethod(name.Lexeme); method != nil {
		return method.Bind(i), nil
	}
	return nil, &loxerr.RuntimeError{Token: name, Message: fmt.Sprintf("Undefined property '%s'.", name.Lexeme)}
}

// Set stores value as a field on the instance, creating it if necessary.
func (i *Instance) Set(name token.Token, value any) {
	i.fields[name.Lexeme] = value
}

func (i *Instance) String() string {
	return i.class.Name + " instance"
}
