package interpreter

// Class is a Lox class value (spec.md §3 LoxClass): a name, its own methods
// and an optional superclass to fall back to.
type Class struct {
	Name       string
	superclass *Class
	methods    map[string]*Function
}

// NewClass creates a Class.
func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	return &Class{Name: name, superclass: superclass, methods: methods}
}

// FindMethod returns the first method named name on c or the nearest
// ancestor that declares it, or nil if none does (spec.md §4.4).
func (c *Class) FindMethod(name string) *Function {
	if method, ok := c.methods[name]; ok {
		return method
	}
	if c.superclass != nil {
		return c.superclass.FindMethod(name)
	}
	return nil
}

// Arity implements Callable: the arity of init, if the class defines one,
// else 0.
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call implements Callable: constructing a class value creates a new
// Instance and runs its init method, if any, against args.
func (c *Class) Call(interp *Interpreter, args []any) (any, error) {
	instance := NewInstance(c)
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.Bind(instance).Call(interp, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (c *Class) String() string {
	return c.Name
}
