package interpreter

// Environment is the interpreter's binding table. Names keep insertion
// order; rebinding a name keeps its original slot.
type Environment struct {
	store map[string]Value
	order []string
}

// NewEnvironment returns an environment seeded with the built-in callables.
func NewEnvironment() *Environment {
	env := &Environment{store: make(map[string]Value)}
	for _, fn := range builtins() {
		env.Set(fn.Name, fn)
	}
	return env
}

// Get returns the bound value, or the name itself as a String when the
// name is unbound. This lets bare identifiers act as literals.
func (e *Environment) Get(name string) Value {
	if v, ok := e.store[name]; ok {
		return v
	}
	return String(name)
}

// Lookup is the strict form of Get.
func (e *Environment) Lookup(name string) (Value, bool) {
	v, ok := e.store[name]
	return v, ok
}

func (e *Environment) Set(name string, val Value) {
	if _, ok := e.store[name]; !ok {
		e.order = append(e.order, name)
	}
	e.store[name] = val
}

// Remove deletes exactly the named bindings. Unknown names are ignored.
func (e *Environment) Remove(names ...string) {
	for _, name := range names {
		if _, ok := e.store[name]; !ok {
			continue
		}
		delete(e.store, name)
		for i, n := range e.order {
			if n == name {
				e.order = append(e.order[:i], e.order[i+1:]...)
				break
			}
		}
	}
}

// Reset drops every binding that is not a Callable.
func (e *Environment) Reset() {
	kept := e.order[:0]
	for _, name := range e.order {
		if _, ok := e.store[name].(*Callable); ok {
			kept = append(kept, name)
			continue
		}
		delete(e.store, name)
	}
	e.order = kept
}

// Names returns the bound names in insertion order.
func (e *Environment) Names() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

func (e *Environment) Len() int { return len(e.order) }
