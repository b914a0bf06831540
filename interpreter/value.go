package interpreter

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a runtime value. The set of variants is closed: String,
// Integer, List and *Callable.
type Value interface {
	fmt.Stringer
	value()
}

type String string

type Integer int64

type List []Value

// Callable is a built-in function bound in the environment.
type Callable struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

func (String) value()    {}
func (Integer) value()   {}
func (List) value()      {}
func (*Callable) value() {}

func (s String) String() string  { return string(s) }
func (i Integer) String() string { return strconv.FormatInt(int64(i), 10) }

func (l List) String() string {
	parts := make([]string, len(l))
	for i, v := range l {
		if s, ok := v.(String); ok {
			parts[i] = strconv.Quote(string(s))
			continue
		}
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (c *Callable) String() string { return "<builtin " + c.Name + ">" }

// Call invokes the callable.
func (c *Callable) Call(args []Value) (Value, error) {
	return c.Fn(args)
}

// toNative converts a Value into plain Go values for decoding into structs.
func toNative(v Value) any {
	switch val := v.(type) {
	case String:
		return string(val)
	case Integer:
		return int64(val)
	case List:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = toNative(elem)
		}
		return out
	case *Callable:
		return val.Name
	}
	return nil
}
