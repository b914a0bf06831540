package interpreter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BuchardsVault/ChartFlow/ast"
	"github.com/BuchardsVault/ChartFlow/customerrors"
)

// Evaluate reduces expr to a Value. It has no side effects of its own;
// callables may have theirs.
func Evaluate(expr ast.Expression, env *Environment) (Value, error) {
	switch e := expr.(type) {
	case *ast.ListLiteral:
		list := make(List, 0, len(e.Elements))
		for _, elem := range e.Elements {
			v, err := Evaluate(elem, env)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil

	case *ast.FunctionCall:
		bound, ok := env.Lookup(e.Name)
		fn, isCallable := bound.(*Callable)
		if !ok || !isCallable {
			return nil, fmt.Errorf("%w '%s'", customerrors.ErrUnknownFunction, e.Name)
		}
		args := make([]Value, 0, len(e.Args))
		for _, arg := range e.Args {
			v, err := Evaluate(arg, env)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		return fn.Call(args)

	case *ast.Literal:
		return evaluateLiteral(e.Token, env), nil
	}

	return nil, fmt.Errorf("cannot evaluate expression of type %T", expr)
}

func evaluateLiteral(token string, env *Environment) Value {
	if len(token) >= 2 && strings.HasPrefix(token, `"`) && strings.HasSuffix(token, `"`) {
		return String(token[1 : len(token)-1])
	}
	if isDigits(token) {
		if n, err := strconv.ParseInt(token, 10, 64); err == nil {
			return Integer(n)
		}
	}
	return env.Get(token)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
