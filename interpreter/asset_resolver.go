package interpreter

import (
	"fmt"
	"strings"

	"github.com/BuchardsVault/ChartFlow/ast"
	"github.com/BuchardsVault/ChartFlow/customerrors"
)

// ResolveAssets turns an asset specification into ticker symbols.
func ResolveAssets(spec ast.AssetSpec, env *Environment) ([]string, error) {
	switch s := spec.(type) {
	case *ast.VariableRef:
		switch v := env.Get(s.Name).(type) {
		case String:
			return []string{string(v)}, nil
		case List:
			symbols := make([]string, 0, len(v))
			for _, elem := range v {
				sym, ok := elem.(String)
				if !ok {
					return nil, fmt.Errorf("%w: '%s' holds non-string element %s", customerrors.ErrInvalidAssetVariable, s.Name, elem)
				}
				symbols = append(symbols, string(sym))
			}
			if len(symbols) == 0 {
				return nil, fmt.Errorf("%w: '%s' is an empty list", customerrors.ErrInvalidAssetVariable, s.Name)
			}
			return symbols, nil
		default:
			return nil, fmt.Errorf("%w: '%s' is not string/list", customerrors.ErrInvalidAssetVariable, s.Name)
		}

	case *ast.SingleSymbol:
		if sym := unquote(s.Symbol); sym != "" {
			return []string{sym}, nil
		}

	case *ast.SymbolList:
		if len(s.Symbols) == 0 {
			break
		}
		symbols := make([]string, len(s.Symbols))
		for i, raw := range s.Symbols {
			symbols[i] = unquote(raw)
		}
		return symbols, nil
	}

	return nil, customerrors.ErrBadAssetSpecification
}

func unquote(s string) string {
	return strings.Trim(s, `"`)
}
