package customerrors

import "errors"

// Language-level errors. A program that trips one of these is invalid; the
// CLI reports it and exits with status 1.
var (
	ErrSyntax                  = errors.New("syntax error")
	ErrUnknownFunction         = errors.New("unknown function")
	ErrUnknownTimeUnit         = errors.New("unknown time unit")
	ErrBadDateClause           = errors.New("bad date clause")
	ErrInsufficientTradingDays = errors.New("insufficient trading days")
	ErrInvalidAssetVariable    = errors.New("invalid asset variable")
	ErrBadAssetSpecification   = errors.New("bad asset specification")
	ErrUnknownChartType        = errors.New("unknown chart type")
	ErrNoDataForSymbol         = errors.New("no data for symbol")
	ErrUnhandledStatement      = errors.New("unhandled statement")
)

var languageErrors = []error{
	ErrSyntax,
	ErrUnknownFunction,
	ErrUnknownTimeUnit,
	ErrBadDateClause,
	ErrInsufficientTradingDays,
	ErrInvalidAssetVariable,
	ErrBadAssetSpecification,
	ErrUnknownChartType,
	ErrNoDataForSymbol,
	ErrUnhandledStatement,
}

// IsLanguageError reports whether err wraps one of the language-level errors.
func IsLanguageError(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range languageErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
