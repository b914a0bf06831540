package interpreter

import (
	"fmt"
	"strconv"

	"github.com/BuchardsVault/ChartFlow/util"
)

func builtins() []*Callable {
	return []*Callable{
		{Name: "sma", Fn: builtinSMA},
	}
}

// builtinSMA implements sma(values, period). Averages are returned as
// strings with two decimals, one per full window.
func builtinSMA(args []Value) (Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("sma() takes exactly 2 arguments (%d given)", len(args))
	}
	list, ok := args[0].(List)
	if !ok {
		return nil, fmt.Errorf("sma() values must be a list, got %s", args[0])
	}
	period, ok := args[1].(Integer)
	if !ok || period <= 0 {
		return nil, fmt.Errorf("sma() period must be a positive integer, got %s", args[1])
	}

	values := make([]float64, 0, len(list))
	for _, elem := range list {
		f, err := numericValue(elem)
		if err != nil {
			return nil, fmt.Errorf("sma(): %w", err)
		}
		values = append(values, f)
	}

	out := List{}
	for i, avg := range util.SimpleMovingAverage(values, int(period)) {
		if i+1 < int(period) {
			continue
		}
		out = append(out, String(strconv.FormatFloat(avg, 'f', 2, 64)))
	}
	return out, nil
}

func numericValue(v Value) (float64, error) {
	switch val := v.(type) {
	case Integer:
		return float64(val), nil
	case String:
		f, err := strconv.ParseFloat(string(val), 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", string(val))
		}
		return f, nil
	}
	return 0, fmt.Errorf("%s is not a number", v)
}
