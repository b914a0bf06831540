// Package chart holds the state of the chart being built by a chart
// statement: the open figure and its style options.
package chart

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/mitchellh/mapstructure"

	"github.com/BuchardsVault/ChartFlow/customerrors"
	"github.com/BuchardsVault/ChartFlow/model"
)

// Style options. Width and height are in inches at 100 px per inch.
type Style struct {
	Theme  string `mapstructure:"theme"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Grid   bool   `mapstructure:"grid"`
}

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

func DefaultStyle() Style {
	return Style{Theme: ThemeLight, Width: 12, Height: 6, Grid: true}
}

// StyleFromConfig takes the style defaults from the interpreter config.
func StyleFromConfig(cfg model.EnvConfig) (Style, error) {
	style := DefaultStyle()
	if err := copier.Copy(&style, &cfg); err != nil {
		return DefaultStyle(), fmt.Errorf("copying chart style from config: %w", err)
	}
	return style, nil
}

// IsDark reports whether the theme asks for a dark background. Anything
// other than "light" counts as dark.
func (s Style) IsDark() bool {
	return !strings.EqualFold(s.Theme, ThemeLight)
}

var styleKeys = []string{"theme", "width", "height", "grid"}

// merge decodes the style keys of options over s. Other keys are ignored.
func (s Style) merge(options map[string]any) (Style, error) {
	subset := make(map[string]any, len(styleKeys))
	for _, key := range styleKeys {
		if v, ok := options[key]; ok {
			subset[key] = v
		}
	}
	if len(subset) == 0 {
		return s, nil
	}

	merged := s
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       switchHook,
		WeaklyTypedInput: true,
		Result:           &merged,
	})
	if err != nil {
		return s, err
	}
	if err := decoder.Decode(subset); err != nil {
		return s, fmt.Errorf("invalid chart style: %w", err)
	}
	return merged, nil
}

// switchHook accepts on/off and yes/no for boolean options.
func switchHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
		return data, nil
	}
	switch strings.ToLower(data.(string)) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	return data, nil
}

// Type is a chart kind.
type Type string

const (
	Candlestick Type = "candlestick"
	Line        Type = "line"
	Bar         Type = "bar"
	OHLC        Type = "ohlc"
)

// ParseType maps a chart type name to a Type. An empty name means Line.
func ParseType(name string) (Type, error) {
	switch t := Type(strings.ToLower(name)); t {
	case "":
		return Line, nil
	case Candlestick, Line, Bar, OHLC:
		return t, nil
	}
	return "", fmt.Errorf("%w '%s'", customerrors.ErrUnknownChartType, name)
}
