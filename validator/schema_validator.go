package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Oudwins/zog"

	"github.com/BuchardsVault/ChartFlow/model"
)

var OutputShape = zog.Shape{
	"OutputDir": zog.String().Required(),
	"Theme":     zog.String().Required(),
	"Width":     zog.Int().GT(0),
	"Height":    zog.Int().GT(0),
}

var MarketDataShape = zog.Shape{
	"YahooBaseUrl":          zog.String().URL().Required(),
	"RequestTimeoutSeconds": zog.Int().GT(0),
	"RequestsPerSecond":     zog.Float64().GTE(0),
	"CacheTtlMinutes":       zog.Int().GTE(0),
}

var LoggingShape = zog.Shape{
	"LogLevel": zog.String().OneOf([]string{"trace", "debug", "info", "warn", "error"}),
}

func ThemeTest(dataPtr any, ctx zog.Ctx) bool {
	cfg, ok := dataPtr.(*model.EnvConfig)
	if !ok {
		return true
	}

	switch strings.ToLower(cfg.Theme) {
	case "light", "dark":
		return true
	}
	ctx.AddIssue(&zog.ZogIssue{
		Path:    "theme",
		Message: fmt.Sprintf("theme must be light or dark, got %q", cfg.Theme),
	})
	return false
}

var configSchema = zog.Struct(OutputShape).
	Extend(MarketDataShape).
	Extend(LoggingShape).
	TestFunc(ThemeTest)

// ValidateConfig returns one error listing every issue, or nil.
func ValidateConfig(cfg *model.EnvConfig) error {
	issues := configSchema.Validate(cfg)
	if len(issues) == 0 {
		return nil
	}

	var messages []string
	for path, list := range issues {
		for _, issue := range list {
			messages = append(messages, path+": "+issue.Message)
		}
	}
	sort.Strings(messages)
	return fmt.Errorf("invalid config: %s", strings.Join(messages, "; "))
}
