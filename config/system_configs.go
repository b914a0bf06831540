package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/BuchardsVault/ChartFlow/model"
	"github.com/BuchardsVault/ChartFlow/validator"
)

// ConfigEnvVar holds a JSON object overriding file settings.
const ConfigEnvVar = "config"

type SystemConfigs struct {
	Config *model.EnvConfig
}

// LoadConfigs layers the defaults, the YAML file at path (skipped when
// path is empty) and the JSON in $config, then validates the result.
// A .env file in the working directory is loaded first if present.
func LoadConfigs(path string) (*SystemConfigs, error) {
	godotenv.Load()

	envCfg := model.DefaultEnvConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &envCfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	if rawJson := os.Getenv(ConfigEnvVar); rawJson != "" {
		if err := json.Unmarshal([]byte(rawJson), &envCfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	if err := validator.ValidateConfig(&envCfg); err != nil {
		return nil, err
	}

	return &SystemConfigs{
		Config: &envCfg,
	}, nil
}
