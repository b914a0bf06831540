package model

// EnvConfig holds the interpreter settings. It is read from an optional
// YAML file and then overlaid with the JSON in the "config" environment
// variable.
type EnvConfig struct {
	OutputDir             string  `json:"outputDir" yaml:"outputDir"`
	DataDir               string  `json:"dataDir" yaml:"dataDir"`
	Theme                 string  `json:"theme" yaml:"theme"`
	Width                 int     `json:"width" yaml:"width"`
	Height                int     `json:"height" yaml:"height"`
	Grid                  bool    `json:"grid" yaml:"grid"`
	YahooBaseUrl          string  `json:"yahooBaseUrl" yaml:"yahooBaseUrl"`
	RequestTimeoutSeconds int     `json:"requestTimeoutSeconds" yaml:"requestTimeoutSeconds"`
	RequestsPerSecond     float64 `json:"requestsPerSecond" yaml:"requestsPerSecond"`
	RedisUrl              string  `json:"redisUrl" yaml:"redisUrl"`
	CacheTtlMinutes       int     `json:"cacheTtlMinutes" yaml:"cacheTtlMinutes"`
	LogLevel              string  `json:"logLevel" yaml:"logLevel"`
}

func DefaultEnvConfig() EnvConfig {
	return EnvConfig{
		OutputDir:             "charts",
		Theme:                 "light",
		Width:                 12,
		Height:                6,
		Grid:                  true,
		YahooBaseUrl:          "https://query1.finance.yahoo.com/v8/finance/chart",
		RequestTimeoutSeconds: 10,
		RequestsPerSecond:     2,
		CacheTtlMinutes:       60,
		LogLevel:              "info",
	}
}
