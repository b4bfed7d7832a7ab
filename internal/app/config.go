package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	InputPath    string // a .out/.out.gz report or a directory of them
	SettingsPath string // optional .hcl settings file
	OutputDir    string // where the CSV tables are written

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	return &cfg, nil
}
