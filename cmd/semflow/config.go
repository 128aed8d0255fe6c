package main

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-semflow/pkg/enrich"
)

// Config is the optional YAML configuration file. Flags override any
// value set here.
type Config struct {
	Input      string `yaml:"input"`
	Vocabulary string `yaml:"vocabulary"`
	Output     string `yaml:"output"`
	Compress   bool   `yaml:"compress"`

	IndexOrigin int    `yaml:"index_origin" validate:"min=0,max=1"`
	Dangling    string `yaml:"dangling" validate:"omitempty,oneof=error drop"`
	LogLevel    string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

func defaultConfig() Config {
	return Config{
		Dangling: "error",
		LogLevel: "info",
	}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c Config) danglingPolicy() enrich.DanglingPolicy {
	if c.Dangling == "drop" {
		return enrich.DanglingDrop
	}
	return enrich.DanglingError
}
