package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	PresetConfig struct {
		ColorSpace    string            `yaml:"color_space" validate:"required,oneof=oklab oklch srgb srgb-linear display-p3 lab lch hsl hwb xyz"`
		Preflights    bool              `yaml:"preflights"`
		PreflightPath string            `yaml:"preflight_path" sanitize:"assure_file_access"`
		Safelist      bool              `yaml:"safelist"`
		ThemePath     string            `yaml:"theme_path" sanitize:"assure_file_access"`
		Shortcuts     map[string]string `yaml:"shortcuts" validate:"dive,keys,required,endkeys,required"`
	}

	GenerateConfig struct {
		Extensions []string      `yaml:"extensions" validate:"dive,required,startswith=."`
		Workers    int           `yaml:"workers" validate:"gte=0"`
		WatchDelay time.Duration `yaml:"watch_delay" validate:"gte=0"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Preset    PresetConfig   `yaml:"preset"`
		Generate  GenerateConfig `yaml:"generate"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// decode superimposes data on cfg. Only known fields are accepted.
func decode(data []byte, cfg *Config, process bool) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if !process {
		return cfg, nil
	}
	if err := gencfg.Sanitize(cfg); err != nil {
		return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
	}
	if err := gencfg.Validate(cfg); err != nil {
		return nil, fmt.Errorf("failed to validate configuration: %w", err)
	}
	return cfg, nil
}

// LoadConfiguration expands embedded template to get defaults and, when path
// is not empty, superimposes values from the file. Result is sanitized and
// validated once, after all sources are applied.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}

	haveFile := len(path) > 0
	cfg, err := decode(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	if data, err = os.ReadFile(path); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if cfg, err = decode(data, cfg, true); err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare returns expanded default configuration.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

// Dump serializes actual configuration.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
