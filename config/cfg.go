package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"runtime"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"cssprite/common"
	"cssprite/sprite"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	SpritesConfig struct {
		Filter       common.FilterMode       `yaml:"filter" validate:"gte=0"`
		Limit        int64                   `yaml:"limit" validate:"gt=0"`
		Params       string                  `yaml:"params" validate:"required"`
		OutputPath   string                  `yaml:"output_path"`
		NameTemplate string                  `yaml:"name_template" validate:"required"`
		OutputDir    string                  `yaml:"output_dir"`
		Algorithm    common.PackingAlgorithm `yaml:"algorithm" validate:"gte=0"`
		Padding      int                     `yaml:"padding" validate:"gte=0,lte=1024"`
		Timeout      time.Duration           `yaml:"timeout" validate:"gt=0"`
		EmitSize     bool                    `yaml:"emit_size"`
	}

	ProcessingConfig struct {
		Jobs int `yaml:"jobs" validate:"gte=0"`
	}

	Config struct {
		Version    int              `yaml:"version" validate:"eq=1"`
		Sprites    SpritesConfig    `yaml:"sprites"`
		Processing ProcessingConfig `yaml:"processing"`
		Logging    LoggingConfig    `yaml:"logging"`
		Reporting  ReporterConfig   `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, user supplied value is taken
	// as is
	NameTemplateFieldName TemplateFieldName = "name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(NameTemplateFieldName)),
)

// Transform returns sprite engine configuration.
func (conf *SpritesConfig) Transform() sprite.Config {
	return sprite.Config{
		Filter: sprite.FilterConfig{
			Mode:   conf.Filter,
			Limit:  conf.Limit,
			Marker: conf.Params,
		},
		Algorithm:    conf.Algorithm,
		Padding:      conf.Padding,
		Timeout:      conf.Timeout,
		NameTemplate: conf.NameTemplate,
		OutputPath:   conf.OutputPath,
		EmitSize:     conf.EmitSize,
	}
}

// Workers returns effective number of concurrent jobs.
func (conf *ProcessingConfig) Workers() int {
	if conf.Jobs > 0 {
		return conf.Jobs
	}
	return runtime.NumCPU()
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("failed to validate configuration: %w", err)
		}
		if _, err := sprite.ParseNameTemplate(cfg.Sprites.NameTemplate); err != nil {
			return nil, fmt.Errorf("sprites: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
