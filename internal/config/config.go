// Package config loads orderform settings from a YAML file, a .env file and
// ORDERFORM_* environment variables, in increasing order of precedence.
package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"

	"github.com/reoring/orderform"
)

const (
	defaultName  = "config"
	envPrefix    = "ORDERFORM_"
	defaultLevel = "info"
)

type Config struct {
	Env struct {
		Env   string `json:"env" yaml:"env"`
		Debug bool   `json:"debug" yaml:"debug"`
		Log   Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	Recorder Recorder `json:"recorder" yaml:"recorder"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
	// Path is a file the logger writes to. The TUI needs the terminal, so
	// interactive runs should log to a file.
	Path string `json:"path" yaml:"path"`
}

// Recorder configures where recorded submissions go.
type Recorder struct {
	// Format is "json" (JSON lines) or "yaml" (YAML documents).
	Format string `json:"format" yaml:"format"`
	// Path of the file records are appended to. Empty means log only.
	Path string `json:"path" yaml:"path"`
}

// RecorderFormat returns the parsed recorder format.
func (c *Config) RecorderFormat() orderform.Format {
	f, err := orderform.ParseFormat(c.Recorder.Format)
	if err != nil {
		return orderform.FormatJSON
	}
	return f
}

// New loads config.yaml from the usual places. A missing file is not an
// error: defaults and environment variables still apply.
func New() (*Config, error) {
	return Load(defaultName, ".", "config", "../config")
}

// Load searches name.yaml in dirs and layers .env and environment variables
// on top of it.
func Load(name string, dirs ...string) (*Config, error) {
	var found string
	for _, dir := range dirs {
		candidate := filepath.Join(dir, name+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			found = candidate
			break
		}
	}
	return load(found)
}

// LoadFile loads an explicit config file; unlike Load it fails when the file
// does not exist.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "config file %s", path)
	}
	return load(path)
}

func load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "read config %s failed", path)
		}
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, v string) (string, any) {
			// ORDERFORM_ENV_LOG_LEVEL -> env.log.level
			return envKey(key), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	cfg := new(Config)
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook:       trimSpaceHook,
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrap(err, "unmarshal config failed")
	}

	applyDefaults(cfg)
	if _, err := orderform.ParseFormat(cfg.Recorder.Format); err != nil {
		return nil, errors.Wrap(err, "recorder.format")
	}
	return cfg, nil
}

// loadDotEnv reads .env from the working directory when present. Variables
// already set in the environment win.
func loadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	return errors.Wrap(godotenv.Load(".env"), "load .env failed")
}

func envKey(raw string) string {
	trimmed := strings.TrimPrefix(raw, envPrefix)
	return strings.ReplaceAll(strings.ToLower(trimmed), "_", ".")
}

// trimSpaceHook drops surrounding whitespace from string values, which env
// files tend to carry.
func trimSpaceHook(from, to reflect.Kind, data any) (any, error) {
	if from != reflect.String || to != reflect.String {
		return data, nil
	}
	return strings.TrimSpace(reflect.ValueOf(data).String()), nil
}

func applyDefaults(cfg *Config) {
	if cfg.Env.Env == "" {
		cfg.Env.Env = "development"
	}
	if cfg.Env.Log.Level == "" {
		cfg.Env.Log.Level = defaultLevel
		if cfg.Env.Debug {
			cfg.Env.Log.Level = "debug"
		}
	}
	if cfg.Recorder.Format == "" {
		cfg.Recorder.Format = string(orderform.FormatJSON)
	}
}
