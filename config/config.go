// Package config loads the settings of the nlu commands from defaults, an optional
// nlu.toml file and NLU_ prefixed environment variables, in increasing precedence.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// FileName is the name of the optional config file, looked up in the working directory
const FileName = "nlu.toml"

// Config holds all settings
type Config struct {
	Dataset        string  `mapstructure:"dataset"`
	Model          string  `mapstructure:"model"`
	Heads          int     `mapstructure:"heads"`
	PremoduloFloor uint32  `mapstructure:"premodulo_floor"`
	Threads        int     `mapstructure:"threads"`
	Significance   byte    `mapstructure:"significance"`
	MaxSlotSpan    int     `mapstructure:"max_slot_span"`
	MinProbability float64 `mapstructure:"min_probability"`
	LogDB          string  `mapstructure:"log_db"`
	LogJSON        bool    `mapstructure:"log_json"`
	Verbose        bool    `mapstructure:"verbose"`
}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("dataset", "dataset.json")
	v.SetDefault("model", "../model")
	v.SetDefault("heads", 3)
	v.SetDefault("premodulo_floor", 30011)
	v.SetDefault("threads", 0) // number of cpus
	v.SetDefault("significance", 0)
	v.SetDefault("max_slot_span", 8)
	v.SetDefault("min_probability", 0.2)
	v.SetDefault("log_db", "")
	v.SetDefault("log_json", false)
	v.SetDefault("verbose", false)
}

// New returns a viper instance with defaults, environment binding and the config
// file of the directory dir, if present.
func New(dir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("NLU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	v.SetConfigName(strings.TrimSuffix(FileName, ".toml"))
	v.SetConfigType("toml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
	}
	return v, nil
}

// LoadWithViper unmarshals and checks the configuration of v
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads the configuration of the directory dir
func Load(dir string) (*Config, error) {
	v, err := New(dir)
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// Validate checks the ranges of the numeric settings
func (c *Config) Validate() error {
	switch {
	case c.Heads < 1:
		return errors.Errorf("heads must be at least 1, got %d", c.Heads)
	case c.PremoduloFloor < 2 || c.PremoduloFloor > 1<<16:
		return errors.Errorf("premodulo_floor %d out of range [2, 65536]", c.PremoduloFloor)
	case c.Threads < 0:
		return errors.Errorf("threads can't be negative, got %d", c.Threads)
	case c.Significance > 100:
		return errors.Errorf("significance %d out of range [0, 100]", c.Significance)
	case c.MaxSlotSpan < 1:
		return errors.Errorf("max_slot_span must be at least 1, got %d", c.MaxSlotSpan)
	case c.MinProbability < 0 || c.MinProbability > 1:
		return errors.Errorf("min_probability %g out of range [0, 1]", c.MinProbability)
	}
	return nil
}
