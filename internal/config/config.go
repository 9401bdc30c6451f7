// Package config provides configuration management for daily using Viper.
//
// Settings are read from config.yaml in the current directory or in
// ~/.config/daily/, and from DAILY_* environment variables:
//
//	version: 1
//	root: workspace/daily      # relative to $HOME, or absolute / ~-prefixed
//	template: template
//	year_format: "2006"        # Go time layout
//	date_format: "0102"
//	auto_create_root: false
//	exclude:
//	  - "**/.DS_Store"
package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/thoreinstein/daily/internal/errors"
	"github.com/thoreinstein/daily/internal/paths"
)

// Defaults for every configuration key.
const (
	DefaultRoot       = "workspace/daily"
	DefaultTemplate   = "template"
	DefaultYearFormat = "2006"
	DefaultDateFormat = "0102"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version        int      `mapstructure:"version" yaml:"version" json:"version" toml:"version"`
	Root           string   `mapstructure:"root" yaml:"root" json:"root" toml:"root"`
	Template       string   `mapstructure:"template" yaml:"template" json:"template" toml:"template"`
	YearFormat     string   `mapstructure:"year_format" yaml:"year_format" json:"year_format" toml:"year_format"`
	DateFormat     string   `mapstructure:"date_format" yaml:"date_format" json:"date_format" toml:"date_format"`
	AutoCreateRoot bool     `mapstructure:"auto_create_root" yaml:"auto_create_root" json:"auto_create_root" toml:"auto_create_root"`
	Exclude        []string `mapstructure:"exclude" yaml:"exclude,omitempty" json:"exclude,omitempty" toml:"exclude,omitempty"`
}

// Keys lists the recognized configuration keys in display order.
var Keys = []string{
	"version",
	"root",
	"template",
	"year_format",
	"date_format",
	"auto_create_root",
	"exclude",
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() *Config {
	return &Config{
		Version:    1,
		Root:       DefaultRoot,
		Template:   DefaultTemplate,
		YearFormat: DefaultYearFormat,
		DateFormat: DefaultDateFormat,
	}
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	// Drop state from an earlier Init/Load so repeated runs start clean.
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix("DAILY")
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("version", d.Version)
	v.SetDefault("root", d.Root)
	v.SetDefault("template", d.Template)
	v.SetDefault("year_format", d.YearFormat)
	v.SetDefault("date_format", d.DateFormat)
	v.SetDefault("auto_create_root", d.AutoCreateRoot)
	v.SetDefault("exclude", []string{})
}

// FileSettings returns a viper instance holding only the defaults and the
// contents of the file at path, without DAILY_* environment overrides. A
// missing file yields the defaults. Use it to edit the file in place.
func FileSettings(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrapf(err, "reading config file %s", path)
		}
	}
	return v, nil
}

// Decode unmarshals and validates the settings held by v.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Mark(errs[0], errors.ErrInvalidConfig)
	}
	return &cfg, nil
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			if path != "" && os.IsNotExist(err) {
				return nil, errors.Wrapf(err, "config file not found at %s", path)
			}
			return nil, errors.Wrap(err, "reading config file")
		}
		// Implicit search found nothing; defaults apply.
	}

	cfg, err := Decode(viper.GetViper())
	if err != nil {
		return nil, errors.Wrap(err, "validating config")
	}
	return cfg, nil
}

// FileUsed returns the config file viper loaded, or the default location
// when none was found.
func FileUsed() string {
	if f := viper.ConfigFileUsed(); f != "" {
		return f
	}
	return paths.ConfigFile()
}
