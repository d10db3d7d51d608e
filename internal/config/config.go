// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagehand Contributors

// Package config loads stagehand configuration with the standard
// precedence: flags > environment (STAGEHAND_ prefix) > config file >
// defaults.
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"

	stagerr "github.com/stagehand-dev/stagehand/pkg/errors"
)

// Config is the top-level stagehand configuration.
type Config struct {
	Verbose bool          `mapstructure:"verbose"`
	TestDB  TestDBConfig  `mapstructure:"testdb"`
	AppGen  AppGenConfig  `mapstructure:"appgen"`
	Install InstallConfig `mapstructure:"install"`
}

// TestDBConfig controls the database builder.
type TestDBConfig struct {
	Keep bool `mapstructure:"keep"`
}

// AppGenConfig controls the application generator.
type AppGenConfig struct {
	Dir  string `mapstructure:"dir"`
	Keep bool   `mapstructure:"keep"`
}

// InstallConfig controls the template installer. Root maps to the
// STAGEHAND_INSTALL_ROOT environment override.
type InstallConfig struct {
	Root    string `mapstructure:"root"`
	Source  string `mapstructure:"source"`
	Subpath string `mapstructure:"subpath"`
}

// SetDefaults installs the default values on a viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("verbose", false)
	v.SetDefault("testdb.keep", false)
	v.SetDefault("appgen.dir", ".")
	v.SetDefault("appgen.keep", false)
	v.SetDefault("install.root", "")
	v.SetDefault("install.source", "")
	v.SetDefault("install.subpath", "")
}

// SetupEnv binds STAGEHAND_-prefixed environment variables, so e.g.
// STAGEHAND_INSTALL_ROOT overrides install.root.
func SetupEnv(v *viper.Viper) {
	v.SetEnvPrefix("STAGEHAND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads configuration from the given path (or defaults when empty)
// with environment variable overrides applied.
func Load(path string) (*Config, error) {
	v := viper.New()

	SetDefaults(v)
	SetupEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, stagerr.Errorf(stagerr.CodeConfigLoadReadFailure, "reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, stagerr.Errorf(stagerr.CodeConfigValidateInvalidValue, "unmarshalling config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, stagerr.Errorf(stagerr.CodeConfigValidateInvalidValue, "validating config: %w", errors.Join(errs...))
	}

	return &cfg, nil
}

// Validate checks the configuration for logical errors, collecting all
// issues rather than stopping at the first one.
func (c *Config) Validate() []error {
	var errs []error

	if c.AppGen.Dir == "" {
		errs = append(errs, stagerr.Errorf(stagerr.CodeConfigValidateInvalidValue,
			"config: appgen.dir must not be empty"))
	}

	if c.Install.Subpath != "" && strings.HasPrefix(c.Install.Subpath, "/") {
		errs = append(errs, stagerr.Errorf(stagerr.CodeConfigValidateInvalidValue,
			"config: install.subpath must be relative, got %q", c.Install.Subpath))
	}

	return errs
}
