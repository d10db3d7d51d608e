// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagehand Contributors

package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stagehand-dev/stagehand/internal/config"
	stagerr "github.com/stagehand-dev/stagehand/pkg/errors"
)

// NewRootCmd creates the root stagehand command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "stagehand",
		Short:         "Stagehand — throwaway test fixtures for framework plugins",
		Long:          "Stagehand builds ephemeral test databases, generates application drivers, and installs view templates for plugin development.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initViper(cmd)
		},
	}

	// Global flags — these map to viper keys via initViper.
	root.PersistentFlags().StringP("config", "c", "", "path to config file")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	// Register subcommands
	root.AddCommand(
		newTestDBCmd(),
		newGenAppCmd(),
		newInstallCmd(),
		newVersionCmd(),
	)

	return root
}

// initViper prepares the shared Viper instance so every subcommand sees
// the same precedence: flag > environment > config file > defaults.
func initViper(cmd *cobra.Command) error {
	v := viper.GetViper()

	config.SetDefaults(v)
	config.SetupEnv(v)

	cfgFile, _ := cmd.Flags().GetString("config")
	if err := loadConfigFile(v, cfgFile); err != nil {
		return err
	}

	if err := v.BindPFlag("verbose", cmd.Root().PersistentFlags().Lookup("verbose")); err != nil {
		return stagerr.Errorf(stagerr.CodeCLISetupFailure, "binding verbose flag: %w", err)
	}
	if v.GetBool("verbose") {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	return nil
}

// loadConfigFile reads the explicit config file when one was given, and
// otherwise searches the standard locations for stagehand.yaml, seeding a
// default on first run. Running without any config file is fine; only
// parse and permission errors surface.
func loadConfigFile(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return stagerr.Errorf(stagerr.CodeConfigLoadReadFailure, "reading config file: %w", err)
		}
		return nil
	}

	// The config type stays unset: with a type, Viper also probes the bare
	// name "stagehand", which is usually the compiled binary sitting in ".".
	v.SetConfigName("stagehand")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/stagehand")
	v.AddConfigPath("/etc/stagehand")

	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		return stagerr.Errorf(stagerr.CodeConfigLoadReadFailure, "reading config: %w", err)
	}

	// First run: seed a commented default and read that instead.
	path := config.BootstrapConfig()
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return stagerr.Errorf(stagerr.CodeConfigLoadReadFailure, "reading seeded config: %w", err)
	}
	return nil
}
