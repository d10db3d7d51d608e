// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagehand Contributors

package config

import (
	_ "embed"
	"log/slog"
	"os"
	"path/filepath"

	stagerr "github.com/stagehand-dev/stagehand/pkg/errors"
)

//go:embed stagehand.yaml.default
var DefaultConfigYAML []byte

// DefaultConfigPath returns ~/.config/stagehand/stagehand.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", stagerr.Errorf(stagerr.CodeConfigLoadReadFailure, "resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "stagehand", "stagehand.yaml"), nil
}

// BootstrapConfig seeds the commented default config on first run.
// Best-effort: any problem is logged at debug level and the caller
// proceeds without a config file. Returns the path written, or "" when
// nothing was written.
func BootstrapConfig() string {
	cfgPath, err := DefaultConfigPath()
	if err != nil {
		slog.Debug("config bootstrap skipped", "error", err)
		return ""
	}

	if _, err := os.Stat(cfgPath); err == nil {
		// A config is already in place; never overwrite it.
		return ""
	}

	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o700); err != nil {
		slog.Debug("config bootstrap skipped", "path", cfgPath, "error", err)
		return ""
	}
	if err := os.WriteFile(cfgPath, DefaultConfigYAML, 0o600); err != nil {
		slog.Debug("config bootstrap skipped", "path", cfgPath, "error", err)
		return ""
	}

	slog.Info("seeded default config", "path", cfgPath)
	return cfgPath
}
