// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagehand Contributors

package appgen

import (
	"os"

	"gopkg.in/yaml.v3"

	stagerr "github.com/stagehand-dev/stagehand/pkg/errors"
)

// Manifest is the deserialized form of a generated application driver.
type Manifest struct {
	Name       string         `yaml:"name"`
	InstanceID string         `yaml:"instance_id"`
	Plugins    []string       `yaml:"plugins"`
	Config     map[string]any `yaml:"config"`
	Setup      bool           `yaml:"setup"`
}

// Load reads a generated manifest back from disk. Any damage to the
// rendered document — unreadable file, invalid YAML, missing name —
// surfaces here, not at generation time.
func Load(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, stagerr.Wrap(err, stagerr.CodeAppGenLoadInvalidFormat, "reading application manifest", stagerr.FieldPath(path))
	}

	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, stagerr.Wrap(err, stagerr.CodeAppGenLoadInvalidFormat, "parsing application manifest", stagerr.FieldPath(path))
	}

	if m.Name == "" {
		return nil, stagerr.New(stagerr.CodeAppGenLoadInvalidFormat, "application manifest has no name", stagerr.FieldPath(path))
	}

	return &m, nil
}
