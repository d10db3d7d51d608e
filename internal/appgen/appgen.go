// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagehand Contributors

// Package appgen renders throwaway application-driver manifests for the
// framework's test harness. A generated manifest names the application,
// lists the plugins to load, and carries the configuration document; the
// harness loads it back with Load. Generation does not validate the
// rendered output — damage surfaces at load time, mirroring the harness
// contract.
package appgen

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	stagerr "github.com/stagehand-dev/stagehand/pkg/errors"
)

// manifestTemplate is the fixed application skeleton. Three substitution
// points: application name, plugin list literal, configuration document.
const manifestTemplate = `# Generated by stagehand — application driver for plugin tests.
name: {{.Name}}
instance_id: {{.InstanceID}}
plugins: {{.PluginList}}
config:
{{.ConfigDump}}setup: true
`

var manifestTmpl = template.Must(template.New("manifest").Parse(manifestTemplate))

// Config is the framework configuration object attached to a generated
// application.
type Config struct {
	Values map[string]any
}

// NewConfig wraps a plain key/value mapping into a Config.
func NewConfig(values map[string]any) *Config {
	if values == nil {
		values = map[string]any{}
	}
	return &Config{Values: values}
}

// Options configures Generate. All fields are optional.
type Options struct {
	// Plugins lists the plugin names the application loads.
	Plugins []string
	// Values is a plain configuration mapping; wrapped into a Config.
	Values map[string]any
	// Config is a pre-built configuration object. Takes precedence over Values.
	Config *Config
	// Dir is the directory for the manifest file. Default: current directory.
	Dir string
	// Keep retains the manifest file after Close. Default is removal.
	Keep bool
}

// App is a handle to a generated application manifest. The caller owns its
// lifetime and must call Close when done.
type App struct {
	name string
	path string
	keep bool

	closeOnce sync.Once
	closeErr  error
}

// Generate renders an application manifest to a uniquely named file and
// returns the handle. The application name derives from the file's base
// name with the extension stripped; two calls in one process yield
// distinct names and files. The file is written and closed before return
// so later loaders can read it.
func Generate(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = NewConfig(opts.Values)
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	f, err := os.CreateTemp(dir, "stagehand-app-*.yaml")
	if err != nil {
		return nil, stagerr.Wrap(err, stagerr.CodeAppGenWriteFailure, "creating application manifest file")
	}
	path := f.Name()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	pluginList, err := flowList(opts.Plugins)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, stagerr.Wrap(err, stagerr.CodeAppGenRenderFailure, "encoding plugin list")
	}
	configDump, err := configDocument(cfg)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, stagerr.Wrap(err, stagerr.CodeAppGenRenderFailure, "encoding configuration")
	}

	err = manifestTmpl.Execute(f, struct {
		Name       string
		InstanceID string
		PluginList string
		ConfigDump string
	}{
		Name:       name,
		InstanceID: uuid.NewString(),
		PluginList: pluginList,
		ConfigDump: configDump,
	})
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, stagerr.Wrap(err, stagerr.CodeAppGenRenderFailure, "rendering application manifest", stagerr.FieldPath(path))
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, stagerr.Wrap(err, stagerr.CodeAppGenWriteFailure, "closing application manifest", stagerr.FieldPath(path))
	}

	slog.Debug("application manifest generated", "name", name, "path", path, "plugins", len(opts.Plugins))

	return &App{name: name, path: path, keep: opts.Keep}, nil
}

// flowList renders plugin names as a YAML flow sequence, e.g. [A, B].
func flowList(items []string) (string, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, item := range items {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: item})
	}
	out, err := yaml.Marshal(node)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// configDocument renders the configuration mapping as a YAML block indented
// under the manifest's config key.
func configDocument(cfg *Config) (string, error) {
	values := cfg.Values
	if values == nil {
		values = map[string]any{}
	}
	out, err := yaml.Marshal(values)
	if err != nil {
		return "", err
	}
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n") + "\n", nil
}

// Name returns the derived application name.
func (a *App) Name() string { return a.name }

// Path returns the manifest file path.
func (a *App) Path() string { return a.path }

// Close removes the manifest file unless Keep was set. Close is idempotent,
// and a manifest already removed from disk is not an error.
func (a *App) Close() error {
	a.closeOnce.Do(func() {
		if a.keep {
			return
		}
		if err := os.Remove(a.path); err != nil && !os.IsNotExist(err) {
			a.closeErr = stagerr.Wrap(err, stagerr.CodeAppGenWriteFailure, "removing application manifest", stagerr.FieldPath(a.path))
		}
	})
	return a.closeErr
}
