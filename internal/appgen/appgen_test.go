// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagehand Contributors

package appgen_test

import (
	"os"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagehand-dev/stagehand/internal/appgen"
	stagerr "github.com/stagehand-dev/stagehand/pkg/errors"
)

var appNameRe = regexp.MustCompile(`^stagehand-app-\d+$`)

func TestGenerate(t *testing.T) {
	app, err := appgen.Generate(appgen.Options{
		Plugins: []string{"A", "B"},
		Values:  map[string]any{"foo": 1},
		Dir:     t.TempDir(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.Regexp(t, appNameRe, app.Name())

	raw, err := os.ReadFile(app.Path())
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "A")
	assert.Contains(t, content, "B")
	assert.Contains(t, content, "foo: 1")
	assert.Contains(t, content, "name: "+app.Name())
}

func TestGenerate_LoadRoundTrip(t *testing.T) {
	app, err := appgen.Generate(appgen.Options{
		Plugins: []string{"Shop::Cart", "Auth"},
		Values:  map[string]any{"foo": 1, "bar": "two"},
		Dir:     t.TempDir(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	m, err := appgen.Load(app.Path())
	require.NoError(t, err)
	assert.Equal(t, app.Name(), m.Name)
	assert.Equal(t, []string{"Shop::Cart", "Auth"}, m.Plugins)
	assert.Equal(t, 1, m.Config["foo"])
	assert.Equal(t, "two", m.Config["bar"])
	assert.True(t, m.Setup)
	assert.NotEmpty(t, m.InstanceID)
}

func TestGenerate_PrebuiltConfigTakesPrecedence(t *testing.T) {
	app, err := appgen.Generate(appgen.Options{
		Config: appgen.NewConfig(map[string]any{"wins": true}),
		Values: map[string]any{"loses": true},
		Dir:    t.TempDir(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	m, err := appgen.Load(app.Path())
	require.NoError(t, err)
	assert.Equal(t, true, m.Config["wins"])
	assert.NotContains(t, m.Config, "loses")
}

func TestGenerate_EmptyOptions(t *testing.T) {
	app, err := appgen.Generate(appgen.Options{Dir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	m, err := appgen.Load(app.Path())
	require.NoError(t, err)
	assert.Empty(t, m.Plugins)
	assert.Empty(t, m.Config)
}

func TestGenerate_DistinctNamesAndFiles(t *testing.T) {
	dir := t.TempDir()

	first, err := appgen.Generate(appgen.Options{Dir: dir})
	require.NoError(t, err)
	t.Cleanup(func() { _ = first.Close() })

	second, err := appgen.Generate(appgen.Options{Dir: dir})
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	assert.NotEqual(t, first.Name(), second.Name())
	assert.NotEqual(t, first.Path(), second.Path())
}

func TestClose_RemovesFileByDefault(t *testing.T) {
	app, err := appgen.Generate(appgen.Options{Dir: t.TempDir()})
	require.NoError(t, err)

	require.NoError(t, app.Close())
	_, statErr := os.Stat(app.Path())
	assert.True(t, os.IsNotExist(statErr))

	// Idempotent, and tolerant of the file already being gone.
	require.NoError(t, app.Close())
}

func TestClose_KeepRetainsFile(t *testing.T) {
	app, err := appgen.Generate(appgen.Options{Dir: t.TempDir(), Keep: true})
	require.NoError(t, err)

	require.NoError(t, app.Close())
	_, statErr := os.Stat(app.Path())
	assert.NoError(t, statErr)
}

func TestLoad_DamagedManifest(t *testing.T) {
	app, err := appgen.Generate(appgen.Options{Dir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	// Damage surfaces at load time, not at generation time.
	require.NoError(t, os.WriteFile(app.Path(), []byte(":\n  - not: [valid"), 0o644))
	_, err = appgen.Load(app.Path())
	require.Error(t, err)
	assert.True(t, stagerr.HasCode(err, stagerr.CodeAppGenLoadInvalidFormat))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := appgen.Load("/nonexistent/stagehand-app-1.yaml")
	require.Error(t, err)
	assert.True(t, stagerr.HasCode(err, stagerr.CodeAppGenLoadInvalidFormat))
}
