// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagehand Contributors

package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stagehand-dev/stagehand/internal/appgen"
)

func newGenAppCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genapp",
		Short: "Generate an application driver manifest for plugin tests",
		Long: "Renders a uniquely named application manifest declaring the given plugins and\n" +
			"configuration, and prints the derived application name. Without --keep the manifest\n" +
			"is a validation run and is removed on exit.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			plugins, _ := cmd.Flags().GetStringArray("plugin")
			settings, _ := cmd.Flags().GetStringToString("set")
			keepFlag, _ := cmd.Flags().GetBool("keep")
			dir, _ := cmd.Flags().GetString("dir")

			keep := keepFlag || viper.GetBool("appgen.keep")
			if dir == "" {
				dir = viper.GetString("appgen.dir")
			}

			values := make(map[string]any, len(settings))
			for k, val := range settings {
				values[k] = coerceValue(val)
			}

			app, err := appgen.Generate(appgen.Options{
				Plugins: plugins,
				Values:  values,
				Dir:     dir,
				Keep:    keep,
			})
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			fmt.Fprintln(cmd.OutOrStdout(), app.Name())
			if keep {
				fmt.Fprintln(cmd.ErrOrStderr(), color.GreenString("manifest retained at %s", app.Path()))
			}
			return nil
		},
	}

	cmd.Flags().StringArray("plugin", nil, "plugin name to load (repeatable)")
	cmd.Flags().StringToString("set", nil, "configuration entry as key=value (repeatable)")
	cmd.Flags().Bool("keep", false, "retain the manifest file on exit")
	cmd.Flags().String("dir", "", "directory for the manifest file")

	return cmd
}

// coerceValue interprets a flag value as bool, int, or float before falling
// back to a plain string, so --set foo=1 lands as a number in the manifest.
func coerceValue(s string) any {
	// Integers before bools: ParseBool would claim "1" and "0".
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
