// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagehand Contributors

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stagehand-dev/stagehand/internal/installer"
)

func newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install PACKAGE",
		Short: "Install view templates for a plugin package",
		Long: "Copies the template directory into <root>/<package-path>/<subpath>. The root\n" +
			"resolves from --root, then STAGEHAND_INSTALL_ROOT, then an interactive prompt\n" +
			"with the platform default preselected. Declining the prompt is a no-op.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pkg string
			if len(args) > 0 {
				pkg = args[0]
			}

			source, _ := cmd.Flags().GetString("source")
			subpath, _ := cmd.Flags().GetString("subpath")
			root, _ := cmd.Flags().GetString("root")

			if source == "" {
				source = viper.GetString("install.source")
			}
			if subpath == "" {
				subpath = viper.GetString("install.subpath")
			}
			// install.root carries the STAGEHAND_INSTALL_ROOT override via
			// viper env binding; the installer applies its own env lookup as
			// well, so either path honors the variable.
			if root == "" {
				root = viper.GetString("install.root")
			}

			err := installer.Install(installer.Options{
				Package:   pkg,
				SourceDir: source,
				Subpath:   subpath,
				Root:      root,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.ErrOrStderr(), color.GreenString("install finished for %s", pkg))
			return nil
		},
	}

	cmd.Flags().String("source", "", "template directory to install from")
	cmd.Flags().String("subpath", "", "path appended below the package directory")
	cmd.Flags().String("root", "", "installation root (skips prompting)")

	return cmd
}
