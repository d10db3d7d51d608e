// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagehand Contributors

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stagehand-dev/stagehand/internal/testdb"
)

func newTestDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "testdb",
		Short: "Provision a throwaway SQLite database from schema and data scripts",
		Long: "Creates a temp-file SQLite database, executes the schema script then the data script\n" +
			"against it, and prints the connection descriptor. Without --keep the database is a\n" +
			"validation run and is removed on exit.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, _ := cmd.Flags().GetString("schema")
			data, _ := cmd.Flags().GetString("data")
			keepFlag, _ := cmd.Flags().GetBool("keep")
			keep := keepFlag || viper.GetBool("testdb.keep")

			db, err := testdb.Build(cmd.Context(), testdb.Options{
				SchemaPath: schema,
				DataPath:   data,
				Keep:       keep,
			})
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			fmt.Fprintln(cmd.OutOrStdout(), db.Descriptor())
			if keep {
				fmt.Fprintln(cmd.ErrOrStderr(), color.GreenString("database retained at %s", db.Path()))
			}
			return nil
		},
	}

	cmd.Flags().String("schema", "", "path to the DDL script (required)")
	cmd.Flags().String("data", "", "path to the DML script (required)")
	cmd.Flags().Bool("keep", false, "retain the database file on exit")

	return cmd
}
