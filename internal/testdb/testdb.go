// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagehand Contributors

// Package testdb provisions throwaway SQLite databases for plugin tests.
// Build executes a schema script followed by a data script against a fresh
// temp-file database and returns a handle owning the connection and the
// file's lifetime. Cleanup is explicit and caller-owned: nothing is tracked
// process-wide, and Close is safe on every exit path.
package testdb

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	stagerr "github.com/stagehand-dev/stagehand/pkg/errors"
)

// driverPreference lists usable database/sql driver names in preference
// order: mattn/go-sqlite3 first, then a pure-Go registration ("sqlite",
// e.g. modernc) when the cgo driver is not linked in.
var driverPreference = []string{"sqlite3", "sqlite"}

// Options configures Build. SchemaPath and DataPath are required.
type Options struct {
	// SchemaPath is the DDL script creating the test schema.
	SchemaPath string
	// DataPath is the DML script populating the schema.
	DataPath string
	// Keep retains the database file after Close. Default is removal.
	Keep bool
}

// DB is a handle to a provisioned test database. The caller owns its
// lifetime and must call Close when done.
type DB struct {
	driver string
	path   string
	db     *sql.DB
	keep   bool

	closeOnce sync.Once
	closeErr  error
}

// Build provisions a temp-file SQLite database and executes the schema and
// data scripts against it, statement by statement. Statements are split on
// ';' with awareness of string literals and #-comments; each statement has
// comments and the AUTO_INCREMENT keyword stripped before execution, and
// statements blank after stripping are skipped. Any failing statement
// aborts the build with the statement text attached to the error.
func Build(ctx context.Context, opts Options) (*DB, error) {
	if opts.SchemaPath == "" {
		return nil, stagerr.New(stagerr.CodeTestDBBuildInvalidInput, "schema script path is required")
	}
	if opts.DataPath == "" {
		return nil, stagerr.New(stagerr.CodeTestDBBuildInvalidInput, "data script path is required")
	}

	schema, err := os.ReadFile(opts.SchemaPath)
	if err != nil {
		return nil, stagerr.Wrap(err, stagerr.CodeTestDBScriptReadFailure, "reading schema script", stagerr.FieldPath(opts.SchemaPath))
	}
	data, err := os.ReadFile(opts.DataPath)
	if err != nil {
		return nil, stagerr.Wrap(err, stagerr.CodeTestDBScriptReadFailure, "reading data script", stagerr.FieldPath(opts.DataPath))
	}

	driver, err := selectDriver()
	if err != nil {
		return nil, err
	}

	f, err := os.CreateTemp("", "stagehand-*.db")
	if err != nil {
		return nil, stagerr.Wrap(err, stagerr.CodeTestDBOpenFailure, "creating temp database file")
	}
	// Close the handle before opening a connection — embedded engines treat
	// an open handle as a lock.
	path := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, stagerr.Wrap(err, stagerr.CodeTestDBOpenFailure, "closing temp database file", stagerr.FieldPath(path))
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		_ = os.Remove(path)
		return nil, stagerr.Wrap(err, stagerr.CodeTestDBOpenFailure, "opening test database", stagerr.FieldPath(path))
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		_ = os.Remove(path)
		return nil, stagerr.Wrap(err, stagerr.CodeTestDBOpenFailure, "pinging test database", stagerr.FieldPath(path))
	}

	script := string(schema) + ";\n" + string(data)
	executed := 0
	for _, raw := range splitStatements(script) {
		stmt := cleanStatement(raw)
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			_ = os.Remove(path)
			return nil, stagerr.Wrap(err, stagerr.CodeTestDBStatementFailure,
				"executing statement: "+strings.TrimSpace(stmt),
				stagerr.FieldStatement(strings.TrimSpace(stmt)), stagerr.FieldPath(path))
		}
		executed++
	}

	slog.Debug("test database built", "driver", driver, "path", path, "statements", executed)

	return &DB{driver: driver, path: path, db: db, keep: opts.Keep}, nil
}

// selectDriver returns the first registered driver from driverPreference.
func selectDriver() (string, error) {
	registered := sql.Drivers()
	for _, name := range driverPreference {
		if slices.Contains(registered, name) {
			return name, nil
		}
	}
	return "", stagerr.New(stagerr.CodeTestDBDriverUnavailable,
		"no usable sqlite driver registered (want one of sqlite3, sqlite)")
}

// Descriptor returns the connection descriptor, e.g. "sqlite3:dbname=/tmp/stagehand-1.db".
func (d *DB) Descriptor() string {
	return d.driver + ":dbname=" + d.path
}

// Conn exposes the live connection for harness use.
func (d *DB) Conn() *sql.DB { return d.db }

// Path returns the database file path.
func (d *DB) Path() string { return d.path }

// Driver returns the selected driver name.
func (d *DB) Driver() string { return d.driver }

// Close closes the connection and, unless Keep was set, removes the
// database file. Close is idempotent.
func (d *DB) Close() error {
	d.closeOnce.Do(func() {
		if err := d.db.Close(); err != nil {
			d.closeErr = stagerr.Wrap(err, stagerr.CodeTestDBCloseFailure, "closing test database", stagerr.FieldPath(d.path))
		}
		if d.keep {
			return
		}
		if err := os.Remove(d.path); err != nil && d.closeErr == nil {
			d.closeErr = stagerr.Wrap(err, stagerr.CodeTestDBCloseFailure, "removing test database file", stagerr.FieldPath(d.path))
		}
	})
	return d.closeErr
}

// ParseDescriptor splits a connection descriptor into driver and file path.
func ParseDescriptor(desc string) (driver, path string, err error) {
	driver, rest, ok := strings.Cut(desc, ":")
	if !ok || driver == "" || !strings.HasPrefix(rest, "dbname=") {
		return "", "", stagerr.Errorf(stagerr.CodeTestDBBuildInvalidInput, "malformed connection descriptor %q", desc)
	}
	path = strings.TrimPrefix(rest, "dbname=")
	if path == "" {
		return "", "", stagerr.Errorf(stagerr.CodeTestDBBuildInvalidInput, "connection descriptor %q has empty path", desc)
	}
	return driver, path, nil
}
