// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagehand Contributors

// Package installer copies a view-template directory into a framework
// installation root. The root resolves through an explicit chain: caller
// argument, then the STAGEHAND_INSTALL_ROOT environment override, then an
// interactive prompt falling back to the platform default. Declining the
// prompt is a successful no-op, not an error.
package installer

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	stagerr "github.com/stagehand-dev/stagehand/pkg/errors"
)

// EnvInstallRoot is the environment override for the installation root.
// When set and non-empty it is used as-is, without prompting.
const EnvInstallRoot = "STAGEHAND_INSTALL_ROOT"

// namespaceSeparator separates segments of a plugin package name.
const namespaceSeparator = "::"

// Prompt option sentinels.
const (
	optionOther   = "other…"
	optionDecline = "do not install"
)

// Options configures Install. Package is required.
type Options struct {
	// Package is the plugin package name, e.g. "Shop::Cart".
	Package string
	// SourceDir is the template directory to copy from.
	SourceDir string
	// Subpath is an optional path appended below the package directory.
	Subpath string
	// Root overrides root resolution entirely when non-empty.
	Root string
	// Prompter supplies the interactive fallback. Default: huh forms.
	Prompter Prompter
	// LookupEnv overrides environment lookup. Default: os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Install resolves the installation root and recursively copies SourceDir
// into <root>/<package-as-path>/<subpath>. Already-copied files remain on
// disk when a later copy fails.
func Install(opts Options) error {
	if opts.Package == "" {
		return stagerr.New(stagerr.CodeInstallerInvalidInput, "package name is required")
	}

	root, err := resolveRoot(opts)
	if err != nil {
		return err
	}
	if root == "" {
		slog.Info("installation declined, nothing to do", "package", opts.Package)
		return nil
	}

	dest := filepath.Join(root, PackagePath(opts.Package))
	if opts.Subpath != "" {
		dest = filepath.Join(dest, filepath.FromSlash(opts.Subpath))
	}

	copied, err := copyTree(opts.SourceDir, dest)
	if err != nil {
		return stagerr.Wrap(err, stagerr.CodeInstallerCopyFailure, "copying templates",
			stagerr.FieldPath(dest), stagerr.FieldPackage(opts.Package), stagerr.Field("copied", copied))
	}
	// A walk that finds nothing to copy is as fatal as one that fails.
	if copied == 0 {
		return stagerr.New(stagerr.CodeInstallerCopyFailure, "no template files copied from "+opts.SourceDir,
			stagerr.FieldPath(dest), stagerr.FieldPackage(opts.Package))
	}

	slog.Debug("templates installed", "package", opts.Package, "dest", dest, "files", copied)
	return nil
}

// resolveRoot walks the resolution chain and returns the chosen root, or
// "" when the user declined or supplied an empty path. The two empty
// outcomes are distinct branches with identical no-op behavior.
func resolveRoot(opts Options) (string, error) {
	if opts.Root != "" {
		return opts.Root, nil
	}

	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvInstallRoot); ok && v != "" {
		return v, nil
	}

	prompter := opts.Prompter
	if prompter == nil {
		prompter = huhPrompter{}
	}

	primary, alternates := DefaultRoots()
	options := make([]string, 0, len(alternates)+3)
	options = append(options, primary)
	options = append(options, alternates...)
	options = append(options, optionOther, optionDecline)

	choice := primary
	if err := prompter.Select("Install templates into", options, &choice); err != nil {
		return "", stagerr.Wrap(err, stagerr.CodeInstallerPromptFailure, "selecting installation root")
	}

	switch choice {
	case optionDecline:
		return "", nil
	case optionOther:
		var custom string
		if err := prompter.Input("Installation root", &custom); err != nil {
			return "", stagerr.Wrap(err, stagerr.CodeInstallerPromptFailure, "reading installation root")
		}
		return strings.TrimSpace(custom), nil
	}

	return choice, nil
}

// PackagePath converts a package name into a relative directory path,
// e.g. "Shop::Cart" becomes "Shop/Cart".
func PackagePath(pkg string) string {
	segments := strings.Split(pkg, namespaceSeparator)
	return filepath.Join(segments...)
}
