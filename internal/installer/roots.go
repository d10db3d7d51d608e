// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagehand Contributors

package installer

import (
	"path/filepath"
	"runtime"

	"github.com/mitchellh/go-homedir"
)

// templateSubdir is the fixed suffix appended to every installation root.
const templateSubdir = "templates"

// DefaultRoots returns the platform default installation root and the
// alternate historical roots offered by the interactive prompt.
func DefaultRoots() (primary string, alternates []string) {
	if runtime.GOOS == "windows" {
		primary = filepath.Join(`C:\www\stagehand`, templateSubdir)
		alternates = []string{
			filepath.Join(`C:\Inetpub\wwwroot\stagehand`, templateSubdir),
		}
		return primary, alternates
	}

	primary = filepath.Join("/usr/local/stagehand", templateSubdir)
	alternates = []string{
		filepath.Join("/usr/local/www/stagehand", templateSubdir),
	}
	if home, err := homedir.Dir(); err == nil {
		alternates = append(alternates, filepath.Join(home, "stagehand", templateSubdir))
	}
	return primary, alternates
}
