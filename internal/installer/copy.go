// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagehand Contributors

package installer

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// copyTree recursively copies every regular file and directory under src
// into dst, creating directories as needed and preserving file modes.
// Returns the number of files copied; on failure the count reflects what
// landed on disk before the error. No rollback.
func copyTree(src, dst string) (int, error) {
	copied := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if err := copyFile(path, target); err != nil {
			return err
		}
		copied++
		return nil
	})
	return copied, err
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		// Drop the half-written file; earlier completed files stay put.
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	return out.Close()
}
