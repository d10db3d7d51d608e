// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagehand Contributors

package testdb

import (
	"regexp"
	"strings"
)

// autoIncrementRe matches the MySQL-style AUTO_INCREMENT keyword, including
// the table-option form AUTO_INCREMENT=N. SQLite rejects it; its own
// AUTOINCREMENT keyword has no underscore and passes through untouched.
var autoIncrementRe = regexp.MustCompile(`(?i)\bauto_increment(\s*=\s*\d+)?`)

// splitStatements splits a script into statements on ';' while tracking
// single- and double-quoted literals and #-comments, so a separator inside
// either does not end a statement. Quote escaping by doubling ('it''s')
// falls out of the state machine naturally.
func splitStatements(script string) []string {
	var (
		stmts   []string
		cur     strings.Builder
		quote   rune // active quote char, 0 when outside a literal
		comment bool
	)

	for _, r := range script {
		switch {
		case comment:
			cur.WriteRune(r)
			if r == '\n' {
				comment = false
			}
		case quote != 0:
			cur.WriteRune(r)
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
			cur.WriteRune(r)
		case r == '#':
			comment = true
			cur.WriteRune(r)
		case r == ';':
			stmts = append(stmts, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}

	if cur.Len() > 0 {
		stmts = append(stmts, cur.String())
	}

	return stmts
}

// stripComments removes #-to-end-of-line comments from a statement,
// leaving # characters inside string literals alone.
func stripComments(stmt string) string {
	var (
		out     strings.Builder
		quote   rune
		comment bool
	)

	for _, r := range stmt {
		switch {
		case comment:
			if r == '\n' {
				comment = false
				out.WriteRune(r)
			}
		case quote != 0:
			out.WriteRune(r)
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
			out.WriteRune(r)
		case r == '#':
			comment = true
		default:
			out.WriteRune(r)
		}
	}

	return out.String()
}

// cleanStatement prepares a raw statement for execution: comments stripped,
// AUTO_INCREMENT removed. A result that is blank after cleaning must be
// skipped by the caller, not executed.
func cleanStatement(stmt string) string {
	return autoIncrementRe.ReplaceAllString(stripComments(stmt), "")
}
