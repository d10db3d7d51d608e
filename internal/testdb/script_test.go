// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagehand Contributors

package testdb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestSplitStatements_Basic(t *testing.T) {
	stmts := splitStatements("CREATE TABLE t (id INTEGER);\nINSERT INTO t VALUES (1);")
	assert.Equal(t, []string{"CREATE TABLE t (id INTEGER)", "\nINSERT INTO t VALUES (1)"}, stmts)
}

func TestSplitStatements_SeparatorInsideLiteral(t *testing.T) {
	stmts := splitStatements(`INSERT INTO t VALUES ('a;b');INSERT INTO t VALUES ("c;d")`)
	assert.Len(t, stmts, 2)
	assert.Equal(t, `INSERT INTO t VALUES ('a;b')`, stmts[0])
	assert.Equal(t, `INSERT INTO t VALUES ("c;d")`, stmts[1])
}

func TestSplitStatements_SeparatorInsideComment(t *testing.T) {
	stmts := splitStatements("CREATE TABLE t (id INTEGER) # trailing; not a separator\n;INSERT INTO t VALUES (1)")
	assert.Len(t, stmts, 2)
	assert.Contains(t, stmts[0], "# trailing; not a separator")
}

func TestSplitStatements_DoubledQuoteEscape(t *testing.T) {
	stmts := splitStatements(`INSERT INTO t VALUES ('it''s;fine')`)
	assert.Len(t, stmts, 1)
}

func TestStripComments(t *testing.T) {
	got := stripComments("SELECT 1 # a comment\nFROM t")
	assert.Equal(t, "SELECT 1 \nFROM t", got)
}

func TestStripComments_HashInsideLiteral(t *testing.T) {
	got := stripComments(`INSERT INTO t VALUES ('#notacomment')`)
	assert.Equal(t, `INSERT INTO t VALUES ('#notacomment')`, got)
}

func TestCleanStatement_AutoIncrement(t *testing.T) {
	got := cleanStatement("CREATE TABLE t (id INTEGER PRIMARY KEY AUTO_INCREMENT, name TEXT)")
	assert.NotContains(t, strings.ToLower(got), "auto_increment")
	assert.Contains(t, got, "PRIMARY KEY")

	// Table-option form with a counter value.
	got = cleanStatement("CREATE TABLE t (id INTEGER) AUTO_INCREMENT=17")
	assert.NotContains(t, strings.ToLower(got), "auto_increment")
	assert.NotContains(t, got, "17")
}

func TestCleanStatement_SQLiteAutoincrementUntouched(t *testing.T) {
	stmt := "CREATE TABLE t (id INTEGER PRIMARY KEY AUTOINCREMENT)"
	assert.Equal(t, stmt, cleanStatement(stmt))
}

func TestCleanStatement_CommentOnlyBecomesBlank(t *testing.T) {
	got := cleanStatement("# nothing but commentary\n")
	assert.Equal(t, "", strings.TrimSpace(got))
}

func TestSplitStatements_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		// Statements free of separators, quotes, and comment markers join
		// and split back to themselves exactly.
		parts := rapid.SliceOfN(rapid.StringMatching(`[a-zA-Z0-9_,() \n]+`), 1, 10).Draw(t, "parts")
		script := strings.Join(parts, ";")
		assert.Equal(t, parts, splitStatements(script))
	})
}

func TestSplitStatements_QuotedNeverSplits(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		inner := rapid.StringMatching(`[a-zA-Z0-9; #]*`).Draw(t, "inner")
		stmt := "INSERT INTO t VALUES ('" + inner + "')"
		assert.Equal(t, []string{stmt}, splitStatements(stmt))
	})
}
