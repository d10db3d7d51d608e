// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagehand Contributors

// Package errors defines the shared error vocabulary for stagehand.
// Every error produced by the toolkit carries a machine-readable Code;
// helpers classify errors by the failure reason encoded in the code's
// final segment.
package errors

import (
	"fmt"
	"strings"

	"github.com/samber/oops"
)

// Code is the machine-readable identifier for an error.
type Code string

const (
	CodeTestDBBuildInvalidInput Code = "testdb.build.invalid_input"
	CodeTestDBDriverUnavailable Code = "testdb.driver.unavailable"
	CodeTestDBScriptReadFailure Code = "testdb.script.read_failure"
	CodeTestDBOpenFailure       Code = "testdb.open.failure"
	CodeTestDBStatementFailure  Code = "testdb.exec.statement_failure"
	CodeTestDBCloseFailure      Code = "testdb.close.failure"

	CodeAppGenRenderFailure     Code = "appgen.render.failure"
	CodeAppGenWriteFailure      Code = "appgen.write.failure"
	CodeAppGenLoadInvalidFormat Code = "appgen.load.invalid_format"

	CodeInstallerInvalidInput  Code = "installer.install.invalid_input"
	CodeInstallerPromptFailure Code = "installer.prompt.failure"
	CodeInstallerRootFailure   Code = "installer.root.failure"
	CodeInstallerCopyFailure   Code = "installer.copy.failure"

	CodeConfigLoadReadFailure      Code = "config.load.read.failure"
	CodeConfigValidateInvalidValue Code = "config.validate.invalid_value"

	CodeCLISetupFailure Code = "cli.setup.failure"
	CodeCLIInputInvalid Code = "cli.input.invalid"
)

// Attr is a structured key/value context attached to an error.
type Attr struct {
	Key   string
	Value any
}

// Field creates a structured error field.
func Field(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// FieldStatement attaches the SQL statement that caused a failure.
func FieldStatement(value string) Attr {
	return Field("statement", value)
}

// FieldPath attaches the filesystem path involved in a failure.
func FieldPath(value string) Attr {
	return Field("path", value)
}

// FieldPackage attaches the plugin package name involved in a failure.
func FieldPackage(value string) Attr {
	return Field("package", value)
}

func flatten(fields []Attr) []any {
	out := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		out = append(out, f.Key, f.Value)
	}
	return out
}

func New(code Code, msg string, fields ...Attr) error {
	return oops.Code(code).With(flatten(fields)...).New(msg)
}

func Errorf(code Code, format string, args ...any) error {
	return oops.Code(code).Errorf(format, args...)
}

func Wrap(err error, code Code, msg string, fields ...Attr) error {
	if err == nil {
		return nil
	}

	return oops.Code(code).With(flatten(fields)...).Wrapf(err, "%s", msg)
}

func Wrapf(err error, code Code, format string, args ...any) error {
	if err == nil {
		return nil
	}

	return oops.Code(code).Wrapf(err, format, args...)
}

// CodeOf extracts the Code from an error chain, or "" when the error did
// not originate in this package.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}

	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}

	if code, ok := oopsErr.Code().(Code); ok {
		return code
	}

	if code, ok := oopsErr.Code().(string); ok {
		return Code(code)
	}

	return Code(fmt.Sprintf("%v", oopsErr.Code()))
}

// FieldsOf returns the structured fields attached to an error chain.
func FieldsOf(err error) map[string]any {
	if err == nil {
		return nil
	}

	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return nil
	}

	return oopsErr.Context()
}

func HasCode(err error, code Code) bool {
	if err == nil {
		return false
	}
	return CodeOf(err) == code
}

// reason returns the final dot-separated segment of a code.
func reason(code Code) string {
	s := string(code)
	if i := strings.LastIndex(s, "."); i >= 0 {
		return s[i+1:]
	}
	return s
}

func IsInvalidInput(err error) bool {
	r := reason(CodeOf(err))
	return r == "invalid_input" || r == "invalid" || r == "invalid_value" || r == "invalid_format"
}

func IsUnavailable(err error) bool {
	return reason(CodeOf(err)) == "unavailable"
}

func IsFailure(err error) bool {
	r := reason(CodeOf(err))
	return r == "failure" || r == "read_failure" || r == "statement_failure"
}
