// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagehand Contributors

package installer

import (
	"github.com/charmbracelet/huh"
)

// Prompter defines the interaction methods used during root resolution.
// Tests substitute a scripted implementation.
type Prompter interface {
	Select(title string, options []string, value *string) error
	Input(title string, value *string) error
}

// huhPrompter implements Prompter using charmbracelet/huh forms.
type huhPrompter struct{}

func (huhPrompter) Select(title string, options []string, value *string) error {
	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o, o)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(opts...).
				Value(value),
		),
	).Run()
}

func (huhPrompter) Input(title string, value *string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(value),
		),
	).Run()
}
