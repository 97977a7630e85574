// Package prompt implements the interactive questions warden asks on the
// terminal: the teardown confirmation, API token entry, and state selection.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// ErrCanceled is returned when the user aborts a prompt with ctrl-c or esc.
var ErrCanceled = errors.New("canceled by user")

// Confirm asks a yes/no question and returns the answer.
func Confirm(title, description string) (bool, error) {
	var confirmed bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed).
		Run()
	if err != nil {
		return false, promptErr("confirm", err)
	}
	return confirmed, nil
}

// Secret reads a value with echo disabled, trimming surrounding whitespace.
func Secret(title string) (string, error) {
	var value string
	err := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&value).
		Run()
	if err != nil {
		return "", promptErr("secret", err)
	}
	return strings.TrimSpace(value), nil
}

// Choice presents a select list and returns the 0-based index of the pick.
func Choice(title string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, errors.New("no options to choose from")
	}

	opts := make([]huh.Option[int], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o, i)
	}

	var selected int
	err := huh.NewSelect[int]().
		Title(title).
		Options(opts...).
		Value(&selected).
		Run()
	if err != nil {
		return 0, promptErr("choice", err)
	}
	return selected, nil
}

// promptErr normalizes a huh abort into ErrCanceled so callers can treat a
// dismissed prompt as a no-op.
func promptErr(kind string, err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCanceled
	}
	return fmt.Errorf("%s prompt: %w", kind, err)
}
