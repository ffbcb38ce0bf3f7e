package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// ValueInput prompts for a variable value.
func ValueInput(title string) (string, error) {
	var result string
	err := huh.NewInput().
		Title(title).
		Value(&result).
		Run()
	if err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}
	return result, nil
}

// Confirm asks a yes/no question, defaulting to no.
func Confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Value(&ok).
		Run()
	if err != nil {
		return false, fmt.Errorf("prompt: %w", err)
	}
	return ok, nil
}
