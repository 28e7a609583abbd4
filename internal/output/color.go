// Package output provides styled terminal rendering helpers for agenthooks.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color constants for consistent styling across the CLI.
var (
	// ColorPrimary is used for headers and emphasis.
	ColorPrimary = lipgloss.Color("#64b5f6")

	// ColorSuccess is used for passing checks and clean results.
	ColorSuccess = lipgloss.Color("#66bb6a")

	// ColorError is used for failing checks and violations.
	ColorError = lipgloss.Color("#ef5350")

	// ColorWarning is used for pending states and heuristics.
	ColorWarning = lipgloss.Color("#fff59d")

	// ColorMuted is used for secondary text and borders.
	ColorMuted = lipgloss.Color("#888888")
)

// Styles provides reusable lipgloss styles.
var (
	// StyleHeader is used for section headers.
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	// StyleSuccess is used for positive values.
	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// StyleError is used for negative values.
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	// StyleWarning is used for cautionary values.
	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// StyleMuted is used for secondary text.
	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// noColor tracks whether color output is disabled.
var noColor bool

// SetNoColor disables or enables color output globally.
// When disabled, all package-level styles are reassigned to unstyled renderers.
func SetNoColor(disabled bool) {
	noColor = disabled
	if disabled {
		plain := lipgloss.NewStyle()
		StyleHeader = plain
		StyleSuccess = plain
		StyleError = plain
		StyleWarning = plain
		StyleMuted = plain
	}
}

// IsNoColor returns whether color output is currently disabled.
func IsNoColor() bool {
	return noColor
}

// ColorEnabled reports whether styled output should be used: stdout must be
// a terminal and the config must not disable color. Hook invocations run
// with piped stdio, so they get plain text automatically.
func ColorEnabled(configColor bool) bool {
	if !configColor {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// Status renders a one-word status with its conventional color.
func Status(word string) string {
	switch word {
	case "passing", "ok", "clean":
		return StyleSuccess.Render(word)
	case "failing", "error":
		return StyleError.Render(word)
	case "pending", "unknown":
		return StyleWarning.Render(word)
	default:
		return word
	}
}
