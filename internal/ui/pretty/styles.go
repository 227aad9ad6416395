// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Outcome styles
	Success lipgloss.Style
	Failure lipgloss.Style
	Warning lipgloss.Style

	// Line components
	FilePath lipgloss.Style
	Message  lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableFailedRow lipgloss.Style
	TableSeparator lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// Palette entries (ANSI 256 color indexes).
const (
	colorGreen  = "10"
	colorRed    = "9"
	colorYellow = "11"
	colorGray   = "8"
	colorSilver = "7"
)

// NewStyles creates a new Styles with the given color mode.
// Color styles are rendered with a fixed ANSI 256 profile, so that
// --color=always also colors output that is piped or captured.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newStyles(lipgloss.NewStyle, false)
	}

	renderer := lipgloss.NewRenderer(os.Stdout)
	renderer.SetColorProfile(termenv.ANSI256)
	return newStyles(renderer.NewStyle, true)
}

// newStyles builds every style from base. Without color all styles are plain.
func newStyles(base func() lipgloss.Style, color bool) *Styles {
	plain := base()
	if !color {
		return &Styles{
			Success: plain, Failure: plain, Warning: plain,
			FilePath: plain, Message: plain,
			SummaryTitle: plain, SummaryValue: plain,
			TableHeader: plain, TableFailedRow: plain, TableSeparator: plain,
			Dim: plain, Bold: plain,
		}
	}

	fg := func(c string) lipgloss.Style { return base().Foreground(lipgloss.Color(c)) }
	bold := base().Bold(true)

	return &Styles{
		Success: fg(colorGreen).Bold(true),
		Failure: fg(colorRed).Bold(true),
		Warning: fg(colorYellow).Bold(true),

		FilePath: bold,
		Message:  plain,

		SummaryTitle: bold,
		SummaryValue: plain,

		TableHeader:    fg(colorSilver).Bold(true),
		TableFailedRow: fg(colorRed),
		TableSeparator: fg(colorGray),

		Dim:  fg(colorGray),
		Bold: bold,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
