package reporter

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/md2docx/internal/ui/pretty"
	"github.com/yaklabco/md2docx/pkg/runner"
)

// TextReporter prints a console line per file and optional totals.
type TextReporter struct {
	opts      Options
	styles    *pretty.Styles
	errStyles *pretty.Styles
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:      opts,
		styles:    pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		errStyles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.ErrorWriter)),
	}
}

// Outcome implements Reporter. Failures go to the error writer.
func (r *TextReporter) Outcome(outcome runner.FileOutcome) error {
	input := relPath(outcome.Path, r.opts.WorkingDir)

	if outcome.Error != nil || outcome.Result == nil {
		_, err := fmt.Fprint(r.opts.ErrorWriter, r.errStyles.FormatFailure(input, outcome.Error))
		return err
	}

	_, err := fmt.Fprint(r.opts.Writer, r.styles.FormatSuccess(input, relPath(outcome.Output, r.opts.WorkingDir)))
	return err
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		result = &runner.Result{}
	}

	var out string
	switch {
	case r.opts.ShowTable:
		formatter := pretty.NewTableFormatter(r.styles, terminalWidth(r.opts.Writer))
		out = formatter.FormatTable(result, r.opts.WorkingDir) + r.styles.FormatSummary(result.Stats)
	case r.opts.ShowSummary:
		out = r.styles.FormatSummaryOneLine(result.Stats)
	}

	if out != "" {
		if _, err := io.WriteString(r.opts.Writer, out); err != nil {
			return 0, fmt.Errorf("write summary: %w", err)
		}
	}

	return result.Stats.FilesFailed, nil
}

// terminalWidth attempts to get the terminal width from the writer.
func terminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return 0
}
