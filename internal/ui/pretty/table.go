package pretty

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/md2docx/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 5 // FILE, OUTPUT, BLOCKS, IMAGES, STATUS
	countColumnWidth = 6
	minFileWidth     = 20
	minStatusWidth   = 6
	heavySeparator   = "="
	defaultTermWidth = 100
	statusOK         = "ok"
	statusFailed     = "failed"
)

// TableRow represents a single file in the outcome table.
type TableRow struct {
	File   string
	Output string
	Blocks string
	Images string
	Status string
	Failed bool
}

// TableFormatter formats run outcomes as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

type columnWidths struct {
	file   int
	output int
	status int
}

// FormatTable formats one row per file, in result order.
// Paths are shown relative to base when possible.
func (t *TableFormatter) FormatTable(result *runner.Result, base string) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	rows := collectRows(result, base)
	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	return builder.String()
}

func collectRows(result *runner.Result, base string) []TableRow {
	rows := make([]TableRow, 0, len(result.Files))
	for _, file := range result.Files {
		row := TableRow{
			File:   displayPath(file.Path, base),
			Output: displayPath(file.Output, base),
			Blocks: "-",
			Images: "-",
			Status: statusOK,
		}
		if file.Error != nil || file.Result == nil {
			row.Status = statusFailed
			row.Failed = true
		} else if file.Result.Conversion != nil {
			row.Blocks = strconv.Itoa(file.Result.Stats.Blocks)
			row.Images = strconv.Itoa(file.Result.Stats.Images)
			if n := file.Result.Stats.Placeholders; n > 0 {
				row.Images += fmt.Sprintf(" (+%d)", n)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func displayPath(path, base string) string {
	if base == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{file: minFileWidth, output: minFileWidth, status: minStatusWidth}

	for _, row := range rows {
		widths.file = max(widths.file, lipgloss.Width(row.File))
		widths.output = max(widths.output, lipgloss.Width(row.Output))
		widths.status = max(widths.status, len(row.Status))
	}

	// Shrink the path columns evenly to fit the terminal.
	total := widths.file + widths.output + widths.status + 2*countColumnWidth + tablePadding*tableColumnCount
	if total > t.termWidth {
		excess := total - t.termWidth
		widths.file = max(minFileWidth, widths.file-excess/2)
		widths.output = max(minFileWidth, widths.output-(excess-excess/2))
	}

	return widths
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %*s  %*s  %-*s",
		widths.file, "FILE",
		widths.output, "OUTPUT",
		countColumnWidth, "BLOCKS",
		countColumnWidth, "IMAGES",
		widths.status, "STATUS",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	total := widths.file + widths.output + widths.status + 2*countColumnWidth + tablePadding*tableColumnCount
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	content := fmt.Sprintf(" %-*s  %-*s  %*s  %*s  %-*s",
		widths.file, truncateFilePath(row.File, widths.file),
		widths.output, truncateFilePath(row.Output, widths.output),
		countColumnWidth, row.Blocks,
		countColumnWidth, row.Images,
		widths.status, row.Status,
	)
	if row.Failed {
		return t.styles.TableFailedRow.Render(content)
	}
	return content
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
