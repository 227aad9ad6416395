package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/md2docx/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// languageList renders code block counts as "go 2, yaml 1".
func languageList(stats runner.Stats) string {
	names := stats.Content.LanguageNames()
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s %d", name, stats.Content.Languages[name]))
	}
	return strings.Join(parts, ", ")
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files converted, 1 failed: 42 blocks, 5 images, 1 placeholder, code: go 2".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No Markdown files found") + "\n"
	}

	head := s.Success.Render(fmt.Sprintf("%d %s converted",
		stats.FilesConverted, plural(stats.FilesConverted, wordFile, wordFiles)))
	if stats.FilesFailed > 0 {
		head += ", " + s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesFailed))
	}

	content := stats.Content
	parts := []string{
		fmt.Sprintf("%d %s", content.Blocks, plural(content.Blocks, "block", "blocks")),
		fmt.Sprintf("%d %s", content.Images, plural(content.Images, "image", "images")),
	}
	if content.Placeholders > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s",
			content.Placeholders, plural(content.Placeholders, "placeholder", "placeholders"))))
	}
	if langs := languageList(stats); langs != "" {
		parts = append(parts, "code: "+langs)
	}

	return head + ": " + strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, value string) {
		builder.WriteString(fmt.Sprintf("  %-19s%s\n", label+":", value))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files converted", s.SummaryValue.Render(strconv.Itoa(stats.FilesConverted)))
	if stats.FilesFailed > 0 {
		row("Files failed", s.Failure.Render(strconv.Itoa(stats.FilesFailed)))
	}

	builder.WriteString("\n")

	content := stats.Content
	row("Blocks", s.SummaryValue.Render(strconv.Itoa(content.Blocks)))
	row("Headings", s.SummaryValue.Render(strconv.Itoa(content.Headings)))
	row("Paragraphs", s.SummaryValue.Render(strconv.Itoa(content.Paragraphs)))
	row("List items", s.SummaryValue.Render(strconv.Itoa(content.ListItems)))
	row("Tables", s.SummaryValue.Render(strconv.Itoa(content.Tables)))
	row("Code blocks", s.SummaryValue.Render(strconv.Itoa(content.CodeBlocks)))
	for _, name := range content.LanguageNames() {
		builder.WriteString(fmt.Sprintf("    %-17s%s\n", name+":", strconv.Itoa(content.Languages[name])))
	}
	row("Images embedded", s.SummaryValue.Render(strconv.Itoa(content.Images)))
	if content.Placeholders > 0 {
		row("Placeholders", s.Warning.Render(strconv.Itoa(content.Placeholders)))
	}
	if stats.Duration > 0 {
		row("Elapsed", s.Dim.Render(stats.Duration.Round(time.Millisecond).String()))
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesFailed > 0:
		builder.WriteString(s.Failure.Render("Conversion finished with errors"))
	case content.Placeholders > 0:
		builder.WriteString(s.Warning.Render("Conversion finished with missing images"))
	default:
		builder.WriteString(s.Success.Render("Conversion succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}
