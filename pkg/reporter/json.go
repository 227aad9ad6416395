package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/md2docx/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path         string         `json:"path"`
	Output       string         `json:"output,omitempty"`
	Error        string         `json:"error,omitempty"`
	Blocks       int            `json:"blocks"`
	Images       int            `json:"images"`
	Placeholders int            `json:"placeholders"`
	Languages    map[string]int `json:"languages,omitempty"`
	Warnings     []string       `json:"warnings,omitempty"`
	Fallbacks    []JSONFallback `json:"fallbacks,omitempty"`
	DurationMS   int64          `json:"durationMs"`
}

// JSONFallback describes an image replaced by placeholder text.
type JSONFallback struct {
	Source string `json:"source"`
	Alt    string `json:"alt,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int            `json:"filesDiscovered"`
	FilesConverted  int            `json:"filesConverted"`
	FilesFailed     int            `json:"filesFailed"`
	Blocks          int            `json:"blocks"`
	Images          int            `json:"images"`
	Placeholders    int            `json:"placeholders"`
	Languages       map[string]int `json:"languages"`
	DurationMS      int64          `json:"durationMs"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Outcome implements Reporter. Nothing is printed until Report.
func (r *JSONReporter) Outcome(runner.FileOutcome) error {
	return nil
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesFailed, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			Languages: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	stats := result.Stats
	output.Summary.FilesDiscovered = stats.FilesDiscovered
	output.Summary.FilesConverted = stats.FilesConverted
	output.Summary.FilesFailed = stats.FilesFailed
	output.Summary.Blocks = stats.Content.Blocks
	output.Summary.Images = stats.Content.Images
	output.Summary.Placeholders = stats.Content.Placeholders
	output.Summary.DurationMS = stats.Duration.Milliseconds()
	for lang, n := range stats.Content.Languages {
		output.Summary.Languages[lang] = n
	}

	if len(result.Files) > 0 {
		output.Files = make([]JSONFileResult, 0, len(result.Files))
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:   relPath(file.Path, r.opts.WorkingDir),
			Output: relPath(file.Output, r.opts.WorkingDir),
		}

		switch {
		case file.Error != nil:
			fileResult.Error = file.Error.Error()
		case file.Result == nil:
			fileResult.Error = "no result"
		default:
			res := file.Result
			fileResult.DurationMS = res.Duration.Milliseconds()
			if res.Conversion != nil {
				fileResult.Blocks = res.Stats.Blocks
				fileResult.Images = res.Stats.Images
				fileResult.Placeholders = res.Stats.Placeholders
				if len(res.Stats.Languages) > 0 {
					fileResult.Languages = res.Stats.Languages
				}
				fileResult.Warnings = res.Warnings
				for _, fb := range res.Fallbacks {
					jf := JSONFallback{Source: fb.Source, Alt: fb.Alt}
					if fb.Err != nil {
						jf.Reason = fb.Err.Error()
					}
					fileResult.Fallbacks = append(fileResult.Fallbacks, jf)
				}
			}
		}

		output.Files = append(output.Files, fileResult)
	}

	return output
}
