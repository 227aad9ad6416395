package runner

import (
	"time"

	"github.com/yaklabco/md2docx/pkg/convert"
)

// FileOutcome is the result of converting one discovered file.
type FileOutcome struct {
	// Path is the source file path.
	Path string

	// Output is the destination path, set even when the conversion failed.
	Output string

	// Result contains the conversion result.
	// Nil if the file encountered an error during processing.
	Result *convert.Result

	// Error is set if the file could not be converted.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesConverted is the number of files written successfully.
	FilesConverted int

	// FilesFailed is the number of files that could not be converted.
	FilesFailed int

	// Content sums the per-file conversion statistics.
	Content convert.Stats

	// Duration is the wall time of the run.
	Duration time.Duration
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, in discovery order.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed to convert.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesFailed > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil || outcome.Result == nil {
		r.Stats.FilesFailed++
		return
	}

	r.Stats.FilesConverted++
	if outcome.Result.Conversion != nil {
		r.Stats.Content.Add(outcome.Result.Stats)
	}
}
