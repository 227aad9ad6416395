// Package runner provides multi-file conversion orchestration.
package runner

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Options controls multi-file conversion behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// to lay out outputs under OutputDir.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (with leading dot) considered
	// Markdown. Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are glob patterns used to skip files or directories,
	// matched against the slash-separated path relative to WorkingDir.
	ExcludeGlobs []string

	// Recursive descends into subdirectories of directory arguments.
	// Without it only the direct children of a directory are considered.
	Recursive bool

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent conversions.
	// 0 or negative means 1.
	Jobs int

	// OutputDir redirects outputs. Empty writes each output next to its source.
	OutputDir string
}

// DefaultExtensions returns the file extensions of the Markdown language
// definition, lowercased.
func DefaultExtensions() []string {
	exts := enry.GetLanguageExtensions("Markdown")
	if len(exts) == 0 {
		return []string{".md", ".markdown"}
	}

	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		out = append(out, strings.ToLower(ext))
	}
	return out
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// effectiveJobs returns the worker count for n files.
func (o Options) effectiveJobs(n int) int {
	return min(max(o.Jobs, 1), max(n, 1))
}
