// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldDuration   = "duration"

	// Configuration fields.
	FieldConfig    = "config"
	FieldFlavor    = "flavor"
	FieldJobs      = "jobs"
	FieldRecursive = "recursive"
	FieldOutputDir = "output_dir"
	FieldCodeFont  = "code_font"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesConverted  = "files_converted"
	FieldFilesFailed     = "files_failed"
	FieldBlocks          = "blocks"
	FieldImages          = "images"
	FieldPlaceholders    = "placeholders"

	// Image fields.
	FieldSource = "source"
	FieldAlt    = "alt"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
