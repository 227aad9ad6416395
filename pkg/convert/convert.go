// Package convert maps parsed Markdown onto Word documents.
//
// A Converter runs one file through the conversion pipeline: read the
// source, parse it into an mdast token stream, walk the tokens into a
// docx.Document, and write the package atomically next to the source.
package convert

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/md2docx/pkg/config"
	"github.com/yaklabco/md2docx/pkg/docx"
	"github.com/yaklabco/md2docx/pkg/fsutil"
	"github.com/yaklabco/md2docx/pkg/mdast"
)

// OutputExt is the extension of generated documents.
const OutputExt = ".docx"

// Conversion error types for categorization. Source read failures keep the
// fsutil sentinels (fsutil.ErrNotFound, fsutil.ErrInvalidEncoding, ...).
var (
	// ErrParseFailure indicates the Markdown could not be parsed.
	ErrParseFailure = errors.New("parse failure")

	// ErrWriteFailure indicates the output document could not be written.
	ErrWriteFailure = errors.New("write failure")
)

// Parser parses Markdown content into a FileSnapshot.
// Implementations (e.g., parser/goldmark) must not perform I/O.
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error)
}

// Options controls how tokens are rendered.
type Options struct {
	// CodeFont is the font family for inline code and code blocks.
	CodeFont string

	// CodeFontSize is the code block size in half-points.
	CodeFontSize int

	// ImageWidth is the display width of embedded images in EMU.
	ImageWidth int64
}

// DefaultOptions returns the options of a default configuration.
func DefaultOptions() Options {
	return OptionsFromConfig(config.NewConfig())
}

// OptionsFromConfig derives rendering options from a resolved configuration.
// Unset values fall back to the defaults.
func OptionsFromConfig(cfg *config.Config) Options {
	defaults := config.NewConfig()
	if cfg == nil {
		cfg = defaults
	}

	opts := Options{
		CodeFont:     cfg.CodeFont,
		CodeFontSize: cfg.CodeFontHalfPoints(),
		ImageWidth:   cfg.ImageWidthEMU(),
	}
	if opts.CodeFont == "" {
		opts.CodeFont = defaults.CodeFont
	}
	if opts.CodeFontSize <= 0 {
		opts.CodeFontSize = defaults.CodeFontHalfPoints()
	}
	if opts.ImageWidth <= 0 {
		opts.ImageWidth = defaults.ImageWidthEMU()
	}
	return opts
}

// Converter turns Markdown files into Word documents.
// A Converter holds no per-file state and is safe for concurrent use when
// its Parser is.
type Converter struct {
	Parser  Parser
	Options Options
}

// New creates a Converter using parser for Markdown and opts for rendering.
func New(parser Parser, opts Options) *Converter {
	return &Converter{Parser: parser, Options: opts}
}

// Conversion is an in-memory conversion outcome.
type Conversion struct {
	// Document is the mapped document, ready to serialize.
	Document *docx.Document

	// Stats counts what was produced.
	Stats Stats

	// Fallbacks lists images that were replaced by placeholder text.
	Fallbacks []ImageFallback

	// Warnings holds non-fatal problems (malformed front matter, unbalanced lists).
	Warnings []string
}

// ImageFallback records an image reference that could not be embedded.
type ImageFallback struct {
	Source string
	Alt    string
	Err    error
}

// Result describes one converted file.
type Result struct {
	*Conversion

	// Source is the Markdown file that was read.
	Source string

	// Output is the document file that was written.
	Output string

	// Duration is the wall time spent on the file.
	Duration time.Duration
}

// ConvertFile converts the Markdown file src and writes the document to dst.
//
// The steps are:
//  1. Read src and decode it as UTF-8.
//  2. Parse and map it into a document; image failures become placeholders.
//  3. Stamp the document properties with the source modification time.
//  4. Write dst atomically; an existing dst is replaced only on success.
func (c *Converter) ConvertFile(ctx context.Context, src, dst string) (*Result, error) {
	started := time.Now()

	content, info, err := fsutil.ReadSource(ctx, src)
	if err != nil {
		return nil, err
	}

	conv, err := c.ConvertContent(ctx, src, content)
	if err != nil {
		return nil, err
	}

	stamp := info.ModTime.UTC().Truncate(time.Second)
	conv.Document.Properties.Created = stamp
	conv.Document.Properties.Modified = stamp

	if err := fsutil.WriteAtomicFrom(ctx, dst, conv.Document, fsutil.DefaultFileMode); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWriteFailure, dst, err)
	}

	return &Result{
		Conversion: conv,
		Source:     src,
		Output:     dst,
		Duration:   time.Since(started),
	}, nil
}

// ConvertContent parses content and maps it into a document without writing it.
// Relative image sources resolve against the directory of path.
func (c *Converter) ConvertContent(ctx context.Context, path string, content []byte) (*Conversion, error) {
	snapshot, err := c.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}

	baseDir := "."
	if path != "" {
		baseDir = filepath.Dir(path)
	}

	return c.Build(ctx, snapshot, baseDir)
}

// Build maps a parsed snapshot onto a new document.
func (c *Converter) Build(ctx context.Context, snapshot *mdast.FileSnapshot, baseDir string) (*Conversion, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("conversion cancelled: %w", err)
	}

	conv := &Conversion{
		Document: docx.New(),
		Warnings: append([]string(nil), snapshot.Warnings...),
	}

	m := newMapper(conv, c.Options, newImageLoader(ctx, baseDir))
	m.walk(snapshot.Tokens)

	conv.Stats.Blocks = len(conv.Document.Blocks)
	applyProperties(&conv.Document.Properties, snapshot.FrontMatter, m.firstHeading)

	return conv, nil
}

// applyProperties copies front matter onto the core properties. The title
// falls back to the first heading.
func applyProperties(props *docx.CoreProperties, fm mdast.FrontMatter, firstHeading string) {
	props.Title = fm.Title
	if props.Title == "" {
		props.Title = firstHeading
	}
	props.Subject = fm.Subject
	props.Description = fm.Description
	props.Creator = fm.Author
	props.Keywords = fm.AllKeywords()
}

// OutputPath returns the document path for src. With an empty outputDir the
// document sits next to its source; otherwise it goes under outputDir,
// keeping the source's directory relative to root.
func OutputPath(src, root, outputDir string) string {
	name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)) + OutputExt
	if outputDir == "" {
		return filepath.Join(filepath.Dir(src), name)
	}

	rel, err := filepath.Rel(root, filepath.Dir(src))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = ""
	}
	return filepath.Join(outputDir, rel, name)
}
