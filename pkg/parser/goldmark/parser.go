// Package goldmark provides the Markdown parser used by md2docx, built on goldmark.
package goldmark

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/md2docx/pkg/mdast"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Parser turns Markdown bytes into an mdast token stream.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a new goldmark-based parser for the given flavor.
// Supported flavors are "commonmark" and "gfm".
// Invalid or empty flavors default to "gfm".
func New(flavor string) *Parser {
	f := flavorOrDefault(flavor)
	return &Parser{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse converts raw Markdown bytes into a FileSnapshot.
// A leading front matter block is lifted into FileSnapshot.FrontMatter; a
// malformed one is left in the body and recorded in FileSnapshot.Warnings.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	snapshot := &mdast.FileSnapshot{Path: path}

	meta, body, err := splitFrontMatter(content)
	if err != nil {
		snapshot.Warnings = append(snapshot.Warnings, err.Error())
	}
	snapshot.FrontMatter = meta
	// frontmatter.Parse may return a slice of its own buffer; the snapshot owns a copy.
	snapshot.Content = bytes.Clone(body)

	reader := text.NewReader(snapshot.Content)
	gmDoc := p.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	snapshot.Tokens = newMapper(snapshot.Content).mapDocument(gmDoc)

	return snapshot, nil
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to GFM.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorGFM
	}
}

// gfmExtensions are the GitHub additions the mapper understands. Bare URLs
// are linkified so that they keep rendering as their literal text.
//
//nolint:gochecknoglobals // Read-only extension list.
var gfmExtensions = []goldmark.Extender{
	extension.Table,
	extension.Strikethrough,
	extension.TaskList,
	extension.Linkify,
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
// CommonMark leaves tables, strikethrough and task lists as plain text.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	if flavor == FlavorCommonMark {
		return goldmark.New()
	}
	return goldmark.New(goldmark.WithExtensions(gfmExtensions...))
}
