package convert

import (
	"github.com/yaklabco/md2docx/pkg/docx"
	"github.com/yaklabco/md2docx/pkg/mdast"
)

// runStyle applies a wrapper's single formatting flag to a run.
type runStyle func(*docx.Run)

func bold(r *docx.Run)   { r.Bold = true }
func italic(r *docx.Run) { r.Italic = true }
func strike(r *docx.Run) { r.Strike = true }

// formatter appends inline content to paragraphs as runs and pictures.
// Nothing it does fails: unusable images become placeholder text.
type formatter struct {
	conv   *Conversion
	doc    *docx.Document
	opts   Options
	images imageLoader
}

func newFormatter(conv *Conversion, opts Options, images imageLoader) *formatter {
	return &formatter{
		conv:   conv,
		doc:    conv.Document,
		opts:   opts,
		images: images,
	}
}

// format appends tokens to para in order.
func (f *formatter) format(para *docx.Paragraph, tokens []mdast.Token) {
	for _, tok := range tokens {
		f.inline(para, tok)
	}
}

func (f *formatter) inline(para *docx.Paragraph, tok mdast.Token) {
	switch tok.Kind {
	case mdast.TokText:
		if tok.Content != "" {
			para.AddRun(tok.Content)
		}

	case mdast.TokSoftBreak:
		para.AddRun(" ")

	case mdast.TokHardBreak:
		para.AddBreak()

	case mdast.TokStrong:
		f.styled(para, tok.Children, bold)

	case mdast.TokEmphasis:
		f.styled(para, tok.Children, italic)

	case mdast.TokStrikethrough:
		f.styled(para, tok.Children, strike)

	case mdast.TokCodeInline:
		f.code(para, tok.Content)

	case mdast.TokImage:
		f.image(para, tok.Attr(mdast.AttrSrc), tok.Content)

	case mdast.TokLink:
		f.format(para, tok.Children)

	case mdast.TokHTMLInline:
		f.html(para, tok.Content)

	default:
		// Block kinds never appear inline.
	}
}

// styled renders every literal text descendant of a wrapper as one run
// carrying only the wrapper's flag. Nested wrappers add nothing.
func (f *formatter) styled(para *docx.Paragraph, tokens []mdast.Token, style runStyle) {
	for _, tok := range tokens {
		switch tok.Kind {
		case mdast.TokText:
			if tok.Content != "" {
				style(para.AddRun(tok.Content))
			}
		case mdast.TokCodeInline:
			style(f.code(para, tok.Content))
		case mdast.TokSoftBreak:
			style(para.AddRun(" "))
		case mdast.TokHardBreak, mdast.TokImage, mdast.TokHTMLInline:
			f.inline(para, tok)
		default:
			f.styled(para, tok.Children, style)
		}
	}
}

func (f *formatter) code(para *docx.Paragraph, text string) *docx.Run {
	run := para.AddRun(text)
	run.Monospace = true
	run.Font = f.opts.CodeFont
	return run
}

// image embeds src at the configured width, or appends a placeholder run
// naming alt when the source cannot be read or decoded.
func (f *formatter) image(para *docx.Paragraph, src, alt string) {
	img, err := f.embed(src)
	if err != nil {
		f.conv.Fallbacks = append(f.conv.Fallbacks, ImageFallback{Source: src, Alt: alt, Err: err})
		f.conv.Stats.Placeholders++
		para.AddRun(placeholder(alt, src))
		return
	}

	para.AddPicture(img, f.opts.ImageWidth, alt)
	f.conv.Stats.Images++
}

func (f *formatter) embed(src string) (*docx.Image, error) {
	data, err := f.images(src)
	if err != nil {
		return nil, err
	}
	return f.doc.AddImage(data)
}
