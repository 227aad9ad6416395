package convert

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/md2docx/pkg/docx"
	"github.com/yaklabco/md2docx/pkg/langdetect"
	"github.com/yaklabco/md2docx/pkg/mdast"
)

// codeIndent is the left indent of code blocks in twips (0.5in).
const codeIndent = docx.TwipsPerInch / 2

// listFrame remembers one open list.
type listFrame struct {
	ordered bool
	numID   int
}

// mapper walks one token stream into one document.
type mapper struct {
	conv   *Conversion
	doc    *docx.Document
	opts   Options
	inline *formatter

	// depth counts the open lists; frames holds one entry per open list.
	depth  int
	frames []listFrame

	firstHeading string
}

func newMapper(conv *Conversion, opts Options, images imageLoader) *mapper {
	return &mapper{
		conv:   conv,
		doc:    conv.Document,
		opts:   opts,
		inline: newFormatter(conv, opts, images),
	}
}

// walk maps every token in order. Unhandled kinds are skipped.
func (m *mapper) walk(tokens []mdast.Token) {
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		switch tok.Kind {
		case mdast.TokHeadingOpen:
			m.heading(tok, inlineAt(tokens, i+1))

		case mdast.TokParagraphOpen:
			m.paragraph(inlineAt(tokens, i+1))

		case mdast.TokBulletListOpen, mdast.TokOrderedListOpen:
			m.openList(tok)

		case mdast.TokBulletListClose, mdast.TokOrderedListClose:
			m.closeList()

		case mdast.TokListItemOpen:
			i = m.listItem(tokens, i)

		case mdast.TokFence, mdast.TokCodeBlock:
			m.codeBlock(tok)

		case mdast.TokTableOpen:
			i = m.table(tokens, i)

		case mdast.TokHTMLBlock:
			m.htmlBlock(tok)

		case mdast.TokHeadingClose, mdast.TokParagraphClose,
			mdast.TokListItemClose, mdast.TokBlockquoteOpen, mdast.TokBlockquoteClose,
			mdast.TokThematicBreak, mdast.TokInline:
			// No document element.

		default:
			// Stray table parts and inline kinds outside a holder.
		}
	}

	if m.depth != 0 {
		m.warnf("unbalanced list nesting: %d list(s) left open", m.depth)
		m.depth = 0
		m.frames = nil
	}
}

// inlineAt returns the inline children of the holder at index i, or nil when
// tokens[i] is not an inline holder.
func inlineAt(tokens []mdast.Token, i int) []mdast.Token {
	if i < 0 || i >= len(tokens) || tokens[i].Kind != mdast.TokInline {
		return nil
	}
	return tokens[i].Children
}

func (m *mapper) heading(tok mdast.Token, inline []mdast.Token) {
	para := m.doc.AddHeading(tok.Level)
	m.inline.format(para, inline)
	m.conv.Stats.Headings++

	if m.firstHeading == "" {
		m.firstHeading = strings.TrimSpace(mdast.PlainText(inline))
	}
}

// paragraph adds a body paragraph. Inside a list this is a later paragraph
// of a loose item, so it is indented to the item text.
func (m *mapper) paragraph(inline []mdast.Token) {
	para := m.doc.AddParagraph("")
	if m.depth > 0 {
		para.IndentLeft = docx.ListIndent(m.listLevel())
	}
	m.inline.format(para, inline)
	m.conv.Stats.Paragraphs++
}

func (m *mapper) openList(tok mdast.Token) {
	frame := listFrame{numID: docx.BulletNumID}
	if tok.Kind == mdast.TokOrderedListOpen {
		frame.ordered = true
		start := 1
		if n, err := strconv.Atoi(tok.Attr(mdast.AttrStart)); err == nil {
			start = n
		}
		frame.numID = m.doc.AddNumbering(start)
	}

	m.depth++
	m.frames = append(m.frames, frame)
}

func (m *mapper) closeList() {
	if m.depth == 0 {
		m.warnf("list close without matching open ignored")
		return
	}
	m.depth--
	m.frames = m.frames[:len(m.frames)-1]
}

// listLevel returns the numbering level of the innermost open list.
func (m *mapper) listLevel() int {
	return min(max(m.depth-1, 0), docx.MaxListLevel)
}

// listItem adds the item paragraph and fills it with the item's first
// block when that is a paragraph, heading or code block. It returns the
// index of the last consumed token.
func (m *mapper) listItem(tokens []mdast.Token, i int) int {
	frame := listFrame{numID: docx.BulletNumID}
	if len(m.frames) > 0 {
		frame = m.frames[len(m.frames)-1]
	}

	style := docx.StyleListBullet
	if frame.ordered {
		style = docx.StyleListNumber
	}

	para := m.doc.AddStyledParagraph(style)
	para.NumID = frame.numID
	para.ListLevel = m.listLevel()
	m.conv.Stats.ListItems++

	if i+1 >= len(tokens) {
		return i
	}

	switch first := tokens[i+1]; first.Kind {
	case mdast.TokParagraphOpen, mdast.TokHeadingOpen:
		m.inline.format(para, inlineAt(tokens, i+2))
		return closeAfter(tokens, i+2, first.Kind+1)

	case mdast.TokFence, mdast.TokCodeBlock:
		para.Runs = append(para.Runs, m.codeRun(first))
		m.countCode(first)
		return i + 1

	default:
		return i
	}
}

// closeAfter returns the index of the close token that ends a block whose
// holder would sit at from. A missing close leaves the next token unread.
func closeAfter(tokens []mdast.Token, from int, closeKind mdast.TokenKind) int {
	for j := from; j < len(tokens); j++ {
		switch tokens[j].Kind {
		case mdast.TokInline:
			continue
		case closeKind:
			return j
		default:
			return j - 1
		}
	}
	return len(tokens) - 1
}

// codeBlock adds a literal, monospace paragraph.
func (m *mapper) codeBlock(tok mdast.Token) {
	para := m.doc.AddParagraph("")
	para.IndentLeft = codeIndent
	para.Runs = append(para.Runs, m.codeRun(tok))
	m.countCode(tok)
}

// codeRun holds the block text in one run. Newlines inside it become line
// breaks when the run is written.
func (m *mapper) codeRun(tok mdast.Token) *docx.Run {
	return &docx.Run{
		Text:      strings.TrimSuffix(tok.Content, "\n"),
		Monospace: true,
		Font:      m.opts.CodeFont,
		Size:      m.opts.CodeFontSize,
	}
}

func (m *mapper) countCode(tok mdast.Token) {
	m.conv.Stats.CodeBlocks++
	m.conv.Stats.countLanguage(langdetect.ForCodeBlock(tok.Info, []byte(tok.Content)), 1)
}

func (m *mapper) warnf(format string, args ...any) {
	m.conv.Warnings = append(m.conv.Warnings, fmt.Sprintf(format, args...))
}
