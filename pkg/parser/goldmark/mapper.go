package goldmark

import (
	"bytes"
	"strconv"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/md2docx/pkg/mdast"
)

// Task list checkbox glyphs.
const (
	checkboxUnchecked = "☐ "
	checkboxChecked   = "☒ "
)

// mapper flattens a goldmark AST into an mdast token stream.
type mapper struct {
	content []byte
	tokens  []mdast.Token
}

// newMapper creates a new mapper for the given content.
func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

// mapDocument converts a goldmark document node into block tokens.
func (m *mapper) mapDocument(gmDoc ast.Node) []mdast.Token {
	m.tokens = m.tokens[:0]
	m.mapBlocks(gmDoc)
	return m.tokens
}

// mapBlocks maps every block child of a goldmark node, in order.
func (m *mapper) mapBlocks(gmParent ast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		m.mapBlock(child)
	}
}

// mapBlock emits the tokens for a single block node.
func (m *mapper) mapBlock(gmNode ast.Node) {
	switch gmn := gmNode.(type) {
	case *ast.Document:
		m.mapBlocks(gmn)

	case *ast.Heading:
		tag := "h" + strconv.Itoa(gmn.Level)
		m.emit(mdast.Token{Kind: mdast.TokHeadingOpen, Tag: tag, Level: gmn.Level})
		m.emitInline(gmn)
		m.emit(mdast.Token{Kind: mdast.TokHeadingClose, Tag: tag, Level: gmn.Level})

	case *ast.Paragraph:
		m.mapParagraph(gmn, false)

	case *ast.TextBlock:
		// Tight list items wrap their text in a TextBlock instead of a Paragraph.
		m.mapParagraph(gmn, true)

	case *ast.List:
		m.mapList(gmn)

	case *ast.ListItem:
		m.emit(mdast.Token{Kind: mdast.TokListItemOpen, Tag: "li"})
		m.mapBlocks(gmn)
		m.emit(mdast.Token{Kind: mdast.TokListItemClose, Tag: "li"})

	case *ast.Blockquote:
		m.emit(mdast.Token{Kind: mdast.TokBlockquoteOpen, Tag: "blockquote"})
		m.mapBlocks(gmn)
		m.emit(mdast.Token{Kind: mdast.TokBlockquoteClose, Tag: "blockquote"})

	case *ast.FencedCodeBlock:
		m.emit(mdast.Token{
			Kind:    mdast.TokFence,
			Tag:     "code",
			Info:    string(gmn.Language(m.content)),
			Content: m.linesText(gmn.Lines()),
		})

	case *ast.CodeBlock:
		m.emit(mdast.Token{
			Kind:    mdast.TokCodeBlock,
			Tag:     "code",
			Content: m.linesText(gmn.Lines()),
		})

	case *ast.ThematicBreak:
		m.emit(mdast.Token{Kind: mdast.TokThematicBreak, Tag: "hr"})

	case *ast.HTMLBlock:
		html := m.linesText(gmn.Lines())
		if gmn.HasClosure() {
			html += string(gmn.ClosureLine.Value(m.content))
		}
		m.emit(mdast.Token{Kind: mdast.TokHTMLBlock, Content: html})

	case *east.Table:
		m.mapTable(gmn)

	default:
		// Unknown block types pass their children through.
		m.mapBlocks(gmNode)
	}
}

// mapParagraph emits a paragraph open/inline/close triple.
func (m *mapper) mapParagraph(gmNode ast.Node, hidden bool) {
	m.emit(mdast.Token{Kind: mdast.TokParagraphOpen, Tag: "p", Hidden: hidden})
	m.emitInline(gmNode)
	m.emit(mdast.Token{Kind: mdast.TokParagraphClose, Tag: "p", Hidden: hidden})
}

// mapList emits the open/close pair of a list, with its items in between.
func (m *mapper) mapList(list *ast.List) {
	openKind, closeKind, tag := mdast.TokBulletListOpen, mdast.TokBulletListClose, "ul"
	var attrs map[string]string
	if list.IsOrdered() {
		openKind, closeKind, tag = mdast.TokOrderedListOpen, mdast.TokOrderedListClose, "ol"
		attrs = map[string]string{mdast.AttrStart: strconv.Itoa(list.Start)}
	}

	m.emit(mdast.Token{Kind: openKind, Tag: tag, Attrs: attrs})
	m.mapBlocks(list)
	m.emit(mdast.Token{Kind: closeKind, Tag: tag})
}

// mapTable emits a GFM table in thead/tbody/tr/th/td form.
func (m *mapper) mapTable(table *east.Table) {
	m.emit(mdast.Token{Kind: mdast.TokTableOpen, Tag: "table"})

	bodyOpen := false
	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		switch row := child.(type) {
		case *east.TableHeader:
			m.emit(mdast.Token{Kind: mdast.TokTableHeadOpen, Tag: "thead"})
			m.mapTableRow(row, mdast.TokTableHeaderCellOpen, mdast.TokTableHeaderCellClose, "th")
			m.emit(mdast.Token{Kind: mdast.TokTableHeadClose, Tag: "thead"})
		case *east.TableRow:
			if !bodyOpen {
				m.emit(mdast.Token{Kind: mdast.TokTableBodyOpen, Tag: "tbody"})
				bodyOpen = true
			}
			m.mapTableRow(row, mdast.TokTableCellOpen, mdast.TokTableCellClose, "td")
		}
	}

	if bodyOpen {
		m.emit(mdast.Token{Kind: mdast.TokTableBodyClose, Tag: "tbody"})
	}
	m.emit(mdast.Token{Kind: mdast.TokTableClose, Tag: "table"})
}

// mapTableRow emits one row; header and body rows differ only in cell kinds.
func (m *mapper) mapTableRow(row ast.Node, openKind, closeKind mdast.TokenKind, tag string) {
	m.emit(mdast.Token{Kind: mdast.TokTableRowOpen, Tag: "tr"})

	for child := row.FirstChild(); child != nil; child = child.NextSibling() {
		cell, ok := child.(*east.TableCell)
		if !ok {
			continue
		}

		var attrs map[string]string
		if cell.Alignment != east.AlignNone {
			attrs = map[string]string{mdast.AttrAlign: cell.Alignment.String()}
		}

		m.emit(mdast.Token{Kind: openKind, Tag: tag, Attrs: attrs})
		m.emitInline(cell)
		m.emit(mdast.Token{Kind: closeKind, Tag: tag})
	}

	m.emit(mdast.Token{Kind: mdast.TokTableRowClose, Tag: "tr"})
}

// emitInline emits the inline holder for a block's children.
func (m *mapper) emitInline(gmParent ast.Node) {
	children := m.mapInlines(gmParent)
	m.emit(mdast.Token{
		Kind:     mdast.TokInline,
		Content:  mdast.PlainText(children),
		Children: children,
	})
}

// mapInlines converts the inline children of a goldmark node.
func (m *mapper) mapInlines(gmParent ast.Node) []mdast.Token {
	var out []mdast.Token
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		out = m.appendInline(out, child)
	}
	return out
}

// appendInline appends the tokens for one inline node.
func (m *mapper) appendInline(out []mdast.Token, gmNode ast.Node) []mdast.Token {
	switch gmn := gmNode.(type) {
	case *ast.Text:
		value := gmn.Segment.Value(m.content)
		if !gmn.IsRaw() {
			value = resolveText(value)
		}
		if len(value) > 0 {
			out = append(out, mdast.Token{Kind: mdast.TokText, Content: string(value)})
		}
		switch {
		case gmn.HardLineBreak():
			out = append(out, mdast.Token{Kind: mdast.TokHardBreak, Tag: "br"})
		case gmn.SoftLineBreak():
			out = append(out, mdast.Token{Kind: mdast.TokSoftBreak})
		}

	case *ast.String:
		out = append(out, mdast.Token{Kind: mdast.TokText, Content: string(gmn.Value)})

	case *ast.Emphasis:
		kind, tag := mdast.TokEmphasis, "em"
		if gmn.Level == 2 {
			kind, tag = mdast.TokStrong, "strong"
		}
		out = append(out, mdast.Token{Kind: kind, Tag: tag, Children: m.mapInlines(gmn)})

	case *ast.CodeSpan:
		out = append(out, mdast.Token{Kind: mdast.TokCodeInline, Tag: "code", Content: m.codeSpanText(gmn)})

	case *ast.Image:
		children := m.mapInlines(gmn)
		out = append(out, mdast.Token{
			Kind:    mdast.TokImage,
			Tag:     "img",
			Content: mdast.PlainText(children),
			Attrs: map[string]string{
				mdast.AttrSrc:   string(resolveText(gmn.Destination)),
				mdast.AttrTitle: string(resolveText(gmn.Title)),
			},
			Children: children,
		})

	case *ast.Link:
		out = append(out, mdast.Token{
			Kind:     mdast.TokLink,
			Tag:      "a",
			Attrs:    map[string]string{mdast.AttrHref: string(resolveText(gmn.Destination))},
			Children: m.mapInlines(gmn),
		})

	case *ast.AutoLink:
		out = append(out, mdast.Token{
			Kind:     mdast.TokLink,
			Tag:      "a",
			Attrs:    map[string]string{mdast.AttrHref: string(gmn.URL(m.content))},
			Children: []mdast.Token{{Kind: mdast.TokText, Content: string(gmn.Label(m.content))}},
		})

	case *ast.RawHTML:
		var buf bytes.Buffer
		for i := range gmn.Segments.Len() {
			seg := gmn.Segments.At(i)
			buf.Write(seg.Value(m.content))
		}
		out = append(out, mdast.Token{Kind: mdast.TokHTMLInline, Content: buf.String()})

	case *east.Strikethrough:
		out = append(out, mdast.Token{Kind: mdast.TokStrikethrough, Tag: "s", Children: m.mapInlines(gmn)})

	case *east.TaskCheckBox:
		glyph := checkboxUnchecked
		if gmn.IsChecked {
			glyph = checkboxChecked
		}
		out = append(out, mdast.Token{Kind: mdast.TokText, Content: glyph})

	default:
		// Unknown inline types contribute their children.
		for child := gmNode.FirstChild(); child != nil; child = child.NextSibling() {
			out = m.appendInline(out, child)
		}
	}

	return out
}

// resolveText replaces entity and numeric character references and drops
// backslash escapes. Code spans and code blocks keep their bytes.
func resolveText(value []byte) []byte {
	return util.UnescapePunctuations(util.ResolveNumericReferences(util.ResolveEntityNames(value)))
}

// codeSpanText joins the segments of a code span; line endings become spaces.
func (m *mapper) codeSpanText(codeSpan *ast.CodeSpan) string {
	var buf bytes.Buffer
	for child := codeSpan.FirstChild(); child != nil; child = child.NextSibling() {
		var value []byte
		switch textNode := child.(type) {
		case *ast.Text:
			value = textNode.Segment.Value(m.content)
		case *ast.String:
			value = textNode.Value
		default:
			continue
		}
		if bytes.HasSuffix(value, []byte("\n")) {
			buf.Write(value[:len(value)-1])
			buf.WriteByte(' ')
			continue
		}
		buf.Write(value)
	}
	return buf.String()
}

// linesText concatenates the raw line segments of a block.
func (m *mapper) linesText(lines *text.Segments) string {
	var buf bytes.Buffer
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(m.content))
	}
	return buf.String()
}

// emit appends a block token to the stream.
func (m *mapper) emit(tok mdast.Token) {
	m.tokens = append(m.tokens, tok)
}
