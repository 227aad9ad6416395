package mdast

import "strconv"

// TokenKind classifies a token in the flat Markdown token stream.
type TokenKind uint16

// Block-level kinds come in open/close pairs; inline kinds live in the Children
// of a TokInline holder. Wrapping inline kinds (strong, emphasis, strikethrough,
// link, image) carry their content as Children and have no close token.
const (
	TokHeadingOpen TokenKind = iota
	TokHeadingClose
	TokParagraphOpen
	TokParagraphClose
	TokBulletListOpen
	TokBulletListClose
	TokOrderedListOpen
	TokOrderedListClose
	TokListItemOpen
	TokListItemClose
	TokFence     // fenced code block, Content holds the literal lines
	TokCodeBlock // indented code block
	TokBlockquoteOpen
	TokBlockquoteClose
	TokThematicBreak
	TokHTMLBlock
	TokTableOpen
	TokTableClose
	TokTableHeadOpen
	TokTableHeadClose
	TokTableBodyOpen
	TokTableBodyClose
	TokTableRowOpen
	TokTableRowClose
	TokTableHeaderCellOpen
	TokTableHeaderCellClose
	TokTableCellOpen
	TokTableCellClose
	TokInline // inline content holder

	// Inline kinds.
	TokText
	TokSoftBreak
	TokHardBreak
	TokStrong
	TokEmphasis
	TokStrikethrough
	TokCodeInline
	TokImage
	TokLink
	TokHTMLInline

	tokKindCount
)

//nolint:gochecknoglobals // Read-only lookup table.
var tokenKindNames = [...]string{
	TokHeadingOpen:          "heading_open",
	TokHeadingClose:         "heading_close",
	TokParagraphOpen:        "paragraph_open",
	TokParagraphClose:       "paragraph_close",
	TokBulletListOpen:       "bullet_list_open",
	TokBulletListClose:      "bullet_list_close",
	TokOrderedListOpen:      "ordered_list_open",
	TokOrderedListClose:     "ordered_list_close",
	TokListItemOpen:         "list_item_open",
	TokListItemClose:        "list_item_close",
	TokFence:                "fence",
	TokCodeBlock:            "code_block",
	TokBlockquoteOpen:       "blockquote_open",
	TokBlockquoteClose:      "blockquote_close",
	TokThematicBreak:        "hr",
	TokHTMLBlock:            "html_block",
	TokTableOpen:            "table_open",
	TokTableClose:           "table_close",
	TokTableHeadOpen:        "thead_open",
	TokTableHeadClose:       "thead_close",
	TokTableBodyOpen:        "tbody_open",
	TokTableBodyClose:       "tbody_close",
	TokTableRowOpen:         "tr_open",
	TokTableRowClose:        "tr_close",
	TokTableHeaderCellOpen:  "th_open",
	TokTableHeaderCellClose: "th_close",
	TokTableCellOpen:        "td_open",
	TokTableCellClose:       "td_close",
	TokInline:               "inline",
	TokText:                 "text",
	TokSoftBreak:            "softbreak",
	TokHardBreak:            "hardbreak",
	TokStrong:               "strong",
	TokEmphasis:             "em",
	TokStrikethrough:        "s",
	TokCodeInline:           "code_inline",
	TokImage:                "image",
	TokLink:                 "link",
	TokHTMLInline:           "html_inline",
}

// String returns the token kind name.
func (k TokenKind) String() string {
	if k < tokKindCount {
		return tokenKindNames[k]
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// IsInline returns true for kinds that only appear inside an inline holder.
func (k TokenKind) IsInline() bool {
	return k >= TokText && k < tokKindCount
}

// Attribute keys used in Token.Attrs.
const (
	AttrSrc   = "src"
	AttrTitle = "title"
	AttrHref  = "href"
	AttrAlign = "align"
	AttrStart = "start"
)

// Token is one unit of the parsed Markdown stream.
// Tokens are produced once per file and treated as read-only afterwards.
type Token struct {
	// Kind classifies what this token represents.
	Kind TokenKind

	// Tag is the HTML-equivalent tag name ("h2", "p", "th", ...).
	Tag string

	// Level is the heading level (1-6) for heading tokens.
	Level int

	// Content holds literal text: text and code content, alt text for images,
	// raw HTML for HTML tokens.
	Content string

	// Info is the info string of a fenced code block.
	Info string

	// Attrs holds optional attributes (see the Attr* keys).
	Attrs map[string]string

	// Children holds inline content for TokInline and wrapping inline kinds.
	Children []Token

	// Hidden marks the paragraph of a tight list item.
	Hidden bool
}

// Attr returns the named attribute, or "" when unset.
func (t Token) Attr(name string) string {
	if t.Attrs == nil {
		return ""
	}
	return t.Attrs[name]
}

// PlainText concatenates the literal text of tokens and their descendants.
// Soft breaks become spaces, hard breaks become newlines, HTML is dropped.
func PlainText(tokens []Token) string {
	var buf []byte
	buf = appendPlainText(buf, tokens)
	return string(buf)
}

func appendPlainText(buf []byte, tokens []Token) []byte {
	for _, tok := range tokens {
		switch tok.Kind {
		case TokText, TokCodeInline:
			buf = append(buf, tok.Content...)
		case TokSoftBreak:
			buf = append(buf, ' ')
		case TokHardBreak:
			buf = append(buf, '\n')
		case TokHTMLInline:
		default:
			buf = appendPlainText(buf, tok.Children)
		}
	}
	return buf
}
