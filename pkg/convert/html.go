package convert

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/md2docx/pkg/docx"
	"github.com/yaklabco/md2docx/pkg/mdast"
)

// htmlTag is a start or self-closing tag with its attributes.
type htmlTag struct {
	atom  atom.Atom
	attrs map[string]string
}

// scanTags returns the start and self-closing tags of an HTML fragment in order.
func scanTags(fragment string) []htmlTag {
	var tags []htmlTag

	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return tags
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := htmlTag{atom: atom.Lookup(name), attrs: map[string]string{}}
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				tag.attrs[string(key)] = string(val)
			}
			tags = append(tags, tag)
		default:
		}
	}
}

// html renders inline HTML: <br> becomes a line break, <img> is embedded
// like a Markdown image, and every other tag is dropped.
func (f *formatter) html(para *docx.Paragraph, fragment string) {
	for _, tag := range scanTags(fragment) {
		switch tag.atom {
		case atom.Br:
			para.AddBreak()
		case atom.Img:
			f.image(para, tag.attrs["src"], tag.attrs["alt"])
		default:
		}
	}
}

// htmlBlock keeps the images of a raw HTML block, one paragraph per block.
// An align="center" wrapper centres the paragraph.
func (m *mapper) htmlBlock(tok mdast.Token) {
	tags := scanTags(tok.Content)

	var images []htmlTag
	centered := false
	for _, tag := range tags {
		if strings.EqualFold(tag.attrs["align"], "center") && tag.atom != atom.Img {
			centered = true
		}
		if tag.atom == atom.Img {
			images = append(images, tag)
		}
	}
	if len(images) == 0 {
		return
	}

	para := m.doc.AddParagraph("")
	if centered {
		para.Align = docx.AlignCenter
	}
	for _, img := range images {
		m.inline.image(para, img.attrs["src"], img.attrs["alt"])
	}
	m.conv.Stats.Paragraphs++
}
