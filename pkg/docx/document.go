// Package docx builds Word documents in memory and serializes them as
// Office Open XML packages.
//
// The model is deliberately small: a Document is an ordered list of
// paragraphs and tables, paragraphs hold runs, and runs hold text, a line
// break or an embedded picture. Styles and list numbering definitions are
// fixed and written with every package.
package docx

import (
	"strconv"
	"time"
)

// Style identifiers used by the generated styles part.
const (
	StyleNormal     = "Normal"
	StyleListBullet = "ListBullet"
	StyleListNumber = "ListNumber"
	StyleTableGrid  = "TableGrid"
)

// Numbering identifiers. Bulleted list paragraphs share BulletNumID; each
// ordered list gets its own instance from Document.AddNumbering.
const (
	BulletNumID  = 1
	MaxListLevel = 8
)

// Measurement helpers.
const (
	TwipsPerInch = 1440
	EMUPerInch   = 914400
)

// Alignment is a horizontal paragraph alignment.
type Alignment int

// Supported alignments.
const (
	AlignDefault Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// ParseAlignment maps "left", "center" and "right" to an Alignment.
// Anything else yields AlignDefault.
func ParseAlignment(s string) Alignment {
	switch s {
	case "left":
		return AlignLeft
	case "center":
		return AlignCenter
	case "right":
		return AlignRight
	default:
		return AlignDefault
	}
}

// String returns the WordprocessingML jc value, or "" for AlignDefault.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignDefault:
	}
	return ""
}

// Block is a body-level element: *Paragraph or *Table.
type Block interface {
	isBlock()
}

// CoreProperties are the package metadata written to docProps/core.xml.
type CoreProperties struct {
	Title       string
	Subject     string
	Creator     string
	Description string
	Keywords    []string
	Created     time.Time
	Modified    time.Time
}

// Document is an in-memory Word document.
// A Document is not safe for concurrent use.
type Document struct {
	// Blocks holds paragraphs and tables in body order.
	Blocks []Block

	// Properties is written to the core properties part.
	Properties CoreProperties

	images    []*Image
	imageByID map[[32]byte]*Image
	lists     []listInstance
}

// listInstance is an ordered-list numbering instance.
type listInstance struct {
	numID int
	start int
}

// New returns an empty document.
func New() *Document {
	return &Document{imageByID: make(map[[32]byte]*Image)}
}

// AddHeading appends an empty heading paragraph. The level is clamped to 1-9.
func (d *Document) AddHeading(level int) *Paragraph {
	level = max(1, min(level, 9))
	return d.addParagraph("Heading" + strconv.Itoa(level))
}

// AddParagraph appends a Normal paragraph, with one plain run when text is not empty.
func (d *Document) AddParagraph(text string) *Paragraph {
	para := d.addParagraph(StyleNormal)
	if text != "" {
		para.AddRun(text)
	}
	return para
}

// AddStyledParagraph appends an empty paragraph with the given style id.
func (d *Document) AddStyledParagraph(style string) *Paragraph {
	if style == "" {
		style = StyleNormal
	}
	return d.addParagraph(style)
}

func (d *Document) addParagraph(style string) *Paragraph {
	para := &Paragraph{Style: style}
	d.Blocks = append(d.Blocks, para)
	return para
}

// AddTable appends a table with the given column count and no rows.
func (d *Document) AddTable(cols int) *Table {
	tbl := &Table{Cols: max(cols, 0), Align: make([]Alignment, max(cols, 0))}
	d.Blocks = append(d.Blocks, tbl)
	return tbl
}

// AddNumbering allocates a numbering instance for an ordered list starting at start.
// It returns the instance id to use as Paragraph.NumID.
func (d *Document) AddNumbering(start int) int {
	start = max(start, 0)
	numID := BulletNumID + 1 + len(d.lists)
	d.lists = append(d.lists, listInstance{numID: numID, start: start})
	return numID
}

// Images returns the embedded images in insertion order.
func (d *Document) Images() []*Image {
	return d.images
}

// Paragraphs returns the body paragraphs, excluding those inside tables.
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, blk := range d.Blocks {
		if para, ok := blk.(*Paragraph); ok {
			out = append(out, para)
		}
	}
	return out
}

// Tables returns the body tables.
func (d *Document) Tables() []*Table {
	var out []*Table
	for _, blk := range d.Blocks {
		if tbl, ok := blk.(*Table); ok {
			out = append(out, tbl)
		}
	}
	return out
}

// Paragraph is a block of runs sharing paragraph properties.
type Paragraph struct {
	// Style is the paragraph style id ("Normal", "Heading2", "ListBullet", ...).
	Style string

	// NumID and ListLevel attach the paragraph to a numbering instance.
	// NumID 0 means no numbering.
	NumID     int
	ListLevel int

	// IndentLeft is the left indent in twips.
	IndentLeft int

	// Align is the horizontal alignment.
	Align Alignment

	// Runs holds the paragraph content in order.
	Runs []*Run
}

func (*Paragraph) isBlock() {}

// AddRun appends a plain text run.
func (p *Paragraph) AddRun(text string) *Run {
	run := &Run{Text: text}
	p.Runs = append(p.Runs, run)
	return run
}

// AddBreak appends a line break run.
func (p *Paragraph) AddBreak() *Run {
	run := &Run{Break: true}
	p.Runs = append(p.Runs, run)
	return run
}

// AddPicture appends a run showing img at the given width in EMU.
// The height follows the image's aspect ratio.
func (p *Paragraph) AddPicture(img *Image, widthEMU int64, descr string) *Run {
	run := &Run{Picture: &Picture{
		Image:  img,
		Width:  widthEMU,
		Height: img.HeightFor(widthEMU),
		Descr:  descr,
	}}
	p.Runs = append(p.Runs, run)
	return run
}

// Text returns the concatenated text of all runs; breaks become newlines.
func (p *Paragraph) Text() string {
	var buf []byte
	for _, run := range p.Runs {
		if run.Break {
			buf = append(buf, '\n')
			continue
		}
		buf = append(buf, run.Text...)
	}
	return string(buf)
}

// Run is a span of uniformly formatted content.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Strike    bool
	Monospace bool

	// Font overrides the font family when set.
	Font string

	// Size is the font size in half-points; 0 keeps the style default.
	Size int

	// Break marks a line break run; Text is ignored.
	Break bool

	// Picture marks an embedded image run; Text is ignored.
	Picture *Picture
}

// Picture is an inline image placement.
type Picture struct {
	Image  *Image
	Width  int64
	Height int64
	Descr  string
}

// Table is a grid of literal-text cells.
type Table struct {
	// Cols is the column count; every row has exactly Cols cells.
	Cols int

	// Align holds the per-column alignment.
	Align []Alignment

	Rows []*TableRow
}

func (*Table) isBlock() {}

// AddRow appends a row. Missing cells are padded with empty strings and
// surplus cells are dropped so the row matches the column count.
func (t *Table) AddRow(header bool, cells []string) *TableRow {
	row := &TableRow{Header: header, Cells: make([]string, t.Cols)}
	copy(row.Cells, cells)
	t.Rows = append(t.Rows, row)
	return row
}

// TableRow is one table row.
type TableRow struct {
	// Header marks a header row, repeated at the top of each page.
	Header bool
	Cells  []string
}
