package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Part names inside the package.
const (
	partContentTypes = "[Content_Types].xml"
	partRootRels     = "_rels/.rels"
	partDocument     = "word/document.xml"
	partDocumentRels = "word/_rels/document.xml.rels"
	partStyles       = "word/styles.xml"
	partNumbering    = "word/numbering.xml"
	partCore         = "docProps/core.xml"
	partApp          = "docProps/app.xml"
	mediaDir         = "word/media/"
)

// Relationship and content types.
const (
	relOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relExtendedProps  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relNumbering      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"
	relImage          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"

	ctRels      = "application/vnd.openxmlformats-package.relationships+xml"
	ctXML       = "application/xml"
	ctDocument  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ctStyles    = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	ctNumbering = "application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"
	ctCore      = "application/vnd.openxmlformats-package.core-properties+xml"
	ctApp       = "application/vnd.openxmlformats-officedocument.extended-properties+xml"

	picGraphicURI = "http://schemas.openxmlformats.org/drawingml/2006/picture"
)

// Page geometry: US Letter with one-inch margins, in twips.
const (
	pageWidth   = 12240
	pageHeight  = 15840
	pageMargin  = TwipsPerInch
	headerSpace = 720
	textWidth   = pageWidth - 2*pageMargin
)

// Application is recorded in docProps/app.xml.
const Application = "md2docx"

// defaultModTime is used for zip entries when Properties.Modified is unset.
//
//nolint:gochecknoglobals // Fixed timestamp for reproducible packages.
var defaultModTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// WriteTo serializes the document as a .docx package.
// Output is byte-for-byte reproducible for identical documents.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	counter := &countingWriter{w: w}
	zw := zip.NewWriter(counter)

	modTime := d.Properties.Modified
	if modTime.IsZero() {
		modTime = defaultModTime
	}

	parts := []struct {
		name string
		body any
	}{
		{partContentTypes, d.buildContentTypes()},
		{partRootRels, buildRootRels()},
		{partDocument, d.buildDocument()},
		{partDocumentRels, d.buildDocumentRels()},
		{partStyles, buildStyles()},
		{partNumbering, d.buildNumbering()},
		{partCore, d.buildCoreProps()},
		{partApp, appPropsXML{Xmlns: nsExtPr, Application: Application}},
	}

	for _, part := range parts {
		data, err := marshalPart(part.body)
		if err != nil {
			return counter.n, fmt.Errorf("marshal %s: %w", part.name, err)
		}
		if err := writeEntry(zw, part.name, data, modTime); err != nil {
			return counter.n, err
		}
	}

	for _, img := range d.images {
		if err := writeEntry(zw, mediaDir+img.Name, img.Data, modTime); err != nil {
			return counter.n, err
		}
	}

	if err := zw.Close(); err != nil {
		return counter.n, fmt.Errorf("close package: %w", err)
	}

	return counter.n, nil
}

// Bytes serializes the document into memory.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeEntry(zw *zip.Writer, name string, data []byte, modTime time.Time) error {
	fw, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modTime,
	})
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func marshalPart(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *Document) buildContentTypes() contentTypesXML {
	out := contentTypesXML{
		Xmlns: nsCT,
		Defaults: []defaultTypeXML{
			{Extension: "rels", ContentType: ctRels},
			{Extension: "xml", ContentType: ctXML},
		},
		Overrides: []overrideTypeXML{
			{PartName: "/" + partDocument, ContentType: ctDocument},
			{PartName: "/" + partStyles, ContentType: ctStyles},
			{PartName: "/" + partNumbering, ContentType: ctNumbering},
			{PartName: "/" + partCore, ContentType: ctCore},
			{PartName: "/" + partApp, ContentType: ctApp},
		},
	}

	seen := make(map[string]bool)
	for _, img := range d.images {
		if seen[img.ext] {
			continue
		}
		seen[img.ext] = true
		out.Defaults = append(out.Defaults, defaultTypeXML{Extension: img.ext, ContentType: img.ContentType})
	}

	return out
}

func buildRootRels() relationshipsXML {
	return relationshipsXML{
		Xmlns: nsRels,
		Relationships: []relationshipXML{
			{ID: "rId1", Type: relOfficeDocument, Target: partDocument},
			{ID: "rId2", Type: relCoreProps, Target: partCore},
			{ID: "rId3", Type: relExtendedProps, Target: partApp},
		},
	}
}

func (d *Document) buildDocumentRels() relationshipsXML {
	out := relationshipsXML{
		Xmlns: nsRels,
		Relationships: []relationshipXML{
			{ID: "rId1", Type: relStyles, Target: "styles.xml"},
			{ID: "rId2", Type: relNumbering, Target: "numbering.xml"},
		},
	}
	for _, img := range d.images {
		out.Relationships = append(out.Relationships, relationshipXML{
			ID:     img.relID,
			Type:   relImage,
			Target: "media/" + img.Name,
		})
	}
	return out
}

func (d *Document) buildCoreProps() corePropsXML {
	props := d.Properties
	out := corePropsXML{
		CP:          nsCP,
		DC:          nsDC,
		DCTerms:     nsDCT,
		XSI:         nsXSI,
		Title:       props.Title,
		Subject:     props.Subject,
		Creator:     props.Creator,
		Keywords:    strings.Join(props.Keywords, ", "),
		Description: props.Description,
	}
	if !props.Created.IsZero() {
		out.Created = &w3cDateXML{Type: "dcterms:W3CDTF", Value: props.Created.UTC().Format(time.RFC3339)}
	}
	if !props.Modified.IsZero() {
		out.Modified = &w3cDateXML{Type: "dcterms:W3CDTF", Value: props.Modified.UTC().Format(time.RFC3339)}
	}
	return out
}

// buildDocument renders the body. Drawing ids are numbered in body order.
func (d *Document) buildDocument() documentXML {
	out := documentXML{W: nsW, R: nsR, WP: nsWP, A: nsA, Pic: nsPic}

	var enc bodyEncoder
	for _, blk := range d.Blocks {
		switch b := blk.(type) {
		case *Paragraph:
			out.Body.Content = append(out.Body.Content, enc.paragraph(b))
		case *Table:
			out.Body.Content = append(out.Body.Content, enc.table(b))
		}
	}

	sect := &out.Body.SectPr
	sect.PageSize.W, sect.PageSize.H = pageWidth, pageHeight
	sect.Margins.Top, sect.Margins.Right = pageMargin, pageMargin
	sect.Margins.Bottom, sect.Margins.Left = pageMargin, pageMargin
	sect.Margins.Header, sect.Margins.Footer = headerSpace, headerSpace

	return out
}

// bodyEncoder converts model blocks to their XML form.
type bodyEncoder struct {
	drawings int
}

func (e *bodyEncoder) paragraph(p *Paragraph) paragraphXML {
	out := paragraphXML{Properties: paragraphProps(p)}
	for _, run := range p.Runs {
		out.Runs = append(out.Runs, e.run(run))
	}
	return out
}

func paragraphProps(p *Paragraph) *paragraphPropsXML {
	props := &paragraphPropsXML{}
	empty := true

	if p.Style != "" && p.Style != StyleNormal {
		props.Style = &valXML{Val: p.Style}
		empty = false
	}
	if p.NumID > 0 {
		level := max(0, min(p.ListLevel, MaxListLevel))
		props.NumPr = &numberingPropsXML{
			ILvl:  valXML{Val: strconv.Itoa(level)},
			NumID: valXML{Val: strconv.Itoa(p.NumID)},
		}
		empty = false
	}
	if p.IndentLeft > 0 {
		props.Indent = &indentXML{Left: strconv.Itoa(p.IndentLeft)}
		empty = false
	}
	if jc := p.Align.String(); jc != "" {
		props.Justification = &valXML{Val: jc}
		empty = false
	}

	if empty {
		return nil
	}
	return props
}

func (e *bodyEncoder) run(r *Run) runXML {
	out := runXML{Properties: runProps(r)}

	switch {
	case r.Break:
		out.Content = append(out.Content, breakXML{})
	case r.Picture != nil:
		e.drawings++
		out.Content = append(out.Content, drawing(r.Picture, e.drawings))
	default:
		out.Content = appendText(out.Content, r.Text)
	}

	return out
}

func runProps(r *Run) *runPropsXML {
	props := &runPropsXML{}
	empty := true

	if r.Font != "" {
		props.Font = &fontXML{ASCII: r.Font, HAnsi: r.Font, CS: r.Font}
		empty = false
	}
	if r.Bold {
		props.Bold = &onXML{}
		empty = false
	}
	if r.Italic {
		props.Italic = &onXML{}
		empty = false
	}
	if r.Strike {
		props.Strike = &onXML{}
		empty = false
	}
	if r.Size > 0 {
		size := strconv.Itoa(r.Size)
		props.FontSize = &valXML{Val: size}
		props.SizeCS = &valXML{Val: size}
		empty = false
	}

	if empty {
		return nil
	}
	return props
}

// appendText splits text into w:t, w:tab and w:br elements.
func appendText(content []any, text string) []any {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for lineIdx, line := range strings.Split(text, "\n") {
		if lineIdx > 0 {
			content = append(content, breakXML{})
		}
		for segIdx, seg := range strings.Split(line, "\t") {
			if segIdx > 0 {
				content = append(content, tabXML{})
			}
			if seg != "" {
				content = append(content, textElement(seg))
			}
		}
	}
	return content
}

func textElement(s string) textXML {
	t := textXML{Value: s}
	if strings.TrimSpace(s) != s {
		t.Space = "preserve"
	}
	return t
}

func drawing(pic *Picture, id int) drawingXML {
	name := "Picture " + strconv.Itoa(id)
	ext := extentXML{CX: pic.Width, CY: pic.Height}

	out := drawingXML{}
	inline := &out.Inline
	inline.DistT, inline.DistB, inline.DistL, inline.DistR = "0", "0", "0", "0"
	inline.Extent = ext
	inline.DocPr = docPrXML{ID: id, Name: name, Descr: pic.Descr}
	inline.Frame.Locks.NoChangeAspect = "1"

	data := &inline.Graphic.Data
	data.URI = picGraphicURI
	data.Pic.NvPicPr.CNvPr.ID = id
	data.Pic.NvPicPr.CNvPr.Name = pic.Image.Name
	data.Pic.BlipFill.Blip.Embed = pic.Image.relID
	data.Pic.SpPr.Xfrm.Ext = ext
	data.Pic.SpPr.Geom.Prst = "rect"

	return out
}

func (e *bodyEncoder) table(t *Table) tableXML {
	cols := max(t.Cols, 1)
	colWidth := textWidth / cols

	out := tableXML{
		Properties: tablePropsXML{
			Style: valXML{Val: StyleTableGrid},
			Width: tableSizeXML{W: 0, Type: "auto"},
			Look:  &tblLookXML{Val: "04A0", FirstRow: "1", NoHBand: "0", NoVBand: "1"},
		},
	}
	for range cols {
		out.Grid.Cols = append(out.Grid.Cols, gridColXML{W: colWidth})
	}

	for _, row := range t.Rows {
		rowOut := tableRowXML{}
		if row.Header {
			rowOut.Properties = &rowPropsXML{Header: &onXML{}}
		}
		for col := range cols {
			var text string
			if col < len(row.Cells) {
				text = row.Cells[col]
			}
			para := &Paragraph{}
			if col < len(t.Align) {
				para.Align = t.Align[col]
			}
			if text != "" {
				para.Runs = []*Run{{Text: text, Bold: row.Header}}
			}
			rowOut.Cells = append(rowOut.Cells, tableCellXML{
				Properties: cellPropsXML{Width: tableSizeXML{W: colWidth, Type: "dxa"}},
				Paragraphs: []paragraphXML{e.paragraph(para)},
			})
		}
		out.Rows = append(out.Rows, rowOut)
	}

	return out
}

// countingWriter tracks the bytes written for io.WriterTo.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
