package docx

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngBytes encodes a solid w x h PNG.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// readPackage returns the parts of a serialized document by name.
func readPackage(t *testing.T, doc *Document) map[string]string {
	t.Helper()

	data, err := doc.Bytes()
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	parts := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		parts[f.Name] = string(body)
	}
	return parts
}

func TestDocument_AddHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level int
		style string
	}{
		{1, "Heading1"},
		{3, "Heading3"},
		{6, "Heading6"},
		{0, "Heading1"},
		{12, "Heading9"},
	}

	for _, tt := range tests {
		doc := New()
		para := doc.AddHeading(tt.level)
		assert.Equal(t, tt.style, para.Style)
		assert.Len(t, doc.Blocks, 1)
	}
}

func TestDocument_AddParagraph(t *testing.T) {
	t.Parallel()

	doc := New()
	empty := doc.AddParagraph("")
	filled := doc.AddParagraph("hello")

	assert.Empty(t, empty.Runs)
	require.Len(t, filled.Runs, 1)
	assert.Equal(t, "hello", filled.Runs[0].Text)
	assert.Equal(t, StyleNormal, filled.Style)
	assert.Len(t, doc.Paragraphs(), 2)
	assert.Empty(t, doc.Tables())
}

func TestParagraph_Text(t *testing.T) {
	t.Parallel()

	para := &Paragraph{}
	para.AddRun("a")
	para.AddBreak()
	para.AddRun("b")

	assert.Equal(t, "a\nb", para.Text())
}

func TestTable_AddRow(t *testing.T) {
	t.Parallel()

	doc := New()
	tbl := doc.AddTable(2)

	tbl.AddRow(true, []string{"A", "B"})
	tbl.AddRow(false, []string{"1"})
	tbl.AddRow(false, []string{"1", "2", "3"})

	require.Len(t, tbl.Rows, 3)
	assert.True(t, tbl.Rows[0].Header)
	assert.Equal(t, []string{"1", ""}, tbl.Rows[1].Cells)
	assert.Equal(t, []string{"1", "2"}, tbl.Rows[2].Cells)
}

func TestDocument_AddNumbering(t *testing.T) {
	t.Parallel()

	doc := New()
	first := doc.AddNumbering(1)
	second := doc.AddNumbering(5)

	assert.Equal(t, BulletNumID+1, first)
	assert.Equal(t, BulletNumID+2, second)

	parts := readPackage(t, doc)
	numbering := parts[partNumbering]
	assert.Contains(t, numbering, `<w:num w:numId="3"><w:abstractNumId w:val="1">`)
	assert.Contains(t, numbering, `<w:startOverride w:val="5">`)
	assert.Contains(t, numbering, `<w:lvlText w:val="•">`)
	assert.Contains(t, numbering, `<w:numFmt w:val="lowerRoman">`)
}

func TestParseAlignment(t *testing.T) {
	t.Parallel()

	assert.Equal(t, AlignLeft, ParseAlignment("left"))
	assert.Equal(t, AlignCenter, ParseAlignment("center"))
	assert.Equal(t, AlignRight, ParseAlignment("right"))
	assert.Equal(t, AlignDefault, ParseAlignment("none"))
	assert.Empty(t, AlignDefault.String())
}

func TestDocument_AddImage(t *testing.T) {
	t.Parallel()

	doc := New()
	data := pngBytes(t, 40, 20)

	img, err := doc.AddImage(data)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Width)
	assert.Equal(t, 20, img.Height)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, "image1.png", img.Name)
	assert.Equal(t, int64(2*EMUPerInch), img.HeightFor(4*EMUPerInch))

	again, err := doc.AddImage(data)
	require.NoError(t, err)
	assert.Same(t, img, again, "identical data should be stored once")
	assert.Len(t, doc.Images(), 1)
}

func TestDocument_AddImage_Errors(t *testing.T) {
	t.Parallel()

	doc := New()

	_, err := doc.AddImage([]byte("definitely not an image"))
	require.ErrorIs(t, err, ErrUnsupportedImage)

	truncated := pngBytes(t, 4, 4)[:20]
	_, err = doc.AddImage(truncated)
	require.ErrorIs(t, err, ErrImageDecode)

	assert.Empty(t, doc.Images())
}

func TestDocument_WriteTo_Parts(t *testing.T) {
	t.Parallel()

	doc := New()
	doc.AddHeading(2).AddRun("Title").Bold = true
	code := doc.AddParagraph("")
	code.IndentLeft = 720
	code.Runs = append(code.Runs, &Run{Text: "a\n\tb", Monospace: true, Font: "Courier New", Size: 20})

	img, err := doc.AddImage(pngBytes(t, 10, 10))
	require.NoError(t, err)
	doc.AddParagraph("").AddPicture(img, 4*EMUPerInch, "pic")

	tbl := doc.AddTable(2)
	tbl.Align[1] = AlignRight
	tbl.AddRow(true, []string{"A", "B"})
	tbl.AddRow(false, []string{"1", "2"})

	doc.Properties.Title = "Doc & Title"
	doc.Properties.Keywords = []string{"a", "b"}

	parts := readPackage(t, doc)
	for _, name := range []string{
		partContentTypes, partRootRels, partDocument, partDocumentRels,
		partStyles, partNumbering, partCore, partApp, mediaDir + "image1.png",
	} {
		assert.Contains(t, parts, name)
	}

	body := parts[partDocument]
	assert.Contains(t, body, `<w:pStyle w:val="Heading2">`)
	assert.Contains(t, body, `<w:b></w:b>`)
	assert.Contains(t, body, `<w:ind w:left="720">`)
	assert.Contains(t, body, `<w:rFonts w:ascii="Courier New" w:hAnsi="Courier New" w:cs="Courier New">`)
	assert.Contains(t, body, `<w:sz w:val="20">`)
	assert.Contains(t, body, `<w:t>a</w:t><w:br></w:br><w:tab></w:tab><w:t>b</w:t>`)
	assert.Contains(t, body, `<wp:extent cx="3657600" cy="3657600">`)
	assert.Contains(t, body, `<a:blip r:embed="rId3">`)
	assert.Contains(t, body, `<w:tblHeader></w:tblHeader>`)
	assert.Contains(t, body, `<w:jc w:val="right">`)
	assert.Contains(t, body, `xmlns:w="`+nsW+`"`)

	assert.Contains(t, parts[partDocumentRels], `Target="media/image1.png"`)
	assert.Contains(t, parts[partContentTypes], `Extension="png"`)
	assert.Contains(t, parts[partCore], `<dc:title>Doc &amp; Title</dc:title>`)
	assert.Contains(t, parts[partCore], `<cp:keywords>a, b</cp:keywords>`)
	assert.Contains(t, parts[partApp], Application)
	assert.True(t, strings.HasPrefix(body, "<?xml"))
}

func TestDocument_WriteTo_Deterministic(t *testing.T) {
	t.Parallel()

	build := func() []byte {
		doc := New()
		doc.Properties.Modified = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
		doc.AddHeading(1).AddRun("Same")
		doc.AddParagraph("content")
		data, err := doc.Bytes()
		require.NoError(t, err)
		return data
	}

	assert.Equal(t, build(), build())
}

func TestDocument_WriteTo_PreservesSpaces(t *testing.T) {
	t.Parallel()

	doc := New()
	doc.AddParagraph(" ")

	body := readPackage(t, doc)[partDocument]
	assert.Contains(t, body, `<w:t xml:space="preserve"> </w:t>`)
}
