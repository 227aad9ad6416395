package docx

import (
	"encoding/xml"
	"strconv"
)

// Default body font and size (half-points).
const (
	defaultFont     = "Calibri"
	defaultFontSize = 22
)

// headingSizes holds the run size in half-points for Heading1..Heading9.
//
//nolint:gochecknoglobals // Read-only lookup table.
var headingSizes = [...]int{32, 28, 26, 24, 22, 22, 22, 22, 22}

// stylesXML is word/styles.xml.
type stylesXML struct {
	XMLName     xml.Name       `xml:"w:styles"`
	W           string         `xml:"xmlns:w,attr"`
	DocDefaults docDefaultsXML `xml:"w:docDefaults"`
	Styles      []styleDefXML  `xml:"w:style"`
}

type docDefaultsXML struct {
	RPrDefault struct {
		RPr runPropsXML `xml:"w:rPr"`
	} `xml:"w:rPrDefault"`
	PPrDefault struct {
		PPr paragraphPropsXML `xml:"w:pPr"`
	} `xml:"w:pPrDefault"`
}

type styleDefXML struct {
	Type    string              `xml:"w:type,attr"`
	StyleID string              `xml:"w:styleId,attr"`
	Default string              `xml:"w:default,attr,omitempty"`
	Name    valXML              `xml:"w:name"`
	BasedOn *valXML             `xml:"w:basedOn,omitempty"`
	Next    *valXML             `xml:"w:next,omitempty"`
	QFormat *onXML              `xml:"w:qFormat,omitempty"`
	PPr     *paragraphPropsXML  `xml:"w:pPr,omitempty"`
	RPr     *runPropsXML        `xml:"w:rPr,omitempty"`
	TblPr   *styleTablePropsXML `xml:"w:tblPr,omitempty"`
}

type styleTablePropsXML struct {
	Borders tableBordersXML `xml:"w:tblBorders"`
}

type tableBordersXML struct {
	Top     borderXML `xml:"w:top"`
	Left    borderXML `xml:"w:left"`
	Bottom  borderXML `xml:"w:bottom"`
	Right   borderXML `xml:"w:right"`
	InsideH borderXML `xml:"w:insideH"`
	InsideV borderXML `xml:"w:insideV"`
}

type borderXML struct {
	Val   string `xml:"w:val,attr"`
	Sz    int    `xml:"w:sz,attr"`
	Space int    `xml:"w:space,attr"`
	Color string `xml:"w:color,attr"`
}

// buildStyles returns the fixed style sheet.
func buildStyles() stylesXML {
	size := strconv.Itoa(defaultFontSize)

	out := stylesXML{W: nsW}
	out.DocDefaults.RPrDefault.RPr = runPropsXML{
		Font:     &fontXML{ASCII: defaultFont, HAnsi: defaultFont, CS: defaultFont},
		FontSize: &valXML{Val: size},
		SizeCS:   &valXML{Val: size},
	}
	out.DocDefaults.PPrDefault.PPr = paragraphPropsXML{
		Spacing: &spacingXML{After: "160"},
	}

	out.Styles = append(out.Styles, styleDefXML{
		Type:    "paragraph",
		StyleID: StyleNormal,
		Default: "1",
		Name:    valXML{Val: "Normal"},
		QFormat: &onXML{},
	})

	for i, sz := range headingSizes {
		level := strconv.Itoa(i + 1)
		out.Styles = append(out.Styles, styleDefXML{
			Type:    "paragraph",
			StyleID: "Heading" + level,
			Name:    valXML{Val: "heading " + level},
			BasedOn: &valXML{Val: StyleNormal},
			Next:    &valXML{Val: StyleNormal},
			QFormat: &onXML{},
			PPr: &paragraphPropsXML{
				KeepNext:   &onXML{},
				Spacing:    &spacingXML{Before: "240", After: "80"},
				OutlineLvl: &valXML{Val: strconv.Itoa(i)},
			},
			RPr: &runPropsXML{
				Bold:     &onXML{},
				FontSize: &valXML{Val: strconv.Itoa(sz)},
				SizeCS:   &valXML{Val: strconv.Itoa(sz)},
			},
		})
	}

	for _, list := range []struct{ id, name string }{
		{StyleListBullet, "List Bullet"},
		{StyleListNumber, "List Number"},
	} {
		out.Styles = append(out.Styles, styleDefXML{
			Type:    "paragraph",
			StyleID: list.id,
			Name:    valXML{Val: list.name},
			BasedOn: &valXML{Val: StyleNormal},
			QFormat: &onXML{},
			PPr:     &paragraphPropsXML{Spacing: &spacingXML{After: "40"}},
		})
	}

	single := borderXML{Val: "single", Sz: 4, Color: "auto"}
	out.Styles = append(out.Styles, styleDefXML{
		Type:    "table",
		StyleID: StyleTableGrid,
		Name:    valXML{Val: "Table Grid"},
		PPr:     &paragraphPropsXML{Spacing: &spacingXML{After: "0"}},
		TblPr: &styleTablePropsXML{Borders: tableBordersXML{
			Top: single, Left: single, Bottom: single, Right: single,
			InsideH: single, InsideV: single,
		}},
	})

	return out
}
