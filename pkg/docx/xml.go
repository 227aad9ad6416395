package docx

import "encoding/xml"

// XML namespaces used in the generated parts.
const (
	nsW     = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP    = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA     = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic   = "http://schemas.openxmlformats.org/drawingml/2006/picture"
	nsRels  = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsCT    = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsCP    = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDC    = "http://purl.org/dc/elements/1.1/"
	nsDCT   = "http://purl.org/dc/terms/"
	nsXSI   = "http://www.w3.org/2001/XMLSchema-instance"
	nsExtPr = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
)

// Element names carry their prefix literally; the root element declares
// every prefix it uses.

// documentXML is word/document.xml.
type documentXML struct {
	XMLName xml.Name `xml:"w:document"`
	W       string   `xml:"xmlns:w,attr"`
	R       string   `xml:"xmlns:r,attr"`
	WP      string   `xml:"xmlns:wp,attr"`
	A       string   `xml:"xmlns:a,attr"`
	Pic     string   `xml:"xmlns:pic,attr"`
	Body    bodyXML  `xml:"w:body"`
}

// bodyXML holds paragraphs and tables in order, then the section properties.
type bodyXML struct {
	Content []any
	SectPr  sectPropsXML `xml:"w:sectPr"`
}

type valXML struct {
	Val string `xml:"w:val,attr"`
}

type onXML struct{}

// paragraphXML is <w:p>.
type paragraphXML struct {
	XMLName    xml.Name           `xml:"w:p"`
	Properties *paragraphPropsXML `xml:"w:pPr,omitempty"`
	Runs       []runXML
}

// paragraphPropsXML is <w:pPr>; field order follows the schema sequence.
type paragraphPropsXML struct {
	Style         *valXML            `xml:"w:pStyle,omitempty"`
	KeepNext      *onXML             `xml:"w:keepNext,omitempty"`
	NumPr         *numberingPropsXML `xml:"w:numPr,omitempty"`
	Spacing       *spacingXML        `xml:"w:spacing,omitempty"`
	Indent        *indentXML         `xml:"w:ind,omitempty"`
	Justification *valXML            `xml:"w:jc,omitempty"`
	OutlineLvl    *valXML            `xml:"w:outlineLvl,omitempty"`
}

type numberingPropsXML struct {
	ILvl  valXML `xml:"w:ilvl"`
	NumID valXML `xml:"w:numId"`
}

type spacingXML struct {
	Before string `xml:"w:before,attr,omitempty"`
	After  string `xml:"w:after,attr,omitempty"`
}

type indentXML struct {
	Left    string `xml:"w:left,attr,omitempty"`
	Hanging string `xml:"w:hanging,attr,omitempty"`
}

// runXML is <w:r>. Content holds textXML, tabXML, breakXML and drawingXML in order.
type runXML struct {
	XMLName    xml.Name     `xml:"w:r"`
	Properties *runPropsXML `xml:"w:rPr,omitempty"`
	Content    []any
}

// runPropsXML is <w:rPr>; field order follows the schema sequence.
type runPropsXML struct {
	Font     *fontXML `xml:"w:rFonts,omitempty"`
	Bold     *onXML   `xml:"w:b,omitempty"`
	Italic   *onXML   `xml:"w:i,omitempty"`
	Strike   *onXML   `xml:"w:strike,omitempty"`
	FontSize *valXML  `xml:"w:sz,omitempty"`
	SizeCS   *valXML  `xml:"w:szCs,omitempty"`
}

type fontXML struct {
	ASCII string `xml:"w:ascii,attr"`
	HAnsi string `xml:"w:hAnsi,attr"`
	CS    string `xml:"w:cs,attr"`
}

type textXML struct {
	XMLName xml.Name `xml:"w:t"`
	Space   string   `xml:"xml:space,attr,omitempty"`
	Value   string   `xml:",chardata"`
}

type tabXML struct {
	XMLName xml.Name `xml:"w:tab"`
}

type breakXML struct {
	XMLName xml.Name `xml:"w:br"`
}

// drawingXML is an inline picture.
type drawingXML struct {
	XMLName xml.Name  `xml:"w:drawing"`
	Inline  inlineXML `xml:"wp:inline"`
}

type inlineXML struct {
	DistT   string          `xml:"distT,attr"`
	DistB   string          `xml:"distB,attr"`
	DistL   string          `xml:"distL,attr"`
	DistR   string          `xml:"distR,attr"`
	Extent  extentXML       `xml:"wp:extent"`
	DocPr   docPrXML        `xml:"wp:docPr"`
	Frame   graphicFrameXML `xml:"wp:cNvGraphicFramePr"`
	Graphic graphicXML      `xml:"a:graphic"`
}

type extentXML struct {
	CX int64 `xml:"cx,attr"`
	CY int64 `xml:"cy,attr"`
}

type docPrXML struct {
	ID    int    `xml:"id,attr"`
	Name  string `xml:"name,attr"`
	Descr string `xml:"descr,attr,omitempty"`
}

type graphicFrameXML struct {
	Locks struct {
		NoChangeAspect string `xml:"noChangeAspect,attr"`
	} `xml:"a:graphicFrameLocks"`
}

type graphicXML struct {
	Data graphicDataXML `xml:"a:graphicData"`
}

type graphicDataXML struct {
	URI string `xml:"uri,attr"`
	Pic picXML `xml:"pic:pic"`
}

type picXML struct {
	NvPicPr struct {
		CNvPr struct {
			ID   int    `xml:"id,attr"`
			Name string `xml:"name,attr"`
		} `xml:"pic:cNvPr"`
		CNvPicPr struct{} `xml:"pic:cNvPicPr"`
	} `xml:"pic:nvPicPr"`
	BlipFill struct {
		Blip struct {
			Embed string `xml:"r:embed,attr"`
		} `xml:"a:blip"`
		Stretch struct {
			FillRect struct{} `xml:"a:fillRect"`
		} `xml:"a:stretch"`
	} `xml:"pic:blipFill"`
	SpPr struct {
		Xfrm struct {
			Off struct {
				X int64 `xml:"x,attr"`
				Y int64 `xml:"y,attr"`
			} `xml:"a:off"`
			Ext extentXML `xml:"a:ext"`
		} `xml:"a:xfrm"`
		Geom struct {
			Prst  string   `xml:"prst,attr"`
			AvLst struct{} `xml:"a:avLst"`
		} `xml:"a:prstGeom"`
	} `xml:"pic:spPr"`
}

// tableXML is <w:tbl>.
type tableXML struct {
	XMLName    xml.Name      `xml:"w:tbl"`
	Properties tablePropsXML `xml:"w:tblPr"`
	Grid       tableGridXML  `xml:"w:tblGrid"`
	Rows       []tableRowXML `xml:"w:tr"`
}

type tablePropsXML struct {
	Style valXML       `xml:"w:tblStyle"`
	Width tableSizeXML `xml:"w:tblW"`
	Look  *tblLookXML  `xml:"w:tblLook,omitempty"`
}

type tblLookXML struct {
	Val      string `xml:"w:val,attr"`
	FirstRow string `xml:"w:firstRow,attr"`
	NoHBand  string `xml:"w:noHBand,attr"`
	NoVBand  string `xml:"w:noVBand,attr"`
}

type tableSizeXML struct {
	W    int    `xml:"w:w,attr"`
	Type string `xml:"w:type,attr"`
}

type tableGridXML struct {
	Cols []gridColXML `xml:"w:gridCol"`
}

type gridColXML struct {
	W int `xml:"w:w,attr"`
}

type tableRowXML struct {
	Properties *rowPropsXML   `xml:"w:trPr,omitempty"`
	Cells      []tableCellXML `xml:"w:tc"`
}

type rowPropsXML struct {
	Header *onXML `xml:"w:tblHeader,omitempty"`
}

type tableCellXML struct {
	Properties cellPropsXML `xml:"w:tcPr"`
	Paragraphs []paragraphXML
}

type cellPropsXML struct {
	Width tableSizeXML `xml:"w:tcW"`
}

// sectPropsXML describes a US Letter page with one-inch margins.
type sectPropsXML struct {
	PageSize struct {
		W int `xml:"w:w,attr"`
		H int `xml:"w:h,attr"`
	} `xml:"w:pgSz"`
	Margins struct {
		Top    int `xml:"w:top,attr"`
		Right  int `xml:"w:right,attr"`
		Bottom int `xml:"w:bottom,attr"`
		Left   int `xml:"w:left,attr"`
		Header int `xml:"w:header,attr"`
		Footer int `xml:"w:footer,attr"`
		Gutter int `xml:"w:gutter,attr"`
	} `xml:"w:pgMar"`
}

// relationshipsXML is a .rels part.
type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Xmlns         string            `xml:"xmlns,attr"`
	Relationships []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// contentTypesXML is [Content_Types].xml.
type contentTypesXML struct {
	XMLName   xml.Name          `xml:"Types"`
	Xmlns     string            `xml:"xmlns,attr"`
	Defaults  []defaultTypeXML  `xml:"Default"`
	Overrides []overrideTypeXML `xml:"Override"`
}

type defaultTypeXML struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type overrideTypeXML struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// corePropsXML is docProps/core.xml.
type corePropsXML struct {
	XMLName     xml.Name    `xml:"cp:coreProperties"`
	CP          string      `xml:"xmlns:cp,attr"`
	DC          string      `xml:"xmlns:dc,attr"`
	DCTerms     string      `xml:"xmlns:dcterms,attr"`
	XSI         string      `xml:"xmlns:xsi,attr"`
	Title       string      `xml:"dc:title,omitempty"`
	Subject     string      `xml:"dc:subject,omitempty"`
	Creator     string      `xml:"dc:creator,omitempty"`
	Keywords    string      `xml:"cp:keywords,omitempty"`
	Description string      `xml:"dc:description,omitempty"`
	Created     *w3cDateXML `xml:"dcterms:created,omitempty"`
	Modified    *w3cDateXML `xml:"dcterms:modified,omitempty"`
}

type w3cDateXML struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

// appPropsXML is docProps/app.xml.
type appPropsXML struct {
	XMLName     xml.Name `xml:"Properties"`
	Xmlns       string   `xml:"xmlns,attr"`
	Application string   `xml:"Application"`
}
