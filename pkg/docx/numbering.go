package docx

import (
	"encoding/xml"
	"strconv"
)

// Abstract numbering definitions.
const (
	bulletAbstractID  = 0
	decimalAbstractID = 1
)

// List indentation per level, in twips.
const (
	listIndentStep = 720
	listHanging    = 360
)

// ListIndent returns the left indent in twips of list text at level.
func ListIndent(level int) int {
	return listIndentStep * (max(level, 0) + 1)
}

// Bullet glyphs and number formats cycle with the level.
//
//nolint:gochecknoglobals // Read-only lookup tables.
var (
	bulletGlyphs  = [...]string{"•", "◦", "▪"}
	numberFormats = [...]string{"decimal", "lowerLetter", "lowerRoman"}
)

// numberingXML is word/numbering.xml.
type numberingXML struct {
	XMLName      xml.Name         `xml:"w:numbering"`
	W            string           `xml:"xmlns:w,attr"`
	AbstractNums []abstractNumXML `xml:"w:abstractNum"`
	Nums         []numXML         `xml:"w:num"`
}

type abstractNumXML struct {
	ID     int        `xml:"w:abstractNumId,attr"`
	Type   valXML     `xml:"w:multiLevelType"`
	Levels []levelXML `xml:"w:lvl"`
}

type levelXML struct {
	ILvl    int               `xml:"w:ilvl,attr"`
	Start   valXML            `xml:"w:start"`
	NumFmt  valXML            `xml:"w:numFmt"`
	LvlText valXML            `xml:"w:lvlText"`
	LvlJc   valXML            `xml:"w:lvlJc"`
	PPr     paragraphPropsXML `xml:"w:pPr"`
}

type numXML struct {
	NumID         int              `xml:"w:numId,attr"`
	AbstractNumID valXML           `xml:"w:abstractNumId"`
	Overrides     []lvlOverrideXML `xml:"w:lvlOverride"`
}

type lvlOverrideXML struct {
	ILvl          int    `xml:"w:ilvl,attr"`
	StartOverride valXML `xml:"w:startOverride"`
}

// buildNumbering returns the numbering part for the document's list instances.
func (d *Document) buildNumbering() numberingXML {
	out := numberingXML{
		W: nsW,
		AbstractNums: []abstractNumXML{
			abstractList(bulletAbstractID, func(lvl int) (string, string) {
				return "bullet", bulletGlyphs[lvl%len(bulletGlyphs)]
			}),
			abstractList(decimalAbstractID, func(lvl int) (string, string) {
				return numberFormats[lvl%len(numberFormats)], "%" + strconv.Itoa(lvl+1) + "."
			}),
		},
		Nums: []numXML{{
			NumID:         BulletNumID,
			AbstractNumID: valXML{Val: strconv.Itoa(bulletAbstractID)},
		}},
	}

	for _, inst := range d.lists {
		num := numXML{
			NumID:         inst.numID,
			AbstractNumID: valXML{Val: strconv.Itoa(decimalAbstractID)},
		}
		for lvl := range MaxListLevel + 1 {
			num.Overrides = append(num.Overrides, lvlOverrideXML{
				ILvl:          lvl,
				StartOverride: valXML{Val: strconv.Itoa(inst.start)},
			})
		}
		out.Nums = append(out.Nums, num)
	}

	return out
}

// abstractList builds a nine-level abstract definition; format returns the
// numFmt and lvlText for a level.
func abstractList(id int, format func(lvl int) (string, string)) abstractNumXML {
	abs := abstractNumXML{ID: id, Type: valXML{Val: "hybridMultilevel"}}
	for lvl := range MaxListLevel + 1 {
		numFmt, text := format(lvl)
		abs.Levels = append(abs.Levels, levelXML{
			ILvl:    lvl,
			Start:   valXML{Val: "1"},
			NumFmt:  valXML{Val: numFmt},
			LvlText: valXML{Val: text},
			LvlJc:   valXML{Val: "left"},
			PPr: paragraphPropsXML{Indent: &indentXML{
				Left:    strconv.Itoa(ListIndent(lvl)),
				Hanging: strconv.Itoa(listHanging),
			}},
		})
	}
	return abs
}
