package convert

import (
	"strings"

	"github.com/yaklabco/md2docx/pkg/docx"
	"github.com/yaklabco/md2docx/pkg/mdast"
)

type tableCell struct {
	text  string
	align docx.Alignment
}

type tableRow struct {
	// header is true when the row starts with a header cell.
	header bool
	cells  []tableCell
}

// table scans from the table open at index start to its close and adds the
// table. The first row is the header row; any later row that starts with a
// header cell is skipped. It returns the index of the table close, or
// len(tokens) when the close is missing.
func (m *mapper) table(tokens []mdast.Token, start int) int {
	end := len(tokens)
	for j := start + 1; j < len(tokens); j++ {
		if tokens[j].Kind == mdast.TokTableClose {
			end = j
			break
		}
	}

	rows := collectRows(tokens[start+1 : end])
	if len(rows) == 0 {
		return end
	}

	head := rows[0]
	tbl := m.doc.AddTable(len(head.cells))
	for col, cell := range head.cells {
		tbl.Align[col] = cell.align
	}
	tbl.AddRow(true, cellTexts(head.cells))

	for _, row := range rows[1:] {
		if row.header {
			continue
		}
		tbl.AddRow(false, cellTexts(row.cells))
	}

	m.conv.Stats.Tables++
	return end
}

// collectRows groups the cells between row open/close pairs.
func collectRows(tokens []mdast.Token) []tableRow {
	var rows []tableRow
	var cur *tableRow

	for j, tok := range tokens {
		switch tok.Kind {
		case mdast.TokTableRowOpen:
			cur = &tableRow{}

		case mdast.TokTableHeaderCellOpen, mdast.TokTableCellOpen:
			if cur == nil {
				continue
			}
			if len(cur.cells) == 0 {
				cur.header = tok.Kind == mdast.TokTableHeaderCellOpen
			}
			cur.cells = append(cur.cells, tableCell{
				text:  strings.TrimSpace(mdast.PlainText(inlineAt(tokens, j+1))),
				align: docx.ParseAlignment(tok.Attr(mdast.AttrAlign)),
			})

		case mdast.TokTableRowClose:
			if cur != nil {
				rows = append(rows, *cur)
				cur = nil
			}

		default:
		}
	}

	return rows
}

func cellTexts(cells []tableCell) []string {
	out := make([]string, len(cells))
	for i, cell := range cells {
		out[i] = cell.text
	}
	return out
}
