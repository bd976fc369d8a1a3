package xl

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/adnsv/xlbook/internal/sst"
)

// readHTML parses the first <table> found in data into a single-sheet
// Workbook named "Sheet1", honoring rowspan/colspan by skipping the
// positions a span covers: the anchor cell gets the text and the covered
// cells are left empty. WriteHTML below is the writing counterpart.
func readHTML(data []byte, opts Options) (*Workbook, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("xl: parse html: %w", err)
	}

	table := findFirstTable(doc)
	if table == nil {
		return nil, fmt.Errorf("xl: %w: no <table> element found", ErrUnsupportedFormat)
	}

	wb := NewWorkbook()
	sheet, err := wb.AddSheet("Sheet1")
	if err != nil {
		return nil, err
	}

	occupied := map[[2]int]bool{} // [row][col] -> filled by a span
	rowNum := 0

	var walkRows func(n *html.Node)
	walkRows = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == atom.Tr {
				if opts.SheetRows > 0 && rowNum >= opts.SheetRows {
					return
				}
				rowNum++
				colNum := 0
				row := sheet.EnsureRow(rowNum)
				for cell := c.FirstChild; cell != nil; cell = cell.NextSibling {
					if cell.Type != html.ElementNode || (cell.DataAtom != atom.Td && cell.DataAtom != atom.Th) {
						continue
					}
					for {
						colNum++
						if !occupied[[2]int{rowNum, colNum}] {
							break
						}
					}
					rowspan := attrInt(cell, "rowspan", 1)
					colspan := attrInt(cell, "colspan", 1)
					text := nodeText(cell)
					row.EnsureCell(colNum).SetStr(text)
					for dr := 0; dr < rowspan; dr++ {
						for dc := 0; dc < colspan; dc++ {
							if dr == 0 && dc == 0 {
								continue
							}
							occupied[[2]int{rowNum + dr, colNum + dc}] = true
						}
					}
					colNum += colspan - 1
				}
			} else {
				walkRows(c)
			}
		}
	}
	walkRows(table)

	return wb, nil
}

func findFirstTable(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Table {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findFirstTable(c); t != nil {
			return t
		}
	}
	return nil
}

func attrInt(n *html.Node, key string, def int) int {
	for _, a := range n.Attr {
		if a.Key == key {
			if v, err := strconv.Atoi(a.Val); err == nil {
				return v
			}
		}
	}
	return def
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// WriteHTML renders sheet as a standalone HTML <table>, wrapping
// rich-string cells' formatted runs (bold/italic/underline/strike/color)
// in inline tags via their RichRuns projection.
func WriteHTML(w io.Writer, sheet *Sheet) error {
	var b strings.Builder
	b.WriteString("<table>\n")
	for _, row := range sheet.Rows {
		b.WriteString("  <tr>\n")
		for _, c := range row.Cells {
			b.WriteString("    <td>")
			b.WriteString(cellHTMLText(c))
			b.WriteString("</td>\n")
		}
		b.WriteString("  </tr>\n")
	}
	b.WriteString("</table>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func cellHTMLText(c *Cell) string {
	if len(c.RichRuns) > 0 {
		return sst.Item{Runs: c.RichRuns}.HTML()
	}
	return html.EscapeString(cellDisplayText(c))
}
