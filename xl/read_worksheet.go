package xl

import (
	"strconv"
	"strings"

	"github.com/adnsv/xlbook/internal/cellref"
	"github.com/adnsv/xlbook/internal/sst"
	"github.com/adnsv/xlbook/internal/xmltok"
)

// parseWorksheetPart parses a worksheet XML part into sheet, resolving
// shared-string references against strings (which may be nil if the
// workbook has no sharedStrings.xml part). Following spec.md §4.9's
// pipeline: columns, rows/cells, merges, hyperlinks. The <dimension>
// element is skipped; no dimension is read from the part.
func parseWorksheetPart(data []byte, sheet *Sheet, strings_ *sst.Table, opts Options) error {
	s := xmltok.NewScanner(data)

	var curCell *Cell
	var curCellType string
	var curRowNum int
	var inValue, inFormula, inInlineStr, inInlineText bool
	var valueBuf, formulaBuf, inlineBuf strings.Builder

	flushCell := func() {
		if curCell == nil {
			return
		}
		v := valueBuf.String()
		switch curCellType {
		case "s":
			idx, err := strconv.Atoi(strings.TrimSpace(v))
			if err == nil && strings_ != nil && idx >= 0 && idx < strings_.Len() {
				item := strings_.Get(idx)
				curCell.typ = CellTypeSharedString
				curCell.v = item.PlainText()
				if len(item.Runs) > 1 {
					curCell.RichRuns = item.Runs
				}
			}
		case "str":
			curCell.typ = CellTypeFormula
			curCell.v = v
		case "b":
			curCell.typ = CellTypeBool
			curCell.v = v
		case "e":
			curCell.typ = CellTypeError
			curCell.v = v
		case "inlineStr":
			curCell.typ = CellTypeInlineString
			curCell.v = inlineBuf.String()
		default: // "n" or absent -> numeric, possibly a date per number format
			curCell.typ = CellTypeNumber
			curCell.v = v
		}
		if formulaBuf.Len() > 0 {
			curCell.typ = CellTypeFormula
			curCell.Formula = formulaBuf.String()
			curCell.CachedValue = v
		}
		curCell, curCellType = nil, ""
		valueBuf.Reset()
		formulaBuf.Reset()
		inlineBuf.Reset()
	}

	for {
		raw, isTag, ok := s.Next()
		if !ok {
			break
		}
		if !isTag {
			if inValue {
				valueBuf.WriteString(xmltok.Unescape(raw))
			} else if inFormula {
				formulaBuf.WriteString(xmltok.Unescape(raw))
			} else if inInlineText {
				inlineBuf.WriteString(xmltok.Unescape(raw))
			}
			continue
		}
		tag := xmltok.ParseTag(raw)
		switch tag.Name {
		case "row":
			if tag.Closing {
				continue
			}
			if v, ok := tag.Attr("r"); ok {
				curRowNum, _ = strconv.Atoi(v)
			} else {
				curRowNum++
			}
			row := sheet.EnsureRow(curRowNum)
			if v, ok := tag.Attr("ht"); ok {
				if h, err := strconv.ParseFloat(v, 32); err == nil {
					row.Height = float32(h)
				}
			}
		case "c":
			if tag.Closing {
				flushCell()
				continue
			}
			var col, row int
			if ref, ok := tag.Attr("r"); ok {
				if a, ok := cellref.DecodeCell(ref); ok {
					col, row = int(a.Col)+1, int(a.Row)+1
				}
			}
			if row == 0 {
				row = curRowNum
			}
			r := sheet.EnsureRow(row)
			var cell *Cell
			if col > 0 {
				cell = r.EnsureCell(col)
			} else {
				cell = r.AddCell()
			}
			curCell = cell
			curCellType = "n"
			if v, ok := tag.Attr("t"); ok {
				curCellType = v
			}
			if v, ok := tag.Attr("s"); ok {
				if n, err := strconv.Atoi(v); err == nil {
					cell.StyleIndex = n
				}
			}
			if tag.SelfClosing {
				curCell = nil
			}
		case "v":
			if tag.Closing {
				inValue = false
			} else if !tag.SelfClosing {
				inValue = true
			}
		case "f":
			if tag.Closing {
				inFormula = false
			} else if !tag.SelfClosing {
				if ftype, ok := tag.Attr("t"); ok && ftype == "array" && curCell != nil {
					if ref, ok := tag.Attr("ref"); ok {
						curCell.ArrayFormulaRef = ref
					}
				}
				if ca, ok := tag.Attr("ca"); ok && (ca == "1" || strings.EqualFold(ca, "true")) && curCell != nil {
					curCell.IsDynamicArray = true
				}
				inFormula = true
			}
		case "is":
			inInlineStr = !tag.Closing
		case "t":
			if inInlineStr {
				if tag.Closing {
					inInlineText = false
				} else if !tag.SelfClosing {
					inInlineText = true
				}
			}
		case "mergeCell":
			if ref, ok := tag.Attr("ref"); ok {
				sheet.MergeCells = append(sheet.MergeCells, MergeCell{Ref: ref})
			}
		case "col":
			minC, _ := strconv.Atoi(attrOr(tag, "min", "0"))
			maxC, _ := strconv.Atoi(attrOr(tag, "max", "0"))
			width, _ := strconv.ParseFloat(attrOr(tag, "width", "0"), 32)
			if minC > 0 && maxC >= minC && width > 0 {
				for c := minC; c <= maxC; c++ {
					sheet.SetColumnWidth(c, float32(width))
				}
			}
		case "hyperlink":
			if ref, ok := tag.Attr("ref"); ok {
				if a, ok := cellref.DecodeCell(ref); ok {
					row := sheet.EnsureRow(int(a.Row) + 1)
					cell := row.EnsureCell(int(a.Col) + 1)
					if target, ok := tag.Attr("location"); ok && target != "" {
						cell.Hyperlink = target
					}
					// "r:id" resolves via the worksheet's relationship graph,
					// supplied by the caller after this pass.
					if rid, ok := tag.Attr("r:id"); ok {
						cell.Hyperlink = "rel:" + rid
					}
				}
			}
		}
	}
	return nil
}

func attrOr(tag xmltok.Tag, name, def string) string {
	if v, ok := tag.Attr(name); ok {
		return v
	}
	return def
}
