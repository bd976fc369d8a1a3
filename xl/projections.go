package xl

import "fmt"

// ToArray projects sheet into a row-major array of arrays of scalar Go
// values (string, float64, bool, nil), per spec.md's array-of-arrays
// projection.
func (s *Sheet) ToArray() [][]any {
	out := make([][]any, len(s.Rows))
	for i, row := range s.Rows {
		vals := make([]any, len(row.Cells))
		for j, c := range row.Cells {
			vals[j] = cellScalar(c)
		}
		out[i] = vals
	}
	return out
}

// ToRecords projects sheet into a slice of maps keyed by the first row's
// header text, per spec.md's records projection. Rows shorter than the
// header are padded with nil for missing trailing columns.
func (s *Sheet) ToRecords() []map[string]any {
	if len(s.Rows) == 0 {
		return nil
	}
	headers := make([]string, len(s.Rows[0].Cells))
	for i, c := range s.Rows[0].Cells {
		headers[i] = cellDisplayText(c)
	}
	records := make([]map[string]any, 0, len(s.Rows)-1)
	for _, row := range s.Rows[1:] {
		rec := make(map[string]any, len(headers))
		for i, h := range headers {
			if i < len(row.Cells) {
				rec[h] = cellScalar(row.Cells[i])
			} else {
				rec[h] = nil
			}
		}
		records = append(records, rec)
	}
	return records
}

func cellScalar(c *Cell) any {
	switch c.Type() {
	case CellTypeUnset:
		return nil
	case CellTypeBool:
		return c.RawValue() == "1"
	case CellTypeNumber, CellTypeDate:
		var f float64
		fmt.Sscanf(c.RawValue(), "%g", &f)
		return f
	default:
		return c.RawValue()
	}
}

// SheetToFormulae projects a sheet into one line per non-empty cell,
// "A1=value" for plain cells or "A1=SUM(...)" style text for formula cells
// (rendered with the leading '=').
func (s *Sheet) SheetToFormulae() []string {
	var out []string
	for _, row := range s.Rows {
		for _, c := range row.Cells {
			if c.Type() == CellTypeUnset {
				continue
			}
			if c.Type() == CellTypeFormula {
				out = append(out, fmt.Sprintf("%s=%s", c.Coord(), c.Formula))
				continue
			}
			out = append(out, fmt.Sprintf("%s=%s", c.Coord(), cellDisplayText(c)))
		}
	}
	return out
}

// LoadArray populates an empty sheet from a row-major array of arrays,
// inferring each value's cell type from its Go dynamic type.
func (s *Sheet) LoadArray(rows [][]any) {
	for _, r := range rows {
		row := s.AddRow()
		for _, v := range r {
			cell := row.AddCell()
			switch val := v.(type) {
			case nil:
			case bool:
				cell.SetBool(val)
			case string:
				cell.SetStr(val)
			case int:
				cell.SetInt(int64(val))
			case int64:
				cell.SetInt(val)
			case float64:
				cell.SetFloat(val)
			default:
				cell.SetStr(fmt.Sprint(val))
			}
		}
	}
}
