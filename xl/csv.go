package xl

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// readCSV parses CSV text into a single-sheet Workbook named "Sheet1".
// encoding/csv is the standard library's CSV reader; no third-party CSV
// parser appears anywhere in the example pack, so this is the one ambient
// concern in this package built on stdlib by necessity rather than choice.
// Input that fails UTF-8 validation is retried once through
// golang.org/x/text/encoding/charmap's Windows-1252 decoder, the common
// legacy export encoding for spreadsheet-adjacent CSV files.
func readCSV(data []byte, opts Options) (*Workbook, error) {
	if !utf8.Valid(data) {
		if decoded, err := charmap.Windows1252.NewDecoder().Bytes(data); err == nil {
			data = decoded
		}
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	wb := NewWorkbook()
	sheet, err := wb.AddSheet("Sheet1")
	if err != nil {
		return nil, err
	}

	rowCount := 0
	for {
		if opts.SheetRows > 0 && rowCount >= opts.SheetRows {
			break
		}
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xl: parse csv: %w", err)
		}
		row := sheet.AddRow()
		for _, field := range record {
			row.AddCell().SetStr(field)
		}
		rowCount++
	}
	return wb, nil
}

// WriteCSV renders sheet as CSV text using the stdlib csv.Writer, projecting
// every cell through its display-text value (RawValue for non-formula
// cells, CachedValue for formula cells).
func WriteCSV(w io.Writer, sheet *Sheet) error {
	cw := csv.NewWriter(w)
	for _, row := range sheet.Rows {
		record := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			record[i] = cellDisplayText(c)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func cellDisplayText(c *Cell) string {
	switch c.Type() {
	case CellTypeFormula:
		return c.CachedValue
	default:
		return c.RawValue()
	}
}

// WriteTSV renders sheet as tab-separated text, the same projection as
// WriteCSV with '\t' as field separator and '\n' as record separator. No
// quoting is applied; embedded tabs are replaced by spaces.
func WriteTSV(w io.Writer, sheet *Sheet) error {
	var b strings.Builder
	for _, row := range sheet.Rows {
		fields := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			fields[i] = strings.ReplaceAll(cellDisplayText(c), "\t", " ")
		}
		b.WriteString(strings.Join(fields, "\t"))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
