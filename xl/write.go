package xl

import "io"

// Write serializes wb to w in the format selected by opts.Type ("xlsx" by
// default, or "csv"/"html" for the first sheet's text/table projection).
func Write(w io.Writer, wb *Workbook, opts Options) error {
	switch opts.Type {
	case "csv":
		if len(wb.Sheets) == 0 {
			return nil
		}
		return WriteCSV(w, wb.Sheets[0])
	case "tsv":
		if len(wb.Sheets) == 0 {
			return nil
		}
		return WriteTSV(w, wb.Sheets[0])
	case "html":
		if len(wb.Sheets) == 0 {
			return nil
		}
		return WriteHTML(w, wb.Sheets[0])
	default:
		storage := NewZipStorage(w)
		writer := NewWriter(storage)
		if err := writer.Write(wb); err != nil {
			return err
		}
		storage.Close()
		return nil
	}
}
