package xl

// Options configures how Read and Write interpret and produce spreadsheet
// data, mirroring the option surface spec.md §7 describes. Read and Write
// consult only Type, SheetRows, Sheets, BookSheets and BookProps; CellDates,
// CellFormula, CellHTML, CellText, CellStyles, SheetStubs, Dense, BookSST,
// Compression, UTC and Date1904 are accepted but have no effect (formulas
// are always kept on read, and xlsx parts are always DEFLATE-compressed).
type Options struct {
	// Type forces the input/output format ("xlsx", "csv", "html"); "" means
	// auto-detect on read and "xlsx" on write.
	Type string

	CellDates   bool // decode date-formatted numeric cells to time.Time
	CellFormula bool // populate Cell.Formula from <f> instead of discarding it
	CellHTML    bool // populate rich-string cells' HTML projection
	CellText    bool // force every cell's RawValue to its formatted display text
	CellStyles  bool // retain StyleIndex/NumberFormat* on read

	SheetStubs bool // emit empty cells for styled-but-blank cells
	Dense      bool // use dense (row-major) storage instead of sparse

	SheetRows int      // if > 0, CSV and HTML reads stop after this many rows; xlsx sheets are read in full
	Sheets    []string // restrict Read to these sheet names; nil = all
	BookSheets bool    // Read: only enumerate sheet names/visibility, skip cell data

	BookProps bool // Read: load docProps/core.xml into Workbook.Properties (app.xml is not read)
	BookSST   bool // Write: force a shared-string table even for single-use strings

	Compression bool // Write: enable DEFLATE (vs STORED) in the zip container

	UTC      bool // treat naive date/time values as UTC rather than local
	Date1904 bool // Write: force the 1904 epoch regardless of Workbook.Date1904
}
