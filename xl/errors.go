package xl

import "errors"

// Sentinel errors returned by Read/Write and the lower-level part parsers.
var (
	ErrNoWorkbookPart        = errors.New("xl: archive has no xl/workbook.xml part")
	ErrDuplicateSheetName    = errors.New("xl: duplicate sheet name")
	ErrDuplicateRelationship = errors.New("xl: duplicate relationship id")
	ErrUnsupportedFormat     = errors.New("xl: input is not a recognized spreadsheet format")
	ErrNotSpreadsheet        = errors.New("xl: input does not look like a spreadsheet (PDF/PNG/etc. magic bytes)")
	ErrUnsupportedZip        = errors.New("xl: Unsupported ZIP file")
)
