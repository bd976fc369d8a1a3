package xl

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Workbook represents an Excel workbook containing one or more worksheets.
type Workbook struct {
	AppName string   // Optional application name that created the workbook
	Sheets  []*Sheet // List of worksheets in the workbook

	Date1904      bool            // epoch system for this workbook's date serials
	HiddenSheets  map[string]bool // sheet name -> hidden state
	NumberFormats map[int]string  // custom numFmtId -> format string (ids >= 164)
	Properties    *WorkbookProps
	DefinedNames  []DefinedName // workbook- and sheet-scoped named ranges/formulas
	CodeName      string        // workbookPr codeName, e.g. "ThisWorkbook"

	sheetMap map[string]*Sheet // Maps sheet name to sheet for duplicate detection
	lastIdN  int               // Counter for generating unique IDs
}

// WorkbookProps carries the docProps/core.xml + app.xml fields a workbook
// round-trips, per spec.md's bookProps option.
type WorkbookProps struct {
	Title, Subject, Creator, Keywords, Description string
	LastModifiedBy, Category                       string
}

// DefinedName is one <definedName> entry from the workbook part: a named
// range or formula, either workbook-scoped (Sheet == "") or scoped to a
// single sheet.
type DefinedName struct {
	Name     string
	RefersTo string
	Sheet    string // "" for workbook-scoped
	Hidden   bool
	Comment  string
}

// DefinedName looks up a defined name by its name and scope. Pass sheet ==
// "" for a workbook-scoped name.
func (wb *Workbook) DefinedName(name string, sheet string) (DefinedName, bool) {
	for _, dn := range wb.DefinedNames {
		if dn.Name == name && dn.Sheet == sheet {
			return dn, true
		}
	}
	return DefinedName{}, false
}

// NewWorkbook creates and initializes a new empty workbook.
func NewWorkbook() *Workbook {
	return &Workbook{
		sheetMap:      map[string]*Sheet{},
		HiddenSheets:  map[string]bool{},
		NumberFormats: map[int]string{},
	}
}

// AddSheet adds a new worksheet to the workbook with the specified name.
// Returns an error if a sheet with the same name already exists or if the name is invalid.
// Sheet names must be 1-31 characters, cannot start/end with single quotes,
// and cannot contain: : \ / ? * [ ]
func (wb *Workbook) AddSheet(name string) (*Sheet, error) {
	if _, exists := wb.sheetMap[name]; exists {
		return nil, fmt.Errorf("%w: '%s'", ErrDuplicateSheetName, name)
	}

	if err := validateSheetName(name); err != nil {
		return nil, err
	}

	sheet := &Sheet{
		workbook:      wb,
		Name:          name,
		Columns:       map[int]*Column{},
		nextRowNumber: 1,
	}

	wb.Sheets = append(wb.Sheets, sheet)
	wb.sheetMap[name] = sheet

	return sheet, nil
}

// validateSheetName checks if a sheet name conforms to Excel's naming rules.
// Valid names must be 1-31 characters long, cannot start or end with single quotes,
// and cannot contain the characters: : \ / ? * [ ]
func validateSheetName(s string) error {
	n := utf8.RuneCountInString(s)
	if n == 0 {
		return errors.New("empty sheet name is not allowed")
	} else if n > 31 {
		return errors.New("the sheet name is too long")
	}
	if strings.HasPrefix(s, "'") || strings.HasSuffix(s, "'") {
		return errors.New("the first or last character of the sheet name can not be a single quote")
	}
	if strings.ContainsAny(s, ":\\/?*[]") {
		return errors.New("the sheet can not contain any of the characters :\\/?*[]")
	}
	if strings.EqualFold(s, "History") {
		return errors.New(`the sheet name can not be "History"`)
	}
	return nil
}
