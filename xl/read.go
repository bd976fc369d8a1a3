package xl

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adnsv/xlbook/internal/opc"
	"github.com/adnsv/xlbook/internal/sst"
	"github.com/adnsv/xlbook/internal/ziparchive"
)

const officeDocumentRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
const worksheetRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet"
const hyperlinkRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
const commentsRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/comments"
const threadedCommentRelType = "http://schemas.microsoft.com/office/2017/10/relationships/threadedComment"
const personRelType = "http://schemas.microsoft.com/office/2017/10/relationships/person"

// DetectType inspects the leading bytes of data and reports "xlsx", "csv",
// "html", or "" if the format cannot be determined, per spec.md's type
// sniffing rules: a ZIP local-file-header signature means XLSX; PDF/PNG
// magic bytes are rejected outright; otherwise the content is sniffed as
// HTML (a "<" led, tag-shaped prefix) falling back to CSV.
func DetectType(data []byte) string {
	if len(data) >= 4 && bytes.Equal(data[:4], []byte("PK\x03\x04")) {
		return "xlsx"
	}
	if len(data) >= 4 && bytes.Equal(data[:4], []byte("%PDF")) {
		return ""
	}
	if len(data) >= 8 && bytes.Equal(data[:8], []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}) {
		return ""
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '<' {
		return "html"
	}
	return "csv"
}

// Read parses spreadsheet data into a Workbook, auto-detecting the format
// unless opts.Type forces one.
func Read(data []byte, opts Options) (*Workbook, error) {
	format := opts.Type
	if format == "" {
		format = DetectType(data)
	}
	switch format {
	case "xlsx":
		return readXLSX(data, opts)
	case "csv":
		return readCSV(data, opts)
	case "html":
		return readHTML(data, opts)
	default:
		if len(data) >= 4 && (bytes.Equal(data[:4], []byte("%PDF")) || bytes.Equal(data[:4], []byte{0x89, 'P', 'N', 'G'})) {
			return nil, ErrNotSpreadsheet
		}
		return nil, ErrUnsupportedFormat
	}
}

func readXLSX(data []byte, opts Options) (*Workbook, error) {
	zr, err := ziparchive.Open(data)
	if err != nil {
		return nil, fmt.Errorf("xl: open archive: %w", err)
	}

	ctData, ok := zr.ReadBytes("[Content_Types].xml")
	if !ok {
		return nil, ErrUnsupportedZip
	}
	if _, err := opc.ParseContentTypes(ctData); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedZip, err)
	}

	rootRelsData, ok := zr.ReadBytes("_rels/.rels")
	if !ok {
		return nil, ErrNoWorkbookPart
	}
	rootRels, err := opc.ParseRels("", rootRelsData)
	if err != nil {
		return nil, err
	}
	var workbookPath string
	for _, id := range rootRels.IDs() {
		r, _ := rootRels.Get(id)
		if r.Type == officeDocumentRelType {
			workbookPath = rootRels.Resolve(r.Target)
			break
		}
	}
	if workbookPath == "" {
		workbookPath = "xl/workbook.xml"
	}

	wbData, ok := zr.ReadBytes(workbookPath)
	if !ok {
		return nil, ErrNoWorkbookPart
	}
	wp, err := parseWorkbookPart(wbData)
	if err != nil {
		return nil, err
	}

	wbPartDir := partDir(workbookPath)
	wbRelsData, _ := zr.ReadBytes(wbPartDir + "_rels/" + baseName(workbookPath) + ".rels")
	wbRels, _ := opc.ParseRels(wbPartDir, wbRelsData)

	var strTable *sst.Table
	if sstData, ok := zr.ReadBytes("xl/sharedStrings.xml"); ok {
		strTable, err = sst.Parse(sstData)
		if err != nil {
			return nil, fmt.Errorf("xl: parse shared strings: %w", err)
		}
	}

	wb := NewWorkbook()
	wb.Date1904 = wp.date1904
	wb.CodeName = wp.codeName
	for _, dn := range wp.names {
		sheetName := ""
		if dn.sheetIdx >= 0 && dn.sheetIdx < len(wp.sheets) {
			sheetName = wp.sheets[dn.sheetIdx].name
		}
		wb.DefinedNames = append(wb.DefinedNames, DefinedName{
			Name:     dn.name,
			RefersTo: dn.refersTo,
			Sheet:    sheetName,
			Hidden:   dn.hidden,
			Comment:  dn.comment,
		})
	}

	if opts.BookProps {
		if coreData, ok := zr.ReadBytes("docProps/core.xml"); ok {
			if cp, err := opc.ParseCoreProps(coreData); err == nil {
				wb.Properties = &WorkbookProps{
					Title: cp.Title, Subject: cp.Subject, Creator: cp.Creator,
					Keywords: cp.Keywords, Description: cp.Description,
					LastModifiedBy: cp.LastModifiedBy, Category: cp.Category,
				}
			}
		}
	}

	var peopleData []byte
	if wbRels != nil {
		for _, id := range wbRels.IDs() {
			r, _ := wbRels.Get(id)
			if r.Type == personRelType {
				peopleData, _ = zr.ReadBytes(wbRels.Resolve(r.Target))
				break
			}
		}
	}
	people := map[string]string{}
	if peopleData != nil {
		people = parsePeople(peopleData)
	}

	wanted := map[string]bool{}
	for _, n := range opts.Sheets {
		wanted[n] = true
	}

	for _, entry := range wp.sheets {
		if !opts.BookSheets && len(wanted) > 0 && !wanted[entry.name] {
			continue
		}
		sheet, err := wb.AddSheet(entry.name)
		if err != nil {
			return nil, err
		}
		if entry.hidden {
			wb.HiddenSheets[entry.name] = true
		}
		if opts.BookSheets {
			continue
		}
		var rel opc.Relationship
		if wbRels != nil {
			rel, _ = wbRels.Get(entry.rid)
		}
		sheetPath := rel.Target
		if sheetPath == "" {
			continue
		}
		if wbRels != nil {
			sheetPath = wbRels.Resolve(sheetPath)
		}
		sheetData, ok := zr.ReadBytes(sheetPath)
		if !ok {
			continue
		}
		if err := parseWorksheetPart(sheetData, sheet, strTable, opts); err != nil {
			return nil, fmt.Errorf("xl: parse sheet %q: %w", entry.name, err)
		}

		sheetDir := partDir(sheetPath)
		sheetRelsData, ok := zr.ReadBytes(sheetDir + "_rels/" + baseName(sheetPath) + ".rels")
		if !ok {
			continue
		}
		sheetRels, err := opc.ParseRels(sheetDir, sheetRelsData)
		if err != nil || sheetRels == nil {
			continue
		}

		resolveHyperlinks(sheet, sheetRels)

		var legacy, threaded map[string][]Comment
		for _, id := range sheetRels.IDs() {
			r, _ := sheetRels.Get(id)
			switch r.Type {
			case commentsRelType:
				if data, ok := zr.ReadBytes(sheetRels.Resolve(r.Target)); ok {
					legacy, _ = parseLegacyComments(data)
				}
			case threadedCommentRelType:
				if data, ok := zr.ReadBytes(sheetRels.Resolve(r.Target)); ok {
					threaded = parseThreadedComments(data, people)
				}
			}
		}
		if legacy != nil || threaded != nil {
			applyComments(sheet, legacy, threaded)
		}
	}

	return wb, nil
}

// resolveHyperlinks replaces the "rel:"+rid placeholders parseWorksheetPart
// leaves on Cell.Hyperlink with the actual relationship target, once the
// worksheet's own .rels part is available.
func resolveHyperlinks(sheet *Sheet, rels *opc.Graph) {
	for _, row := range sheet.Rows {
		for _, cell := range row.Cells {
			rid, ok := strings.CutPrefix(cell.Hyperlink, "rel:")
			if !ok {
				continue
			}
			if r, ok := rels.Get(rid); ok && r.Type == hyperlinkRelType {
				cell.Hyperlink = r.Target
			} else {
				cell.Hyperlink = ""
			}
		}
	}
}

func partDir(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i+1]
		}
	}
	return ""
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}
