package xl

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/adnsv/srw/xml"

	"github.com/adnsv/xlbook/internal/opc"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
)

// Writer is responsible for generating OpenXML SpreadsheetML files from a workbook.
// It manages shared strings, styles, fonts, media, and all XML part generation.
type Writer struct {
	out Storage

	globalRels   *opc.Graph // "_rels/.rels"
	workbookRels *opc.Graph // "xl/_rels/workbook.xml.rels"
	richDataRels *opc.Graph // "xl/richData/_rels/richValueRel.xml.rels"

	contentTypes *opc.ContentTypes

	sharedStrings   []string
	sharedStringMap map[string]int // 0-based index into sharedStrings

	media    []*MediaInfo
	mediaMap map[string]*MediaInfo // maps media name to media info

	xfs   []*XF
	fonts []*Font
}

// MediaInfo contains embedded media file information (images).
type MediaInfo struct {
	Name string // hashed blob + extension
	Blob []byte // raw file data
	IId  int    // internal ID
	RId  string // relationship ID, assigned once the part is written
}

// NewWriter creates a new Writer that will output to the specified storage.
// The storage can be a ZIP file storage or directory storage for debugging.
func NewWriter(s Storage) *Writer {
	w := &Writer{
		out: s,

		globalRels:   opc.NewGraph(""),
		workbookRels: opc.NewGraph("xl"),
		richDataRels: opc.NewGraph("xl/richData"),

		contentTypes: &opc.ContentTypes{Defaults: map[string]string{}, Overrides: map[string]string{}},

		sharedStringMap: map[string]int{},

		mediaMap: map[string]*MediaInfo{},
	}

	w.contentTypes.Defaults["xml"] = "application/xml"
	w.contentTypes.Defaults["rels"] = "application/vnd.openxmlformats-package.relationships+xml"

	return w
}

// SharedString adds a string to the shared string table and returns its index.
// If the string already exists, returns the existing index.
// This is used internally for efficient string storage in cells.
func (w *Writer) SharedString(s string) int {
	if i, ok := w.sharedStringMap[s]; ok {
		return i
	}
	i := len(w.sharedStrings)
	w.sharedStrings = append(w.sharedStrings, s)
	w.sharedStringMap[s] = i
	return i
}

// Write generates a complete Excel workbook file from the given Workbook.
// It writes all necessary XML parts, relationships, and content types to the storage.
// Returns an error if any part of the generation fails.
func (w *Writer) Write(wb *Workbook) error {
	var err error

	err = w.writeWorkbook(wb)
	if err != nil {
		return err
	}

	if len(w.media) > 0 {

		err = w.writeMedia()
		if err != nil {
			return err
		}

		err = w.writeRichValueRel()
		if err != nil {
			return err
		}

		err = w.writeRels("/xl/richData/_rels/richValueRel.xml.rels", w.richDataRels)
		if err != nil {
			return err
		}

		err = w.writeRichValueStructure()
		if err != nil {
			return err
		}

		/*
			err = w.writeRichValueTypes()
			if err != nil {
				return err
			}
		*/

		err = w.writeRichValueData()
		if err != nil {
			return err
		}

		err = w.writeMetadata()
		if err != nil {
			return err
		}
	}

	err = w.writeCoreProperties(wb)
	if err != nil {
		return err
	}
	err = w.writeExtendedProperties(wb)
	if err != nil {
		return err
	}

	if len(w.sharedStrings) > 0 {
		err = w.writeSharedStrings()
		if err != nil {
			return err
		}
	}

	if len(w.xfs) > 0 {
		err = w.writeStyles()
		if err != nil {
			return err
		}
	}

	err = w.writeRels("/xl/_rels/workbook.xml.rels", w.workbookRels)
	if err != nil {
		return err
	}

	err = w.writeRels("/_rels/.rels", w.globalRels)
	if err != nil {
		return err
	}

	err = w.writeContentTypes()
	if err != nil {
		return err
	}

	return nil
}

func (w *Writer) writeCoreProperties(wb *Workbook) error {
	relpath := "docProps/core.xml"
	abspath := "/" + relpath

	w.contentTypes.Overrides[abspath] = "application/vnd.openxmlformats-package.core-properties+xml"
	if _, err := w.globalRels.Add(-1, opc.Relationship{
		Type:   "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties",
		Target: relpath,
	}); err != nil {
		return err
	}

	now := time.Now().UTC()
	cp := &opc.CoreProps{Created: &now}
	if wb.Properties != nil {
		p := wb.Properties
		cp.Title = p.Title
		cp.Subject = p.Subject
		cp.Creator = p.Creator
		cp.Keywords = p.Keywords
		cp.Description = p.Description
		cp.LastModifiedBy = p.LastModifiedBy
		cp.Category = p.Category
	}

	return w.out.WriteBlob(abspath, cp.Write())
}

// writeExtendedProperties always declares the Application, HeadingPairs =
// ["Worksheets", n], and TitlesOfParts = sheet names, per spec.md §4.5.
func (w *Writer) writeExtendedProperties(wb *Workbook) error {
	relpath := "docProps/app.xml"
	abspath := "/" + relpath

	w.contentTypes.Overrides[abspath] = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
	if _, err := w.globalRels.Add(-1, opc.Relationship{
		Type:   "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties",
		Target: relpath,
	}); err != nil {
		return err
	}

	titles := make([]string, len(wb.Sheets))
	for i, sheet := range wb.Sheets {
		titles[i] = sheet.Name
	}
	ep := &opc.ExtendedProps{
		Application:   wb.AppName,
		SheetCount:    len(wb.Sheets),
		TitlesOfParts: titles,
	}

	return w.out.WriteBlob(abspath, ep.Write())
}

// contentTypeCategory classifies an override part path for
// opc.ContentTypes.Write's category-ordered emission (spec.md §4.5).
func contentTypeCategory(partName string) string {
	switch {
	case partName == "/xl/workbook.xml":
		return "workbook"
	case strings.HasPrefix(partName, "/xl/worksheets/"):
		return "sheet"
	case partName == "/xl/sharedStrings.xml":
		return "sharedStrings"
	case partName == "/xl/styles.xml":
		return "styles"
	case partName == "/docProps/core.xml":
		return "core-properties"
	case partName == "/docProps/app.xml":
		return "extended-properties"
	case partName == "/docProps/custom.xml":
		return "custom-properties"
	default:
		return "other"
	}
}

func (w *Writer) writeContentTypes() error {
	return w.out.WriteBlob("[Content_Types].xml", w.contentTypes.Write(contentTypeCategory))
}

func (w *Writer) writeStyles() error {
	relpath := "styles.xml"
	abspath := "/xl/" + relpath

	w.contentTypes.Overrides[abspath] = "application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"
	if _, err := w.workbookRels.Add(-1, opc.Relationship{
		Type:   "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles",
		Target: relpath,
	}); err != nil {
		return err
	}

	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("styleSheet")
	x.Attr("xmlns", "http://schemas.openxmlformats.org/spreadsheetml/2006/main")

	// Collect unique fonts from all xfs
	for _, xf := range w.xfs {
		if !xf.Font.IsDefault() {
			if w.FindFont(&xf.Font) < 0 {
				w.fonts = append(w.fonts, &xf.Font)
			}
		}
	}

	// Write fonts section
	fontCount := len(w.fonts) + 1 // +1 for default font at index 0
	x.OTag("+fonts").Attr("count", fontCount)

	// Font 0: Default font
	x.OTag("+font")
	x.OTag("sz").Attr("val", 11).CTag()
	x.OTag("name").Attr("val", "Calibri").CTag()
	x.OTag("family").Attr("val", 2).CTag()
	x.CTag() // font

	// Custom fonts
	for _, font := range w.fonts {
		x.OTag("+font")

		// Element order: b, i, strike, u, sz, color, name, family
		if font.Bold {
			x.OTag("b").CTag()
		}
		if font.Italic {
			x.OTag("i").CTag()
		}
		if font.Strikethrough {
			x.OTag("strike").CTag()
		}
		if font.Underline != UnderlineNone {
			if font.Underline == UnderlineSingle {
				x.OTag("u").CTag() // Empty element for single underline
			} else {
				x.OTag("u").Attr("val", string(font.Underline)).CTag()
			}
		}

		// Size (use 11 if not specified)
		size := font.Size
		if size == 0 {
			size = 11
		}
		x.OTag("sz").Attr("val", size).CTag()

		// Basic font properties for compatibility
		x.OTag("name").Attr("val", "Calibri").CTag()
		x.OTag("family").Attr("val", 2).CTag()

		x.CTag() // font
	}
	x.CTag() // fonts

	x.OTag("+fills").Attr("count", 1)
	x.OTag("+fill")
	x.OTag("patternFill").Attr("patternType", "none").CTag()
	x.CTag() // fill
	x.CTag() // fills

	x.OTag("+borders").Attr("count", 1)
	x.OTag("+border")
	x.OTag("+left").CTag()
	x.OTag("+right").CTag()
	x.OTag("+top").CTag()
	x.OTag("+bottom").CTag()
	x.OTag("+diagonal").CTag()
	x.CTag() // border
	x.CTag() // borders

	x.OTag("+cellStyleXfs").Attr("count", 1)
	x.OTag("+xf")
	x.Attr("numFmtId", "0")
	x.Attr("fontId", "0")
	x.Attr("fillId", "0")
	x.Attr("borderId", "0")
	x.CTag()
	x.CTag() //cellStyleXfs

	x.OTag("+cellXfs").Attr("count", len(w.xfs)+1)
	// Default xf (index 0)
	x.OTag("+xf")
	x.Attr("numFmtId", "0")
	x.Attr("fontId", "0")
	x.Attr("fillId", "0")
	x.Attr("borderId", "0")
	x.Attr("xfId", "0")
	x.CTag()
	// Custom xfs collected from cells
	for _, xf := range w.xfs {
		x.OTag("+xf")
		x.Attr("numFmtId", "0")

		// Determine font ID
		fontId := 0 // Default font
		if !xf.Font.IsDefault() {
			fontIdx := w.FindFont(&xf.Font)
			if fontIdx >= 0 {
				fontId = fontIdx + 1 // +1 because default font is at index 0
			}
		}
		x.Attr("fontId", fontId)

		x.Attr("fillId", "0")
		x.Attr("borderId", "0")
		x.Attr("xfId", "0")

		// Set applyFont if using custom font
		if !xf.Font.IsDefault() {
			x.Attr("applyFont", "1")
		}

		// Set applyAlignment if using custom alignment
		if !xf.Alignment.Empty() {
			x.Attr("applyAlignment", "1")
		}

		// Write alignment element if not empty
		if !xf.Alignment.Empty() {
			x.OTag("alignment")
			if xf.Alignment.Horizontal != "" {
				x.Attr("horizontal", xf.Alignment.Horizontal)
			}
			if xf.Alignment.Vertical != "" {
				x.Attr("vertical", xf.Alignment.Vertical)
			}
			x.CTag() // alignment
		}

		x.CTag() // xf
	}
	x.CTag() // cellXfs

	x.CTag()

	return w.out.WriteBlob(abspath, bb.Bytes())
}

// sheetIndex returns the position of the sheet named name within wb.Sheets,
// or -1 if it isn't one of them.
func sheetIndex(wb *Workbook, name string) int {
	for i, sh := range wb.Sheets {
		if sh.Name == name {
			return i
		}
	}
	return -1
}

func (w *Writer) writeWorkbook(wb *Workbook) error {
	relpath := "xl/workbook.xml"
	abspath := "/" + relpath

	w.contentTypes.Overrides[abspath] = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"
	if _, err := w.globalRels.Add(-1, opc.Relationship{
		Type:   "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument",
		Target: relpath,
	}); err != nil {
		return err
	}

	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("workbook")
	x.Attr("xmlns", "http://schemas.openxmlformats.org/spreadsheetml/2006/main")
	x.Attr("xmlns:r", "http://schemas.openxmlformats.org/officeDocument/2006/relationships")

	codeName := wb.CodeName
	if codeName == "" {
		codeName = "ThisWorkbook"
	}
	wbPr := x.OTag("+workbookPr").Attr("codeName", codeName)
	if wb.Date1904 {
		wbPr.Attr("date1904", "1")
	}
	x.CTag()

	if len(wb.Sheets) > 0 && wb.HiddenSheets[wb.Sheets[0].Name] {
		firstVisible := 0
		for i, sheet := range wb.Sheets {
			if !wb.HiddenSheets[sheet.Name] {
				firstVisible = i
				break
			}
		}
		x.OTag("+bookViews")
		x.OTag("+workbookView").Attr("firstSheet", firstVisible).Attr("activeTab", firstVisible)
		x.CTag()
		x.CTag() // bookViews
	}

	x.OTag("+sheets")
	for i, sheet := range wb.Sheets {
		sheetRid, err := w.workbookRels.Add(-1, opc.Relationship{
			Type:   "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet",
			Target: "worksheets/" + sheet.Name + ".xml",
		})
		if err != nil {
			return err
		}

		so := x.OTag("+sheet")
		so.Attr("name", sheet.Name)
		so.Attr("sheetId", i+1)
		if wb.HiddenSheets[sheet.Name] {
			so.Attr("state", "hidden")
		}
		so.Attr("r:id", sheetRid)
		x.CTag()

		if err := w.writeSheet(sheet); err != nil {
			return err
		}
	}
	x.CTag() // sheets

	var names []DefinedName
	for _, dn := range wb.DefinedNames {
		if dn.RefersTo == "" {
			continue
		}
		names = append(names, dn)
	}
	if len(names) > 0 {
		x.OTag("+definedNames")
		for _, dn := range names {
			do := x.OTag("+definedName").Attr("name", dn.Name)
			if dn.Sheet != "" {
				if idx := sheetIndex(wb, dn.Sheet); idx >= 0 {
					do.Attr("localSheetId", idx)
				}
			}
			if dn.Hidden {
				do.Attr("hidden", 1)
			}
			if dn.Comment != "" {
				do.Attr("comment", dn.Comment)
			}
			do.Write(dn.RefersTo).CTag()
		}
		x.CTag() // definedNames
	}

	x.CTag() // workbook

	return w.out.WriteBlob(abspath, bb.Bytes())
}

func (w *Writer) FindXF(xf *XF) int {
	for i, v := range w.xfs {
		if *v == *xf {
			return i
		}
	}
	return -1
}

// FindFont returns the index of a matching font in the fonts slice, or -1 if not found.
func (w *Writer) FindFont(font *Font) int {
	for i, f := range w.fonts {
		if *f == *font {
			return i
		}
	}
	return -1
}

func (w *Writer) writeSheet(sh *Sheet) error {
	relpath := "worksheets/" + sh.Name + ".xml"
	abspath := "/xl/" + relpath

	w.contentTypes.Overrides[abspath] = "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"

	sheetRels := opc.NewGraph("xl/worksheets")

	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("worksheet")
	x.Attr("xmlns", "http://schemas.openxmlformats.org/spreadsheetml/2006/main")
	x.Attr("xmlns:r", "http://schemas.openxmlformats.org/officeDocument/2006/relationships")

	if len(sh.Columns) > 0 {
		x.OTag("+cols")
		enumerate(sh.Columns, func(n int, v *Column) error {
			x.OTag("+col").Attr("min", n).Attr("max", n)
			if v.Width > 0 {
				x.Attr("width", v.Width).Attr("customWidth", 1)
			}
			x.CTag()
			return nil
		})
		x.CTag()
	}

	x.OTag("+sheetData")
	for _, row := range sh.Rows {
		x.OTag("+row").Attr("r", row.rowNumber)
		if row.Height > 0 {
			x.Attr("ht", row.Height).Attr("customHeight", 1)
		}

		for _, cell := range row.Cells {
			x.OTag("+c").Attr("r", cell.coord)

			if !cell.XF.Empty() {
				i := w.FindXF(&cell.XF)
				if i < 0 {
					w.xfs = append(w.xfs, &cell.XF)
					i = len(w.xfs) - 1
				}
				// Style index is xfs array index + 1 (because default xf is at index 0)
				x.Attr("s", i+1)
			}

			switch cell.typ {
			case CellTypeUnset:
				// Blank cell: only the "s" style attribute (if any) carries
				// meaning, per spec.md's sheetStubs handling.
			case CellTypeBool:
				x.Attr("t", "b")
				x.OTag("v").Write(cell.v).CTag()
			case CellTypeNumber, CellTypeDate:
				x.OTag("v").Write(cell.v).CTag()
			case CellTypeError:
				x.Attr("t", "e")
				x.OTag("v").Write(cell.v).CTag()
			case CellTypeSharedString:
				x.Attr("t", "s")
				x.OTag("v").Write(w.SharedString(cell.v)).CTag()
			case CellTypeInlineString:
				x.Attr("t", "inlineStr")
				x.OTag("+is")
				x.OTag("+t").Write(cell.v).CTag()
				x.CTag()
			case CellTypeFormula:
				fo := x.OTag("+f")
				if cell.ArrayFormulaRef != "" {
					fo.Attr("t", "array").Attr("ref", cell.ArrayFormulaRef)
				}
				if cell.IsDynamicArray {
					fo.Attr("ca", 1)
				}
				fo.Write(cell.Formula).CTag()
				if cell.CachedValue != "" {
					x.OTag("v").Write(cell.CachedValue).CTag()
				}
			case cellTypePicture:
				if cell.picture == nil {
					return errors.New("missing picture data")
				}
				ext := strings.ToLower(cell.picture.Extension)
				if ext == ".jpg" {
					ext = ".jpeg"
				}
				if ext == ".jpeg" {
					w.contentTypes.Defaults["jpeg"] = "image/jpeg"
				} else if ext == ".png" {
					w.contentTypes.Defaults["png"] = "image/png"
				} else {
					return fmt.Errorf("unsupported image extension %s", ext)
				}
				n := fmt.Sprintf("%.16x%s", BlobHash(cell.picture.Blob), ext)
				info, ok := w.mediaMap[n]
				if !ok {
					info = &MediaInfo{
						Name: n,
						Blob: cell.picture.Blob,
						IId:  len(w.media),
					}
					w.mediaMap[n] = info
					w.media = append(w.media, info)
				}
				if len(info.Blob) == 0 {
					return errors.New("empty picture data")
				}

				x.Attr("t", "e").Attr("vm", info.IId+1)
				x.OTag("v").Write("#VALUE!").CTag()
			}
			x.CTag() // c
		}

		x.CTag() // row
	}
	x.CTag() // sheetData

	// Write mergeCells if any exist
	if len(sh.MergeCells) > 0 {
		x.OTag("+mergeCells").Attr("count", len(sh.MergeCells))
		for _, mc := range sh.MergeCells {
			x.OTag("+mergeCell").Attr("ref", mc.Ref).CTag()
		}
		x.CTag() // mergeCells
	}

	var hyperlinkCells []*Cell
	for _, row := range sh.Rows {
		for _, cell := range row.Cells {
			if cell.Hyperlink != "" {
				hyperlinkCells = append(hyperlinkCells, cell)
			}
		}
	}
	if len(hyperlinkCells) > 0 {
		x.OTag("+hyperlinks")
		for _, cell := range hyperlinkCells {
			ho := x.OTag("+hyperlink").Attr("ref", cell.coord)
			rid, err := sheetRels.Add(-1, opc.Relationship{
				Type:   "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink",
				Target: cell.Hyperlink,
			})
			if err != nil {
				return err
			}
			ho.Attr("r:id", rid)
			x.CTag()
		}
		x.CTag() // hyperlinks
	}

	hasLegacyComments := false
	hasThreadedComments := false
	for _, row := range sh.Rows {
		for _, cell := range row.Cells {
			if cell.Comment == nil {
				continue
			}
			if cell.Comment.ThreadGUID != "" {
				hasThreadedComments = true
			} else {
				hasLegacyComments = true
			}
		}
	}
	if hasLegacyComments {
		x.OTag("+legacyDrawing")
		rid, err := sheetRels.Add(-1, opc.Relationship{
			Type:   "http://schemas.openxmlformats.org/officeDocument/2006/relationships/vmlDrawing",
			Target: "../drawings/vmlDrawing_" + sh.Name + ".vml",
		})
		if err != nil {
			return err
		}
		x.Attr("r:id", rid)
		x.CTag()
	}

	x.CTag() // worksheet

	if err := w.out.WriteBlob(abspath, bb.Bytes()); err != nil {
		return err
	}

	if hasLegacyComments {
		commentsPath := "comments_" + sh.Name + ".xml"
		w.contentTypes.Overrides["/xl/"+commentsPath] = "application/vnd.openxmlformats-officedocument.spreadsheetml.comments+xml"
		if _, err := sheetRels.Add(-1, opc.Relationship{
			Type:   "http://schemas.openxmlformats.org/officeDocument/2006/relationships/comments",
			Target: commentsPath,
		}); err != nil {
			return err
		}
		if err := w.out.WriteBlob("/xl/"+commentsPath, writeLegacyComments(sh)); err != nil {
			return err
		}
		w.contentTypes.Defaults["vml"] = "application/vnd.openxmlformats-officedocument.vmlDrawing"
		if err := w.out.WriteBlob("/xl/drawings/vmlDrawing_"+sh.Name+".vml", writeVMLDrawing(sh)); err != nil {
			return err
		}
	}

	if hasThreadedComments {
		tcPath := "threadedComments/threadedComment_" + sh.Name + ".xml"
		w.contentTypes.Overrides["/xl/"+tcPath] = "application/vnd.ms-excel.threadedcomments+xml"
		if _, err := sheetRels.Add(-1, opc.Relationship{
			Type:   "http://schemas.microsoft.com/office/2017/10/relationships/threadedComment",
			Target: tcPath,
		}); err != nil {
			return err
		}
		commentsXML, peopleXML := writeThreadedComments(sh.Name, sh)
		if err := w.out.WriteBlob("/xl/"+tcPath, commentsXML); err != nil {
			return err
		}
		if _, ok := w.contentTypes.Overrides["/xl/persons/person.xml"]; !ok {
			w.contentTypes.Overrides["/xl/persons/person.xml"] = "application/vnd.ms-excel.person+xml"
			if _, err := w.workbookRels.Add(-1, opc.Relationship{
				Type:   "http://schemas.microsoft.com/office/2017/10/relationships/person",
				Target: "persons/person.xml",
			}); err != nil {
				return err
			}
			if err := w.out.WriteBlob("/xl/persons/person.xml", peopleXML); err != nil {
				return err
			}
		}
	}

	if err := w.writeRels("/xl/worksheets/_rels/"+sh.Name+".xml.rels", sheetRels); err != nil {
		return err
	}

	return nil
}

func (w *Writer) writeSharedStrings() error {
	relpath := "sharedStrings.xml"
	abspath := "/xl/" + relpath

	w.contentTypes.Overrides[abspath] = "application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"
	if _, err := w.workbookRels.Add(-1, opc.Relationship{
		Type:   "http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings",
		Target: relpath,
	}); err != nil {
		return err
	}

	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("sst")
	x.Attr("xmlns", "http://schemas.openxmlformats.org/spreadsheetml/2006/main")
	x.Attr("count", len(w.sharedStrings))
	x.Attr("uniqueCount", len(w.sharedStrings))

	for _, s := range w.sharedStrings {
		x.OTag("+si")
		x.OTag("t").Write(s).CTag()
		x.CTag()
	}

	x.CTag()

	return w.out.WriteBlob(abspath, bb.Bytes())
}

func (w *Writer) writeMedia() error {
	if len(w.media) == 0 {
		return nil
	}

	for _, m := range w.media {
		fn := "/xl/media/" + m.Name
		if err := w.out.WriteBlob(fn, m.Blob); err != nil {
			return err
		}
		rid, err := w.richDataRels.Add(-1, opc.Relationship{
			Type:   "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image",
			Target: "../media/" + m.Name,
		})
		if err != nil {
			return err
		}
		m.RId = rid
	}
	return nil
}

func (w *Writer) writeMetadata() error {
	relpath := "metadata.xml"
	abspath := "/xl/" + relpath

	w.contentTypes.Overrides[abspath] = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheetMetadata+xml"
	if _, err := w.workbookRels.Add(-1, opc.Relationship{
		Type:   "http://schemas.openxmlformats.org/officeDocument/2006/relationships/sheetMetadata",
		Target: relpath,
	}); err != nil {
		return err
	}

	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("metadata")
	x.Attr("xmlns", "http://schemas.openxmlformats.org/spreadsheetml/2006/main")
	x.Attr("xmlns:xlrd", "http://schemas.microsoft.com/office/spreadsheetml/2017/richdata")

	x.OTag("+metadataTypes").Attr("count", 1)
	x.OTag("+metadataType")
	x.Attr("name", "XLRICHVALUE")
	x.Attr("minSupportedVersion", "120000")
	for _, s := range []xml.NameString{"copy", "pasteAll", "pasteValues",
		"merge", "splitFirst", "rowColShift", "clearFormats",
		"clearComments", "assign", "coerce"} {
		x.Attr(s, 1)
	}
	x.CTag() // metadataType
	x.CTag() // metadataTypes

	x.OTag("futureMetadata").Attr("name", "XLRICHVALUE").Attr("count", len(w.media))
	for _, m := range w.media {
		x.OTag("+bk")
		x.OTag("extLst")
		x.OTag("ext").Attr("uri", "{3e2802c4-a4d2-4d8b-9148-e3be6c30e623}")
		x.OTag("xlrd:rvb").Attr("i", m.IId).CTag()
		x.CTag() // ext
		x.CTag() // extLst
		x.CTag() // bk
	}
	x.CTag() // futureMetadata

	x.OTag("valueMetadata").Attr("count", len(w.media))
	for _, m := range w.media {
		x.OTag("+bk")
		x.OTag("rc").Attr("t", 1).Attr("v", m.IId).CTag()
		x.CTag() // bk
	}
	x.CTag() // valueMetadata

	x.CTag() // metadata

	return w.out.WriteBlob(abspath, bb.Bytes())
}

func (w *Writer) writeRichValueRel() error {
	relpath := "richData/richValueRel.xml"
	abspath := "/xl/" + relpath

	w.contentTypes.Overrides[abspath] = "application/vnd.ms-excel.richvaluerel+xml"
	if _, err := w.workbookRels.Add(-1, opc.Relationship{
		Type:   "http://schemas.microsoft.com/office/2022/10/relationships/richValueRel",
		Target: relpath,
	}); err != nil {
		return err
	}

	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("richValueRels")
	x.Attr("xmlns", "http://schemas.microsoft.com/office/spreadsheetml/2022/richvaluerel")
	x.Attr("xmlns:r", "http://schemas.openxmlformats.org/officeDocument/2006/relationships")

	for _, m := range w.media {
		x.OTag("+rel")
		x.Attr("r:id", m.RId)
		x.CTag()
	}

	x.CTag()

	return w.out.WriteBlob(abspath, bb.Bytes())
}

func (w *Writer) writeRichValueStructure() error {
	relpath := "richData/rdrichvaluestructure.xml"
	abspath := "/xl/" + relpath

	w.contentTypes.Overrides[abspath] = "application/vnd.ms-excel.rdrichvaluestructure+xml"
	if _, err := w.workbookRels.Add(-1, opc.Relationship{
		Type:   "http://schemas.microsoft.com/office/2017/06/relationships/rdRichValueStructure",
		Target: relpath,
	}); err != nil {
		return err
	}

	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("rvStructures")
	x.Attr("xmlns", "http://schemas.microsoft.com/office/spreadsheetml/2017/richdata")
	x.Attr("count", 1)

	// define _localImage{Id, CalcOrigin}
	x.OTag("+s").Attr("t", "_localImage")
	x.OTag("+k").Attr("n", "_rvRel:LocalImageIdentifier").Attr("t", "i").CTag()
	x.OTag("+k").Attr("n", "CalcOrigin").Attr("t", "i").CTag()
	x.CTag()

	x.CTag()

	return w.out.WriteBlob(abspath, bb.Bytes())
}

func (w *Writer) writeRichValueData() error {
	relpath := "richData/rdrichvalue.xml"
	abspath := "/xl/" + relpath

	w.contentTypes.Overrides[abspath] = "application/vnd.ms-excel.rdrichvalue+xml"
	if _, err := w.workbookRels.Add(-1, opc.Relationship{
		Type:   "http://schemas.microsoft.com/office/2017/06/relationships/rdRichValue",
		Target: relpath,
	}); err != nil {
		return err
	}

	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("rvData")

	x.Attr("xmlns", "http://schemas.microsoft.com/office/spreadsheetml/2017/richdata")
	x.Attr("count", len(w.media))

	for _, m := range w.media {
		x.OTag("+rv").Attr("s", 0)
		x.OTag("v").Write(m.IId).CTag() // image resource numeric id
		x.OTag("v").Write(5).CTag()
		x.CTag()
	}

	x.CTag()

	return w.out.WriteBlob(abspath, bb.Bytes())
}

func (w *Writer) writeRichValueTypes() error {
	relpath := "richData/rdRichValueTypes.xml"
	abspath := "/xl/" + relpath

	w.contentTypes.Overrides[abspath] = "application/vnd.ms-excel.rdrichvaluetypes+xml"
	if _, err := w.workbookRels.Add(-1, opc.Relationship{
		Type:   "http://schemas.microsoft.com/office/2017/06/relationships/rdRichValueTypes",
		Target: relpath,
	}); err != nil {
		return err
	}

	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("rvTypesInfo")
	x.Attr("xmlns", "http://schemas.microsoft.com/office/spreadsheetml/2017/richdata2")
	x.Attr("xmlns:mc", "http://schemas.openxmlformats.org/markup-compatibility/2006")
	x.Attr("xmlns:x", "http://schemas.openxmlformats.org/spreadsheetml/2006/main")
	x.Attr("mc:Ignorable", "x")

	x.OTag("global")

	x.OTag("+key").Attr("name", "_Self")
	x.OTag("+flag").Attr("name", "ExcludeFromFile").Attr("value", 1).CTag()
	x.OTag("+flag").Attr("name", "ExcludeFromCalcComparison").Attr("value", 1).CTag()
	x.CTag()

	for _, s := range []string{
		"_DisplayString", "_Flags", "_Format", "_SubLabel", "_Attribution",
		"_Icon", "_Display", "_CanonicalPropertyNames", "_ClassificationId"} {

		x.OTag("+key").Attr("name", s)
		x.OTag("+flag").Attr("name", "ExcludeFromCalcComparison").Attr("value", 1).CTag()
		x.CTag()
	}

	x.CTag() // global

	x.CTag() // rvTypesInfo

	return w.out.WriteBlob(abspath, bb.Bytes())
}

func (w *Writer) writeRels(path string, g *opc.Graph) error {
	blob := g.Write()
	if blob == nil {
		return nil
	}
	return w.out.WriteBlob(path, blob)
}

func enumerate[M ~map[K]V, K constraints.Ordered, V any](m M, callback func(k K, v V) error) error {
	keys := maps.Keys(m)
	slices.Sort(keys)
	for _, k := range keys {
		err := callback(k, m[k])
		if err != nil {
			return err
		}
	}
	return nil
}
