package xl

import (
	"fmt"

	"github.com/adnsv/xlbook/internal/sst"
)

// Cell represents a single cell in a worksheet.
// It contains the cell's value, type, formatting (XF), and position information.
type Cell struct {
	row          *Row
	columnNumber int // 1-based
	coord        string
	typ          CellType
	v            string
	picture      *PictureInfo

	// Formula is the cell's formula text (without the leading '='), set
	// when typ == CellTypeFormula. CachedValue holds the last computed
	// result the writer should emit alongside it.
	Formula          string
	ArrayFormulaRef  string // non-empty for the anchor cell of an array formula
	IsDynamicArray   bool
	CachedValue      string

	NumberFormatID  int    // numFmtId into the workbook's style table, 0 = General
	NumberFormatStr string // literal format string; takes priority over NumberFormatID when set
	StyleIndex      int    // index into the workbook-wide cell XF table

	RichRuns []sst.Run // non-nil for rich-formatted inline/shared strings

	Hyperlink string
	Comment   *Comment

	XF
}

// Comment is a cell annotation, either a legacy VML comment or a modern
// threaded comment; Author/ThreadGUID distinguish reconciliation rules
// when both legacy and threaded data exist for the same cell.
type Comment struct {
	Author    string
	Text      string
	ThreadGUID string // non-empty for threaded comments
	Resolved  bool
}

// PictureInfo contains image data and metadata for embedding images in cells.
// Supported formats are PNG and JPEG (specified via Extension field).
type PictureInfo struct {
	Extension string // File extension including dot (e.g., ".png", ".jpg", ".jpeg")
	Blob      []byte // Raw image data
}

// CellType is the type of cell value type.
type CellType int

// Cell value types enumeration.
const (
	CellTypeUnset CellType = iota
	CellTypeBool
	CellTypeDate
	CellTypeError
	CellTypeFormula
	CellTypeInlineString
	CellTypeNumber
	CellTypeSharedString

	// internal
	cellTypePicture
)

// XF (Extended Format) represents the complete formatting attributes for a cell.
// It includes alignment and font properties that define how the cell content appears.
type XF struct {
	Alignment Alignment
	Font      Font
}

// HorizontalAlignment represents the horizontal alignment of cell content.
type HorizontalAlignment string

// Horizontal alignment constants as defined in ECMA-376 (ST_HorizontalAlignment).
const (
	HAlignGeneral          HorizontalAlignment = "general"          // Default: numbers right-aligned, text left-aligned
	HAlignLeft             HorizontalAlignment = "left"             // Left aligned
	HAlignCenter           HorizontalAlignment = "center"           // Centered
	HAlignRight            HorizontalAlignment = "right"            // Right aligned
	HAlignFill             HorizontalAlignment = "fill"             // Fill/repeat content to fill column width
	HAlignJustify          HorizontalAlignment = "justify"          // Justified
	HAlignCenterContinuous HorizontalAlignment = "centerContinuous" // Center across selection
	HAlignDistributed      HorizontalAlignment = "distributed"      // Distributed alignment
)

// VerticalAlignment represents the vertical alignment of cell content.
type VerticalAlignment string

// Vertical alignment constants as defined in ECMA-376 (ST_VerticalAlignment).
const (
	VAlignTop         VerticalAlignment = "top"         // Top aligned
	VAlignCenter      VerticalAlignment = "center"      // Centered vertically
	VAlignBottom      VerticalAlignment = "bottom"      // Bottom aligned (default)
	VAlignJustify     VerticalAlignment = "justify"     // Justified
	VAlignDistributed VerticalAlignment = "distributed" // Distributed alignment
)

// Alignment represents the alignment properties for cell content.
// Both horizontal and vertical alignment can be set using type-safe constants.
type Alignment struct {
	Horizontal HorizontalAlignment
	Vertical   VerticalAlignment
}

// SetBool sets the cell value to a boolean.
// The value is stored as "1" (true) or "0" (false) in Excel format.
func (c *Cell) SetBool(v bool) {
	c.typ = CellTypeBool
	if v {
		c.v = "1"
	} else {
		c.v = "0"
	}
}

// SetInt sets the cell value to an integer number.
func (c *Cell) SetInt(v int64) {
	c.typ = CellTypeNumber
	c.v = fmt.Sprintf("%d", v)
}

// SetFloat sets the cell value to a floating-point number.
// The value is formatted using %g which chooses the most compact representation.
func (c *Cell) SetFloat(v float64) {
	c.typ = CellTypeNumber
	c.v = fmt.Sprintf("%g", v)
}

// SetStr sets the cell value to a string.
// The string will be stored in the shared string table for efficiency.
func (c *Cell) SetStr(v string) {
	c.typ = CellTypeSharedString
	c.v = v
}

// SetPicture sets the cell to display an image.
// The image data and extension must be provided via PictureInfo.
// Supported formats: PNG, JPEG.
func (c *Cell) SetPicture(p *PictureInfo) {
	c.typ = cellTypePicture
	c.picture = p
}

// SetDate sets the cell to a date/time value, stored as an Excel serial
// number (computed by the caller via internal/dateserial) with typ
// CellTypeDate so the writer applies a date-shaped number format.
func (c *Cell) SetDate(serial float64) {
	c.typ = CellTypeDate
	c.v = fmt.Sprintf("%v", serial)
}

// SetFormula sets the cell's formula text (without a leading '=') and the
// cached result to display until the formula is recalculated.
func (c *Cell) SetFormula(expr, cachedValue string) {
	c.typ = CellTypeFormula
	c.Formula = expr
	c.CachedValue = cachedValue
	c.v = cachedValue
}

// SetError sets the cell to one of the ECMA-376 error literals, e.g.
// "#DIV/0!", "#N/A", "#VALUE!".
func (c *Cell) SetError(code string) {
	c.typ = CellTypeError
	c.v = code
}

// Coord returns this cell's A1-style address, e.g. "C5".
func (c *Cell) Coord() string { return c.coord }

// Type returns the cell's value type.
func (c *Cell) Type() CellType { return c.typ }

// RawValue returns the cell's stored value as written: the literal number
// text, the "0"/"1" boolean flag, the error code, the formula's cached
// result, or the (possibly shared) string text.
func (c *Cell) RawValue() string { return c.v }

// Empty returns true if the alignment has no custom properties set.
// An empty alignment means both horizontal and vertical are using defaults.
func (a *Alignment) Empty() bool {
	return a.Horizontal == "" && a.Vertical == ""
}

// Empty returns true if the XF has no custom formatting properties set.
// This checks both alignment and font for default values.
func (xf *XF) Empty() bool {
	return xf.Alignment.Empty() && xf.Font.Empty()
}
