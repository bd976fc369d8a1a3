package xl

import "testing"

func TestCellSetBool(t *testing.T) {
	sh := newSheetForTest(t, "Sheet1")
	cell := sh.AddRow().AddCell()
	cell.SetBool(true)
	if cell.Type() != CellTypeBool || cell.RawValue() != "1" {
		t.Fatalf("SetBool(true) -> type=%v value=%q", cell.Type(), cell.RawValue())
	}
	cell.SetBool(false)
	if cell.RawValue() != "0" {
		t.Fatalf("SetBool(false) -> value=%q", cell.RawValue())
	}
}

func TestCellSetInt(t *testing.T) {
	sh := newSheetForTest(t, "Sheet1")
	cell := sh.AddRow().AddCell()
	cell.SetInt(42)
	if cell.Type() != CellTypeNumber || cell.RawValue() != "42" {
		t.Fatalf("SetInt(42) -> type=%v value=%q", cell.Type(), cell.RawValue())
	}
}

func TestCellSetStrUsesSharedStringType(t *testing.T) {
	sh := newSheetForTest(t, "Sheet1")
	cell := sh.AddRow().AddCell()
	cell.SetStr("hello")
	if cell.Type() != CellTypeSharedString || cell.RawValue() != "hello" {
		t.Fatalf("SetStr -> type=%v value=%q", cell.Type(), cell.RawValue())
	}
}

func TestCellSetFormula(t *testing.T) {
	sh := newSheetForTest(t, "Sheet1")
	cell := sh.AddRow().AddCell()
	cell.SetFormula("SUM(A1:A2)", "3")
	if cell.Type() != CellTypeFormula || cell.Formula != "SUM(A1:A2)" || cell.CachedValue != "3" || cell.RawValue() != "3" {
		t.Fatalf("SetFormula -> %+v", cell)
	}
}

func TestCellSetError(t *testing.T) {
	sh := newSheetForTest(t, "Sheet1")
	cell := sh.AddRow().AddCell()
	cell.SetError("#DIV/0!")
	if cell.Type() != CellTypeError || cell.RawValue() != "#DIV/0!" {
		t.Fatalf("SetError -> type=%v value=%q", cell.Type(), cell.RawValue())
	}
}

func TestCellCoordTracksPosition(t *testing.T) {
	sh := newSheetForTest(t, "Sheet1")
	row := sh.AddRow()
	row.AddCell()
	second := row.AddCell()
	if second.Coord() != "B1" {
		t.Fatalf("Coord = %q, want B1", second.Coord())
	}
}

func TestXFEmpty(t *testing.T) {
	var xf XF
	if !xf.Empty() {
		t.Fatal("expected a zero-value XF to be Empty")
	}
	xf.Alignment.Horizontal = HAlignCenter
	if xf.Empty() {
		t.Fatal("expected a set alignment to make XF non-empty")
	}
}
