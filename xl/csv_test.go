package xl

import (
	"bytes"
	"testing"
)

func TestDetectTypeCSV(t *testing.T) {
	if got := DetectType([]byte("a,b,c\n1,2,3\n")); got != "csv" {
		t.Fatalf("DetectType(csv) = %q", got)
	}
}

func TestDetectTypeXLSX(t *testing.T) {
	if got := DetectType([]byte("PK\x03\x04rest")); got != "xlsx" {
		t.Fatalf("DetectType(xlsx) = %q", got)
	}
}

func TestDetectTypeHTML(t *testing.T) {
	if got := DetectType([]byte("  <html><body></body></html>")); got != "html" {
		t.Fatalf("DetectType(html) = %q", got)
	}
}

func TestDetectTypeRejectsPDFAndPNG(t *testing.T) {
	if got := DetectType([]byte("%PDF-1.4 rest")); got != "" {
		t.Fatalf("DetectType(pdf) = %q, want empty", got)
	}
	if got := DetectType([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}); got != "" {
		t.Fatalf("DetectType(png) = %q, want empty", got)
	}
}

func TestReadCSVProducesSheet1(t *testing.T) {
	wb, err := Read([]byte("name,age\nJane,30\n"), Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(wb.Sheets) != 1 || wb.Sheets[0].Name != "Sheet1" {
		t.Fatalf("Sheets = %+v", wb.Sheets)
	}
	sheet := wb.Sheets[0]
	if len(sheet.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(sheet.Rows))
	}
	if sheet.Rows[1].Cells[0].RawValue() != "Jane" || sheet.Rows[1].Cells[1].RawValue() != "30" {
		t.Fatalf("row 1 = %+v", sheet.Rows[1].Cells)
	}
}

func TestReadCSVRespectsSheetRows(t *testing.T) {
	wb, err := Read([]byte("1\n2\n3\n4\n"), Options{Type: "csv", SheetRows: 2})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(wb.Sheets[0].Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(wb.Sheets[0].Rows))
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	wb := NewWorkbook()
	sh, _ := wb.AddSheet("Sheet1")
	row := sh.AddRow()
	row.AddCell().SetStr("a")
	row.AddCell().SetInt(1)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, sh); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	wb2, err := Read(buf.Bytes(), Options{Type: "csv"})
	if err != nil {
		t.Fatalf("Read(WriteCSV()): %v", err)
	}
	got := wb2.Sheets[0].Rows[0]
	if got.Cells[0].RawValue() != "a" || got.Cells[1].RawValue() != "1" {
		t.Fatalf("round trip row = %+v", got.Cells)
	}
}

func TestWriteCSVUsesFormulaCachedValue(t *testing.T) {
	wb := NewWorkbook()
	sh, _ := wb.AddSheet("Sheet1")
	row := sh.AddRow()
	row.AddCell().SetFormula("1+2", "3")

	var buf bytes.Buffer
	if err := WriteCSV(&buf, sh); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if got := buf.String(); got != "3\n" {
		t.Fatalf("WriteCSV formula cell = %q, want %q", got, "3\n")
	}
}

func TestWriteTSVUsesTabsAndStripsEmbeddedTabs(t *testing.T) {
	wb := NewWorkbook()
	sh, _ := wb.AddSheet("Sheet1")
	row := sh.AddRow()
	row.AddCell().SetStr("a\tb")
	row.AddCell().SetStr("c")

	var buf bytes.Buffer
	if err := WriteTSV(&buf, sh); err != nil {
		t.Fatalf("WriteTSV: %v", err)
	}
	if got := buf.String(); got != "a b\tc\n" {
		t.Fatalf("WriteTSV = %q", got)
	}
}
