package xl

import (
	"bytes"
	"testing"
)

func TestReadHTMLBasicTable(t *testing.T) {
	doc := `<html><body><table>
	<tr><td>a</td><td>b</td></tr>
	<tr><td>1</td><td>2</td></tr>
	</table></body></html>`
	wb, err := Read([]byte(doc), Options{Type: "html"})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	sheet := wb.Sheets[0]
	if len(sheet.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(sheet.Rows))
	}
	if sheet.Rows[0].Cells[0].RawValue() != "a" || sheet.Rows[1].Cells[1].RawValue() != "2" {
		t.Fatalf("rows = %+v / %+v", sheet.Rows[0].Cells, sheet.Rows[1].Cells)
	}
}

func TestReadHTMLHandlesColspanAndRowspan(t *testing.T) {
	doc := `<table>
	<tr><td colspan="2">wide</td><td>c</td></tr>
	<tr><td rowspan="2">tall</td><td>x</td><td>y</td></tr>
	<tr><td>z</td><td>w</td></tr>
	</table>`
	wb, err := Read([]byte(doc), Options{Type: "html"})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	sheet := wb.Sheets[0]
	if len(sheet.Rows) != 3 {
		t.Fatalf("len(Rows) = %d, want 3", len(sheet.Rows))
	}
	// Row 2 holds the rowspan anchor "tall"; "x"/"y" follow it in columns B/C.
	row2 := sheet.Rows[1]
	if row2.Cells[0].RawValue() != "tall" || row2.Cells[1].RawValue() != "x" || row2.Cells[2].RawValue() != "y" {
		t.Fatalf("row2 = %+v", row2.Cells)
	}
}

func TestReadHTMLNoTableErrors(t *testing.T) {
	if _, err := Read([]byte("<html><body>no table here</body></html>"), Options{Type: "html"}); err == nil {
		t.Fatal("expected an error when no <table> element is present")
	}
}

func TestWriteHTMLEscapesAndRendersRichRuns(t *testing.T) {
	wb := NewWorkbook()
	sh, _ := wb.AddSheet("Sheet1")
	row := sh.AddRow()
	row.AddCell().SetStr("<plain> & text")

	var buf bytes.Buffer
	if err := WriteHTML(&buf, sh); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	got := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte("&lt;plain&gt; &amp; text")) {
		t.Fatalf("WriteHTML output = %q, want escaped plain text", got)
	}
}
