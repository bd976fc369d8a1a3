package xl

import "testing"

func TestAddSheetRejectsDuplicateName(t *testing.T) {
	wb := NewWorkbook()
	if _, err := wb.AddSheet("Sheet1"); err != nil {
		t.Fatalf("AddSheet: %v", err)
	}
	if _, err := wb.AddSheet("Sheet1"); err == nil {
		t.Fatal("expected an error adding a duplicate sheet name")
	}
}

func TestAddSheetValidatesName(t *testing.T) {
	wb := NewWorkbook()
	cases := []string{"", "'quoted", "quoted'", "bad:name", "bad/name", string(make([]byte, 32)), "History", "HISTORY"}
	for _, name := range cases {
		if _, err := wb.AddSheet(name); err == nil {
			t.Fatalf("expected AddSheet(%q) to fail", name)
		}
	}
}

func TestDefinedNameLookup(t *testing.T) {
	wb := NewWorkbook()
	wb.DefinedNames = []DefinedName{
		{Name: "TaxRate", RefersTo: "Sheet1!$B$1"},
		{Name: "Total", RefersTo: "Sheet1!$C$1", Sheet: "Sheet1", Hidden: true, Comment: "running total"},
	}

	dn, ok := wb.DefinedName("TaxRate", "")
	if !ok || dn.RefersTo != "Sheet1!$B$1" {
		t.Fatalf("DefinedName(TaxRate, \"\") = %+v, %v", dn, ok)
	}

	dn, ok = wb.DefinedName("Total", "Sheet1")
	if !ok || !dn.Hidden || dn.Comment != "running total" {
		t.Fatalf("DefinedName(Total, Sheet1) = %+v, %v", dn, ok)
	}

	if _, ok := wb.DefinedName("Total", ""); ok {
		t.Fatal("sheet-scoped name should not resolve under the workbook scope")
	}
}

func TestAddSheetAppendsInOrder(t *testing.T) {
	wb := NewWorkbook()
	wb.AddSheet("First")
	wb.AddSheet("Second")
	if len(wb.Sheets) != 2 || wb.Sheets[0].Name != "First" || wb.Sheets[1].Name != "Second" {
		t.Fatalf("Sheets = %+v", wb.Sheets)
	}
}
