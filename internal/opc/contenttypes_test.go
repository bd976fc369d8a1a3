package opc

import "testing"

func TestParseContentTypes(t *testing.T) {
	data := []byte(`<?xml version="1.0"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>
</Types>`)
	ct, err := ParseContentTypes(data)
	if err != nil {
		t.Fatalf("ParseContentTypes: %v", err)
	}
	if ct.Defaults["rels"] == "" || ct.Defaults["xml"] == "" {
		t.Fatalf("Defaults = %+v", ct.Defaults)
	}
	if ct.Overrides["/xl/workbook.xml"] == "" {
		t.Fatalf("Overrides = %+v", ct.Overrides)
	}
}

func TestParseContentTypesRejectsUnknownNamespace(t *testing.T) {
	data := []byte(`<?xml version="1.0"?><Types xmlns="urn:bogus"></Types>`)
	if _, err := ParseContentTypes(data); err == nil {
		t.Fatal("expected an error for an unrecognized namespace")
	}
}

func TestContentTypesWriteOrdersByCategory(t *testing.T) {
	ct := &ContentTypes{
		Defaults: map[string]string{"rels": "application/vnd.openxmlformats-package.relationships+xml"},
		Overrides: map[string]string{
			"/xl/worksheets/sheet1.xml": "sheet-type",
			"/xl/workbook.xml":          "workbook-type",
			"/docProps/core.xml":        "core-type",
		},
	}
	categoryOf := func(p string) string {
		switch p {
		case "/xl/workbook.xml":
			return "workbook"
		case "/xl/worksheets/sheet1.xml":
			return "sheet"
		case "/docProps/core.xml":
			return "core-properties"
		}
		return "other"
	}
	out := ct.Write(categoryOf)

	back, err := ParseContentTypes(out)
	if err != nil {
		t.Fatalf("ParseContentTypes(Write()): %v", err)
	}
	if len(back.Overrides) != 3 {
		t.Fatalf("round trip overrides = %+v", back.Overrides)
	}

	workbookIdx := indexOfSubstring(string(out), "/xl/workbook.xml")
	sheetIdx := indexOfSubstring(string(out), "/xl/worksheets/sheet1.xml")
	coreIdx := indexOfSubstring(string(out), "/docProps/core.xml")
	if !(workbookIdx < sheetIdx && sheetIdx < coreIdx) {
		t.Fatalf("override emission order = workbook:%d sheet:%d core:%d, want ascending per defaultCategoryOrder", workbookIdx, sheetIdx, coreIdx)
	}
}

func indexOfSubstring(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
