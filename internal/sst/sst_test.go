package sst

import "testing"

func TestParsePlainString(t *testing.T) {
	data := []byte(`<?xml version="1.0"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="1" uniqueCount="1">
  <si><t>hello</t></si>
</sst>`)
	tbl, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tbl.Len() != 1 {
		t.Fatalf("Len = %d", tbl.Len())
	}
	if got := tbl.Get(0).PlainText(); got != "hello" {
		t.Fatalf("PlainText = %q", got)
	}
}

func TestParseRichString(t *testing.T) {
	data := []byte(`<?xml version="1.0"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="1" uniqueCount="1">
  <si>
    <r><rPr><b/></rPr><t>Bold</t></r>
    <r><t> plain</t></r>
  </si>
</sst>`)
	tbl, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	item := tbl.Get(0)
	if len(item.Runs) != 2 {
		t.Fatalf("Runs = %+v", item.Runs)
	}
	if !item.Runs[0].Bold || item.Runs[0].Text != "Bold" {
		t.Fatalf("Runs[0] = %+v", item.Runs[0])
	}
	if item.Runs[1].Bold || item.Runs[1].Text != " plain" {
		t.Fatalf("Runs[1] = %+v", item.Runs[1])
	}
	if got := item.PlainText(); got != "Bold plain" {
		t.Fatalf("PlainText = %q", got)
	}
}

func TestParseSkipsPhoneticRuns(t *testing.T) {
	data := []byte(`<?xml version="1.0"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="1" uniqueCount="1">
  <si><t>漢字</t><rPh sqref="A1"><t>かんじ</t></rPh></si>
</sst>`)
	tbl, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := tbl.Get(0).PlainText(); got != "漢字" {
		t.Fatalf("PlainText = %q, want phonetic guide dropped", got)
	}
}

func TestParseEmptySelfClosingItem(t *testing.T) {
	data := []byte(`<?xml version="1.0"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="1" uniqueCount="1">
  <si/>
</sst>`)
	tbl, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tbl.Len() != 1 || tbl.Get(0).PlainText() != "" {
		t.Fatalf("expected one empty item, got %+v", tbl.Get(0))
	}
}

func TestItemHTMLWrapsFormatting(t *testing.T) {
	it := Item{Runs: []Run{{Text: "hi", Bold: true, Color: "FF0000"}}}
	got := it.HTML()
	want := `<b><span style="color:#FF0000">hi</span></b>`
	if got != want {
		t.Fatalf("HTML = %q, want %q", got, want)
	}
}

func TestBuilderAddPlainDedups(t *testing.T) {
	b := NewBuilder()
	i1 := b.AddPlain("foo")
	i2 := b.AddPlain("bar")
	i3 := b.AddPlain("foo")
	if i1 != i3 {
		t.Fatalf("expected dedup: i1=%d i3=%d", i1, i3)
	}
	if i1 == i2 {
		t.Fatal("expected distinct indices for distinct strings")
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
}

func TestBuilderWriteRoundTrip(t *testing.T) {
	b := NewBuilder()
	b.AddPlain("hello")
	b.AddRich([]Run{{Text: "bold", Bold: true}})

	out := b.Write(5)
	back, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse(Write()): %v", err)
	}
	if back.Len() != 2 {
		t.Fatalf("round trip Len = %d", back.Len())
	}
	if back.Get(0).PlainText() != "hello" {
		t.Fatalf("round trip item 0 = %+v", back.Get(0))
	}
	if !back.Get(1).Runs[0].Bold || back.Get(1).PlainText() != "bold" {
		t.Fatalf("round trip item 1 = %+v", back.Get(1))
	}
}

func TestBuilderWritePreservesWhitespace(t *testing.T) {
	b := NewBuilder()
	b.AddPlain("  leading and trailing  ")
	out := string(b.Write(1))
	if !containsAll(out, `xml:space="preserve"`, "leading and trailing") {
		t.Fatalf("expected xml:space=preserve for whitespace-sensitive text, got: %s", out)
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		found := false
		for i := 0; i+len(sub) <= len(s); i++ {
			if s[i:i+len(sub)] == sub {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
