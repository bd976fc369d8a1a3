package xl

import "testing"

func newSheetForTest(t *testing.T, name string) *Sheet {
	t.Helper()
	wb := NewWorkbook()
	sh, err := wb.AddSheet(name)
	if err != nil {
		t.Fatalf("AddSheet: %v", err)
	}
	return sh
}

func TestParseLegacyComments(t *testing.T) {
	data := []byte(`<?xml version="1.0"?>
<comments xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <authors><author>Jane</author></authors>
  <commentList>
    <comment ref="A1" authorId="0"><text><r><t>hello</t></r></text></comment>
  </commentList>
</comments>`)
	got, err := parseLegacyComments(data)
	if err != nil {
		t.Fatalf("parseLegacyComments: %v", err)
	}
	cs, ok := got["A1"]
	if !ok || len(cs) != 1 {
		t.Fatalf("A1 comments = %+v", got)
	}
	if cs[0].Author != "Jane" || cs[0].Text != "hello" {
		t.Fatalf("comment = %+v", cs[0])
	}
}

func TestParseThreadedCommentsSkipsReplies(t *testing.T) {
	people := map[string]string{"{p1}": "Jane"}
	data := []byte(`<?xml version="1.0"?>
<ThreadedComments xmlns="http://schemas.microsoft.com/office/spreadsheetml/2018/threadedcomments">
  <threadedComment ref="B2" id="{c1}" personId="{p1}"><text>root</text></threadedComment>
  <threadedComment ref="B2" id="{c2}" personId="{p1}" parentId="{c1}"><text>reply</text></threadedComment>
</ThreadedComments>`)
	got := parseThreadedComments(data, people)
	cs, ok := got["B2"]
	if !ok || len(cs) != 1 {
		t.Fatalf("B2 comments = %+v, want exactly the root", got)
	}
	if cs[0].Text != "root" || cs[0].Author != "Jane" {
		t.Fatalf("comment = %+v", cs[0])
	}
}

func TestApplyCommentsThreadedSupersedesLegacy(t *testing.T) {
	sh := newSheetForTest(t, "Sheet1")
	legacy := map[string][]Comment{"A1": {{Author: "Old", Text: "legacy"}}}
	threaded := map[string][]Comment{"A1": {{Author: "New", Text: "threaded", ThreadGUID: "{c1}"}}}

	applyComments(sh, legacy, threaded)

	cell := sh.Rows[0].Cells[0]
	if cell.Comment == nil {
		t.Fatal("expected a comment on A1")
	}
	if cell.Comment.ThreadGUID == "" || cell.Comment.Text != "threaded" {
		t.Fatalf("comment = %+v, want the threaded one to win", cell.Comment)
	}
}

func TestApplyCommentsLegacyOnlyWhenNoThread(t *testing.T) {
	sh := newSheetForTest(t, "Sheet1")
	legacy := map[string][]Comment{"C3": {{Author: "Old", Text: "legacy"}}}

	applyComments(sh, legacy, nil)

	cell := sh.Rows[2].Cells[2]
	if cell.Comment == nil || cell.Comment.Text != "legacy" {
		t.Fatalf("comment = %+v", cell.Comment)
	}
}

func TestWriteLegacyCommentsRoundTrip(t *testing.T) {
	sh := newSheetForTest(t, "Sheet1")
	row := sh.AddRow()
	cell := row.AddCell()
	cell.Comment = &Comment{Author: "Jane", Text: "note"}

	out := writeLegacyComments(sh)
	if out == nil {
		t.Fatal("expected non-nil output for a commented sheet")
	}

	back, err := parseLegacyComments(out)
	if err != nil {
		t.Fatalf("parseLegacyComments: %v", err)
	}
	cs, ok := back[cell.Coord()]
	if !ok || len(cs) != 1 || cs[0].Text != "note" {
		t.Fatalf("round trip = %+v", back)
	}
}

func TestWriteLegacyCommentsEmptySheet(t *testing.T) {
	sh := newSheetForTest(t, "Sheet1")
	if out := writeLegacyComments(sh); out != nil {
		t.Fatalf("expected nil output for a sheet with no comments, got %q", out)
	}
}

func TestWriteThreadedCommentsDefaultAuthor(t *testing.T) {
	sh := newSheetForTest(t, "Sheet1")
	row := sh.AddRow()
	cell := row.AddCell()
	cell.Comment = &Comment{Text: "hi", ThreadGUID: "{seed}"}

	commentsXML, peopleXML := writeThreadedComments(sh.Name, sh)
	if commentsXML == nil || peopleXML == nil {
		t.Fatal("expected non-nil output for a threaded-comment sheet")
	}

	people := parsePeople(peopleXML)
	found := false
	for _, name := range people {
		if name == "SheetJ5" {
			found = true
		}
	}
	if !found {
		t.Fatalf("people = %+v, want the default SheetJ5 author", people)
	}
}
