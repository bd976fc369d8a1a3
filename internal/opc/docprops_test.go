package opc

import (
	"testing"
	"time"
)

func TestCorePropsWriteParseRoundTrip(t *testing.T) {
	created := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	cp := &CoreProps{
		Title:          "Quarterly Report",
		Creator:        "Jane",
		LastModifiedBy: "Jane",
		Category:       "Finance",
		Created:        &created,
	}
	out := cp.Write()

	back, err := ParseCoreProps(out)
	if err != nil {
		t.Fatalf("ParseCoreProps: %v", err)
	}
	if back.Title != cp.Title || back.Creator != cp.Creator || back.Category != cp.Category {
		t.Fatalf("round trip = %+v", back)
	}
	if back.Created == nil || !back.Created.Equal(created) {
		t.Fatalf("Created round trip = %v, want %v", back.Created, created)
	}
}

func TestCorePropsWriteOmitsEmptyFields(t *testing.T) {
	cp := &CoreProps{Title: "Only Title"}
	out := string(cp.Write())
	if indexOfSubstring(out, "<dc:subject>") != -1 {
		t.Fatalf("expected no dc:subject element for an empty Subject, got: %s", out)
	}
}

func TestExtendedPropsWriteParseRoundTrip(t *testing.T) {
	ep := &ExtendedProps{SheetCount: 2, TitlesOfParts: []string{"Sheet1", "Sheet2"}}
	out := ep.Write()

	back, err := ParseExtendedProps(out)
	if err != nil {
		t.Fatalf("ParseExtendedProps: %v", err)
	}
	if back.SheetCount != 2 || len(back.TitlesOfParts) != 2 {
		t.Fatalf("round trip = %+v", back)
	}
	if back.TitlesOfParts[0] != "Sheet1" || back.TitlesOfParts[1] != "Sheet2" {
		t.Fatalf("TitlesOfParts = %v", back.TitlesOfParts)
	}
}

func TestExtendedPropsWriteDefaultsApplicationName(t *testing.T) {
	ep := &ExtendedProps{}
	out := string(ep.Write())
	if indexOfSubstring(out, "<Application>xlbook</Application>") == -1 {
		t.Fatalf("expected default Application name, got: %s", out)
	}
}

func TestWriteCustomProps(t *testing.T) {
	out := string(WriteCustomProps([]CustomProp{
		{Name: "Reviewed", Value: true},
		{Name: "Revenue", Value: 1234.5},
		{Name: "Owner", Value: "Jane"},
	}))
	for _, want := range []string{`name="Reviewed"`, `name="Revenue"`, `name="Owner"`, "<vt:bool>", "<vt:r8>", "<vt:lpwstr>Jane</vt:lpwstr>", customPropsFmtID} {
		if indexOfSubstring(out, want) == -1 {
			t.Fatalf("expected %q in output, got: %s", want, out)
		}
	}
}
