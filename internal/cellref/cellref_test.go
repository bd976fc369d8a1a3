package cellref

import "testing"

func TestEncodeDecodeColumnRoundTrip(t *testing.T) {
	cases := []struct {
		col uint32
		s   string
	}{
		{0, "A"}, {25, "Z"}, {26, "AA"}, {701, "ZZ"}, {702, "AAA"},
	}
	for _, c := range cases {
		if got := EncodeColumn(c.col); got != c.s {
			t.Errorf("EncodeColumn(%d) = %q, want %q", c.col, got, c.s)
		}
		got, ok := DecodeColumn(c.s)
		if !ok || got != c.col {
			t.Errorf("DecodeColumn(%q) = %d,%v, want %d,true", c.s, got, ok, c.col)
		}
	}
}

func TestDecodeColumnCaseInsensitive(t *testing.T) {
	got, ok := DecodeColumn("aa")
	if !ok || got != 26 {
		t.Fatalf("DecodeColumn(aa) = %d,%v, want 26,true", got, ok)
	}
}

func TestEncodeDecodeCellRoundTrip(t *testing.T) {
	a := Address{Row: 4, Col: 2}
	s := EncodeCell(a)
	if s != "C5" {
		t.Fatalf("EncodeCell = %q, want C5", s)
	}
	got, ok := DecodeCell(s)
	if !ok || got != a {
		t.Fatalf("DecodeCell(%q) = %+v,%v, want %+v,true", s, got, ok, a)
	}
}

func TestDecodeCellStripsAbsoluteMarkers(t *testing.T) {
	got, ok := DecodeCell("$C$5")
	if !ok || got != (Address{Row: 4, Col: 2}) {
		t.Fatalf("DecodeCell($C$5) = %+v,%v", got, ok)
	}
}

func TestDecodeCellRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "A", "1", "1A", "A-1"} {
		if _, ok := DecodeCell(s); ok {
			t.Errorf("DecodeCell(%q) unexpectedly ok", s)
		}
	}
}

func TestEncodeDecodeRangeRoundTrip(t *testing.T) {
	r := Range{Start: Address{Row: 0, Col: 0}, End: Address{Row: 9, Col: 2}}
	s := EncodeRange(r)
	if s != "A1:C10" {
		t.Fatalf("EncodeRange = %q, want A1:C10", s)
	}
	got, ok := DecodeRange(s)
	if !ok || got != r {
		t.Fatalf("DecodeRange(%q) = %+v,%v, want %+v,true", s, got, ok, r)
	}
}

func TestEncodeRangeSingleCell(t *testing.T) {
	r := Range{Start: Address{Row: 0, Col: 0}, End: Address{Row: 0, Col: 0}}
	if s := EncodeRange(r); s != "A1" {
		t.Fatalf("EncodeRange(single) = %q, want A1", s)
	}
}

func TestNormalize(t *testing.T) {
	r := Range{Start: Address{Row: 5, Col: 5}, End: Address{Row: 0, Col: 0}}
	n := Normalize(r)
	if n.Start != (Address{Row: 0, Col: 0}) || n.End != (Address{Row: 5, Col: 5}) {
		t.Fatalf("Normalize = %+v", n)
	}
}

func TestContains(t *testing.T) {
	r := Range{Start: Address{Row: 0, Col: 0}, End: Address{Row: 2, Col: 2}}
	if !Contains(r, Address{Row: 1, Col: 1}) {
		t.Fatal("expected contains")
	}
	if Contains(r, Address{Row: 3, Col: 0}) {
		t.Fatal("expected not contains")
	}
}

func TestOverlaps(t *testing.T) {
	a := Range{Start: Address{Row: 0, Col: 0}, End: Address{Row: 2, Col: 2}}
	b := Range{Start: Address{Row: 2, Col: 2}, End: Address{Row: 4, Col: 4}}
	c := Range{Start: Address{Row: 3, Col: 3}, End: Address{Row: 4, Col: 4}}
	if !Overlaps(a, b) {
		t.Fatal("expected overlap at corner")
	}
	if Overlaps(a, c) {
		t.Fatal("expected no overlap")
	}
}
