// Package sst implements the shared-string table (xl/sharedStrings.xml):
// parsing <si> items (plain and rich-run), write-time deduplication, and
// plain-text/HTML projections of rich runs.
//
// Grounded on TsubasaBE/go-xlsb's stringtable package for the overall
// shape (New/Get/Len, index-addressed table built once at parse time) --
// adapted from its binary BrtSi record reader to this system's XML-based
// <si>/<r>/<rPr> parsing via internal/xmltok, since the source format here
// is SpreadsheetML rather than XLSB.
package sst

import (
	"strings"

	srwxml "github.com/adnsv/srw/xml"

	"github.com/adnsv/xlbook/internal/xmltok"
)

// Run is one formatted run of a rich string (<r> element): Text plus the
// subset of <rPr> font properties the data model tracks.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
	Color     string // ARGB hex, "" if unset
	FontName  string
	Size      float64
}

// Item is one shared-string table entry. Plain strings carry a single Run
// with no formatting; rich strings carry one Run per formatting span.
type Item struct {
	Runs []Run
}

// PlainText concatenates every run's text, discarding formatting -- the
// projection used whenever a cell consumes a shared string as a bare value.
func (it Item) PlainText() string {
	if len(it.Runs) == 1 {
		return it.Runs[0].Text
	}
	var b strings.Builder
	for _, r := range it.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// HTML renders the item as inline HTML, wrapping each formatted run in the
// minimal set of tags needed to reproduce bold/italic/underline/strike and
// an inline color style, per spec.md's cellHTML projection.
func (it Item) HTML() string {
	var b strings.Builder
	for _, r := range it.Runs {
		text := xmltok.Escape(r.Text)
		open, close := "", ""
		if r.Bold {
			open += "<b>"
			close = "</b>" + close
		}
		if r.Italic {
			open += "<i>"
			close = "</i>" + close
		}
		if r.Underline {
			open += "<u>"
			close = "</u>" + close
		}
		if r.Strike {
			open += "<s>"
			close = "</s>" + close
		}
		if r.Color != "" {
			open += `<span style="color:#` + r.Color + `">`
			close = "</span>" + close
		}
		b.WriteString(open)
		b.WriteString(text)
		b.WriteString(close)
	}
	return b.String()
}

// Table is a parsed shared-string table indexed by position.
type Table struct {
	items []Item
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.items) }

// Get returns the item at idx. It panics if idx is out of range, matching
// slice-index semantics.
func (t *Table) Get(idx int) Item { return t.items[idx] }

// Parse reads xl/sharedStrings.xml.
func Parse(data []byte) (*Table, error) {
	t := &Table{}
	s := xmltok.NewScanner(data)

	var cur *Item
	var curRun *Run
	var textBuf strings.Builder
	inText := false
	inPhonetic := false

	flushRun := func() {
		if curRun != nil {
			curRun.Text = textBuf.String()
			cur.Runs = append(cur.Runs, *curRun)
			curRun = nil
		}
		textBuf.Reset()
	}

	for {
		raw, isTag, ok := s.Next()
		if !ok {
			break
		}
		if !isTag {
			if inText && !inPhonetic {
				textBuf.WriteString(xmltok.Unescape(raw))
			}
			continue
		}
		tag := xmltok.ParseTag(raw)
		switch tag.Name {
		case "si":
			if tag.Closing {
				flushRun()
				t.items = append(t.items, *cur)
				cur = nil
			} else {
				cur = &Item{}
				if tag.SelfClosing {
					t.items = append(t.items, Item{Runs: []Run{{Text: ""}}})
					cur = nil
				}
			}
		case "t":
			if tag.Closing {
				inText = false
				if curRun == nil {
					curRun = &Run{}
				}
			} else if !tag.SelfClosing {
				inText = true
			}
		case "r":
			if tag.Closing {
				flushRun()
			} else {
				curRun = &Run{}
			}
		case "rPr":
			// attributes arrive on the nested b/i/u/strike/color/sz/rFont
			// elements, not on rPr itself; nothing to do here.
		case "b":
			if curRun != nil {
				curRun.Bold = true
			}
		case "i":
			if curRun != nil {
				curRun.Italic = true
			}
		case "u":
			if curRun != nil {
				curRun.Underline = true
			}
		case "strike":
			if curRun != nil {
				curRun.Strike = true
			}
		case "color":
			if curRun != nil {
				if v, ok := tag.Attr("rgb"); ok {
					curRun.Color = v
				}
			}
		case "sz":
			if curRun != nil {
				if v, ok := tag.Attr("val"); ok {
					curRun.Size = parseFloatLoose(v)
				}
			}
		case "rFont":
			if curRun != nil {
				if v, ok := tag.Attr("val"); ok {
					curRun.FontName = v
				}
			}
		case "rPh":
			// Phonetic guide runs are dropped entirely, per spec.md.
			inPhonetic = !tag.Closing && !tag.SelfClosing
		}
	}
	return t, nil
}

func parseFloatLoose(s string) float64 {
	var v float64
	var frac float64 = 1
	var seenDot bool
	for _, c := range s {
		switch {
		case c == '.':
			seenDot = true
		case c >= '0' && c <= '9':
			if seenDot {
				frac /= 10
				v += float64(c-'0') * frac
			} else {
				v = v*10 + float64(c-'0')
			}
		}
	}
	return v
}

// Builder accumulates unique strings at write time, preserving first-seen
// insertion order and deduplicating by content.
type Builder struct {
	items []Item
	index map[string]int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{index: map[string]int{}}
}

// AddPlain registers (or reuses) a plain string and returns its index.
func (b *Builder) AddPlain(s string) int {
	if idx, ok := b.index[s]; ok {
		return idx
	}
	idx := len(b.items)
	b.items = append(b.items, Item{Runs: []Run{{Text: s}}})
	b.index[s] = idx
	return idx
}

// AddRich registers a rich-run item. Rich items are never deduplicated
// against each other (their dedup key would have to include formatting,
// which is rare enough in practice not to bother).
func (b *Builder) AddRich(runs []Run) int {
	idx := len(b.items)
	b.items = append(b.items, Item{Runs: runs})
	return idx
}

// Len returns the number of entries registered so far.
func (b *Builder) Len() int { return len(b.items) }

// Write renders xl/sharedStrings.xml. count is the total number of cell
// references across the workbook (SST's "count" attribute, distinct from
// "uniqueCount" = len(items)).
func (b *Builder) Write(count int) []byte {
	bb := &strings.Builder{}
	x := srwxml.NewWriter(bb, srwxml.WriterConfig{Indent: srwxml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("sst")
	x.Attr("xmlns", "http://schemas.openxmlformats.org/spreadsheetml/2006/main")
	x.Attr("count", count)
	x.Attr("uniqueCount", len(b.items))

	writeT := func(tagName, text string) {
		if xmltok.NeedsPreserve(text) {
			x.OTag(tagName).Attr("xml:space", "preserve").Write(text).CTag()
		} else {
			x.OTag(tagName).Write(text).CTag()
		}
	}

	for _, it := range b.items {
		x.OTag("+si")
		if len(it.Runs) == 1 && isPlainRun(it.Runs[0]) {
			writeT("+t", it.Runs[0].Text)
		} else {
			for _, r := range it.Runs {
				x.OTag("+r")
				if !isPlainRun(r) {
					x.OTag("+rPr")
					if r.Bold {
						x.OTag("+b").CTag()
					}
					if r.Italic {
						x.OTag("+i").CTag()
					}
					if r.Underline {
						x.OTag("+u").CTag()
					}
					if r.Strike {
						x.OTag("+strike").CTag()
					}
					if r.Size != 0 {
						x.OTag("+sz").Attr("val", r.Size).CTag()
					}
					if r.Color != "" {
						x.OTag("+color").Attr("rgb", r.Color).CTag()
					}
					if r.FontName != "" {
						x.OTag("+rFont").Attr("val", r.FontName).CTag()
					}
					x.CTag()
				}
				writeT("+t", r.Text)
				x.CTag()
			}
		}
		x.CTag()
	}

	x.CTag()
	return []byte(bb.String())
}

func isPlainRun(r Run) bool {
	return !r.Bold && !r.Italic && !r.Underline && !r.Strike && r.Color == "" && r.FontName == "" && r.Size == 0
}
