package xl

// Comment parsing/emission: legacy comments<N>.xml plus a VML drawing
// anchor, and modern threadedComments/people parts, per spec.md §4.10.
// Grounded on internal/sst's xmltok-driven parse shape (flat element walk,
// no DOM) and internal/opc's srw/xml write shape for the emit side.

import (
	"fmt"
	"strconv"
	"strings"

	srwxml "github.com/adnsv/srw/xml"

	"github.com/adnsv/xlbook/internal/cellref"
	"github.com/adnsv/xlbook/internal/xmltok"
	"github.com/google/uuid"
)

// parseLegacyComments reads a comments<N>.xml part, returning an
// author-resolved, cell-ordered list per coordinate.
func parseLegacyComments(data []byte) (map[string][]Comment, error) {
	s := xmltok.NewScanner(data)
	out := map[string][]Comment{}

	var authors []string
	var order []string

	var curRef string
	var curAuthorIdx = -1
	var textBuf strings.Builder
	inAuthor := false
	inText := false

	for {
		raw, isTag, ok := s.Next()
		if !ok {
			break
		}
		if !isTag {
			if inAuthor || inText {
				textBuf.WriteString(xmltok.Unescape(raw))
			}
			continue
		}
		tag := xmltok.ParseTag(raw)
		switch tag.Name {
		case "author":
			if tag.Closing {
				authors = append(authors, textBuf.String())
				textBuf.Reset()
				inAuthor = false
			} else if !tag.SelfClosing {
				inAuthor = true
			} else {
				authors = append(authors, "")
			}
		case "comment":
			if tag.Closing {
				author := ""
				if curAuthorIdx >= 0 && curAuthorIdx < len(authors) {
					author = authors[curAuthorIdx]
				}
				out[curRef] = append(out[curRef], Comment{
					Author: author,
					Text:   textBuf.String(),
				})
				order = append(order, curRef)
				textBuf.Reset()
				curRef = ""
				curAuthorIdx = -1
			} else {
				curRef, _ = tag.Attr("ref")
				if v, ok := tag.Attr("authorId"); ok {
					curAuthorIdx, _ = strconv.Atoi(v)
				}
			}
		case "text":
			// <text><r><t>...</t></r></text> or a bare <t> child; either
			// way every intervening text run belongs to this comment.
		case "t":
			if tag.Closing {
				inText = false
			} else if !tag.SelfClosing {
				inText = true
			}
		}
	}
	_ = order
	return out, nil
}

// parsePeople reads xl/persons/person.xml (the threaded-comment author
// roster), mapping person id (a GUID) to display name.
func parsePeople(data []byte) map[string]string {
	s := xmltok.NewScanner(data)
	people := map[string]string{}
	for {
		raw, isTag, ok := s.Next()
		if !ok {
			break
		}
		if !isTag {
			continue
		}
		tag := xmltok.ParseTag(raw)
		if tag.Name == "person" && !tag.Closing {
			id, _ := tag.Attr("id")
			name, _ := tag.Attr("displayName")
			if id != "" {
				people[id] = name
			}
		}
	}
	return people
}

// parseThreadedComments reads a threadedComment<N>.xml part. Only root
// comments (no parentId) are retained per cell; spec.md's reconciliation
// rules operate on a flat per-cell list, and reply threading beyond the
// root is out of this data model's scope.
func parseThreadedComments(data []byte, people map[string]string) map[string][]Comment {
	s := xmltok.NewScanner(data)
	out := map[string][]Comment{}

	var curRef, curID, curPersonID, curParentID string
	var textBuf strings.Builder
	inText := false

	flush := func() {
		if curRef == "" || curParentID != "" {
			return
		}
		author := people[curPersonID]
		out[curRef] = append(out[curRef], Comment{
			Author:     author,
			Text:       textBuf.String(),
			ThreadGUID: curID,
		})
	}

	for {
		raw, isTag, ok := s.Next()
		if !ok {
			break
		}
		if !isTag {
			if inText {
				textBuf.WriteString(xmltok.Unescape(raw))
			}
			continue
		}
		tag := xmltok.ParseTag(raw)
		switch tag.Name {
		case "threadedComment":
			if tag.Closing {
				flush()
				curRef, curID, curPersonID, curParentID = "", "", "", ""
				textBuf.Reset()
			} else {
				curRef, _ = tag.Attr("ref")
				curID, _ = tag.Attr("id")
				curPersonID, _ = tag.Attr("personId")
				curParentID, _ = tag.Attr("parentId")
			}
		case "text":
			if tag.Closing {
				inText = false
			} else if !tag.SelfClosing {
				inText = true
			}
		}
	}
	return out
}

// applyComments writes resolved per-cell comment lists onto sheet cells,
// following spec.md §4.10's reconciliation rules: threaded supersedes
// legacy outright; threaded never coalesces with pre-existing legacy data.
// A cell holds a single Comment: only the first entry of a cell's list is
// kept, and further comments on the same cell are dropped.
func applyComments(sheet *Sheet, legacy, threaded map[string][]Comment) {
	for ref, cs := range legacy {
		if _, hasThreaded := threaded[ref]; hasThreaded {
			continue
		}
		setCellComments(sheet, ref, cs)
	}
	for ref, cs := range threaded {
		setCellComments(sheet, ref, cs)
	}
}

func setCellComments(sheet *Sheet, ref string, cs []Comment) {
	if len(cs) == 0 {
		return
	}
	addr, ok := cellref.DecodeCell(ref)
	if !ok {
		return
	}
	row := sheet.EnsureRow(int(addr.Row) + 1)
	cell := row.EnsureCell(int(addr.Col) + 1)
	c := cs[0]
	cell.Comment = &c
}

// writeVMLDrawing renders the VML drawing part anchoring legacy comment
// boxes to their cells. VML's attribute/namespace shape is fixed Office
// boilerplate (o:/x:/v: prefixes predate XML namespaces proper), so unlike
// the other parts here it's built from a literal template rather than via
// the xmltok/srw writer machinery.
func writeVMLDrawing(sheet *Sheet) []byte {
	var b strings.Builder
	b.WriteString(`<xml xmlns:v="urn:schemas-microsoft-com:vml" xmlns:o="urn:schemas-microsoft-com:office:office" xmlns:x="urn:schemas-microsoft-com:office:excel">` + "\n")
	b.WriteString(`<o:shapelayout v:ext="edit"><o:idmap v:ext="edit" data="1"/></o:shapelayout>` + "\n")
	b.WriteString(`<v:shapetype id="_xlbook_comment" coordsize="21600,21600" o:spt="202" path="m,l,21600r21600,l21600,xe"><v:stroke joinstyle="miter"/><v:path gradientshapeok="t" o:connecttype="rect"/></v:shapetype>` + "\n")

	id := 1024
	for _, row := range sheet.Rows {
		for _, cell := range row.Cells {
			if cell.Comment == nil || cell.Comment.ThreadGUID != "" {
				continue
			}
			id++
			addr, ok := cellref.DecodeCell(cell.Coord())
			if !ok {
				continue
			}
			fmt.Fprintf(&b, `<v:shape id="_x0000_s%d" type="#_xlbook_comment" style="position:absolute;visibility:hidden" o:insetmode="auto"><v:fill color2="#ffffe1"/><v:shadow on="t" color="black" obscured="t"/><x:ClientData ObjectType="Note"><x:Row>%d</x:Row><x:Column>%d</x:Column></x:ClientData></v:shape>`+"\n",
				id, addr.Row, addr.Col)
		}
	}
	b.WriteString(`</xml>`)
	return []byte(b.String())
}

// writeLegacyComments renders a comments<N>.xml part for every cell on
// sheet carrying a non-threaded comment.
func writeLegacyComments(sheet *Sheet) []byte {
	type entry struct {
		ref string
		c   Comment
	}
	var entries []entry
	authorIdx := map[string]int{}
	var authors []string

	for _, row := range sheet.Rows {
		for _, cell := range row.Cells {
			if cell.Comment == nil || cell.Comment.ThreadGUID != "" {
				continue
			}
			if _, ok := authorIdx[cell.Comment.Author]; !ok {
				authorIdx[cell.Comment.Author] = len(authors)
				authors = append(authors, cell.Comment.Author)
			}
			entries = append(entries, entry{ref: cell.Coord(), c: *cell.Comment})
		}
	}
	if len(entries) == 0 {
		return nil
	}

	bb := &strings.Builder{}
	x := srwxml.NewWriter(bb, srwxml.WriterConfig{Indent: srwxml.Indent2Spaces})
	x.XmlStandaloneDecl()
	x.OTag("comments")
	x.Attr("xmlns", "http://schemas.openxmlformats.org/spreadsheetml/2006/main")

	x.OTag("+authors")
	for _, a := range authors {
		x.OTag("++author").Write(a).CTag()
	}
	x.CTag()

	x.OTag("+commentList")
	for _, e := range entries {
		x.OTag("++comment")
		x.Attr("ref", e.ref)
		x.Attr("authorId", authorIdx[e.c.Author])
		x.OTag("+++text")
		x.OTag("++++r")
		x.OTag("+++++t")
		if xmltok.NeedsPreserve(e.c.Text) {
			x.Attr("xml:space", "preserve")
		}
		x.Write(e.c.Text)
		x.CTag()
		x.CTag()
		x.CTag()
		x.CTag()
	}
	x.CTag()
	x.CTag()
	return []byte(bb.String())
}

// writeThreadedComments renders the threadedComment<N>.xml and people.xml
// parts for every cell on sheet carrying a threaded comment. Thread IDs
// follow spec.md's "deterministic GUID template seeded by a per-write
// counter" instruction: a namespaced UUIDv5 derived from the sheet name
// and a monotonically increasing ordinal, so repeated writes of the same
// unchanged workbook reproduce identical ids.
func writeThreadedComments(sheetName string, sheet *Sheet) (commentsXML, peopleXML []byte) {
	type entry struct {
		ref string
		c   Comment
	}
	var entries []entry
	personIdx := map[string]string{} // author -> person GUID
	var people []string

	ensurePerson := func(author string) string {
		if author == "" {
			author = "SheetJ5"
		}
		if id, ok := personIdx[author]; ok {
			return id
		}
		id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(sheetName+"/person/"+author)).String()
		personIdx[author] = id
		people = append(people, author)
		return id
	}

	for _, row := range sheet.Rows {
		for _, cell := range row.Cells {
			if cell.Comment == nil || cell.Comment.ThreadGUID == "" {
				continue
			}
			entries = append(entries, entry{ref: cell.Coord(), c: *cell.Comment})
		}
	}
	if len(entries) == 0 {
		return nil, nil
	}
	for _, e := range entries {
		ensurePerson(e.c.Author)
	}
	// A threaded sheet always gets at least one author, defaulting to the
	// synthetic "SheetJ5" identity per spec.md §4.10.
	if len(entries) > 0 && len(people) == 0 {
		ensurePerson("")
	}

	bb := &strings.Builder{}
	x := srwxml.NewWriter(bb, srwxml.WriterConfig{Indent: srwxml.Indent2Spaces})
	x.XmlStandaloneDecl()
	x.OTag("ThreadedComments")
	x.Attr("xmlns", "http://schemas.microsoft.com/office/spreadsheetml/2018/threadedcomments")
	for i, e := range entries {
		id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s/comment/%d", sheetName, i))).String()
		x.OTag("+threadedComment")
		x.Attr("ref", e.ref)
		x.Attr("id", "{"+id+"}")
		x.Attr("personId", "{"+ensurePerson(e.c.Author)+"}")
		x.OTag("++text").Write(e.c.Text).CTag()
		x.CTag()
	}
	x.CTag()
	commentsXML = []byte(bb.String())

	pb := &strings.Builder{}
	px := srwxml.NewWriter(pb, srwxml.WriterConfig{Indent: srwxml.Indent2Spaces})
	px.XmlStandaloneDecl()
	px.OTag("personList")
	px.Attr("xmlns", "http://schemas.microsoft.com/office/spreadsheetml/2018/threadedcomments")
	for _, author := range people {
		px.OTag("+person")
		px.Attr("displayName", author)
		px.Attr("id", "{"+personIdx[author]+"}")
		px.Attr("userId", "")
		px.Attr("providerId", "None")
		px.CTag()
	}
	px.CTag()
	peopleXML = []byte(pb.String())
	return commentsXML, peopleXML
}
