package xl

import (
	"strconv"
	"strings"

	"github.com/adnsv/xlbook/internal/xmltok"
)

// workbookPart is the parsed xl/workbook.xml: sheet list (name, relationship
// id, hidden state), defined names, and workbook-level properties.
type workbookPart struct {
	date1904 bool
	codeName string
	sheets   []workbookSheetEntry
	names    []definedName
}

type workbookSheetEntry struct {
	name    string
	rid     string
	sheetID int
	hidden  bool
}

type definedName struct {
	name     string
	refersTo string
	sheetIdx int // -1 for workbook-scoped
	hidden   bool
	comment  string
}

func parseWorkbookPart(data []byte) (*workbookPart, error) {
	wp := &workbookPart{}
	s := xmltok.NewScanner(data)
	var curName *definedName
	var textBuf strings.Builder
	inDefinedName := false

	for {
		raw, isTag, ok := s.Next()
		if !ok {
			break
		}
		if !isTag {
			if inDefinedName {
				textBuf.WriteString(xmltok.Unescape(raw))
			}
			continue
		}
		tag := xmltok.ParseTag(raw)
		switch tag.Name {
		case "workbookPr":
			if v, ok := tag.Attr("date1904"); ok {
				wp.date1904 = v == "1" || strings.EqualFold(v, "true")
			}
			if v, ok := tag.Attr("codeName"); ok {
				wp.codeName = v
			}
		case "sheet":
			if tag.Closing {
				continue
			}
			entry := workbookSheetEntry{}
			if v, ok := tag.Attr("name"); ok {
				entry.name = v
			}
			if v, ok := tag.Attr("r:id"); ok {
				entry.rid = v
			} else if v, ok := tag.Attr("id"); ok {
				entry.rid = v
			}
			if v, ok := tag.Attr("sheetId"); ok {
				entry.sheetID, _ = strconv.Atoi(v)
			}
			if v, ok := tag.Attr("state"); ok {
				entry.hidden = v == "hidden" || v == "veryHidden"
			}
			wp.sheets = append(wp.sheets, entry)
		case "definedName":
			if tag.Closing {
				if curName != nil {
					curName.refersTo = textBuf.String()
					wp.names = append(wp.names, *curName)
					curName = nil
				}
				inDefinedName = false
				textBuf.Reset()
				continue
			}
			dn := definedName{sheetIdx: -1}
			if v, ok := tag.Attr("name"); ok {
				dn.name = v
			}
			if v, ok := tag.Attr("localSheetId"); ok {
				if n, err := strconv.Atoi(v); err == nil {
					dn.sheetIdx = n
				}
			}
			if v, ok := tag.Attr("hidden"); ok {
				dn.hidden = v == "1" || strings.EqualFold(v, "true")
			}
			if v, ok := tag.Attr("comment"); ok {
				dn.comment = v
			}
			curName = &dn
			inDefinedName = true
			textBuf.Reset()
		}
	}
	return wp, nil
}
