package opc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"

	srwxml "github.com/adnsv/srw/xml"
)

// CoreProps holds the Dublin-Core-style core document properties
// (docProps/core.xml).
type CoreProps struct {
	Title          string
	Subject        string
	Creator        string
	Keywords       string
	Description    string
	LastModifiedBy string
	Revision       string
	Category       string
	Created        *time.Time
	Modified       *time.Time
}

type corePropsXML struct {
	XMLName        xml.Name   `xml:"coreProperties"`
	Title          string     `xml:"title"`
	Subject        string     `xml:"subject"`
	Creator        string     `xml:"creator"`
	Keywords       string     `xml:"keywords"`
	Description    string     `xml:"description"`
	LastModifiedBy string     `xml:"lastModifiedBy"`
	Revision       string     `xml:"revision"`
	Category       string     `xml:"category"`
	Created        *w3cdtfXML `xml:"created"`
	Modified       *w3cdtfXML `xml:"modified"`
}

type w3cdtfXML struct {
	Value string `xml:",chardata"`
}

const w3cdtfLayout = "2006-01-02T15:04:05Z"

// ParseCoreProps parses docProps/core.xml.
func ParseCoreProps(data []byte) (*CoreProps, error) {
	var raw corePropsXML
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("opc: parse core properties: %w", err)
	}
	cp := &CoreProps{
		Title: raw.Title, Subject: raw.Subject, Creator: raw.Creator,
		Keywords: raw.Keywords, Description: raw.Description,
		LastModifiedBy: raw.LastModifiedBy, Revision: raw.Revision, Category: raw.Category,
	}
	if raw.Created != nil {
		if t, err := time.Parse(w3cdtfLayout, raw.Created.Value); err == nil {
			cp.Created = &t
		}
	}
	if raw.Modified != nil {
		if t, err := time.Parse(w3cdtfLayout, raw.Modified.Value); err == nil {
			cp.Modified = &t
		}
	}
	return cp, nil
}

// Write renders docProps/core.xml.
func (cp *CoreProps) Write() []byte {
	bb := &bytes.Buffer{}
	x := srwxml.NewWriter(bb, srwxml.WriterConfig{Indent: srwxml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("cp:coreProperties")
	x.Attr("xmlns:cp", "http://schemas.openxmlformats.org/package/2006/metadata/core-properties")
	x.Attr("xmlns:dc", "http://purl.org/dc/elements/1.1/")
	x.Attr("xmlns:dcterms", "http://purl.org/dc/terms/")
	x.Attr("xmlns:dcmitype", "http://purl.org/dc/dcmitype/")
	x.Attr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance")

	if cp.Title != "" {
		x.OTag("+dc:title").Write(cp.Title).CTag()
	}
	if cp.Subject != "" {
		x.OTag("+dc:subject").Write(cp.Subject).CTag()
	}
	if cp.Creator != "" {
		x.OTag("+dc:creator").Write(cp.Creator).CTag()
	}
	if cp.Keywords != "" {
		x.OTag("+cp:keywords").Write(cp.Keywords).CTag()
	}
	if cp.Description != "" {
		x.OTag("+dc:description").Write(cp.Description).CTag()
	}
	if cp.Created != nil {
		x.OTag("+dcterms:created").Attr("xsi:type", "dcterms:W3CDTF").Write(cp.Created.UTC().Format(w3cdtfLayout)).CTag()
	}
	if cp.LastModifiedBy != "" {
		x.OTag("+cp:lastModifiedBy").Write(cp.LastModifiedBy).CTag()
	}
	if cp.Modified != nil {
		x.OTag("+dcterms:modified").Attr("xsi:type", "dcterms:W3CDTF").Write(cp.Modified.UTC().Format(w3cdtfLayout)).CTag()
	}
	if cp.Revision != "" {
		x.OTag("+cp:revision").Write(cp.Revision).CTag()
	}
	if cp.Category != "" {
		x.OTag("+cp:category").Write(cp.Category).CTag()
	}

	x.CTag()
	return bb.Bytes()
}

// ExtendedProps holds docProps/app.xml: Application, HeadingPairs, and
// TitlesOfParts.
type ExtendedProps struct {
	Application   string
	SheetCount    int
	TitlesOfParts []string
}

// Write renders docProps/app.xml. The engine always declares itself as the
// Application, computes HeadingPairs = ["Worksheets", n], and emits the
// sheet names as TitlesOfParts, per spec.md §4.5.
func (ep *ExtendedProps) Write() []byte {
	bb := &bytes.Buffer{}
	x := srwxml.NewWriter(bb, srwxml.WriterConfig{Indent: srwxml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("Properties")
	x.Attr("xmlns", "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties")
	x.Attr("xmlns:vt", "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes")

	app := ep.Application
	if app == "" {
		app = "xlbook"
	}
	x.OTag("+Application").Write(app).CTag()

	x.OTag("+HeadingPairs")
	x.OTag("vt:vector").Attr("size", 2).Attr("baseType", "variant")
	x.OTag("vt:variant")
	x.OTag("vt:lpstr").Write("Worksheets").CTag()
	x.CTag()
	x.OTag("vt:variant")
	x.OTag("vt:i4").Write(ep.SheetCount).CTag()
	x.CTag()
	x.CTag() // vt:vector
	x.CTag() // HeadingPairs

	x.OTag("+TitlesOfParts")
	x.OTag("vt:vector").Attr("size", len(ep.TitlesOfParts)).Attr("baseType", "lpstr")
	for _, name := range ep.TitlesOfParts {
		x.OTag("vt:lpstr").Write(name).CTag()
	}
	x.CTag()
	x.CTag() // TitlesOfParts

	x.CTag()
	return bb.Bytes()
}

// ParseExtendedProps parses docProps/app.xml, extracting TitlesOfParts.
func ParseExtendedProps(data []byte) (*ExtendedProps, error) {
	var raw struct {
		XMLName     xml.Name `xml:"Properties"`
		Application string   `xml:"Application"`
		TitlesOfParts struct {
			Vector struct {
				Lpstr []string `xml:"lpstr"`
			} `xml:"vector"`
		} `xml:"TitlesOfParts"`
	}
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("opc: parse extended properties: %w", err)
	}
	return &ExtendedProps{
		Application:   raw.Application,
		TitlesOfParts: raw.TitlesOfParts.Vector.Lpstr,
		SheetCount:    len(raw.TitlesOfParts.Vector.Lpstr),
	}, nil
}

// CustomProp is one entry of docProps/custom.xml.
type CustomProp struct {
	Name  string
	Value any // string, float64, bool, or time.Time
}

const customPropsFmtID = "{D5CDD505-2E9C-101B-9397-08002B2CF9AE}"

// WriteCustomProps renders docProps/custom.xml.
func WriteCustomProps(props []CustomProp) []byte {
	bb := &bytes.Buffer{}
	x := srwxml.NewWriter(bb, srwxml.WriterConfig{Indent: srwxml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("Properties")
	x.Attr("xmlns", "http://schemas.openxmlformats.org/officeDocument/2006/custom-properties")
	x.Attr("xmlns:vt", "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes")

	for i, p := range props {
		x.OTag("+property")
		x.Attr("fmtid", customPropsFmtID)
		x.Attr("pid", i+2)
		x.Attr("name", p.Name)
		switch v := p.Value.(type) {
		case string:
			x.OTag("vt:lpwstr").Write(v).CTag()
		case float64:
			x.OTag("vt:r8").Write(v).CTag()
		case bool:
			x.OTag("vt:bool").Write(v).CTag()
		case time.Time:
			x.OTag("vt:filetime").Write(v.UTC().Format(w3cdtfLayout)).CTag()
		default:
			x.OTag("vt:lpwstr").Write(fmt.Sprint(v)).CTag()
		}
		x.CTag()
	}

	x.CTag()
	return bb.Bytes()
}
