// Package opc implements the Open Packaging Conventions layer shared by
// every OOXML part: the Content-Types registry, the per-part Relationships
// graph, and core/extended/custom document properties (spec.md §4.5).
//
// Read-side parsing of these simple, fully-schematized, single-level parts
// uses encoding/xml (stdlib), matching TsubasaBE/go-xlsb's internal/rels
// precedent; write-side emission uses github.com/adnsv/srw/xml, the
// teacher's own writer, kept verbatim in spirit from xl/writer.go.
package opc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"sort"

	srwxml "github.com/adnsv/srw/xml"
)

// ErrUnknownNamespace is returned when a root element declares a namespace
// this package does not recognize.
var ErrUnknownNamespace = errors.New("opc: unknown namespace")

// ContentTypes is the parsed [Content_Types].xml part.
type ContentTypes struct {
	Defaults  map[string]string // file extension -> content type
	Overrides map[string]string // absolute part name -> content type
}

type ctXML struct {
	XMLName  xml.Name `xml:"Types"`
	Xmlns    string   `xml:"xmlns,attr"`
	Default  []ctDefault
	Override []ctOverride
}

type ctDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type ctOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

const contentTypesNS = "http://schemas.openxmlformats.org/package/2006/content-types"

// ParseContentTypes parses the raw bytes of [Content_Types].xml.
func ParseContentTypes(data []byte) (*ContentTypes, error) {
	var raw ctXML
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("opc: parse content types: %w", err)
	}
	if raw.Xmlns != "" && raw.Xmlns != contentTypesNS {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNamespace, raw.Xmlns)
	}
	ct := &ContentTypes{Defaults: map[string]string{}, Overrides: map[string]string{}}
	for _, d := range raw.Default {
		ct.Defaults[d.Extension] = d.ContentType
	}
	for _, o := range raw.Override {
		ct.Overrides[o.PartName] = o.ContentType
	}
	return ct, nil
}

// defaultCategoryOrder fixes a deterministic emission order for overrides,
// grouped by semantic kind, per spec.md §4.5.
var defaultCategoryOrder = []string{
	"workbook", "sheet", "chart", "theme", "sharedStrings", "styles",
	"core-properties", "extended-properties", "custom-properties", "other",
}

// Write renders [Content_Types].xml. categoryOf classifies an override part
// path into one of defaultCategoryOrder's buckets; unknown parts sort last
// under "other".
func (ct *ContentTypes) Write(categoryOf func(partName string) string) []byte {
	bb := &bytes.Buffer{}
	x := srwxml.NewWriter(bb, srwxml.WriterConfig{Indent: srwxml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("Types")
	x.Attr("xmlns", contentTypesNS)

	exts := make([]string, 0, len(ct.Defaults))
	for e := range ct.Defaults {
		exts = append(exts, e)
	}
	sort.Strings(exts)
	for _, e := range exts {
		x.OTag("+Default").Attr("Extension", e).Attr("ContentType", ct.Defaults[e]).CTag()
	}

	buckets := map[string][]string{}
	for p := range ct.Overrides {
		cat := "other"
		if categoryOf != nil {
			c := categoryOf(p)
			for _, known := range defaultCategoryOrder {
				if c == known {
					cat = c
					break
				}
			}
		}
		buckets[cat] = append(buckets[cat], p)
	}
	for _, cat := range defaultCategoryOrder {
		parts := buckets[cat]
		sort.Strings(parts)
		for _, p := range parts {
			x.OTag("+Override").Attr("PartName", p).Attr("ContentType", ct.Overrides[p]).CTag()
		}
	}

	x.CTag()
	return bb.Bytes()
}
