package opc

import (
	"bytes"

	srwxml "github.com/adnsv/srw/xml"
)

const relationshipsNS = "http://schemas.openxmlformats.org/package/2006/relationships"

// Write renders this graph as a "_rels/<name>.rels" part. Returns nil if the
// graph has no relationships -- callers should skip writing the part.
func (g *Graph) Write() []byte {
	if len(g.byID) == 0 {
		return nil
	}
	bb := &bytes.Buffer{}
	x := srwxml.NewWriter(bb, srwxml.WriterConfig{Indent: srwxml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("Relationships")
	x.Attr("xmlns", relationshipsNS)
	for _, id := range g.IDs() {
		r := g.byID[id]
		x.OTag("+Relationship").Attr("Id", id).Attr("Type", r.Type).Attr("Target", r.Target)
		if r.Mode == External {
			x.Attr("TargetMode", "External")
		}
		x.CTag()
	}
	x.CTag()
	return bb.Bytes()
}
