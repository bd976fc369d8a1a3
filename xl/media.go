package xl

import (
	"hash/fnv"

	"github.com/google/uuid"
)

// BlobHash is also the seed for the rich-data image pipeline in writer.go
// (writeRichValueRel/writeRichValueStructure/writeRichValueData/writeMetadata).
// That pipeline stays in place, gated on len(w.media) > 0, for the one
// value type this data model does carry media through: SetPicture cells.
// Linked-/stock-media rich value *types* beyond an embedded picture are out
// of scope (images are not named by the cell-algebra data model) and are
// never populated, so writeRichValueTypes is left commented out at its
// call site rather than invoked with an empty type table.
func BlobHash(blob []byte) uuid.UUID {
	h := fnv.New128()
	h.Write(blob)
	uid, _ := uuid.FromBytes(h.Sum([]byte{}))
	return uid
}
