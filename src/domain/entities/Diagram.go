package entities

import "time"

// Diagram is a converted ZenUML document. Records are created exactly once by
// the convert operation and never updated afterwards; the source text is
// stored verbatim so view returns it byte-for-byte.
type Diagram struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	SourceText string    `json:"source_text"`
	Image      []byte    `json:"image"`
	OwnerID    string    `json:"owner_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// HasImage reports whether rendered bytes are present. Current design only
// persists after a successful render, but the export path still guards on it.
func (d Diagram) HasImage() bool {
	return len(d.Image) > 0
}
