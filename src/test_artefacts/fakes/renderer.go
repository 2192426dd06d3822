package fakes

import (
	"context"

	"zenumljpg/src/domain"
)

// StubRenderer returns fixed bytes instead of invoking the layout engine, and
// records the last graph it was asked to draw.
type StubRenderer struct {
	Output    []byte
	Err       error
	LastGraph *domain.Graph
}

// jpegHeader is enough for tests that only check for JPEG-looking bytes.
var jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0}

func NewStubRenderer() *StubRenderer {
	return &StubRenderer{Output: jpegHeader}
}

func (r *StubRenderer) RenderJPEG(ctx context.Context, g *domain.Graph) ([]byte, error) {
	r.LastGraph = g
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Output, nil
}
