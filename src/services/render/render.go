// Package render turns an extracted graph into raster image bytes. Layout and
// rasterization are delegated to Graphviz; this package only builds the DOT
// document and requests JPEG output.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"zenumljpg/src/domain"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// ToDOT converts the graph to Graphviz DOT. One node per label, one edge per
// pair; parallel edges and self-loops come out naturally.
func ToDOT(g *domain.Graph) string {
	var buf strings.Builder
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	buf.WriteString("\n")

	for _, label := range g.Nodes {
		fmt.Fprintf(&buf, "  %q;\n", label)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderJPEG lays out the graph and rasterizes it as JPEG. An empty graph is
// not an error; it renders to an empty canvas.
func (r *Renderer) RenderJPEG(ctx context.Context, g *domain.Graph) ([]byte, error) {
	dot := ToDOT(g)

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("render: init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("render: parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, graphviz.JPG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	return buf.Bytes(), nil
}
