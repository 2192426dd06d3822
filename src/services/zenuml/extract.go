// Package zenuml turns raw ZenUML source into the node/edge graph consumed by
// rendering.
//
// The extraction strategy is a deliberately permissive line scan, not a
// grammar for the ZenUML language: a line contributes an edge when it contains
// exactly one "->" marker, and everything else (participant declarations,
// control blocks, malformed lines) is silently skipped. A real parser can
// replace this as long as it keeps producing domain.Graph.
package zenuml

import (
	"strings"

	"zenumljpg/src/domain"
)

// EdgeMarker separates the source label from the target label on a line.
const EdgeMarker = "->"

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract scans the source line by line. It never fails: empty input and
// input without a single well-formed line both yield an empty graph.
func (e *Extractor) Extract(source string) *domain.Graph {
	graph := domain.NewGraph()

	for _, line := range strings.Split(source, "\n") {
		if strings.Count(line, EdgeMarker) != 1 {
			continue
		}

		parts := strings.SplitN(line, EdgeMarker, 2)
		from := strings.TrimSpace(parts[0])
		to := strings.TrimSpace(parts[1])

		graph.AddEdge(from, to)
	}

	return graph
}
