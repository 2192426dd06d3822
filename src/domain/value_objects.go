package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDiagramNotFound     = errors.New("diagram not found")
	ErrDiagramImageMissing = errors.New("diagram image not available")

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("a user with the given email already exists")
	ErrInvalidCredentials = errors.New("incorrect email or password")

	ErrUnavailableServer = errors.New("Oops, something unexpected happened. Please try again later.")
)

// ############################################################
// ############ CONVERSION PIPELINE FAILURES ##################
// ############################################################

// ConvertStage identifies which step of the conversion pipeline failed.
type ConvertStage string

const (
	StageExtract ConvertStage = "extract"
	StageRender  ConvertStage = "render"
	StagePersist ConvertStage = "persist"
)

// ConvertError tags a pipeline failure with the stage it happened in, so the
// boundary can report render failures distinctly from persistence failures
// instead of collapsing everything into one opaque message.
type ConvertError struct {
	Stage ConvertStage
	Cause error
}

func (e *ConvertError) Error() string {
	return fmt.Sprintf("convert %s failed: %v", e.Stage, e.Cause)
}

func (e *ConvertError) Unwrap() error {
	return e.Cause
}

func NewConvertError(stage ConvertStage, cause error) *ConvertError {
	return &ConvertError{Stage: stage, Cause: cause}
}

// ############################################################
// ############### EXTRACTED GRAPH (IN-MEMORY) ################
// ############################################################

// Edge is a single directed relation between two node labels.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph is the intermediate representation between extraction and rendering:
// a deduplicated node set plus an ordered edge list. Edges are not
// deduplicated, and a label mentioned by an edge is implicitly a node.
type Graph struct {
	Nodes []string `json:"nodes"`
	Edges []Edge   `json:"edges"`

	seen map[string]struct{}
}

func NewGraph() *Graph {
	return &Graph{seen: make(map[string]struct{})}
}

// AddNode records the label once, keeping first-seen order.
func (g *Graph) AddNode(label string) {
	if g.seen == nil {
		g.seen = make(map[string]struct{})
	}
	if _, ok := g.seen[label]; ok {
		return
	}
	g.seen[label] = struct{}{}
	g.Nodes = append(g.Nodes, label)
}

// AddEdge appends the pair and implicitly introduces both endpoints as nodes.
func (g *Graph) AddEdge(source, target string) {
	g.AddNode(source)
	g.AddNode(target)
	g.Edges = append(g.Edges, Edge{Source: source, Target: target})
}

func (g *Graph) HasNode(label string) bool {
	_, ok := g.seen[label]
	return ok
}

func (g *Graph) IsEmpty() bool {
	return len(g.Nodes) == 0 && len(g.Edges) == 0
}

// ############################################################
// ################ AUTHENTICATED PRINCIPAL ###################
// ############################################################

// Principal is the authenticated identity attached to a request. Convert
// requires one; there is no placeholder owner.
type Principal struct {
	UserID string
	Email  string
}
