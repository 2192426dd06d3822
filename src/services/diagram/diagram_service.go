package diagram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"zenumljpg/src/domain"
	"zenumljpg/src/domain/entities"
	"zenumljpg/src/services/events"
)

// Repository is the durable-store collaborator for diagrams. The pgx-backed
// implementation (and its cached decorator) live in src/repositories; tests
// plug in-memory fakes.
type Repository interface {
	Create(ctx context.Context, diagram entities.Diagram) error
	FindByID(ctx context.Context, id string) (entities.Diagram, error)
}

// Extractor produces the node/edge graph from raw ZenUML source.
type Extractor interface {
	Extract(source string) *domain.Graph
}

// Renderer turns a graph into JPEG bytes.
type Renderer interface {
	RenderJPEG(ctx context.Context, g *domain.Graph) ([]byte, error)
}

type DiagramService struct {
	logger            *slog.Logger
	extractor         Extractor
	renderer          Renderer
	diagramRepository Repository
	eventPublisher    *events.DomainEventPublisher
	publicBaseURL     string
}

func NewDiagramService(
	logger *slog.Logger,
	extractor Extractor,
	renderer Renderer,
	diagramRepository Repository,
	eventPublisher *events.DomainEventPublisher,
	publicBaseURL string,
) *DiagramService {
	return &DiagramService{
		logger:            logger,
		extractor:         extractor,
		renderer:          renderer,
		diagramRepository: diagramRepository,
		eventPublisher:    eventPublisher,
		publicBaseURL:     publicBaseURL,
	}
}

// downloadURL builds the public URL for a diagram's JPEG. It points at the
// download endpoint served by this process, so the URL actually resolves to
// the stored bytes.
func (ds *DiagramService) downloadURL(diagramID string) string {
	base := strings.TrimRight(ds.publicBaseURL, "/")
	return fmt.Sprintf("%s/diagram/download/%s.jpg", base, diagramID)
}
