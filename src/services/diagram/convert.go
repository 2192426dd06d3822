package diagram

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"

	"zenumljpg/src/domain"
	"zenumljpg/src/domain/entities"
)

const generatedTitle = "Generated ZenUML Diagram"

type ConvertOutput struct {
	DiagramID string
	// DiagramData is the rendered JPEG, base64-encoded for transport.
	DiagramData string
}

// Convert runs the full pipeline: extract -> render -> persist. Persistence is
// the last step, so a failure anywhere leaves zero records behind. Failures
// come back as *domain.ConvertError tagged with the stage that broke.
//
// Extraction itself never fails: source without a single well-formed edge line
// converts successfully into a diagram with an empty rendered image.
func (ds *DiagramService) Convert(ctx context.Context, sourceText string, principal domain.Principal) (ConvertOutput, error) {
	graph := ds.extractor.Extract(sourceText)

	image, err := ds.renderer.RenderJPEG(ctx, graph)
	if err != nil {
		return ConvertOutput{}, domain.NewConvertError(domain.StageRender, err)
	}

	diagram := entities.Diagram{
		ID:         uuid.NewString(),
		Title:      generatedTitle,
		SourceText: sourceText,
		Image:      image,
		OwnerID:    principal.UserID,
		CreatedAt:  time.Now().UTC(),
	}

	if err := ds.diagramRepository.Create(ctx, diagram); err != nil {
		return ConvertOutput{}, domain.NewConvertError(domain.StagePersist, fmt.Errorf("DiagramService.Convert - failed to persist diagram: %w", err))
	}

	ds.logger.Info("Diagram converted",
		"diagram_id", diagram.ID,
		"owner_id", diagram.OwnerID,
		"nodes", len(graph.Nodes),
		"edges", len(graph.Edges),
		"file_size", len(image))

	if ds.eventPublisher.Enabled() {
		// Best effort; a broker outage must not fail the conversion.
		if err := ds.eventPublisher.PublishDiagramConverted(ctx, diagram); err != nil {
			ds.logger.Warn("Failed to publish diagram.converted event", "diagram_id", diagram.ID, "error", err)
		}
	}

	return ConvertOutput{
		DiagramID:   diagram.ID,
		DiagramData: base64.StdEncoding.EncodeToString(image),
	}, nil
}
