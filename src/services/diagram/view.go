package diagram

import (
	"context"
	"fmt"
	"time"
)

type ViewOutput struct {
	DiagramID  string
	Title      string
	CreatedAt  string // ISO-8601
	ImageURL   string
	SourceText string
}

// View reads a diagram and shapes the display payload. The stored source text
// comes back verbatim.
func (ds *DiagramService) View(ctx context.Context, diagramID string) (ViewOutput, error) {
	diagram, err := ds.diagramRepository.FindByID(ctx, diagramID)
	if err != nil {
		return ViewOutput{}, fmt.Errorf("DiagramService.View - %w", err)
	}

	return ViewOutput{
		DiagramID:  diagram.ID,
		Title:      diagram.Title,
		CreatedAt:  diagram.CreatedAt.UTC().Format(time.RFC3339),
		ImageURL:   ds.downloadURL(diagram.ID),
		SourceText: diagram.SourceText,
	}, nil
}
