package diagram

import (
	"context"
	"fmt"

	"zenumljpg/src/domain"
)

type ExportOutput struct {
	Status      string
	Message     string
	DownloadURL string
	FileSize    int
	ContentType string
}

// Export validates that the diagram exists and has stored bytes, then
// describes the downloadable artifact. A record without an image is reported
// with the same 404-class error kind as a missing record.
func (ds *DiagramService) Export(ctx context.Context, diagramID string) (ExportOutput, error) {
	diagram, err := ds.diagramRepository.FindByID(ctx, diagramID)
	if err != nil {
		return ExportOutput{}, fmt.Errorf("DiagramService.Export - %w", err)
	}

	if !diagram.HasImage() {
		return ExportOutput{}, fmt.Errorf("DiagramService.Export - id %s: %w", diagramID, domain.ErrDiagramImageMissing)
	}

	return ExportOutput{
		Status:      "success",
		Message:     "Diagram successfully exported to JPG format.",
		DownloadURL: ds.downloadURL(diagram.ID),
		FileSize:    len(diagram.Image),
		ContentType: "image/jpeg",
	}, nil
}

// Image returns the stored JPEG bytes for streaming through the download
// endpoint.
func (ds *DiagramService) Image(ctx context.Context, diagramID string) ([]byte, error) {
	diagram, err := ds.diagramRepository.FindByID(ctx, diagramID)
	if err != nil {
		return nil, fmt.Errorf("DiagramService.Image - %w", err)
	}

	if !diagram.HasImage() {
		return nil, fmt.Errorf("DiagramService.Image - id %s: %w", diagramID, domain.ErrDiagramImageMissing)
	}

	return diagram.Image, nil
}
