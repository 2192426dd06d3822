package stubs

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"zenumljpg/src/domain/entities"
)

type DiagramStub struct {
	diagram entities.Diagram
}

func NewDiagramStub() DiagramStub {
	now := time.Now().UTC()

	diagram := entities.Diagram{
		ID:         gofakeit.UUID(),
		Title:      "Generated ZenUML Diagram",
		SourceText: "Client -> Server\nServer -> Database\n",
		Image:      []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10},
		OwnerID:    gofakeit.UUID(),
		CreatedAt:  now,
	}

	return DiagramStub{diagram: diagram}
}

func (ds DiagramStub) WithID(id string) DiagramStub {
	ds.diagram.ID = id
	return ds
}

func (ds DiagramStub) WithSourceText(sourceText string) DiagramStub {
	ds.diagram.SourceText = sourceText
	return ds
}

func (ds DiagramStub) WithImage(image []byte) DiagramStub {
	ds.diagram.Image = image
	return ds
}

func (ds DiagramStub) WithOwnerID(ownerID string) DiagramStub {
	ds.diagram.OwnerID = ownerID
	return ds
}

func (ds DiagramStub) Get() entities.Diagram {
	return ds.diagram
}
