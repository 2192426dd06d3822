package repositories

import (
	"context"
	"fmt"
	"zenumljpg/src/domain"
	"zenumljpg/src/domain/entities"
	"zenumljpg/src/infra/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DiagramRepository struct {
	pool *pgxpool.Pool
}

func NewDiagramRepository(pool *pgxpool.Pool) *DiagramRepository {
	return &DiagramRepository{pool: pool}
}

func (dr *DiagramRepository) Create(ctx context.Context, diagram entities.Diagram) error {
	query := `
		INSERT INTO diagrams (id, title, source_text, image, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`

	_, err := dr.pool.Exec(ctx, query,
		diagram.ID,
		diagram.Title,
		diagram.SourceText,
		diagram.Image,
		diagram.OwnerID,
		diagram.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("DiagramRepository.Create - insert failed: %w", err)
	}

	return nil
}

func (dr *DiagramRepository) FindByID(ctx context.Context, id string) (entities.Diagram, error) {
	query := `
		SELECT id, title, source_text, image, owner_id, created_at
		FROM diagrams
		WHERE id = $1;
	`

	var diagram entities.Diagram
	err := dr.pool.QueryRow(ctx, query, id).Scan(
		&diagram.ID,
		&diagram.Title,
		&diagram.SourceText,
		&diagram.Image,
		&diagram.OwnerID,
		&diagram.CreatedAt,
	)
	if postgres.IsNoRows(err) {
		return entities.Diagram{}, fmt.Errorf("DiagramRepository.FindByID - id %s: %w", id, domain.ErrDiagramNotFound)
	}
	if err != nil {
		return entities.Diagram{}, fmt.Errorf("DiagramRepository.FindByID - query failed: %w", err)
	}

	return diagram, nil
}
