package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"zenumljpg/src/domain/entities"
	"zenumljpg/src/infra/redis"
)

// CachedDiagramRepository is a read-through cache over DiagramRepository.
// Diagrams are immutable after creation, so cached records never need
// invalidation and reads on the same identifier are safe to serve from cache.
type CachedDiagramRepository struct {
	diagramRepository *DiagramRepository
	redisClient       *redis.RedisClient
}

func NewCachedDiagramRepository(
	diagramRepository *DiagramRepository,
	redisClient *redis.RedisClient,
) *CachedDiagramRepository {
	return &CachedDiagramRepository{
		diagramRepository: diagramRepository,
		redisClient:       redisClient,
	}
}

func (r *CachedDiagramRepository) Create(ctx context.Context, diagram entities.Diagram) error {
	return r.diagramRepository.Create(ctx, diagram)
}

func (r *CachedDiagramRepository) FindByID(ctx context.Context, id string) (entities.Diagram, error) {
	if r.redisClient == nil {
		return r.diagramRepository.FindByID(ctx, id)
	}

	cacheKey := r.cacheKey(id)

	cached, found, err := r.getFromCache(ctx, cacheKey)
	if found && err == nil {
		return cached, nil
	}

	if err != nil {
		// Cache errors degrade to Postgres
		log.Printf("Cache error for key %s: %v", cacheKey, err)
	}

	diagram, err := r.diagramRepository.FindByID(ctx, id)
	if err != nil {
		return entities.Diagram{}, err
	}

	go func() {
		ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		r.setInCache(ctxWithTimeout, cacheKey, diagram)
	}()

	return diagram, nil
}

func (r *CachedDiagramRepository) cacheKey(id string) string {
	return fmt.Sprintf("diagram:record:%s", id)
}

func (r *CachedDiagramRepository) getFromCache(ctx context.Context, cacheKey string) (entities.Diagram, bool, error) {
	raw, found, err := r.redisClient.GetKey(ctx, cacheKey)
	if err != nil || !found {
		return entities.Diagram{}, false, err
	}

	var diagram entities.Diagram
	if err := json.Unmarshal([]byte(raw), &diagram); err != nil {
		return entities.Diagram{}, false, fmt.Errorf("corrupted cache entry: %w", err)
	}

	return diagram, true, nil
}

func (r *CachedDiagramRepository) setInCache(ctx context.Context, cacheKey string, diagram entities.Diagram) {
	raw, err := json.Marshal(diagram)
	if err != nil {
		log.Printf("Failed to marshal diagram %s for cache: %v", diagram.ID, err)
		return
	}

	if err := r.redisClient.SetKey(ctx, cacheKey, string(raw)); err != nil {
		log.Printf("Failed to cache diagram %s: %v", diagram.ID, err)
	}
}
