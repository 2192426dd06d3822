// Package fakes holds in-memory collaborators so the service suites run
// without Postgres, Redis or a rendering engine.
package fakes

import (
	"context"
	"fmt"
	"sync"
	"time"

	"zenumljpg/src/domain"
	"zenumljpg/src/domain/entities"
)

// InMemoryDiagramRepository implements diagram.Repository over a map.
type InMemoryDiagramRepository struct {
	mu       sync.Mutex
	diagrams map[string]entities.Diagram

	// CreateErr, when set, makes every Create fail with it.
	CreateErr error
}

func NewInMemoryDiagramRepository() *InMemoryDiagramRepository {
	return &InMemoryDiagramRepository{diagrams: make(map[string]entities.Diagram)}
}

func (r *InMemoryDiagramRepository) Create(ctx context.Context, diagram entities.Diagram) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.diagrams[diagram.ID] = diagram
	return nil
}

func (r *InMemoryDiagramRepository) FindByID(ctx context.Context, id string) (entities.Diagram, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	diagram, ok := r.diagrams[id]
	if !ok {
		return entities.Diagram{}, fmt.Errorf("id %s: %w", id, domain.ErrDiagramNotFound)
	}
	return diagram, nil
}

func (r *InMemoryDiagramRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.diagrams)
}

// Put seeds a record directly, bypassing Create.
func (r *InMemoryDiagramRepository) Put(diagram entities.Diagram) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diagrams[diagram.ID] = diagram
}

// InMemoryUserRepository implements auth.UserRepository over a map keyed by
// email, enforcing email uniqueness like the users table does.
type InMemoryUserRepository struct {
	mu      sync.Mutex
	byEmail map[string]entities.User
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{byEmail: make(map[string]entities.User)}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return fmt.Errorf("email %s: %w", user.Email, domain.ErrEmailTaken)
	}
	r.byEmail[user.Email] = user
	return nil
}

func (r *InMemoryUserRepository) FindByEmail(ctx context.Context, email string) (entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byEmail[email]
	if !ok {
		return entities.User{}, fmt.Errorf("email %s: %w", email, domain.ErrUserNotFound)
	}
	return user, nil
}

func (r *InMemoryUserRepository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for email, user := range r.byEmail {
		if user.ID == userID {
			user.LastLogin = &at
			r.byEmail[email] = user
			return nil
		}
	}
	return fmt.Errorf("id %s: %w", userID, domain.ErrUserNotFound)
}
