package repositories

import (
	"context"
	"fmt"
	"time"
	"zenumljpg/src/domain"
	"zenumljpg/src/domain/entities"
	"zenumljpg/src/infra/postgres"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (ur *UserRepository) Create(ctx context.Context, user entities.User) error {
	query := `
		INSERT INTO users (id, username, email, hashed_password, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`

	_, err := ur.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.HashedPassword,
		user.CreatedAt,
	)
	if postgres.IsUniqueViolation(err) {
		return fmt.Errorf("UserRepository.Create - email %s: %w", user.Email, domain.ErrEmailTaken)
	}
	if err != nil {
		return fmt.Errorf("UserRepository.Create - insert failed: %w", err)
	}

	return nil
}

func (ur *UserRepository) FindByEmail(ctx context.Context, email string) (entities.User, error) {
	query := `
		SELECT id, username, email, hashed_password, last_login, created_at
		FROM users
		WHERE email = $1;
	`

	var user entities.User
	var lastLogin pgtype.Timestamptz

	err := ur.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.HashedPassword,
		&lastLogin,
		&user.CreatedAt,
	)
	if postgres.IsNoRows(err) {
		return entities.User{}, fmt.Errorf("UserRepository.FindByEmail - email %s: %w", email, domain.ErrUserNotFound)
	}
	if err != nil {
		return entities.User{}, fmt.Errorf("UserRepository.FindByEmail - query failed: %w", err)
	}

	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}

	return user, nil
}

func (ur *UserRepository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	query := `
		UPDATE users
		SET last_login = $2
		WHERE id = $1;
	`

	tag, err := ur.pool.Exec(ctx, query, userID, at)
	if err != nil {
		return fmt.Errorf("UserRepository.UpdateLastLogin - update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UserRepository.UpdateLastLogin - id %s: %w", userID, domain.ErrUserNotFound)
	}

	return nil
}
