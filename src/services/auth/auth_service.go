package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"zenumljpg/src/domain"
	"zenumljpg/src/domain/entities"
	"zenumljpg/src/services/events"
)

// UserRepository is the durable-store collaborator for accounts.
type UserRepository interface {
	Create(ctx context.Context, user entities.User) error
	FindByEmail(ctx context.Context, email string) (entities.User, error)
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error
}

type AuthService struct {
	logger         *slog.Logger
	userRepository UserRepository
	tokens         *TokenIssuer
	eventPublisher *events.DomainEventPublisher
}

func NewAuthService(
	logger *slog.Logger,
	userRepository UserRepository,
	tokens *TokenIssuer,
	eventPublisher *events.DomainEventPublisher,
) *AuthService {
	return &AuthService{
		logger:         logger,
		userRepository: userRepository,
		tokens:         tokens,
		eventPublisher: eventPublisher,
	}
}

type RegisterOutput struct {
	UserID  string
	Message string
}

// Register creates an account with a bcrypt-hashed password. A duplicate
// email surfaces as domain.ErrEmailTaken.
func (as *AuthService) Register(ctx context.Context, username, email, password string) (RegisterOutput, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return RegisterOutput{}, fmt.Errorf("AuthService.Register - failed to hash password: %w", err)
	}

	user := entities.User{
		ID:             uuid.NewString(),
		Username:       username,
		Email:          email,
		HashedPassword: string(hashed),
		CreatedAt:      time.Now().UTC(),
	}

	if err := as.userRepository.Create(ctx, user); err != nil {
		return RegisterOutput{}, fmt.Errorf("AuthService.Register - %w", err)
	}

	as.logger.Info("User registered", "user_id", user.ID, "username", username)

	if as.eventPublisher.Enabled() {
		if err := as.eventPublisher.PublishUserRegistered(ctx, user); err != nil {
			as.logger.Warn("Failed to publish user.registered event", "user_id", user.ID, "error", err)
		}
	}

	return RegisterOutput{
		UserID:  user.ID,
		Message: "User successfully registered.",
	}, nil
}

type LoginOutput struct {
	Token  string
	UserID string
}

// Login verifies the credentials, issues an access token and records the
// login time. Unknown email and wrong password both come back as
// domain.ErrInvalidCredentials so the boundary can't be used to probe for
// registered emails.
func (as *AuthService) Login(ctx context.Context, email, password string) (LoginOutput, error) {
	user, err := as.userRepository.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return LoginOutput{}, domain.ErrInvalidCredentials
		}
		return LoginOutput{}, fmt.Errorf("AuthService.Login - %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return LoginOutput{}, domain.ErrInvalidCredentials
	}

	token, err := as.tokens.Issue(user)
	if err != nil {
		return LoginOutput{}, fmt.Errorf("AuthService.Login - %w", err)
	}

	// The login already succeeded; a failed bookkeeping write is not worth a 500.
	if err := as.userRepository.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		as.logger.Warn("Failed to update last login", "user_id", user.ID, "error", err)
	}

	return LoginOutput{
		Token:  token,
		UserID: user.ID,
	}, nil
}
