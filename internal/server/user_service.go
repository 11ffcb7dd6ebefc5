package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/averyk/creator-onboard/internal/config"
	"github.com/averyk/creator-onboard/internal/profiledb"
)

// Account is the public view of a dashboard account, without the password
// hash.
type Account struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserService provides business logic for account registration and login.
type UserService struct {
	db             *profiledb.DB
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies.
func NewUserService(db *profiledb.DB, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		db:             db,
		passwordConfig: passwordConfig,
	}
}

func toAccount(user *profiledb.User) *Account {
	if user == nil {
		return nil
	}
	return &Account{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// Register creates a new dashboard account.
func (s *UserService) Register(ctx context.Context, email, password string) (*Account, error) {
	passwordHash, err := s.passwordConfig.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.db.CreateUser(ctx, email, passwordHash)
	if err != nil {
		var taken *profiledb.EmailTakenError
		if errors.As(err, &taken) {
			return nil, &ErrEmailAlreadyExists{Email: taken.Email}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return toAccount(user), nil
}

// Login authenticates an account by email and password. Unknown emails and
// wrong passwords both return the same generic error.
func (s *UserService) Login(ctx context.Context, email, password string) (*Account, error) {
	user, err := s.db.GetUserByEmail(ctx, email)
	if err != nil {
		var notFound *profiledb.UserNotFoundError
		if errors.As(err, &notFound) {
			return nil, &ErrInvalidCredentials{}
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !s.passwordConfig.VerifyPassword(password, user.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	return toAccount(user), nil
}
