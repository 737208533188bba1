package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/ericfisherdev/pwshare/internal/domain/model"
	"github.com/ericfisherdev/pwshare/internal/domain/port/driven"
)

// Identity is the authenticated user bound to a request. It is resolved from
// the session at the boundary and passed explicitly into service calls.
type Identity struct {
	UserID   int64
	Username string
}

func identityOf(u model.User) Identity {
	return Identity{UserID: u.ID, Username: u.Username}
}

// AccountService registers and authenticates users. Passwords are hashed with
// bcrypt and only ever verified through bcrypt.CompareHashAndPassword.
type AccountService struct {
	users  driven.UserStore
	cost   int
	logger *slog.Logger

	// dummyHash is compared against when a username is unknown so that a
	// failed login costs the same whether or not the user exists.
	dummyHash []byte
}

// NewAccountService creates an AccountService hashing at the given bcrypt cost.
func NewAccountService(users driven.UserStore, cost int, logger *slog.Logger) (*AccountService, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("pwshare-dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &AccountService{
		users:     users,
		cost:      cost,
		logger:    logger,
		dummyHash: dummy,
	}, nil
}

// Register creates a user with a hashed password and returns its identity.
// The caller establishes the session.
func (s *AccountService) Register(ctx context.Context, username, password string) (Identity, error) {
	if username == "" {
		return Identity{}, ErrEmptyUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return Identity{}, ErrPasswordTooLong
	}
	if err != nil {
		return Identity{}, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.users.Create(ctx, username, string(hash))
	if errors.Is(err, driven.ErrUsernameTaken) {
		return Identity{}, ErrDuplicateUsername
	}
	if err != nil {
		return Identity{}, fmt.Errorf("register %q: %w", username, err)
	}

	s.logger.Info("user registered", "user_id", id)
	return Identity{UserID: id, Username: username}, nil
}

// Authenticate verifies username and password. Unknown usernames and wrong
// passwords both return ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (Identity, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return Identity{}, fmt.Errorf("authenticate %q: %w", username, err)
	}

	if user == nil {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return Identity{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("failed login", "user_id", user.ID)
		return Identity{}, ErrInvalidCredentials
	}

	return identityOf(*user), nil
}

// Lookup resolves a session's user ID. Returns nil, nil if the user no longer exists.
func (s *AccountService) Lookup(ctx context.Context, userID int64) (*Identity, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup user %d: %w", userID, err)
	}
	if user == nil {
		return nil, nil
	}
	id := identityOf(*user)
	return &id, nil
}
