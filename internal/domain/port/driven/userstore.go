package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/pwshare/internal/domain/model"
)

// ErrUsernameTaken indicates a user with the same username already exists.
var ErrUsernameTaken = errors.New("username already taken")

// UserStore defines the driven port for user persistence.
// Create returns ErrUsernameTaken if the username is not unique.
// GetByID and GetByUsername return nil, nil when no user matches.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash string) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}
