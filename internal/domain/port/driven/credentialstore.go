package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/pwshare/internal/domain/model"
)

// ErrSealKeyNotSet is returned when a sealed credential is read by a store
// that was constructed without a sealing key.
var ErrSealKeyNotSet = errors.New("credential is sealed but no key is configured: set PWSHARE_SECRET_KEY")

// CredentialStore defines the driven port for site credential persistence.
// The adapter is responsible for any at-rest sealing; this interface operates
// on plaintext values at the domain boundary.
type CredentialStore interface {
	// Add inserts the credential and returns its assigned ID. The ID field of
	// the argument is ignored.
	Add(ctx context.Context, cred model.Credential) (int64, error)

	// GetByID returns the credential, or nil, nil if it does not exist.
	GetByID(ctx context.Context, id int64) (*model.Credential, error)

	// ListByOwner returns the owner's credentials in insertion order.
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Credential, error)
}
