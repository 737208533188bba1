package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/pwshare/internal/domain/model"
)

// ErrShareExists indicates the credential is already shared with the recipient.
var ErrShareExists = errors.New("share grant already exists")

// ShareStore defines the driven port for share grant persistence.
type ShareStore interface {
	// Grant records that credentialID is visible to recipientID and returns the
	// grant ID. Returns ErrShareExists if the pair is already granted.
	Grant(ctx context.Context, credentialID, recipientID int64) (int64, error)

	// ListSharedWith returns credentials granted to userID, excluding any the
	// user owns, in grant order.
	ListSharedWith(ctx context.Context, userID int64) ([]model.SharedCredential, error)

	// ListRecipients returns the users a credential is shared with, in grant order.
	ListRecipients(ctx context.Context, credentialID int64) ([]model.User, error)
}
