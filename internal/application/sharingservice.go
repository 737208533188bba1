package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ericfisherdev/pwshare/internal/domain/model"
	"github.com/ericfisherdev/pwshare/internal/domain/port/driven"
)

// SharingService grants other users read access to a credential.
type SharingService struct {
	users  driven.UserStore
	creds  driven.CredentialStore
	shares driven.ShareStore
	logger *slog.Logger
}

// NewSharingService creates a SharingService.
func NewSharingService(
	users driven.UserStore,
	creds driven.CredentialStore,
	shares driven.ShareStore,
	logger *slog.Logger,
) *SharingService {
	return &SharingService{
		users:  users,
		creds:  creds,
		shares: shares,
		logger: logger,
	}
}

// ShareCredential shares credentialID, which actingUserID must own, with the
// user named recipientUsername. Sharing an already-shared pair succeeds with
// ShareStatusAlreadyShared and writes nothing.
//
// A credential that does not exist and one owned by someone else both yield
// ErrCredentialNotFound, so ids cannot be probed.
func (s *SharingService) ShareCredential(ctx context.Context, actingUserID, credentialID int64, recipientUsername string) (model.ShareStatus, error) {
	cred, err := s.creds.GetByID(ctx, credentialID)
	if err != nil {
		return "", fmt.Errorf("load credential %d: %w", credentialID, err)
	}
	if cred == nil {
		return "", ErrCredentialNotFound
	}
	if cred.OwnerID != actingUserID {
		s.logger.Warn("share attempt on credential not owned by caller",
			"user_id", actingUserID,
			"credential_id", credentialID,
		)
		return "", ErrCredentialNotFound
	}

	recipient, err := s.users.GetByUsername(ctx, recipientUsername)
	if err != nil {
		return "", fmt.Errorf("resolve recipient %q: %w", recipientUsername, err)
	}
	if recipient == nil {
		return "", fmt.Errorf("share with %q: %w", recipientUsername, ErrRecipientNotFound)
	}
	if recipient.ID == cred.OwnerID {
		return "", ErrSelfShare
	}

	_, err = s.shares.Grant(ctx, credentialID, recipient.ID)
	if errors.Is(err, driven.ErrShareExists) {
		return model.ShareStatusAlreadyShared, nil
	}
	if err != nil {
		return "", fmt.Errorf("grant share: %w", err)
	}

	s.logger.Info("credential shared",
		"credential_id", credentialID,
		"owner_id", actingUserID,
		"recipient_id", recipient.ID,
	)
	return model.ShareStatusShared, nil
}
