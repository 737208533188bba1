package application

import (
	"context"
	"fmt"

	"github.com/ericfisherdev/pwshare/internal/domain/model"
	"github.com/ericfisherdev/pwshare/internal/domain/port/driven"
)

// CredentialService stores and lists site credentials for their owners and
// for the users they have been shared with.
type CredentialService struct {
	creds  driven.CredentialStore
	shares driven.ShareStore
}

// NewCredentialService creates a CredentialService.
func NewCredentialService(creds driven.CredentialStore, shares driven.ShareStore) *CredentialService {
	return &CredentialService{creds: creds, shares: shares}
}

// AddCredential stores a credential owned by ownerID. Site name and password
// are stored as given, empty strings included.
func (s *CredentialService) AddCredential(ctx context.Context, ownerID int64, siteName, sitePassword string) (model.Credential, error) {
	cred := model.Credential{
		OwnerID:  ownerID,
		SiteName: siteName,
		Password: sitePassword,
	}

	id, err := s.creds.Add(ctx, cred)
	if err != nil {
		return model.Credential{}, fmt.Errorf("add credential: %w", err)
	}
	cred.ID = id
	return cred, nil
}

// ListOwned returns the credentials ownerID owns, in insertion order.
func (s *CredentialService) ListOwned(ctx context.Context, ownerID int64) ([]model.Credential, error) {
	creds, err := s.creds.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list owned credentials: %w", err)
	}
	return creds, nil
}

// ListSharedWithMe returns credentials other users have shared with userID.
func (s *CredentialService) ListSharedWithMe(ctx context.Context, userID int64) ([]model.SharedCredential, error) {
	shared, err := s.shares.ListSharedWith(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list shared credentials: %w", err)
	}
	return shared, nil
}

// ListRecipients returns the usernames a credential has been shared with.
// Only the owner may ask; anyone else gets ErrCredentialNotFound.
func (s *CredentialService) ListRecipients(ctx context.Context, ownerID, credentialID int64) ([]string, error) {
	cred, err := s.creds.GetByID(ctx, credentialID)
	if err != nil {
		return nil, fmt.Errorf("load credential %d: %w", credentialID, err)
	}
	if cred == nil || cred.OwnerID != ownerID {
		return nil, ErrCredentialNotFound
	}

	users, err := s.shares.ListRecipients(ctx, credentialID)
	if err != nil {
		return nil, fmt.Errorf("list recipients: %w", err)
	}

	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Username)
	}
	return names, nil
}
