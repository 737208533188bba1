package application

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/ericfisherdev/pwshare/internal/domain/model"
	"github.com/ericfisherdev/pwshare/internal/domain/port/driven"
)

// --- In-memory implementations of the driven ports ---

type shareKey struct {
	credentialID int64
	recipientID  int64
}

// memStore backs all three driven ports with slices, mirroring the SQLite
// adapter's uniqueness and ordering rules. UserStore and CredentialStore both
// declare GetByID, so those two ports are exposed through memUsers and memCreds.
type memStore struct {
	users  []model.User
	creds  []model.Credential
	grants []model.ShareGrant

	err error // returned by every method when set
}

var (
	_ driven.UserStore       = memUsers{}
	_ driven.CredentialStore = memCreds{}
	_ driven.ShareStore      = (*memStore)(nil)
)

func newMemStore() *memStore { return &memStore{} }

func (m *memStore) Create(_ context.Context, username, passwordHash string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	for _, u := range m.users {
		if u.Username == username {
			return 0, driven.ErrUsernameTaken
		}
	}
	id := int64(len(m.users) + 1)
	m.users = append(m.users, model.User{ID: id, Username: username, PasswordHash: passwordHash})
	return id, nil
}

func (m *memStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memStore) user(id int64) *model.User {
	for _, u := range m.users {
		if u.ID == id {
			return &u
		}
	}
	return nil
}

func (m *memStore) Add(_ context.Context, cred model.Credential) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	cred.ID = int64(len(m.creds) + 1)
	m.creds = append(m.creds, cred)
	return cred.ID, nil
}

func (m *memStore) credential(id int64) *model.Credential {
	for _, c := range m.creds {
		if c.ID == id {
			return &c
		}
	}
	return nil
}

func (m *memStore) ListByOwner(_ context.Context, ownerID int64) ([]model.Credential, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []model.Credential
	for _, c := range m.creds {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memStore) Grant(_ context.Context, credentialID, recipientID int64) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	key := shareKey{credentialID, recipientID}
	for _, g := range m.grants {
		if (shareKey{g.CredentialID, g.RecipientID}) == key {
			return 0, driven.ErrShareExists
		}
	}
	id := int64(len(m.grants) + 1)
	m.grants = append(m.grants, model.ShareGrant{ID: id, CredentialID: credentialID, RecipientID: recipientID})
	return id, nil
}

func (m *memStore) ListSharedWith(_ context.Context, userID int64) ([]model.SharedCredential, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []model.SharedCredential
	for _, g := range m.grants {
		if g.RecipientID != userID {
			continue
		}
		c := m.credential(g.CredentialID)
		if c == nil || c.OwnerID == userID {
			continue
		}
		owner := m.user(c.OwnerID)
		out = append(out, model.SharedCredential{
			CredentialID:  c.ID,
			SiteName:      c.SiteName,
			Password:      c.Password,
			OwnerUsername: owner.Username,
		})
	}
	return out, nil
}

func (m *memStore) ListRecipients(_ context.Context, credentialID int64) ([]model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []model.User
	for _, g := range m.grants {
		if g.CredentialID == credentialID {
			out = append(out, *m.user(g.RecipientID))
		}
	}
	return out, nil
}

type memUsers struct{ *memStore }

func (u memUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	if u.err != nil {
		return nil, u.err
	}
	return u.user(id), nil
}

type memCreds struct{ *memStore }

func (c memCreds) GetByID(_ context.Context, id int64) (*model.Credential, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.credential(id), nil
}

var errStoreDown = errors.New("store unavailable")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
