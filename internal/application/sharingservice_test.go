package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/pwshare/internal/domain/model"
)

type sharingFixture struct {
	store   *memStore
	creds   *CredentialService
	sharing *SharingService
	alice   int64
	bob     int64
	cred    model.Credential
}

func newSharingFixture(t *testing.T) sharingFixture {
	t.Helper()
	ctx := context.Background()
	store := newMemStore()
	alice, err := store.Create(ctx, "alice", "h")
	require.NoError(t, err)
	bob, err := store.Create(ctx, "bob", "h")
	require.NoError(t, err)

	creds := NewCredentialService(memCreds{store}, store)
	cred, err := creds.AddCredential(ctx, alice, "github", "secretpw")
	require.NoError(t, err)

	return sharingFixture{
		store:   store,
		creds:   creds,
		sharing: NewSharingService(memUsers{store}, memCreds{store}, store, discardLogger()),
		alice:   alice,
		bob:     bob,
		cred:    cred,
	}
}

func TestSharingService_Share(t *testing.T) {
	f := newSharingFixture(t)
	ctx := context.Background()

	status, err := f.sharing.ShareCredential(ctx, f.alice, f.cred.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, model.ShareStatusShared, status)

	shared, err := f.creds.ListSharedWithMe(ctx, f.bob)
	require.NoError(t, err)
	require.Len(t, shared, 1)
	assert.Equal(t, "github", shared[0].SiteName)
	assert.Equal(t, "secretpw", shared[0].Password)
	assert.Equal(t, "alice", shared[0].OwnerUsername)

	bobOwned, err := f.creds.ListOwned(ctx, f.bob)
	require.NoError(t, err)
	assert.Empty(t, bobOwned, "shared credentials never appear as owned")

	aliceOwned, err := f.creds.ListOwned(ctx, f.alice)
	require.NoError(t, err)
	assert.Len(t, aliceOwned, 1)
}

func TestSharingService_ShareTwice(t *testing.T) {
	f := newSharingFixture(t)
	ctx := context.Background()

	first, err := f.sharing.ShareCredential(ctx, f.alice, f.cred.ID, "bob")
	require.NoError(t, err)
	second, err := f.sharing.ShareCredential(ctx, f.alice, f.cred.ID, "bob")
	require.NoError(t, err)

	assert.Equal(t, model.ShareStatusShared, first)
	assert.Equal(t, model.ShareStatusAlreadyShared, second)
	assert.Len(t, f.store.grants, 1)
}

func TestSharingService_RecipientNotFound(t *testing.T) {
	f := newSharingFixture(t)

	_, err := f.sharing.ShareCredential(context.Background(), f.alice, f.cred.ID, "carol")
	require.ErrorIs(t, err, ErrRecipientNotFound)
	assert.Contains(t, err.Error(), "carol")
	assert.Empty(t, f.store.grants)
}

func TestSharingService_NotOwner(t *testing.T) {
	f := newSharingFixture(t)
	ctx := context.Background()
	carol, err := f.store.Create(ctx, "carol", "h")
	require.NoError(t, err)

	_, err = f.sharing.ShareCredential(ctx, f.bob, f.cred.ID, "carol")
	require.ErrorIs(t, err, ErrCredentialNotFound)
	assert.Empty(t, f.store.grants)

	shared, err := f.creds.ListSharedWithMe(ctx, carol)
	require.NoError(t, err)
	assert.Empty(t, shared)
}

func TestSharingService_NotOwnerCannotProbeRecipients(t *testing.T) {
	f := newSharingFixture(t)

	// Unknown recipient is not reported to a non-owner.
	_, err := f.sharing.ShareCredential(context.Background(), f.bob, f.cred.ID, "nobody")
	assert.ErrorIs(t, err, ErrCredentialNotFound)
}

func TestSharingService_MissingCredential(t *testing.T) {
	f := newSharingFixture(t)

	_, err := f.sharing.ShareCredential(context.Background(), f.alice, 999, "bob")
	assert.ErrorIs(t, err, ErrCredentialNotFound)
	assert.Empty(t, f.store.grants)
}

func TestSharingService_SelfShare(t *testing.T) {
	f := newSharingFixture(t)

	_, err := f.sharing.ShareCredential(context.Background(), f.alice, f.cred.ID, "alice")
	assert.ErrorIs(t, err, ErrSelfShare)
	assert.Empty(t, f.store.grants)
}

func TestSharingService_StoreError(t *testing.T) {
	f := newSharingFixture(t)
	f.store.err = errStoreDown

	_, err := f.sharing.ShareCredential(context.Background(), f.alice, f.cred.ID, "bob")
	assert.ErrorIs(t, err, errStoreDown)
}
