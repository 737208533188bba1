package model

// ShareGrant authorizes a user other than the owner to read one credential.
type ShareGrant struct {
	ID           int64
	CredentialID int64
	RecipientID  int64
}

// SharedCredential is a credential as seen by a share recipient.
type SharedCredential struct {
	CredentialID  int64
	SiteName      string
	Password      string
	OwnerUsername string
}

// ShareStatus reports the outcome of a successful share request.
type ShareStatus string

const (
	ShareStatusShared        ShareStatus = "shared"
	ShareStatusAlreadyShared ShareStatus = "already_shared"
)
