package application

import "errors"

// Service-level outcomes. All of them are recovered by the web boundary and
// shown as a notice; none are fatal.
var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrEmptyUsername      = errors.New("username is required")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRecipientNotFound  = errors.New("recipient not found")
	ErrCredentialNotFound = errors.New("credential not found")
	ErrSelfShare          = errors.New("cannot share a credential with its owner")
	ErrUnauthenticated    = errors.New("not authenticated")
)
