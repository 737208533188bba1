package model

// Credential is a site name and password pair owned by exactly one user.
// Password holds the plaintext site password at the domain boundary; whether
// it is sealed at rest is up to the storage adapter.
type Credential struct {
	ID       int64
	OwnerID  int64
	SiteName string
	Password string
}
