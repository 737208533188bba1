package model

// User is a registered account. PasswordHash is a bcrypt hash; the plaintext
// is never stored.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
}
