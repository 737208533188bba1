// Package viewmodel defines the presentation structs consumed by templ
// components. They carry display-ready values only; handlers convert domain
// types into them.
package viewmodel

// Flash levels, used as CSS class suffixes.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashError   = "error"
)

// Flash is a one-shot notice shown at the top of the next rendered page.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// AuthForm backs the login and signup pages. Username is echoed back after a
// failed attempt; the password never is.
type AuthForm struct {
	CSRFToken string
	Username  string
}

// CredentialRow is one credential the current user owns.
type CredentialRow struct {
	ID          int64
	SiteName    string
	Password    string
	SharedWith  []string
	ShareAction string // form action for sharing this credential
}

// SharedRow is one credential another user shared with the current user.
type SharedRow struct {
	SiteName string
	Password string
	Owner    string
}

// ManagerPage is the password manager view.
type ManagerPage struct {
	Username  string
	CSRFToken string
	Owned     []CredentialRow
	Shared    []SharedRow
}
