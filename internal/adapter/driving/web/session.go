package web

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ericfisherdev/pwshare/internal/application"
)

const (
	sessionCookieName = "session"
	sessionIssuer     = "pwshare"
)

// SessionManager binds a browser to one user id through an HS256-signed JWT
// held in an HttpOnly cookie. The token carries no other domain data.
type SessionManager struct {
	key    []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewSessionManager creates a SessionManager signing with key. Tokens and
// cookies expire after ttl.
func NewSessionManager(key []byte, ttl time.Duration, secure bool) *SessionManager {
	return &SessionManager{
		key:    key,
		ttl:    ttl,
		secure: secure,
		now:    time.Now,
	}
}

// Establish issues a fresh session token for id and sets the session cookie.
func (m *SessionManager) Establish(w http.ResponseWriter, id application.Identity) error {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Issuer:    sessionIssuer,
		Subject:   strconv.FormatInt(id.UserID, 10),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
	if err != nil {
		return fmt.Errorf("sign session for user %d: %w", id.UserID, err)
	}

	http.SetCookie(w, m.cookie(signed, int(m.ttl.Seconds())))
	return nil
}

// Current returns the user id bound to the request's session. A missing,
// malformed, expired, or forged token yields application.ErrUnauthenticated.
func (m *SessionManager) Current(r *http.Request) (int64, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return 0, application.ErrUnauthenticated
	}

	var claims jwt.RegisteredClaims
	_, err = jwt.ParseWithClaims(cookie.Value, &claims,
		func(*jwt.Token) (any, error) { return m.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", application.ErrUnauthenticated, err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("%w: bad subject %q", application.ErrUnauthenticated, claims.Subject)
	}
	return userID, nil
}

// End clears the session cookie.
func (m *SessionManager) End(w http.ResponseWriter) {
	http.SetCookie(w, m.cookie("", -1))
}

func (m *SessionManager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   m.secure,
	}
}
