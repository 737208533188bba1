// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/pwshare/internal/adapter/driving/web/templates"
	vm "github.com/ericfisherdev/pwshare/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/pwshare/internal/application"
	"github.com/ericfisherdev/pwshare/internal/domain/model"
)

const (
	loginPath   = "/login"
	managerPath = "/password_manager"
)

// Handler is the web GUI driving adapter that serves HTML via templ components.
type Handler struct {
	accounts      *application.AccountService
	creds         *application.CredentialService
	sharing       *application.SharingService
	sessions      *SessionManager
	secureCookies bool
	logger        *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	accounts *application.AccountService,
	creds *application.CredentialService,
	sharing *application.SharingService,
	sessions *SessionManager,
	secureCookies bool,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		accounts:      accounts,
		creds:         creds,
		sharing:       sharing,
		sessions:      sessions,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// Index sends visitors to the login page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, loginPath, http.StatusFound)
}

// LoginForm renders the login page.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, "")
}

// Login verifies the submitted credentials and starts a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")

	id, err := h.accounts.Authenticate(r.Context(), username, r.PostFormValue("password"))
	if errors.Is(err, application.ErrInvalidCredentials) {
		h.renderLogin(w, r, username, vm.Flash{Level: vm.FlashError, Message: "Invalid credentials"})
		return
	}
	if err != nil {
		h.serverError(w, r, "failed to authenticate", err)
		return
	}

	if err := h.sessions.Establish(w, id); err != nil {
		h.serverError(w, r, "failed to establish session", err)
		return
	}
	http.Redirect(w, r, managerPath, http.StatusFound)
}

// SignupForm renders the signup page.
func (h *Handler) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.renderSignup(w, r, "")
}

// Signup creates an account and logs the new user in.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")

	id, err := h.accounts.Register(r.Context(), username, r.PostFormValue("password"))
	if msg, ok := signupFailure(err); ok {
		h.renderSignup(w, r, username, vm.Flash{Level: vm.FlashError, Message: msg})
		return
	}
	if err != nil {
		h.serverError(w, r, "failed to register user", err)
		return
	}

	if err := h.sessions.Establish(w, id); err != nil {
		h.serverError(w, r, "failed to establish session", err)
		return
	}
	h.redirectWithFlash(w, r, managerPath, vm.Flash{
		Level:   vm.FlashSuccess,
		Message: "Signup successful! Welcome to your workspace.",
	})
}

func signupFailure(err error) (string, bool) {
	switch {
	case errors.Is(err, application.ErrDuplicateUsername):
		return "Username already exists", true
	case errors.Is(err, application.ErrEmptyUsername):
		return "Username is required", true
	case errors.Is(err, application.ErrPasswordTooLong):
		return "Password must be at most 72 bytes", true
	default:
		return "", false
	}
}

// Manager renders the caller's credentials and those shared with them.
func (h *Handler) Manager(w http.ResponseWriter, r *http.Request) {
	id, err := identityFrom(r.Context())
	if err != nil {
		http.Redirect(w, r, loginPath, http.StatusFound)
		return
	}
	h.renderManager(w, r, id)
}

// AddCredential stores a new credential for the caller and renders the
// updated lists.
func (h *Handler) AddCredential(w http.ResponseWriter, r *http.Request) {
	id, err := identityFrom(r.Context())
	if err != nil {
		http.Redirect(w, r, loginPath, http.StatusFound)
		return
	}

	_, err = h.creds.AddCredential(r.Context(), id.UserID, r.PostFormValue("site_name"), r.PostFormValue("password"))
	if err != nil {
		h.serverError(w, r, "failed to add credential", err)
		return
	}
	h.renderManager(w, r, id)
}

// ShareCredential grants the named user read access to one of the caller's
// credentials. Every outcome is reported as a notice on the manager page.
func (h *Handler) ShareCredential(w http.ResponseWriter, r *http.Request) {
	id, err := identityFrom(r.Context())
	if err != nil {
		http.Redirect(w, r, loginPath, http.StatusFound)
		return
	}

	credentialID, err := strconv.ParseInt(r.PathValue("credentialID"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	recipient := r.PostFormValue("share_with_username")
	status, err := h.sharing.ShareCredential(r.Context(), id.UserID, credentialID, recipient)

	var notice vm.Flash
	switch {
	case errors.Is(err, application.ErrRecipientNotFound):
		notice = vm.Flash{Level: vm.FlashError, Message: fmt.Sprintf("User %s does not exist.", recipient)}
	case errors.Is(err, application.ErrCredentialNotFound):
		notice = vm.Flash{Level: vm.FlashError, Message: "Password not found."}
	case errors.Is(err, application.ErrSelfShare):
		notice = vm.Flash{Level: vm.FlashError, Message: "You already own this password."}
	case err != nil:
		h.serverError(w, r, "failed to share credential", err)
		return
	case status == model.ShareStatusAlreadyShared:
		notice = vm.Flash{Level: vm.FlashInfo, Message: fmt.Sprintf("This password is already shared with %s.", recipient)}
	default:
		notice = vm.Flash{Level: vm.FlashSuccess, Message: fmt.Sprintf("Password shared with %s.", recipient)}
	}

	h.redirectWithFlash(w, r, managerPath, notice)
}

// Logout ends the session and returns to the login page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.End(w)
	h.redirectWithFlash(w, r, loginPath, vm.Flash{Level: vm.FlashSuccess, Message: "You have been logged out."})
}

// requireSession resolves the session into an Identity on the request
// context. Requests without one are sent to the login page.
func (h *Handler) requireSession(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := h.sessions.Current(r)
		if err != nil {
			http.Redirect(w, r, loginPath, http.StatusFound)
			return
		}

		id, err := h.accounts.Lookup(r.Context(), userID)
		if err != nil {
			h.serverError(w, r, "failed to resolve session", err)
			return
		}
		if id == nil {
			h.logger.Warn("session refers to missing user", "user_id", userID)
			h.sessions.End(w)
			http.Redirect(w, r, loginPath, http.StatusFound)
			return
		}

		next(w, r.WithContext(withIdentity(r.Context(), *id)))
	})
}

func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, username string, notices ...vm.Flash) {
	form := vm.AuthForm{CSRFToken: csrfToken(w, r, h.secureCookies), Username: username}
	h.render(w, r, "Log in", templates.LoginPage(form), notices...)
}

func (h *Handler) renderSignup(w http.ResponseWriter, r *http.Request, username string, notices ...vm.Flash) {
	form := vm.AuthForm{CSRFToken: csrfToken(w, r, h.secureCookies), Username: username}
	h.render(w, r, "Sign up", templates.SignupPage(form), notices...)
}

func (h *Handler) renderManager(w http.ResponseWriter, r *http.Request, id application.Identity) {
	ctx := r.Context()

	owned, err := h.creds.ListOwned(ctx, id.UserID)
	if err != nil {
		h.serverError(w, r, "failed to list credentials", err)
		return
	}

	rows := make([]vm.CredentialRow, 0, len(owned))
	for _, c := range owned {
		recipients, err := h.creds.ListRecipients(ctx, id.UserID, c.ID)
		if err != nil {
			h.serverError(w, r, "failed to list recipients", err)
			return
		}
		rows = append(rows, toCredentialRow(c, recipients))
	}

	shared, err := h.creds.ListSharedWithMe(ctx, id.UserID)
	if err != nil {
		h.serverError(w, r, "failed to list shared credentials", err)
		return
	}

	page := vm.ManagerPage{
		Username:  id.Username,
		CSRFToken: csrfToken(w, r, h.secureCookies),
		Owned:     rows,
		Shared:    toSharedRows(shared),
	}
	h.render(w, r, "Password manager", templates.ManagerPage(page))
}

// render writes content inside the layout along with any pending notices and
// the extra ones given. Output is buffered so a render failure still yields a
// clean 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, title string, content templ.Component, notices ...vm.Flash) {
	flashes := append(consumeFlashes(w, r, h.secureCookies), notices...)

	var buf bytes.Buffer
	if err := templates.Layout(title, flashes, content).Render(r.Context(), &buf); err != nil {
		h.serverError(w, r, "failed to render page", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Debug("failed to write response", "error", err)
	}
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, target string, notice vm.Flash) {
	pushFlash(w, r, h.secureCookies, notice)
	http.Redirect(w, r, target, http.StatusFound)
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error(msg, "error", err, "method", r.Method, "path", r.URL.Path)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
