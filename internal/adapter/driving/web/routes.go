package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers all web GUI routes on the provided mux.
// Static assets are served from the embedded filesystem at /static/*.
// Every POST route checks the CSRF token before anything else runs.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Static assets (embedded via go:embed).
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	mux.HandleFunc("GET /{$}", h.Index)

	mux.HandleFunc("GET /login", h.LoginForm)
	mux.Handle("POST /login", requireCSRF(http.HandlerFunc(h.Login)))
	mux.HandleFunc("GET /signup", h.SignupForm)
	mux.Handle("POST /signup", requireCSRF(http.HandlerFunc(h.Signup)))
	mux.HandleFunc("GET /logout", h.Logout)

	mux.Handle("GET /password_manager", h.requireSession(h.Manager))
	mux.Handle("POST /password_manager", requireCSRF(h.requireSession(h.AddCredential)))
	mux.Handle("POST /share_password/{credentialID}", requireCSRF(h.requireSession(h.ShareCredential)))
}
