package web

import (
	"encoding/base64"
	"encoding/json"
	"html"
	"net/http"

	"github.com/microcosm-cc/bluemonday"

	vm "github.com/ericfisherdev/pwshare/internal/adapter/driving/web/viewmodel"
)

const flashCookieName = "flash"

// The flash cookie is client-held, so anything read back from it is reduced
// to plain text before it reaches a template.
var flashPolicy = bluemonday.StrictPolicy()

// readFlashes decodes pending notices from the request. A missing or corrupt
// cookie yields none.
func readFlashes(r *http.Request) []vm.Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	var flashes []vm.Flash
	if err := json.Unmarshal(raw, &flashes); err != nil {
		return nil
	}

	clean := flashes[:0]
	for _, f := range flashes {
		msg := html.UnescapeString(flashPolicy.Sanitize(f.Message))
		if msg == "" {
			continue
		}
		clean = append(clean, vm.Flash{Level: normalizeLevel(f.Level), Message: msg})
	}
	return clean
}

// consumeFlashes returns pending notices and clears the cookie.
func consumeFlashes(w http.ResponseWriter, r *http.Request, secure bool) []vm.Flash {
	flashes := readFlashes(r)
	if _, err := r.Cookie(flashCookieName); err == nil {
		http.SetCookie(w, flashCookie("", -1, secure))
	}
	return flashes
}

// pushFlash queues f behind any notices still pending on the request, to be
// shown by the next rendered page.
func pushFlash(w http.ResponseWriter, r *http.Request, secure bool, f vm.Flash) {
	flashes := append(readFlashes(r), f)

	raw, err := json.Marshal(flashes)
	if err != nil {
		// Flash is a plain struct of strings; Marshal cannot fail.
		return
	}
	http.SetCookie(w, flashCookie(base64.RawURLEncoding.EncodeToString(raw), 0, secure))
}

func flashCookie(value string, maxAge int, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	}
}

func normalizeLevel(level string) string {
	switch level {
	case vm.FlashSuccess, vm.FlashInfo, vm.FlashError:
		return level
	default:
		return vm.FlashInfo
	}
}
