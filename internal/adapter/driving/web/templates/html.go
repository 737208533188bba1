// Package templates holds the templ components that render the HTML pages.
// Components are composed with templ.ComponentFunc; every dynamic value goes
// through templ.EscapeString.
package templates

import (
	"io"

	"github.com/a-h/templ"
)

// htmlWriter accumulates the first write error so components can emit markup
// without checking each write.
type htmlWriter struct {
	w   io.Writer
	err error
}

// raw writes trusted markup.
func (hw *htmlWriter) raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

// text writes an escaped value, safe in element bodies and quoted attributes.
func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

// csrfField writes the hidden CSRF input every form carries.
func (hw *htmlWriter) csrfField(token string) {
	hw.raw(`<input type="hidden" name="csrf_token" value="`)
	hw.text(token)
	hw.raw(`">`)
}
