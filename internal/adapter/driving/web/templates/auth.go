package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	vm "github.com/ericfisherdev/pwshare/internal/adapter/driving/web/viewmodel"
)

// LoginPage renders the login form.
func LoginPage(form vm.AuthForm) templ.Component {
	return authPage("Log in", "/login", "Log in", form,
		`No account? <a href="/signup">Sign up</a>`)
}

// SignupPage renders the signup form.
func SignupPage(form vm.AuthForm) templ.Component {
	return authPage("Sign up", "/signup", "Create account", form,
		`Already registered? <a href="/login">Log in</a>`)
}

func authPage(heading, action, submit string, form vm.AuthForm, footer string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<section class="auth"><h1>`)
		hw.text(heading)
		hw.raw(`</h1><form method="post" action="`)
		hw.text(action)
		hw.raw(`">`)
		hw.csrfField(form.CSRFToken)
		hw.raw(`<label for="username">Username</label>`)
		hw.raw(`<input id="username" name="username" type="text" autocomplete="username" required value="`)
		hw.text(form.Username)
		hw.raw(`">`)
		hw.raw(`<label for="password">Password</label>`)
		hw.raw(`<input id="password" name="password" type="password" required>`)
		hw.raw(`<button type="submit">`)
		hw.text(submit)
		hw.raw(`</button></form><p>`)
		hw.raw(footer)
		hw.raw(`</p></section>`)
		return hw.err
	})
}
