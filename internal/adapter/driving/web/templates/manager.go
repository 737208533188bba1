package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	vm "github.com/ericfisherdev/pwshare/internal/adapter/driving/web/viewmodel"
)

// ManagerPage renders the add-credential form, the caller's own credentials
// with a share form per row, and the credentials shared with the caller.
func ManagerPage(page vm.ManagerPage) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}

		hw.raw(`<header class="topbar"><span>Signed in as <strong>`)
		hw.text(page.Username)
		hw.raw(`</strong></span><a href="/logout">Log out</a></header>`)

		hw.raw(`<section><h2>Add a password</h2><form method="post" action="/password_manager">`)
		hw.csrfField(page.CSRFToken)
		hw.raw(`<label for="site_name">Site</label><input id="site_name" name="site_name" type="text">`)
		hw.raw(`<label for="site_password">Password</label><input id="site_password" name="password" type="text">`)
		hw.raw(`<button type="submit">Save</button></form></section>`)

		hw.raw(`<section><h2>Your passwords</h2>`)
		if len(page.Owned) == 0 {
			hw.raw(`<p class="empty">No passwords saved yet.</p>`)
		} else {
			hw.raw(`<table class="owned"><thead><tr><th>Site</th><th>Password</th><th>Shared with</th><th>Share</th></tr></thead><tbody>`)
			for _, row := range page.Owned {
				hw.raw(`<tr><td>`)
				hw.text(row.SiteName)
				hw.raw(`</td><td class="secret">`)
				hw.text(row.Password)
				hw.raw(`</td><td>`)
				hw.text(strings.Join(row.SharedWith, ", "))
				hw.raw(`</td><td><form method="post" action="`)
				hw.text(row.ShareAction)
				hw.raw(`">`)
				hw.csrfField(page.CSRFToken)
				hw.raw(`<input name="share_with_username" type="text" placeholder="username" required>`)
				hw.raw(`<button type="submit">Share</button></form></td></tr>`)
			}
			hw.raw(`</tbody></table>`)
		}
		hw.raw(`</section>`)

		hw.raw(`<section><h2>Shared with you</h2>`)
		if len(page.Shared) == 0 {
			hw.raw(`<p class="empty">Nothing has been shared with you.</p>`)
		} else {
			hw.raw(`<table class="shared"><thead><tr><th>Site</th><th>Password</th><th>Owner</th></tr></thead><tbody>`)
			for _, row := range page.Shared {
				hw.raw(`<tr><td>`)
				hw.text(row.SiteName)
				hw.raw(`</td><td class="secret">`)
				hw.text(row.Password)
				hw.raw(`</td><td>`)
				hw.text(row.Owner)
				hw.raw(`</td></tr>`)
			}
			hw.raw(`</tbody></table>`)
		}
		hw.raw(`</section>`)

		return hw.err
	})
}
