package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	vm "github.com/ericfisherdev/pwshare/internal/adapter/driving/web/viewmodel"
)

// Layout wraps content in the page shell and renders pending flash notices
// above it.
func Layout(title string, flashes []vm.Flash, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		hw.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.raw(`<title>`)
		hw.text(title)
		hw.raw(` · pwshare</title><link rel="stylesheet" href="/static/style.css"></head><body><main>`)

		if len(flashes) > 0 {
			hw.raw(`<ul class="flashes">`)
			for _, f := range flashes {
				hw.raw(`<li class="flash flash-`)
				hw.text(f.Level)
				hw.raw(`">`)
				hw.text(f.Message)
				hw.raw(`</li>`)
			}
			hw.raw(`</ul>`)
		}
		if hw.err != nil {
			return hw.err
		}

		if err := content.Render(ctx, w); err != nil {
			return err
		}

		hw.raw(`</main></body></html>`)
		return hw.err
	})
}
