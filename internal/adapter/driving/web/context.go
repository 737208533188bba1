package web

import (
	"context"

	"github.com/ericfisherdev/pwshare/internal/application"
)

type contextKey int

const identityKey contextKey = iota

func withIdentity(ctx context.Context, id application.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// identityFrom returns the identity requireSession resolved for this request.
func identityFrom(ctx context.Context) (application.Identity, error) {
	id, ok := ctx.Value(identityKey).(application.Identity)
	if !ok {
		return application.Identity{}, application.ErrUnauthenticated
	}
	return id, nil
}
