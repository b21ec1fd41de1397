package api

import (
	"context"

	"github.com/inkwell-blog/inkwell-api/auth"
)

type keyType string

const (
	identityKey keyType = "identity"
)

// ctxWithIdentity adds the authenticated caller to the context
func ctxWithIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// identityFromCtx retrieves the caller set by the auth middleware
func identityFromCtx(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok && id.UserID != ""
}
