package auth

import "context"

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated requester attached to a request context by
// the authentication middleware. Domain services receive it explicitly and
// never read ambient session state.
type Identity struct {
	UserID string
	Role   string
}

func (i Identity) IsOwner() bool {
	return i.Role == "owner"
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
