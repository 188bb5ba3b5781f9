package httpx

import (
	"context"

	"github.com/aussiebroadwan/hiddengems/pkg/idx"
)

type ctxKey int

const ctxKeyUserID ctxKey = iota

// WithCurrentUser returns a context carrying the authenticated user.
func WithCurrentUser(ctx context.Context, id idx.ID) context.Context {
	return context.WithValue(ctx, ctxKeyUserID, id)
}

// CurrentUser returns the user resolved for this request. ok is false for
// anonymous requests.
func CurrentUser(ctx context.Context) (idx.ID, bool) {
	id, ok := ctx.Value(ctxKeyUserID).(idx.ID)
	if !ok || id.IsZero() {
		return idx.Zero, false
	}
	return id, true
}
