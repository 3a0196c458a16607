package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/karmafeed-backend/pkg/ctxutil"
)

// requestState is filled by inner middleware and read by outer middleware
// after the handler returns. Auth sits inside Logger and Recovery in the chain.
type requestState struct {
	userID uuid.UUID
	authed bool
}

type stateKey struct{}

func withState(ctx context.Context) (context.Context, *requestState) {
	if st, ok := ctx.Value(stateKey{}).(*requestState); ok {
		return ctx, st
	}
	st := &requestState{}
	return context.WithValue(ctx, stateKey{}, st), st
}

func recordViewer(ctx context.Context, userID uuid.UUID) {
	if st, ok := ctx.Value(stateKey{}).(*requestState); ok {
		st.userID = userID
		st.authed = true
	}
}

// viewerFor reports the authenticated user of the request, looking first at
// the context itself and then at the state slot filled by Auth.
func viewerFor(ctx context.Context) (uuid.UUID, bool) {
	if id, ok := ctxutil.UserIDFromCtx(ctx); ok {
		return id, true
	}
	if st, ok := ctx.Value(stateKey{}).(*requestState); ok && st.authed {
		return st.userID, true
	}
	return uuid.Nil, false
}
