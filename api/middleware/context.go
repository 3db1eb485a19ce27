package middleware

import "context"

type contextKey string

const (
	ctxSessionID     contextKey = "session_id"
	ctxSessionMinted contextKey = "session_minted"
)

// SessionIDFromContext returns the cart session id set by the Session middleware.
func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

// WithSessionID injects the cart session id into the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSessionID, sessionID)
}

// SessionMintedFromContext reports whether the session id was created for this request
// rather than presented by the client.
func SessionMintedFromContext(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	minted, _ := ctx.Value(ctxSessionMinted).(bool)
	return minted
}

// WithSessionMinted marks the context's session id as freshly minted.
func WithSessionMinted(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSessionMinted, true)
}
