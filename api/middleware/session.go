package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/izishop-backend/pkg/logger"
)

// SessionHeader lets non-browser clients pin a cart without cookies.
const SessionHeader = "X-Session-Id"

const sessionMaxAge = 30 * 24 * time.Hour

// SessionOptions configures the cart session cookie.
type SessionOptions struct {
	CookieName string
	Secure     bool
}

// Session resolves the cart session id from the header or cookie, minting a new one when
// neither carries a valid UUID. The id is echoed in the response header.
func Session(opts SessionOptions, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid, ok := sessionFromRequest(r, opts.CookieName)
			if !ok {
				sid = uuid.NewString()
			}
			if !ok || r.Header.Get(SessionHeader) == "" {
				http.SetCookie(w, &http.Cookie{
					Name:     opts.CookieName,
					Value:    sid,
					Path:     "/",
					MaxAge:   int(sessionMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   opts.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			w.Header().Set(SessionHeader, sid)

			ctx := WithSessionID(r.Context(), sid)
			if !ok {
				ctx = WithSessionMinted(ctx)
			}
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sid)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionFromRequest(r *http.Request, cookieName string) (string, bool) {
	if raw := strings.TrimSpace(r.Header.Get(SessionHeader)); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			return id.String(), true
		}
	}
	if cookieName == "" {
		return "", false
	}
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return "", false
	}
	id, err := uuid.Parse(strings.TrimSpace(cookie.Value))
	if err != nil {
		return "", false
	}
	return id.String(), true
}
