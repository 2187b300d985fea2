package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"prospection-agent/logger"
)

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "prospection_session"

	maxSessionIDLen = 128
)

type sessionKey struct{}

// Sessions resolves the dashboard session from the X-Session-ID header or
// the session cookie, minting a new id when neither is present. The id is
// echoed in the response header and cookie.
func Sessions(ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := sessionFromRequest(r)
			if id == "" {
				id = uuid.NewString()
			}

			w.Header().Set(SessionHeader, id)
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   int(ttl.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := context.WithValue(r.Context(), sessionKey{}, id)
			ctx = logger.WithSession(ctx, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionFromRequest(r *http.Request) string {
	if id := cleanSessionID(r.Header.Get(SessionHeader)); id != "" {
		return id
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return cleanSessionID(c.Value)
	}
	return ""
}

// cleanSessionID rejects ids that are too long or not printable ASCII
func cleanSessionID(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxSessionIDLen {
		return ""
	}
	for i := 0; i < len(s); i++ {
		if s[i] <= ' ' || s[i] > '~' {
			return ""
		}
	}
	return s
}

// SessionID returns the session resolved by Sessions
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}
