// Package session carries the tenant and user of a request through
// context.Context instead of process-wide state.
package session

import (
	"context"
	"net/http"
	"strings"
)

const (
	TenantHeader = "X-Tenant-ID"
	UserHeader   = "X-User-ID"
)

// Session identifies who is acting and on behalf of which tenant.
type Session struct {
	TenantID string
	UserID   string
}

type sessionContextKey struct{}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// FromContext returns the session stored in ctx, if any.
func FromContext(ctx context.Context) (Session, bool) {
	if ctx == nil {
		return Session{}, false
	}
	s, ok := ctx.Value(sessionContextKey{}).(Session)
	return s, ok
}

// Middleware reads the tenant and user headers into the request context.
// Requests under /api/ without a tenant are rejected.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := Session{
			TenantID: strings.TrimSpace(r.Header.Get(TenantHeader)),
			UserID:   strings.TrimSpace(r.Header.Get(UserHeader)),
		}
		if s.TenantID == "" && strings.HasPrefix(r.URL.Path, "/api/") {
			http.Error(w, "missing "+TenantHeader+" header", http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}
