package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/swms/swms-console/internal/shared"
)

// Middleware installs a Context on every request, backed by the cookie session.
type Middleware struct {
	Policy UnknownRolePolicy
	Logger *slog.Logger
	Now    func() time.Time
}

// Inject must run after the session middleware.
func (m Middleware) Inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		if sess == nil {
			if m.Logger != nil {
				m.Logger.Error("auth middleware mounted without session middleware", slog.String("path", r.URL.Path))
			}
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		ac := NewContext(NewStore(sess), Options{UnknownRole: m.Policy, Now: m.Now})
		if ac.Expired() && m.Logger != nil {
			m.Logger.Info("stored session token expired", slog.String("path", r.URL.Path))
		}
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), ac)))
	})
}
