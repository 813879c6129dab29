package auth

import "net/http"

// Outcome is the verdict of a guard decision.
type Outcome int

const (
	// Permit renders the requested destination.
	Permit Outcome = iota
	// RedirectLogin sends an anonymous visitor to the login page.
	RedirectLogin
	// RedirectLanding sends an under-privileged session to its own dashboard.
	RedirectLanding
)

// Decision is the result of Decide. Location is empty when permitted.
type Decision struct {
	Outcome  Outcome
	Location string
}

// Permitted reports whether the destination may be rendered.
func (d Decision) Permitted() bool {
	return d.Outcome == Permit
}

// Decide evaluates the guard rules in order: no session goes to login, a
// role outside a non-empty allow-list goes to its landing page, anything
// else is permitted. An empty allow-list accepts any session.
func Decide(sess *Session, allowed ...Role) Decision {
	if sess == nil {
		return Decision{Outcome: RedirectLogin, Location: LoginPath}
	}
	if len(allowed) > 0 && !containsRole(allowed, sess.Role) {
		landing, ok := LandingPage(sess.Role)
		if !ok {
			return Decision{Outcome: RedirectLogin, Location: LoginPath}
		}
		return Decision{Outcome: RedirectLanding, Location: landing}
	}
	return Decision{Outcome: Permit}
}

func containsRole(roles []Role, role Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// Guard gates a route group by Decide.
func Guard(allowed ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sess *Session
			if current, ok := FromContext(r.Context()).Current(); ok {
				sess = &current
			}
			decision := Decide(sess, allowed...)
			if !decision.Permitted() {
				http.Redirect(w, r, decision.Location, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
