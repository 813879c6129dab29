package console

import (
	"net/http"
	"time"

	"github.com/swms/swms-console/internal/auth"
	"github.com/swms/swms-console/internal/swms"
)

type profilePageData struct {
	User      *swms.User
	Errors    map[string]string
	ExpiresAt string
}

func (h *Handler) showProfile(w http.ResponseWriter, r *http.Request) {
	ac := auth.FromContext(r.Context())
	page := profilePageData{Errors: map[string]string{}}
	if token, ok := ac.Token(); ok {
		if exp, ok := auth.TokenExpiry(token); ok {
			page.ExpiresAt = exp.Local().Format(time.DateTime)
		}
	}
	me, err := h.api.Me(r.Context())
	if rejected(err) {
		return
	}
	status := http.StatusOK
	if err != nil {
		status, page.Errors = h.failure(r, err, "Could not load your profile.")
	} else {
		page.User = &me
	}
	h.render(w, r, status, "pages/profile.html", "Profile", page)
}
