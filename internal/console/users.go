package console

import (
	"net/http"

	"github.com/swms/swms-console/internal/swms"
)

type usersPageData struct {
	Users  []swms.User
	Errors map[string]string
}

func (h *Handler) showUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.api.ListUsers(r.Context())
	if rejected(err) {
		return
	}
	page := usersPageData{Users: users, Errors: map[string]string{}}
	status := http.StatusOK
	if err != nil {
		status, page.Errors = h.failure(r, err, "Failed to load users.")
	}
	h.render(w, r, status, "pages/users.html", "Users", page)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	target := section(r) + "/users"
	id, ok := pathID(r)
	if !ok {
		h.redirectWithFlash(w, r, target, "error", "Unknown user.")
		return
	}
	err := h.api.DeleteUser(r.Context(), id)
	if rejected(err) {
		return
	}
	if err != nil {
		_, errs := h.failure(r, err, "Failed to delete user.")
		h.redirectWithFlash(w, r, target, "error", errs["general"])
		return
	}
	h.redirectWithFlash(w, r, target, "success", "User deleted.")
}
