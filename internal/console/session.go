package console

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/swms/swms-console/internal/auth"
	"github.com/swms/swms-console/internal/shared"
	"github.com/swms/swms-console/internal/swms"
)

type loginPageData struct {
	Form   loginForm
	Errors map[string]string
}

type registerPageData struct {
	Form   registerForm
	Errors map[string]string
	Roles  []auth.Role
}

func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "pages/login.html", "Sign in", loginPageData{Errors: map[string]string{}})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := loginForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	errs := h.validate(form)
	if len(errs) > 0 {
		h.render(w, r, http.StatusBadRequest, "pages/login.html", "Sign in", loginPageData{Form: form, Errors: errs})
		return
	}

	resp, err := h.api.Login(r.Context(), swms.LoginRequest{Email: form.Email, Password: form.Password})
	if err != nil {
		status, errs := h.failure(r, err, "Login failed. Check your credentials.")
		if errors.Is(err, swms.ErrBadCredentials) {
			errs = map[string]string{"general": "Invalid email or password."}
		}
		h.render(w, r, status, "pages/login.html", "Sign in", loginPageData{Form: loginForm{Email: form.Email}, Errors: errs})
		return
	}
	landing, err := h.establish(r, resp)
	if err != nil {
		h.render(w, r, http.StatusForbidden, "pages/login.html", "Sign in", loginPageData{Form: loginForm{Email: form.Email}, Errors: map[string]string{"general": loginRefusal(err)}})
		return
	}
	h.logger.Info("login", slog.String("role", resp.Role), slog.Int64("user_id", resp.UserID))
	http.Redirect(w, r, landing, http.StatusSeeOther)
}

func (h *Handler) showRegister(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "pages/register.html", "Create account", registerPageData{
		Form:   registerForm{Role: string(auth.RoleEmployee)},
		Errors: map[string]string{},
		Roles:  auth.Roles,
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := registerForm{
		Name:       strings.TrimSpace(r.PostFormValue("name")),
		Email:      strings.TrimSpace(r.PostFormValue("email")),
		Password:   r.PostFormValue("password"),
		Department: strings.TrimSpace(r.PostFormValue("department")),
		Role:       strings.ToUpper(strings.TrimSpace(r.PostFormValue("role"))),
	}
	page := registerPageData{Form: form, Roles: auth.Roles}
	page.Form.Password = ""
	if errs := h.validate(form); len(errs) > 0 {
		page.Errors = errs
		h.render(w, r, http.StatusBadRequest, "pages/register.html", "Create account", page)
		return
	}

	resp, err := h.api.Register(r.Context(), swms.RegisterRequest{
		Name:       form.Name,
		Email:      form.Email,
		Password:   form.Password,
		Department: form.Department,
		Role:       form.Role,
	})
	if err != nil {
		status, errs := h.failure(r, err, "Registration failed.")
		page.Errors = errs
		h.render(w, r, status, "pages/register.html", "Create account", page)
		return
	}
	landing, err := h.establish(r, resp)
	if err != nil {
		page.Errors = map[string]string{"general": loginRefusal(err)}
		h.render(w, r, http.StatusForbidden, "pages/register.html", "Create account", page)
		return
	}
	h.logger.Info("registered", slog.String("role", resp.Role), slog.Int64("user_id", resp.UserID))
	http.Redirect(w, r, landing, http.StatusSeeOther)
}

// establish records a login response in the Auth Context and moves the
// cookie session onto a fresh identifier.
func (h *Handler) establish(r *http.Request, resp swms.AuthResponse) (string, error) {
	landing, err := auth.FromContext(r.Context()).Login(toSession(resp))
	if err != nil {
		h.logger.Warn("login refused", slog.String("role", resp.Role), slog.Any("error", err))
		return "", err
	}
	h.sessionManager.Renew(shared.SessionFromContext(r.Context()))
	return landing, nil
}

func toSession(resp swms.AuthResponse) auth.Session {
	return auth.Session{
		Token:  resp.Token,
		Role:   auth.Role(strings.ToUpper(strings.TrimSpace(resp.Role))),
		Name:   resp.Name,
		Email:  resp.Email,
		UserID: resp.UserID,
	}
}

func loginRefusal(err error) string {
	if errors.Is(err, auth.ErrUnknownRole) {
		return "Your account has a role this console does not support."
	}
	return "Login failed. Please try again."
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	target := auth.FromContext(r.Context()).Logout()
	h.redirectWithFlash(w, r, target, "success", "You have been signed out.")
}
