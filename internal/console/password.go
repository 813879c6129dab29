package console

import (
	"net/http"
	"strings"

	"github.com/swms/swms-console/internal/auth"
	"github.com/swms/swms-console/internal/swms"
)

type forgotPasswordPageData struct {
	Form   forgotPasswordForm
	Errors map[string]string
	Reset  *swms.ResetToken
}

type resetPasswordPageData struct {
	Form   resetPasswordForm
	Errors map[string]string
}

func (h *Handler) showForgotPassword(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "pages/forgot_password.html", "Forgot password", forgotPasswordPageData{Errors: map[string]string{}})
}

func (h *Handler) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := forgotPasswordForm{Email: strings.TrimSpace(r.PostFormValue("email"))}
	if errs := h.validate(form); len(errs) > 0 {
		h.render(w, r, http.StatusBadRequest, "pages/forgot_password.html", "Forgot password", forgotPasswordPageData{Form: form, Errors: errs})
		return
	}
	reset, err := h.api.ForgotPassword(r.Context(), form.Email)
	if err != nil {
		status, errs := h.failure(r, err, "Could not request a reset token.")
		h.render(w, r, status, "pages/forgot_password.html", "Forgot password", forgotPasswordPageData{Form: form, Errors: errs})
		return
	}
	h.render(w, r, http.StatusOK, "pages/forgot_password.html", "Forgot password", forgotPasswordPageData{Form: form, Errors: map[string]string{}, Reset: &reset})
}

func (h *Handler) showResetPassword(w http.ResponseWriter, r *http.Request) {
	form := resetPasswordForm{Token: r.URL.Query().Get("token")}
	h.render(w, r, http.StatusOK, "pages/reset_password.html", "Reset password", resetPasswordPageData{Form: form, Errors: map[string]string{}})
}

func (h *Handler) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := resetPasswordForm{
		Token:       strings.TrimSpace(r.PostFormValue("token")),
		NewPassword: r.PostFormValue("new_password"),
	}
	page := resetPasswordPageData{Form: resetPasswordForm{Token: form.Token}}
	if errs := h.validate(form); len(errs) > 0 {
		page.Errors = errs
		h.render(w, r, http.StatusBadRequest, "pages/reset_password.html", "Reset password", page)
		return
	}
	msg, err := h.api.ResetPassword(r.Context(), swms.ResetPasswordRequest{Token: form.Token, NewPassword: form.NewPassword})
	if err != nil {
		status, errs := h.failure(r, err, "Could not reset the password.")
		page.Errors = errs
		h.render(w, r, status, "pages/reset_password.html", "Reset password", page)
		return
	}
	if msg == "" {
		msg = "Password updated. Please sign in."
	}
	h.redirectWithFlash(w, r, auth.LoginPath, "success", msg)
}
