// Package console serves the role-based SWMS pages. Every page reads the
// logged-in identity from auth.FromContext and talks to the backend through
// the shared swms client.
package console

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/swms/swms-console/internal/auth"
	"github.com/swms/swms-console/internal/shared"
	"github.com/swms/swms-console/internal/swms"
	"github.com/swms/swms-console/internal/view"
)

// Backend is the slice of the SWMS REST API the pages use.
type Backend interface {
	Login(ctx context.Context, in swms.LoginRequest) (swms.AuthResponse, error)
	Register(ctx context.Context, in swms.RegisterRequest) (swms.AuthResponse, error)
	ForgotPassword(ctx context.Context, email string) (swms.ResetToken, error)
	ResetPassword(ctx context.Context, in swms.ResetPasswordRequest) (string, error)

	Me(ctx context.Context) (swms.User, error)
	ListUsers(ctx context.Context) ([]swms.User, error)
	DeleteUser(ctx context.Context, id int64) error

	ListTasks(ctx context.Context) ([]swms.Task, error)
	GetTask(ctx context.Context, id int64) (swms.Task, error)
	CreateTask(ctx context.Context, in swms.TaskRequest) (swms.Task, error)
	UpdateTask(ctx context.Context, id int64, in swms.TaskRequest) (swms.Task, error)
	DeleteTask(ctx context.Context, id int64) error

	ListAttendance(ctx context.Context) ([]swms.Attendance, error)
	AttendanceByDate(ctx context.Context, date string) ([]swms.Attendance, error)
	CreateAttendance(ctx context.Context, in swms.AttendanceRequest) (swms.Attendance, error)
	DeleteAttendance(ctx context.Context, id int64) error
}

// Handler wires the console pages.
type Handler struct {
	logger         *slog.Logger
	api            Backend
	templates      *view.Engine
	sessionManager *shared.SessionManager
	csrfManager    *shared.CSRFManager
	validator      *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, api Backend, templates *view.Engine, sessions *shared.SessionManager, csrf *shared.CSRFManager) *Handler {
	return &Handler{
		logger:         logger,
		api:            api,
		templates:      templates,
		sessionManager: sessions,
		csrfManager:    csrf,
		validator:      validator.New(),
	}
}

// MountRoutes registers every page. The router must already carry the
// session, auth and rejection middleware.
func (h *Handler) MountRoutes(r chi.Router) {
	r.NotFound(h.toLogin)
	r.Get("/", h.toLogin)

	r.Get(auth.LoginPath, h.showLogin)
	r.Post(auth.LoginPath, h.handleLogin)
	r.Get(auth.RegisterPath, h.showRegister)
	r.Post(auth.RegisterPath, h.handleRegister)
	r.Post("/logout", h.handleLogout)
	r.Get("/forgot-password", h.showForgotPassword)
	r.Post("/forgot-password", h.handleForgotPassword)
	r.Get("/reset-password", h.showResetPassword)
	r.Post("/reset-password", h.handleResetPassword)

	r.Group(func(r chi.Router) {
		r.Use(auth.Guard())
		r.Get("/profile", h.showProfile)
	})

	for _, role := range auth.Roles {
		r.Route(role.Prefix(), func(r chi.Router) {
			r.Use(auth.Guard(role))
			r.NotFound(h.toLogin)
			r.Get("/dashboard", h.showDashboard)
			r.Get("/tasks", h.showTasks)
			r.Post("/tasks", h.createTask)
			r.Post("/tasks/{id}/status", h.updateTaskStatus)
			r.Post("/tasks/{id}/delete", h.deleteTask)
			r.Get("/attendance", h.showAttendance)
			r.Post("/attendance", h.createAttendance)
			r.Post("/attendance/{id}/delete", h.deleteAttendance)
			if role == auth.RoleAdmin {
				r.Get("/users", h.showUsers)
				r.Post("/users/{id}/delete", h.deleteUser)
			}
		})
	}
}

func (h *Handler) toLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
}

// render writes a page with the shared layout data filled in.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page, title string, data any) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, err := h.csrfManager.EnsureToken(r.Context(), sess)
	if err != nil {
		h.logger.Warn("ensure csrf token", slog.Any("error", err))
	}
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:       title,
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	if current, ok := auth.FromContext(r.Context()).Current(); ok {
		viewData.Session = &current
		viewData.Nav = navigation(current.Role)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.Render(w, page, viewData); err != nil {
		h.logger.Error("render page", slog.String("page", page), slog.Any("error", err))
	}
}

// redirectWithFlash queues a message for the next page and navigates there.
func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: kind, Message: message})
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// rejected reports whether err is the backend refusing the session
// credential. The rejection middleware owns the response in that case.
func rejected(err error) bool {
	return errors.Is(err, swms.ErrUnauthorized)
}

// failure turns a backend error into an inline page message and a status.
func (h *Handler) failure(r *http.Request, err error, fallback string) (int, map[string]string) {
	errs := map[string]string{"general": fallback}
	var apiErr *swms.Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			errs["general"] = apiErr.Message
		}
		for field, msg := range apiErr.Fields {
			errs[fieldName(field)] = msg
		}
	} else {
		h.logger.Warn("swms call failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	}
	return statusFor(err), errs
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, swms.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, swms.ErrBadCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, swms.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, swms.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// section is the role prefix of the current route, e.g. /manager.
func section(r *http.Request) string {
	if current, ok := auth.FromContext(r.Context()).Current(); ok {
		return current.Role.Prefix()
	}
	return ""
}
