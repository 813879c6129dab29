package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type registerForm struct {
	Name       string `validate:"required,max=100"`
	Email      string `validate:"required,email"`
	Password   string `validate:"required,min=6"`
	Department string `validate:"max=100"`
	Role       string `validate:"omitempty,oneof=ADMIN MANAGER EMPLOYEE"`
}

type forgotPasswordForm struct {
	Email string `validate:"required,email"`
}

type resetPasswordForm struct {
	Token       string `validate:"required"`
	NewPassword string `validate:"required,min=6"`
}

type taskForm struct {
	Title        string `validate:"required,max=200"`
	Description  string `validate:"max=2000"`
	AssignedToID int64  `validate:"required,gt=0"`
	Deadline     string `validate:"omitempty,datetime=2006-01-02"`
	Status       string `validate:"omitempty,oneof=TODO IN_PROGRESS COMPLETED CANCELLED"`
}

type taskStatusForm struct {
	Status string `validate:"required,oneof=TODO IN_PROGRESS COMPLETED CANCELLED"`
}

type attendanceForm struct {
	UserID   int64  `validate:"required,gt=0"`
	Date     string `validate:"required,datetime=2006-01-02"`
	CheckIn  string `validate:"omitempty,datetime=15:04"`
	CheckOut string `validate:"omitempty,datetime=15:04"`
	Notes    string `validate:"max=500"`
}

// validate runs struct validation and returns field name to message.
func (h *Handler) validate(form any) map[string]string {
	errs := make(map[string]string)
	err := h.validator.Struct(form)
	if err == nil {
		return errs
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs["general"] = err.Error()
		return errs
	}
	for _, fieldErr := range fieldErrs {
		errs[fieldErr.Field()] = message(fieldErr)
	}
	return errs
}

func message(fe validator.FieldError) string {
	name := humanize(fe.Field())
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return "Provide a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	case "gt":
		return name + " must be a positive number"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return name + " has an invalid format"
	}
	return name + " is invalid"
}

// humanize turns AssignedToID into "Assigned to id".
func humanize(field string) string {
	var b strings.Builder
	prevLower := false
	for i, r := range field {
		upper := unicode.IsUpper(r)
		if upper && prevLower {
			b.WriteByte(' ')
		}
		if i > 0 {
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
		prevLower = !upper
	}
	return b.String()
}

// fieldName maps a backend JSON field such as assignedToId onto the form
// field name used by the templates.
func fieldName(field string) string {
	if field == "" {
		return field
	}
	name := strings.ToUpper(field[:1]) + field[1:]
	if strings.HasSuffix(name, "Id") {
		name = strings.TrimSuffix(name, "Id") + "ID"
	}
	return name
}

// parseID reads a positive integer form value; zero when absent or invalid.
func parseID(raw string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

// withSeconds turns an HTML time input (HH:MM) into the backend's HH:MM:SS.
func withSeconds(clock string) string {
	if len(clock) == len("15:04") {
		return clock + ":00"
	}
	return clock
}
