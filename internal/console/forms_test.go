package console

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/swms/swms-console/internal/auth"
	"github.com/swms/swms-console/internal/swms"
)

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Assigned to id", humanize("AssignedToID"))
	assert.Equal(t, "Check in", humanize("CheckIn"))
	assert.Equal(t, "Email", humanize("Email"))
}

func TestFieldName(t *testing.T) {
	assert.Equal(t, "AssignedToID", fieldName("assignedToId"))
	assert.Equal(t, "Title", fieldName("title"))
	assert.Equal(t, "", fieldName(""))
}

func TestWithSeconds(t *testing.T) {
	assert.Equal(t, "09:30:00", withSeconds("09:30"))
	assert.Equal(t, "09:30:15", withSeconds("09:30:15"))
	assert.Equal(t, "", withSeconds(""))
	assert.Equal(t, "09:30", clockValue(" 09:30:59 "))
}

func TestParseID(t *testing.T) {
	assert.Equal(t, int64(12), parseID(" 12 "))
	assert.Zero(t, parseID("-3"))
	assert.Zero(t, parseID("abc"))
}

func TestValidateMessages(t *testing.T) {
	h := &Handler{validator: validator.New()}

	errs := h.validate(attendanceForm{Date: "05/03/2025", CheckIn: "9am"})
	assert.Equal(t, "User id is required", errs["UserID"])
	assert.Equal(t, "Date has an invalid format", errs["Date"])
	assert.Equal(t, "Check in has an invalid format", errs["CheckIn"])

	assert.Empty(t, h.validate(taskStatusForm{Status: "IN_PROGRESS"}))
	assert.Equal(t, "Status must be one of TODO, IN_PROGRESS, COMPLETED, CANCELLED", h.validate(taskStatusForm{Status: "DONE"})["Status"])
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&swms.Error{Status: http.StatusBadRequest}, http.StatusBadRequest},
		{&swms.Error{Status: http.StatusUnprocessableEntity}, http.StatusBadRequest},
		{&swms.Error{Status: http.StatusForbidden}, http.StatusForbidden},
		{&swms.Error{Status: http.StatusNotFound}, http.StatusNotFound},
		{&swms.Error{Status: http.StatusInternalServerError}, http.StatusBadGateway},
		{fmt.Errorf("swms: GET /api/tasks: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{errors.New("connection refused"), http.StatusBadGateway},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestNavigation(t *testing.T) {
	labels := func(role auth.Role) []string {
		var out []string
		for _, link := range navigation(role) {
			out = append(out, link.Label)
		}
		return out
	}
	assert.Equal(t, []string{"Dashboard", "Users", "Tasks", "Attendance", "Profile"}, labels(auth.RoleAdmin))
	assert.Equal(t, []string{"Dashboard", "Tasks", "Attendance", "Profile"}, labels(auth.RoleManager))
	assert.Equal(t, []string{"Dashboard", "My Tasks", "My Attendance", "Profile"}, labels(auth.RoleEmployee))
	assert.Equal(t, []string{"Profile"}, labels(auth.Role("AUDITOR")))

	assert.Equal(t, "/employee/tasks", navigation(auth.RoleEmployee)[1].Path)
}
