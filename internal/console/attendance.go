package console

import (
	"net/http"
	"strings"
	"time"

	"github.com/swms/swms-console/internal/auth"
	"github.com/swms/swms-console/internal/swms"
)

type attendanceFilter struct {
	Date string
}

type attendancePageData struct {
	Records   []swms.Attendance
	CanManage bool
	Statuses  []swms.AttendanceStatus
	Form      attendanceForm
	Filter    attendanceFilter
	Errors    map[string]string
	Prefix    string
}

func (h *Handler) showAttendance(w http.ResponseWriter, r *http.Request) {
	form := attendanceForm{Date: time.Now().Format(time.DateOnly)}
	h.renderAttendance(w, r, http.StatusOK, form, map[string]string{})
}

func (h *Handler) renderAttendance(w http.ResponseWriter, r *http.Request, status int, form attendanceForm, errs map[string]string) {
	ac := auth.FromContext(r.Context())
	filter := attendanceFilter{}
	var (
		records []swms.Attendance
		err     error
	)
	if date := strings.TrimSpace(r.URL.Query().Get("date")); date != "" && ac.CanManage() {
		if _, parseErr := time.Parse(time.DateOnly, date); parseErr != nil {
			errs["general"] = "Filter date must be YYYY-MM-DD."
			status = http.StatusBadRequest
		} else {
			filter.Date = date
		}
	}
	if filter.Date != "" {
		records, err = h.api.AttendanceByDate(r.Context(), filter.Date)
	} else {
		records, err = h.api.ListAttendance(r.Context())
	}
	if rejected(err) {
		return
	}
	if err != nil {
		var listErrs map[string]string
		status, listErrs = h.failure(r, err, "Failed to load attendance.")
		if _, ok := errs["general"]; !ok {
			errs["general"] = listErrs["general"]
		}
	}
	h.render(w, r, status, "pages/attendance.html", "Attendance", attendancePageData{
		Records:   records,
		CanManage: ac.CanManage(),
		Statuses:  swms.AttendanceStatuses,
		Form:      form,
		Filter:    filter,
		Errors:    errs,
		Prefix:    section(r),
	})
}

// createAttendance records a day. Employees may only check themselves in,
// so their own user id replaces whatever the form carried.
func (h *Handler) createAttendance(w http.ResponseWriter, r *http.Request) {
	ac := auth.FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := attendanceForm{
		UserID:   parseID(r.PostFormValue("user_id")),
		Date:     strings.TrimSpace(r.PostFormValue("date")),
		CheckIn:  clockValue(r.PostFormValue("check_in")),
		CheckOut: clockValue(r.PostFormValue("check_out")),
		Notes:    strings.TrimSpace(r.PostFormValue("notes")),
	}
	if !ac.CanManage() {
		if current, ok := ac.Current(); ok {
			form.UserID = current.UserID
		}
	}
	if errs := h.validate(form); len(errs) > 0 {
		h.renderAttendance(w, r, http.StatusBadRequest, form, errs)
		return
	}
	_, err := h.api.CreateAttendance(r.Context(), swms.AttendanceRequest{
		UserID:   form.UserID,
		Date:     form.Date,
		CheckIn:  withSeconds(form.CheckIn),
		CheckOut: withSeconds(form.CheckOut),
		Notes:    form.Notes,
	})
	if rejected(err) {
		return
	}
	if err != nil {
		code, errs := h.failure(r, err, "Failed to record attendance.")
		h.renderAttendance(w, r, code, form, errs)
		return
	}
	h.redirectWithFlash(w, r, section(r)+"/attendance", "success", "Attendance recorded.")
}

func (h *Handler) deleteAttendance(w http.ResponseWriter, r *http.Request) {
	target := section(r) + "/attendance"
	if !auth.FromContext(r.Context()).CanManage() {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	id, ok := pathID(r)
	if !ok {
		h.redirectWithFlash(w, r, target, "error", "Unknown record.")
		return
	}
	err := h.api.DeleteAttendance(r.Context(), id)
	if rejected(err) {
		return
	}
	if err != nil {
		_, errs := h.failure(r, err, "Failed to delete record.")
		h.redirectWithFlash(w, r, target, "error", errs["general"])
		return
	}
	h.redirectWithFlash(w, r, target, "success", "Attendance record deleted.")
}

// clockValue trims a time input down to HH:MM; browsers may send seconds.
func clockValue(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) > len("15:04") {
		return raw[:len("15:04")]
	}
	return raw
}
