package console

import (
	"net/http"
	"strings"

	"github.com/swms/swms-console/internal/auth"
	"github.com/swms/swms-console/internal/swms"
)

type tasksPageData struct {
	Tasks     []swms.Task
	CanManage bool
	Statuses  []swms.TaskStatus
	Form      taskForm
	Errors    map[string]string
	Prefix    string
}

func (h *Handler) showTasks(w http.ResponseWriter, r *http.Request) {
	h.renderTasks(w, r, http.StatusOK, taskForm{}, map[string]string{})
}

func (h *Handler) renderTasks(w http.ResponseWriter, r *http.Request, status int, form taskForm, errs map[string]string) {
	tasks, err := h.api.ListTasks(r.Context())
	if rejected(err) {
		return
	}
	if err != nil {
		var listErrs map[string]string
		status, listErrs = h.failure(r, err, "Failed to load tasks.")
		if _, ok := errs["general"]; !ok {
			errs["general"] = listErrs["general"]
		}
	}
	h.render(w, r, status, "pages/tasks.html", "Tasks", tasksPageData{
		Tasks:     tasks,
		CanManage: auth.FromContext(r.Context()).CanManage(),
		Statuses:  swms.TaskStatuses,
		Form:      form,
		Errors:    errs,
		Prefix:    section(r),
	})
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	if !auth.FromContext(r.Context()).CanManage() {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := taskForm{
		Title:        strings.TrimSpace(r.PostFormValue("title")),
		Description:  strings.TrimSpace(r.PostFormValue("description")),
		AssignedToID: parseID(r.PostFormValue("assigned_to_id")),
		Deadline:     strings.TrimSpace(r.PostFormValue("deadline")),
		Status:       strings.TrimSpace(r.PostFormValue("status")),
	}
	if errs := h.validate(form); len(errs) > 0 {
		h.renderTasks(w, r, http.StatusBadRequest, form, errs)
		return
	}
	status := swms.TaskStatus(form.Status)
	if status == "" {
		status = swms.TaskTodo
	}
	_, err := h.api.CreateTask(r.Context(), swms.TaskRequest{
		Title:        form.Title,
		Description:  form.Description,
		Status:       status,
		AssignedToID: form.AssignedToID,
		Deadline:     form.Deadline,
	})
	if rejected(err) {
		return
	}
	if err != nil {
		code, errs := h.failure(r, err, "Failed to create task.")
		h.renderTasks(w, r, code, form, errs)
		return
	}
	h.redirectWithFlash(w, r, section(r)+"/tasks", "success", "Task created.")
}

// updateTaskStatus changes only the status. The backend expects the whole
// task request, so the current task supplies the other fields.
func (h *Handler) updateTaskStatus(w http.ResponseWriter, r *http.Request) {
	target := section(r) + "/tasks"
	id, ok := pathID(r)
	if !ok {
		h.redirectWithFlash(w, r, target, "error", "Unknown task.")
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := taskStatusForm{Status: strings.TrimSpace(r.PostFormValue("status"))}
	if errs := h.validate(form); len(errs) > 0 {
		h.redirectWithFlash(w, r, target, "error", errs["Status"])
		return
	}
	task, err := h.api.GetTask(r.Context(), id)
	if rejected(err) {
		return
	}
	if err == nil {
		_, err = h.api.UpdateTask(r.Context(), id, swms.TaskRequest{
			Title:        task.Title,
			Description:  task.Description,
			Status:       swms.TaskStatus(form.Status),
			AssignedToID: task.AssignedToID,
			Deadline:     task.Deadline,
		})
	}
	if rejected(err) {
		return
	}
	if err != nil {
		_, errs := h.failure(r, err, "Failed to update status.")
		h.redirectWithFlash(w, r, target, "error", errs["general"])
		return
	}
	h.redirectWithFlash(w, r, target, "success", "Status updated.")
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	target := section(r) + "/tasks"
	if !auth.FromContext(r.Context()).CanManage() {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	id, ok := pathID(r)
	if !ok {
		h.redirectWithFlash(w, r, target, "error", "Unknown task.")
		return
	}
	err := h.api.DeleteTask(r.Context(), id)
	if rejected(err) {
		return
	}
	if err != nil {
		_, errs := h.failure(r, err, "Failed to delete task.")
		h.redirectWithFlash(w, r, target, "error", errs["general"])
		return
	}
	h.redirectWithFlash(w, r, target, "success", "Task deleted.")
}
