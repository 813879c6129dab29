package console_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/swms/swms-console/internal/swms"
)

// fakeAPI is an in-memory SWMS backend. Tokens are opaque "tok-<id>".
type fakeAPI struct {
	mu             sync.Mutex
	users          map[int64]swms.User
	passwords      map[string]string
	tasks          map[int64]swms.Task
	attendance     map[int64]swms.Attendance
	nextID         int64
	revoked        bool
	requests       []string
	lastAttendance swms.AttendanceRequest
	lastTaskUpdate swms.TaskRequest
}

func newFakeAPI() *fakeAPI {
	f := &fakeAPI{
		users:      make(map[int64]swms.User),
		passwords:  make(map[string]string),
		tasks:      make(map[int64]swms.Task),
		attendance: make(map[int64]swms.Attendance),
		nextID:     100,
	}
	f.users[1] = swms.User{ID: 1, Name: "Ann Admin", Email: "ann@swms.test", Department: "HQ", Role: "ADMIN"}
	f.users[2] = swms.User{ID: 2, Name: "Bob Manager", Email: "bob@swms.test", Department: "Ops", Role: "MANAGER"}
	f.users[3] = swms.User{ID: 3, Name: "Eve Employee", Email: "eve@swms.test", Department: "Ops", Role: "EMPLOYEE"}
	for _, u := range f.users {
		f.passwords[u.Email] = "secret1"
	}
	f.tasks[10] = swms.Task{ID: 10, Title: "Stock count", Description: "Aisle 4", Status: swms.TaskTodo, AssignedToID: 3, AssignedToName: "Eve Employee", CreatedByID: 2, CreatedByName: "Bob Manager", Deadline: "2025-12-31"}
	f.tasks[11] = swms.Task{ID: 11, Title: "Quarterly review", Status: swms.TaskInProgress, AssignedToID: 2, AssignedToName: "Bob Manager", CreatedByID: 1, CreatedByName: "Ann Admin"}
	f.attendance[20] = swms.Attendance{ID: 20, UserID: 3, UserName: "Eve Employee", Date: "2025-03-03", CheckIn: "09:05:00", Status: swms.AttendancePresent}
	f.attendance[21] = swms.Attendance{ID: 21, UserID: 2, UserName: "Bob Manager", Date: "2025-03-04", CheckIn: "08:55:00", Status: swms.AttendancePresent}
	return f
}

func (f *fakeAPI) revokeAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked = true
}

func (f *fakeAPI) seen(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.requests {
		if c == call {
			return true
		}
	}
	return false
}

func (f *fakeAPI) task(id int64) (swms.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	return t, ok
}

func (f *fakeAPI) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			f.mu.Lock()
			f.requests = append(f.requests, req.Method+" "+req.URL.Path)
			f.mu.Unlock()
			next.ServeHTTP(w, req)
		})
	})
	r.Post("/auth/login", f.login)
	r.Post("/auth/register", f.register)
	r.Post("/auth/forgot-password", func(w http.ResponseWriter, req *http.Request) {
		reply(w, http.StatusOK, swms.ResetToken{Message: "Reset token generated", Token: "reset-123"})
	})
	r.Post("/auth/reset-password", func(w http.ResponseWriter, req *http.Request) {
		var in swms.ResetPasswordRequest
		_ = json.NewDecoder(req.Body).Decode(&in)
		if in.Token != "reset-123" {
			reply(w, http.StatusBadRequest, map[string]string{"error": "Invalid or expired reset token"})
			return
		}
		reply(w, http.StatusOK, map[string]string{"message": "Password has been reset successfully"})
	})
	r.Group(func(r chi.Router) {
		r.Use(f.authenticate)
		r.Get("/users/me", func(w http.ResponseWriter, req *http.Request) {
			reply(w, http.StatusOK, caller(req))
		})
		r.Get("/api/users", f.listUsers)
		r.Delete("/api/users/{id}", f.deleteUser)
		r.Get("/api/tasks", f.listTasks)
		r.Get("/api/tasks/{id}", f.getTask)
		r.Post("/api/tasks", f.createTask)
		r.Put("/api/tasks/{id}", f.updateTask)
		r.Delete("/api/tasks/{id}", f.deleteTask)
		r.Get("/api/attendance", f.listAttendance)
		r.Get("/api/attendance/date/{date}", f.attendanceByDate)
		r.Post("/api/attendance", f.createAttendance)
		r.Delete("/api/attendance/{id}", f.deleteAttendance)
	})
	return r
}

type callerKey struct{}

func contextWithCaller(req *http.Request, user swms.User) context.Context {
	return context.WithValue(req.Context(), callerKey{}, user)
}

func caller(req *http.Request) swms.User {
	u, _ := req.Context().Value(callerKey{}).(swms.User)
	return u
}

func (f *fakeAPI) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		f.mu.Lock()
		revoked := f.revoked
		var (
			user swms.User
			ok   bool
		)
		if token, found := strings.CutPrefix(req.Header.Get("Authorization"), "Bearer tok-"); found {
			id, _ := strconv.ParseInt(token, 10, 64)
			user, ok = f.users[id]
		}
		f.mu.Unlock()
		if revoked || !ok {
			reply(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			return
		}
		next.ServeHTTP(w, req.WithContext(contextWithCaller(req, user)))
	})
}

func (f *fakeAPI) login(w http.ResponseWriter, req *http.Request) {
	var in swms.LoginRequest
	_ = json.NewDecoder(req.Body).Decode(&in)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.passwords[in.Email] != in.Password || in.Password == "" {
		reply(w, http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
		return
	}
	for _, u := range f.users {
		if u.Email == in.Email {
			reply(w, http.StatusOK, authResponse(u))
			return
		}
	}
	reply(w, http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
}

func (f *fakeAPI) register(w http.ResponseWriter, req *http.Request) {
	var in swms.RegisterRequest
	_ = json.NewDecoder(req.Body).Decode(&in)
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, taken := f.passwords[in.Email]; taken {
		reply(w, http.StatusBadRequest, map[string]string{"error": "Email already registered: " + in.Email})
		return
	}
	role := in.Role
	if role == "" {
		role = "EMPLOYEE"
	}
	f.nextID++
	u := swms.User{ID: f.nextID, Name: in.Name, Email: in.Email, Department: in.Department, Role: role}
	f.users[u.ID] = u
	f.passwords[u.Email] = in.Password
	reply(w, http.StatusCreated, authResponse(u))
}

func authResponse(u swms.User) swms.AuthResponse {
	return swms.AuthResponse{Token: fmt.Sprintf("tok-%d", u.ID), Role: u.Role, Name: u.Name, Email: u.Email, UserID: u.ID}
}

func (f *fakeAPI) listUsers(w http.ResponseWriter, req *http.Request) {
	if caller(req).Role != "ADMIN" {
		reply(w, http.StatusForbidden, map[string]string{"error": "Access denied"})
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]swms.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	reply(w, http.StatusOK, out)
}

func (f *fakeAPI) deleteUser(w http.ResponseWriter, req *http.Request) {
	id := urlID(req)
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		reply(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("User not found: %d", id)})
		return
	}
	delete(f.users, id)
	w.WriteHeader(http.StatusNoContent)
}

func (f *fakeAPI) listTasks(w http.ResponseWriter, req *http.Request) {
	me := caller(req)
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]swms.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		if me.Role == "EMPLOYEE" && t.AssignedToID != me.ID {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	reply(w, http.StatusOK, out)
}

func (f *fakeAPI) getTask(w http.ResponseWriter, req *http.Request) {
	t, ok := f.task(urlID(req))
	if !ok {
		reply(w, http.StatusNotFound, map[string]string{"error": "Task not found"})
		return
	}
	reply(w, http.StatusOK, t)
}

func (f *fakeAPI) createTask(w http.ResponseWriter, req *http.Request) {
	if caller(req).Role == "EMPLOYEE" {
		reply(w, http.StatusForbidden, map[string]string{"error": "Access denied"})
		return
	}
	var in swms.TaskRequest
	_ = json.NewDecoder(req.Body).Decode(&in)
	f.mu.Lock()
	defer f.mu.Unlock()
	assignee, ok := f.users[in.AssignedToID]
	if !ok {
		reply(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("User not found: %d", in.AssignedToID)})
		return
	}
	f.nextID++
	t := swms.Task{ID: f.nextID, Title: in.Title, Description: in.Description, Status: in.Status, AssignedToID: assignee.ID, AssignedToName: assignee.Name, CreatedByID: caller(req).ID, CreatedByName: caller(req).Name, Deadline: in.Deadline}
	f.tasks[t.ID] = t
	reply(w, http.StatusCreated, t)
}

func (f *fakeAPI) updateTask(w http.ResponseWriter, req *http.Request) {
	var in swms.TaskRequest
	_ = json.NewDecoder(req.Body).Decode(&in)
	if in.Title == "" || in.AssignedToID == 0 {
		reply(w, http.StatusBadRequest, map[string]string{"title": "Title is required", "assignedToId": "Assignee is required"})
		return
	}
	id := urlID(req)
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	if !ok {
		reply(w, http.StatusNotFound, map[string]string{"error": "Task not found"})
		return
	}
	f.lastTaskUpdate = in
	t.Status = in.Status
	f.tasks[id] = t
	reply(w, http.StatusOK, t)
}

func (f *fakeAPI) deleteTask(w http.ResponseWriter, req *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tasks, urlID(req))
	w.WriteHeader(http.StatusNoContent)
}

func (f *fakeAPI) listAttendance(w http.ResponseWriter, req *http.Request) {
	me := caller(req)
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]swms.Attendance, 0, len(f.attendance))
	for _, a := range f.attendance {
		if me.Role == "EMPLOYEE" && a.UserID != me.ID {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	reply(w, http.StatusOK, out)
}

func (f *fakeAPI) attendanceByDate(w http.ResponseWriter, req *http.Request) {
	date := chi.URLParam(req, "date")
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []swms.Attendance{}
	for _, a := range f.attendance {
		if a.Date == date {
			out = append(out, a)
		}
	}
	reply(w, http.StatusOK, out)
}

func (f *fakeAPI) createAttendance(w http.ResponseWriter, req *http.Request) {
	var in swms.AttendanceRequest
	_ = json.NewDecoder(req.Body).Decode(&in)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastAttendance = in
	user, ok := f.users[in.UserID]
	if !ok {
		reply(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("User not found: %d", in.UserID)})
		return
	}
	f.nextID++
	a := swms.Attendance{ID: f.nextID, UserID: user.ID, UserName: user.Name, Date: in.Date, CheckIn: in.CheckIn, CheckOut: in.CheckOut, Status: swms.AttendancePresent, Notes: in.Notes}
	f.attendance[a.ID] = a
	reply(w, http.StatusCreated, a)
}

func (f *fakeAPI) deleteAttendance(w http.ResponseWriter, req *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.attendance, urlID(req))
	w.WriteHeader(http.StatusNoContent)
}

func urlID(req *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
	return id
}

func reply(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
