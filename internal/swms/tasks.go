package swms

import (
	"context"
	"net/http"
)

// ListTasks returns the tasks visible to the session: all of them for
// managers and admins, the assigned ones for employees.
func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var out []Task
	err := c.do(ctx, call{method: http.MethodGet, endpoint: "/api/tasks", path: "/api/tasks", out: &out})
	return out, err
}

func (c *Client) GetTask(ctx context.Context, id int64) (Task, error) {
	var out Task
	err := c.do(ctx, call{method: http.MethodGet, endpoint: "/api/tasks/{id}", path: idPath("/api/tasks", id), out: &out})
	return out, err
}

func (c *Client) CreateTask(ctx context.Context, in TaskRequest) (Task, error) {
	var out Task
	err := c.do(ctx, call{method: http.MethodPost, endpoint: "/api/tasks", path: "/api/tasks", in: in, out: &out})
	return out, err
}

// UpdateTask replaces a task. Employees may only change the status of their own tasks.
func (c *Client) UpdateTask(ctx context.Context, id int64, in TaskRequest) (Task, error) {
	var out Task
	err := c.do(ctx, call{method: http.MethodPut, endpoint: "/api/tasks/{id}", path: idPath("/api/tasks", id), in: in, out: &out})
	return out, err
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, call{method: http.MethodDelete, endpoint: "/api/tasks/{id}", path: idPath("/api/tasks", id)})
}
