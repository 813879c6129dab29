package swms

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListAttendance returns the records visible to the session.
func (c *Client) ListAttendance(ctx context.Context) ([]Attendance, error) {
	var out []Attendance
	err := c.do(ctx, call{method: http.MethodGet, endpoint: "/api/attendance", path: "/api/attendance", out: &out})
	return out, err
}

// AttendanceByDate returns every record for an ISO date. Managers and admins only.
func (c *Client) AttendanceByDate(ctx context.Context, date string) ([]Attendance, error) {
	var out []Attendance
	err := c.do(ctx, call{method: http.MethodGet, endpoint: "/api/attendance/date/{date}", path: "/api/attendance/date/" + url.PathEscape(date), out: &out})
	return out, err
}

// AttendanceRange returns one user's records between two ISO dates inclusive.
func (c *Client) AttendanceRange(ctx context.Context, userID int64, from, to string) ([]Attendance, error) {
	var out []Attendance
	query := url.Values{}
	query.Set("userId", strconv.FormatInt(userID, 10))
	query.Set("from", from)
	query.Set("to", to)
	err := c.do(ctx, call{method: http.MethodGet, endpoint: "/api/attendance/range", path: "/api/attendance/range", query: query, out: &out})
	return out, err
}

func (c *Client) GetAttendance(ctx context.Context, id int64) (Attendance, error) {
	var out Attendance
	err := c.do(ctx, call{method: http.MethodGet, endpoint: "/api/attendance/{id}", path: idPath("/api/attendance", id), out: &out})
	return out, err
}

func (c *Client) CreateAttendance(ctx context.Context, in AttendanceRequest) (Attendance, error) {
	var out Attendance
	err := c.do(ctx, call{method: http.MethodPost, endpoint: "/api/attendance", path: "/api/attendance", in: in, out: &out})
	return out, err
}

func (c *Client) UpdateAttendance(ctx context.Context, id int64, in AttendanceRequest) (Attendance, error) {
	var out Attendance
	err := c.do(ctx, call{method: http.MethodPut, endpoint: "/api/attendance/{id}", path: idPath("/api/attendance", id), in: in, out: &out})
	return out, err
}

func (c *Client) DeleteAttendance(ctx context.Context, id int64) error {
	return c.do(ctx, call{method: http.MethodDelete, endpoint: "/api/attendance/{id}", path: idPath("/api/attendance", id)})
}
