package console

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/swms/swms-console/internal/auth"
)

type dashboardStats struct {
	Users      int
	Tasks      int
	Attendance int
}

type dashboardPageData struct {
	Stats     dashboardStats
	IsAdmin   bool
	CanManage bool
	Prefix    string
}

func (h *Handler) showDashboard(w http.ResponseWriter, r *http.Request) {
	ac := auth.FromContext(r.Context())
	stats := h.loadStats(r.Context(), ac.IsAdmin())
	if ac.Rejected() {
		return
	}
	h.render(w, r, http.StatusOK, "pages/dashboard.html", "Dashboard", dashboardPageData{
		Stats:     stats,
		IsAdmin:   ac.IsAdmin(),
		CanManage: ac.CanManage(),
		Prefix:    section(r),
	})
}

// loadStats fetches the stat cards concurrently. A failed stat renders as
// zero; the cards are informational.
func (h *Handler) loadStats(ctx context.Context, withUsers bool) dashboardStats {
	var stats dashboardStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tasks, err := h.api.ListTasks(gctx)
		if err != nil {
			h.logger.Debug("dashboard tasks", slog.Any("error", err))
			return nil
		}
		stats.Tasks = len(tasks)
		return nil
	})
	g.Go(func() error {
		records, err := h.api.ListAttendance(gctx)
		if err != nil {
			h.logger.Debug("dashboard attendance", slog.Any("error", err))
			return nil
		}
		stats.Attendance = len(records)
		return nil
	})
	if withUsers {
		g.Go(func() error {
			users, err := h.api.ListUsers(gctx)
			if err != nil {
				h.logger.Debug("dashboard users", slog.Any("error", err))
				return nil
			}
			stats.Users = len(users)
			return nil
		})
	}
	_ = g.Wait()
	return stats
}
