package console

import (
	"github.com/swms/swms-console/internal/auth"
	"github.com/swms/swms-console/internal/view"
)

// navigation returns the sidebar links for role. Employees see their own
// work only, so their labels read "My ...".
func navigation(role auth.Role) []view.NavLink {
	prefix := role.Prefix()
	switch role {
	case auth.RoleAdmin:
		return []view.NavLink{
			{Path: prefix + "/dashboard", Label: "Dashboard"},
			{Path: prefix + "/users", Label: "Users"},
			{Path: prefix + "/tasks", Label: "Tasks"},
			{Path: prefix + "/attendance", Label: "Attendance"},
			{Path: "/profile", Label: "Profile"},
		}
	case auth.RoleManager:
		return []view.NavLink{
			{Path: prefix + "/dashboard", Label: "Dashboard"},
			{Path: prefix + "/tasks", Label: "Tasks"},
			{Path: prefix + "/attendance", Label: "Attendance"},
			{Path: "/profile", Label: "Profile"},
		}
	case auth.RoleEmployee:
		return []view.NavLink{
			{Path: prefix + "/dashboard", Label: "Dashboard"},
			{Path: prefix + "/tasks", Label: "My Tasks"},
			{Path: prefix + "/attendance", Label: "My Attendance"},
			{Path: "/profile", Label: "Profile"},
		}
	}
	return []view.NavLink{{Path: "/profile", Label: "Profile"}}
}
