package auth

import (
	"errors"
	"strings"
)

// Role is one of the closed set of SWMS authority levels.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

// Roles lists every recognised role in display order.
var Roles = []Role{RoleAdmin, RoleManager, RoleEmployee}

const (
	// LoginPath is where unauthenticated navigation ends up.
	LoginPath = "/login"
	// RegisterPath hosts the public registration form.
	RegisterPath = "/register"
)

var landingPages = map[Role]string{
	RoleAdmin:    "/admin/dashboard",
	RoleManager:  "/manager/dashboard",
	RoleEmployee: "/employee/dashboard",
}

var (
	// ErrUnknownRole is returned when a login record carries a role outside the closed set.
	ErrUnknownRole = errors.New("auth: unknown role")
	// ErrMissingToken is returned when a login record carries no credential.
	ErrMissingToken = errors.New("auth: session token missing")
)

// Valid reports whether r belongs to the closed set of roles.
func (r Role) Valid() bool {
	_, ok := landingPages[r]
	return ok
}

// Prefix returns the route prefix owned by the role, e.g. "/admin".
func (r Role) Prefix() string {
	if !r.Valid() {
		return ""
	}
	return "/" + strings.ToLower(string(r))
}

// ParseRole normalises user input into a Role.
func ParseRole(raw string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(raw)))
	if !role.Valid() {
		return "", ErrUnknownRole
	}
	return role, nil
}

// LandingPage returns the default dashboard path for role.
func LandingPage(role Role) (string, bool) {
	path, ok := landingPages[role]
	return path, ok
}

// Session is the authentication record issued by the backend on login or
// registration. It is a value type; a changed role or token needs a new login.
type Session struct {
	Token  string `json:"token"`
	Role   Role   `json:"role"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	UserID int64  `json:"userId"`
}

// UnknownRolePolicy governs Login when the backend returns an unrecognised role.
type UnknownRolePolicy string

const (
	// RejectUnknownRole refuses the login and persists nothing.
	RejectUnknownRole UnknownRolePolicy = "reject"
	// AdmitAsEmployee persists the record as an EMPLOYEE and lands on the employee dashboard.
	AdmitAsEmployee UnknownRolePolicy = "employee"
)

// ParseUnknownRolePolicy maps configuration text to a policy, defaulting to reject.
func ParseUnknownRolePolicy(raw string) (UnknownRolePolicy, error) {
	switch UnknownRolePolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", RejectUnknownRole:
		return RejectUnknownRole, nil
	case AdmitAsEmployee:
		return AdmitAsEmployee, nil
	default:
		return "", errors.New("auth: unknown role policy must be reject or employee")
	}
}
