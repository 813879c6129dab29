package auth

import (
	"context"
	"sync"
	"time"
)

// Context is the source of truth for who is logged in on one browser session.
// Handlers reach it through FromContext; only Login, Logout and Expire mutate it.
// The mutex covers concurrent backend calls fanned out from one page.
type Context struct {
	mu       sync.Mutex
	store    *Store
	policy   UnknownRolePolicy
	session  *Session
	expired  bool
	rejected bool
}

// Options tune Context construction.
type Options struct {
	UnknownRole UnknownRolePolicy
	Now         func() time.Time
}

// NewContext rehydrates the session from store. A stored JWT that has
// already expired is treated like an authentication failure: the store is
// cleared and the context starts empty.
func NewContext(store *Store, opts Options) *Context {
	c := &Context{store: store, policy: opts.UnknownRole}
	if c.policy == "" {
		c.policy = RejectUnknownRole
	}
	sess, ok := store.Load()
	if !ok {
		return c
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	if TokenExpired(sess.Token, now()) {
		store.Clear()
		c.expired = true
		return c
	}
	c.session = &sess
	return c
}

// Login persists record and returns the landing page for its role. Under
// AdmitAsEmployee an unrecognised role is stored as EMPLOYEE so the guard
// lets the session reach the page it lands on.
func (c *Context) Login(record Session) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if record.Token == "" {
		return "", ErrMissingToken
	}
	landing, ok := LandingPage(record.Role)
	if !ok {
		if c.policy != AdmitAsEmployee {
			return "", ErrUnknownRole
		}
		record.Role = RoleEmployee
		landing, _ = LandingPage(RoleEmployee)
	}
	if err := c.store.Save(record); err != nil {
		return "", err
	}
	c.session = &record
	c.expired = false
	c.rejected = false
	return landing, nil
}

// Logout clears the session locally and returns the login page.
func (c *Context) Logout() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Clear()
	c.session = nil
	return LoginPath
}

// Expire drops the session after the backend rejected its credential.
func (c *Context) Expire() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Clear()
	c.session = nil
	c.rejected = true
}

// Expired reports whether the stored token had lapsed before the request began.
func (c *Context) Expired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expired
}

// Rejected reports whether the backend rejected the credential during this request.
func (c *Context) Rejected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rejected
}

// Current returns the active session.
func (c *Context) Current() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// Token returns the bearer credential of the active session.
func (c *Context) Token() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil || c.session.Token == "" {
		return "", false
	}
	return c.session.Token, true
}

// IsRole reports whether the active session has the candidate role.
func (c *Context) IsRole(candidate Role) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != nil && c.session.Role == candidate
}

func (c *Context) IsAdmin() bool    { return c.IsRole(RoleAdmin) }
func (c *Context) IsManager() bool  { return c.IsRole(RoleManager) }
func (c *Context) IsEmployee() bool { return c.IsRole(RoleEmployee) }

// CanManage reports whether the session may create and delete tasks and attendance.
func (c *Context) CanManage() bool {
	return c.IsAdmin() || c.IsManager()
}

type contextKey struct{}

// WithContext makes ac reachable from ctx.
func WithContext(ctx context.Context, ac *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

// FromContext returns the Context installed by the auth middleware. A missing
// Context means the router was wired without it, which is a programming
// error, so it panics.
func FromContext(ctx context.Context) *Context {
	ac, ok := ctx.Value(contextKey{}).(*Context)
	if !ok || ac == nil {
		panic("auth: context not initialised; mount auth.Middleware before handlers that use it")
	}
	return ac
}

// Lookup is the non-panicking variant of FromContext.
func Lookup(ctx context.Context) (*Context, bool) {
	ac, ok := ctx.Value(contextKey{}).(*Context)
	return ac, ok && ac != nil
}
