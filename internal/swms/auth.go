package swms

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a session record. A refused login is
// reported as an *Error matching ErrBadCredentials, never ErrUnauthorized.
func (c *Client) Login(ctx context.Context, in LoginRequest) (AuthResponse, error) {
	var out AuthResponse
	err := c.do(withoutCredentials(ctx), call{method: http.MethodPost, endpoint: "/auth/login", path: "/auth/login", in: in, out: &out})
	return out, err
}

// Register creates an account and returns its session record.
func (c *Client) Register(ctx context.Context, in RegisterRequest) (AuthResponse, error) {
	var out AuthResponse
	err := c.do(withoutCredentials(ctx), call{method: http.MethodPost, endpoint: "/auth/register", path: "/auth/register", in: in, out: &out})
	return out, err
}

// ForgotPassword requests a reset token for email.
func (c *Client) ForgotPassword(ctx context.Context, email string) (ResetToken, error) {
	var out ResetToken
	in := map[string]string{"email": email}
	err := c.do(withoutCredentials(ctx), call{method: http.MethodPost, endpoint: "/auth/forgot-password", path: "/auth/forgot-password", in: in, out: &out})
	return out, err
}

// ResetPassword sets a new password using a reset token.
func (c *Client) ResetPassword(ctx context.Context, in ResetPasswordRequest) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	err := c.do(withoutCredentials(ctx), call{method: http.MethodPost, endpoint: "/auth/reset-password", path: "/auth/reset-password", in: in, out: &out})
	return out.Message, err
}
