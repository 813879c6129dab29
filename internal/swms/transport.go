package swms

import (
	"context"
	"net/http"
)

// Credentials is the per-request view of the logged-in session.
type Credentials interface {
	Token() (string, bool)
	// Expire clears the stored session after the backend rejected it.
	Expire()
}

// CredentialsFunc resolves the credentials bound to a request context. It
// returns nil when the request carries no session.
type CredentialsFunc func(ctx context.Context) Credentials

type publicKey struct{}

func withoutCredentials(ctx context.Context) context.Context {
	return context.WithValue(ctx, publicKey{}, true)
}

func isPublic(ctx context.Context) bool {
	public, _ := ctx.Value(publicKey{}).(bool)
	return public
}

// bearerTransport attaches the session token to outbound calls and expires
// the session when the backend answers 401.
type bearerTransport struct {
	base        http.RoundTripper
	credentials CredentialsFunc
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if isPublic(ctx) || t.credentials == nil {
		return t.base.RoundTrip(req)
	}
	creds := t.credentials(ctx)
	if creds != nil {
		if token, ok := creds.Token(); ok {
			req = req.Clone(ctx)
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized && creds != nil {
		creds.Expire()
	}
	return resp, nil
}
