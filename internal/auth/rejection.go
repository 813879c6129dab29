package auth

import (
	"net/http"

	"github.com/swms/swms-console/internal/shared"
)

// ExpiredMessage is flashed on the login page after a rejected credential.
const ExpiredMessage = "Your session has expired. Please sign in again."

// RedirectOnRejection turns any response into a redirect to the login page
// once the backend has rejected the session credential, whichever page made
// the call. The session slots are already cleared by Expire, and the session
// commit runs on WriteHeader, so storage is cleared before the browser
// navigates.
func RedirectOnRejection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ac := FromContext(r.Context())
		rw := &rejectionWriter{ResponseWriter: w, ac: ac, sess: shared.SessionFromContext(r.Context())}
		next.ServeHTTP(rw, r)
		if !rw.wroteHeader && ac.Rejected() {
			rw.WriteHeader(http.StatusOK)
		}
	})
}

type rejectionWriter struct {
	http.ResponseWriter
	ac          *Context
	sess        *shared.Session
	wroteHeader bool
	discard     bool
}

func (w *rejectionWriter) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	if !w.ac.Rejected() {
		w.ResponseWriter.WriteHeader(code)
		return
	}
	w.discard = true
	if w.sess != nil {
		w.sess.AddFlash(shared.FlashMessage{Kind: "error", Message: ExpiredMessage})
	}
	header := w.ResponseWriter.Header()
	header.Del("Content-Type")
	header.Del("Content-Length")
	header.Set("Location", LoginPath)
	w.ResponseWriter.WriteHeader(http.StatusSeeOther)
}

func (w *rejectionWriter) Write(data []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if w.discard {
		return len(data), nil
	}
	return w.ResponseWriter.Write(data)
}

func (w *rejectionWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
