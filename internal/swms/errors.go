package swms

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrUnauthorized means the backend rejected the session credential. The
	// session has already been expired by the time callers see it.
	ErrUnauthorized = errors.New("swms: credential rejected")
	// ErrBadCredentials means a public auth call was refused.
	ErrBadCredentials = errors.New("swms: bad credentials")
	// ErrForbidden means the session role may not perform the call.
	ErrForbidden = errors.New("swms: forbidden")
	// ErrNotFound means the addressed resource does not exist.
	ErrNotFound = errors.New("swms: not found")
	// ErrValidation means the backend refused the payload.
	ErrValidation = errors.New("swms: validation failed")
)

// Error is a request failure reported by the backend.
type Error struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("swms: status %d", e.Status)
	}
	return fmt.Sprintf("swms: status %d: %s", e.Status, e.Message)
}

// Is maps the HTTP status onto the package sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrBadCredentials:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrValidation:
		return e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity
	}
	return false
}

// decodeError reads either {"error": "..."} or a field to message map.
func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(raw) == 0 {
		apiErr.Message = http.StatusText(resp.StatusCode)
		return apiErr
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		apiErr.Message = strings.TrimSpace(string(raw))
		return apiErr
	}
	if msg, ok := body["error"].(string); ok {
		apiErr.Message = msg
		if detail, ok := body["message"].(string); ok && detail != "" {
			apiErr.Message = detail
		}
		return apiErr
	}
	if msg, ok := body["message"].(string); ok {
		apiErr.Message = msg
		return apiErr
	}
	apiErr.Fields = make(map[string]string, len(body))
	for field, value := range body {
		if text, ok := value.(string); ok {
			apiErr.Fields[field] = text
		}
	}
	apiErr.Message = joinFields(apiErr.Fields)
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

func joinFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fields[k])
	}
	return strings.Join(parts, " | ")
}
