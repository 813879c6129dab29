package view

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/swms/swms-console/internal/auth"
	"github.com/swms/swms-console/internal/shared"
	"github.com/swms/swms-console/web"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
}

// NavLink is one sidebar entry.
type NavLink struct {
	Path  string
	Label string
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	CSRFToken   string
	Flash       *shared.FlashMessage
	CurrentPath string
	Session     *auth.Session
	Nav         []NavLink
	Data        any
}

// NewEngine parses the embedded templates.
func NewEngine() (*Engine, error) {
	tpl, err := template.New("root").Funcs(funcMap()).ParseFS(web.Templates, "templates/layouts/*.html", "templates/partials/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// Render executes a named template with TemplateData.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return e.templates.ExecuteTemplate(w, name, data)
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"formatDate": formatDate,
		"label":      label,
		"lower":      func(v any) string { return strings.ToLower(fmt.Sprint(v)) },
		"orDash": func(s string) string {
			if strings.TrimSpace(s) == "" {
				return "—"
			}
			return s
		},
		"clock": func(s string) string {
			if len(s) >= 5 {
				return s[:5]
			}
			return s
		},
	}
}

// label turns enum text such as IN_PROGRESS into "In Progress".
func label(v any) string {
	raw := strings.ReplaceAll(fmt.Sprint(v), "_", " ")
	return cases.Title(language.English).String(strings.ToLower(raw))
}

// formatDate renders the backend's ISO dates, passing through anything it cannot parse.
func formatDate(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04:05.999999999", time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			if layout == "2006-01-02" {
				return t.Format("02 Jan 2006")
			}
			return t.Format("02 Jan 2006 15:04")
		}
	}
	return s
}
