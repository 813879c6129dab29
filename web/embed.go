// Package web holds the console's embedded page templates and assets.
package web

import "embed"

// Templates embeds layouts, partials and pages.
//
//go:embed templates/layouts/*.html templates/partials/*.html templates/pages/*.html
var Templates embed.FS

// Static embeds the stylesheet served under /static.
//
//go:embed static/css/*
var Static embed.FS
