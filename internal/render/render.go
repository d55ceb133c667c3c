// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the web front end.
// It supports full-page and HTMX partial rendering, automatically detecting
// the request type via the HX-Request header.
package render

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"bookmarkbrain/internal/logger"
	"bookmarkbrain/internal/markdown"
	"bookmarkbrain/internal/middleware"
	"bookmarkbrain/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData holds all data passed to page templates.
type PageData struct {
	Title     string          // Page title for <title> tag
	Section   string          // Active nav section (e.g., "tweets", "categories")
	CSRFToken string          // CSRF token for forms
	Flashes   []session.Flash // One-time notification messages
	Data      map[string]any  // Page-specific data
}

// FlashSource hands out the flash messages queued for a session.
type FlashSource interface {
	PopFlashes(ctx context.Context, id string) ([]session.Flash, error)
}

// Renderer handles template parsing and execution for web pages.
type Renderer struct {
	templates map[string]*template.Template
	flashes   FlashSource
	log       *logger.Logger
}

// funcMap holds the helpers available to every template.
var funcMap = template.FuncMap{
	"activeClass": func(current, target string) string {
		if current == target {
			return "active"
		}
		return ""
	},
	// deref safely dereferences a string pointer.
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	// catIndent prefixes a category name according to its depth, for
	// hierarchical <select> options.
	"catIndent": func(depth int, name string) string {
		if depth == 0 {
			return name
		}
		return strings.Repeat("\u00a0\u00a0\u00a0\u00a0", depth) + name
	},
	// uuidEq reports whether ptr is set and equal to val.
	"uuidEq": func(ptr *uuid.UUID, val uuid.UUID) bool {
		return ptr != nil && *ptr == val
	},
	"date": func(t *time.Time) string {
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format("2 Jan 2006 15:04")
	},
	// dtlocal formats t for a datetime-local input.
	"dtlocal": func(t *time.Time) string {
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02T15:04")
	},
	"truncate": func(n int, s string) string {
		if utf8.RuneCountInString(s) <= n {
			return s
		}
		return string([]rune(s)[:n]) + "…"
	},
	"add": func(a, b int) int { return a + b },
	// markdown renders a description; the HTML is trusted because goldmark
	// escapes raw HTML in the source.
	"markdown": func(s string) template.HTML {
		out, err := markdown.ToHTML(s)
		if err != nil {
			return template.HTML(template.HTMLEscapeString(s))
		}
		return template.HTML(out)
	},
}

// New creates a Renderer by parsing every page template from the embedded
// filesystem, each paired with the base layout. flashes may be nil.
func New(flashes FlashSource, log *logger.Logger) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		flashes:   flashes,
		log:       log.With("component", "render"),
	}

	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" || !strings.HasSuffix(name, ".html") {
			continue
		}

		tmpl, err := template.New("base.html").Funcs(funcMap).ParseFS(
			templateFS, "templates/base.html", "templates/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[strings.TrimSuffix(name, ".html")] = tmpl
	}

	return r, nil
}

// Page renders a full page or an HTMX partial, depending on the request
// headers. Flashes queued for the session are consumed here.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	rn.PageStatus(w, r, http.StatusOK, name, data)
}

// PageStatus is Page with an explicit status code.
func (rn *Renderer) PageStatus(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	data.CSRFToken = middleware.GetCSRFToken(r)

	if rn.flashes != nil {
		if id := middleware.SessionFromCtx(r.Context()); id != "" {
			queued, err := rn.flashes.PopFlashes(r.Context(), id)
			if err != nil {
				rn.log.Warn("pop flashes failed", "error", err)
			}
			data.Flashes = append(data.Flashes, queued...)
		}
	}

	execName := "base.html"
	if isHTMX(r) {
		execName = "content"
	}

	var buf strings.Builder
	if err := executeTemplate(&buf, tmpl, execName, data); err != nil {
		rn.log.Error("template execution failed", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, buf.String())
}

// executeTemplate wraps template execution with error handling.
func executeTemplate(w io.Writer, tmpl *template.Template, name string, data any) error {
	return tmpl.ExecuteTemplate(w, name, data)
}

// isHTMX returns true if the request was made by HTMX (has HX-Request header).
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
