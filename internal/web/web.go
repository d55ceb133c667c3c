// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package web contains the page handlers of the BookMarkBrain front end.
// Every read and write goes through the REST API; results of form posts
// are reported to the next page as flash messages.
package web

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"bookmarkbrain/internal/apiclient"
	"bookmarkbrain/internal/apperr"
	"bookmarkbrain/internal/logger"
	"bookmarkbrain/internal/middleware"
	"bookmarkbrain/internal/models"
	"bookmarkbrain/internal/render"
	"bookmarkbrain/internal/session"
)

// API is the subset of the REST client the pages use.
type API interface {
	Tweets(ctx context.Context) ([]models.Tweet, error)
	TweetsPaged(ctx context.Context, page, size int) (*models.Page[models.Tweet], error)
	SearchTweets(ctx context.Context, term string) ([]models.Tweet, error)
	TweetsByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Tweet, error)
	Tweet(ctx context.Context, id uuid.UUID) (*models.Tweet, error)
	CreateTweet(ctx context.Context, req apiclient.TweetRequest) (*models.Tweet, error)
	UpdateTweet(ctx context.Context, id uuid.UUID, req apiclient.TweetRequest) (*models.Tweet, error)
	ToggleSeen(ctx context.Context, id uuid.UUID) (*models.Tweet, error)
	DeleteTweet(ctx context.Context, id uuid.UUID) error
	ExtractTweet(ctx context.Context, rawURL string) (*models.Tweet, error)

	Categories(ctx context.Context) ([]models.Category, error)
	CategoryTree(ctx context.Context) ([]models.Category, error)
	CategoryHierarchy(ctx context.Context, id uuid.UUID) (*models.Category, error)
	CreateCategory(ctx context.Context, req apiclient.CategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req apiclient.CategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	TweetCategories(ctx context.Context, tweetID uuid.UUID) ([]models.TweetCategory, error)
	AssignCategories(ctx context.Context, tweetID uuid.UUID, categoryIDs []uuid.UUID) error
	UnlinkCategory(ctx context.Context, tweetID, categoryID uuid.UUID) error

	Hashtags(ctx context.Context) ([]models.Hashtag, error)
	PopularHashtags(ctx context.Context) ([]models.Hashtag, error)
	CreateHashtag(ctx context.Context, req apiclient.HashtagRequest) (*models.Hashtag, error)
	DeleteHashtag(ctx context.Context, id uuid.UUID) error
	TweetHashtags(ctx context.Context, tweetID uuid.UUID) ([]models.TweetHashtag, error)
	LinkHashtag(ctx context.Context, tweetID, hashtagID uuid.UUID) error
	UnlinkHashtag(ctx context.Context, tweetID, hashtagID uuid.UUID) error

	Collections(ctx context.Context) ([]models.Collection, error)
	CollectionWithTweets(ctx context.Context, id uuid.UUID) (*models.Collection, error)
	CreateCollection(ctx context.Context, req apiclient.CollectionRequest) (*models.Collection, error)
	UpdateCollection(ctx context.Context, id uuid.UUID, req apiclient.CollectionRequest) (*models.Collection, error)
	DeleteCollection(ctx context.Context, id uuid.UUID) error
	AssignTweets(ctx context.Context, collectionID uuid.UUID, tweetIDs []uuid.UUID) (*apiclient.AssignResult, error)
	ReorderCollection(ctx context.Context, collectionID uuid.UUID, orders map[uuid.UUID]int) error
	RemoveFromCollection(ctx context.Context, collectionID, tweetID uuid.UUID) error
}

// Flasher queues a message for the next page a session renders.
type Flasher interface {
	AddFlash(ctx context.Context, id string, f session.Flash) error
}

// Pages groups all web page handlers and their dependencies.
type Pages struct {
	api      API
	renderer *render.Renderer
	flashes  Flasher
	log      *logger.Logger
}

// New creates the page handler group. flashes may be nil, in which case
// outcomes of form posts are not reported.
func New(api API, renderer *render.Renderer, flashes Flasher, log *logger.Logger) *Pages {
	return &Pages{api: api, renderer: renderer, flashes: flashes, log: log.With("handler", "web")}
}

// Dashboard renders the landing page: recent tweets, popular hashtags,
// collections and the category tree.
func (p *Pages) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	recent, err := p.api.TweetsPaged(ctx, 1, 5)
	if err != nil {
		p.renderError(w, r, err)
		return
	}
	popular, err := p.api.PopularHashtags(ctx)
	if err != nil {
		p.renderError(w, r, err)
		return
	}
	collections, err := p.api.Collections(ctx)
	if err != nil {
		p.renderError(w, r, err)
		return
	}
	tree, err := p.api.CategoryTree(ctx)
	if err != nil {
		p.renderError(w, r, err)
		return
	}

	p.renderer.Page(w, r, "dashboard", &render.PageData{
		Title:   "Dashboard",
		Section: "dashboard",
		Data: map[string]any{
			"Recent":      recent.Items,
			"TweetCount":  recent.Total,
			"Popular":     popular,
			"Collections": collections,
			"Tree":        tree,
		},
	})
}

// --- shared helpers ---

// flash queues a message for the current session. Failures are logged.
func (p *Pages) flash(r *http.Request, kind, msg string) {
	id := middleware.SessionFromCtx(r.Context())
	if p.flashes == nil || id == "" {
		return
	}
	if err := p.flashes.AddFlash(r.Context(), id, session.Flash{Kind: kind, Message: msg}); err != nil {
		p.log.Warn("add flash failed", "error", err)
	}
}

// redirect sends the browser to target, honouring HTMX requests.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// done flashes a success message and redirects.
func (p *Pages) done(w http.ResponseWriter, r *http.Request, msg, target string) {
	p.flash(r, session.FlashSuccess, msg)
	redirect(w, r, target)
}

// failed reports a rejected form post. Domain errors are flashed and the
// browser is sent back to target; anything else renders the error page.
func (p *Pages) failed(w http.ResponseWriter, r *http.Request, err error, target string) {
	if apperr.KindOf(err) == apperr.KindStore {
		p.renderError(w, r, err)
		return
	}
	p.flash(r, session.FlashError, err.Error())
	redirect(w, r, target)
}

// renderError renders the error page with a status derived from err.
func (p *Pages) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadRequest
	msg := err.Error()
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindStore:
		p.log.Error("page failed", "path", r.URL.Path, "error", err)
		status = http.StatusBadGateway
		msg = "The bookmark service is unavailable. Please try again."
	}

	p.renderer.PageStatus(w, r, status, "error", &render.PageData{
		Title: http.StatusText(status),
		Data:  map[string]any{"Status": status, "Message": msg},
	})
}

// pathUUID parses a chi URL parameter, rendering a 404 when it is malformed.
func (p *Pages) pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		p.renderError(w, r, apperr.NotFound("page not found"))
		return uuid.Nil, false
	}
	return id, true
}

// formUUID returns the form value as a UUID, or nil when empty or invalid.
func formUUID(r *http.Request, key string) *uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(r.FormValue(key)))
	if err != nil || id == uuid.Nil {
		return nil
	}
	return &id
}

// formUUIDs returns every valid UUID submitted under key, in form order.
func formUUIDs(r *http.Request, key string) []uuid.UUID {
	_ = r.ParseForm()
	var ids []uuid.UUID
	for _, raw := range r.Form[key] {
		if id, err := uuid.Parse(strings.TrimSpace(raw)); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func formInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(r.FormValue(key)))
	return n
}

func queryInt(r *http.Request, key string, fallback int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
