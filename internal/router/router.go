// Package router sets up the HTTP routes and middleware chains for the
// BookMarkBrain REST API and its server-rendered web front end.
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"bookmarkbrain/internal/handlers"
	"bookmarkbrain/internal/logger"
	"bookmarkbrain/internal/middleware"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// API holds the dependencies of the REST API router.
type API struct {
	Log              *logger.Logger
	DB               Pinger
	RateLimiter      *middleware.RateLimiter // nil disables rate limiting
	CORSOrigins      []string
	Categories       *handlers.Categories
	Tweets           *handlers.Tweets
	Hashtags         *handlers.Hashtags
	Collections      *handlers.Collections
	TweetCategories  *handlers.TweetCategories
	TweetHashtags    *handlers.TweetHashtags
	CollectionTweets *handlers.CollectionTweets
}

// NewAPI creates the chi router for the REST API under /api.
func NewAPI(d API) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.Recoverer(d.Log))
	r.Use(corsHandler(d.CORSOrigins))

	r.Get("/health", healthHandler(d.DB))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.APIHeaders)
		if d.RateLimiter != nil {
			r.Use(d.RateLimiter.Middleware)
		}

		r.Route("/categories", func(r chi.Router) {
			c := d.Categories
			r.Get("/", c.List)
			r.Post("/", c.Create)
			r.Get("/tree", c.Tree)
			r.Get("/roots", c.Roots)
			r.Put("/display-order", c.DisplayOrder)
			r.Get("/{id}", c.Get)
			r.Put("/{id}", c.Update)
			r.Delete("/{id}", c.Delete)
			r.Get("/{id}/children", c.Children)
			r.Get("/{id}/hierarchy", c.Hierarchy)
			r.Get("/{id}/has-children", c.HasChildren)
		})

		r.Route("/tweets", func(r chi.Router) {
			t := d.Tweets
			r.Get("/", t.List)
			r.Post("/", t.Create)
			r.Get("/paged", t.Paged)
			r.Get("/search", t.Search)
			r.Post("/extract", t.Extract)
			r.Get("/platform/{name}", t.ByPlatform)
			r.Get("/category/{categoryId}", t.ByCategory)
			r.Get("/{id}", t.Get)
			r.Put("/{id}", t.Update)
			r.Delete("/{id}", t.Delete)
			r.Put("/{id}/toggle-seen", t.ToggleSeen)
		})

		r.Route("/hashtags", func(r chi.Router) {
			h := d.Hashtags
			r.Get("/", h.List)
			r.Post("/", h.Create)
			r.Get("/popular", h.Popular)
			r.Get("/by-name/{name}", h.ByName)
			r.Get("/{id}", h.Get)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
			r.Patch("/{id}/increment-usage", h.IncrementUsage)
		})

		r.Route("/collections", func(r chi.Router) {
			c := d.Collections
			r.Get("/", c.List)
			r.Post("/", c.Create)
			r.Get("/ordered", c.List)
			r.Get("/public", c.Public)
			r.Get("/search", c.Search)
			r.Put("/display-order", c.DisplayOrder)
			r.Get("/{id}", c.Get)
			r.Put("/{id}", c.Update)
			r.Delete("/{id}", c.Delete)
			r.Get("/{id}/with-tweets", c.WithTweets)
		})

		r.Route("/tweet-categories", func(r chi.Router) {
			tc := d.TweetCategories
			r.Post("/", tc.Create)
			r.Get("/paged", tc.Paged)
			r.Get("/tweet/{tweetId}", tc.ByTweet)
			r.Get("/category/{categoryId}", tc.ByCategory)
			r.Post("/tweet/{tweetId}/assign", tc.Assign)
			r.Delete("/tweet/{tweetId}/category/{categoryId}", tc.Delete)
		})

		r.Route("/tweet-hashtags", func(r chi.Router) {
			th := d.TweetHashtags
			r.Post("/", th.Create)
			r.Get("/tweet/{tweetId}", th.ByTweet)
			r.Get("/hashtag/{hashtagId}", th.ByHashtag)
			r.Delete("/tweet/{tweetId}/hashtag/{hashtagId}", th.Delete)
		})

		r.Route("/collection-tweets", func(r chi.Router) {
			ct := d.CollectionTweets
			r.Post("/", ct.Create)
			r.Get("/paged", ct.Paged)
			r.Get("/collection/{collectionId}", ct.ByCollection)
			r.Get("/tweet/{tweetId}", ct.ByTweet)
			r.Post("/collection/{collectionId}/assign", ct.Assign)
			r.Put("/collection/{collectionId}/order", ct.Reorder)
			r.Delete("/collection/{collectionId}/tweet/{tweetId}", ct.Delete)
		})
	})

	return r
}

// corsHandler allows the configured origins to call the API from a browser.
// With no origins configured cross-origin requests are refused.
func corsHandler(origins []string) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Retry-After", "X-Request-Id"},
		MaxAge:         300,
	}).Handler
}

// healthHandler reports whether the API and its database are up.
func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status":"unavailable"}`))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}
