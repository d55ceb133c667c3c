// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"bookmarkbrain/internal/logger"
	"bookmarkbrain/internal/middleware"
	"bookmarkbrain/internal/web"
	assets "bookmarkbrain/web"
)

// Web holds the dependencies of the web front end router.
type Web struct {
	Log          *logger.Logger
	Pages        *web.Pages
	Sessions     middleware.SessionIssuer
	SecureCookie bool
}

// NewWeb creates the chi router for the server-rendered front end. Every
// state-changing route is a POST guarded by the CSRF middleware.
func NewWeb(d Web) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.Recoverer(d.Log))
	r.Use(middleware.SecureHeaders)

	r.Handle("/static/*", staticHandler())
	r.Get("/health", healthHandler(nil))

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewCSRF(d.SecureCookie, d.Log))
		if d.Sessions != nil {
			r.Use(middleware.LoadSession(d.Sessions, d.Log))
		}

		p := d.Pages
		r.Get("/", p.Dashboard)

		r.Route("/tweets", func(r chi.Router) {
			r.Get("/", p.TweetsList)
			r.Post("/", p.TweetCreate)
			r.Get("/new", p.TweetNew)
			r.Get("/extract", p.ExtractForm)
			r.Post("/extract", p.ExtractSubmit)
			r.Get("/{id}", p.TweetShow)
			r.Post("/{id}", p.TweetUpdate)
			r.Get("/{id}/edit", p.TweetEdit)
			r.Post("/{id}/toggle-seen", p.TweetToggleSeen)
			r.Post("/{id}/delete", p.TweetDelete)
			r.Post("/{id}/categories", p.TweetAssignCategories)
			r.Post("/{id}/categories/{categoryId}/remove", p.TweetRemoveCategory)
			r.Post("/{id}/hashtags", p.TweetAddHashtag)
			r.Post("/{id}/hashtags/{hashtagId}/remove", p.TweetRemoveHashtag)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", p.CategoriesPage)
			r.Post("/", p.CategoryCreate)
			r.Get("/{id}", p.CategoryShow)
			r.Post("/{id}", p.CategoryUpdate)
			r.Get("/{id}/edit", p.CategoryEdit)
			r.Post("/{id}/delete", p.CategoryDelete)
		})

		r.Route("/collections", func(r chi.Router) {
			r.Get("/", p.CollectionsList)
			r.Post("/", p.CollectionCreate)
			r.Get("/{id}", p.CollectionShow)
			r.Post("/{id}", p.CollectionUpdate)
			r.Get("/{id}/edit", p.CollectionEdit)
			r.Post("/{id}/delete", p.CollectionDelete)
			r.Post("/{id}/tweets", p.CollectionAssign)
			r.Post("/{id}/reorder", p.CollectionReorder)
			r.Post("/{id}/tweets/{tweetId}/remove", p.CollectionRemoveTweet)
		})

		r.Route("/hashtags", func(r chi.Router) {
			r.Get("/", p.HashtagsPage)
			r.Post("/", p.HashtagCreate)
			r.Post("/{id}/delete", p.HashtagDelete)
		})
	})

	return r
}

// staticHandler serves the embedded stylesheet and scripts under /static/.
func staticHandler() http.Handler {
	sub, err := fs.Sub(assets.StaticFS, "static")
	if err != nil {
		panic("static assets missing: " + err.Error())
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
