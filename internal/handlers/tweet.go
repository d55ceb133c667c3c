package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"bookmarkbrain/internal/logger"
	"bookmarkbrain/internal/models"
	"bookmarkbrain/internal/service"
)

// TweetEngine is the part of the tweet service the API uses.
type TweetEngine interface {
	List(ctx context.Context) ([]models.Tweet, error)
	ListPaged(ctx context.Context, page, size int) (*models.Page[models.Tweet], error)
	Get(ctx context.Context, id uuid.UUID) (*models.Tweet, error)
	Search(ctx context.Context, term string) ([]models.Tweet, error)
	ListByPlatform(ctx context.Context, platform string) ([]models.Tweet, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Tweet, error)
	Create(ctx context.Context, in service.TweetInput) (*models.Tweet, error)
	Update(ctx context.Context, id uuid.UUID, in service.TweetInput) (*models.Tweet, error)
	ToggleSeen(ctx context.Context, id uuid.UUID) (*models.Tweet, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExtractFromURL(ctx context.Context, rawURL string) (*models.Tweet, error)
}

// Tweets serves /api/tweets.
type Tweets struct {
	svc TweetEngine
	log *logger.Logger
}

// NewTweets creates the tweet handler group.
func NewTweets(svc TweetEngine, log *logger.Logger) *Tweets {
	return &Tweets{svc: svc, log: log.With("handler", "tweets")}
}

// List returns every live tweet, newest first.
func (h *Tweets) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, items, "")
}

// Paged returns one page of tweets.
func (h *Tweets) Paged(w http.ResponseWriter, r *http.Request) {
	page, size, err := pageParams(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	result, err := h.svc.ListPaged(r.Context(), page, size)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, result, "")
}

// Search matches tweets against the q parameter.
func (h *Tweets) Search(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Search(r.Context(), strings.TrimSpace(r.URL.Query().Get("term")))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, items, "")
}

// ByPlatform lists the tweets saved from one platform.
func (h *Tweets) ByPlatform(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListByPlatform(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, items, "")
}

// ByCategory lists the tweets assigned to a category.
func (h *Tweets) ByCategory(w http.ResponseWriter, r *http.Request) {
	respondByID(w, r, h.log, "categoryId", func(id uuid.UUID) (any, error) {
		return h.svc.ListByCategory(r.Context(), id)
	})
}

// Get returns one tweet.
func (h *Tweets) Get(w http.ResponseWriter, r *http.Request) {
	respondByID(w, r, h.log, "id", func(id uuid.UUID) (any, error) {
		return h.svc.Get(r.Context(), id)
	})
}

// Create saves a new tweet.
func (h *Tweets) Create(w http.ResponseWriter, r *http.Request) {
	var req tweetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	t, err := h.svc.Create(r.Context(), req.toInput())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, t, "Tweet created")
}

// Update replaces a tweet's editable fields.
func (h *Tweets) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req tweetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	t, err := h.svc.Update(r.Context(), id, req.toInput())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, t, "Tweet updated")
}

// ToggleSeen flips the tweet's seen flag.
func (h *Tweets) ToggleSeen(w http.ResponseWriter, r *http.Request) {
	respondByID(w, r, h.log, "id", func(id uuid.UUID) (any, error) {
		return h.svc.ToggleSeen(r.Context(), id)
	})
}

// Delete soft-deletes a tweet and its links.
func (h *Tweets) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, nil, "Tweet deleted")
}

// Extract fetches a URL and saves its readable content as a new tweet.
func (h *Tweets) Extract(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	t, err := h.svc.ExtractFromURL(r.Context(), req.URL)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, t, "Tweet extracted")
}
