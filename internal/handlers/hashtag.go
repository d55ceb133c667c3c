package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"bookmarkbrain/internal/logger"
	"bookmarkbrain/internal/models"
	"bookmarkbrain/internal/service"
)

// HashtagEngine is the part of the popularity tracker the API uses.
type HashtagEngine interface {
	List(ctx context.Context) ([]models.Hashtag, error)
	GetPopular(ctx context.Context) ([]models.Hashtag, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Hashtag, error)
	GetByName(ctx context.Context, name string) (*models.Hashtag, error)
	Create(ctx context.Context, in service.HashtagInput) (*models.Hashtag, error)
	Update(ctx context.Context, id uuid.UUID, in service.HashtagInput) (*models.Hashtag, error)
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementUsage(ctx context.Context, id uuid.UUID) (int, error)
}

// Hashtags serves /api/hashtags.
type Hashtags struct {
	svc HashtagEngine
	log *logger.Logger
}

// NewHashtags creates the hashtag handler group.
func NewHashtags(svc HashtagEngine, log *logger.Logger) *Hashtags {
	return &Hashtags{svc: svc, log: log.With("handler", "hashtags")}
}

// List returns every live hashtag.
func (h *Hashtags) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, items, "")
}

// Popular returns the popular hashtags, most used first.
func (h *Hashtags) Popular(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.GetPopular(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, items, "")
}

// Get returns one hashtag.
func (h *Hashtags) Get(w http.ResponseWriter, r *http.Request) {
	respondByID(w, r, h.log, "id", func(id uuid.UUID) (any, error) {
		return h.svc.Get(r.Context(), id)
	})
}

// ByName looks a hashtag up by its exact name.
func (h *Hashtags) ByName(w http.ResponseWriter, r *http.Request) {
	tag, err := h.svc.GetByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, tag, "")
}

// Create adds a hashtag.
func (h *Hashtags) Create(w http.ResponseWriter, r *http.Request) {
	var req hashtagRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	tag, err := h.svc.Create(r.Context(), req.toInput())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, tag, "Hashtag created")
}

// Update replaces a hashtag's editable fields.
func (h *Hashtags) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req hashtagRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	tag, err := h.svc.Update(r.Context(), id, req.toInput())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, tag, "Hashtag updated")
}

// Delete soft-deletes a hashtag and unlinks it from its tweets.
func (h *Hashtags) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, nil, "Hashtag deleted")
}

// IncrementUsage records one use of a hashtag and returns the new count.
func (h *Hashtags) IncrementUsage(w http.ResponseWriter, r *http.Request) {
	respondByID(w, r, h.log, "id", func(id uuid.UUID) (any, error) {
		n, err := h.svc.IncrementUsage(r.Context(), id)
		return map[string]int{"usage_count": n}, err
	})
}
