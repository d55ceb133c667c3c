package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"bookmarkbrain/internal/logger"
	"bookmarkbrain/internal/models"
	"bookmarkbrain/internal/service"
)

// CollectionEngine is the part of the collection service the API uses.
type CollectionEngine interface {
	List(ctx context.Context) ([]models.Collection, error)
	ListPublic(ctx context.Context) ([]models.Collection, error)
	Search(ctx context.Context, term string) ([]models.Collection, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Collection, error)
	GetWithTweets(ctx context.Context, id uuid.UUID) (*models.Collection, error)
	Create(ctx context.Context, in service.CollectionInput) (*models.Collection, error)
	Update(ctx context.Context, id uuid.UUID, in service.CollectionInput) (*models.Collection, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateDisplayOrders(ctx context.Context, orders map[uuid.UUID]int) error
}

// Collections serves /api/collections.
type Collections struct {
	svc CollectionEngine
	log *logger.Logger
}

// NewCollections creates the collection handler group.
func NewCollections(svc CollectionEngine, log *logger.Logger) *Collections {
	return &Collections{svc: svc, log: log.With("handler", "collections")}
}

// List returns every collection ordered by display order. It also serves
// the /ordered alias.
func (h *Collections) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, items, "")
}

// Public lists the collections marked public.
func (h *Collections) Public(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListPublic(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, items, "")
}

// Search matches collections by name or description using the q parameter.
func (h *Collections) Search(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Search(r.Context(), strings.TrimSpace(r.URL.Query().Get("term")))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, items, "")
}

// Get returns one collection.
func (h *Collections) Get(w http.ResponseWriter, r *http.Request) {
	respondByID(w, r, h.log, "id", func(id uuid.UUID) (any, error) {
		return h.svc.Get(r.Context(), id)
	})
}

// WithTweets returns a collection and its tweets in display order.
func (h *Collections) WithTweets(w http.ResponseWriter, r *http.Request) {
	respondByID(w, r, h.log, "id", func(id uuid.UUID) (any, error) {
		return h.svc.GetWithTweets(r.Context(), id)
	})
}

// Create adds a collection.
func (h *Collections) Create(w http.ResponseWriter, r *http.Request) {
	var req collectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	c, err := h.svc.Create(r.Context(), req.toInput())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, c, "Collection created")
}

// Update replaces a collection's editable fields.
func (h *Collections) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req collectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	c, err := h.svc.Update(r.Context(), id, req.toInput())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, c, "Collection updated")
}

// Delete soft-deletes a collection and its memberships.
func (h *Collections) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, nil, "Collection deleted")
}

// DisplayOrder rewrites the display order of several collections at once.
func (h *Collections) DisplayOrder(w http.ResponseWriter, r *http.Request) {
	var orders displayOrders
	if err := decodeJSON(w, r, &orders); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.svc.UpdateDisplayOrders(r.Context(), orders); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, nil, "Display order updated")
}
