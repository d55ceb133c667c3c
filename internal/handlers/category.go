// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"bookmarkbrain/internal/logger"
	"bookmarkbrain/internal/models"
	"bookmarkbrain/internal/service"
)

// CategoryEngine is the part of the category hierarchy engine the API uses.
type CategoryEngine interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Category, error)
	GetRoots(ctx context.Context) ([]models.Category, error)
	GetTree(ctx context.Context) ([]models.Category, error)
	GetWithChildren(ctx context.Context, id uuid.UUID) (*models.Category, error)
	GetFullHierarchy(ctx context.Context, id uuid.UUID) (*models.Category, error)
	HasChildren(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, in service.CategoryInput) (*models.Category, error)
	Update(ctx context.Context, id uuid.UUID, in service.CategoryInput) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateDisplayOrders(ctx context.Context, orders map[uuid.UUID]int) error
}

// Categories serves /api/categories.
type Categories struct {
	svc CategoryEngine
	log *logger.Logger
}

// NewCategories creates the category handler group.
func NewCategories(svc CategoryEngine, log *logger.Logger) *Categories {
	return &Categories{svc: svc, log: log.With("handler", "categories")}
}

// List returns every category in display order.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, items, "")
}

// Tree returns the root categories with their descendants attached.
func (h *Categories) Tree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.svc.GetTree(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, tree, "")
}

// Roots returns the categories without a parent.
func (h *Categories) Roots(w http.ResponseWriter, r *http.Request) {
	roots, err := h.svc.GetRoots(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, roots, "")
}

// Get returns a single category.
func (h *Categories) Get(w http.ResponseWriter, r *http.Request) {
	respondByID(w, r, h.log, "id", func(id uuid.UUID) (any, error) {
		return h.svc.Get(r.Context(), id)
	})
}

// Children returns a category with its direct children.
func (h *Categories) Children(w http.ResponseWriter, r *http.Request) {
	respondByID(w, r, h.log, "id", func(id uuid.UUID) (any, error) {
		return h.svc.GetWithChildren(r.Context(), id)
	})
}

// Hierarchy returns a category with its whole subtree.
func (h *Categories) Hierarchy(w http.ResponseWriter, r *http.Request) {
	respondByID(w, r, h.log, "id", func(id uuid.UUID) (any, error) {
		return h.svc.GetFullHierarchy(r.Context(), id)
	})
}

// HasChildren reports whether a category has live children.
func (h *Categories) HasChildren(w http.ResponseWriter, r *http.Request) {
	respondByID(w, r, h.log, "id", func(id uuid.UUID) (any, error) {
		ok, err := h.svc.HasChildren(r.Context(), id)
		return map[string]bool{"has_children": ok}, err
	})
}

// Create adds a new category.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	c, err := h.svc.Create(r.Context(), req.toInput())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, c, "Category created")
}

// Update replaces the editable fields of a category, including its parent.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	c, err := h.svc.Update(r.Context(), id, req.toInput())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, c, "Category updated")
}

// DisplayOrder applies a batch of display orders.
func (h *Categories) DisplayOrder(w http.ResponseWriter, r *http.Request) {
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

// Delete removes a category without children or tweet links.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, nil, "Category deleted")
}
