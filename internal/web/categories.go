package web

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"bookmarkbrain/internal/apiclient"
	"bookmarkbrain/internal/apperr"
	"bookmarkbrain/internal/models"
	"bookmarkbrain/internal/render"
)

// CategoriesPage renders the category tree next to the new category form.
func (p *Pages) CategoriesPage(w http.ResponseWriter, r *http.Request) {
	p.categoriesPage(w, r, &models.Category{}, "")
}

// CategoryShow renders a category subtree and the tweets filed under it.
func (p *Pages) CategoryShow(w http.ResponseWriter, r *http.Request) {
	id, ok := p.pathUUID(w, r, "id")
	if !ok {
		return
	}
	cat, err := p.api.CategoryHierarchy(r.Context(), id)
	if err != nil {
		p.renderError(w, r, err)
		return
	}
	tweets, err := p.api.TweetsByCategory(r.Context(), id)
	if err != nil {
		p.renderError(w, r, err)
		return
	}
	p.renderer.Page(w, r, "category_detail", &render.PageData{
		Title:   cat.Name,
		Section: "categories",
		Data:    map[string]any{"Category": cat, "Tweets": tweets},
	})
}

// CategoryCreate handles the new category form.
func (p *Pages) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	req := categoryRequestFromForm(r)
	if _, err := p.api.CreateCategory(r.Context(), req); err != nil {
		if apperr.KindOf(err) == apperr.KindValidation {
			p.categoriesPage(w, r, categoryFromRequest(uuid.Nil, req), err.Error())
			return
		}
		p.failed(w, r, err, "/categories")
		return
	}
	p.done(w, r, "Category created.", "/categories")
}

// CategoryEdit renders the edit form for a category.
func (p *Pages) CategoryEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := p.pathUUID(w, r, "id")
	if !ok {
		return
	}
	cat, err := p.api.CategoryHierarchy(r.Context(), id)
	if err != nil {
		p.renderError(w, r, err)
		return
	}
	p.categoryForm(w, r, cat, "")
}

// CategoryUpdate handles the edit form, including moves in the tree. A
// move under the category's own subtree is reported on the form.
func (p *Pages) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := p.pathUUID(w, r, "id")
	if !ok {
		return
	}
	req := categoryRequestFromForm(r)
	if _, err := p.api.UpdateCategory(r.Context(), id, req); err != nil {
		switch apperr.KindOf(err) {
		case apperr.KindValidation, apperr.KindCircularReference:
			p.categoryForm(w, r, categoryFromRequest(id, req), err.Error())
		default:
			p.failed(w, r, err, "/categories/"+id.String()+"/edit")
		}
		return
	}
	p.done(w, r, "Category updated.", "/categories")
}

// CategoryDelete removes an unused category.
func (p *Pages) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := p.pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := p.api.DeleteCategory(r.Context(), id); err != nil {
		p.failed(w, r, err, "/categories")
		return
	}
	p.done(w, r, "Category deleted.", "/categories")
}

func (p *Pages) categoriesPage(w http.ResponseWriter, r *http.Request, form *models.Category, errMsg string) {
	tree, err := p.api.CategoryTree(r.Context())
	if err != nil {
		p.renderError(w, r, err)
		return
	}
	p.renderer.Page(w, r, "categories", &render.PageData{
		Title:   "Categories",
		Section: "categories",
		Data: map[string]any{
			"Tree":    tree,
			"Options": flatten(tree),
			"Form":    form,
			"Error":   errMsg,
		},
	})
}

func (p *Pages) categoryForm(w http.ResponseWriter, r *http.Request, cat *models.Category, errMsg string) {
	tree, err := p.api.CategoryTree(r.Context())
	if err != nil {
		p.renderError(w, r, err)
		return
	}
	p.renderer.Page(w, r, "category_form", &render.PageData{
		Title:   "Edit Category",
		Section: "categories",
		Data: map[string]any{
			"Category": cat,
			"Options":  flatten(tree),
			"Error":    errMsg,
		},
	})
}

// flatten lists a tree depth-first for indented <select> options.
func flatten(nodes []models.Category) []models.Category {
	var out []models.Category
	for _, n := range nodes {
		children := n.Children
		n.Children = nil
		out = append(out, n)
		out = append(out, flatten(children)...)
	}
	return out
}

func categoryRequestFromForm(r *http.Request) apiclient.CategoryRequest {
	return apiclient.CategoryRequest{
		Name:         strings.TrimSpace(r.FormValue("name")),
		Description:  strings.TrimSpace(r.FormValue("description")),
		ColorHex:     strings.TrimSpace(r.FormValue("color_hex")),
		DisplayOrder: formInt(r, "display_order"),
		ParentID:     formUUID(r, "parent_id"),
	}
}

func categoryFromRequest(id uuid.UUID, req apiclient.CategoryRequest) *models.Category {
	return &models.Category{
		ID:           id,
		Name:         req.Name,
		Description:  req.Description,
		ColorHex:     req.ColorHex,
		DisplayOrder: req.DisplayOrder,
		ParentID:     req.ParentID,
	}
}
