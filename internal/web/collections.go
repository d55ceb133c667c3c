package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"bookmarkbrain/internal/apiclient"
	"bookmarkbrain/internal/apperr"
	"bookmarkbrain/internal/models"
	"bookmarkbrain/internal/render"
	"bookmarkbrain/internal/session"
)

// orderFieldPrefix prefixes the reorder form inputs, one per member tweet.
const orderFieldPrefix = "order_"

// CollectionsList renders every collection with the new collection form.
func (p *Pages) CollectionsList(w http.ResponseWriter, r *http.Request) {
	p.collectionsList(w, r, &models.Collection{}, "")
}

// CollectionShow renders a collection with its tweets in display order and
// the assign and reorder forms.
func (p *Pages) CollectionShow(w http.ResponseWriter, r *http.Request) {
	id, ok := p.pathUUID(w, r, "id")
	if !ok {
		return
	}
	col, err := p.api.CollectionWithTweets(r.Context(), id)
	if err != nil {
		p.renderError(w, r, err)
		return
	}
	all, err := p.api.Tweets(r.Context())
	if err != nil {
		p.renderError(w, r, err)
		return
	}

	members := make(map[uuid.UUID]bool, len(col.Tweets))
	for _, m := range col.Tweets {
		members[m.TweetID] = true
	}
	var candidates []models.Tweet
	for _, t := range all {
		if !members[t.ID] {
			candidates = append(candidates, t)
		}
	}

	p.renderer.Page(w, r, "collection_detail", &render.PageData{
		Title:   col.Name,
		Section: "collections",
		Data: map[string]any{
			"Collection":  col,
			"Candidates":  candidates,
			"OrderPrefix": orderFieldPrefix,
		},
	})
}

// CollectionCreate handles the new collection form.
func (p *Pages) CollectionCreate(w http.ResponseWriter, r *http.Request) {
	req := collectionRequestFromForm(r)
	c, err := p.api.CreateCollection(r.Context(), req)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindValidation {
			p.collectionsList(w, r, collectionFromRequest(uuid.Nil, req), err.Error())
			return
		}
		p.failed(w, r, err, "/collections")
		return
	}
	p.done(w, r, "Collection created.", "/collections/"+c.ID.String())
}

// CollectionEdit renders the edit form.
func (p *Pages) CollectionEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := p.pathUUID(w, r, "id")
	if !ok {
		return
	}
	col, err := p.api.CollectionWithTweets(r.Context(), id)
	if err != nil {
		p.renderError(w, r, err)
		return
	}
	p.collectionForm(w, r, col, "")
}

// CollectionUpdate handles the edit form.
func (p *Pages) CollectionUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := p.pathUUID(w, r, "id")
	if !ok {
		return
	}
	req := collectionRequestFromForm(r)
	if _, err := p.api.UpdateCollection(r.Context(), id, req); err != nil {
		if apperr.KindOf(err) == apperr.KindValidation {
			p.collectionForm(w, r, collectionFromRequest(id, req), err.Error())
			return
		}
		p.failed(w, r, err, "/collections/"+id.String())
		return
	}
	p.done(w, r, "Collection updated.", "/collections/"+id.String())
}

// CollectionDelete removes a collection and its memberships.
func (p *Pages) CollectionDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := p.pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := p.api.DeleteCollection(r.Context(), id); err != nil {
		p.failed(w, r, err, "/collections/"+id.String())
		return
	}
	p.done(w, r, "Collection deleted.", "/collections")
}

// CollectionAssign appends the selected tweets to the collection and
// reports how many were skipped.
func (p *Pages) CollectionAssign(w http.ResponseWriter, r *http.Request) {
	id, ok := p.pathUUID(w, r, "id")
	if !ok {
		return
	}
	back := "/collections/" + id.String()
	ids := formUUIDs(r, "tweet_id")
	if len(ids) == 0 {
		p.failed(w, r, apperr.Validation("Select at least one tweet."), back)
		return
	}
	res, err := p.api.AssignTweets(r.Context(), id, ids)
	if err != nil {
		p.failed(w, r, err, back)
		return
	}

	p.flash(r, session.FlashSuccess, strconv.Itoa(len(res.Created))+" tweet(s) added.")
	if len(res.Skipped) > 0 {
		reasons := make([]string, 0, len(res.Skipped))
		for _, s := range res.Skipped {
			reasons = append(reasons, s.Reason)
		}
		p.flash(r, session.FlashInfo, strconv.Itoa(len(res.Skipped))+" skipped: "+strings.Join(reasons, ", ")+".")
	}
	redirect(w, r, back)
}

// CollectionReorder submits the new display orders of the members.
func (p *Pages) CollectionReorder(w http.ResponseWriter, r *http.Request) {
	id, ok := p.pathUUID(w, r, "id")
	if !ok {
		return
	}
	back := "/collections/" + id.String()

	orders, err := parseOrders(r)
	if err != nil {
		p.failed(w, r, err, back)
		return
	}
	if len(orders) == 0 {
		redirect(w, r, back)
		return
	}
	if err := p.api.ReorderCollection(r.Context(), id, orders); err != nil {
		p.failed(w, r, err, back)
		return
	}
	p.done(w, r, "Order saved.", back)
}

// CollectionRemoveTweet takes one tweet out of the collection.
func (p *Pages) CollectionRemoveTweet(w http.ResponseWriter, r *http.Request) {
	id, ok := p.pathUUID(w, r, "id")
	if !ok {
		return
	}
	tweetID, ok := p.pathUUID(w, r, "tweetId")
	if !ok {
		return
	}
	back := "/collections/" + id.String()
	if err := p.api.RemoveFromCollection(r.Context(), id, tweetID); err != nil {
		p.failed(w, r, err, back)
		return
	}
	p.done(w, r, "Tweet removed from collection.", back)
}

func (p *Pages) collectionsList(w http.ResponseWriter, r *http.Request, form *models.Collection, errMsg string) {
	cols, err := p.api.Collections(r.Context())
	if err != nil {
		p.renderError(w, r, err)
		return
	}
	p.renderer.Page(w, r, "collections_list", &render.PageData{
		Title:   "Collections",
		Section: "collections",
		Data:    map[string]any{"Collections": cols, "Form": form, "Error": errMsg},
	})
}

func (p *Pages) collectionForm(w http.ResponseWriter, r *http.Request, col *models.Collection, errMsg string) {
	p.renderer.Page(w, r, "collection_form", &render.PageData{
		Title:   "Edit Collection",
		Section: "collections",
		Data:    map[string]any{"Collection": col, "Error": errMsg},
	})
}

// parseOrders reads order_<tweetID>=<n> fields. Blank fields are ignored.
func parseOrders(r *http.Request) (map[uuid.UUID]int, error) {
	if err := r.ParseForm(); err != nil {
		return nil, apperr.Validation("invalid form")
	}
	orders := make(map[uuid.UUID]int)
	for key, values := range r.PostForm {
		if !strings.HasPrefix(key, orderFieldPrefix) || len(values) == 0 {
			continue
		}
		raw := strings.TrimSpace(values[0])
		if raw == "" {
			continue
		}
		tweetID, err := uuid.Parse(strings.TrimPrefix(key, orderFieldPrefix))
		if err != nil {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperr.Validation("display order must be a number, got %q", raw)
		}
		orders[tweetID] = n
	}
	return orders, nil
}

func collectionRequestFromForm(r *http.Request) apiclient.CollectionRequest {
	return apiclient.CollectionRequest{
		Name:         strings.TrimSpace(r.FormValue("name")),
		Description:  strings.TrimSpace(r.FormValue("description")),
		IconURL:      strings.TrimSpace(r.FormValue("icon_url")),
		IsPublic:     r.FormValue("is_public") != "",
		DisplayOrder: formInt(r, "display_order"),
	}
}

func collectionFromRequest(id uuid.UUID, req apiclient.CollectionRequest) *models.Collection {
	return &models.Collection{
		ID:           id,
		Name:         req.Name,
		Description:  req.Description,
		IconURL:      req.IconURL,
		IsPublic:     req.IsPublic,
		DisplayOrder: req.DisplayOrder,
	}
}
