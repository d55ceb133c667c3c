package web

import (
	"net/http"
	"strings"

	"bookmarkbrain/internal/apiclient"
	"bookmarkbrain/internal/apperr"
	"bookmarkbrain/internal/render"
)

// HashtagsPage renders all hashtags, the popular ones and the create form.
func (p *Pages) HashtagsPage(w http.ResponseWriter, r *http.Request) {
	p.hashtagsPage(w, r, apiclient.HashtagRequest{}, "")
}

// HashtagCreate handles the new hashtag form.
func (p *Pages) HashtagCreate(w http.ResponseWriter, r *http.Request) {
	req := apiclient.HashtagRequest{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}
	if r.FormValue("is_popular") != "" {
		popular := true
		req.IsPopular = &popular
	}
	if _, err := p.api.CreateHashtag(r.Context(), req); err != nil {
		switch apperr.KindOf(err) {
		case apperr.KindValidation, apperr.KindAlreadyExists:
			p.hashtagsPage(w, r, req, err.Error())
		default:
			p.failed(w, r, err, "/hashtags")
		}
		return
	}
	p.done(w, r, "Hashtag created.", "/hashtags")
}

// HashtagDelete removes a hashtag and its tweet links.
func (p *Pages) HashtagDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := p.pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := p.api.DeleteHashtag(r.Context(), id); err != nil {
		p.failed(w, r, err, "/hashtags")
		return
	}
	p.done(w, r, "Hashtag deleted.", "/hashtags")
}

func (p *Pages) hashtagsPage(w http.ResponseWriter, r *http.Request, form apiclient.HashtagRequest, errMsg string) {
	all, err := p.api.Hashtags(r.Context())
	if err != nil {
		p.renderError(w, r, err)
		return
	}
	popular, err := p.api.PopularHashtags(r.Context())
	if err != nil {
		p.renderError(w, r, err)
		return
	}
	p.renderer.Page(w, r, "hashtags", &render.PageData{
		Title:   "Hashtags",
		Section: "hashtags",
		Data:    map[string]any{"Hashtags": all, "Popular": popular, "Form": form, "Error": errMsg},
	})
}
