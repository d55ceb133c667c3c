package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"bookmarkbrain/internal/apiclient"
	"bookmarkbrain/internal/apperr"
	"bookmarkbrain/internal/models"
	"bookmarkbrain/internal/render"
)

// tweetsPerPage is the page size of the tweet list.
const tweetsPerPage = 20

// TweetsList renders the paged tweet list, or search results when q is set.
func (p *Pages) TweetsList(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	data := map[string]any{"Query": q}

	if q != "" {
		tweets, err := p.api.SearchTweets(r.Context(), q)
		if err != nil {
			p.renderError(w, r, err)
			return
		}
		data["Tweets"] = tweets
	} else {
		page, err := p.api.TweetsPaged(r.Context(), queryInt(r, "page", 1), tweetsPerPage)
		if err != nil {
			p.renderError(w, r, err)
			return
		}
		data["Tweets"] = page.Items
		data["Page"] = page.Page
		data["HasPrev"] = page.Page > 1
		data["HasNext"] = page.Page*page.PageSize < page.Total
	}

	p.renderer.Page(w, r, "tweets_list", &render.PageData{Title: "Tweets", Section: "tweets", Data: data})
}

// TweetShow renders a tweet with its categories and hashtags.
func (p *Pages) TweetShow(w http.ResponseWriter, r *http.Request) {
	id, ok := p.pathUUID(w, r, "id")
	if !ok {
		return
	}
	ctx := r.Context()

	tweet, err := p.api.Tweet(ctx, id)
	if err != nil {
		p.renderError(w, r, err)
		return
	}
	links, err := p.api.TweetCategories(ctx, id)
	if err != nil {
		p.renderError(w, r, err)
		return
	}
	tags, err := p.api.TweetHashtags(ctx, id)
	if err != nil {
		p.renderError(w, r, err)
		return
	}
	categories, err := p.api.Categories(ctx)
	if err != nil {
		p.renderError(w, r, err)
		return
	}
	hashtags, err := p.api.Hashtags(ctx)
	if err != nil {
		p.renderError(w, r, err)
		return
	}

	p.renderer.Page(w, r, "tweet_detail", &render.PageData{
		Title:   "Tweet",
		Section: "tweets",
		Data: map[string]any{
			"Tweet":         tweet,
			"Links":         links,
			"Tags":          tags,
			"AllCategories": categories,
			"AllHashtags":   hashtags,
		},
	})
}

// TweetNew renders the empty tweet form.
func (p *Pages) TweetNew(w http.ResponseWriter, r *http.Request) {
	p.tweetForm(w, r, true, &models.Tweet{PlatformName: "Twitter"}, "")
}

// TweetCreate handles the new tweet form submission.
func (p *Pages) TweetCreate(w http.ResponseWriter, r *http.Request) {
	req := tweetRequestFromForm(r)
	t, err := p.api.CreateTweet(r.Context(), req)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindValidation {
			p.tweetForm(w, r, true, tweetFromRequest(uuid.Nil, req), err.Error())
			return
		}
		p.failed(w, r, err, "/tweets")
		return
	}
	p.done(w, r, "Tweet saved.", "/tweets/"+t.ID.String())
}

// TweetEdit renders the form for an existing tweet.
func (p *Pages) TweetEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := p.pathUUID(w, r, "id")
	if !ok {
		return
	}
	t, err := p.api.Tweet(r.Context(), id)
	if err != nil {
		p.renderError(w, r, err)
		return
	}
	p.tweetForm(w, r, false, t, "")
}

// TweetUpdate handles the edit tweet form submission.
func (p *Pages) TweetUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := p.pathUUID(w, r, "id")
	if !ok {
		return
	}
	req := tweetRequestFromForm(r)
	if _, err := p.api.UpdateTweet(r.Context(), id, req); err != nil {
		if apperr.KindOf(err) == apperr.KindValidation {
			p.tweetForm(w, r, false, tweetFromRequest(id, req), err.Error())
			return
		}
		p.failed(w, r, err, "/tweets/"+id.String())
		return
	}
	p.done(w, r, "Tweet updated.", "/tweets/"+id.String())
}

// TweetToggleSeen flips the seen flag and returns to the referring list.
func (p *Pages) TweetToggleSeen(w http.ResponseWriter, r *http.Request) {
	id, ok := p.pathUUID(w, r, "id")
	if !ok {
		return
	}
	back := safeReturn(r.FormValue("return"), "/tweets/"+id.String())
	t, err := p.api.ToggleSeen(r.Context(), id)
	if err != nil {
		p.failed(w, r, err, back)
		return
	}
	msg := "Marked as unseen."
	if t.IsSeen {
		msg = "Marked as seen."
	}
	p.done(w, r, msg, back)
}

// TweetDelete removes a tweet and its links.
func (p *Pages) TweetDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := p.pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := p.api.DeleteTweet(r.Context(), id); err != nil {
		p.failed(w, r, err, "/tweets/"+id.String())
		return
	}
	p.done(w, r, "Tweet deleted.", "/tweets")
}

// ExtractForm renders the save-from-URL form.
func (p *Pages) ExtractForm(w http.ResponseWriter, r *http.Request) {
	p.renderer.Page(w, r, "tweet_extract", &render.PageData{Title: "Save from URL", Section: "tweets", Data: map[string]any{}})
}

// ExtractSubmit fetches the URL through the API and saves it as a tweet.
func (p *Pages) ExtractSubmit(w http.ResponseWriter, r *http.Request) {
	rawURL := strings.TrimSpace(r.FormValue("url"))
	t, err := p.api.ExtractTweet(r.Context(), rawURL)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindValidation {
			p.renderer.Page(w, r, "tweet_extract", &render.PageData{
				Title:   "Save from URL",
				Section: "tweets",
				Data:    map[string]any{"URL": rawURL, "Error": err.Error()},
			})
			return
		}
		p.failed(w, r, err, "/tweets/extract")
		return
	}
	p.done(w, r, "Content extracted and saved.", "/tweets/"+t.ID.String())
}

// TweetAssignCategories links the tweet to every selected category.
func (p *Pages) TweetAssignCategories(w http.ResponseWriter, r *http.Request) {
	id, ok := p.pathUUID(w, r, "id")
	if !ok {
		return
	}
	back := "/tweets/" + id.String()
	ids := formUUIDs(r, "category_id")
	if len(ids) == 0 {
		p.failed(w, r, apperr.Validation("Select at least one category."), back)
		return
	}
	if err := p.api.AssignCategories(r.Context(), id, ids); err != nil {
		p.failed(w, r, err, back)
		return
	}
	p.done(w, r, "Categories assigned.", back)
}

// TweetRemoveCategory unlinks one category from the tweet.
func (p *Pages) TweetRemoveCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := p.pathUUID(w, r, "id")
	if !ok {
		return
	}
	categoryID, ok := p.pathUUID(w, r, "categoryId")
	if !ok {
		return
	}
	back := "/tweets/" + id.String()
	if err := p.api.UnlinkCategory(r.Context(), id, categoryID); err != nil {
		p.failed(w, r, err, back)
		return
	}
	p.done(w, r, "Category removed.", back)
}

// TweetAddHashtag links the selected hashtag to the tweet.
func (p *Pages) TweetAddHashtag(w http.ResponseWriter, r *http.Request) {
	id, ok := p.pathUUID(w, r, "id")
	if !ok {
		return
	}
	back := "/tweets/" + id.String()
	hashtagID := formUUID(r, "hashtag_id")
	if hashtagID == nil {
		p.failed(w, r, apperr.Validation("Select a hashtag."), back)
		return
	}
	if err := p.api.LinkHashtag(r.Context(), id, *hashtagID); err != nil {
		p.failed(w, r, err, back)
		return
	}
	p.done(w, r, "Hashtag added.", back)
}

// TweetRemoveHashtag unlinks one hashtag from the tweet.
func (p *Pages) TweetRemoveHashtag(w http.ResponseWriter, r *http.Request) {
	id, ok := p.pathUUID(w, r, "id")
	if !ok {
		return
	}
	hashtagID, ok := p.pathUUID(w, r, "hashtagId")
	if !ok {
		return
	}
	back := "/tweets/" + id.String()
	if err := p.api.UnlinkHashtag(r.Context(), id, hashtagID); err != nil {
		p.failed(w, r, err, back)
		return
	}
	p.done(w, r, "Hashtag removed.", back)
}

func (p *Pages) tweetForm(w http.ResponseWriter, r *http.Request, isNew bool, t *models.Tweet, errMsg string) {
	categories, err := p.api.Categories(r.Context())
	if err != nil {
		p.renderError(w, r, err)
		return
	}
	title := "Edit Tweet"
	if isNew {
		title = "New Tweet"
	}
	p.renderer.Page(w, r, "tweet_form", &render.PageData{
		Title:   title,
		Section: "tweets",
		Data: map[string]any{
			"IsNew":      isNew,
			"Tweet":      t,
			"Categories": categories,
			"Error":      errMsg,
		},
	})
}

// tweetRequestFromForm maps the tweet form onto an API request.
func tweetRequestFromForm(r *http.Request) apiclient.TweetRequest {
	req := apiclient.TweetRequest{
		Content:        strings.TrimSpace(r.FormValue("content")),
		AuthorUsername: strings.TrimSpace(r.FormValue("author_username")),
		OriginalURL:    strings.TrimSpace(r.FormValue("original_url")),
		PlatformName:   strings.TrimSpace(r.FormValue("platform_name")),
		IsSeen:         r.FormValue("is_seen") != "",
		CategoryID:     formUUID(r, "category_id"),
	}
	if v := strings.TrimSpace(r.FormValue("image_url")); v != "" {
		req.ImageURL = &v
	}
	if v := strings.TrimSpace(r.FormValue("tweet_date")); v != "" {
		if t, err := time.Parse("2006-01-02T15:04", v); err == nil {
			req.TweetDate = &t
		}
	}
	return req
}

// tweetFromRequest rebuilds a tweet from submitted values so a rejected
// form can be shown again.
func tweetFromRequest(id uuid.UUID, req apiclient.TweetRequest) *models.Tweet {
	return &models.Tweet{
		ID:             id,
		Content:        req.Content,
		AuthorUsername: req.AuthorUsername,
		OriginalURL:    req.OriginalURL,
		TweetDate:      req.TweetDate,
		ImageURL:       req.ImageURL,
		IsSeen:         req.IsSeen,
		PlatformName:   req.PlatformName,
		CategoryID:     req.CategoryID,
	}
}

// safeReturn accepts only local absolute paths as redirect targets.
func safeReturn(target, fallback string) string {
	if strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//") && !strings.ContainsAny(target, "\\\r\n") {
		return target
	}
	return fallback
}
