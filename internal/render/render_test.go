package render

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"bookmarkbrain/internal/logger"
	"bookmarkbrain/internal/middleware"
	"bookmarkbrain/internal/models"
	"bookmarkbrain/internal/session"
)

type stubFlashes struct {
	queued []session.Flash
	err    error
	asked  string
}

func (s *stubFlashes) PopFlashes(_ context.Context, id string) ([]session.Flash, error) {
	s.asked = id
	out := s.queued
	s.queued = nil
	return out, s.err
}

func newRenderer(t *testing.T, flashes FlashSource) *Renderer {
	t.Helper()
	rn, err := New(flashes, logger.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return rn
}

func withSession(r *http.Request, id string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.SessionKey, id))
}

// fixtures returns page data for every template, shaped like the web
// handlers build it.
func fixtures() map[string]map[string]any {
	posted := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	img := "https://img.example/a.png"
	root := models.Category{ID: uuid.New(), Name: "Tech", ColorHex: "#3B82F6"}
	child := models.Category{ID: uuid.New(), Name: "Go", ColorHex: "#10B981", ParentID: &root.ID, Depth: 1}
	root.Children = []models.Category{child}
	tweet := models.Tweet{
		ID: uuid.New(), Content: "Generics are <b>here</b>", AuthorUsername: "gopher",
		OriginalURL: "https://x.com/gopher/status/1", TweetDate: &posted, ImageURL: &img,
		PlatformName: "X", CategoryID: &child.ID,
	}
	tag := models.Hashtag{ID: uuid.New(), Name: "golang", UsageCount: 12, IsPopular: true}
	col := models.Collection{
		ID: uuid.New(), Name: "Reading", IsPublic: true, Description: "Long **reads** <script>x()</script>",
		Tweets: []models.CollectionTweet{{TweetID: tweet.ID, DisplayOrder: 0, Tweet: &tweet}},
	}

	return map[string]map[string]any{
		"dashboard": {
			"Recent": []models.Tweet{tweet}, "TweetCount": 1,
			"Popular": []models.Hashtag{tag}, "Collections": []models.Collection{col},
			"Tree": []models.Category{root},
		},
		"tweets_list": {"Query": "", "Tweets": []models.Tweet{tweet}, "Page": 2, "HasPrev": true, "HasNext": true},
		"tweet_detail": {
			"Tweet":         &tweet,
			"Links":         []models.TweetCategory{{TweetID: tweet.ID, CategoryID: child.ID, CategoryName: "Go", CategoryColor: "#10B981"}},
			"Tags":          []models.TweetHashtag{{TweetID: tweet.ID, HashtagID: tag.ID, HashtagName: "golang", HashtagIsPopular: true}},
			"AllCategories": []models.Category{root, child},
			"AllHashtags":   []models.Hashtag{tag},
		},
		"tweet_form":        {"IsNew": false, "Tweet": &tweet, "Categories": []models.Category{root, child}, "Error": "content is required"},
		"tweet_extract":     {"URL": "https://x.com/a/status/2", "Error": ""},
		"categories":        {"Tree": []models.Category{root}, "Options": []models.Category{root, child}, "Form": &models.Category{}, "Error": ""},
		"category_detail":   {"Category": &root, "Tweets": []models.Tweet{tweet}},
		"category_form":     {"Category": &child, "Options": []models.Category{root, child}, "Error": "circular reference"},
		"collections_list":  {"Collections": []models.Collection{col}, "Form": &models.Collection{}, "Error": ""},
		"collection_detail": {"Collection": &col, "Candidates": []models.Tweet{tweet}, "OrderPrefix": "order_"},
		"collection_form":   {"Collection": &col, "Error": ""},
		"hashtags":          {"Hashtags": []models.Hashtag{tag}, "Popular": []models.Hashtag{tag}, "Form": struct{ Name, Description string }{}, "Error": ""},
		"error":             {"Status": 404, "Message": "Page not found."},
	}
}

func TestNew_ParsesAllTemplates(t *testing.T) {
	rn := newRenderer(t, nil)
	for name := range fixtures() {
		if _, ok := rn.templates[name]; !ok {
			t.Errorf("template %q not loaded", name)
		}
	}
}

func TestPage_RendersEveryTemplate(t *testing.T) {
	rn := newRenderer(t, nil)

	for name, data := range fixtures() {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			rn.Page(w, r, name, &PageData{Title: "T", Section: "tweets", Data: data})

			if w.Code != http.StatusOK {
				t.Fatalf("status: got %d, want 200; body: %s", w.Code, w.Body.String())
			}
			body := w.Body.String()
			if !strings.Contains(body, "<!DOCTYPE html>") {
				t.Error("full page should include the layout")
			}
			if !strings.Contains(body, "BookMarkBrain") {
				t.Error("layout brand missing")
			}
		})
	}
}

func TestPage_EscapesContent(t *testing.T) {
	rn := newRenderer(t, nil)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	rn.Page(w, r, "tweet_detail", &PageData{Data: fixtures()["tweet_detail"]})

	if strings.Contains(w.Body.String(), "<b>here</b>") {
		t.Error("tweet content must be HTML-escaped")
	}
}

func TestPage_RendersMarkdownDescriptions(t *testing.T) {
	rn := newRenderer(t, nil)
	w := httptest.NewRecorder()

	rn.Page(w, httptest.NewRequest(http.MethodGet, "/", nil), "collection_detail", &PageData{Data: fixtures()["collection_detail"]})

	body := w.Body.String()
	if !strings.Contains(body, "<strong>reads</strong>") {
		t.Error("description markdown not rendered")
	}
	if strings.Contains(body, "<script>x()</script>") {
		t.Error("raw HTML in a description must not reach the page")
	}
}

func TestPage_HTMXPartial(t *testing.T) {
	rn := newRenderer(t, nil)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("HX-Request", "true")

	rn.Page(w, r, "error", &PageData{Data: map[string]any{"Status": 404, "Message": "gone"}})

	body := w.Body.String()
	if strings.Contains(body, "<!DOCTYPE html>") {
		t.Error("HTMX partial should not include the layout")
	}
	if !strings.Contains(body, "gone") {
		t.Errorf("partial missing content: %s", body)
	}
}

func TestPage_UnknownTemplate(t *testing.T) {
	rn := newRenderer(t, nil)
	w := httptest.NewRecorder()

	rn.Page(w, httptest.NewRequest(http.MethodGet, "/", nil), "nope", &PageData{})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", w.Code)
	}
}

func TestPage_InjectsCSRFToken(t *testing.T) {
	rn := newRenderer(t, nil)
	var token string
	h := middleware.NewCSRF(false, logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token = middleware.GetCSRFToken(r)
		rn.Page(w, r, "tweet_extract", &PageData{Data: map[string]any{}})
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tweets/extract", nil))

	if token == "" {
		t.Fatal("middleware did not issue a token")
	}
	if !strings.Contains(w.Body.String(), `value="`+token+`"`) {
		t.Error("form does not carry the CSRF token")
	}
}

func TestPage_ShowsFlashesOnce(t *testing.T) {
	src := &stubFlashes{queued: []session.Flash{{Kind: session.FlashSuccess, Message: "Tweet created."}}}
	rn := newRenderer(t, src)

	render := func() string {
		w := httptest.NewRecorder()
		r := withSession(httptest.NewRequest(http.MethodGet, "/", nil), "sess-1")
		rn.Page(w, r, "error", &PageData{Data: map[string]any{}})
		return w.Body.String()
	}

	first := render()
	if !strings.Contains(first, "Tweet created.") || !strings.Contains(first, "flash-success") {
		t.Errorf("flash not rendered: %s", first)
	}
	if src.asked != "sess-1" {
		t.Errorf("flashes popped for %q, want sess-1", src.asked)
	}
	if strings.Contains(render(), "Tweet created.") {
		t.Error("flash rendered twice")
	}
}

func TestPage_FlashErrorsAreNotFatal(t *testing.T) {
	rn := newRenderer(t, &stubFlashes{err: errors.New("valkey down")})
	w := httptest.NewRecorder()
	r := withSession(httptest.NewRequest(http.MethodGet, "/", nil), "sess-1")

	rn.Page(w, r, "error", &PageData{Data: map[string]any{}})

	if w.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", w.Code)
	}
}

func TestPageStatus(t *testing.T) {
	rn := newRenderer(t, nil)
	w := httptest.NewRecorder()

	rn.PageStatus(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusBadGateway, "error",
		&PageData{Data: map[string]any{"Status": 502, "Message": "unavailable"}})

	if w.Code != http.StatusBadGateway {
		t.Errorf("status: got %d, want 502", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("content-type: got %q", ct)
	}
}

func TestFuncs(t *testing.T) {
	id := uuid.New()
	other := uuid.New()
	ts := time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC)

	truncate := funcMap["truncate"].(func(int, string) string)
	if got := truncate(3, "héllo"); got != "hél…" {
		t.Errorf("truncate: got %q", got)
	}
	if got := truncate(10, "short"); got != "short" {
		t.Errorf("truncate short: got %q", got)
	}

	uuidEq := funcMap["uuidEq"].(func(*uuid.UUID, uuid.UUID) bool)
	if !uuidEq(&id, id) || uuidEq(&id, other) || uuidEq(nil, id) {
		t.Error("uuidEq mismatch")
	}

	dtlocal := funcMap["dtlocal"].(func(*time.Time) string)
	if got := dtlocal(&ts); got != "2026-01-02T15:04" {
		t.Errorf("dtlocal: got %q", got)
	}
	if got := dtlocal(nil); got != "" {
		t.Errorf("dtlocal nil: got %q", got)
	}

	catIndent := funcMap["catIndent"].(func(int, string) string)
	if got := catIndent(0, "Go"); got != "Go" {
		t.Errorf("catIndent root: got %q", got)
	}
	if got := catIndent(2, "Go"); got != "\u00a0\u00a0\u00a0\u00a0\u00a0\u00a0\u00a0\u00a0Go" {
		t.Errorf("catIndent: got %q", got)
	}
}
