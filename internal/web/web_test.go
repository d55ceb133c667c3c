package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmarkbrain/internal/apiclient"
	"bookmarkbrain/internal/apperr"
	"bookmarkbrain/internal/logger"
	"bookmarkbrain/internal/middleware"
	"bookmarkbrain/internal/models"
	"bookmarkbrain/internal/render"
	"bookmarkbrain/internal/session"
)

// stubAPI implements the calls a test needs; anything else panics through
// the embedded nil interface.
type stubAPI struct {
	API

	createTweet func(apiclient.TweetRequest) (*models.Tweet, error)
	createCat   func(apiclient.CategoryRequest) (*models.Category, error)
	assign      func(uuid.UUID, []uuid.UUID) (*apiclient.AssignResult, error)
	reorder     func(uuid.UUID, map[uuid.UUID]int) error
	toggle      func(uuid.UUID) (*models.Tweet, error)
	tree        []models.Category
	treeErr     error
}

func (s *stubAPI) TweetsPaged(context.Context, int, int) (*models.Page[models.Tweet], error) {
	return &models.Page[models.Tweet]{Items: []models.Tweet{{ID: uuid.New(), Content: "recent tweet", AuthorUsername: "gopher"}}, Total: 1, Page: 1, PageSize: 5}, nil
}

func (s *stubAPI) PopularHashtags(context.Context) ([]models.Hashtag, error) {
	return []models.Hashtag{{ID: uuid.New(), Name: "golang", IsPopular: true}}, nil
}

func (s *stubAPI) Collections(context.Context) ([]models.Collection, error) {
	return []models.Collection{{ID: uuid.New(), Name: "Reading list"}}, nil
}

func (s *stubAPI) CategoryTree(context.Context) ([]models.Category, error) {
	return s.tree, s.treeErr
}

func (s *stubAPI) Categories(context.Context) ([]models.Category, error) {
	return flatten(s.tree), nil
}

func (s *stubAPI) CreateTweet(_ context.Context, req apiclient.TweetRequest) (*models.Tweet, error) {
	return s.createTweet(req)
}

func (s *stubAPI) CreateCategory(_ context.Context, req apiclient.CategoryRequest) (*models.Category, error) {
	return s.createCat(req)
}

func (s *stubAPI) AssignTweets(_ context.Context, id uuid.UUID, ids []uuid.UUID) (*apiclient.AssignResult, error) {
	return s.assign(id, ids)
}

func (s *stubAPI) ReorderCollection(_ context.Context, id uuid.UUID, orders map[uuid.UUID]int) error {
	return s.reorder(id, orders)
}

func (s *stubAPI) ToggleSeen(_ context.Context, id uuid.UUID) (*models.Tweet, error) {
	return s.toggle(id)
}

type recordedFlashes struct {
	flashes []session.Flash
}

func (f *recordedFlashes) AddFlash(_ context.Context, _ string, fl session.Flash) error {
	f.flashes = append(f.flashes, fl)
	return nil
}

func newPages(t *testing.T, api API) (*Pages, *recordedFlashes) {
	t.Helper()
	rn, err := render.New(nil, logger.Nop())
	require.NoError(t, err)
	flashes := &recordedFlashes{}
	return New(api, rn, flashes, logger.Nop()), flashes
}

// do routes a single request through chi so URL parameters resolve.
func do(method, pattern string, h http.HandlerFunc, target string, form url.Values) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req = req.WithContext(context.WithValue(req.Context(), middleware.SessionKey, "sess"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleTree() []models.Category {
	root := models.Category{ID: uuid.New(), Name: "Tech"}
	child := models.Category{ID: uuid.New(), Name: "Go", ParentID: &root.ID, Depth: 1}
	grandchild := models.Category{ID: uuid.New(), Name: "Generics", ParentID: &child.ID, Depth: 2}
	child.Children = []models.Category{grandchild}
	root.Children = []models.Category{child}
	return []models.Category{root, {ID: uuid.New(), Name: "Music"}}
}

func TestDashboard(t *testing.T) {
	p, _ := newPages(t, &stubAPI{tree: sampleTree()})

	w := do(http.MethodGet, "/", p.Dashboard, "/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "recent tweet")
	assert.Contains(t, body, "#golang")
	assert.Contains(t, body, "Reading list")
	assert.Contains(t, body, "Generics")
}

func TestDashboard_APIUnavailable(t *testing.T) {
	api := &stubAPI{treeErr: apperr.Store("list categories", assert.AnError)}
	p, _ := newPages(t, api)

	w := do(http.MethodGet, "/", p.Dashboard, "/", nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "The bookmark service is unavailable")
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestTweetCreate(t *testing.T) {
	id := uuid.New()
	var got apiclient.TweetRequest
	api := &stubAPI{tree: sampleTree(), createTweet: func(req apiclient.TweetRequest) (*models.Tweet, error) {
		got = req
		return &models.Tweet{ID: id}, nil
	}}
	p, flashes := newPages(t, api)

	form := url.Values{
		"content":         {"  Saved thought  "},
		"author_username": {"gopher"},
		"original_url":    {"https://x.com/gopher/status/1"},
		"tweet_date":      {"2026-03-01T09:30"},
		"image_url":       {"   "},
		"is_seen":         {"1"},
		"category_id":     {""},
	}
	w := do(http.MethodPost, "/tweets", p.TweetCreate, "/tweets", form)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/tweets/"+id.String(), w.Header().Get("Location"))
	assert.Equal(t, "Saved thought", got.Content)
	assert.True(t, got.IsSeen)
	assert.Nil(t, got.ImageURL)
	assert.Nil(t, got.CategoryID)
	require.NotNil(t, got.TweetDate)
	assert.Equal(t, 9, got.TweetDate.Hour())
	require.Len(t, flashes.flashes, 1)
	assert.Equal(t, session.FlashSuccess, flashes.flashes[0].Kind)
}

func TestTweetCreate_ValidationRerendersForm(t *testing.T) {
	api := &stubAPI{tree: sampleTree(), createTweet: func(apiclient.TweetRequest) (*models.Tweet, error) {
		return nil, apperr.Validation("content is required")
	}}
	p, flashes := newPages(t, api)

	w := do(http.MethodPost, "/tweets", p.TweetCreate, "/tweets", url.Values{"author_username": {"gopher"}})

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "content is required")
	assert.Contains(t, body, `value="gopher"`, "submitted values are kept")
	assert.Empty(t, flashes.flashes)
}

func TestTweetCreate_HTMXRedirect(t *testing.T) {
	id := uuid.New()
	api := &stubAPI{createTweet: func(apiclient.TweetRequest) (*models.Tweet, error) { return &models.Tweet{ID: id}, nil }}
	p, _ := newPages(t, api)

	r := chi.NewRouter()
	r.Post("/tweets", p.TweetCreate)
	req := httptest.NewRequest(http.MethodPost, "/tweets", strings.NewReader("content=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/tweets/"+id.String(), w.Header().Get("HX-Redirect"))
}

func TestCategoryCreate_ConflictIsFlashed(t *testing.T) {
	api := &stubAPI{tree: sampleTree(), createCat: func(apiclient.CategoryRequest) (*models.Category, error) {
		return nil, apperr.AlreadyExists("category %q already exists", "Go")
	}}
	p, flashes := newPages(t, api)

	w := do(http.MethodPost, "/categories", p.CategoryCreate, "/categories", url.Values{"name": {"Go"}})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/categories", w.Header().Get("Location"))
	require.Len(t, flashes.flashes, 1)
	assert.Equal(t, session.FlashError, flashes.flashes[0].Kind)
	assert.Contains(t, flashes.flashes[0].Message, "already exists")
}

func TestCategoryCreate_ValidationRerendersPage(t *testing.T) {
	api := &stubAPI{tree: sampleTree(), createCat: func(apiclient.CategoryRequest) (*models.Category, error) {
		return nil, apperr.Validation("color_hex must look like #RRGGBB")
	}}
	p, _ := newPages(t, api)

	w := do(http.MethodPost, "/categories", p.CategoryCreate, "/categories", url.Values{"name": {"Go"}, "color_hex": {"blue"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "#RRGGBB")
}

func TestTweetShow_MalformedIDIsNotFound(t *testing.T) {
	p, _ := newPages(t, &stubAPI{})

	w := do(http.MethodGet, "/tweets/{id}", p.TweetShow, "/tweets/nope", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTweetToggleSeen_ReturnTarget(t *testing.T) {
	id := uuid.New()
	api := &stubAPI{toggle: func(uuid.UUID) (*models.Tweet, error) { return &models.Tweet{ID: id, IsSeen: true}, nil }}
	p, flashes := newPages(t, api)

	w := do(http.MethodPost, "/tweets/{id}/toggle-seen", p.TweetToggleSeen,
		"/tweets/"+id.String()+"/toggle-seen", url.Values{"return": {"//evil.example"}})

	assert.Equal(t, "/tweets/"+id.String(), w.Header().Get("Location"))
	require.Len(t, flashes.flashes, 1)
	assert.Equal(t, "Marked as seen.", flashes.flashes[0].Message)
}

func TestCollectionAssign_ReportsSkipped(t *testing.T) {
	colID, a, b := uuid.New(), uuid.New(), uuid.New()
	var sent []uuid.UUID
	api := &stubAPI{assign: func(_ uuid.UUID, ids []uuid.UUID) (*apiclient.AssignResult, error) {
		sent = ids
		return &apiclient.AssignResult{
			Created: []models.CollectionTweet{{TweetID: a}},
			Skipped: []apiclient.SkippedTweet{{TweetID: b, Reason: "already in collection"}},
		}, nil
	}}
	p, flashes := newPages(t, api)

	form := url.Values{"tweet_id": {a.String(), "garbage", b.String()}}
	w := do(http.MethodPost, "/collections/{id}/tweets", p.CollectionAssign, "/collections/"+colID.String()+"/tweets", form)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, []uuid.UUID{a, b}, sent)
	require.Len(t, flashes.flashes, 2)
	assert.Equal(t, "1 tweet(s) added.", flashes.flashes[0].Message)
	assert.Equal(t, session.FlashInfo, flashes.flashes[1].Kind)
	assert.Contains(t, flashes.flashes[1].Message, "already in collection")
}

func TestCollectionAssign_NothingSelected(t *testing.T) {
	p, flashes := newPages(t, &stubAPI{})
	colID := uuid.New()

	w := do(http.MethodPost, "/collections/{id}/tweets", p.CollectionAssign, "/collections/"+colID.String()+"/tweets", url.Values{})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	require.Len(t, flashes.flashes, 1)
	assert.Equal(t, session.FlashError, flashes.flashes[0].Kind)
}

func TestCollectionReorder(t *testing.T) {
	colID, a, b := uuid.New(), uuid.New(), uuid.New()
	var got map[uuid.UUID]int
	api := &stubAPI{reorder: func(_ uuid.UUID, orders map[uuid.UUID]int) error {
		got = orders
		return nil
	}}
	p, _ := newPages(t, api)

	form := url.Values{
		orderFieldPrefix + a.String(): {"2"},
		orderFieldPrefix + b.String(): {" 0 "},
		"csrf_token":                  {"x"},
	}
	w := do(http.MethodPost, "/collections/{id}/reorder", p.CollectionReorder, "/collections/"+colID.String()+"/reorder", form)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, map[uuid.UUID]int{a: 2, b: 0}, got)
}

func TestParseOrders_RejectsNonNumbers(t *testing.T) {
	form := url.Values{orderFieldPrefix + uuid.NewString(): {"first"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	_, err := parseOrders(req)

	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSafeReturn(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"/tweets?page=2", "/tweets?page=2"},
		{"", "/fallback"},
		{"https://evil.example", "/fallback"},
		{"//evil.example", "/fallback"},
		{"/\\evil.example", "/fallback"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, safeReturn(tt.target, "/fallback"), "target %q", tt.target)
	}
}

func TestFlatten(t *testing.T) {
	flat := flatten(sampleTree())

	names := make([]string, 0, len(flat))
	for _, c := range flat {
		names = append(names, c.Name)
		assert.Empty(t, c.Children)
	}
	assert.Equal(t, []string{"Tech", "Go", "Generics", "Music"}, names)
	assert.Equal(t, 2, flat[2].Depth)
}
