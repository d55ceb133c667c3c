package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"bookmarkbrain/internal/logger"
	"bookmarkbrain/internal/models"
)

// memDB is an in-memory Repository. InTx snapshots every table and
// restores the snapshot when fn fails.
type memDB struct {
	tweets           map[uuid.UUID]models.Tweet
	categories       map[uuid.UUID]models.Category
	hashtags         map[uuid.UUID]models.Hashtag
	collections      map[uuid.UUID]models.Collection
	tweetCategories  map[uuid.UUID]models.TweetCategory
	tweetHashtags    map[uuid.UUID]models.TweetHashtag
	collectionTweets map[uuid.UUID]models.CollectionTweet

	clock time.Time
	fail  map[string]error
	txs   int
}

var errBoom = errors.New("boom")

func newMemDB() *memDB {
	return &memDB{
		tweets:           map[uuid.UUID]models.Tweet{},
		categories:       map[uuid.UUID]models.Category{},
		hashtags:         map[uuid.UUID]models.Hashtag{},
		collections:      map[uuid.UUID]models.Collection{},
		tweetCategories:  map[uuid.UUID]models.TweetCategory{},
		tweetHashtags:    map[uuid.UUID]models.TweetHashtag{},
		collectionTweets: map[uuid.UUID]models.CollectionTweet{},
		clock:            time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		fail:             map[string]error{},
	}
}

func (db *memDB) tick() time.Time {
	db.clock = db.clock.Add(time.Second)
	return db.clock
}

func (db *memDB) err(op string) error {
	return db.fail[op]
}

func (db *memDB) Tweets() TweetRepo                     { return fakeTweets{db} }
func (db *memDB) Categories() CategoryRepo              { return fakeCategories{db} }
func (db *memDB) Hashtags() HashtagRepo                 { return fakeHashtags{db} }
func (db *memDB) Collections() CollectionRepo           { return fakeCollections{db} }
func (db *memDB) TweetCategories() TweetCategoryRepo    { return fakeTweetCategories{db} }
func (db *memDB) TweetHashtags() TweetHashtagRepo       { return fakeTweetHashtags{db} }
func (db *memDB) CollectionTweets() CollectionTweetRepo { return fakeCollectionTweets{db} }

func (db *memDB) InTx(_ context.Context, fn func(Repository) error) error {
	db.txs++
	snap := struct {
		t   map[uuid.UUID]models.Tweet
		c   map[uuid.UUID]models.Category
		h   map[uuid.UUID]models.Hashtag
		col map[uuid.UUID]models.Collection
		tc  map[uuid.UUID]models.TweetCategory
		th  map[uuid.UUID]models.TweetHashtag
		ct  map[uuid.UUID]models.CollectionTweet
	}{
		cloneMap(db.tweets), cloneMap(db.categories), cloneMap(db.hashtags), cloneMap(db.collections),
		cloneMap(db.tweetCategories), cloneMap(db.tweetHashtags), cloneMap(db.collectionTweets),
	}
	if err := fn(db); err != nil {
		db.tweets, db.categories, db.hashtags, db.collections = snap.t, snap.c, snap.h, snap.col
		db.tweetCategories, db.tweetHashtags, db.collectionTweets = snap.tc, snap.th, snap.ct
		return err
	}
	return nil
}

func cloneMap[V any](m map[uuid.UUID]V) map[uuid.UUID]V {
	out := make(map[uuid.UUID]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func newService[T any](ctor func(Repository, *logger.Logger) T) (T, *memDB) {
	db := newMemDB()
	return ctor(db, logger.Nop()), db
}

// seeding helpers

func (db *memDB) addTweet(content string) models.Tweet {
	t := models.Tweet{
		ID:             uuid.New(),
		Content:        content,
		AuthorUsername: "author",
		OriginalURL:    "https://x.com/author/status/1",
		PlatformName:   models.DefaultPlatform,
		CreatedAt:      db.tick(),
	}
	db.tweets[t.ID] = t
	return t
}

func (db *memDB) addCategory(name string, parent *uuid.UUID) models.Category {
	c := models.Category{ID: uuid.New(), Name: name, ParentID: parent, CreatedAt: db.tick()}
	db.categories[c.ID] = c
	return c
}

func (db *memDB) addHashtag(name string, usage int, popular bool) models.Hashtag {
	h := models.Hashtag{ID: uuid.New(), Name: name, UsageCount: usage, IsPopular: popular, CreatedAt: db.tick()}
	db.hashtags[h.ID] = h
	return h
}

func (db *memDB) addCollection(name string) models.Collection {
	c := models.Collection{ID: uuid.New(), Name: name, CreatedAt: db.tick()}
	db.collections[c.ID] = c
	return c
}

func (db *memDB) addMember(collectionID, tweetID uuid.UUID, order int) models.CollectionTweet {
	m := models.CollectionTweet{ID: uuid.New(), CollectionID: collectionID, TweetID: tweetID, DisplayOrder: order, CreatedAt: db.tick()}
	db.collectionTweets[m.ID] = m
	return m
}

func ptr[T any](v T) *T { return &v }

// tweets

type fakeTweets struct{ db *memDB }

func (f fakeTweets) live() []models.Tweet {
	var out []models.Tweet
	for _, t := range f.db.tweets {
		if !t.IsDeleted {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

func (f fakeTweets) FindByID(_ context.Context, id uuid.UUID) (*models.Tweet, error) {
	if err := f.db.err("tweets.find"); err != nil {
		return nil, err
	}
	t, ok := f.db.tweets[id]
	if !ok || t.IsDeleted {
		return nil, nil
	}
	return &t, nil
}

func (f fakeTweets) List(context.Context) ([]models.Tweet, error) {
	if err := f.db.err("tweets.list"); err != nil {
		return nil, err
	}
	return f.live(), nil
}

func (f fakeTweets) ListPaged(_ context.Context, limit, offset int) ([]models.Tweet, int, error) {
	all := f.live()
	return window(all, limit, offset), len(all), nil
}

func (f fakeTweets) Search(_ context.Context, term string) ([]models.Tweet, error) {
	term = strings.ToLower(term)
	var out []models.Tweet
	for _, t := range f.live() {
		if strings.Contains(strings.ToLower(t.Content), term) ||
			strings.Contains(strings.ToLower(t.AuthorUsername), term) ||
			strings.Contains(strings.ToLower(t.PlatformName), term) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f fakeTweets) ListByPlatform(_ context.Context, platform string) ([]models.Tweet, error) {
	var out []models.Tweet
	for _, t := range f.live() {
		if strings.EqualFold(t.PlatformName, platform) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f fakeTweets) ListByCategory(_ context.Context, categoryID uuid.UUID) ([]models.Tweet, error) {
	linked := map[uuid.UUID]bool{}
	for _, l := range f.db.tweetCategories {
		if !l.IsDeleted && l.CategoryID == categoryID {
			linked[l.TweetID] = true
		}
	}
	var out []models.Tweet
	for _, t := range f.live() {
		if linked[t.ID] {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f fakeTweets) Create(_ context.Context, t *models.Tweet) (*models.Tweet, error) {
	if err := f.db.err("tweets.create"); err != nil {
		return nil, err
	}
	c := *t
	c.ID = uuid.New()
	c.CreatedAt = f.db.tick()
	f.db.tweets[c.ID] = c
	return &c, nil
}

func (f fakeTweets) Update(_ context.Context, t *models.Tweet) (*models.Tweet, error) {
	cur, ok := f.db.tweets[t.ID]
	if !ok || cur.IsDeleted {
		return nil, nil
	}
	c := *t
	c.CreatedAt = cur.CreatedAt
	c.UpdatedAt = ptr(f.db.tick())
	f.db.tweets[c.ID] = c
	return &c, nil
}

func (f fakeTweets) SoftDelete(_ context.Context, id uuid.UUID) error {
	if t, ok := f.db.tweets[id]; ok {
		t.IsDeleted = true
		f.db.tweets[id] = t
	}
	return nil
}

// categories

type fakeCategories struct{ db *memDB }

func (f fakeCategories) filter(keep func(models.Category) bool) []models.Category {
	var out []models.Category
	for _, c := range f.db.categories {
		if !c.IsDeleted && keep(c) {
			out = append(out, c)
		}
	}
	sortCategories(out)
	return out
}

func (f fakeCategories) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	if err := f.db.err("categories.find"); err != nil {
		return nil, err
	}
	c, ok := f.db.categories[id]
	if !ok || c.IsDeleted {
		return nil, nil
	}
	return &c, nil
}

func (f fakeCategories) List(context.Context) ([]models.Category, error) {
	if err := f.db.err("categories.list"); err != nil {
		return nil, err
	}
	return f.filter(func(models.Category) bool { return true }), nil
}

func (f fakeCategories) ListRoots(context.Context) ([]models.Category, error) {
	return f.filter(func(c models.Category) bool { return c.ParentID == nil }), nil
}

func (f fakeCategories) ListChildren(_ context.Context, parentID uuid.UUID) ([]models.Category, error) {
	return f.filter(func(c models.Category) bool { return c.ParentID != nil && *c.ParentID == parentID }), nil
}

func (f fakeCategories) CountChildren(ctx context.Context, id uuid.UUID) (int, error) {
	kids, _ := f.ListChildren(ctx, id)
	return len(kids), nil
}

func (f fakeCategories) Create(_ context.Context, c *models.Category) (*models.Category, error) {
	n := *c
	n.ID = uuid.New()
	n.CreatedAt = f.db.tick()
	f.db.categories[n.ID] = n
	return &n, nil
}

func (f fakeCategories) Update(_ context.Context, c *models.Category) (*models.Category, error) {
	cur, ok := f.db.categories[c.ID]
	if !ok || cur.IsDeleted {
		return nil, nil
	}
	if err := f.db.err("categories.update"); err != nil {
		return nil, err
	}
	n := *c
	n.CreatedAt = cur.CreatedAt
	n.UpdatedAt = ptr(f.db.tick())
	n.Children, n.ChildIDs, n.Depth = nil, nil, 0
	f.db.categories[n.ID] = n
	return &n, nil
}

func (f fakeCategories) UpdateDisplayOrder(_ context.Context, id uuid.UUID, order int) (bool, error) {
	c, ok := f.db.categories[id]
	if !ok || c.IsDeleted {
		return false, nil
	}
	c.DisplayOrder = order
	c.UpdatedAt = ptr(f.db.tick())
	f.db.categories[id] = c
	return true, nil
}

func (f fakeCategories) SoftDelete(_ context.Context, id uuid.UUID) error {
	if c, ok := f.db.categories[id]; ok {
		c.IsDeleted = true
		f.db.categories[id] = c
	}
	return nil
}

// hashtags

type fakeHashtags struct{ db *memDB }

func (f fakeHashtags) live() []models.Hashtag {
	var out []models.Hashtag
	for _, h := range f.db.hashtags {
		if !h.IsDeleted {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out
}

func (f fakeHashtags) FindByID(_ context.Context, id uuid.UUID) (*models.Hashtag, error) {
	h, ok := f.db.hashtags[id]
	if !ok || h.IsDeleted {
		return nil, nil
	}
	return &h, nil
}

func (f fakeHashtags) FindByName(_ context.Context, name string) (*models.Hashtag, error) {
	for _, h := range f.live() {
		if strings.EqualFold(h.Name, name) {
			return &h, nil
		}
	}
	return nil, nil
}

func (f fakeHashtags) List(context.Context) ([]models.Hashtag, error) {
	return f.live(), nil
}

func (f fakeHashtags) ListPopular(context.Context) ([]models.Hashtag, error) {
	var out []models.Hashtag
	for _, h := range f.live() {
		if h.IsPopular {
			out = append(out, h)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UsageCount > out[j].UsageCount })
	return out, nil
}

func (f fakeHashtags) Create(_ context.Context, h *models.Hashtag) (*models.Hashtag, error) {
	n := *h
	n.ID = uuid.New()
	n.CreatedAt = f.db.tick()
	f.db.hashtags[n.ID] = n
	return &n, nil
}

func (f fakeHashtags) Update(_ context.Context, h *models.Hashtag) (*models.Hashtag, error) {
	cur, ok := f.db.hashtags[h.ID]
	if !ok || cur.IsDeleted {
		return nil, nil
	}
	cur.Name, cur.Description, cur.IsPopular = h.Name, h.Description, h.IsPopular
	cur.UpdatedAt = ptr(f.db.tick())
	f.db.hashtags[h.ID] = cur
	return &cur, nil
}

func (f fakeHashtags) IncrementUsage(_ context.Context, id uuid.UUID) (*models.Hashtag, error) {
	if err := f.db.err("hashtags.increment"); err != nil {
		return nil, err
	}
	h, ok := f.db.hashtags[id]
	if !ok || h.IsDeleted {
		return nil, nil
	}
	h.UsageCount++
	h.UpdatedAt = ptr(f.db.tick())
	f.db.hashtags[id] = h
	return &h, nil
}

func (f fakeHashtags) MarkPopular(_ context.Context, id uuid.UUID) error {
	if h, ok := f.db.hashtags[id]; ok {
		h.IsPopular = true
		f.db.hashtags[id] = h
	}
	return nil
}

func (f fakeHashtags) SoftDelete(_ context.Context, id uuid.UUID) error {
	if h, ok := f.db.hashtags[id]; ok {
		h.IsDeleted = true
		f.db.hashtags[id] = h
	}
	return nil
}

// collections

type fakeCollections struct{ db *memDB }

func (f fakeCollections) filter(keep func(models.Collection) bool) []models.Collection {
	var out []models.Collection
	for _, c := range f.db.collections {
		if !c.IsDeleted && keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (f fakeCollections) FindByID(_ context.Context, id uuid.UUID) (*models.Collection, error) {
	c, ok := f.db.collections[id]
	if !ok || c.IsDeleted {
		return nil, nil
	}
	return &c, nil
}

func (f fakeCollections) List(context.Context) ([]models.Collection, error) {
	return f.filter(func(models.Collection) bool { return true }), nil
}

func (f fakeCollections) ListPublic(context.Context) ([]models.Collection, error) {
	return f.filter(func(c models.Collection) bool { return c.IsPublic }), nil
}

func (f fakeCollections) Search(_ context.Context, term string) ([]models.Collection, error) {
	term = strings.ToLower(term)
	return f.filter(func(c models.Collection) bool {
		return strings.Contains(strings.ToLower(c.Name), term) || strings.Contains(strings.ToLower(c.Description), term)
	}), nil
}

func (f fakeCollections) Create(_ context.Context, c *models.Collection) (*models.Collection, error) {
	n := *c
	n.ID = uuid.New()
	n.CreatedAt = f.db.tick()
	f.db.collections[n.ID] = n
	return &n, nil
}

func (f fakeCollections) Update(_ context.Context, c *models.Collection) (*models.Collection, error) {
	cur, ok := f.db.collections[c.ID]
	if !ok || cur.IsDeleted {
		return nil, nil
	}
	n := *c
	n.CreatedAt = cur.CreatedAt
	n.UpdatedAt = ptr(f.db.tick())
	n.Tweets = nil
	f.db.collections[n.ID] = n
	return &n, nil
}

func (f fakeCollections) UpdateDisplayOrder(_ context.Context, id uuid.UUID, order int) (bool, error) {
	c, ok := f.db.collections[id]
	if !ok || c.IsDeleted {
		return false, nil
	}
	c.DisplayOrder = order
	f.db.collections[id] = c
	return true, nil
}

func (f fakeCollections) SoftDelete(_ context.Context, id uuid.UUID) error {
	if c, ok := f.db.collections[id]; ok {
		c.IsDeleted = true
		f.db.collections[id] = c
	}
	return nil
}

// tweet categories

type fakeTweetCategories struct{ db *memDB }

func (f fakeTweetCategories) filter(keep func(models.TweetCategory) bool) []models.TweetCategory {
	var out []models.TweetCategory
	for _, l := range f.db.tweetCategories {
		if !l.IsDeleted && keep(l) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (f fakeTweetCategories) Find(_ context.Context, tweetID, categoryID uuid.UUID) (*models.TweetCategory, error) {
	for _, l := range f.filter(func(l models.TweetCategory) bool { return l.TweetID == tweetID && l.CategoryID == categoryID }) {
		return &l, nil
	}
	return nil, nil
}

func (f fakeTweetCategories) ListByTweet(_ context.Context, tweetID uuid.UUID) ([]models.TweetCategory, error) {
	return f.filter(func(l models.TweetCategory) bool { return l.TweetID == tweetID }), nil
}

func (f fakeTweetCategories) ListByCategory(_ context.Context, categoryID uuid.UUID) ([]models.TweetCategory, error) {
	return f.filter(func(l models.TweetCategory) bool { return l.CategoryID == categoryID }), nil
}

func (f fakeTweetCategories) ListPaged(_ context.Context, limit, offset int) ([]models.TweetCategory, int, error) {
	all := f.filter(func(models.TweetCategory) bool { return true })
	return window(all, limit, offset), len(all), nil
}

func (f fakeTweetCategories) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	items, _ := f.ListByCategory(ctx, categoryID)
	return len(items), nil
}

func (f fakeTweetCategories) Create(_ context.Context, l *models.TweetCategory) (*models.TweetCategory, error) {
	if err := f.db.err("tweet_categories.create"); err != nil {
		return nil, err
	}
	n := *l
	n.ID = uuid.New()
	n.CreatedAt = f.db.tick()
	f.db.tweetCategories[n.ID] = n
	return &n, nil
}

func (f fakeTweetCategories) SoftDelete(_ context.Context, id uuid.UUID) error {
	if l, ok := f.db.tweetCategories[id]; ok {
		l.IsDeleted = true
		f.db.tweetCategories[id] = l
	}
	return nil
}

func (f fakeTweetCategories) SoftDeleteByTweet(_ context.Context, tweetID uuid.UUID) error {
	for id, l := range f.db.tweetCategories {
		if l.TweetID == tweetID {
			l.IsDeleted = true
			f.db.tweetCategories[id] = l
		}
	}
	return nil
}

// tweet hashtags

type fakeTweetHashtags struct{ db *memDB }

func (f fakeTweetHashtags) filter(keep func(models.TweetHashtag) bool) []models.TweetHashtag {
	var out []models.TweetHashtag
	for _, l := range f.db.tweetHashtags {
		if !l.IsDeleted && keep(l) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (f fakeTweetHashtags) Find(_ context.Context, tweetID, hashtagID uuid.UUID) (*models.TweetHashtag, error) {
	for _, l := range f.filter(func(l models.TweetHashtag) bool { return l.TweetID == tweetID && l.HashtagID == hashtagID }) {
		return &l, nil
	}
	return nil, nil
}

func (f fakeTweetHashtags) ListByTweet(_ context.Context, tweetID uuid.UUID) ([]models.TweetHashtag, error) {
	return f.filter(func(l models.TweetHashtag) bool { return l.TweetID == tweetID }), nil
}

func (f fakeTweetHashtags) ListByHashtag(_ context.Context, hashtagID uuid.UUID) ([]models.TweetHashtag, error) {
	return f.filter(func(l models.TweetHashtag) bool { return l.HashtagID == hashtagID }), nil
}

func (f fakeTweetHashtags) Create(_ context.Context, l *models.TweetHashtag) (*models.TweetHashtag, error) {
	n := *l
	n.ID = uuid.New()
	n.CreatedAt = f.db.tick()
	f.db.tweetHashtags[n.ID] = n
	return &n, nil
}

func (f fakeTweetHashtags) SoftDelete(_ context.Context, id uuid.UUID) error {
	if l, ok := f.db.tweetHashtags[id]; ok {
		l.IsDeleted = true
		f.db.tweetHashtags[id] = l
	}
	return nil
}

func (f fakeTweetHashtags) SoftDeleteByTweet(_ context.Context, tweetID uuid.UUID) error {
	for id, l := range f.db.tweetHashtags {
		if l.TweetID == tweetID {
			l.IsDeleted = true
			f.db.tweetHashtags[id] = l
		}
	}
	return nil
}

func (f fakeTweetHashtags) SoftDeleteByHashtag(_ context.Context, hashtagID uuid.UUID) error {
	for id, l := range f.db.tweetHashtags {
		if l.HashtagID == hashtagID {
			l.IsDeleted = true
			f.db.tweetHashtags[id] = l
		}
	}
	return nil
}

// collection tweets

type fakeCollectionTweets struct{ db *memDB }

func (f fakeCollectionTweets) filter(keep func(models.CollectionTweet) bool) []models.CollectionTweet {
	var out []models.CollectionTweet
	for _, m := range f.db.collectionTweets {
		if !m.IsDeleted && keep(m) {
			out = append(out, m)
		}
	}
	// Map order on purpose: callers must not rely on the repository sort.
	return out
}

func (f fakeCollectionTweets) Find(_ context.Context, collectionID, tweetID uuid.UUID) (*models.CollectionTweet, error) {
	for _, m := range f.filter(func(m models.CollectionTweet) bool { return m.CollectionID == collectionID && m.TweetID == tweetID }) {
		return &m, nil
	}
	return nil, nil
}

func (f fakeCollectionTweets) ListByCollection(_ context.Context, collectionID uuid.UUID) ([]models.CollectionTweet, error) {
	return f.filter(func(m models.CollectionTweet) bool { return m.CollectionID == collectionID }), nil
}

func (f fakeCollectionTweets) ListByTweet(_ context.Context, tweetID uuid.UUID) ([]models.CollectionTweet, error) {
	return f.filter(func(m models.CollectionTweet) bool { return m.TweetID == tweetID }), nil
}

func (f fakeCollectionTweets) ListPaged(_ context.Context, limit, offset int) ([]models.CollectionTweet, int, error) {
	all := f.filter(func(models.CollectionTweet) bool { return true })
	sortMembers(all)
	return window(all, limit, offset), len(all), nil
}

func (f fakeCollectionTweets) MaxDisplayOrder(_ context.Context, collectionID uuid.UUID) (int, error) {
	top := 0
	for _, m := range f.filter(func(m models.CollectionTweet) bool { return m.CollectionID == collectionID }) {
		if m.DisplayOrder > top {
			top = m.DisplayOrder
		}
	}
	return top, nil
}

func (f fakeCollectionTweets) Create(_ context.Context, m *models.CollectionTweet) (*models.CollectionTweet, error) {
	if err := f.db.err("collection_tweets.create"); err != nil {
		return nil, err
	}
	n := *m
	n.ID = uuid.New()
	n.CreatedAt = f.db.tick()
	f.db.collectionTweets[n.ID] = n
	return &n, nil
}

func (f fakeCollectionTweets) UpdateDisplayOrder(_ context.Context, id uuid.UUID, order int) error {
	m, ok := f.db.collectionTweets[id]
	if !ok {
		return errors.New("no such membership")
	}
	m.DisplayOrder = order
	m.UpdatedAt = ptr(f.db.tick())
	f.db.collectionTweets[id] = m
	return nil
}

func (f fakeCollectionTweets) SoftDelete(_ context.Context, id uuid.UUID) error {
	if m, ok := f.db.collectionTweets[id]; ok {
		m.IsDeleted = true
		f.db.collectionTweets[id] = m
	}
	return nil
}

func (f fakeCollectionTweets) SoftDeleteByTweet(_ context.Context, tweetID uuid.UUID) error {
	for id, m := range f.db.collectionTweets {
		if m.TweetID == tweetID {
			m.IsDeleted = true
			f.db.collectionTweets[id] = m
		}
	}
	return nil
}

func (f fakeCollectionTweets) SoftDeleteByCollection(_ context.Context, collectionID uuid.UUID) error {
	for id, m := range f.db.collectionTweets {
		if m.CollectionID == collectionID {
			m.IsDeleted = true
			f.db.collectionTweets[id] = m
		}
	}
	return nil
}

func window[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}
