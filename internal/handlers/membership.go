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

// --- Tweet ↔ Category ---

// TweetCategoryEngine links tweets to categories.
type TweetCategoryEngine interface {
	Link(ctx context.Context, tweetID, categoryID uuid.UUID) (*models.TweetCategory, error)
	Unlink(ctx context.Context, tweetID, categoryID uuid.UUID) error
	BulkAssign(ctx context.Context, tweetID uuid.UUID, categoryIDs []uuid.UUID) (*service.BulkAssignResult, error)
	ListByTweet(ctx context.Context, tweetID uuid.UUID) ([]models.TweetCategory, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.TweetCategory, error)
	ListPaged(ctx context.Context, page, size int) (*models.Page[models.TweetCategory], error)
}

// TweetCategories serves /api/tweet-categories.
type TweetCategories struct {
	svc TweetCategoryEngine
	log *logger.Logger
}

// NewTweetCategories creates the tweet-category handler group.
func NewTweetCategories(svc TweetCategoryEngine, log *logger.Logger) *TweetCategories {
	return &TweetCategories{svc: svc, log: log.With("handler", "tweet_categories")}
}

// Paged lists tweet-category links one page at a time.
func (h *TweetCategories) Paged(w http.ResponseWriter, r *http.Request) {
	page, size, err := pageParams(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	result, err := h.svc.ListPaged(r.Context(), page, size)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, result, "")
}

// ByTweet lists the categories assigned to a tweet.
func (h *TweetCategories) ByTweet(w http.ResponseWriter, r *http.Request) {
	respondByID(w, r, h.log, "tweetId", func(id uuid.UUID) (any, error) {
		return h.svc.ListByTweet(r.Context(), id)
	})
}

// ByCategory lists the tweets assigned to a category.
func (h *TweetCategories) ByCategory(w http.ResponseWriter, r *http.Request) {
	respondByID(w, r, h.log, "categoryId", func(id uuid.UUID) (any, error) {
		return h.svc.ListByCategory(r.Context(), id)
	})
}

// Create links a tweet to a category.
func (h *TweetCategories) Create(w http.ResponseWriter, r *http.Request) {
	var req tweetCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	link, err := h.svc.Link(r.Context(), req.TweetID, req.CategoryID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, link, "Category assigned")
}

// Assign links a tweet to several categories at once.
func (h *TweetCategories) Assign(w http.ResponseWriter, r *http.Request) {
	tweetID, err := pathID(r, "tweetId")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req categoryIDsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	result, err := h.svc.BulkAssign(r.Context(), tweetID, req.CategoryIDs)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, result, "Categories assigned")
}

// Delete unlinks a tweet from a category.
func (h *TweetCategories) Delete(w http.ResponseWriter, r *http.Request) {
	tweetID, categoryID, err := pathPair(r, "tweetId", "categoryId")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.svc.Unlink(r.Context(), tweetID, categoryID); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, nil, "Category removed from tweet")
}

// --- Tweet ↔ Hashtag ---

// TweetHashtagEngine links tweets to hashtags.
type TweetHashtagEngine interface {
	Link(ctx context.Context, tweetID, hashtagID uuid.UUID) (*models.TweetHashtag, error)
	Unlink(ctx context.Context, tweetID, hashtagID uuid.UUID) error
	ListByTweet(ctx context.Context, tweetID uuid.UUID) ([]models.TweetHashtag, error)
	ListByHashtag(ctx context.Context, hashtagID uuid.UUID) ([]models.TweetHashtag, error)
}

// TweetHashtags serves /api/tweet-hashtags.
type TweetHashtags struct {
	svc TweetHashtagEngine
	log *logger.Logger
}

// NewTweetHashtags creates the tweet-hashtag handler group.
func NewTweetHashtags(svc TweetHashtagEngine, log *logger.Logger) *TweetHashtags {
	return &TweetHashtags{svc: svc, log: log.With("handler", "tweet_hashtags")}
}

// ByTweet lists the hashtags on a tweet.
func (h *TweetHashtags) ByTweet(w http.ResponseWriter, r *http.Request) {
	respondByID(w, r, h.log, "tweetId", func(id uuid.UUID) (any, error) {
		return h.svc.ListByTweet(r.Context(), id)
	})
}

// ByHashtag lists the tweets carrying a hashtag.
func (h *TweetHashtags) ByHashtag(w http.ResponseWriter, r *http.Request) {
	respondByID(w, r, h.log, "hashtagId", func(id uuid.UUID) (any, error) {
		return h.svc.ListByHashtag(r.Context(), id)
	})
}

// Create tags a tweet and bumps the hashtag's usage count.
func (h *TweetHashtags) Create(w http.ResponseWriter, r *http.Request) {
	var req tweetHashtagRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	link, err := h.svc.Link(r.Context(), req.TweetID, req.HashtagID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, link, "Hashtag added")
}

// Delete removes a hashtag from a tweet. Usage counts are left alone.
func (h *TweetHashtags) Delete(w http.ResponseWriter, r *http.Request) {
	tweetID, hashtagID, err := pathPair(r, "tweetId", "hashtagId")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.svc.Unlink(r.Context(), tweetID, hashtagID); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, nil, "Hashtag removed from tweet")
}

// --- Collection ↔ Tweet ---

// CollectionTweetEngine is the ordered membership engine.
type CollectionTweetEngine interface {
	AssignTweets(ctx context.Context, collectionID uuid.UUID, tweetIDs []uuid.UUID) (*service.AssignResult, error)
	Add(ctx context.Context, collectionID, tweetID uuid.UUID, order *int) (*models.CollectionTweet, error)
	Remove(ctx context.Context, collectionID, tweetID uuid.UUID) error
	Reorder(ctx context.Context, collectionID uuid.UUID, orders map[uuid.UUID]int) error
	GetOrdered(ctx context.Context, collectionID uuid.UUID) ([]models.CollectionTweet, error)
	ListByTweet(ctx context.Context, tweetID uuid.UUID) ([]models.CollectionTweet, error)
	ListPaged(ctx context.Context, page, size int) (*models.Page[models.CollectionTweet], error)
}

// CollectionTweets serves /api/collection-tweets.
type CollectionTweets struct {
	svc CollectionTweetEngine
	log *logger.Logger
}

// NewCollectionTweets creates the collection membership handler group.
func NewCollectionTweets(svc CollectionTweetEngine, log *logger.Logger) *CollectionTweets {
	return &CollectionTweets{svc: svc, log: log.With("handler", "collection_tweets")}
}

// ByCollection returns the members of a collection in display order.
func (h *CollectionTweets) ByCollection(w http.ResponseWriter, r *http.Request) {
	respondByID(w, r, h.log, "collectionId", func(id uuid.UUID) (any, error) {
		return h.svc.GetOrdered(r.Context(), id)
	})
}

// ByTweet lists the collections a tweet belongs to.
func (h *CollectionTweets) ByTweet(w http.ResponseWriter, r *http.Request) {
	respondByID(w, r, h.log, "tweetId", func(id uuid.UUID) (any, error) {
		return h.svc.ListByTweet(r.Context(), id)
	})
}

// Paged lists collection memberships one page at a time.
func (h *CollectionTweets) Paged(w http.ResponseWriter, r *http.Request) {
	page, size, err := pageParams(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	result, err := h.svc.ListPaged(r.Context(), page, size)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, result, "")
}

// Create adds a single tweet to a collection.
func (h *CollectionTweets) Create(w http.ResponseWriter, r *http.Request) {
	var req collectionTweetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	m, err := h.svc.Add(r.Context(), req.CollectionID, req.TweetID, req.DisplayOrder)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, m, "Tweet added to collection")
}

// Assign adds several tweets to a collection, reporting the ones skipped.
func (h *CollectionTweets) Assign(w http.ResponseWriter, r *http.Request) {
	collectionID, err := pathID(r, "collectionId")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req tweetIDsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	result, err := h.svc.AssignTweets(r.Context(), collectionID, req.TweetIDs)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, result, "Tweets assigned")
}

// Reorder sets new display orders for members of a collection.
func (h *CollectionTweets) Reorder(w http.ResponseWriter, r *http.Request) {
	collectionID, err := pathID(r, "collectionId")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var orders displayOrders
	if err := decodeJSON(w, r, &orders); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.svc.Reorder(r.Context(), collectionID, orders); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, nil, "Order updated")
}

// Delete takes a tweet out of a collection.
func (h *CollectionTweets) Delete(w http.ResponseWriter, r *http.Request) {
	collectionID, tweetID, err := pathPair(r, "collectionId", "tweetId")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.svc.Remove(r.Context(), collectionID, tweetID); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, nil, "Tweet removed from collection")
}

// pathPair parses two UUID path parameters.
func pathPair(r *http.Request, a, b string) (uuid.UUID, uuid.UUID, error) {
	first, err := pathID(r, a)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	second, err := pathID(r, b)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return first, second, nil
}
