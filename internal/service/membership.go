// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"

	"github.com/google/uuid"

	"bookmarkbrain/internal/apperr"
	"bookmarkbrain/internal/logger"
	"bookmarkbrain/internal/models"
)

// TweetCategoryService manages the unordered tweet↔category set.
type TweetCategoryService struct {
	repo Repository
	log  *logger.Logger
}

// NewTweetCategoryService returns a TweetCategoryService.
func NewTweetCategoryService(repo Repository, log *logger.Logger) *TweetCategoryService {
	return &TweetCategoryService{repo: repo, log: log.With("service", "tweet_category")}
}

// BulkAssignResult reports the links created by BulkAssign.
type BulkAssignResult struct {
	Created []models.TweetCategory `json:"created"`
	Count   int                    `json:"count"`
}

// Link assigns a category to a tweet.
func (s *TweetCategoryService) Link(ctx context.Context, tweetID, categoryID uuid.UUID) (*models.TweetCategory, error) {
	if tweetID == uuid.Nil || categoryID == uuid.Nil {
		return nil, apperr.Validation("tweet id and category id are required")
	}

	var created *models.TweetCategory
	err := s.repo.InTx(ctx, func(tx Repository) error {
		if err := requireTweet(ctx, tx, tweetID); err != nil {
			return err
		}
		if err := requireCategory(ctx, tx, categoryID); err != nil {
			return err
		}
		existing, err := tx.TweetCategories().Find(ctx, tweetID, categoryID)
		if err != nil {
			return apperr.Store("find tweet category", err)
		}
		if existing != nil {
			return apperr.AlreadyLinked("tweet %s is already assigned to category %s", tweetID, categoryID)
		}
		created, err = tx.TweetCategories().Create(ctx, &models.TweetCategory{TweetID: tweetID, CategoryID: categoryID})
		if err != nil {
			return apperr.Store("create tweet category", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("tweet linked to category", "tweet", tweetID, "category", categoryID)
	return created, nil
}

// Unlink removes a category from a tweet.
func (s *TweetCategoryService) Unlink(ctx context.Context, tweetID, categoryID uuid.UUID) error {
	if tweetID == uuid.Nil || categoryID == uuid.Nil {
		return apperr.Validation("tweet id and category id are required")
	}
	return s.repo.InTx(ctx, func(tx Repository) error {
		existing, err := tx.TweetCategories().Find(ctx, tweetID, categoryID)
		if err != nil {
			return apperr.Store("find tweet category", err)
		}
		if existing == nil {
			return apperr.NotFound("tweet %s is not assigned to category %s", tweetID, categoryID)
		}
		if err := tx.TweetCategories().SoftDelete(ctx, existing.ID); err != nil {
			return apperr.Store("delete tweet category", err)
		}
		return nil
	})
}

// BulkAssign links the tweet to every listed category. The tweet and all
// categories are checked first and the first missing one fails the call
// with nothing written. Pairs that are already linked, and repeated ids,
// are skipped.
func (s *TweetCategoryService) BulkAssign(ctx context.Context, tweetID uuid.UUID, categoryIDs []uuid.UUID) (*BulkAssignResult, error) {
	if tweetID == uuid.Nil {
		return nil, apperr.Validation("tweet id is required")
	}

	result := &BulkAssignResult{Created: []models.TweetCategory{}}
	err := s.repo.InTx(ctx, func(tx Repository) error {
		if err := requireTweet(ctx, tx, tweetID); err != nil {
			return err
		}
		for _, cid := range categoryIDs {
			if err := requireCategory(ctx, tx, cid); err != nil {
				return err
			}
		}

		seen := make(map[uuid.UUID]bool, len(categoryIDs))
		for _, cid := range categoryIDs {
			if seen[cid] {
				continue
			}
			seen[cid] = true

			existing, err := tx.TweetCategories().Find(ctx, tweetID, cid)
			if err != nil {
				return apperr.Store("find tweet category", err)
			}
			if existing != nil {
				continue
			}
			link, err := tx.TweetCategories().Create(ctx, &models.TweetCategory{TweetID: tweetID, CategoryID: cid})
			if err != nil {
				return apperr.Store("create tweet category", err)
			}
			result.Created = append(result.Created, *link)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Count = len(result.Created)
	s.log.Info("categories assigned to tweet", "tweet", tweetID, "requested", len(categoryIDs), "created", result.Count)
	return result, nil
}

// ListByTweet returns the tweet's category links.
func (s *TweetCategoryService) ListByTweet(ctx context.Context, tweetID uuid.UUID) ([]models.TweetCategory, error) {
	items, err := s.repo.TweetCategories().ListByTweet(ctx, tweetID)
	if err != nil {
		return nil, apperr.Store("list tweet categories", err)
	}
	return items, nil
}

// ListByCategory returns the category's tweet links.
func (s *TweetCategoryService) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.TweetCategory, error) {
	items, err := s.repo.TweetCategories().ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, apperr.Store("list tweet categories", err)
	}
	return items, nil
}

// ListPaged returns one page of all links.
func (s *TweetCategoryService) ListPaged(ctx context.Context, page, size int) (*models.Page[models.TweetCategory], error) {
	page, size = normalizePage(page, size)
	items, total, err := s.repo.TweetCategories().ListPaged(ctx, size, (page-1)*size)
	if err != nil {
		return nil, apperr.Store("list tweet categories", err)
	}
	return &models.Page[models.TweetCategory]{Items: items, Total: total, Page: page, PageSize: size}, nil
}

// TweetHashtagService manages the unordered tweet↔hashtag set. Every new
// link counts as one use of the hashtag; removing a link does not give the
// use back.
type TweetHashtagService struct {
	repo Repository
	log  *logger.Logger
}

// NewTweetHashtagService returns a TweetHashtagService.
func NewTweetHashtagService(repo Repository, log *logger.Logger) *TweetHashtagService {
	return &TweetHashtagService{repo: repo, log: log.With("service", "tweet_hashtag")}
}

// Link tags a tweet and increments the hashtag's usage in the same
// transaction.
func (s *TweetHashtagService) Link(ctx context.Context, tweetID, hashtagID uuid.UUID) (*models.TweetHashtag, error) {
	if tweetID == uuid.Nil || hashtagID == uuid.Nil {
		return nil, apperr.Validation("tweet id and hashtag id are required")
	}

	var created *models.TweetHashtag
	err := s.repo.InTx(ctx, func(tx Repository) error {
		if err := requireTweet(ctx, tx, tweetID); err != nil {
			return err
		}
		h, err := tx.Hashtags().FindByID(ctx, hashtagID)
		if err != nil {
			return apperr.Store("find hashtag", err)
		}
		if h == nil {
			return apperr.NotFound("hashtag not found: %s", hashtagID)
		}
		existing, err := tx.TweetHashtags().Find(ctx, tweetID, hashtagID)
		if err != nil {
			return apperr.Store("find tweet hashtag", err)
		}
		if existing != nil {
			return apperr.AlreadyLinked("tweet %s is already tagged with %s", tweetID, h.Name)
		}
		created, err = tx.TweetHashtags().Create(ctx, &models.TweetHashtag{TweetID: tweetID, HashtagID: hashtagID})
		if err != nil {
			return apperr.Store("create tweet hashtag", err)
		}
		bumped, err := incrementUsage(ctx, tx, hashtagID)
		if err != nil {
			return err
		}
		created.HashtagName = bumped.Name
		created.HashtagIsPopular = bumped.IsPopular
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("tweet tagged", "tweet", tweetID, "hashtag", hashtagID)
	return created, nil
}

// Unlink removes a hashtag from a tweet.
func (s *TweetHashtagService) Unlink(ctx context.Context, tweetID, hashtagID uuid.UUID) error {
	if tweetID == uuid.Nil || hashtagID == uuid.Nil {
		return apperr.Validation("tweet id and hashtag id are required")
	}
	return s.repo.InTx(ctx, func(tx Repository) error {
		existing, err := tx.TweetHashtags().Find(ctx, tweetID, hashtagID)
		if err != nil {
			return apperr.Store("find tweet hashtag", err)
		}
		if existing == nil {
			return apperr.NotFound("tweet %s is not tagged with hashtag %s", tweetID, hashtagID)
		}
		if err := tx.TweetHashtags().SoftDelete(ctx, existing.ID); err != nil {
			return apperr.Store("delete tweet hashtag", err)
		}
		return nil
	})
}

// ListByTweet returns the tweet's hashtag links.
func (s *TweetHashtagService) ListByTweet(ctx context.Context, tweetID uuid.UUID) ([]models.TweetHashtag, error) {
	items, err := s.repo.TweetHashtags().ListByTweet(ctx, tweetID)
	if err != nil {
		return nil, apperr.Store("list tweet hashtags", err)
	}
	return items, nil
}

// ListByHashtag returns the hashtag's tweet links.
func (s *TweetHashtagService) ListByHashtag(ctx context.Context, hashtagID uuid.UUID) ([]models.TweetHashtag, error) {
	items, err := s.repo.TweetHashtags().ListByHashtag(ctx, hashtagID)
	if err != nil {
		return nil, apperr.Store("list tweet hashtags", err)
	}
	return items, nil
}

func requireTweet(ctx context.Context, repo Repository, id uuid.UUID) error {
	t, err := repo.Tweets().FindByID(ctx, id)
	if err != nil {
		return apperr.Store("find tweet", err)
	}
	if t == nil {
		return apperr.NotFound("tweet not found: %s", id)
	}
	return nil
}

func requireCategory(ctx context.Context, repo Repository, id uuid.UUID) error {
	c, err := repo.Categories().FindByID(ctx, id)
	if err != nil {
		return apperr.Store("find category", err)
	}
	if c == nil {
		return apperr.NotFound("category not found: %s", id)
	}
	return nil
}

func requireCollection(ctx context.Context, repo Repository, id uuid.UUID) (*models.Collection, error) {
	c, err := repo.Collections().FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Store("find collection", err)
	}
	if c == nil {
		return nil, apperr.NotFound("collection not found: %s", id)
	}
	return c, nil
}
