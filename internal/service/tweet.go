// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"bookmarkbrain/internal/apperr"
	"bookmarkbrain/internal/extract"
	"bookmarkbrain/internal/logger"
	"bookmarkbrain/internal/models"
)

// UnknownAuthor is recorded for tweets created from a URL.
const UnknownAuthor = "Unknown"

// Extractor pulls readable content out of a web page. Fetch failures yield
// a page with empty content rather than an error.
type Extractor interface {
	Extract(ctx context.Context, rawURL string) (*extract.Page, error)
}

// TweetService manages bookmarked tweets.
type TweetService struct {
	repo      Repository
	extractor Extractor
	log       *logger.Logger
	now       func() time.Time
}

// NewTweetService returns a TweetService. extractor may be nil, in which
// case ExtractFromURL always fails validation.
func NewTweetService(repo Repository, extractor Extractor, log *logger.Logger) *TweetService {
	return &TweetService{
		repo:      repo,
		extractor: extractor,
		log:       log.With("service", "tweet"),
		now:       time.Now,
	}
}

func (s *TweetService) List(ctx context.Context) ([]models.Tweet, error) {
	items, err := s.repo.Tweets().List(ctx)
	if err != nil {
		return nil, apperr.Store("list tweets", err)
	}
	return items, nil
}

// ListPaged returns one page of tweets, newest first.
func (s *TweetService) ListPaged(ctx context.Context, page, size int) (*models.Page[models.Tweet], error) {
	page, size = normalizePage(page, size)
	items, total, err := s.repo.Tweets().ListPaged(ctx, size, (page-1)*size)
	if err != nil {
		return nil, apperr.Store("list tweets", err)
	}
	return &models.Page[models.Tweet]{Items: items, Total: total, Page: page, PageSize: size}, nil
}

func (s *TweetService) Get(ctx context.Context, id uuid.UUID) (*models.Tweet, error) {
	t, err := s.repo.Tweets().FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Store("find tweet", err)
	}
	if t == nil {
		return nil, apperr.NotFound("tweet not found: %s", id)
	}
	return t, nil
}

// Search matches term against content, author and platform ignoring case.
// An empty term returns every tweet.
func (s *TweetService) Search(ctx context.Context, term string) ([]models.Tweet, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.List(ctx)
	}
	items, err := s.repo.Tweets().Search(ctx, term)
	if err != nil {
		return nil, apperr.Store("search tweets", err)
	}
	return items, nil
}

func (s *TweetService) ListByPlatform(ctx context.Context, platform string) ([]models.Tweet, error) {
	platform = strings.TrimSpace(platform)
	if platform == "" {
		return nil, apperr.Validation("platform name is required")
	}
	items, err := s.repo.Tweets().ListByPlatform(ctx, platform)
	if err != nil {
		return nil, apperr.Store("list tweets by platform", err)
	}
	return items, nil
}

// ListByCategory returns tweets linked to the category.
func (s *TweetService) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Tweet, error) {
	if err := requireCategory(ctx, s.repo, categoryID); err != nil {
		return nil, err
	}
	items, err := s.repo.Tweets().ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, apperr.Store("list tweets by category", err)
	}
	return items, nil
}

// Create stores a new tweet. The platform defaults to Twitter.
func (s *TweetService) Create(ctx context.Context, in TweetInput) (*models.Tweet, error) {
	if msg := validateTweet(&in); msg != "" {
		return nil, apperr.Validation("%s", msg)
	}

	var created *models.Tweet
	err := s.repo.InTx(ctx, func(tx Repository) error {
		if in.CategoryID != nil {
			if err := requireCategory(ctx, tx, *in.CategoryID); err != nil {
				return err
			}
		}
		var err error
		created, err = tx.Tweets().Create(ctx, tweetFromInput(&models.Tweet{}, in))
		if err != nil {
			return apperr.Store("create tweet", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("tweet created", "id", created.ID, "author", created.AuthorUsername)
	return created, nil
}

func (s *TweetService) Update(ctx context.Context, id uuid.UUID, in TweetInput) (*models.Tweet, error) {
	if msg := validateTweet(&in); msg != "" {
		return nil, apperr.Validation("%s", msg)
	}

	var updated *models.Tweet
	err := s.repo.InTx(ctx, func(tx Repository) error {
		current, err := tx.Tweets().FindByID(ctx, id)
		if err != nil {
			return apperr.Store("find tweet", err)
		}
		if current == nil {
			return apperr.NotFound("tweet not found: %s", id)
		}
		if in.CategoryID != nil {
			if err := requireCategory(ctx, tx, *in.CategoryID); err != nil {
				return err
			}
		}
		updated, err = tx.Tweets().Update(ctx, tweetFromInput(current, in))
		if err != nil {
			return apperr.Store("update tweet", err)
		}
		if updated == nil {
			return apperr.NotFound("tweet not found: %s", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ToggleSeen flips the seen flag and returns the tweet.
func (s *TweetService) ToggleSeen(ctx context.Context, id uuid.UUID) (*models.Tweet, error) {
	var updated *models.Tweet
	err := s.repo.InTx(ctx, func(tx Repository) error {
		t, err := tx.Tweets().FindByID(ctx, id)
		if err != nil {
			return apperr.Store("find tweet", err)
		}
		if t == nil {
			return apperr.NotFound("tweet not found: %s", id)
		}
		t.IsSeen = !t.IsSeen
		updated, err = tx.Tweets().Update(ctx, t)
		if err != nil {
			return apperr.Store("update tweet", err)
		}
		if updated == nil {
			return apperr.NotFound("tweet not found: %s", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete soft-deletes the tweet and every category, hashtag and collection
// row that references it.
func (s *TweetService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.InTx(ctx, func(tx Repository) error {
		if err := requireTweet(ctx, tx, id); err != nil {
			return err
		}
		if err := tx.TweetCategories().SoftDeleteByTweet(ctx, id); err != nil {
			return apperr.Store("delete tweet categories", err)
		}
		if err := tx.TweetHashtags().SoftDeleteByTweet(ctx, id); err != nil {
			return apperr.Store("delete tweet hashtags", err)
		}
		if err := tx.CollectionTweets().SoftDeleteByTweet(ctx, id); err != nil {
			return apperr.Store("delete collection tweets", err)
		}
		if err := tx.Tweets().SoftDelete(ctx, id); err != nil {
			return apperr.Store("delete tweet", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("tweet deleted", "id", id)
	return nil
}

// ExtractFromURL fetches rawURL and stores its text as a new unseen tweet
// by an unknown author.
func (s *TweetService) ExtractFromURL(ctx context.Context, rawURL string) (*models.Tweet, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, apperr.Validation("URL cannot be empty")
	}
	if !isHTTPURL(rawURL) {
		return nil, apperr.Validation("URL must be an absolute http or https URL")
	}
	if s.extractor == nil {
		return nil, apperr.Validation("could not extract content")
	}

	page, err := s.extractor.Extract(ctx, rawURL)
	if err != nil {
		s.log.Warn("extraction failed", "url", rawURL, "error", err)
		return nil, apperr.Validation("could not extract content")
	}
	if page == nil || strings.TrimSpace(page.Content) == "" {
		return nil, apperr.Validation("could not extract content")
	}
	content := strings.TrimSpace(page.Content)
	if tooLong(content, maxContentLen) {
		content = string([]rune(content)[:maxContentLen])
	}

	now := s.now().UTC()
	t, err := s.repo.Tweets().Create(ctx, &models.Tweet{
		Content:        content,
		AuthorUsername: UnknownAuthor,
		OriginalURL:    rawURL,
		TweetDate:      &now,
		PlatformName:   models.DefaultPlatform,
	})
	if err != nil {
		return nil, apperr.Store("create tweet", err)
	}

	s.log.Info("tweet extracted", "id", t.ID, "url", rawURL)
	return t, nil
}

func tweetFromInput(t *models.Tweet, in TweetInput) *models.Tweet {
	t.Content = in.Content
	t.AuthorUsername = in.AuthorUsername
	t.OriginalURL = in.OriginalURL
	t.TweetDate = in.TweetDate
	t.ImageURL = in.ImageURL
	t.IsSeen = in.IsSeen
	t.PlatformName = in.PlatformName
	if t.PlatformName == "" {
		t.PlatformName = models.DefaultPlatform
	}
	t.CategoryID = in.CategoryID
	return t
}
