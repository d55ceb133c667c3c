// Package service holds the BookMarkBrain engines: the category hierarchy,
// the ordered membership engine, the hashtag popularity tracker and the
// tweet and collection services. Engines reach persistence only through
// the Repository interface and return *apperr.Error failures.
package service

import (
	"context"

	"github.com/google/uuid"

	"bookmarkbrain/internal/models"
)

// TweetRepo persists tweets. Lookups return nil, nil for missing rows.
type TweetRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Tweet, error)
	List(ctx context.Context) ([]models.Tweet, error)
	ListPaged(ctx context.Context, limit, offset int) ([]models.Tweet, int, error)
	Search(ctx context.Context, term string) ([]models.Tweet, error)
	ListByPlatform(ctx context.Context, platform string) ([]models.Tweet, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Tweet, error)
	Create(ctx context.Context, t *models.Tweet) (*models.Tweet, error)
	Update(ctx context.Context, t *models.Tweet) (*models.Tweet, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepo persists categories.
type CategoryRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	ListRoots(ctx context.Context) ([]models.Category, error)
	ListChildren(ctx context.Context, parentID uuid.UUID) ([]models.Category, error)
	CountChildren(ctx context.Context, id uuid.UUID) (int, error)
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	Update(ctx context.Context, c *models.Category) (*models.Category, error)
	UpdateDisplayOrder(ctx context.Context, id uuid.UUID, order int) (bool, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// HashtagRepo persists hashtags.
type HashtagRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Hashtag, error)
	FindByName(ctx context.Context, name string) (*models.Hashtag, error)
	List(ctx context.Context) ([]models.Hashtag, error)
	ListPopular(ctx context.Context) ([]models.Hashtag, error)
	Create(ctx context.Context, h *models.Hashtag) (*models.Hashtag, error)
	Update(ctx context.Context, h *models.Hashtag) (*models.Hashtag, error)
	IncrementUsage(ctx context.Context, id uuid.UUID) (*models.Hashtag, error)
	MarkPopular(ctx context.Context, id uuid.UUID) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// CollectionRepo persists collections.
type CollectionRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Collection, error)
	List(ctx context.Context) ([]models.Collection, error)
	ListPublic(ctx context.Context) ([]models.Collection, error)
	Search(ctx context.Context, term string) ([]models.Collection, error)
	Create(ctx context.Context, c *models.Collection) (*models.Collection, error)
	Update(ctx context.Context, c *models.Collection) (*models.Collection, error)
	UpdateDisplayOrder(ctx context.Context, id uuid.UUID, order int) (bool, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// TweetCategoryRepo persists tweet↔category links.
type TweetCategoryRepo interface {
	Find(ctx context.Context, tweetID, categoryID uuid.UUID) (*models.TweetCategory, error)
	ListByTweet(ctx context.Context, tweetID uuid.UUID) ([]models.TweetCategory, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.TweetCategory, error)
	ListPaged(ctx context.Context, limit, offset int) ([]models.TweetCategory, int, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error)
	Create(ctx context.Context, l *models.TweetCategory) (*models.TweetCategory, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	SoftDeleteByTweet(ctx context.Context, tweetID uuid.UUID) error
}

// TweetHashtagRepo persists tweet↔hashtag links.
type TweetHashtagRepo interface {
	Find(ctx context.Context, tweetID, hashtagID uuid.UUID) (*models.TweetHashtag, error)
	ListByTweet(ctx context.Context, tweetID uuid.UUID) ([]models.TweetHashtag, error)
	ListByHashtag(ctx context.Context, hashtagID uuid.UUID) ([]models.TweetHashtag, error)
	Create(ctx context.Context, l *models.TweetHashtag) (*models.TweetHashtag, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	SoftDeleteByTweet(ctx context.Context, tweetID uuid.UUID) error
	SoftDeleteByHashtag(ctx context.Context, hashtagID uuid.UUID) error
}

// CollectionTweetRepo persists the ordered collection↔tweet junction.
type CollectionTweetRepo interface {
	Find(ctx context.Context, collectionID, tweetID uuid.UUID) (*models.CollectionTweet, error)
	ListByCollection(ctx context.Context, collectionID uuid.UUID) ([]models.CollectionTweet, error)
	ListByTweet(ctx context.Context, tweetID uuid.UUID) ([]models.CollectionTweet, error)
	ListPaged(ctx context.Context, limit, offset int) ([]models.CollectionTweet, int, error)
	MaxDisplayOrder(ctx context.Context, collectionID uuid.UUID) (int, error)
	Create(ctx context.Context, m *models.CollectionTweet) (*models.CollectionTweet, error)
	UpdateDisplayOrder(ctx context.Context, id uuid.UUID, order int) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	SoftDeleteByTweet(ctx context.Context, tweetID uuid.UUID) error
	SoftDeleteByCollection(ctx context.Context, collectionID uuid.UUID) error
}

// Repository bundles the entity repositories. InTx runs fn against a
// transactional Repository; fn's error rolls everything back.
type Repository interface {
	Tweets() TweetRepo
	Categories() CategoryRepo
	Hashtags() HashtagRepo
	Collections() CollectionRepo
	TweetCategories() TweetCategoryRepo
	TweetHashtags() TweetHashtagRepo
	CollectionTweets() CollectionTweetRepo
	InTx(ctx context.Context, fn func(Repository) error) error
}
