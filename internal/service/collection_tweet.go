package service

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"bookmarkbrain/internal/apperr"
	"bookmarkbrain/internal/logger"
	"bookmarkbrain/internal/models"
)

// Skip reasons reported by AssignTweets.
const (
	SkipTweetNotFound = "tweet not found"
	SkipAlreadyMember = "already in collection"
)

// CollectionTweetService manages the ordered collection↔tweet list.
// Display orders are written verbatim and never renumbered, so gaps are
// normal.
type CollectionTweetService struct {
	repo Repository
	log  *logger.Logger
}

// NewCollectionTweetService returns a CollectionTweetService.
func NewCollectionTweetService(repo Repository, log *logger.Logger) *CollectionTweetService {
	return &CollectionTweetService{repo: repo, log: log.With("service", "collection_tweet")}
}

// SkippedTweet is a tweet AssignTweets did not add.
type SkippedTweet struct {
	TweetID uuid.UUID `json:"tweet_id"`
	Reason  string    `json:"reason"`
}

// AssignResult reports the outcome of AssignTweets.
type AssignResult struct {
	Created []models.CollectionTweet `json:"created"`
	Skipped []SkippedTweet           `json:"skipped"`
}

// AssignTweets appends tweets to a collection in input order, numbering
// them max+1, max+2, ... where max is the current highest display order
// (0 for an empty collection). Unknown tweets and tweets already in the
// collection are skipped and reported. A missing collection fails the
// call.
func (s *CollectionTweetService) AssignTweets(ctx context.Context, collectionID uuid.UUID, tweetIDs []uuid.UUID) (*AssignResult, error) {
	if collectionID == uuid.Nil {
		return nil, apperr.Validation("collection id is required")
	}
	for _, tid := range tweetIDs {
		if tid == uuid.Nil {
			return nil, apperr.Validation("tweet ids cannot be empty")
		}
	}
	result := &AssignResult{Created: []models.CollectionTweet{}, Skipped: []SkippedTweet{}}

	err := s.repo.InTx(ctx, func(tx Repository) error {
		if _, err := requireCollection(ctx, tx, collectionID); err != nil {
			return err
		}
		next, err := tx.CollectionTweets().MaxDisplayOrder(ctx, collectionID)
		if err != nil {
			return apperr.Store("max collection display order", err)
		}

		for _, tid := range tweetIDs {
			t, err := tx.Tweets().FindByID(ctx, tid)
			if err != nil {
				return apperr.Store("find tweet", err)
			}
			if t == nil {
				s.log.Warn("skipping unknown tweet", "collection", collectionID, "tweet", tid)
				result.Skipped = append(result.Skipped, SkippedTweet{TweetID: tid, Reason: SkipTweetNotFound})
				continue
			}
			existing, err := tx.CollectionTweets().Find(ctx, collectionID, tid)
			if err != nil {
				return apperr.Store("find collection tweet", err)
			}
			if existing != nil {
				s.log.Info("tweet already in collection", "collection", collectionID, "tweet", tid)
				result.Skipped = append(result.Skipped, SkippedTweet{TweetID: tid, Reason: SkipAlreadyMember})
				continue
			}

			next++
			m, err := tx.CollectionTweets().Create(ctx, &models.CollectionTweet{
				CollectionID: collectionID,
				TweetID:      tid,
				DisplayOrder: next,
			})
			if err != nil {
				return apperr.Store("create collection tweet", err)
			}
			result.Created = append(result.Created, *m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("tweets assigned to collection",
		"collection", collectionID,
		"created", len(result.Created),
		"skipped", len(result.Skipped),
	)
	return result, nil
}

// Add puts a single tweet into a collection. A nil order appends it after
// the current last item.
func (s *CollectionTweetService) Add(ctx context.Context, collectionID, tweetID uuid.UUID, order *int) (*models.CollectionTweet, error) {
	if collectionID == uuid.Nil || tweetID == uuid.Nil {
		return nil, apperr.Validation("collection id and tweet id are required")
	}
	if order != nil && *order < 0 {
		return nil, apperr.Validation("display order cannot be negative")
	}

	var created *models.CollectionTweet
	err := s.repo.InTx(ctx, func(tx Repository) error {
		if _, err := requireCollection(ctx, tx, collectionID); err != nil {
			return err
		}
		if err := requireTweet(ctx, tx, tweetID); err != nil {
			return err
		}
		existing, err := tx.CollectionTweets().Find(ctx, collectionID, tweetID)
		if err != nil {
			return apperr.Store("find collection tweet", err)
		}
		if existing != nil {
			return apperr.AlreadyLinked("tweet %s is already in collection %s", tweetID, collectionID)
		}

		displayOrder := 0
		if order != nil {
			displayOrder = *order
		} else {
			top, err := tx.CollectionTweets().MaxDisplayOrder(ctx, collectionID)
			if err != nil {
				return apperr.Store("max collection display order", err)
			}
			displayOrder = top + 1
		}

		created, err = tx.CollectionTweets().Create(ctx, &models.CollectionTweet{
			CollectionID: collectionID,
			TweetID:      tweetID,
			DisplayOrder: displayOrder,
		})
		if err != nil {
			return apperr.Store("create collection tweet", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Remove takes a tweet out of a collection without renumbering the rest.
func (s *CollectionTweetService) Remove(ctx context.Context, collectionID, tweetID uuid.UUID) error {
	if collectionID == uuid.Nil || tweetID == uuid.Nil {
		return apperr.Validation("collection id and tweet id are required")
	}
	err := s.repo.InTx(ctx, func(tx Repository) error {
		m, err := tx.CollectionTweets().Find(ctx, collectionID, tweetID)
		if err != nil {
			return apperr.Store("find collection tweet", err)
		}
		if m == nil {
			return apperr.NotFound("tweet %s not found in collection %s", tweetID, collectionID)
		}
		if err := tx.CollectionTweets().SoftDelete(ctx, m.ID); err != nil {
			return apperr.Store("delete collection tweet", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("tweet removed from collection", "collection", collectionID, "tweet", tweetID)
	return nil
}

// Reorder overwrites the display order of the listed members. It is all or
// nothing: a missing collection, or any tweet that is not a member, fails
// the batch and nothing is written.
func (s *CollectionTweetService) Reorder(ctx context.Context, collectionID uuid.UUID, orders map[uuid.UUID]int) error {
	if collectionID == uuid.Nil {
		return apperr.Validation("collection id is required")
	}
	ids := sortedKeys(orders)
	for _, id := range ids {
		if id == uuid.Nil {
			return apperr.Validation("tweet ids cannot be empty")
		}
		if orders[id] < 0 {
			return apperr.Validation("display order for %s cannot be negative", id)
		}
	}

	err := s.repo.InTx(ctx, func(tx Repository) error {
		if _, err := requireCollection(ctx, tx, collectionID); err != nil {
			return err
		}
		for _, tid := range ids {
			m, err := tx.CollectionTweets().Find(ctx, collectionID, tid)
			if err != nil {
				return apperr.Store("find collection tweet", err)
			}
			if m == nil {
				return apperr.NotFound("tweet %s not found in collection %s", tid, collectionID)
			}
			if err := tx.CollectionTweets().UpdateDisplayOrder(ctx, m.ID, orders[tid]); err != nil {
				return apperr.Store("update collection tweet order", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("collection reordered", "collection", collectionID, "count", len(ids))
	return nil
}

// GetOrdered returns the collection's members by ascending display order,
// ties broken by insertion time and id.
func (s *CollectionTweetService) GetOrdered(ctx context.Context, collectionID uuid.UUID) ([]models.CollectionTweet, error) {
	if _, err := requireCollection(ctx, s.repo, collectionID); err != nil {
		return nil, err
	}
	items, err := s.repo.CollectionTweets().ListByCollection(ctx, collectionID)
	if err != nil {
		return nil, apperr.Store("list collection tweets", err)
	}
	sortMembers(items)
	return items, nil
}

// ListByTweet returns the collections a tweet belongs to.
func (s *CollectionTweetService) ListByTweet(ctx context.Context, tweetID uuid.UUID) ([]models.CollectionTweet, error) {
	items, err := s.repo.CollectionTweets().ListByTweet(ctx, tweetID)
	if err != nil {
		return nil, apperr.Store("list collection tweets", err)
	}
	return items, nil
}

// ListPaged returns one page of all memberships.
func (s *CollectionTweetService) ListPaged(ctx context.Context, page, size int) (*models.Page[models.CollectionTweet], error) {
	page, size = normalizePage(page, size)
	items, total, err := s.repo.CollectionTweets().ListPaged(ctx, size, (page-1)*size)
	if err != nil {
		return nil, apperr.Store("list collection tweets", err)
	}
	return &models.Page[models.CollectionTweet]{Items: items, Total: total, Page: page, PageSize: size}, nil
}

func sortMembers(ms []models.CollectionTweet) {
	sort.SliceStable(ms, func(i, j int) bool {
		a, b := ms[i], ms[j]
		if a.DisplayOrder != b.DisplayOrder {
			return a.DisplayOrder < b.DisplayOrder
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
}
