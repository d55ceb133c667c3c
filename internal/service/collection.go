package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"bookmarkbrain/internal/apperr"
	"bookmarkbrain/internal/logger"
	"bookmarkbrain/internal/models"
)

// CollectionService manages collections themselves. Their contents are
// handled by CollectionTweetService.
type CollectionService struct {
	repo Repository
	log  *logger.Logger
}

// NewCollectionService returns a CollectionService.
func NewCollectionService(repo Repository, log *logger.Logger) *CollectionService {
	return &CollectionService{repo: repo, log: log.With("service", "collection")}
}

// List returns collections by display order.
func (s *CollectionService) List(ctx context.Context) ([]models.Collection, error) {
	items, err := s.repo.Collections().List(ctx)
	if err != nil {
		return nil, apperr.Store("list collections", err)
	}
	return items, nil
}

func (s *CollectionService) ListPublic(ctx context.Context) ([]models.Collection, error) {
	items, err := s.repo.Collections().ListPublic(ctx)
	if err != nil {
		return nil, apperr.Store("list public collections", err)
	}
	return items, nil
}

// Search matches name and description. An empty term returns everything.
func (s *CollectionService) Search(ctx context.Context, term string) ([]models.Collection, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.List(ctx)
	}
	items, err := s.repo.Collections().Search(ctx, term)
	if err != nil {
		return nil, apperr.Store("search collections", err)
	}
	return items, nil
}

func (s *CollectionService) Get(ctx context.Context, id uuid.UUID) (*models.Collection, error) {
	return requireCollection(ctx, s.repo, id)
}

// GetWithTweets returns the collection with its members in display order.
func (s *CollectionService) GetWithTweets(ctx context.Context, id uuid.UUID) (*models.Collection, error) {
	c, err := requireCollection(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	members, err := s.repo.CollectionTweets().ListByCollection(ctx, id)
	if err != nil {
		return nil, apperr.Store("list collection tweets", err)
	}
	sortMembers(members)
	c.Tweets = members
	if c.Tweets == nil {
		c.Tweets = []models.CollectionTweet{}
	}
	return c, nil
}

func (s *CollectionService) Create(ctx context.Context, in CollectionInput) (*models.Collection, error) {
	if msg := validateCollection(&in); msg != "" {
		return nil, apperr.Validation("%s", msg)
	}
	c, err := s.repo.Collections().Create(ctx, &models.Collection{
		Name:         in.Name,
		Description:  in.Description,
		IconURL:      in.IconURL,
		IsPublic:     in.IsPublic,
		DisplayOrder: in.DisplayOrder,
	})
	if err != nil {
		return nil, apperr.Store("create collection", err)
	}

	s.log.Info("collection created", "id", c.ID, "name", c.Name)
	return c, nil
}

func (s *CollectionService) Update(ctx context.Context, id uuid.UUID, in CollectionInput) (*models.Collection, error) {
	if msg := validateCollection(&in); msg != "" {
		return nil, apperr.Validation("%s", msg)
	}

	var updated *models.Collection
	err := s.repo.InTx(ctx, func(tx Repository) error {
		current, err := requireCollection(ctx, tx, id)
		if err != nil {
			return err
		}
		current.Name = in.Name
		current.Description = in.Description
		current.IconURL = in.IconURL
		current.IsPublic = in.IsPublic
		current.DisplayOrder = in.DisplayOrder
		updated, err = tx.Collections().Update(ctx, current)
		if err != nil {
			return apperr.Store("update collection", err)
		}
		if updated == nil {
			return apperr.NotFound("collection not found: %s", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete soft-deletes the collection and its memberships.
func (s *CollectionService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.InTx(ctx, func(tx Repository) error {
		if _, err := requireCollection(ctx, tx, id); err != nil {
			return err
		}
		if err := tx.CollectionTweets().SoftDeleteByCollection(ctx, id); err != nil {
			return apperr.Store("delete collection tweets", err)
		}
		if err := tx.Collections().SoftDelete(ctx, id); err != nil {
			return apperr.Store("delete collection", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("collection deleted", "id", id)
	return nil
}

// UpdateDisplayOrders sets the display order of several collections at
// once. Any unknown id fails the whole batch.
func (s *CollectionService) UpdateDisplayOrders(ctx context.Context, orders map[uuid.UUID]int) error {
	ids := sortedKeys(orders)
	for _, id := range ids {
		if orders[id] < 0 {
			return apperr.Validation("display order for %s cannot be negative", id)
		}
	}

	return s.repo.InTx(ctx, func(tx Repository) error {
		for _, id := range ids {
			ok, err := tx.Collections().UpdateDisplayOrder(ctx, id, orders[id])
			if err != nil {
				return apperr.Store("update collection order", err)
			}
			if !ok {
				return apperr.NotFound("collection not found: %s", id)
			}
		}
		return nil
	})
}
