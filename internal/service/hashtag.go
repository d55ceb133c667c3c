package service

import (
	"context"

	"github.com/google/uuid"

	"bookmarkbrain/internal/apperr"
	"bookmarkbrain/internal/logger"
	"bookmarkbrain/internal/models"
)

// HashtagService manages hashtags and tracks their popularity. A hashtag
// becomes popular once its usage count reaches models.PopularThreshold and
// is never demoted automatically.
type HashtagService struct {
	repo Repository
	log  *logger.Logger
}

// NewHashtagService returns a HashtagService.
func NewHashtagService(repo Repository, log *logger.Logger) *HashtagService {
	return &HashtagService{repo: repo, log: log.With("service", "hashtag")}
}

// IncrementUsage adds one use to the hashtag and returns the new count.
func (s *HashtagService) IncrementUsage(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	err := s.repo.InTx(ctx, func(tx Repository) error {
		h, err := incrementUsage(ctx, tx, id)
		if err != nil {
			return err
		}
		count = h.UsageCount
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// incrementUsage bumps the counter inside an existing transaction and
// promotes the hashtag when it crosses the threshold.
func incrementUsage(ctx context.Context, tx Repository, id uuid.UUID) (*models.Hashtag, error) {
	h, err := tx.Hashtags().IncrementUsage(ctx, id)
	if err != nil {
		return nil, apperr.Store("increment hashtag usage", err)
	}
	if h == nil {
		return nil, apperr.NotFound("hashtag not found: %s", id)
	}
	if h.ShouldPromote() {
		if err := tx.Hashtags().MarkPopular(ctx, id); err != nil {
			return nil, apperr.Store("mark hashtag popular", err)
		}
		h.IsPopular = true
	}
	return h, nil
}

// GetPopular returns popular hashtags, most used first.
func (s *HashtagService) GetPopular(ctx context.Context) ([]models.Hashtag, error) {
	items, err := s.repo.Hashtags().ListPopular(ctx)
	if err != nil {
		return nil, apperr.Store("list popular hashtags", err)
	}
	return items, nil
}

// List returns all hashtags alphabetically.
func (s *HashtagService) List(ctx context.Context) ([]models.Hashtag, error) {
	items, err := s.repo.Hashtags().List(ctx)
	if err != nil {
		return nil, apperr.Store("list hashtags", err)
	}
	return items, nil
}

// Get returns one hashtag.
func (s *HashtagService) Get(ctx context.Context, id uuid.UUID) (*models.Hashtag, error) {
	h, err := s.repo.Hashtags().FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Store("find hashtag", err)
	}
	if h == nil {
		return nil, apperr.NotFound("hashtag not found: %s", id)
	}
	return h, nil
}

// GetByName looks a hashtag up ignoring case and a leading '#'.
func (s *HashtagService) GetByName(ctx context.Context, name string) (*models.Hashtag, error) {
	in := HashtagInput{Name: name}
	if msg := validateHashtag(&in); msg != "" {
		return nil, apperr.Validation("%s", msg)
	}
	h, err := s.repo.Hashtags().FindByName(ctx, in.Name)
	if err != nil {
		return nil, apperr.Store("find hashtag by name", err)
	}
	if h == nil {
		return nil, apperr.NotFound("hashtag not found: %s", in.Name)
	}
	return h, nil
}

// Create adds a hashtag with a zero usage count.
func (s *HashtagService) Create(ctx context.Context, in HashtagInput) (*models.Hashtag, error) {
	if msg := validateHashtag(&in); msg != "" {
		return nil, apperr.Validation("%s", msg)
	}

	var created *models.Hashtag
	err := s.repo.InTx(ctx, func(tx Repository) error {
		existing, err := tx.Hashtags().FindByName(ctx, in.Name)
		if err != nil {
			return apperr.Store("find hashtag by name", err)
		}
		if existing != nil {
			return apperr.AlreadyExists("hashtag %q already exists", in.Name)
		}
		h := &models.Hashtag{Name: in.Name, Description: in.Description}
		if in.IsPopular != nil {
			h.IsPopular = *in.IsPopular
		}
		created, err = tx.Hashtags().Create(ctx, h)
		if err != nil {
			return apperr.Store("create hashtag", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("hashtag created", "id", created.ID, "name", created.Name)
	return created, nil
}

// Update renames or re-describes a hashtag. The name stays unique.
func (s *HashtagService) Update(ctx context.Context, id uuid.UUID, in HashtagInput) (*models.Hashtag, error) {
	if msg := validateHashtag(&in); msg != "" {
		return nil, apperr.Validation("%s", msg)
	}

	var updated *models.Hashtag
	err := s.repo.InTx(ctx, func(tx Repository) error {
		current, err := tx.Hashtags().FindByID(ctx, id)
		if err != nil {
			return apperr.Store("find hashtag", err)
		}
		if current == nil {
			return apperr.NotFound("hashtag not found: %s", id)
		}
		clash, err := tx.Hashtags().FindByName(ctx, in.Name)
		if err != nil {
			return apperr.Store("find hashtag by name", err)
		}
		if clash != nil && clash.ID != id {
			return apperr.AlreadyExists("hashtag %q already exists", in.Name)
		}

		current.Name = in.Name
		current.Description = in.Description
		if in.IsPopular != nil {
			current.IsPopular = *in.IsPopular
		}
		updated, err = tx.Hashtags().Update(ctx, current)
		if err != nil {
			return apperr.Store("update hashtag", err)
		}
		if updated == nil {
			return apperr.NotFound("hashtag not found: %s", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete soft-deletes a hashtag together with its tweet links.
func (s *HashtagService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.InTx(ctx, func(tx Repository) error {
		h, err := tx.Hashtags().FindByID(ctx, id)
		if err != nil {
			return apperr.Store("find hashtag", err)
		}
		if h == nil {
			return apperr.NotFound("hashtag not found: %s", id)
		}
		if err := tx.TweetHashtags().SoftDeleteByHashtag(ctx, id); err != nil {
			return apperr.Store("delete tweet hashtags", err)
		}
		if err := tx.Hashtags().SoftDelete(ctx, id); err != nil {
			return apperr.Store("delete hashtag", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("hashtag deleted", "id", id)
	return nil
}
