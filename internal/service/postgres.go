package service

import (
	"context"

	"bookmarkbrain/internal/store"
)

// pgRepository adapts *store.Store to Repository.
type pgRepository struct {
	s *store.Store
}

// NewPostgresRepository returns a Repository backed by PostgreSQL.
func NewPostgresRepository(s *store.Store) Repository {
	return &pgRepository{s: s}
}

func (r *pgRepository) Tweets() TweetRepo                     { return r.s.Tweets }
func (r *pgRepository) Categories() CategoryRepo              { return r.s.Categories }
func (r *pgRepository) Hashtags() HashtagRepo                 { return r.s.Hashtags }
func (r *pgRepository) Collections() CollectionRepo           { return r.s.Collections }
func (r *pgRepository) TweetCategories() TweetCategoryRepo    { return r.s.TweetCategories }
func (r *pgRepository) TweetHashtags() TweetHashtagRepo       { return r.s.TweetHashtags }
func (r *pgRepository) CollectionTweets() CollectionTweetRepo { return r.s.CollectionTweets }

func (r *pgRepository) InTx(ctx context.Context, fn func(Repository) error) error {
	return r.s.InTx(ctx, func(tx *store.Store) error {
		return fn(&pgRepository{s: tx})
	})
}
