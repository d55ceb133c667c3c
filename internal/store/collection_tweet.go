// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"bookmarkbrain/internal/models"
)

// CollectionTweetStore manages the ordered collection↔tweet junction.
type CollectionTweetStore struct {
	db DBTX
}

const collectionTweetColumns = `ct.id, ct.collection_id, ct.tweet_id, ct.display_order,
	ct.created_at, ct.updated_at, ct.is_deleted`

// collectionTweetOrder is the stable member ordering: display order, then
// insertion time, then id.
const collectionTweetOrder = `ORDER BY ct.display_order, ct.created_at, ct.id`

const collectionTweetDetail = `
	SELECT ` + collectionTweetColumns + `, col.name,
	       t.id, t.content, t.author_username, t.original_url, t.tweet_date, t.image_url,
	       t.is_seen, t.platform_name, t.category_id, t.created_at, t.updated_at, t.is_deleted
	FROM collection_tweets ct
	JOIN collections col ON col.id = ct.collection_id AND NOT col.is_deleted
	JOIN tweets t ON t.id = ct.tweet_id AND NOT t.is_deleted
	WHERE NOT ct.is_deleted`

func scanCollectionTweet(scanner rowScanner) (*models.CollectionTweet, error) {
	var m models.CollectionTweet
	err := scanner.Scan(
		&m.ID, &m.CollectionID, &m.TweetID, &m.DisplayOrder,
		&m.CreatedAt, &m.UpdatedAt, &m.IsDeleted,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *CollectionTweetStore) queryDetail(ctx context.Context, op, q string, args ...any) ([]models.CollectionTweet, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.CollectionTweet
	for rows.Next() {
		var m models.CollectionTweet
		var t models.Tweet
		if err := rows.Scan(
			&m.ID, &m.CollectionID, &m.TweetID, &m.DisplayOrder,
			&m.CreatedAt, &m.UpdatedAt, &m.IsDeleted, &m.CollectionName,
			&t.ID, &t.Content, &t.AuthorUsername, &t.OriginalURL, &t.TweetDate, &t.ImageURL,
			&t.IsSeen, &t.PlatformName, &t.CategoryID, &t.CreatedAt, &t.UpdatedAt, &t.IsDeleted,
		); err != nil {
			return nil, fmt.Errorf("scan collection tweet: %w", err)
		}
		m.Tweet = &t
		items = append(items, m)
	}
	return items, rows.Err()
}

// Find returns the live membership row for a pair, or nil.
func (s *CollectionTweetStore) Find(ctx context.Context, collectionID, tweetID uuid.UUID) (*models.CollectionTweet, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+collectionTweetColumns+` FROM collection_tweets ct
		WHERE ct.collection_id = $1 AND ct.tweet_id = $2 AND NOT ct.is_deleted`, collectionID, tweetID)
	m, err := scanCollectionTweet(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find collection tweet: %w", err)
	}
	return m, nil
}

// ListByCollection returns the collection's members in display order with
// their tweets attached.
func (s *CollectionTweetStore) ListByCollection(ctx context.Context, collectionID uuid.UUID) ([]models.CollectionTweet, error) {
	return s.queryDetail(ctx, "list collection tweets",
		collectionTweetDetail+` AND ct.collection_id = $1 `+collectionTweetOrder, collectionID)
}

// ListByTweet returns every collection membership of a tweet.
func (s *CollectionTweetStore) ListByTweet(ctx context.Context, tweetID uuid.UUID) ([]models.CollectionTweet, error) {
	return s.queryDetail(ctx, "list collection tweets by tweet",
		collectionTweetDetail+` AND ct.tweet_id = $1 ORDER BY col.display_order, col.name, ct.id`, tweetID)
}

// ListPaged returns one page of memberships plus the total count.
func (s *CollectionTweetStore) ListPaged(ctx context.Context, limit, offset int) ([]models.CollectionTweet, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM collection_tweets ct
		JOIN collections col ON col.id = ct.collection_id AND NOT col.is_deleted
		JOIN tweets t ON t.id = ct.tweet_id AND NOT t.is_deleted
		WHERE NOT ct.is_deleted`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count collection tweets: %w", err)
	}
	items, err := s.queryDetail(ctx, "list collection tweets paged",
		collectionTweetDetail+` ORDER BY col.display_order, ct.collection_id, ct.display_order, ct.created_at, ct.id
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// MaxDisplayOrder returns the highest display order in the collection, or
// 0 when it is empty.
func (s *CollectionTweetStore) MaxDisplayOrder(ctx context.Context, collectionID uuid.UUID) (int, error) {
	var maxOrder sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(display_order) FROM collection_tweets WHERE collection_id = $1 AND NOT is_deleted`,
		collectionID).Scan(&maxOrder)
	if err != nil {
		return 0, fmt.Errorf("max collection display order: %w", err)
	}
	if maxOrder.Valid {
		return int(maxOrder.Int64), nil
	}
	return 0, nil
}

// Create inserts a membership row.
func (s *CollectionTweetStore) Create(ctx context.Context, m *models.CollectionTweet) (*models.CollectionTweet, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO collection_tweets AS ct (id, collection_id, tweet_id, display_order)
		VALUES ($1, $2, $3, $4)
		RETURNING `+collectionTweetColumns,
		m.ID, m.CollectionID, m.TweetID, m.DisplayOrder,
	)
	created, err := scanCollectionTweet(row)
	if err != nil {
		return nil, fmt.Errorf("create collection tweet: %w", err)
	}
	return created, nil
}

// UpdateDisplayOrder overwrites the display order of one membership row.
func (s *CollectionTweetStore) UpdateDisplayOrder(ctx context.Context, id uuid.UUID, order int) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE collection_tweets SET display_order = $1, updated_at = NOW()
		WHERE id = $2 AND NOT is_deleted`, order, id)
	if err != nil {
		return fmt.Errorf("reorder collection tweet %s: %w", id, err)
	}
	return nil
}

// SoftDelete flags one membership row as deleted.
func (s *CollectionTweetStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE collection_tweets SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_deleted`, id)
	if err != nil {
		return fmt.Errorf("delete collection tweet: %w", err)
	}
	return nil
}

// SoftDeleteByTweet removes a tweet from every collection.
func (s *CollectionTweetStore) SoftDeleteByTweet(ctx context.Context, tweetID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE collection_tweets SET is_deleted = TRUE, updated_at = NOW() WHERE tweet_id = $1 AND NOT is_deleted`, tweetID)
	if err != nil {
		return fmt.Errorf("delete collection tweets by tweet: %w", err)
	}
	return nil
}

// SoftDeleteByCollection empties a collection.
func (s *CollectionTweetStore) SoftDeleteByCollection(ctx context.Context, collectionID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE collection_tweets SET is_deleted = TRUE, updated_at = NOW() WHERE collection_id = $1 AND NOT is_deleted`, collectionID)
	if err != nil {
		return fmt.Errorf("delete collection tweets by collection: %w", err)
	}
	return nil
}
