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

// TweetStore handles all tweet-related database operations.
type TweetStore struct {
	db DBTX
}

const tweetColumns = `id, content, author_username, original_url, tweet_date, image_url,
	is_seen, platform_name, category_id, created_at, updated_at, is_deleted`

func scanTweet(scanner rowScanner) (*models.Tweet, error) {
	var t models.Tweet
	err := scanner.Scan(
		&t.ID, &t.Content, &t.AuthorUsername, &t.OriginalURL, &t.TweetDate, &t.ImageURL,
		&t.IsSeen, &t.PlatformName, &t.CategoryID, &t.CreatedAt, &t.UpdatedAt, &t.IsDeleted,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TweetStore) query(ctx context.Context, op, q string, args ...any) ([]models.Tweet, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.Tweet
	for rows.Next() {
		t, err := scanTweet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tweet: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// FindByID retrieves a live tweet. Returns nil if not found.
func (s *TweetStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Tweet, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tweetColumns+` FROM tweets WHERE id = $1 AND NOT is_deleted`, id)
	t, err := scanTweet(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tweet by id: %w", err)
	}
	return t, nil
}

// List returns all live tweets, newest first.
func (s *TweetStore) List(ctx context.Context) ([]models.Tweet, error) {
	return s.query(ctx, "list tweets",
		`SELECT `+tweetColumns+` FROM tweets WHERE NOT is_deleted ORDER BY created_at DESC, id`)
}

// ListPaged returns one page of live tweets plus the total count.
func (s *TweetStore) ListPaged(ctx context.Context, limit, offset int) ([]models.Tweet, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tweets WHERE NOT is_deleted`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tweets: %w", err)
	}
	items, err := s.query(ctx, "list tweets paged",
		`SELECT `+tweetColumns+` FROM tweets WHERE NOT is_deleted
		 ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Search matches term case-insensitively against content, author and
// platform.
func (s *TweetStore) Search(ctx context.Context, term string) ([]models.Tweet, error) {
	return s.query(ctx, "search tweets", `
		SELECT `+tweetColumns+` FROM tweets
		WHERE NOT is_deleted
		  AND (content ILIKE $1 OR author_username ILIKE $1 OR platform_name ILIKE $1)
		ORDER BY created_at DESC, id`, likePattern(term))
}

// ListByPlatform returns live tweets whose platform matches ignoring case.
func (s *TweetStore) ListByPlatform(ctx context.Context, platform string) ([]models.Tweet, error) {
	return s.query(ctx, "list tweets by platform", `
		SELECT `+tweetColumns+` FROM tweets
		WHERE NOT is_deleted AND LOWER(platform_name) = LOWER($1)
		ORDER BY created_at DESC, id`, platform)
}

// ListByCategory returns live tweets linked to the category.
func (s *TweetStore) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Tweet, error) {
	return s.query(ctx, "list tweets by category", `
		SELECT t.id, t.content, t.author_username, t.original_url, t.tweet_date, t.image_url,
		       t.is_seen, t.platform_name, t.category_id, t.created_at, t.updated_at, t.is_deleted
		FROM tweets t
		JOIN tweet_categories tc ON tc.tweet_id = t.id AND NOT tc.is_deleted
		WHERE tc.category_id = $1 AND NOT t.is_deleted
		ORDER BY t.created_at DESC, t.id`, categoryID)
}

// Create inserts a tweet and returns the stored row.
func (s *TweetStore) Create(ctx context.Context, t *models.Tweet) (*models.Tweet, error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO tweets (id, content, author_username, original_url, tweet_date, image_url,
		                    is_seen, platform_name, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+tweetColumns,
		t.ID, t.Content, t.AuthorUsername, t.OriginalURL, t.TweetDate, t.ImageURL,
		t.IsSeen, t.PlatformName, t.CategoryID,
	)
	created, err := scanTweet(row)
	if err != nil {
		return nil, fmt.Errorf("create tweet: %w", err)
	}
	return created, nil
}

// Update overwrites the mutable fields of a live tweet. Returns nil if the
// tweet does not exist.
func (s *TweetStore) Update(ctx context.Context, t *models.Tweet) (*models.Tweet, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE tweets SET
			content = $1, author_username = $2, original_url = $3, tweet_date = $4,
			image_url = $5, is_seen = $6, platform_name = $7, category_id = $8,
			updated_at = NOW()
		WHERE id = $9 AND NOT is_deleted
		RETURNING `+tweetColumns,
		t.Content, t.AuthorUsername, t.OriginalURL, t.TweetDate,
		t.ImageURL, t.IsSeen, t.PlatformName, t.CategoryID, t.ID,
	)
	updated, err := scanTweet(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update tweet: %w", err)
	}
	return updated, nil
}

// SoftDelete flags a tweet as deleted.
func (s *TweetStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE tweets SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_deleted`, id)
	if err != nil {
		return fmt.Errorf("delete tweet: %w", err)
	}
	return nil
}
