package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"bookmarkbrain/internal/models"
)

// TweetCategoryStore manages tweet↔category links.
type TweetCategoryStore struct {
	db DBTX
}

const tweetCategoryColumns = `tc.id, tc.tweet_id, tc.category_id, tc.created_at, tc.updated_at, tc.is_deleted`

// tweetCategoryDetail selects the link plus the joined tweet and category
// fields. Only links whose tweet and category are both live are returned.
const tweetCategoryDetail = `
	SELECT ` + tweetCategoryColumns + `,
	       t.content, t.author_username, c.name, c.color_hex
	FROM tweet_categories tc
	JOIN tweets t ON t.id = tc.tweet_id AND NOT t.is_deleted
	JOIN categories c ON c.id = tc.category_id AND NOT c.is_deleted
	WHERE NOT tc.is_deleted`

func scanTweetCategory(scanner rowScanner) (*models.TweetCategory, error) {
	var l models.TweetCategory
	if err := scanner.Scan(&l.ID, &l.TweetID, &l.CategoryID, &l.CreatedAt, &l.UpdatedAt, &l.IsDeleted); err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *TweetCategoryStore) queryDetail(ctx context.Context, op, q string, args ...any) ([]models.TweetCategory, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.TweetCategory
	for rows.Next() {
		var l models.TweetCategory
		if err := rows.Scan(
			&l.ID, &l.TweetID, &l.CategoryID, &l.CreatedAt, &l.UpdatedAt, &l.IsDeleted,
			&l.TweetContent, &l.TweetAuthor, &l.CategoryName, &l.CategoryColor,
		); err != nil {
			return nil, fmt.Errorf("scan tweet category: %w", err)
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

// Find returns the live link between a tweet and a category, or nil.
func (s *TweetCategoryStore) Find(ctx context.Context, tweetID, categoryID uuid.UUID) (*models.TweetCategory, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+tweetCategoryColumns+` FROM tweet_categories tc
		WHERE tc.tweet_id = $1 AND tc.category_id = $2 AND NOT tc.is_deleted`, tweetID, categoryID)
	l, err := scanTweetCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tweet category: %w", err)
	}
	return l, nil
}

// ListByTweet returns the categories linked to a tweet.
func (s *TweetCategoryStore) ListByTweet(ctx context.Context, tweetID uuid.UUID) ([]models.TweetCategory, error) {
	return s.queryDetail(ctx, "list tweet categories by tweet",
		tweetCategoryDetail+` AND tc.tweet_id = $1 ORDER BY c.display_order, c.name, tc.id`, tweetID)
}

// ListByCategory returns the tweets linked to a category.
func (s *TweetCategoryStore) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.TweetCategory, error) {
	return s.queryDetail(ctx, "list tweet categories by category",
		tweetCategoryDetail+` AND tc.category_id = $1 ORDER BY tc.created_at DESC, tc.id`, categoryID)
}

// ListPaged returns one page of links plus the total count.
func (s *TweetCategoryStore) ListPaged(ctx context.Context, limit, offset int) ([]models.TweetCategory, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM tweet_categories tc
		JOIN tweets t ON t.id = tc.tweet_id AND NOT t.is_deleted
		JOIN categories c ON c.id = tc.category_id AND NOT c.is_deleted
		WHERE NOT tc.is_deleted`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tweet categories: %w", err)
	}
	items, err := s.queryDetail(ctx, "list tweet categories paged",
		tweetCategoryDetail+` ORDER BY tc.created_at DESC, tc.id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// CountByCategory returns how many live links reference the category.
func (s *TweetCategoryStore) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tweet_categories WHERE category_id = $1 AND NOT is_deleted`, categoryID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count tweet categories by category: %w", err)
	}
	return n, nil
}

// Create inserts a link.
func (s *TweetCategoryStore) Create(ctx context.Context, l *models.TweetCategory) (*models.TweetCategory, error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO tweet_categories AS tc (id, tweet_id, category_id)
		VALUES ($1, $2, $3)
		RETURNING `+tweetCategoryColumns,
		l.ID, l.TweetID, l.CategoryID,
	)
	created, err := scanTweetCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create tweet category: %w", err)
	}
	return created, nil
}

// SoftDelete flags one link as deleted.
func (s *TweetCategoryStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE tweet_categories SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_deleted`, id)
	if err != nil {
		return fmt.Errorf("delete tweet category: %w", err)
	}
	return nil
}

// SoftDeleteByTweet flags every live link of a tweet as deleted.
func (s *TweetCategoryStore) SoftDeleteByTweet(ctx context.Context, tweetID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE tweet_categories SET is_deleted = TRUE, updated_at = NOW() WHERE tweet_id = $1 AND NOT is_deleted`, tweetID)
	if err != nil {
		return fmt.Errorf("delete tweet categories by tweet: %w", err)
	}
	return nil
}
