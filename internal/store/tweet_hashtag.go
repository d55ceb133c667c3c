package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"bookmarkbrain/internal/models"
)

// TweetHashtagStore manages tweet↔hashtag links.
type TweetHashtagStore struct {
	db DBTX
}

const tweetHashtagColumns = `th.id, th.tweet_id, th.hashtag_id, th.created_at, th.updated_at, th.is_deleted`

const tweetHashtagDetail = `
	SELECT ` + tweetHashtagColumns + `,
	       t.content, h.name, h.is_popular
	FROM tweet_hashtags th
	JOIN tweets t ON t.id = th.tweet_id AND NOT t.is_deleted
	JOIN hashtags h ON h.id = th.hashtag_id AND NOT h.is_deleted
	WHERE NOT th.is_deleted`

func scanTweetHashtag(scanner rowScanner) (*models.TweetHashtag, error) {
	var l models.TweetHashtag
	if err := scanner.Scan(&l.ID, &l.TweetID, &l.HashtagID, &l.CreatedAt, &l.UpdatedAt, &l.IsDeleted); err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *TweetHashtagStore) queryDetail(ctx context.Context, op, q string, args ...any) ([]models.TweetHashtag, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.TweetHashtag
	for rows.Next() {
		var l models.TweetHashtag
		if err := rows.Scan(
			&l.ID, &l.TweetID, &l.HashtagID, &l.CreatedAt, &l.UpdatedAt, &l.IsDeleted,
			&l.TweetContent, &l.HashtagName, &l.HashtagIsPopular,
		); err != nil {
			return nil, fmt.Errorf("scan tweet hashtag: %w", err)
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

// Find returns the live link between a tweet and a hashtag, or nil.
func (s *TweetHashtagStore) Find(ctx context.Context, tweetID, hashtagID uuid.UUID) (*models.TweetHashtag, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+tweetHashtagColumns+` FROM tweet_hashtags th
		WHERE th.tweet_id = $1 AND th.hashtag_id = $2 AND NOT th.is_deleted`, tweetID, hashtagID)
	l, err := scanTweetHashtag(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tweet hashtag: %w", err)
	}
	return l, nil
}

// ListByTweet returns the hashtags linked to a tweet.
func (s *TweetHashtagStore) ListByTweet(ctx context.Context, tweetID uuid.UUID) ([]models.TweetHashtag, error) {
	return s.queryDetail(ctx, "list tweet hashtags by tweet",
		tweetHashtagDetail+` AND th.tweet_id = $1 ORDER BY LOWER(h.name), th.id`, tweetID)
}

// ListByHashtag returns the tweets linked to a hashtag.
func (s *TweetHashtagStore) ListByHashtag(ctx context.Context, hashtagID uuid.UUID) ([]models.TweetHashtag, error) {
	return s.queryDetail(ctx, "list tweet hashtags by hashtag",
		tweetHashtagDetail+` AND th.hashtag_id = $1 ORDER BY th.created_at DESC, th.id`, hashtagID)
}

// Create inserts a link.
func (s *TweetHashtagStore) Create(ctx context.Context, l *models.TweetHashtag) (*models.TweetHashtag, error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO tweet_hashtags AS th (id, tweet_id, hashtag_id)
		VALUES ($1, $2, $3)
		RETURNING `+tweetHashtagColumns,
		l.ID, l.TweetID, l.HashtagID,
	)
	created, err := scanTweetHashtag(row)
	if err != nil {
		return nil, fmt.Errorf("create tweet hashtag: %w", err)
	}
	return created, nil
}

// SoftDelete flags one link as deleted.
func (s *TweetHashtagStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE tweet_hashtags SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_deleted`, id)
	if err != nil {
		return fmt.Errorf("delete tweet hashtag: %w", err)
	}
	return nil
}

// SoftDeleteByTweet flags every live link of a tweet as deleted.
func (s *TweetHashtagStore) SoftDeleteByTweet(ctx context.Context, tweetID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE tweet_hashtags SET is_deleted = TRUE, updated_at = NOW() WHERE tweet_id = $1 AND NOT is_deleted`, tweetID)
	if err != nil {
		return fmt.Errorf("delete tweet hashtags by tweet: %w", err)
	}
	return nil
}

// SoftDeleteByHashtag flags every live link of a hashtag as deleted.
func (s *TweetHashtagStore) SoftDeleteByHashtag(ctx context.Context, hashtagID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE tweet_hashtags SET is_deleted = TRUE, updated_at = NOW() WHERE hashtag_id = $1 AND NOT is_deleted`, hashtagID)
	if err != nil {
		return fmt.Errorf("delete tweet hashtags by hashtag: %w", err)
	}
	return nil
}
