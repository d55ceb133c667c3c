package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"bookmarkbrain/internal/models"
)

// HashtagStore manages hashtags and their usage counters.
type HashtagStore struct {
	db DBTX
}

const hashtagColumns = `id, name, description, usage_count, is_popular, created_at, updated_at, is_deleted`

func scanHashtag(scanner rowScanner) (*models.Hashtag, error) {
	var h models.Hashtag
	err := scanner.Scan(
		&h.ID, &h.Name, &h.Description, &h.UsageCount, &h.IsPopular,
		&h.CreatedAt, &h.UpdatedAt, &h.IsDeleted,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (s *HashtagStore) one(row *sql.Row, op string) (*models.Hashtag, error) {
	h, err := scanHashtag(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return h, nil
}

func (s *HashtagStore) query(ctx context.Context, op, q string, args ...any) ([]models.Hashtag, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.Hashtag
	for rows.Next() {
		h, err := scanHashtag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan hashtag: %w", err)
		}
		items = append(items, *h)
	}
	return items, rows.Err()
}

// FindByID retrieves a live hashtag. Returns nil if not found.
func (s *HashtagStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Hashtag, error) {
	return s.one(s.db.QueryRowContext(ctx,
		`SELECT `+hashtagColumns+` FROM hashtags WHERE id = $1 AND NOT is_deleted`, id),
		"find hashtag by id")
}

// FindByName looks a live hashtag up by name, ignoring case.
func (s *HashtagStore) FindByName(ctx context.Context, name string) (*models.Hashtag, error) {
	return s.one(s.db.QueryRowContext(ctx,
		`SELECT `+hashtagColumns+` FROM hashtags WHERE LOWER(name) = LOWER($1) AND NOT is_deleted`, name),
		"find hashtag by name")
}

// List returns every live hashtag alphabetically.
func (s *HashtagStore) List(ctx context.Context) ([]models.Hashtag, error) {
	return s.query(ctx, "list hashtags",
		`SELECT `+hashtagColumns+` FROM hashtags WHERE NOT is_deleted ORDER BY LOWER(name), id`)
}

// ListPopular returns popular hashtags, most used first.
func (s *HashtagStore) ListPopular(ctx context.Context) ([]models.Hashtag, error) {
	return s.query(ctx, "list popular hashtags",
		`SELECT `+hashtagColumns+` FROM hashtags
		 WHERE is_popular AND NOT is_deleted
		 ORDER BY usage_count DESC, LOWER(name), id`)
}

// Create inserts a hashtag.
func (s *HashtagStore) Create(ctx context.Context, h *models.Hashtag) (*models.Hashtag, error) {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO hashtags (id, name, description, usage_count, is_popular)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+hashtagColumns,
		h.ID, h.Name, h.Description, h.UsageCount, h.IsPopular,
	)
	created, err := scanHashtag(row)
	if err != nil {
		return nil, fmt.Errorf("create hashtag: %w", err)
	}
	return created, nil
}

// Update overwrites name, description and the popular flag. Usage count is
// only changed through IncrementUsage.
func (s *HashtagStore) Update(ctx context.Context, h *models.Hashtag) (*models.Hashtag, error) {
	return s.one(s.db.QueryRowContext(ctx, `
		UPDATE hashtags SET name = $1, description = $2, is_popular = $3, updated_at = NOW()
		WHERE id = $4 AND NOT is_deleted
		RETURNING `+hashtagColumns,
		h.Name, h.Description, h.IsPopular, h.ID),
		"update hashtag")
}

// IncrementUsage atomically adds one to the usage count and returns the
// updated hashtag, or nil if it does not exist.
func (s *HashtagStore) IncrementUsage(ctx context.Context, id uuid.UUID) (*models.Hashtag, error) {
	return s.one(s.db.QueryRowContext(ctx, `
		UPDATE hashtags SET usage_count = usage_count + 1, updated_at = NOW()
		WHERE id = $1 AND NOT is_deleted
		RETURNING `+hashtagColumns, id),
		"increment hashtag usage")
}

// MarkPopular sets the popular flag.
func (s *HashtagStore) MarkPopular(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE hashtags SET is_popular = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_deleted`, id)
	if err != nil {
		return fmt.Errorf("mark hashtag popular: %w", err)
	}
	return nil
}

// SoftDelete flags a hashtag as deleted.
func (s *HashtagStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE hashtags SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_deleted`, id)
	if err != nil {
		return fmt.Errorf("delete hashtag: %w", err)
	}
	return nil
}
