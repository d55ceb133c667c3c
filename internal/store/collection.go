package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"bookmarkbrain/internal/models"
)

// CollectionStore manages collections.
type CollectionStore struct {
	db DBTX
}

const collectionColumns = `id, name, description, icon_url, is_public, display_order,
	created_at, updated_at, is_deleted`

func scanCollection(scanner rowScanner) (*models.Collection, error) {
	var c models.Collection
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Description, &c.IconURL, &c.IsPublic, &c.DisplayOrder,
		&c.CreatedAt, &c.UpdatedAt, &c.IsDeleted,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CollectionStore) query(ctx context.Context, op, q string, args ...any) ([]models.Collection, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a live collection. Returns nil if not found.
func (s *CollectionStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Collection, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+collectionColumns+` FROM collections WHERE id = $1 AND NOT is_deleted`, id)
	c, err := scanCollection(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find collection by id: %w", err)
	}
	return c, nil
}

// List returns all live collections by display order.
func (s *CollectionStore) List(ctx context.Context) ([]models.Collection, error) {
	return s.query(ctx, "list collections",
		`SELECT `+collectionColumns+` FROM collections WHERE NOT is_deleted
		 ORDER BY display_order, name, id`)
}

// ListPublic returns public collections by display order.
func (s *CollectionStore) ListPublic(ctx context.Context) ([]models.Collection, error) {
	return s.query(ctx, "list public collections",
		`SELECT `+collectionColumns+` FROM collections WHERE is_public AND NOT is_deleted
		 ORDER BY display_order, name, id`)
}

// Search matches term against name and description, ignoring case.
func (s *CollectionStore) Search(ctx context.Context, term string) ([]models.Collection, error) {
	return s.query(ctx, "search collections", `
		SELECT `+collectionColumns+` FROM collections
		WHERE NOT is_deleted AND (name ILIKE $1 OR description ILIKE $1)
		ORDER BY display_order, name, id`, likePattern(term))
}

// Create inserts a collection.
func (s *CollectionStore) Create(ctx context.Context, c *models.Collection) (*models.Collection, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO collections (id, name, description, icon_url, is_public, display_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+collectionColumns,
		c.ID, c.Name, c.Description, c.IconURL, c.IsPublic, c.DisplayOrder,
	)
	created, err := scanCollection(row)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	return created, nil
}

// Update overwrites a live collection. Returns nil if it does not exist.
func (s *CollectionStore) Update(ctx context.Context, c *models.Collection) (*models.Collection, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE collections SET
			name = $1, description = $2, icon_url = $3, is_public = $4,
			display_order = $5, updated_at = NOW()
		WHERE id = $6 AND NOT is_deleted
		RETURNING `+collectionColumns,
		c.Name, c.Description, c.IconURL, c.IsPublic, c.DisplayOrder, c.ID,
	)
	updated, err := scanCollection(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update collection: %w", err)
	}
	return updated, nil
}

// UpdateDisplayOrder sets the display order of one collection and reports
// whether it existed.
func (s *CollectionStore) UpdateDisplayOrder(ctx context.Context, id uuid.UUID, order int) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE collections SET display_order = $1, updated_at = NOW()
		WHERE id = $2 AND NOT is_deleted`, order, id)
	if err != nil {
		return false, fmt.Errorf("reorder collection %s: %w", id, err)
	}
	return affected(res)
}

// SoftDelete flags a collection as deleted.
func (s *CollectionStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE collections SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_deleted`, id)
	if err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	return nil
}
