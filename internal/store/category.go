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

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db DBTX
}

const categoryColumns = `id, name, description, color_hex, display_order, parent_id,
	created_at, updated_at, is_deleted`

// categoryOrder is the sibling ordering used by every listing.
const categoryOrder = `ORDER BY display_order, name, id`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner rowScanner) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Description, &c.ColorHex, &c.DisplayOrder, &c.ParentID,
		&c.CreatedAt, &c.UpdatedAt, &c.IsDeleted,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CategoryStore) query(ctx context.Context, op, q string, args ...any) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// List returns every live category ordered by display order.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	return s.query(ctx, "list categories",
		`SELECT `+categoryColumns+` FROM categories WHERE NOT is_deleted `+categoryOrder)
}

// ListRoots returns live categories without a parent.
func (s *CategoryStore) ListRoots(ctx context.Context) ([]models.Category, error) {
	return s.query(ctx, "list root categories",
		`SELECT `+categoryColumns+` FROM categories
		 WHERE parent_id IS NULL AND NOT is_deleted `+categoryOrder)
}

// ListChildren returns the live direct children of parentID.
func (s *CategoryStore) ListChildren(ctx context.Context, parentID uuid.UUID) ([]models.Category, error) {
	return s.query(ctx, "list child categories",
		`SELECT `+categoryColumns+` FROM categories
		 WHERE parent_id = $1 AND NOT is_deleted `+categoryOrder, parentID)
}

// CountChildren returns how many live categories have id as parent.
func (s *CategoryStore) CountChildren(ctx context.Context, id uuid.UUID) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories WHERE parent_id = $1 AND NOT is_deleted`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count child categories: %w", err)
	}
	return n, nil
}

// FindByID retrieves a live category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1 AND NOT is_deleted`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it.
func (s *CategoryStore) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (id, name, description, color_hex, display_order, parent_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+categoryColumns,
		c.ID, c.Name, c.Description, c.ColorHex, c.DisplayOrder, c.ParentID,
	)
	result, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// Update modifies a live category. Returns nil if it does not exist.
func (s *CategoryStore) Update(ctx context.Context, c *models.Category) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE categories SET
			name = $1, description = $2, color_hex = $3, display_order = $4,
			parent_id = $5, updated_at = NOW()
		WHERE id = $6 AND NOT is_deleted
		RETURNING `+categoryColumns,
		c.Name, c.Description, c.ColorHex, c.DisplayOrder, c.ParentID, c.ID,
	)
	result, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return result, nil
}

// UpdateDisplayOrder sets the display order of one live category and
// reports whether it existed.
func (s *CategoryStore) UpdateDisplayOrder(ctx context.Context, id uuid.UUID, order int) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE categories SET display_order = $1, updated_at = NOW()
		WHERE id = $2 AND NOT is_deleted`, order, id)
	if err != nil {
		return false, fmt.Errorf("reorder category %s: %w", id, err)
	}
	return affected(res)
}

// SoftDelete flags a category as deleted.
func (s *CategoryStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE categories SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND NOT is_deleted`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
